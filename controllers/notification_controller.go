package controllers

import (
	"net/http"

	"github.com/TinsaeTadesse17/Coffee-Inventory-Management-sub000/config"
	"github.com/TinsaeTadesse17/Coffee-Inventory-Management-sub000/models"
	"github.com/TinsaeTadesse17/Coffee-Inventory-Management-sub000/utils"

	"github.com/gin-gonic/gin"
)

// GetMyNotifications lists notifications addressed to the caller's role or
// directly to the caller.
func GetMyNotifications(c *gin.Context) {
	userID, ok := utils.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid user_id"})
		return
	}
	role, _ := c.Get("role")

	q := config.DB.Where("role = ? OR user_id = ?", role, userID).Order("id DESC").Limit(200)
	if c.Query("unread") == "true" {
		q = q.Where("is_read = false")
	}
	var rows []models.Notification
	if err := q.Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rows})
}

func MarkNotificationRead(c *gin.Context) {
	var row models.Notification
	if err := config.DB.First(&row, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
		return
	}
	if err := config.DB.Model(&row).Update("is_read", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	utils.Success(c, "notification read", row)
}

// GetAuditLogs is the admin view over the audit trail.
func GetAuditLogs(c *gin.Context) {
	q := config.DB.Order("id DESC").Limit(500)
	if action := c.Query("action"); action != "" {
		q = q.Where("action = ?", action)
	}
	if ref := c.Query("entity_ref"); ref != "" {
		q = q.Where("entity_ref = ?", ref)
	}
	var rows []models.AuditLog
	if err := q.Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rows})
}
