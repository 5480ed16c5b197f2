package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/TinsaeTadesse17/Coffee-Inventory-Management-sub000/config"
	"github.com/TinsaeTadesse17/Coffee-Inventory-Management-sub000/models"
	"github.com/TinsaeTadesse17/Coffee-Inventory-Management-sub000/service"
	"github.com/TinsaeTadesse17/Coffee-Inventory-Management-sub000/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func GetJuteBagInventory(c *gin.Context) {
	var rows []models.JuteBagInventory
	if err := config.DB.Order("bag_size_kg ASC").Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rows})
}

type RestockInput struct {
	Quantity          *int     `json:"quantity,omitempty" binding:"omitempty,gte=0"`
	AddQuantity       *int     `json:"add_quantity,omitempty" binding:"omitempty,gt=0"`
	PricePerBag       *float64 `json:"price_per_bag,omitempty" binding:"omitempty,gte=0"`
	LowStockThreshold *int     `json:"low_stock_threshold,omitempty" binding:"omitempty,gte=0"`
}

// RestockJuteBags sets or tops up stock for one bag size. Decrements happen
// only through processing-run completion.
func RestockJuteBags(c *gin.Context) {
	size, err := strconv.Atoi(c.Param("size"))
	if err != nil || !models.ValidBagSize(size) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "bag size must be one of 30, 50, 60, 85"})
		return
	}

	var in RestockInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid payload", "error": err.Error()})
		return
	}
	if in.Quantity == nil && in.AddQuantity == nil && in.PricePerBag == nil && in.LowStockThreshold == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "nothing to update"})
		return
	}
	userID, ok := utils.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid user_id"})
		return
	}

	var row models.JuteBagInventory
	txErr := config.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("bag_size_kg = ?", size).
			First(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			row = models.JuteBagInventory{BagSizeKg: size}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		old := row.Quantity
		if in.Quantity != nil {
			row.Quantity = *in.Quantity
		}
		if in.AddQuantity != nil {
			row.Quantity += *in.AddQuantity
		}
		if in.PricePerBag != nil {
			row.PricePerBag = *in.PricePerBag
		}
		if in.LowStockThreshold != nil {
			row.LowStockThreshold = *in.LowStockThreshold
		}
		if err := tx.Save(&row).Error; err != nil {
			return err
		}

		return service.EnqueueAudit(tx, userID, "JUTE_BAGS_RESTOCKED", strconv.Itoa(size), gin.H{
			"old_quantity": old,
			"new_quantity": row.Quantity,
		})
	})
	if txErr != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to restock", "error": txErr.Error()})
		return
	}
	utils.Success(c, "jute bag inventory updated", row)
}
