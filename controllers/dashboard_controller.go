package controllers

import (
	"net/http"
	"time"

	"github.com/TinsaeTadesse17/Coffee-Inventory-Management-sub000/config"
	"github.com/TinsaeTadesse17/Coffee-Inventory-Management-sub000/service"

	"github.com/gin-gonic/gin"
)

// agingAfter is how long a batch may sit warehoused before it is flagged.
const agingAfter = 90 * 24 * time.Hour

// GetReadyBatches serves the processing queue: STORED batches with a passing
// quality check. Same query backs the dashboard count and the run input
// selector.
func GetReadyBatches(c *gin.Context) {
	svc := service.NewService(config.DB)
	rows, err := svc.ReadyForProcessing(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rows})
}

func GetDashboard(c *gin.Context) {
	svc := service.NewService(config.DB)

	// refresh aging flags before summarizing
	if _, err := svc.MarkAgingBatches(c.Request.Context(), agingAfter); err != nil {
		config.LogError(config.GetLogger(), "dashboard", "GetDashboard", "mark aging", nil, err)
	}

	summary, err := svc.Dashboard(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": summary})
}
