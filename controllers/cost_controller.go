package controllers

import (
	"net/http"

	"github.com/TinsaeTadesse17/Coffee-Inventory-Management-sub000/config"
	"github.com/TinsaeTadesse17/Coffee-Inventory-Management-sub000/models"
	"github.com/TinsaeTadesse17/Coffee-Inventory-Management-sub000/utils"

	"github.com/gin-gonic/gin"
)

// Cost lines are purely additive financial records: created once, never
// recomputed or settled.

type CostInput struct {
	Description string  `json:"description" binding:"required"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Currency    string  `json:"currency"`
}

func (in *CostInput) currency() string {
	if in.Currency == "" {
		return "ETB"
	}
	return in.Currency
}

// AddProcessingCost attaches a cost line to a processing run.
func AddProcessingCost(c *gin.Context) {
	var in CostInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid payload", "error": err.Error()})
		return
	}
	userID, ok := utils.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid user_id"})
		return
	}

	var run models.ProcessingRun
	if err := config.DB.First(&run, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "processing run not found"})
		return
	}

	cost := models.ProcessingCost{
		ProcessingRunID: run.ID,
		Description:     in.Description,
		Amount:          in.Amount,
		Currency:        in.currency(),
		RecordedByID:    userID,
	}
	if err := config.DB.Create(&cost).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "processing cost recorded", "data": cost})
}

// AddStorageCost attaches a cost line to a batch.
func AddStorageCost(c *gin.Context) {
	var in CostInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid payload", "error": err.Error()})
		return
	}
	userID, ok := utils.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid user_id"})
		return
	}

	var batch models.Batch
	if err := config.DB.First(&batch, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "batch not found"})
		return
	}

	cost := models.StorageCost{
		BatchID:      batch.ID,
		Description:  in.Description,
		Amount:       in.Amount,
		Currency:     in.currency(),
		RecordedByID: userID,
	}
	if err := config.DB.Create(&cost).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "storage cost recorded", "data": cost})
}

// AddContractCost attaches an additional cost line to a contract.
func AddContractCost(c *gin.Context) {
	var in CostInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid payload", "error": err.Error()})
		return
	}
	userID, ok := utils.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid user_id"})
		return
	}

	var contract models.Contract
	if err := config.DB.First(&contract, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "contract not found"})
		return
	}

	cost := models.AdditionalCost{
		ContractID:   contract.ID,
		Description:  in.Description,
		Amount:       in.Amount,
		Currency:     in.currency(),
		RecordedByID: userID,
	}
	if err := config.DB.Create(&cost).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "contract cost recorded", "data": cost})
}
