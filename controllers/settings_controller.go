package controllers

import (
	"net/http"
	"strings"

	"github.com/TinsaeTadesse17/Coffee-Inventory-Management-sub000/config"
	"github.com/TinsaeTadesse17/Coffee-Inventory-Management-sub000/models"
	"github.com/TinsaeTadesse17/Coffee-Inventory-Management-sub000/service"
	"github.com/TinsaeTadesse17/Coffee-Inventory-Management-sub000/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Exchange rates are append-only versioned records; posting a new rate bumps
// the version, existing batches keep the rate they were purchased under.

func GetExchangeRates(c *gin.Context) {
	q := config.DB.Order("currency ASC, version DESC")
	if cur := c.Query("currency"); cur != "" {
		q = q.Where("currency = ?", strings.ToUpper(cur))
	}
	var rates []models.ExchangeRate
	if err := q.Find(&rates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rates})
}

type ExchangeRateInput struct {
	Currency  string  `json:"currency" binding:"required"`
	RateToETB float64 `json:"rate_to_etb" binding:"required,gt=0"`
}

func PostExchangeRate(c *gin.Context) {
	var in ExchangeRateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid payload", "error": err.Error()})
		return
	}
	userID, ok := utils.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid user_id"})
		return
	}

	currency := strings.ToUpper(in.Currency)

	var rate models.ExchangeRate
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var maxVersion int
		if err := tx.Model(&models.ExchangeRate{}).
			Where("currency = ?", currency).
			Select("COALESCE(MAX(version), 0)").
			Scan(&maxVersion).Error; err != nil {
			return err
		}

		rate = models.ExchangeRate{
			Currency:   currency,
			Version:    maxVersion + 1,
			RateToETB:  in.RateToETB,
			PostedByID: userID,
		}
		if err := tx.Create(&rate).Error; err != nil {
			return err
		}
		return service.EnqueueAudit(tx, userID, "EXCHANGE_RATE_POSTED", currency, rate)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to post rate", "error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "exchange rate posted", "data": rate})
}
