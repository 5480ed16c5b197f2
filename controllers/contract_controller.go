package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/TinsaeTadesse17/Coffee-Inventory-Management-sub000/config"
	"github.com/TinsaeTadesse17/Coffee-Inventory-Management-sub000/models"
	"github.com/TinsaeTadesse17/Coffee-Inventory-Management-sub000/service"
	"github.com/TinsaeTadesse17/Coffee-Inventory-Management-sub000/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ContractInput struct {
	BuyerName     string     `json:"buyer_name" binding:"required"`
	Destination   string     `json:"destination" binding:"required"`
	CoffeeType    string     `json:"coffee_type" binding:"required"`
	Grade         string     `json:"grade"`
	QuantityKg    float64    `json:"quantity_kg" binding:"required,gt=0"`
	PricePerKg    float64    `json:"price_per_kg" binding:"required,gt=0"`
	Currency      string     `json:"currency"`
	PaymentMethod string     `json:"payment_method"`
	ShippingDate  *time.Time `json:"shipping_date"`
}

// CreateContract opens a PENDING export contract awaiting approval.
func CreateContract(c *gin.Context) {
	var in ContractInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid payload", "error": err.Error()})
		return
	}
	userID, ok := utils.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid user_id"})
		return
	}

	currency := in.Currency
	if currency == "" {
		currency = "USD"
	}

	contract := models.Contract{
		BuyerName:      in.BuyerName,
		Destination:    in.Destination,
		CoffeeType:     in.CoffeeType,
		Grade:          in.Grade,
		QuantityKg:     in.QuantityKg,
		PricePerKg:     in.PricePerKg,
		Currency:       currency,
		PaymentMethod:  in.PaymentMethod,
		ShippingDate:   in.ShippingDate,
		ApprovalStatus: models.ApprovalPending,
		CreatedByID:    userID,
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		for attempt := 0; attempt < 5; attempt++ {
			contract.ContractNumber = utils.GenRefCode(utils.PrefixContract)
			err = tx.Create(&contract).Error
			if err == nil {
				break
			}
			if !isUniqueViolation(err) {
				return err
			}
		}
		if err != nil {
			return err
		}

		if err := service.EnqueueNotification(tx, models.RoleCEO,
			"Contract awaiting approval",
			fmt.Sprintf("Contract %s: %.2f kg to %s at %.2f %s/kg",
				contract.ContractNumber, in.QuantityKg, in.Destination, in.PricePerKg, currency)); err != nil {
			return err
		}
		return service.EnqueueAudit(tx, userID, "CONTRACT_CREATED", contract.ContractNumber, in)
	})
	if err != nil {
		config.LogError(config.GetLogger(), "contract", "CreateContract", "tx", in, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to create contract", "error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "contract created (PENDING)", "data": contract})
}

func GetAllContracts(c *gin.Context) {
	q := config.DB.Preload("CreatedBy").Preload("ApprovedBy").Order("id DESC")
	if status := c.Query("status"); status != "" {
		q = q.Where("approval_status = ?", strings.ToUpper(status))
	}
	var contracts []models.Contract
	if err := q.Find(&contracts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": contracts})
}

func GetContractByID(c *gin.Context) {
	var contract models.Contract
	if err := config.DB.Preload("CreatedBy").Preload("ApprovedBy").Preload("AdditionalCosts").
		First(&contract, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "contract not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": contract})
}

// ApproveContract decides a PENDING contract. The decision is idempotent and
// final: a second decision gets 409.
func ApproveContract(c *gin.Context) {
	decideContract(c, models.ApprovalApproved, nil)
}

func RejectContract(c *gin.Context) {
	var body struct {
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || strings.TrimSpace(body.Reason) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "reason is required"})
		return
	}
	reason := strings.TrimSpace(body.Reason)
	decideContract(c, models.ApprovalRejected, &reason)
}

func decideContract(c *gin.Context, decision models.ApprovalStatus, reason *string) {
	userID, ok := utils.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid user_id"})
		return
	}

	var contract models.Contract
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&contract, c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNotFound
			}
			return err
		}
		if contract.ApprovalStatus != models.ApprovalPending {
			return errBadStatus
		}

		now := time.Now().UTC()
		updates := map[string]any{
			"approval_status": decision,
			"approved_by_id":  userID,
			"decided_at":      now,
		}
		if reason != nil {
			updates["reject_reason"] = *reason
		}
		res := tx.Model(&models.Contract{}).
			Where("id = ? AND approval_status = ?", contract.ID, models.ApprovalPending).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errAlreadyProcessed
		}
		contract.ApprovalStatus = decision
		contract.ApprovedByID = &userID
		contract.DecidedAt = &now
		contract.RejectReason = reason

		return service.EnqueueAudit(tx, userID, "CONTRACT_"+string(decision), contract.ContractNumber, gin.H{
			"decision": decision,
			"reason":   reason,
		})
	})

	switch {
	case err == nil:
		utils.Success(c, "contract "+strings.ToLower(string(decision)), contract)
	case errors.Is(err, errNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "contract not found"})
	case errors.Is(err, errBadStatus):
		c.JSON(http.StatusBadRequest, gin.H{"message": "only PENDING contracts can be decided"})
	case errors.Is(err, errAlreadyProcessed):
		c.JSON(http.StatusConflict, gin.H{"message": "contract already decided"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to decide contract", "error": err.Error()})
	}
}
