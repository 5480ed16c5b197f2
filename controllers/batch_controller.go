package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/TinsaeTadesse17/Coffee-Inventory-Management-sub000/config"
	"github.com/TinsaeTadesse17/Coffee-Inventory-Management-sub000/models"
	"github.com/TinsaeTadesse17/Coffee-Inventory-Management-sub000/service"
	"github.com/TinsaeTadesse17/Coffee-Inventory-Management-sub000/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PurchaseInput struct {
	SupplierName string  `json:"supplier_name" binding:"required"`
	Origin       string  `json:"origin" binding:"required"`
	QuantityKg   float64 `json:"quantity_kg" binding:"required,gt=0"`
	PricePerKg   float64 `json:"price_per_kg" binding:"gte=0"`
	Currency     string  `json:"currency"`
}

// latestRate returns the highest-version exchange rate for a currency.
func latestRate(tx *gorm.DB, currency string) (*models.ExchangeRate, error) {
	var rate models.ExchangeRate
	err := tx.Where("currency = ?", currency).Order("version DESC").First(&rate).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNotFound
		}
		return nil, err
	}
	return &rate, nil
}

// createBatchWithRef retries on reference-code collisions (six random digits,
// uniqueness enforced by the DB index).
func createBatchWithRef(tx *gorm.DB, batch *models.Batch, prefix string) error {
	for attempt := 0; attempt < 5; attempt++ {
		batch.BatchNumber = utils.GenRefCode(prefix)
		err := tx.Create(batch).Error
		if err == nil {
			return nil
		}
		if !isUniqueViolation(err) {
			return err
		}
	}
	return fmt.Errorf("could not allocate a unique batch number")
}

// CreatePurchase records a purchase order: a new ORDERED batch plus a
// SECURITY notification that a truck is inbound.
func CreatePurchase(c *gin.Context) {
	var in PurchaseInput
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
		currency = "ETB"
	}

	var batch models.Batch
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		rate, err := latestRate(tx, currency)
		if err != nil {
			return err
		}

		var supplier models.Supplier
		if err := tx.Where("name = ?", in.SupplierName).
			FirstOrCreate(&supplier, models.Supplier{Name: in.SupplierName, Origin: in.Origin}).Error; err != nil {
			return err
		}

		batch = models.Batch{
			SupplierID:          &supplier.ID,
			Origin:              in.Origin,
			PurchasedQuantityKg: in.QuantityKg,
			CurrentQuantityKg:   in.QuantityKg,
			PurchaseCost:        in.PricePerKg * in.QuantityKg,
			Currency:            currency,
			ExchangeRate:        rate.RateToETB,
			Status:              models.StatusOrdered,
		}
		if err := createBatchWithRef(tx, &batch, utils.PrefixBatch); err != nil {
			return err
		}

		if err := service.EnqueueNotification(tx, models.RoleSecurity,
			"Incoming purchase",
			fmt.Sprintf("Batch %s (%.2f kg from %s) is on its way to the gate", batch.BatchNumber, in.QuantityKg, in.SupplierName)); err != nil {
			return err
		}
		return service.EnqueueAudit(tx, userID, "BATCH_PURCHASED", batch.BatchNumber, in)
	})

	switch {
	case err == nil:
		c.JSON(http.StatusCreated, gin.H{"message": "purchase recorded", "data": batch})
	case errors.Is(err, errNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"message": "no exchange rate posted for currency " + currency})
	default:
		config.LogError(config.GetLogger(), "batch", "CreatePurchase", "tx", in, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to record purchase", "error": err.Error()})
	}
}

type ThirdPartyIntakeInput struct {
	EntityName string  `json:"entity_name" binding:"required"`
	Origin     string  `json:"origin" binding:"required"`
	QuantityKg float64 `json:"quantity_kg" binding:"required,gt=0"`
}

// CreateThirdPartyIntake registers a lot owned by an external entity,
// processed as a service. No purchase cost is booked.
func CreateThirdPartyIntake(c *gin.Context) {
	var in ThirdPartyIntakeInput
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
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var entity models.ThirdPartyEntity
		if err := tx.Where("name = ?", in.EntityName).
			FirstOrCreate(&entity, models.ThirdPartyEntity{Name: in.EntityName}).Error; err != nil {
			return err
		}

		batch = models.Batch{
			ThirdPartyEntityID:  &entity.ID,
			Origin:              in.Origin,
			PurchasedQuantityKg: in.QuantityKg,
			CurrentQuantityKg:   in.QuantityKg,
			Currency:            "ETB",
			ExchangeRate:        1,
			Status:              models.StatusOrdered,
		}
		if err := createBatchWithRef(tx, &batch, utils.PrefixThirdParty); err != nil {
			return err
		}

		if err := service.EnqueueNotification(tx, models.RoleSecurity,
			"Incoming third-party lot",
			fmt.Sprintf("Batch %s (%.2f kg, owner %s) is on its way to the gate", batch.BatchNumber, in.QuantityKg, in.EntityName)); err != nil {
			return err
		}
		return service.EnqueueAudit(tx, userID, "BATCH_THIRD_PARTY_INTAKE", batch.BatchNumber, in)
	})

	if err != nil {
		config.LogError(config.GetLogger(), "batch", "CreateThirdPartyIntake", "tx", in, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to register intake", "error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "third-party intake recorded", "data": batch})
}

func GetAllBatches(c *gin.Context) {
	q := config.DB.Preload("Supplier").Preload("ThirdPartyEntity").Order("id DESC")
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	var batches []models.Batch
	if err := q.Find(&batches).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": batches})
}

func GetBatchByID(c *gin.Context) {
	var batch models.Batch
	err := config.DB.
		Preload("Supplier").Preload("ThirdPartyEntity").
		Preload("WeighingRecords").Preload("WarehouseEntries").
		Preload("QualityChecks").Preload("StorageCosts").
		First(&batch, c.Param("id")).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "batch not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": batch})
}

type QuantityCorrectionInput struct {
	QuantityKg float64 `json:"quantity_kg" binding:"gte=0"`
	Reason     string  `json:"reason" binding:"required"`
}

// CorrectBatchQuantity is the only path that may move a batch quantity
// upward. ADMIN only; fully audited with old and new values.
func CorrectBatchQuantity(c *gin.Context) {
	var in QuantityCorrectionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid payload", "error": err.Error()})
		return
	}
	userID, ok := utils.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid user_id"})
		return
	}

	var batch *models.Batch
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		batch, err = findBatchForUpdate(tx, c.Param("id"))
		if err != nil {
			return err
		}
		if in.QuantityKg > batch.PurchasedQuantityKg {
			return errOutputExceeds
		}

		old := batch.CurrentQuantityKg
		updates := map[string]any{"current_quantity_kg": in.QuantityKg}
		if err := tx.Model(&models.Batch{}).Where("id = ?", batch.ID).Updates(updates).Error; err != nil {
			return err
		}
		batch.CurrentQuantityKg = in.QuantityKg

		// the depletion rule applies to corrections too
		if batch.Depleted() && models.CanTransition(batch.Status, models.StatusProcessed) {
			if err := transitionBatch(tx, batch, models.StatusProcessed); err != nil {
				return err
			}
		}

		return service.EnqueueAudit(tx, userID, "BATCH_QUANTITY_CORRECTED", batch.BatchNumber, gin.H{
			"old_quantity_kg": old,
			"new_quantity_kg": in.QuantityKg,
			"reason":          in.Reason,
		})
	})

	switch {
	case err == nil:
		utils.Success(c, "quantity corrected", batch)
	case errors.Is(err, errNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "batch not found"})
	case errors.Is(err, errOutputExceeds):
		c.JSON(http.StatusBadRequest, gin.H{"message": "corrected quantity exceeds purchased quantity"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to correct quantity", "error": err.Error()})
	}
}

// ReprocessBatch sends a rejected (or stored) batch back through processing.
// A fresh RPS reference ties the audit entry to the reprocessing cycle.
func ReprocessBatch(c *gin.Context) {
	advanceBatch(c, models.StatusReprocessing, "BATCH_REPROCESSING", utils.GenRefCode(utils.PrefixReprocess))
}

// DispatchBatch moves an EXPORT_READY batch into transit.
func DispatchBatch(c *gin.Context) {
	shipmentRef := utils.GenRefCode(utils.PrefixShipment)
	advanceBatch(c, models.StatusInTransit, "BATCH_DISPATCHED", shipmentRef)
}

// MarkBatchShipped closes out an IN_TRANSIT batch.
func MarkBatchShipped(c *gin.Context) {
	advanceBatch(c, models.StatusShipped, "BATCH_SHIPPED", "")
}

func advanceBatch(c *gin.Context, to models.BatchStatus, action, movementRef string) {
	userID, ok := utils.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid user_id"})
		return
	}

	var batch *models.Batch
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		batch, err = findBatchForUpdate(tx, c.Param("id"))
		if err != nil {
			return err
		}
		if err := transitionBatch(tx, batch, to); err != nil {
			return err
		}
		detail := gin.H{"status": to}
		if movementRef != "" {
			detail["movement_ref"] = movementRef
		}
		return service.EnqueueAudit(tx, userID, action, batch.BatchNumber, detail)
	})

	switch {
	case err == nil:
		utils.Success(c, "batch updated", batch)
	case errors.Is(err, errNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "batch not found"})
	case errors.Is(err, errBadTransition):
		c.JSON(http.StatusBadRequest, gin.H{"message": fmt.Sprintf("batch cannot move from %s to %s", batch.Status, to)})
	case errors.Is(err, errAlreadyProcessed):
		c.JSON(http.StatusConflict, gin.H{"message": "batch was updated concurrently"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to update batch", "error": err.Error()})
	}
}
