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
)

type WarehouseEntryInput struct {
	BatchRef         string   `json:"batch_ref" binding:"required"`
	EntryType        string   `json:"entry_type" binding:"required"`
	WeightKg         float64  `json:"weight_kg" binding:"required,gt=0"`
	StorageLocations []string `json:"storage_locations" binding:"required,min=1"`
	BagCount         int      `json:"bag_count"`
	MoisturePercent  *float64 `json:"moisture_percent"`
	Temperature      *float64 `json:"temperature"`
}

// entryStatus maps a warehouse entry type to the resulting batch status.
var entryStatus = map[models.EntryType]models.BatchStatus{
	models.EntryArrival: models.StatusAtWarehouse,
	models.EntryReject:  models.StatusRejected,
	models.EntryExport:  models.StatusExportReady,
}

// ReceiveAtWarehouse records a storage movement. The batch identifier must
// resolve exactly; the batch must be ORDERED or AT_GATE for arrivals.
func ReceiveAtWarehouse(c *gin.Context) {
	var in WarehouseEntryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid payload", "error": err.Error()})
		return
	}
	entryType := models.EntryType(strings.ToUpper(in.EntryType))
	targetStatus, known := entryStatus[entryType]
	if !known {
		c.JSON(http.StatusBadRequest, gin.H{"message": "entry_type must be ARRIVAL, REJECT or EXPORT"})
		return
	}
	userID, ok := utils.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid user_id"})
		return
	}

	locations := strings.Join(in.StorageLocations, ", ")

	var entry models.WarehouseEntry
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		batch, err := findBatchForUpdate(tx, in.BatchRef)
		if err != nil {
			return err
		}
		if entryType == models.EntryArrival &&
			batch.Status != models.StatusOrdered && batch.Status != models.StatusAtGate {
			return errBadStatus
		}

		entry = models.WarehouseEntry{
			BatchID:          batch.ID,
			EntryType:        entryType,
			StorageLocations: locations,
			ArrivalWeightKg:  in.WeightKg,
			BagCount:         in.BagCount,
			MoisturePercent:  in.MoisturePercent,
			Temperature:      in.Temperature,
			ReceivedByID:     userID,
			ReceivedAt:       time.Now().UTC(),
		}
		for attempt := 0; attempt < 5; attempt++ {
			entry.WarehouseNumber = utils.GenRefCode(utils.PrefixWarehouse)
			err = tx.Create(&entry).Error
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

		if err := transitionBatch(tx, batch, targetStatus); err != nil {
			return err
		}

		updates := map[string]any{"current_location": locations}
		if entryType == models.EntryArrival {
			now := time.Now().UTC()
			updates["warehouse_entry_at"] = now
		}
		if err := tx.Model(&models.Batch{}).Where("id = ?", batch.ID).Updates(updates).Error; err != nil {
			return err
		}

		if entryType == models.EntryArrival {
			if err := service.EnqueueNotification(tx, models.RoleQuality,
				"Batch awaiting first QC",
				fmt.Sprintf("Batch %s arrived at %s with %.2f kg", batch.BatchNumber, locations, in.WeightKg)); err != nil {
				return err
			}
		}
		return service.EnqueueAudit(tx, userID, "WAREHOUSE_ENTRY_RECORDED", batch.BatchNumber, in)
	})

	switch {
	case err == nil:
		c.JSON(http.StatusCreated, gin.H{"message": "warehouse entry recorded", "data": entry})
	case errors.Is(err, errNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "batch not found: " + in.BatchRef})
	case errors.Is(err, errBadStatus):
		c.JSON(http.StatusBadRequest, gin.H{"message": "batch must be weighed at the gate before warehouse receipt"})
	case errors.Is(err, errBadTransition):
		c.JSON(http.StatusBadRequest, gin.H{"message": "batch status does not allow this entry type"})
	case errors.Is(err, errAlreadyProcessed):
		c.JSON(http.StatusConflict, gin.H{"message": "batch was updated concurrently"})
	default:
		config.LogError(config.GetLogger(), "warehouse", "ReceiveAtWarehouse", "tx", in, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to record warehouse entry", "error": err.Error()})
	}
}

func GetWarehouseEntries(c *gin.Context) {
	q := config.DB.Preload("Batch").Order("id DESC")
	if ref := c.Query("batch_id"); ref != "" {
		q = q.Where("batch_id = ?", ref)
	}
	if t := c.Query("entry_type"); t != "" {
		q = q.Where("entry_type = ?", strings.ToUpper(t))
	}
	var entries []models.WarehouseEntry
	if err := q.Find(&entries).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": entries})
}
