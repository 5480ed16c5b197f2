package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/TinsaeTadesse17/Coffee-Inventory-Management-sub000/config"
	"github.com/TinsaeTadesse17/Coffee-Inventory-Management-sub000/models"
	"github.com/TinsaeTadesse17/Coffee-Inventory-Management-sub000/service"
	"github.com/TinsaeTadesse17/Coffee-Inventory-Management-sub000/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type WeighingInput struct {
	BatchRef     string  `json:"batch_ref" binding:"required"` // id or batch number
	VehiclePlate string  `json:"vehicle_plate" binding:"required"`
	GrossWeight  float64 `json:"gross_weight" binding:"required,gt=0"`
	TareWeight   float64 `json:"tare_weight" binding:"gte=0"`
}

// CreateWeighing records a gate weigh-in and moves the batch to AT_GATE.
func CreateWeighing(c *gin.Context) {
	var in WeighingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid payload", "error": err.Error()})
		return
	}
	if in.TareWeight >= in.GrossWeight {
		c.JSON(http.StatusBadRequest, gin.H{"message": "tare weight must be below gross weight"})
		return
	}
	userID, ok := utils.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid user_id"})
		return
	}

	var record models.VehicleWeighingRecord
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		batch, err := findBatchForUpdate(tx, in.BatchRef)
		if err != nil {
			return err
		}
		if batch.Status != models.StatusOrdered {
			return errBadStatus
		}

		record = models.VehicleWeighingRecord{
			BatchID:      batch.ID,
			VehiclePlate: in.VehiclePlate,
			GrossWeight:  in.GrossWeight,
			TareWeight:   in.TareWeight,
			NetWeight:    in.GrossWeight - in.TareWeight,
			RecordedByID: userID,
			RecordedAt:   time.Now().UTC(),
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}

		if err := transitionBatch(tx, batch, models.StatusAtGate); err != nil {
			return err
		}
		return service.EnqueueAudit(tx, userID, "GATE_WEIGHING_RECORDED", batch.BatchNumber, in)
	})

	switch {
	case err == nil:
		c.JSON(http.StatusCreated, gin.H{"message": "weighing recorded", "data": record})
	case errors.Is(err, errNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"message": "batch not found: " + in.BatchRef})
	case errors.Is(err, errBadStatus):
		c.JSON(http.StatusBadRequest, gin.H{"message": "batch is not ORDERED; only ordered batches can be weighed at the gate"})
	case errors.Is(err, errAlreadyProcessed):
		c.JSON(http.StatusConflict, gin.H{"message": "batch was updated concurrently"})
	default:
		config.LogError(config.GetLogger(), "weighing", "CreateWeighing", "tx", in, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to record weighing", "error": err.Error()})
	}
}

type WeighingEditInput struct {
	VehiclePlate *string  `json:"vehicle_plate,omitempty"`
	GrossWeight  *float64 `json:"gross_weight,omitempty"`
	TareWeight   *float64 `json:"tare_weight,omitempty"`
}

// UpdateWeighing is the explicit edit endpoint; net weight is recomputed from
// the stored gross/tare after applying the edit.
func UpdateWeighing(c *gin.Context) {
	var in WeighingEditInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid payload", "error": err.Error()})
		return
	}
	userID, ok := utils.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid user_id"})
		return
	}

	var record models.VehicleWeighingRecord
	if err := config.DB.First(&record, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "weighing record not found"})
		return
	}

	if in.VehiclePlate != nil {
		record.VehiclePlate = *in.VehiclePlate
	}
	if in.GrossWeight != nil {
		record.GrossWeight = *in.GrossWeight
	}
	if in.TareWeight != nil {
		record.TareWeight = *in.TareWeight
	}
	if record.TareWeight >= record.GrossWeight {
		c.JSON(http.StatusBadRequest, gin.H{"message": "tare weight must be below gross weight"})
		return
	}
	record.NetWeight = record.GrossWeight - record.TareWeight

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&record).Error; err != nil {
			return err
		}
		return service.EnqueueAudit(tx, userID, "GATE_WEIGHING_EDITED", c.Param("id"), in)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to update weighing", "error": err.Error()})
		return
	}
	utils.Success(c, "weighing updated", record)
}

func GetWeighings(c *gin.Context) {
	q := config.DB.Preload("Batch").Order("id DESC")
	if ref := c.Query("batch_id"); ref != "" {
		q = q.Where("batch_id = ?", ref)
	}
	var records []models.VehicleWeighingRecord
	if err := q.Find(&records).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": records})
}
