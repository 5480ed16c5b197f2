package controllers

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/TinsaeTadesse17/Coffee-Inventory-Management-sub000/config"
	"github.com/TinsaeTadesse17/Coffee-Inventory-Management-sub000/models"
	"github.com/TinsaeTadesse17/Coffee-Inventory-Management-sub000/service"
	"github.com/TinsaeTadesse17/Coffee-Inventory-Management-sub000/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ComputeYield returns export/total, guarded to 0 for an empty run.
func ComputeYield(exportQty, totalInput float64) float64 {
	if totalInput <= 0 {
		return 0
	}
	return exportQty / totalInput
}

// ComputeBagsUsed rounds up: a partial bag still consumes a whole bag.
func ComputeBagsUsed(exportQty, capacity float64) int {
	if capacity <= 0 || exportQty <= 0 {
		return 0
	}
	return int(math.Ceil(exportQty / capacity))
}

type RunInputSpec struct {
	BatchRef string  `json:"batch_ref" binding:"required"`
	WeightKg float64 `json:"weight_kg" binding:"required,gt=0"`
}

type StartRunInput struct {
	Inputs []RunInputSpec `json:"inputs"`
	Grade  string         `json:"grade"`
	Notes  string         `json:"notes"`

	// Legacy single-batch shape, normalized into Inputs before validation.
	BatchRef string  `json:"batch_ref"`
	WeightKg float64 `json:"weight_kg"`
}

func (in *StartRunInput) normalize() error {
	if len(in.Inputs) == 0 && in.BatchRef != "" {
		in.Inputs = []RunInputSpec{{BatchRef: in.BatchRef, WeightKg: in.WeightKg}}
	}
	if len(in.Inputs) == 0 {
		return fmt.Errorf("at least one input batch is required")
	}
	for _, spec := range in.Inputs {
		if spec.BatchRef == "" || spec.WeightKg <= 0 {
			return fmt.Errorf("each input needs a batch_ref and a positive weight_kg")
		}
	}
	return nil
}

// consumeInputs locks every source batch, checks it is STORED with enough
// remaining quantity, deducts the claimed weight and records one
// ProcessingRunInput per batch. A batch that drops to the epsilon flips to
// PROCESSED.
func consumeInputs(tx *gorm.DB, run *models.ProcessingRun, specs []RunInputSpec) error {
	for _, spec := range specs {
		batch, err := findBatchForUpdate(tx, spec.BatchRef)
		if err != nil {
			if errors.Is(err, errNotFound) {
				return fmt.Errorf("%w: batch %s", errNotFound, spec.BatchRef)
			}
			return err
		}
		if batch.Status != models.StatusStored {
			return fmt.Errorf("%w: batch %s is %s, not STORED", errBadStatus, batch.BatchNumber, batch.Status)
		}
		if spec.WeightKg > batch.CurrentQuantityKg+models.QuantityEpsilon {
			return fmt.Errorf("%w: batch %s has %.2f kg, requested %.2f kg",
				errInsufficientQty, batch.BatchNumber, batch.CurrentQuantityKg, spec.WeightKg)
		}

		remaining := batch.CurrentQuantityKg - spec.WeightKg
		if remaining < 0 {
			remaining = 0
		}
		if err := tx.Model(&models.Batch{}).
			Where("id = ?", batch.ID).
			Update("current_quantity_kg", remaining).Error; err != nil {
			return err
		}
		batch.CurrentQuantityKg = remaining
		if batch.Depleted() {
			if err := transitionBatch(tx, batch, models.StatusProcessed); err != nil {
				return err
			}
		}

		input := models.ProcessingRunInput{
			ProcessingRunID: run.ID,
			BatchID:         batch.ID,
			WeightKg:        spec.WeightKg,
		}
		if err := tx.Create(&input).Error; err != nil {
			return err
		}
		run.Inputs = append(run.Inputs, input)
	}
	return nil
}

// settleRun computes waste/yield/bags from the run's stored inputs, decrements
// jute-bag inventory and marks the run COMPLETED. Caller must hold the run
// row lock.
func settleRun(tx *gorm.DB, run *models.ProcessingRun, exportQty, rejectQty float64, bagSize int) error {
	capacity, ok := models.BagCapacities[bagSize]
	if !ok {
		return fmt.Errorf("%w: bag size must be one of 30, 50, 60, 85", errBadStatus)
	}
	if exportQty < 0 || rejectQty < 0 {
		return fmt.Errorf("%w: export and reject quantities must be non-negative", errBadStatus)
	}

	totalInput := run.TotalInputWeight()
	if exportQty+rejectQty > totalInput+models.QuantityEpsilon {
		return fmt.Errorf("%w: output %.2f kg exceeds input %.2f kg",
			errOutputExceeds, exportQty+rejectQty, totalInput)
	}

	waste := totalInput - exportQty - rejectQty
	if waste < 0 {
		waste = 0
	}
	yield := ComputeYield(exportQty, totalInput)
	bagsUsed := ComputeBagsUsed(exportQty, capacity)

	var bags models.JuteBagInventory
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("bag_size_kg = ?", bagSize).
		First(&bags).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: no inventory row for bag size %d", errNotFound, bagSize)
		}
		return err
	}
	if err := tx.Model(&models.JuteBagInventory{}).
		Where("id = ?", bags.ID).
		UpdateColumn("quantity", gorm.Expr("quantity - ?", bagsUsed)).Error; err != nil {
		return err
	}
	bags.Quantity -= bagsUsed

	if bagsUsed > 0 {
		cost := models.ProcessingCost{
			ProcessingRunID: run.ID,
			Description:     fmt.Sprintf("%d jute bags (%d kg)", bagsUsed, bagSize),
			Amount:          float64(bagsUsed) * bags.PricePerBag,
			Currency:        "ETB",
			RecordedByID:    run.ProcessedByID,
		}
		if err := tx.Create(&cost).Error; err != nil {
			return err
		}
	}

	now := time.Now().UTC()
	res := tx.Model(&models.ProcessingRun{}).
		Where("id = ? AND status = ?", run.ID, models.RunOpen).
		Updates(map[string]any{
			"status":          models.RunCompleted,
			"export_quantity": exportQty,
			"reject_quantity": rejectQty,
			"waste_quantity":  waste,
			"yield_ratio":     yield,
			"output_bag_size": bagSize,
			"bags_used":       bagsUsed,
			"completed_at":    now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errAlreadyProcessed
	}
	run.Status = models.RunCompleted
	run.ExportQuantity = exportQty
	run.RejectQuantity = rejectQty
	run.WasteQuantity = waste
	run.YieldRatio = yield
	run.OutputBagSize = bagSize
	run.BagsUsed = bagsUsed
	run.CompletedAt = &now

	if bags.LowStock() {
		if err := service.EnqueueNotification(tx, models.RoleWarehouse,
			"Jute bags low",
			fmt.Sprintf("Bag size %d kg is at %d (threshold %d)", bagSize, bags.Quantity, bags.LowStockThreshold)); err != nil {
			return err
		}
	}
	for _, role := range []string{models.RoleWarehouse, models.RoleExportManager, models.RoleCEO} {
		if err := service.EnqueueNotification(tx, role,
			"Processing run completed",
			fmt.Sprintf("Run %s: export %.2f kg, reject %.2f kg, waste %.2f kg, yield %.1f%%",
				run.RunNumber, exportQty, rejectQty, waste, yield*100)); err != nil {
			return err
		}
	}
	return service.EnqueueNotification(tx, models.RoleExportManager,
		"Coffee ready for contract",
		fmt.Sprintf("Run %s packed %d bags of grade %s, ready for contract creation", run.RunNumber, bagsUsed, run.Grade))
}

// StartProcessingRun opens a run: claims weight from the source batches and
// leaves the run OPEN for a later completion call.
func StartProcessingRun(c *gin.Context) {
	var in StartRunInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid payload", "error": err.Error()})
		return
	}
	if err := in.normalize(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	userID, ok := utils.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid user_id"})
		return
	}

	var run models.ProcessingRun
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		run = models.ProcessingRun{
			Status:        models.RunOpen,
			Grade:         in.Grade,
			Notes:         in.Notes,
			ProcessedByID: userID,
			StartedAt:     time.Now().UTC(),
		}
		var err error
		for attempt := 0; attempt < 5; attempt++ {
			run.RunNumber = utils.GenRefCode(utils.PrefixRun)
			err = tx.Create(&run).Error
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

		if err := consumeInputs(tx, &run, in.Inputs); err != nil {
			return err
		}
		return service.EnqueueAudit(tx, userID, "PROCESSING_RUN_STARTED", run.RunNumber, in)
	})

	respondRunError(c, err, func() {
		c.JSON(http.StatusCreated, gin.H{"message": "processing run started", "data": run})
	})
}

type CompleteRunInput struct {
	ExportQuantity *float64 `json:"export_quantity" binding:"required,gte=0"`
	RejectQuantity *float64 `json:"reject_quantity" binding:"required,gte=0"`
	OutputBagSize  int      `json:"output_bag_size" binding:"required"`
}

// CompleteProcessingRun settles an OPEN run. Total input weight is recomputed
// from the stored inputs, never re-accepted from the caller.
func CompleteProcessingRun(c *gin.Context) {
	var in CompleteRunInput
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
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&run, c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNotFound
			}
			return err
		}
		if run.Status != models.RunOpen {
			return errAlreadyProcessed
		}
		if err := tx.Where("processing_run_id = ?", run.ID).Find(&run.Inputs).Error; err != nil {
			return err
		}

		if err := settleRun(tx, &run, *in.ExportQuantity, *in.RejectQuantity, in.OutputBagSize); err != nil {
			return err
		}
		return service.EnqueueAudit(tx, userID, "PROCESSING_RUN_COMPLETED", run.RunNumber, in)
	})

	respondRunError(c, err, func() {
		utils.Success(c, "processing run completed", run)
	})
}

type CreateRunInput struct {
	StartRunInput
	ExportQuantity *float64 `json:"export_quantity" binding:"required,gte=0"`
	RejectQuantity *float64 `json:"reject_quantity" binding:"required,gte=0"`
	OutputBagSize  int      `json:"output_bag_size" binding:"required"`
}

// CreateProcessingRun is the single-shot flow: start and complete in one
// transaction when export/reject are known up front.
func CreateProcessingRun(c *gin.Context) {
	var in CreateRunInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid payload", "error": err.Error()})
		return
	}
	if err := in.normalize(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	userID, ok := utils.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid user_id"})
		return
	}

	var run models.ProcessingRun
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		run = models.ProcessingRun{
			Status:        models.RunOpen,
			Grade:         in.Grade,
			Notes:         in.Notes,
			ProcessedByID: userID,
			StartedAt:     time.Now().UTC(),
		}
		var err error
		for attempt := 0; attempt < 5; attempt++ {
			run.RunNumber = utils.GenRefCode(utils.PrefixRun)
			err = tx.Create(&run).Error
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

		if err := consumeInputs(tx, &run, in.Inputs); err != nil {
			return err
		}
		if err := settleRun(tx, &run, *in.ExportQuantity, *in.RejectQuantity, in.OutputBagSize); err != nil {
			return err
		}
		return service.EnqueueAudit(tx, userID, "PROCESSING_RUN_CREATED", run.RunNumber, in)
	})

	respondRunError(c, err, func() {
		c.JSON(http.StatusCreated, gin.H{"message": "processing run created", "data": run})
	})
}

func respondRunError(c *gin.Context, err error, onSuccess func()) {
	switch {
	case err == nil:
		onSuccess()
	case errors.Is(err, errNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
	case errors.Is(err, errBadStatus), errors.Is(err, errInsufficientQty), errors.Is(err, errOutputExceeds):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, errAlreadyProcessed):
		c.JSON(http.StatusConflict, gin.H{"message": "run already completed or updated concurrently"})
	default:
		config.LogError(config.GetLogger(), "processing", "run", "tx", nil, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "processing run failed", "error": err.Error()})
	}
}

func GetProcessingRuns(c *gin.Context) {
	q := config.DB.Preload("Inputs.Batch").Preload("Costs").Order("id DESC")
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	var runs []models.ProcessingRun
	if err := q.Find(&runs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": runs})
}

func GetProcessingRunByID(c *gin.Context) {
	var run models.ProcessingRun
	if err := config.DB.Preload("Inputs.Batch").Preload("Costs").
		First(&run, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "processing run not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": run})
}
