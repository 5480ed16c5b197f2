package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/TinsaeTadesse17/Coffee-Inventory-Management-sub000/config"
	"github.com/TinsaeTadesse17/Coffee-Inventory-Management-sub000/models"
	"github.com/TinsaeTadesse17/Coffee-Inventory-Management-sub000/service"
	"github.com/TinsaeTadesse17/Coffee-Inventory-Management-sub000/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ScoreSheet carries the ten cupping sub-scores. All are required; pointers
// distinguish a genuine 0 score from a missing field.
type ScoreSheet struct {
	Fragrance  *float64 `json:"fragrance" binding:"required,gte=0,lte=10"`
	Flavor     *float64 `json:"flavor" binding:"required,gte=0,lte=10"`
	Aftertaste *float64 `json:"aftertaste" binding:"required,gte=0,lte=10"`
	Acidity    *float64 `json:"acidity" binding:"required,gte=0,lte=10"`
	Body       *float64 `json:"body" binding:"required,gte=0,lte=10"`
	Balance    *float64 `json:"balance" binding:"required,gte=0,lte=10"`
	Sweetness  *float64 `json:"sweetness" binding:"required,gte=0,lte=10"`
	Uniformity *float64 `json:"uniformity" binding:"required,gte=0,lte=10"`
	CleanCup   *float64 `json:"clean_cup" binding:"required,gte=0,lte=10"`
	Overall    *float64 `json:"overall" binding:"required,gte=0,lte=10"`
}

func (s *ScoreSheet) Total() float64 {
	return *s.Fragrance + *s.Flavor + *s.Aftertaste + *s.Acidity + *s.Body +
		*s.Balance + *s.Sweetness + *s.Uniformity + *s.CleanCup + *s.Overall
}

type QualityCheckInput struct {
	BatchRef    string     `json:"batch_ref" binding:"required"`
	Checkpoint  string     `json:"checkpoint" binding:"required"`
	Scores      ScoreSheet `json:"scores" binding:"required"`
	MoisturePct *float64   `json:"moisture_pct"`
	Defects     *float64   `json:"defects"`
	SessionNote string     `json:"session_note"`
	SessionDate *time.Time `json:"session_date"`
}

// RecordQualityCheck scores a batch and gates its status: total >= 80 stores
// it, anything less rejects it.
func RecordQualityCheck(c *gin.Context) {
	var in QualityCheckInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid payload", "error": err.Error()})
		return
	}
	userID, ok := utils.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid user_id"})
		return
	}

	sessionDate := time.Now().UTC()
	if in.SessionDate != nil {
		sessionDate = in.SessionDate.UTC()
	}

	var check models.QualityCheck
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		batch, err := findBatchForUpdate(tx, in.BatchRef)
		if err != nil {
			return err
		}
		if batch.Status != models.StatusAtWarehouse && batch.Status != models.StatusReprocessing {
			return errBadStatus
		}

		var priorAtCheckpoint int64
		if err := tx.Model(&models.QualityCheck{}).
			Where("batch_id = ? AND checkpoint = ?", batch.ID, in.Checkpoint).
			Count(&priorAtCheckpoint).Error; err != nil {
			return err
		}

		check = models.QualityCheck{
			BatchID:     batch.ID,
			Checkpoint:  in.Checkpoint,
			Fragrance:   *in.Scores.Fragrance,
			Flavor:      *in.Scores.Flavor,
			Aftertaste:  *in.Scores.Aftertaste,
			Acidity:     *in.Scores.Acidity,
			Body:        *in.Scores.Body,
			Balance:     *in.Scores.Balance,
			Sweetness:   *in.Scores.Sweetness,
			Uniformity:  *in.Scores.Uniformity,
			CleanCup:    *in.Scores.CleanCup,
			Overall:     *in.Scores.Overall,
			TotalScore:  in.Scores.Total(),
			MoisturePct: in.MoisturePct,
			Defects:     in.Defects,
			InspectorID: userID,
			SessionNote: in.SessionNote,
			SessionDate: sessionDate,
		}
		if err := tx.Create(&check).Error; err != nil {
			return err
		}

		target := models.StatusRejected
		if check.Passed() {
			target = models.StatusStored
		}
		if err := transitionBatch(tx, batch, target); err != nil {
			return err
		}

		if check.Passed() && in.Checkpoint == models.CheckpointFirstQC && priorAtCheckpoint == 0 {
			if err := service.EnqueueNotification(tx, models.RolePlantManager,
				"Batch ready for processing",
				fmt.Sprintf("Batch %s passed first QC with %.1f/100", batch.BatchNumber, check.TotalScore)); err != nil {
				return err
			}
		}
		return service.EnqueueAudit(tx, userID, "QUALITY_CHECK_RECORDED", batch.BatchNumber, gin.H{
			"checkpoint":  in.Checkpoint,
			"total_score": check.TotalScore,
			"passed":      check.Passed(),
		})
	})

	switch {
	case err == nil:
		c.JSON(http.StatusCreated, gin.H{"message": "quality check recorded", "data": check})
	case errors.Is(err, errNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "batch not found: " + in.BatchRef})
	case errors.Is(err, errBadStatus):
		c.JSON(http.StatusBadRequest, gin.H{"message": "batch must be at the warehouse before quality checking"})
	case errors.Is(err, errAlreadyProcessed):
		c.JSON(http.StatusConflict, gin.H{"message": "batch was updated concurrently"})
	default:
		config.LogError(config.GetLogger(), "quality", "RecordQualityCheck", "tx", in, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to record quality check", "error": err.Error()})
	}
}

type QualityCheckEditInput struct {
	Scores      *ScoreSheet `json:"scores,omitempty"`
	MoisturePct *float64    `json:"moisture_pct,omitempty"`
	Defects     *float64    `json:"defects,omitempty"`
	SessionNote *string     `json:"session_note,omitempty"`
}

// UpdateQualityCheck edits a session. The total score is recomputed and, when
// the pass/fail outcome changes and the transition table allows it, the batch
// is re-gated.
func UpdateQualityCheck(c *gin.Context) {
	var in QualityCheckEditInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid payload", "error": err.Error()})
		return
	}
	userID, ok := utils.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid user_id"})
		return
	}

	var check models.QualityCheck
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&check, c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNotFound
			}
			return err
		}

		if in.Scores != nil {
			check.Fragrance = *in.Scores.Fragrance
			check.Flavor = *in.Scores.Flavor
			check.Aftertaste = *in.Scores.Aftertaste
			check.Acidity = *in.Scores.Acidity
			check.Body = *in.Scores.Body
			check.Balance = *in.Scores.Balance
			check.Sweetness = *in.Scores.Sweetness
			check.Uniformity = *in.Scores.Uniformity
			check.CleanCup = *in.Scores.CleanCup
			check.Overall = *in.Scores.Overall
			check.TotalScore = in.Scores.Total()
		}
		if in.MoisturePct != nil {
			check.MoisturePct = in.MoisturePct
		}
		if in.Defects != nil {
			check.Defects = in.Defects
		}
		if in.SessionNote != nil {
			check.SessionNote = *in.SessionNote
		}
		if err := tx.Save(&check).Error; err != nil {
			return err
		}

		batch, err := findBatchForUpdate(tx, fmt.Sprint(check.BatchID))
		if err != nil {
			return err
		}
		target := models.StatusRejected
		if check.Passed() {
			target = models.StatusStored
		}
		if batch.Status != target && models.CanTransition(batch.Status, target) {
			if err := transitionBatch(tx, batch, target); err != nil {
				return err
			}
		}

		return service.EnqueueAudit(tx, userID, "QUALITY_CHECK_EDITED", batch.BatchNumber, gin.H{
			"check_id":    check.ID,
			"total_score": check.TotalScore,
			"passed":      check.Passed(),
		})
	})

	switch {
	case err == nil:
		utils.Success(c, "quality check updated", check)
	case errors.Is(err, errNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "quality check not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to update quality check", "error": err.Error()})
	}
}

func GetQualityChecks(c *gin.Context) {
	q := config.DB.Preload("Batch").Order("id DESC")
	if ref := c.Query("batch_id"); ref != "" {
		q = q.Where("batch_id = ?", ref)
	}
	if cp := c.Query("checkpoint"); cp != "" {
		q = q.Where("checkpoint = ?", cp)
	}
	var checks []models.QualityCheck
	if err := q.Find(&checks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": checks})
}
