package service

import (
	"context"
	"time"

	"github.com/TinsaeTadesse17/Coffee-Inventory-Management-sub000/models"
	"gorm.io/gorm"
)

// ===== DTOs =====

// ReadyBatchRow is a STORED batch with a passing quality check: eligible as a
// processing-run input. This query is the only implementation of the
// "ready for processing" predicate; the queue view, the dashboard and the run
// input selector all go through it.
type ReadyBatchRow struct {
	BatchID           uint    `json:"batch_id"`
	BatchNumber       string  `json:"batch_number"`
	Origin            string  `json:"origin"`
	CurrentQuantityKg float64 `json:"current_quantity_kg"`
	BestScore         float64 `json:"best_score"`
	IsAging           bool    `json:"is_aging"`
}

type StatusCount struct {
	Status models.BatchStatus `json:"status"`
	Count  int64              `json:"count"`
}

type DashboardSummary struct {
	BatchesByStatus []StatusCount             `json:"batches_by_status"`
	OpenRuns        int64                     `json:"open_runs"`
	ReadyBatches    int64                     `json:"ready_batches"`
	LowStockBags    []models.JuteBagInventory `json:"low_stock_bags"`
	AgingBatches    int64                     `json:"aging_batches"`
}

// ===== Service =====

type Service interface {
	ReadyForProcessing(ctx context.Context) ([]ReadyBatchRow, error)
	Dashboard(ctx context.Context) (DashboardSummary, error)
	MarkAgingBatches(ctx context.Context, olderThan time.Duration) (int64, error)
}

type service struct{ db *gorm.DB }

func NewService(db *gorm.DB) Service { return &service{db: db} }

func (s *service) readyQuery(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Table("batches b").
		Select(`
			b.id AS batch_id,
			b.batch_number,
			b.origin,
			b.current_quantity_kg,
			b.is_aging,
			MAX(q.total_score) AS best_score`).
		Joins("JOIN quality_checks q ON q.batch_id = b.id AND q.deleted_at IS NULL").
		Where("b.deleted_at IS NULL").
		Where("b.status = ?", models.StatusStored).
		Where("q.total_score >= ?", models.QCPassThreshold).
		Group("b.id, b.batch_number, b.origin, b.current_quantity_kg, b.is_aging")
}

func (s *service) ReadyForProcessing(ctx context.Context) ([]ReadyBatchRow, error) {
	var rows []ReadyBatchRow
	err := s.readyQuery(ctx).Order("b.id ASC").Scan(&rows).Error
	return rows, err
}

func (s *service) Dashboard(ctx context.Context) (DashboardSummary, error) {
	var out DashboardSummary

	if err := s.db.WithContext(ctx).Model(&models.Batch{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&out.BatchesByStatus).Error; err != nil {
		return out, err
	}

	if err := s.db.WithContext(ctx).Model(&models.ProcessingRun{}).
		Where("status = ?", models.RunOpen).
		Count(&out.OpenRuns).Error; err != nil {
		return out, err
	}

	if err := s.db.WithContext(ctx).
		Table("(?) AS ready", s.readyQuery(ctx)).
		Count(&out.ReadyBatches).Error; err != nil {
		return out, err
	}

	if err := s.db.WithContext(ctx).
		Where("quantity <= low_stock_threshold").
		Find(&out.LowStockBags).Error; err != nil {
		return out, err
	}

	if err := s.db.WithContext(ctx).Model(&models.Batch{}).
		Where("is_aging = true").
		Count(&out.AgingBatches).Error; err != nil {
		return out, err
	}

	return out, nil
}

// MarkAgingBatches flags batches warehoused longer than olderThan that are
// still awaiting processing or export.
func (s *service) MarkAgingBatches(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-olderThan)
	res := s.db.WithContext(ctx).Model(&models.Batch{}).
		Where("is_aging = false").
		Where("warehouse_entry_at IS NOT NULL AND warehouse_entry_at < ?", cutoff).
		Where("status IN ?", []models.BatchStatus{models.StatusAtWarehouse, models.StatusStored}).
		Update("is_aging", true)
	return res.RowsAffected, res.Error
}
