package models

import (
	"time"

	"gorm.io/gorm"
)

// ProcessingRun is one processing operation consuming weight from one or more
// batches. Input weight is deducted from the batches at start; export/reject/
// waste and bag packing are settled at completion.
type ProcessingRun struct {
	gorm.Model
	RunNumber      string     `json:"run_number" gorm:"uniqueIndex;size:40"`
	Status         RunStatus  `json:"status" gorm:"size:20;index"`
	Grade          string     `json:"grade" gorm:"size:60"`
	ExportQuantity float64    `json:"export_quantity"`
	RejectQuantity float64    `json:"reject_quantity"`
	WasteQuantity  float64    `json:"waste_quantity"`
	YieldRatio     float64    `json:"yield_ratio"`
	OutputBagSize  int        `json:"output_bag_size"`
	BagsUsed       int        `json:"bags_used"`
	Notes          string     `json:"notes" gorm:"size:500"`
	ProcessedByID  uint       `json:"processed_by_id"`
	StartedAt      time.Time  `json:"started_at"`
	CompletedAt    *time.Time `json:"completed_at"`

	Inputs []ProcessingRunInput `json:"inputs,omitempty"`
	Costs  []ProcessingCost     `json:"costs,omitempty"`
}

// ProcessingRunInput records the weight a run claimed from one source batch.
type ProcessingRunInput struct {
	gorm.Model
	ProcessingRunID uint    `json:"processing_run_id" gorm:"index"`
	BatchID         uint    `json:"batch_id" gorm:"index"`
	Batch           Batch   `json:"batch,omitempty" gorm:"foreignKey:BatchID"`
	WeightKg        float64 `json:"weight_kg"`
}

// TotalInputWeight sums the claimed input weights. Completion math always
// recomputes from stored inputs, never from caller-supplied totals.
func (r *ProcessingRun) TotalInputWeight() float64 {
	var total float64
	for _, in := range r.Inputs {
		total += in.WeightKg
	}
	return total
}

// ProcessingCost is an additive cost line on a run (bag cost, labor, fuel...).
type ProcessingCost struct {
	gorm.Model
	ProcessingRunID uint    `json:"processing_run_id" gorm:"index"`
	Description     string  `json:"description" gorm:"size:255"`
	Amount          float64 `json:"amount"`
	Currency        string  `json:"currency" gorm:"size:10;default:ETB"`
	RecordedByID    uint    `json:"recorded_by_id"`
}

// StorageCost is an additive cost line on a batch.
type StorageCost struct {
	gorm.Model
	BatchID      uint    `json:"batch_id" gorm:"index"`
	Description  string  `json:"description" gorm:"size:255"`
	Amount       float64 `json:"amount"`
	Currency     string  `json:"currency" gorm:"size:10;default:ETB"`
	RecordedByID uint    `json:"recorded_by_id"`
}
