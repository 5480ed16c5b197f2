package models

import (
	"time"

	"gorm.io/gorm"
)

// WarehouseEntry is one storage movement (arrival, reject move, export
// dispatch) for a batch. A batch accumulates several over its life.
type WarehouseEntry struct {
	gorm.Model
	WarehouseNumber  string    `json:"warehouse_number" gorm:"uniqueIndex;size:40"`
	BatchID          uint      `json:"batch_id" gorm:"index"`
	Batch            Batch     `json:"batch,omitempty" gorm:"foreignKey:BatchID"`
	EntryType        EntryType `json:"entry_type" gorm:"size:20"`
	StorageLocations string    `json:"storage_locations" gorm:"size:255"` // comma-joined labels
	ArrivalWeightKg  float64   `json:"arrival_weight_kg"`
	BagCount         int       `json:"bag_count"`
	MoisturePercent  *float64  `json:"moisture_percent"`
	Temperature      *float64  `json:"temperature"`
	ReceivedByID     uint      `json:"received_by_id"`
	ReceivedAt       time.Time `json:"received_at"`
}
