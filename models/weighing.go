package models

import (
	"time"

	"gorm.io/gorm"
)

// VehicleWeighingRecord is one gate weigh-in event for a batch.
type VehicleWeighingRecord struct {
	gorm.Model
	BatchID      uint      `json:"batch_id" gorm:"index"`
	Batch        Batch     `json:"batch,omitempty" gorm:"foreignKey:BatchID"`
	VehiclePlate string    `json:"vehicle_plate" gorm:"size:40"`
	GrossWeight  float64   `json:"gross_weight"`
	TareWeight   float64   `json:"tare_weight"`
	NetWeight    float64   `json:"net_weight"` // gross - tare, recomputed on edit
	RecordedByID uint      `json:"recorded_by_id"`
	RecordedAt   time.Time `json:"recorded_at"`
}
