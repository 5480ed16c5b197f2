package models

import (
	"time"

	"gorm.io/gorm"
)

// QuantityEpsilon tolerates float rounding wherever a kg quantity is compared
// to zero. A batch at or below this is considered fully consumed.
const QuantityEpsilon = 0.01

// Batch is one physical lot of coffee tracked from purchase through export.
// Exactly one of SupplierID / ThirdPartyEntityID is set.
type Batch struct {
	gorm.Model
	BatchNumber         string            `json:"batch_number" gorm:"uniqueIndex;size:40"`
	SupplierID          *uint             `json:"supplier_id"`
	Supplier            *Supplier         `json:"supplier,omitempty" gorm:"foreignKey:SupplierID"`
	ThirdPartyEntityID  *uint             `json:"third_party_entity_id"`
	ThirdPartyEntity    *ThirdPartyEntity `json:"third_party_entity,omitempty" gorm:"foreignKey:ThirdPartyEntityID"`
	Origin              string            `json:"origin" gorm:"size:120"`
	PurchasedQuantityKg float64           `json:"purchased_quantity_kg"`
	CurrentQuantityKg   float64           `json:"current_quantity_kg"`
	PurchaseCost        float64           `json:"purchase_cost"`
	Currency            string            `json:"currency" gorm:"size:10;default:ETB"`
	ExchangeRate        float64           `json:"exchange_rate"`
	Status              BatchStatus       `json:"status" gorm:"size:20;index"`
	CurrentLocation     string            `json:"current_location" gorm:"size:255"`
	IsAging             bool              `json:"is_aging" gorm:"default:false"`
	WarehouseEntryAt    *time.Time        `json:"warehouse_entry_at"`

	WeighingRecords  []VehicleWeighingRecord `json:"weighing_records,omitempty"`
	WarehouseEntries []WarehouseEntry        `json:"warehouse_entries,omitempty"`
	QualityChecks    []QualityCheck          `json:"quality_checks,omitempty"`
	StorageCosts     []StorageCost           `json:"storage_costs,omitempty"`
}

// Depleted reports whether the remaining quantity is effectively zero.
func (b *Batch) Depleted() bool {
	return b.CurrentQuantityKg <= QuantityEpsilon
}
