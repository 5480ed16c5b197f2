package models

import "gorm.io/gorm"

// BagCapacities is the closed set of jute bag sizes (kg) and their capacities.
var BagCapacities = map[int]float64{
	30: 30,
	50: 50,
	60: 60,
	85: 85,
}

func ValidBagSize(size int) bool {
	_, ok := BagCapacities[size]
	return ok
}

// JuteBagInventory holds stock-on-hand for one bag size. Decremented only by
// processing-run completion; restocked explicitly. A decrement may drive the
// quantity negative — low stock raises a notification, never a hard stop.
type JuteBagInventory struct {
	gorm.Model
	BagSizeKg         int     `json:"bag_size_kg" gorm:"uniqueIndex"`
	Quantity          int     `json:"quantity"`
	PricePerBag       float64 `json:"price_per_bag"`
	LowStockThreshold int     `json:"low_stock_threshold"`
}

func (j *JuteBagInventory) LowStock() bool {
	return j.Quantity <= j.LowStockThreshold
}
