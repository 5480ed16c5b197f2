package models

import (
	"time"

	"gorm.io/gorm"
)

// Contract is an export sales agreement. Created PENDING; decided once by an
// authorized approver, after which the decision is final.
type Contract struct {
	gorm.Model
	ContractNumber string         `json:"contract_number" gorm:"uniqueIndex;size:40"`
	BuyerName      string         `json:"buyer_name" gorm:"size:180"`
	Destination    string         `json:"destination" gorm:"size:120"`
	CoffeeType     string         `json:"coffee_type" gorm:"size:60"`
	Grade          string         `json:"grade" gorm:"size:60"`
	QuantityKg     float64        `json:"quantity_kg"`
	PricePerKg     float64        `json:"price_per_kg"`
	Currency       string         `json:"currency" gorm:"size:10;default:USD"`
	PaymentMethod  string         `json:"payment_method" gorm:"size:60"`
	ShippingDate   *time.Time     `json:"shipping_date"`
	ApprovalStatus ApprovalStatus `json:"approval_status" gorm:"size:20;index"`
	RejectReason   *string        `json:"reject_reason" gorm:"size:255"`
	CreatedByID    uint           `json:"created_by_id"`
	CreatedBy      User           `json:"created_by,omitempty" gorm:"foreignKey:CreatedByID"`
	ApprovedByID   *uint          `json:"approved_by_id"`
	ApprovedBy     *User          `json:"approved_by,omitempty" gorm:"foreignKey:ApprovedByID"`
	DecidedAt      *time.Time     `json:"decided_at"`

	AdditionalCosts []AdditionalCost `json:"additional_costs,omitempty"`
}

// AdditionalCost is an additive cost line on a contract (freight, insurance...).
type AdditionalCost struct {
	gorm.Model
	ContractID   uint    `json:"contract_id" gorm:"index"`
	Description  string  `json:"description" gorm:"size:255"`
	Amount       float64 `json:"amount"`
	Currency     string  `json:"currency" gorm:"size:10;default:ETB"`
	RecordedByID uint    `json:"recorded_by_id"`
}
