package models

import "gorm.io/gorm"

// ExchangeRate is an append-only versioned config record: one row per posted
// rate, the highest version per currency is current. Purchase costing reads
// the current row instead of any process-wide mutable setting.
type ExchangeRate struct {
	gorm.Model
	Currency   string  `json:"currency" gorm:"size:10;uniqueIndex:idx_currency_version"`
	Version    int     `json:"version" gorm:"uniqueIndex:idx_currency_version"`
	RateToETB  float64 `json:"rate_to_etb"`
	PostedByID uint    `json:"posted_by_id"`
}
