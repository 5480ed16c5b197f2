package models

import "gorm.io/gorm"

type Supplier struct {
	gorm.Model
	Name   string `json:"name" gorm:"size:180;uniqueIndex"`
	Origin string `json:"origin" gorm:"size:120"`
	Phone  string `json:"phone" gorm:"size:60"`
}

// ThirdPartyEntity owns batches we process as a service rather than purchase.
type ThirdPartyEntity struct {
	gorm.Model
	Name    string `json:"name" gorm:"size:180;uniqueIndex"`
	Contact string `json:"contact" gorm:"size:180"`
	Phone   string `json:"phone" gorm:"size:60"`
}
