// internal/models/redistribution.go
package models

import (
	"gorm.io/gorm"
)

// Redistribution records beneficiaries served from a delivered pickup.
// Immutable after creation; no update or delete path exists.
type Redistribution struct {
	gorm.Model
	PickupID  uint `json:"pickup_id" gorm:"index"`
	ListingID uint `json:"listing_id"`
	NgoID     uint `json:"ngo_id" gorm:"index"`

	BeneficiariesCount int     `json:"beneficiaries_count"`
	PortionSize        float64 `json:"portion_size"` // kg per beneficiary
	Notes              string  `json:"notes"`
}
