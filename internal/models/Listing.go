// internal/models/listing.go
package models

import (
	"gorm.io/gorm"
)

// Location is embedded so listings serialize a nested {lat,lng} object.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Listing is a donor's offer of surplus food available for pickup.
// Status moves through available -> reserved -> picked_up -> delivered;
// once a pickup exists it is driven only by the pickup workflow.
type Listing struct {
	gorm.Model
	DonorID   uint   `json:"donor_id" gorm:"index"`
	DonorName string `json:"donor_name"`

	FoodName         string  `json:"food_name" binding:"required"`
	Category         string  `json:"category"`
	Quantity         float64 `json:"quantity"` // kilograms
	PreparationTime  string  `json:"preparation_time"`
	ExpiryTime       string  `json:"expiry_time"`
	StorageCondition string  `json:"storage_condition"` // "room_temp", "refrigerated", "frozen"
	PickupAddress    string  `json:"pickup_address"`

	Location Location `json:"location" gorm:"embedded;embeddedPrefix:location_"`

	// Pickup point stored as WKB (SRID 4326); responses carry GeoJSON.
	Geometry []byte `json:"-" gorm:"type:bytea"`

	UrgentFlag bool   `json:"urgent_flag"`
	Status     string `json:"status" gorm:"index;default:available"`
}
