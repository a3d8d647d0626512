package models

import (
	"time"

	"gorm.io/gorm"
)

// Pickup statuses, in workflow order.
const (
	PickupPending   = "pending"
	PickupAccepted  = "accepted"
	PickupEnRoute   = "en_route"
	PickupCollected = "collected"
	PickupDelivered = "delivered"
)

// Listing statuses.
const (
	ListingAvailable = "available"
	ListingReserved  = "reserved"
	ListingPickedUp  = "picked_up"
	ListingDelivered = "delivered"
)

// pickupTransitions is the full adjacency of the workflow: linear,
// no branching, no cancellation. delivered is terminal.
var pickupTransitions = map[string]string{
	PickupPending:   PickupAccepted,
	PickupAccepted:  PickupEnRoute,
	PickupEnRoute:   PickupCollected,
	PickupCollected: PickupDelivered,
}

// CanTransition reports whether a pickup in state current may move to target.
func CanTransition(current, target string) bool {
	next, ok := pickupTransitions[current]
	return ok && next == target
}

// Pickup is an NGO's claim on a listing, tracked through the
// collection-and-delivery workflow. Never deleted.
type Pickup struct {
	gorm.Model
	ListingID uint `json:"listing_id" gorm:"index"`
	NgoID     uint `json:"ngo_id" gorm:"index"`

	// Denormalized for dashboards so reads stay single-table.
	ListingName     string  `json:"listing_name"`
	ListingQuantity float64 `json:"listing_quantity"`
	DonorName       string  `json:"donor_name"`
	NgoName         string  `json:"ngo_name"`

	Status string `json:"status" gorm:"index;default:pending"`
	Notes  string `json:"notes"`

	AcceptedAt  *time.Time `json:"-"`
	EnRouteAt   *time.Time `json:"-"`
	CollectedAt *time.Time `json:"-"`
	DeliveredAt *time.Time `json:"-"`
}

// Timestamps assembles the per-state entry times keyed the way the
// status values are spelled; unreached states map to nil.
func (p *Pickup) Timestamps() map[string]*time.Time {
	created := p.CreatedAt
	return map[string]*time.Time{
		"created":       &created,
		PickupAccepted:  p.AcceptedAt,
		PickupEnRoute:   p.EnRouteAt,
		PickupCollected: p.CollectedAt,
		PickupDelivered: p.DeliveredAt,
	}
}

// StampEntry records entry into a state on the matching column.
func (p *Pickup) StampEntry(status string, at time.Time) {
	switch status {
	case PickupAccepted:
		p.AcceptedAt = &at
	case PickupEnRoute:
		p.EnRouteAt = &at
	case PickupCollected:
		p.CollectedAt = &at
	case PickupDelivered:
		p.DeliveredAt = &at
	}
}
