package models

import "gorm.io/gorm"

// AuditLog is an append-only trail of mutating actions.
type AuditLog struct {
	gorm.Model
	UserID    uint   `json:"user_id" gorm:"index"`
	UserEmail string `json:"user_email"`
	Action    string `json:"action"` // "register", "login", "create_listing", "create_pickup", "update_pickup_status"
	Details   string `json:"details"`
}
