package models

import "gorm.io/gorm"

type User struct {
	gorm.Model
	Email       string `json:"email" gorm:"uniqueIndex;not null"`
	Password    string `json:"-"`
	Role        string `json:"role" gorm:"index"` // "donor", "ngo", "admin"
	OrgName     string `json:"org_name"`
	ServiceArea string `json:"service_area"`
	Phone       string `json:"phone"`
}
