package config

import (
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"foodbridge/internal/models"
)

// InitDB opens the Postgres connection and runs migrations.
func InitDB(cfg Config) *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, cfg.DBSSLMode, cfg.DBTimezone,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := Migrate(db); err != nil {
		log.Fatalf("auto-migration failed: %v", err)
	}

	return db
}

// Migrate creates tables and the indexes declared on the models:
// unique user email, listing donor/status, pickup listing/ngo.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Listing{},
		&models.Pickup{},
		&models.Redistribution{},
		&models.AuditLog{},
	)
}

// SeedAdmin ensures the configured admin account exists. No-op when
// ADMIN_EMAIL/ADMIN_PASSWORD are unset or the account is already there.
func SeedAdmin(db *gorm.DB, cfg Config) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}

	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", cfg.AdminEmail).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		Email:    cfg.AdminEmail,
		Password: string(hash),
		Role:     "admin",
	}
	return db.Create(&admin).Error
}
