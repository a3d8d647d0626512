package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"foodbridge/internal/models"
)

type AdminController struct {
	DB *gorm.DB
}

func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{DB: db}
}

// ListUsers returns all users, optionally filtered by role. Credential
// hashes never serialize.
func (a *AdminController) ListUsers(c *gin.Context) {
	query := a.DB.Model(&models.User{})
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}

	var users []models.User
	if err := query.Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": users})
}

// ListAuditLogs returns the newest audit entries, capped by ?limit=
// (default 100).
func (a *AdminController) ListAuditLogs(c *gin.Context) {
	limit := 100
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		limit = parsed
	}

	var logs []models.AuditLog
	if err := a.DB.Order("created_at DESC").Limit(limit).Find(&logs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch audit logs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": logs})
}

// Stats reports global entity counts.
func (a *AdminController) Stats(c *gin.Context) {
	var totalUsers, totalDonors, totalNgos, totalListings, totalPickups int64

	a.DB.Model(&models.User{}).Count(&totalUsers)
	a.DB.Model(&models.User{}).Where("role = ?", "donor").Count(&totalDonors)
	a.DB.Model(&models.User{}).Where("role = ?", "ngo").Count(&totalNgos)
	a.DB.Model(&models.Listing{}).Count(&totalListings)
	a.DB.Model(&models.Pickup{}).Count(&totalPickups)

	c.JSON(http.StatusOK, gin.H{
		"total_users":    totalUsers,
		"total_donors":   totalDonors,
		"total_ngos":     totalNgos,
		"total_listings": totalListings,
		"total_pickups":  totalPickups,
	})
}
