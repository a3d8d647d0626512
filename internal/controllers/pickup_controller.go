package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"foodbridge/internal/audit"
	"foodbridge/internal/middleware"
	"foodbridge/internal/models"
)

type PickupController struct {
	DB *gorm.DB
}

func NewPickupController(db *gorm.DB) *PickupController {
	return &PickupController{DB: db}
}

// PickupResponse mirrors models.Pickup plus the per-state entry times
// as a single map.
type PickupResponse struct {
	models.Pickup
	Timestamps map[string]*time.Time `json:"timestamps"`
}

func toPickupResponse(p models.Pickup) PickupResponse {
	return PickupResponse{Pickup: p, Timestamps: p.Timestamps()}
}

func toPickupResponses(pickups []models.Pickup) []PickupResponse {
	out := make([]PickupResponse, 0, len(pickups))
	for _, p := range pickups {
		out = append(out, toPickupResponse(p))
	}
	return out
}

// ListPickups returns pickups newest-first, scoped by role: NGOs see
// their own claims, donors see claims on their own listings.
func (p *PickupController) ListPickups(c *gin.Context) {
	user := middleware.CurrentUser(c)

	query := p.DB.Model(&models.Pickup{})
	switch user.Role {
	case "ngo":
		query = query.Where("ngo_id = ?", user.ID)
	case "donor":
		sub := p.DB.Model(&models.Listing{}).Select("id").Where("donor_id = ?", user.ID)
		query = query.Where("listing_id IN (?)", sub)
	}

	if ngoID := c.Query("ngo_id"); ngoID != "" {
		query = query.Where("ngo_id = ?", ngoID)
	}
	if listingID := c.Query("listing_id"); listingID != "" {
		query = query.Where("listing_id = ?", listingID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var pickups []models.Pickup
	if err := query.Order("created_at DESC").Limit(500).Find(&pickups).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch pickups"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": toPickupResponses(pickups)})
}

// CreatePickup claims an available listing for an NGO. The claim is a
// single conditional UPDATE keyed on the listing status, so two
// concurrent claims cannot both win.
func (p *PickupController) CreatePickup(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user.Role != "ngo" && user.Role != "admin" {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only NGOs can create pickups"})
		return
	}

	var input struct {
		ListingID uint   `json:"listing_id" binding:"required"`
		Notes     string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var listing models.Listing
	if err := p.DB.First(&listing, input.ListingID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
		return
	}

	ngoName := user.OrgName
	if ngoName == "" {
		ngoName = user.Email
	}

	tx := p.DB.Begin()
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start transaction"})
		return
	}

	res := tx.Model(&models.Listing{}).
		Where("id = ? AND status = ?", listing.ID, models.ListingAvailable).
		Update("status", models.ListingReserved)
	if res.Error != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not reserve listing: " + res.Error.Error()})
		return
	}
	if res.RowsAffected == 0 {
		tx.Rollback()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Listing is not available"})
		return
	}

	pickup := models.Pickup{
		ListingID:       listing.ID,
		NgoID:           user.ID,
		ListingName:     listing.FoodName,
		ListingQuantity: listing.Quantity,
		DonorName:       listing.DonorName,
		NgoName:         ngoName,
		Status:          models.PickupPending,
		Notes:           input.Notes,
	}
	if err := tx.Create(&pickup).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create pickup: " + err.Error()})
		return
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Transaction commit failed: " + err.Error()})
		return
	}

	audit.Record(p.DB, user, "create_pickup",
		fmt.Sprintf("Pickup created for listing: %s", listing.FoodName))

	c.JSON(http.StatusCreated, toPickupResponse(pickup))
}

// listingStatusFor maps the pickup transitions that touch the listing.
var listingStatusFor = map[string]string{
	models.PickupCollected: models.ListingPickedUp,
	models.PickupDelivered: models.ListingDelivered,
}

// UpdateStatus advances the pickup workflow one step, stamps the entry
// time and keeps the listing status in lockstep.
func (p *PickupController) UpdateStatus(c *gin.Context) {
	user := middleware.CurrentUser(c)
	id := c.Param("id")

	var input struct {
		Status string `json:"status" binding:"required"`
		Notes  string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var pickup models.Pickup
	if err := p.DB.First(&pickup, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pickup not found"})
		return
	}

	current := pickup.Status
	if !models.CanTransition(current, input.Status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Cannot transition from %s to %s", current, input.Status),
		})
		return
	}

	pickup.Status = input.Status
	pickup.StampEntry(input.Status, time.Now().UTC())
	if input.Notes != "" {
		pickup.Notes = input.Notes
	}

	tx := p.DB.Begin()
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start transaction"})
		return
	}

	if err := tx.Save(&pickup).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update pickup: " + err.Error()})
		return
	}

	if listingStatus, ok := listingStatusFor[input.Status]; ok {
		if err := tx.Model(&models.Listing{}).
			Where("id = ?", pickup.ListingID).
			Update("status", listingStatus).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update listing status: " + err.Error()})
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Transaction commit failed: " + err.Error()})
		return
	}

	audit.Record(p.DB, user, "update_pickup_status",
		fmt.Sprintf("Pickup %d status: %s -> %s", pickup.ID, current, pickup.Status))

	c.JSON(http.StatusOK, toPickupResponse(pickup))
}

// CreateRedistribution records the beneficiary outcome of a delivered
// pickup. Records are immutable once written.
func (p *PickupController) CreateRedistribution(c *gin.Context) {
	user := middleware.CurrentUser(c)
	id := c.Param("id")

	var input struct {
		BeneficiariesCount int     `json:"beneficiaries_count" binding:"required"`
		PortionSize        float64 `json:"portion_size"`
		Notes              string  `json:"notes"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		logrus.WithError(err).Warn("CreateRedistribution: invalid input payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.PortionSize == 0 {
		input.PortionSize = 0.5
	}

	var pickup models.Pickup
	if err := p.DB.First(&pickup, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pickup not found"})
		return
	}
	if pickup.Status != models.PickupDelivered {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Pickup must be delivered first"})
		return
	}

	record := models.Redistribution{
		PickupID:           pickup.ID,
		ListingID:          pickup.ListingID,
		NgoID:              user.ID,
		BeneficiariesCount: input.BeneficiariesCount,
		PortionSize:        input.PortionSize,
		Notes:              input.Notes,
	}
	if err := p.DB.Create(&record).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create redistribution record: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, record)
}
