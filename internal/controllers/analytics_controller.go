package controllers

import (
	"math"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"foodbridge/internal/middleware"
	"foodbridge/internal/models"
)

type AnalyticsController struct {
	DB *gorm.DB
}

func NewAnalyticsController(db *gorm.DB) *AnalyticsController {
	return &AnalyticsController{DB: db}
}

// Fixed conversion constants: one kg of recovered food is counted as
// two meals and 2.5kg of avoided CO2.
const (
	mealsPerKg = 2
	co2PerKg   = 2.5
)

// Each role gets its own dashboard shape.

type DonorKPIs struct {
	TotalDonatedKg   float64 `json:"total_donated_kg"`
	CompletedPickups int     `json:"completed_pickups"`
	MealsServed      int     `json:"meals_served"`
	CO2AvoidedKg     float64 `json:"co2_avoided_kg"`
	ActiveListings   int     `json:"active_listings"`
	TotalListings    int     `json:"total_listings"`
}

type DonorDashboard struct {
	KPIs           DonorKPIs         `json:"kpis"`
	RecentListings []ListingResponse `json:"recent_listings"`
}

type NgoKPIs struct {
	PickupsCompleted    int     `json:"pickups_completed"`
	PendingPickups      int     `json:"pending_pickups"`
	BeneficiariesServed int     `json:"beneficiaries_served"`
	TotalCollectedKg    float64 `json:"total_collected_kg"`
	MealsServed         int     `json:"meals_served"`
	CO2AvoidedKg        float64 `json:"co2_avoided_kg"`
}

type NgoDashboard struct {
	KPIs          NgoKPIs          `json:"kpis"`
	RecentPickups []PickupResponse `json:"recent_pickups"`
}

type AdminKPIs struct {
	TotalFoodRecoveredKg float64 `json:"total_food_recovered_kg"`
	ActiveDonors         int64   `json:"active_donors"`
	ActiveNgos           int64   `json:"active_ngos"`
	TotalListings        int64   `json:"total_listings"`
	AvailableListings    int64   `json:"available_listings"`
	CompletedPickups     int64   `json:"completed_pickups"`
	PendingPickups       int64   `json:"pending_pickups"`
	TotalCO2SavedKg      float64 `json:"total_co2_saved_kg"`
	MealsServed          int     `json:"meals_served"`
	BeneficiariesServed  int     `json:"beneficiaries_served"`
}

type AdminDashboard struct {
	KPIs AdminKPIs `json:"kpis"`
}

// Dashboard aggregates KPIs scoped to the caller's role.
func (a *AnalyticsController) Dashboard(c *gin.Context) {
	user := middleware.CurrentUser(c)

	switch user.Role {
	case "donor":
		a.donorDashboard(c, user)
	case "ngo":
		a.ngoDashboard(c, user)
	default:
		a.adminDashboard(c)
	}
}

func (a *AnalyticsController) donorDashboard(c *gin.Context, user models.User) {
	var listings []models.Listing
	if err := a.DB.Where("donor_id = ?", user.ID).Find(&listings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch listings"})
		return
	}

	totalQty := 0.0
	active := 0
	ids := make([]uint, 0, len(listings))
	for _, l := range listings {
		totalQty += l.Quantity
		if l.Status == models.ListingAvailable {
			active++
		}
		ids = append(ids, l.ID)
	}

	completed := 0
	if len(ids) > 0 {
		var pickups []models.Pickup
		if err := a.DB.Where("listing_id IN ?", ids).Find(&pickups).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch pickups"})
			return
		}
		for _, p := range pickups {
			if p.Status == models.PickupDelivered {
				completed++
			}
		}
	}

	var recent []models.Listing
	if err := a.DB.Where("donor_id = ?", user.ID).
		Order("created_at DESC").Limit(10).Find(&recent).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch listings"})
		return
	}

	c.JSON(http.StatusOK, DonorDashboard{
		KPIs: DonorKPIs{
			TotalDonatedKg:   round1(totalQty),
			CompletedPickups: completed,
			MealsServed:      int(totalQty * mealsPerKg),
			CO2AvoidedKg:     round1(totalQty * co2PerKg),
			ActiveListings:   active,
			TotalListings:    len(listings),
		},
		RecentListings: toListingResponses(recent),
	})
}

func (a *AnalyticsController) ngoDashboard(c *gin.Context, user models.User) {
	var pickups []models.Pickup
	if err := a.DB.Where("ngo_id = ?", user.ID).Find(&pickups).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch pickups"})
		return
	}

	completed := 0
	pending := 0
	totalQty := 0.0
	for _, p := range pickups {
		switch p.Status {
		case models.PickupDelivered:
			completed++
			totalQty += p.ListingQuantity
		case models.PickupPending, models.PickupAccepted, models.PickupEnRoute:
			pending++
		}
	}

	var beneficiaries int64
	if err := a.DB.Model(&models.Redistribution{}).
		Where("ngo_id = ?", user.ID).
		Select("COALESCE(SUM(beneficiaries_count), 0)").
		Scan(&beneficiaries).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch redistribution records"})
		return
	}

	var recent []models.Pickup
	if err := a.DB.Where("ngo_id = ?", user.ID).
		Order("created_at DESC").Limit(10).Find(&recent).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch pickups"})
		return
	}

	c.JSON(http.StatusOK, NgoDashboard{
		KPIs: NgoKPIs{
			PickupsCompleted:    completed,
			PendingPickups:      pending,
			BeneficiariesServed: int(beneficiaries),
			TotalCollectedKg:    round1(totalQty),
			MealsServed:         int(totalQty * mealsPerKg),
			CO2AvoidedKg:        round1(totalQty * co2PerKg),
		},
		RecentPickups: toPickupResponses(recent),
	})
}

func (a *AnalyticsController) adminDashboard(c *gin.Context) {
	var (
		totalListings, available         int64
		totalDonors, totalNgos           int64
		completedPickups, pendingPickups int64
		totalQty                         float64
		beneficiaries                    int64
	)

	a.DB.Model(&models.Listing{}).Count(&totalListings)
	a.DB.Model(&models.Listing{}).Where("status = ?", models.ListingAvailable).Count(&available)
	a.DB.Model(&models.Listing{}).Select("COALESCE(SUM(quantity), 0)").Scan(&totalQty)
	a.DB.Model(&models.User{}).Where("role = ?", "donor").Count(&totalDonors)
	a.DB.Model(&models.User{}).Where("role = ?", "ngo").Count(&totalNgos)
	a.DB.Model(&models.Pickup{}).Where("status = ?", models.PickupDelivered).Count(&completedPickups)
	a.DB.Model(&models.Pickup{}).
		Where("status IN ?", []string{models.PickupPending, models.PickupAccepted, models.PickupEnRoute}).
		Count(&pendingPickups)
	a.DB.Model(&models.Redistribution{}).
		Select("COALESCE(SUM(beneficiaries_count), 0)").Scan(&beneficiaries)

	c.JSON(http.StatusOK, AdminDashboard{
		KPIs: AdminKPIs{
			TotalFoodRecoveredKg: round1(totalQty),
			ActiveDonors:         totalDonors,
			ActiveNgos:           totalNgos,
			TotalListings:        totalListings,
			AvailableListings:    available,
			CompletedPickups:     completedPickups,
			PendingPickups:       pendingPickups,
			TotalCO2SavedKg:      round1(totalQty * co2PerKg),
			MealsServed:          int(totalQty * mealsPerKg),
			BeneficiariesServed:  int(beneficiaries),
		},
	})
}

type ChartPoint struct {
	Date     string  `json:"date"`
	Quantity float64 `json:"quantity"`
}

type CategoryQuantity struct {
	Category string  `json:"category"`
	Quantity float64 `json:"quantity"`
}

type TopDonor struct {
	DonorID   uint    `json:"donor_id"`
	DonorName string  `json:"donor_name"`
	TotalKg   float64 `json:"total_kg"`
}

type ChartData struct {
	DonationsOverTime    []ChartPoint       `json:"donations_over_time"`
	CategoryDistribution []CategoryQuantity `json:"category_distribution"`
	TopDonors            []TopDonor         `json:"top_donors"`
}

// Charts buckets all listings into the trailing 31 days (today
// inclusive), plus a category distribution and a top-10 donor ranking.
// Ties break deterministically: categories by name, donors by id.
func (a *AnalyticsController) Charts(c *gin.Context) {
	var listings []models.Listing
	if err := a.DB.Find(&listings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch listings"})
		return
	}

	now := time.Now().UTC()
	overTime := make([]ChartPoint, 0, 31)
	for i := 30; i >= 0; i-- {
		dayStr := now.AddDate(0, 0, -i).Format("2006-01-02")
		dayQty := 0.0
		for _, l := range listings {
			if l.CreatedAt.UTC().Format("2006-01-02") == dayStr {
				dayQty += l.Quantity
			}
		}
		overTime = append(overTime, ChartPoint{Date: dayStr, Quantity: round1(dayQty)})
	}

	categories := map[string]float64{}
	donorTotals := map[uint]float64{}
	donorNames := map[uint]string{}
	for _, l := range listings {
		cat := l.Category
		if cat == "" {
			cat = "other"
		}
		categories[cat] += l.Quantity
		donorTotals[l.DonorID] += l.Quantity
		donorNames[l.DonorID] = l.DonorName
	}

	distribution := make([]CategoryQuantity, 0, len(categories))
	for cat, qty := range categories {
		distribution = append(distribution, CategoryQuantity{Category: cat, Quantity: round1(qty)})
	}
	sort.Slice(distribution, func(i, j int) bool {
		return distribution[i].Category < distribution[j].Category
	})

	topDonors := make([]TopDonor, 0, len(donorTotals))
	for id, total := range donorTotals {
		topDonors = append(topDonors, TopDonor{DonorID: id, DonorName: donorNames[id], TotalKg: round1(total)})
	}
	sort.Slice(topDonors, func(i, j int) bool {
		if topDonors[i].TotalKg != topDonors[j].TotalKg {
			return topDonors[i].TotalKg > topDonors[j].TotalKg
		}
		return topDonors[i].DonorID < topDonors[j].DonorID
	})
	if len(topDonors) > 10 {
		topDonors = topDonors[:10]
	}

	c.JSON(http.StatusOK, ChartData{
		DonationsOverTime:    overTime,
		CategoryDistribution: distribution,
		TopDonors:            topDonors,
	})
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
