package controllers

import (
	"encoding/binary"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"foodbridge/internal/audit"
	"foodbridge/internal/middleware"
	"foodbridge/internal/models"

	"github.com/twpayne/go-geom"
	gjson "github.com/twpayne/go-geom/encoding/geojson"
	"github.com/twpayne/go-geom/encoding/wkb"
)

type ListingController struct {
	DB *gorm.DB
}

func NewListingController(db *gorm.DB) *ListingController {
	return &ListingController{DB: db}
}

// ListingResponse mirrors models.Listing but carries the pickup point
// as a GeoJSON string for API output.
type ListingResponse struct {
	models.Listing
	Geometry string `json:"geometry,omitempty"`
}

func toListingResponse(listing models.Listing) ListingResponse {
	jsonGeom, _ := convertWKBToGeoJSON(listing.Geometry)
	return ListingResponse{Listing: listing, Geometry: jsonGeom}
}

func toListingResponses(listings []models.Listing) []ListingResponse {
	out := make([]ListingResponse, 0, len(listings))
	for _, l := range listings {
		out = append(out, toListingResponse(l))
	}
	return out
}

// pointWKB encodes a lat/lng pair as a WKB point (SRID 4326).
func pointWKB(lat, lng float64) ([]byte, error) {
	p := geom.NewPointFlat(geom.XY, []float64{lng, lat})
	p.SetSRID(4326)
	return wkb.Marshal(p, binary.LittleEndian)
}

// convertWKBToGeoJSON converts WKB bytes into a GeoJSON string
func convertWKBToGeoJSON(wkbBytes []byte) (string, error) {
	if len(wkbBytes) == 0 {
		return "", nil
	}
	g, err := wkb.Unmarshal(wkbBytes)
	if err != nil {
		return "", err
	}
	b, err := gjson.Marshal(g)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ListListings returns listings newest-first, optionally filtered by
// status, donor or category.
func (l *ListingController) ListListings(c *gin.Context) {
	query := l.DB.Model(&models.Listing{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if donorID := c.Query("donor_id"); donorID != "" {
		query = query.Where("donor_id = ?", donorID)
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var listings []models.Listing
	if err := query.Order("created_at DESC").Limit(500).Find(&listings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch listings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": toListingResponses(listings)})
}

// GetListing retrieves a listing by ID
func (l *ListingController) GetListing(c *gin.Context) {
	id := c.Param("id")
	var listing models.Listing
	if err := l.DB.First(&listing, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
		return
	}
	c.JSON(http.StatusOK, toListingResponse(listing))
}

// CreateListing lets a donor publish surplus food.
func (l *ListingController) CreateListing(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user.Role != "donor" && user.Role != "admin" {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only donors can create listings"})
		return
	}

	var input struct {
		FoodName         string  `json:"food_name" binding:"required"`
		Category         string  `json:"category"`
		Quantity         float64 `json:"quantity" binding:"required"`
		PreparationTime  string  `json:"preparation_time"`
		ExpiryTime       string  `json:"expiry_time" binding:"required"`
		StorageCondition string  `json:"storage_condition"`
		PickupAddress    string  `json:"pickup_address"`
		Latitude         float64 `json:"latitude"`
		Longitude        float64 `json:"longitude"`
		UrgentFlag       bool    `json:"urgent_flag"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		logrus.WithError(err).Warn("CreateListing: invalid input payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid listing input: " + err.Error()})
		return
	}

	if input.Quantity <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be greater than 0"})
		return
	}
	if input.StorageCondition == "" {
		input.StorageCondition = "room_temp"
	}

	donorName := user.OrgName
	if donorName == "" {
		donorName = user.Email
	}

	wkbGeom, err := pointWKB(input.Latitude, input.Longitude)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid location: " + err.Error()})
		return
	}

	listing := models.Listing{
		DonorID:          user.ID,
		DonorName:        donorName,
		FoodName:         input.FoodName,
		Category:         input.Category,
		Quantity:         input.Quantity,
		PreparationTime:  input.PreparationTime,
		ExpiryTime:       input.ExpiryTime,
		StorageCondition: input.StorageCondition,
		PickupAddress:    input.PickupAddress,
		Location:         models.Location{Lat: input.Latitude, Lng: input.Longitude},
		Geometry:         wkbGeom,
		UrgentFlag:       input.UrgentFlag,
		Status:           models.ListingAvailable,
	}
	if err := l.DB.Create(&listing).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create listing: " + err.Error()})
		return
	}

	audit.Record(l.DB, user, "create_listing",
		fmt.Sprintf("Created listing: %s (%vkg)", listing.FoodName, listing.Quantity))

	c.JSON(http.StatusCreated, toListingResponse(listing))
}

// UpdateListing applies a partial update. Only the owning donor or an
// admin may mutate; lat/lng changes rebuild the stored point.
func (l *ListingController) UpdateListing(c *gin.Context) {
	user := middleware.CurrentUser(c)
	id := c.Param("id")

	var listing models.Listing
	if err := l.DB.First(&listing, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
		return
	}
	if listing.DonorID != user.ID && user.Role != "admin" {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized"})
		return
	}

	var input struct {
		FoodName         *string  `json:"food_name"`
		Category         *string  `json:"category"`
		Quantity         *float64 `json:"quantity"`
		ExpiryTime       *string  `json:"expiry_time"`
		StorageCondition *string  `json:"storage_condition"`
		PickupAddress    *string  `json:"pickup_address"`
		Latitude         *float64 `json:"latitude"`
		Longitude        *float64 `json:"longitude"`
		UrgentFlag       *bool    `json:"urgent_flag"`
		Status           *string  `json:"status"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Quantity != nil && *input.Quantity <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be greater than 0"})
		return
	}

	if input.FoodName != nil {
		listing.FoodName = *input.FoodName
	}
	if input.Category != nil {
		listing.Category = *input.Category
	}
	if input.Quantity != nil {
		listing.Quantity = *input.Quantity
	}
	if input.ExpiryTime != nil {
		listing.ExpiryTime = *input.ExpiryTime
	}
	if input.StorageCondition != nil {
		listing.StorageCondition = *input.StorageCondition
	}
	if input.PickupAddress != nil {
		listing.PickupAddress = *input.PickupAddress
	}
	if input.UrgentFlag != nil {
		listing.UrgentFlag = *input.UrgentFlag
	}
	if input.Status != nil {
		listing.Status = *input.Status
	}

	if input.Latitude != nil || input.Longitude != nil {
		if input.Latitude != nil {
			listing.Location.Lat = *input.Latitude
		}
		if input.Longitude != nil {
			listing.Location.Lng = *input.Longitude
		}
		wkbGeom, err := pointWKB(listing.Location.Lat, listing.Location.Lng)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid location: " + err.Error()})
			return
		}
		listing.Geometry = wkbGeom
	}

	if err := l.DB.Save(&listing).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update listing: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, toListingResponse(listing))
}

// DeleteListing removes a listing; same ownership rule as update.
func (l *ListingController) DeleteListing(c *gin.Context) {
	user := middleware.CurrentUser(c)
	id := c.Param("id")

	var listing models.Listing
	if err := l.DB.First(&listing, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
		return
	}
	if listing.DonorID != user.ID && user.Role != "admin" {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized"})
		return
	}

	if err := l.DB.Delete(&listing).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete listing"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Listing deleted"})
}
