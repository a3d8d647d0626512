package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodbridge/internal/models"
)

func TestCreateListing(t *testing.T) {
	r, db, auth := setupTest(t)
	donor, token := seedUser(t, db, auth, "donor", "donor@example.com")

	w := doRequest(t, r, http.MethodPost, "/api/listings", token, gin.H{
		"food_name":   "Veg Biryani",
		"category":    "cooked",
		"quantity":    12.5,
		"expiry_time": "2026-01-01T00:00:00Z",
		"latitude":    28.6139,
		"longitude":   77.2090,
		"urgent_flag": true,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decode(t, w)
	assert.Equal(t, "available", body["status"])
	assert.EqualValues(t, donor.ID, body["donor_id"])
	assert.Equal(t, "donor org", body["donor_name"])
	assert.Equal(t, true, body["urgent_flag"])
	assert.Contains(t, body["geometry"], "Point")

	location := body["location"].(map[string]interface{})
	assert.InDelta(t, 28.6139, location["lat"].(float64), 1e-9)
	assert.InDelta(t, 77.2090, location["lng"].(float64), 1e-9)

	var count int64
	db.Model(&models.AuditLog{}).Where("action = ?", "create_listing").Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestCreateListingValidation(t *testing.T) {
	r, db, auth := setupTest(t)
	_, donorToken := seedUser(t, db, auth, "donor", "donor@example.com")
	_, ngoToken := seedUser(t, db, auth, "ngo", "ngo@example.com")

	// Role gate: NGOs cannot publish listings.
	w := doRequest(t, r, http.MethodPost, "/api/listings", ngoToken, gin.H{
		"food_name":   "Bread",
		"quantity":    2.0,
		"expiry_time": "2026-01-01T00:00:00Z",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Non-positive quantity.
	w = doRequest(t, r, http.MethodPost, "/api/listings", donorToken, gin.H{
		"food_name":   "Bread",
		"quantity":    -3.0,
		"expiry_time": "2026-01-01T00:00:00Z",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Missing food name.
	w = doRequest(t, r, http.MethodPost, "/api/listings", donorToken, gin.H{
		"quantity":    2.0,
		"expiry_time": "2026-01-01T00:00:00Z",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListListingsFilters(t *testing.T) {
	r, db, auth := setupTest(t)
	donorA, tokenA := seedUser(t, db, auth, "donor", "a@example.com")
	_, tokenB := seedUser(t, db, auth, "donor", "b@example.com")

	first := createListing(t, r, tokenA, "Rice", 5)
	createListing(t, r, tokenA, "Fruit Crate", 8)
	createListing(t, r, tokenB, "Soup", 3)

	// Reserve one so the status filter has something to exclude.
	require.NoError(t, db.Model(&models.Listing{}).
		Where("id = ?", first).
		Update("status", models.ListingReserved).Error)

	w := doRequest(t, r, http.MethodGet, "/api/listings?status=available", tokenA, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["data"], 2)

	w = doRequest(t, r, http.MethodGet, fmt.Sprintf("/api/listings?donor_id=%d", donorA.ID), tokenA, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["data"], 2)

	w = doRequest(t, r, http.MethodGet, "/api/listings?category=cooked", tokenA, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["data"], 3)
}

func TestGetListingNotFound(t *testing.T) {
	r, db, auth := setupTest(t)
	_, token := seedUser(t, db, auth, "donor", "donor@example.com")

	w := doRequest(t, r, http.MethodGet, "/api/listings/999", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateListing(t *testing.T) {
	r, db, auth := setupTest(t)
	_, ownerToken := seedUser(t, db, auth, "donor", "owner@example.com")
	_, otherToken := seedUser(t, db, auth, "donor", "other@example.com")
	_, adminToken := seedUser(t, db, auth, "admin", "admin@example.com")

	id := createListing(t, r, ownerToken, "Pasta", 4)
	path := fmt.Sprintf("/api/listings/%d", id)

	// Partial update by the owner; lat/lng land in the nested location.
	w := doRequest(t, r, http.MethodPut, path, ownerToken, gin.H{
		"quantity": 6.0,
		"latitude": -1.2921,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.EqualValues(t, 6, body["quantity"])
	location := body["location"].(map[string]interface{})
	assert.InDelta(t, -1.2921, location["lat"].(float64), 1e-9)
	assert.InDelta(t, 77.2090, location["lng"].(float64), 1e-9)

	// A stranger may not mutate it.
	w = doRequest(t, r, http.MethodPut, path, otherToken, gin.H{"quantity": 1.0})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// An admin may.
	w = doRequest(t, r, http.MethodPut, path, adminToken, gin.H{"food_name": "Penne"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDeleteListing(t *testing.T) {
	r, db, auth := setupTest(t)
	_, ownerToken := seedUser(t, db, auth, "donor", "owner@example.com")
	_, otherToken := seedUser(t, db, auth, "donor", "other@example.com")

	id := createListing(t, r, ownerToken, "Salad", 2)
	path := fmt.Sprintf("/api/listings/%d", id)

	w := doRequest(t, r, http.MethodDelete, path, otherToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(t, r, http.MethodDelete, path, ownerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, r, http.MethodGet, path, ownerToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
