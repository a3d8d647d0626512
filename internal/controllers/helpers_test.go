package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"foodbridge/internal/config"
	"foodbridge/internal/middleware"
	"foodbridge/internal/models"
	"foodbridge/internal/routes"
)

func setupTest(t *testing.T) (*gin.Engine, *gorm.DB, *middleware.Auth) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	// A named shared in-memory database so every connection in the
	// pool sees the same data.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))

	auth := middleware.NewAuth("test-secret", db)
	return routes.SetupRouter(db, auth), db, auth
}

// seedUser writes a user straight to the store and mints a token for it.
func seedUser(t *testing.T, db *gorm.DB, auth *middleware.Auth, role, email string) (models.User, string) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		Email:    email,
		Password: string(hash),
		Role:     role,
		OrgName:  role + " org",
	}
	require.NoError(t, db.Create(&user).Error)

	token, err := auth.GenerateToken(user)
	require.NoError(t, err)
	return user, token
}

func doRequest(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// createListing publishes a listing through the API and returns its id.
func createListing(t *testing.T, r *gin.Engine, token string, name string, quantity float64) uint {
	t.Helper()
	w := doRequest(t, r, http.MethodPost, "/api/listings", token, gin.H{
		"food_name":   name,
		"category":    "cooked",
		"quantity":    quantity,
		"expiry_time": "2026-01-01T00:00:00Z",
		"latitude":    28.6139,
		"longitude":   77.2090,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decode(t, w)
	return uint(body["ID"].(float64))
}

// createPickup claims a listing through the API and returns the pickup id.
func createPickup(t *testing.T, r *gin.Engine, token string, listingID uint) uint {
	t.Helper()
	w := doRequest(t, r, http.MethodPost, "/api/pickups", token, gin.H{"listing_id": listingID})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decode(t, w)
	return uint(body["ID"].(float64))
}

func listingStatus(t *testing.T, db *gorm.DB, id uint) string {
	t.Helper()
	var listing models.Listing
	require.NoError(t, db.First(&listing, id).Error)
	return listing.Status
}
