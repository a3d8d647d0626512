package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"foodbridge/internal/models"
)

// Issued tokens are valid for 7 days.
const tokenValidity = 7 * 24 * time.Hour

// Auth verifies bearer credentials and resolves them to user records.
// The signing secret comes from startup configuration, not the
// environment.
type Auth struct {
	secret []byte
	db     *gorm.DB
}

func NewAuth(secret string, db *gorm.DB) *Auth {
	return &Auth{secret: []byte(secret), db: db}
}

// GenerateToken mints an HS256 token carrying the user's id, role and email.
func (a *Auth) GenerateToken(user models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"role":    user.Role,
		"email":   user.Email,
		"exp":     time.Now().Add(tokenValidity).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

// authenticate resolves the bearer credential to a user record and
// stores it in the context. Aborts with 401 and returns false on any
// failure, including an identity that no longer exists.
func (a *Auth) authenticate(c *gin.Context) bool {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
		return false
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return a.secret, nil
	})
	if err != nil || !token.Valid {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
		return false
	}
	userID, ok := claims["user_id"].(float64)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
		return false
	}

	var user models.User
	if err := a.db.First(&user, uint(userID)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		} else {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Could not resolve user"})
		}
		return false
	}
	user.Password = ""

	c.Set("user", user)
	return true
}

// RequireAuth ensures a valid JWT is present and that the identity it
// names still exists. The resolved user (hash stripped) is stored in
// the context for downstream handlers.
func (a *Auth) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !a.authenticate(c) {
			return
		}
		c.Next()
	}
}

// RequireAdmin layers the admin role gate on top of authentication.
func (a *Auth) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !a.authenticate(c) {
			return
		}

		if CurrentUser(c).Role != "admin" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}

		c.Next()
	}
}

// CurrentUser returns the user resolved by RequireAuth.
func CurrentUser(c *gin.Context) models.User {
	return c.MustGet("user").(models.User)
}
