package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"foodbridge/internal/audit"
	"foodbridge/internal/middleware"
	"foodbridge/internal/models"
)

type AuthController struct {
	DB   *gorm.DB
	Auth *middleware.Auth
}

func NewAuthController(db *gorm.DB, auth *middleware.Auth) *AuthController {
	return &AuthController{DB: db, Auth: auth}
}

type registerInput struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required"`
	Role        string `json:"role" binding:"required"`
	OrgName     string `json:"org_name"`
	ServiceArea string `json:"service_area"`
	Phone       string `json:"phone"`
}

// Register creates a donor or ngo account. Admin accounts are seeded,
// never registered.
func (a *AuthController) Register(c *gin.Context) {
	var input registerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role := strings.ToLower(strings.TrimSpace(input.Role))
	if role != "donor" && role != "ngo" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Role must be donor or ngo"})
		return
	}

	var existing int64
	if err := a.DB.Model(&models.User{}).Where("email = ?", input.Email).Count(&existing).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error: " + err.Error()})
		return
	}
	if existing > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not hash password"})
		return
	}

	user := models.User{
		Email:       input.Email,
		Password:    string(hash),
		Role:        role,
		OrgName:     input.OrgName,
		ServiceArea: input.ServiceArea,
		Phone:       input.Phone,
	}
	if err := a.DB.Create(&user).Error; err != nil {
		// Backstop for the race the pre-check cannot close.
		if pgErr, ok := err.(*pq.Error); ok && pgErr.Code == "23505" {
			c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create user: " + err.Error()})
		return
	}

	token, err := a.Auth.GenerateToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate token"})
		return
	}

	audit.Record(a.DB, user, "register", fmt.Sprintf("New %s registered: %s", user.Role, user.OrgName))

	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"user":  user,
	})
}

// Login verifies credentials and issues a fresh token.
func (a *AuthController) Login(c *gin.Context) {
	var body struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := a.DB.Where("email = ?", body.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error: " + err.Error()})
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(body.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := a.Auth.GenerateToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate token"})
		return
	}

	audit.Record(a.DB, user, "login", fmt.Sprintf("%s logged in", user.Role))

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}

func (a *AuthController) GetProfile(c *gin.Context) {
	c.JSON(http.StatusOK, middleware.CurrentUser(c))
}

// UpdateProfile mutates the caller's organization metadata. Email,
// role and password stay fixed.
func (a *AuthController) UpdateProfile(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var input struct {
		OrgName     *string `json:"org_name"`
		ServiceArea *string `json:"service_area"`
		Phone       *string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var stored models.User
	if err := a.DB.First(&stored, user.ID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if input.OrgName != nil {
		stored.OrgName = *input.OrgName
	}
	if input.ServiceArea != nil {
		stored.ServiceArea = *input.ServiceArea
	}
	if input.Phone != nil {
		stored.Phone = *input.Phone
	}

	if err := a.DB.Save(&stored).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update profile: " + err.Error()})
		return
	}

	stored.Password = ""
	c.JSON(http.StatusOK, stored)
}
