package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"foodbridge/internal/evaluation"
	"foodbridge/internal/models"
)

type EvaluationController struct {
	DB *gorm.DB
}

func NewEvaluationController(db *gorm.DB) *EvaluationController {
	return &EvaluationController{DB: db}
}

// GetEvaluation feeds live platform aggregates into the rule-based
// model scoring.
func (e *EvaluationController) GetEvaluation(c *gin.Context) {
	var in evaluation.Inputs

	if err := e.DB.Model(&models.Listing{}).
		Select("COALESCE(SUM(quantity), 0)").Scan(&in.TotalFoodKg).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not aggregate listings"})
		return
	}
	e.DB.Model(&models.User{}).Where("role = ?", "donor").Count(&in.TotalDonors)
	e.DB.Model(&models.User{}).Where("role = ?", "ngo").Count(&in.TotalNgos)
	e.DB.Model(&models.Pickup{}).Count(&in.TotalPickups)
	e.DB.Model(&models.Pickup{}).Where("status = ?", models.PickupDelivered).Count(&in.CompletedPickups)

	c.JSON(http.StatusOK, evaluation.ComputeScores(in))
}
