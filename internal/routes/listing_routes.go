package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"foodbridge/internal/controllers"
	"foodbridge/internal/middleware"
)

func ListingRoutes(r *gin.Engine, db *gorm.DB, auth *middleware.Auth) {
	ctrl := controllers.NewListingController(db)

	group := r.Group("/api/listings")
	group.Use(auth.RequireAuth())
	{
		group.GET("", ctrl.ListListings)
		group.POST("", ctrl.CreateListing)
		group.GET("/:id", ctrl.GetListing)
		group.PUT("/:id", ctrl.UpdateListing)
		group.DELETE("/:id", ctrl.DeleteListing)
	}
}
