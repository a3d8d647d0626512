package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"foodbridge/internal/controllers"
	"foodbridge/internal/middleware"
)

func PickupRoutes(r *gin.Engine, db *gorm.DB, auth *middleware.Auth) {
	ctrl := controllers.NewPickupController(db)

	group := r.Group("/api/pickups")
	group.Use(auth.RequireAuth())
	{
		group.GET("", ctrl.ListPickups)
		group.POST("", ctrl.CreatePickup)
		group.PUT("/:id/status", ctrl.UpdateStatus)
		group.POST("/:id/redistribution", ctrl.CreateRedistribution)
	}
}
