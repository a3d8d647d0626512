package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"foodbridge/internal/controllers"
	"foodbridge/internal/middleware"
)

func AuthRoutes(r *gin.Engine, db *gorm.DB, auth *middleware.Auth) {
	ctrl := controllers.NewAuthController(db, auth)

	group := r.Group("/api/auth")
	{
		group.POST("/register", ctrl.Register)
		group.POST("/login", ctrl.Login)
		group.GET("/profile", auth.RequireAuth(), ctrl.GetProfile)
		group.PUT("/profile", auth.RequireAuth(), ctrl.UpdateProfile)
	}
}
