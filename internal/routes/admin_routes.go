package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"foodbridge/internal/controllers"
	"foodbridge/internal/middleware"
)

func AdminRoutes(r *gin.Engine, db *gorm.DB, auth *middleware.Auth) {
	ctrl := controllers.NewAdminController(db)

	group := r.Group("/api/admin")
	group.Use(auth.RequireAdmin())
	{
		group.GET("/users", ctrl.ListUsers)
		group.GET("/audit-logs", ctrl.ListAuditLogs)
		group.GET("/stats", ctrl.Stats)
	}
}
