package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"foodbridge/internal/controllers"
	"foodbridge/internal/middleware"
)

func AnalyticsRoutes(r *gin.Engine, db *gorm.DB, auth *middleware.Auth) {
	analytics := controllers.NewAnalyticsController(db)
	eval := controllers.NewEvaluationController(db)

	group := r.Group("/api/analytics")
	group.Use(auth.RequireAuth())
	{
		group.GET("/dashboard", analytics.Dashboard)
		group.GET("/charts", analytics.Charts)
	}

	r.GET("/api/evaluation", auth.RequireAuth(), eval.GetEvaluation)
}
