package routes

import (
	ginlog "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"foodbridge/internal/middleware"
)

func SetupRouter(db *gorm.DB, auth *middleware.Auth) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(ginlog.SetLogger())
	r.Use(middleware.RequestID())

	AuthRoutes(r, db, auth)
	ListingRoutes(r, db, auth)
	PickupRoutes(r, db, auth)
	AnalyticsRoutes(r, db, auth)
	AdminRoutes(r, db, auth)

	return r
}
