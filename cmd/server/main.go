package main

import (
	"log"
	"net/http"

	"foodbridge/internal/config"
	"foodbridge/internal/logger"
	"foodbridge/internal/middleware"
	"foodbridge/internal/routes"
)

func main() {
	// Structured logging to a rotating file
	logger.Setup()

	cfg := config.Load()

	// Connect to the database and run migrations
	db := config.InitDB(cfg)
	if err := config.SeedAdmin(db, cfg); err != nil {
		log.Fatalf("admin seed failed: %v", err)
	}

	auth := middleware.NewAuth(cfg.JWTSecret, db)

	r := routes.SetupRouter(db, auth)

	// Wrap with CORS for the configured origins
	handler := middleware.EnableCORS(r, cfg.CORSOrigins)

	log.Printf("🚀 Server running at :%s", cfg.Port)
	log.Fatal(http.ListenAndServe("0.0.0.0:"+cfg.Port, handler))
}
