package main

import (
	"log"

	"catalog-migrate/internal/api"
	"catalog-migrate/internal/store"
	"catalog-migrate/pkg/router"
	"catalog-migrate/pkg/utils"

	"github.com/joho/godotenv"
)

// @title Catalog Migrate API
// @version 1.0
// @description API for launching and monitoring uStore to MDSF catalog migration runs
// @BasePath /api/v1
func main() {
	// Optional .env for local development
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	if err := store.InitDB(utils.GetEnv("MIGRATE_DB", "migrate.db")); err != nil {
		log.Fatalf("Failed to open tracking database: %v", err)
	}

	r := router.New()
	api.RegisterRoutes(r)
	r.Start(utils.GetEnv("MIGRATE_ADDR", ":8080"))
}
