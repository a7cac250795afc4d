package api

import (
	"catalog-migrate/internal/api/handler"
	"catalog-migrate/pkg/router"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "catalog-migrate/docs"
)

// RegisterRoutes mounts the migration API and the swagger UI
func RegisterRoutes(r *router.Router) {
	r.POST("/api/v1/migrations", handler.CreateMigration)
	r.GET("/api/v1/migrations", handler.ListMigrations)
	r.GET("/api/v1/migrations/{id}", handler.GetMigration)
	r.GET("/api/v1/migrations/{id}/steps", handler.GetMigrationSteps)
	r.GET("/api/v1/migrations/{id}/errors", handler.GetMigrationErrors)

	r.Handle("/swagger/", httpSwagger.WrapHandler)
}
