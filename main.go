// safemap/main.go
package main

import (
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/waseok/safemap/config"
	"github.com/waseok/safemap/internal/geocode"
	"github.com/waseok/safemap/internal/handlers"
	"github.com/waseok/safemap/internal/routes"
	"github.com/waseok/safemap/internal/storage"
	"github.com/waseok/safemap/models"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using process environment")
	}

	config.LoadConfig()
	config.ConnectDB()
	config.ConnectRedis()

	if err := config.DB.AutoMigrate(
		&models.Class{},
		&models.Student{},
		&models.SafetyPin{},
		&models.Solution{},
		&models.TeacherFeedback{},
	); err != nil {
		slog.Error("database migration failed", "error", err)
		os.Exit(1)
	}

	store, err := storage.NewOSSStoreFromEnv()
	if err != nil {
		slog.Warn("object storage disabled", "error", err)
	} else {
		handlers.Store = store
	}
	handlers.Geocoder = geocode.NewClientFromEnv()

	r := gin.Default()
	routes.SetupRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	slog.Info("starting server", "port", port)
	if err := r.Run(":" + port); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
