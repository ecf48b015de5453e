package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/alpho07/mnch-mentorship-sub006/internal/clients/redis"
	"github.com/alpho07/mnch-mentorship-sub006/internal/db"
	"github.com/alpho07/mnch-mentorship-sub006/internal/export"
	"github.com/alpho07/mnch-mentorship-sub006/internal/handlers"
	"github.com/alpho07/mnch-mentorship-sub006/internal/logger"
	"github.com/alpho07/mnch-mentorship-sub006/internal/repos"
	"github.com/alpho07/mnch-mentorship-sub006/internal/server"
	"github.com/alpho07/mnch-mentorship-sub006/internal/services"
	"github.com/alpho07/mnch-mentorship-sub006/internal/utils"
)

func main() {
	_ = godotenv.Load()

	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err := postgresService.AutoMigrateAll(); err != nil {
		log.Warn("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up repos from main...")
	trainingRepo := repos.NewTrainingRepo(thePG, log)
	participantRepo := repos.NewParticipantRepo(thePG, log)
	personRepo := repos.NewPersonRepo(thePG, log)

	// Preview session store
	previewTTL := time.Duration(utils.GetEnvAsInt("PREVIEW_SESSION_TTL", 1800, log)) * time.Second
	sessions, err := redis.NewPreviewStore(log, previewTTL)
	if err != nil {
		log.Warn("Redis preview store unavailable, using in-memory store", "error", err)
		sessions = export.NewMemorySessionStore(previewTTL)
	}

	// Services
	log.Info("Setting up services from main...")
	maxTrainings := utils.GetEnvAsInt("MAX_EXPORT_TRAININGS", 100, log)
	maxRows := utils.GetEnvAsInt("MAX_EXPORT_ROWS", 50000, log)
	exportService := services.NewExportService(
		thePG,
		log,
		trainingRepo,
		participantRepo,
		personRepo,
		sessions,
		maxTrainings,
		maxRows,
	)

	// Handlers
	log.Info("Setting up handlers from main...")
	exportHandler := handlers.NewExportHandler(log, exportService)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		ExportHandler: exportHandler,
	})

	port := utils.GetEnv("PORT", "8080", log)
	log.Info("Server listening", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Server stopped", "error", err)
	}
}
