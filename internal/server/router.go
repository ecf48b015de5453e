package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/alpho07/mnch-mentorship-sub006/internal/handlers"
)

type RouterConfig struct {
	ExportHandler *handlers.ExportHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5174",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	{
		api.POST("/exports", cfg.ExportHandler.CreateExport)
		api.POST("/exports/preview", cfg.ExportHandler.CreatePreview)
		api.GET("/exports/preview/:id", cfg.ExportHandler.GetPreviewPage)
		api.POST("/exports/preview/:id/download", cfg.ExportHandler.DownloadPreviewView)
	}

	return router
}
