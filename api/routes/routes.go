package routes

import (
	"time"

	"github.com/2Lynk/DeathLogger-server/api/handlers"
	"github.com/2Lynk/DeathLogger-server/api/middleware"
	"github.com/2Lynk/DeathLogger-server/config"
	"github.com/2Lynk/DeathLogger-server/internal/intake"
	"github.com/2Lynk/DeathLogger-server/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// SetupRoutes sets up all the routes for the server
func SetupRoutes(r *gin.Engine, cfg *config.Config, svc service.Service, in *intake.Intake, log *logrus.Logger) {
	// Health check
	health := handlers.NewHealthHandler(svc)
	r.GET("/health", health.Health)

	// HTML pages
	pages := handlers.NewPagesHandler(svc, log, cfg.Server.PageSize)
	r.GET("/", pages.Home)
	r.GET("/death/:id", pages.Death)
	r.GET("/player/:slug", pages.Player)

	// JSON API
	deaths := handlers.NewDeathsHandler(svc, log)
	api := r.Group("/api")
	api.GET("/deaths", deaths.ListDeaths)
	api.GET("/death/:id", deaths.GetDeath)

	// Addon upload endpoint
	maxBytes := int64(cfg.Uploads.MaxSizeMB) << 20
	upload := handlers.NewUploadHandler(svc, in, log, maxBytes)
	r.POST("/upload", upload.UploadDeath)

	// Static assets and stored screenshots, served with caching headers
	assets := r.Group("/", middleware.CacheControl(24*time.Hour))
	assets.Static("/static", cfg.Server.StaticDir)
	assets.Static(cfg.Uploads.URLPrefix, cfg.Uploads.Dir)
}
