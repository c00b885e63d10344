package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"trashit/internal/config"
	"trashit/internal/handler"
	"trashit/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	logger *zap.Logger,
	valuationH *handler.ValuationHandler,
	rateCardH *handler.RateCardHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics())
		r.GET(cfg.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	// Health checks
	r.GET("/health", healthH.Health)
	r.GET("/readyz", healthH.Readiness)

	r.POST("/analyze-waste", valuationH.Analyze)

	r.GET("/rate-card", rateCardH.Get)
	r.GET("/rate-card/export", rateCardH.Export)

	return r
}
