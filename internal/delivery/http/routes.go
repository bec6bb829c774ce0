package http

import (
	"github.com/gin-gonic/gin"
	"github.com/unitprice/backend/config"
	"github.com/unitprice/backend/internal/infrastructure/metrics"
)

// SetupRouter creates and configures the Gin router. m may be nil when metrics are disabled.
func SetupRouter(cfg *config.Config, handler *Handler, m *metrics.Metrics) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.SetHTMLTemplate(formTemplates())

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	if m != nil {
		router.Use(MetricsMiddleware(m))
	}
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	if m != nil && cfg.Metrics.Enabled {
		router.GET(cfg.Metrics.Path, gin.WrapH(m.Handler()))
	}

	limited := router.Group("/")
	if cfg.RateLimit.PerIP > 0 && cfg.RateLimit.Burst > 0 {
		limited.Use(RateLimitMiddleware(NewIPRateLimiter(cfg.RateLimit.PerIP, cfg.RateLimit.Burst)))
	}

	// Comparison form
	limited.GET("/", handler.ShowForm)
	limited.POST("/", handler.SubmitForm)

	// API v1 routes
	v1 := limited.Group("/api/v1")
	{
		units := v1.Group("/units")
		{
			units.GET("", handler.ListUnits)
			units.GET("/compatible", handler.CompatibleUnits)
			units.POST("/convert", handler.ConvertUnits)
		}

		prices := v1.Group("/prices")
		{
			prices.POST("/compare", handler.ComparePrices)
		}
	}

	return router
}
