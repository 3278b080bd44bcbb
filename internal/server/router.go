// internal/server/router.go
package server

import (
	"net/http"
	"time"

	"corpsite-backend/internal/common/config"
	"corpsite-backend/internal/common/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	FormFields   *FormFieldHandler
	Applications *ApplicationHandler
	Jobs         *JobHandler
	Inquiries    *InquiryHandler
}

// NewRouter wires the full route table. Public submission endpoints get the
// rate limiter when one is configured.
func NewRouter(cfg *config.Config, h Handlers, redisClient *redis.Client, log logger.Logger) *gin.Engine {
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(MetricsMiddleware())

	corsCfg := cors.DefaultConfig()
	if len(cfg.Server.AllowedOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.Server.AllowedOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	router.Use(cors.New(corsCfg))

	var limiter gin.HandlerFunc
	if cfg.RateLimit.Enabled && redisClient != nil {
		limiter = NewRateLimiter(RateLimiterConfig{
			RedisClient: redisClient,
			Limit:       cfg.RateLimit.Limit,
			Window:      time.Duration(cfg.RateLimit.Window) * time.Millisecond,
		})
		log.Info("Rate limiter enabled", map[string]interface{}{
			"limit":     cfg.RateLimit.Limit,
			"window_ms": cfg.RateLimit.Window,
		})
	}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Form schema registry.
	router.GET("/job-form-fields/:job_id", h.FormFields.List)
	router.POST("/job-form-fields", h.FormFields.Create)
	router.PUT("/job-form-fields/:id", h.FormFields.Update)
	router.DELETE("/job-form-fields/:id", h.FormFields.Delete)

	// Application intake and approval pipeline.
	router.GET("/applications", h.Applications.List)
	router.POST("/applications", withLimiter(limiter, h.Applications.Submit)...)
	router.POST("/applications/:id/:action", h.Applications.UpdateStatus)

	// Career postings.
	router.GET("/jobs", h.Jobs.List)
	router.GET("/jobs/:id", h.Jobs.Get)
	router.POST("/jobs", h.Jobs.Create)
	router.PUT("/jobs/:id", h.Jobs.Update)
	router.DELETE("/jobs/:id", h.Jobs.Delete)

	// Public inquiries.
	router.POST("/contact", withLimiter(limiter, h.Inquiries.SubmitContact)...)
	router.POST("/quote", withLimiter(limiter, h.Inquiries.SubmitQuote)...)
	router.GET("/contacts", h.Inquiries.ListContacts)
	router.GET("/quotes", h.Inquiries.ListQuotes)

	return router
}

func withLimiter(limiter gin.HandlerFunc, handler gin.HandlerFunc) []gin.HandlerFunc {
	if limiter == nil {
		return []gin.HandlerFunc{handler}
	}
	return []gin.HandlerFunc{limiter, handler}
}
