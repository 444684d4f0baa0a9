package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/stemsi/qboard/internal/config"
	"github.com/stemsi/qboard/internal/handler"
	"github.com/stemsi/qboard/internal/middleware"
	"github.com/stemsi/qboard/internal/response"
)

// QuestionsPath is the single API resource.
const QuestionsPath = "/api/questions"

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Question *handler.QuestionHandler
	Health   *handler.HealthHandler
}

// SetupRouter configures the Gin engine with its middlewares and routes.
func SetupRouter(handlers *Handlers, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.NoMethod(handler.MethodNotAllowed)
	router.NoRoute(handler.NotFound)

	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestLogger(log))
	if cfg.MetricsEnabled {
		router.Use(middleware.Metrics())
	}

	// JSON headers go first so preflights answered by cors carry them too.
	allowAll := len(cfg.AllowedOrigins) == 0
	router.Use(middleware.JSONHeaders(allowAll))

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*).
	corsConfig := cors.DefaultConfig()
	if allowAll {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	corsConfig.OptionsResponseStatusCode = http.StatusOK
	router.Use(cors.New(corsConfig))

	router.Use(middleware.Brotli())

	router.GET("/health", handlers.Health.Health)
	if cfg.MetricsEnabled {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	// ─── Questions API ─────────────────────────────────────────────────
	api := router.Group(QuestionsPath)
	api.Use(middleware.NoStore())
	{
		api.GET("", handlers.Question.GetQuestions)
		api.OPTIONS("", handlers.Question.Preflight)

		save := []gin.HandlerFunc{}
		if cfg.RateLimitPerMinute > 0 {
			limiter := middleware.NewRateLimiter(cfg.RateLimitPerMinute, time.Minute)
			save = append(save, limiter.Middleware())
		}
		save = append(save, handlers.Question.SaveQuestions)
		api.POST("", save...)
	}

	return router
}
