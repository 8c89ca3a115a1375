package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cppla/askboard/config"
	"github.com/cppla/askboard/controllers"
	"github.com/cppla/askboard/middleware"
	"github.com/cppla/askboard/store"
	"github.com/cppla/askboard/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
// accessLog receives access and panic entries; nil falls back to gin.Recovery.
func SetupRouter(s *store.Store, cfg config.AppConfig, accessLog *zap.Logger) *gin.Engine {
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	if accessLog != nil {
		r.Use(utils.Ginzap(accessLog, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(accessLog, false))
	} else {
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", middleware.UserIDHeader, middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 0 || (len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*") {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))
	r.Use(middleware.CurrentUser(cfg.JWTSecret))

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	questionController := controllers.NewQuestionController(s, cfg.RecentLimit, cfg.SimilarLimit)
	statsController := controllers.NewStatsController(s, cfg.TagOptions)

	api := r.Group("/api/v1")
	api.GET("/stats", statsController.GetStats)
	api.GET("/tags", statsController.GetTags)

	questions := api.Group("/questions")
	questions.GET("", questionController.ListQuestions)
	questions.GET("/recent", questionController.RecentQuestions)
	questions.GET("/:id", questionController.GetQuestion)
	questions.GET("/:id/similar", questionController.SimilarQuestions)

	mutating := questions.Group("")
	mutating.Use(middleware.RateLimitMiddleware(cfg.RateLimitPerMinute))
	mutating.POST("", questionController.CreateQuestion)
	mutating.POST("/:id/answers", questionController.AddAnswer)
	mutating.POST("/:id/answers/:answerId/vote", questionController.Vote)
	mutating.POST("/:id/answers/:answerId/accept", questionController.Accept)

	r.NoRoute(func(ctx *gin.Context) {
		utils.Error(ctx, http.StatusNotFound, 40400, "route not found")
	})

	return r
}
