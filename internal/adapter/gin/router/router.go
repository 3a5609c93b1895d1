package router

import (
	_ "embed"
	"net/http"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"

	"user-balance-service/internal/adapter/gin/handler"
	"user-balance-service/internal/adapter/gin/middleware"
	"user-balance-service/pkg/logger"
)

//go:embed openapi.json
var openAPISpec []byte

// Options toggles the optional endpoints
type Options struct {
	ServiceName   string
	EnableMetrics bool
	EnableDocs    bool
}

// SetupRouter configures and returns a Gin router with all routes and middleware
func SetupRouter(
	userHandler *handler.UserHandler,
	transferHandler *handler.TransferHandler,
	rateLimiter *middleware.RateLimiter,
	opts Options,
	log *zap.Logger,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware
	router.Use(logger.RequestID())
	router.Use(logger.AccessLog(log))
	router.Use(logger.Recovery(log))
	// promhttp negotiates its own compression
	router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))
	if opts.EnableMetrics {
		router.Use(middleware.Metrics())
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": opts.ServiceName,
		})
	})

	if opts.EnableMetrics {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	if opts.EnableDocs {
		router.GET("/openapi.json", func(c *gin.Context) {
			c.Data(http.StatusOK, "application/json", openAPISpec)
		})
		router.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL("/openapi.json"))))
	}

	api := router.Group("")
	api.Use(rateLimiter.Middleware())
	{
		users := api.Group("/users")
		{
			users.POST("", userHandler.CreateUser)
			users.GET("", userHandler.ListUsers)
			users.GET("/:id", userHandler.GetUser)
		}
		api.POST("/transfer", transferHandler.Transfer)
	}

	return router
}
