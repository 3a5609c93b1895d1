package server

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"user-balance-service/cmd/api/di"
	ginrouter "user-balance-service/internal/adapter/gin/router"
)

// SetupGinServer creates and configures the Gin REST API server
func SetupGinServer(c *di.Container, addr string, l *zap.Logger) *http.Server {
	router := ginrouter.SetupRouter(
		c.UserHandler,
		c.TransferHandler,
		c.RateLimiter,
		ginrouter.Options{
			ServiceName:   c.Config.Logger.ServiceName,
			EnableMetrics: c.Config.App.MetricsEnabled,
			EnableDocs:    c.Config.App.DocsEnabled,
		},
		l,
	)

	l.Info("Gin REST API configured", zap.String("address", addr))

	return &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 2 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}
