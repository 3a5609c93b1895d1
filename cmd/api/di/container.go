package di

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"user-balance-service/cmd/api/infrastructure"
	ginhandler "user-balance-service/internal/adapter/gin/handler"
	"user-balance-service/internal/adapter/gin/middleware"
	"user-balance-service/internal/adapter/memory"
	"user-balance-service/internal/config"
	"user-balance-service/internal/telemetry"
	"user-balance-service/internal/usecase/ledger"
	redisclient "user-balance-service/pkg/redis"
)

// Container holds all application dependencies
type Container struct {
	Config          *config.Config
	Logger          *zap.Logger
	Store           *memory.UserStore
	RedisClient     *redisclient.Client
	LedgerUC        ledger.Usecase
	RateLimiter     *middleware.RateLimiter
	UserHandler     *ginhandler.UserHandler
	TransferHandler *ginhandler.TransferHandler
}

// NewContainer creates and initializes all application dependencies
func NewContainer(ctx context.Context, cfg *config.Config, l *zap.Logger) (*Container, error) {
	// Validate configuration before initializing any dependencies
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// Redis backs the rate limiter only; nil when limiting is off
	rdb, err := infrastructure.NewRedisClient(ctx, cfg, l)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Redis: %w", err)
	}

	store := memory.NewUserStore(l)
	telemetry.ObserveLedger(store)
	ledgerUC := ledger.New(store, l)

	var limiterClient *redis.Client
	if rdb != nil {
		limiterClient = rdb.Client
	}
	rateLimiter := middleware.NewRateLimiter(
		limiterClient,
		middleware.RateLimiterConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			BurstCapacity:     cfg.RateLimit.BurstCapacity,
			Enabled:           cfg.RateLimit.Enabled,
		},
		l,
	)

	return &Container{
		Config:          cfg,
		Logger:          l,
		Store:           store,
		RedisClient:     rdb,
		LedgerUC:        ledgerUC,
		RateLimiter:     rateLimiter,
		UserHandler:     ginhandler.NewUserHandler(ledgerUC, l),
		TransferHandler: ginhandler.NewTransferHandler(ledgerUC, l),
	}, nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			return fmt.Errorf("failed to close Redis: %w", err)
		}
	}
	return nil
}
