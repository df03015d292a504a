// Package main is the entry point for the penhub-service API.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"penhub-service/internal/app/service"
	"penhub-service/internal/config"
	"penhub-service/internal/domain"
	"penhub-service/internal/infra/identity"
	"penhub-service/internal/infra/postgres"
	"penhub-service/internal/infra/postgres/migrations"
	rediscache "penhub-service/internal/infra/redis"
	"penhub-service/internal/job"
	"penhub-service/internal/logger"
	"penhub-service/internal/transport/httpserver"
	"penhub-service/internal/validator"
	"penhub-service/pkg/locker"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(
		logger.Config{
			Level:   cfg.Logger.Level,
			Format:  cfg.Logger.Format,
			Output:  cfg.Logger.Output,
			Service: cfg.App.Name,
		},
		logger.SentryConfig{
			Enabled:     cfg.Sentry.Enabled,
			DSN:         cfg.Sentry.DSN,
			Environment: cfg.Sentry.Environment,
			SampleRate:  cfg.Sentry.SampleRate,
		},
	)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting penhub-service",
		zap.String("env", cfg.App.Env),
		zap.Int("port", cfg.App.Port),
	)

	// Connect to database
	db, err := postgres.NewConnection(
		postgres.Config{
			Host:         cfg.Database.Host,
			Port:         cfg.Database.Port,
			Name:         cfg.Database.Name,
			User:         cfg.Database.User,
			Password:     cfg.Database.Password,
			SSLMode:      cfg.Database.SSLMode,
			MaxOpenConns: cfg.Database.MaxOpenConns,
			MaxIdleConns: cfg.Database.MaxIdleConns,
			MaxLifetime:  cfg.Database.MaxLifetime,
		},
		log.Logger,
	)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() { _ = postgres.Close(db) }()

	// Run migrations
	if err := migrations.Run(db); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}
	log.Info("database migrations completed")

	// Create repositories
	workRepo := postgres.NewRepository(db)
	engagementRepo := postgres.NewEngagementRepository(db)

	// Connect to Redis
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx := context.Background()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal("failed to connect to Redis", zap.Error(err))
	}
	defer func() { _ = redisClient.Close() }()
	log.Info("connected to Redis",
		zap.String("host", cfg.Redis.Host),
		zap.Int("port", cfg.Redis.Port),
	)

	// Create cache implementation (optional, based on config)
	var cache domain.Cache
	if cfg.Cache.Enabled {
		cache = rediscache.NewCache(redisClient, log.Logger, cfg.Cache.KeyPrefix)
		log.Info("cache enabled",
			zap.Duration("trending_ttl", cfg.Cache.TrendingTTL),
			zap.String("key_prefix", cfg.Cache.KeyPrefix),
		)
	} else {
		log.Info("cache disabled")
	}

	// View dedup store
	dedup := rediscache.NewViewDeduper(redisClient, log.Logger, cfg.Cache.KeyPrefix, cfg.Views.DedupWindow)

	// Identity provider client
	verifier := identity.New(
		identity.ClientConfig{
			BaseURL: cfg.Identity.BaseURL,
			Timeout: cfg.Identity.Timeout,
			Retry: identity.RetryConfig{
				MaxAttempts: cfg.Identity.Retry.MaxAttempts,
				WaitTime:    cfg.Identity.Retry.WaitTime,
				MaxWaitTime: cfg.Identity.Retry.MaxWaitTime,
			},
			CB: identity.CBConfig{
				MaxRequests:  cfg.Identity.CB.MaxRequests,
				Interval:     cfg.Identity.CB.Interval,
				Timeout:      cfg.Identity.CB.Timeout,
				FailureRatio: cfg.Identity.CB.FailureRatio,
			},
		},
		log.Logger,
	)

	// Create services
	listingSvc := service.NewListingService(workRepo, engagementRepo, cache, cfg.Cache.TrendingTTL, log.Logger)
	workSvc := service.NewWorkService(workRepo, dedup, log.Logger)
	engagementSvc := service.NewEngagementService(workRepo, engagementRepo, log.Logger)

	// Create distributed locker
	distLocker := locker.NewRedisLocker(redisClient, log.Logger)

	// Create validator
	v := validator.New()

	// Create HTTP server
	server := httpserver.NewServer(
		httpserver.ServerConfig{
			Port:      cfg.App.Port,
			BodyLimit: 1024 * 1024, // 1MB
			Debug:     cfg.App.Debug,
		},
		listingSvc,
		workSvc,
		engagementSvc,
		verifier,
		db,
		redisClient,
		v,
		log.Logger,
	)

	// Start trash sweep scheduler with distributed locking
	scheduler := job.NewSweepScheduler(
		workRepo,
		job.SweepConfig{
			Retention: cfg.Sweep.Retention,
			Interval:  cfg.Sweep.Interval,
			Timeout:   cfg.Sweep.Timeout,
			OnStartup: cfg.Sweep.OnStartup,
		},
		log.Logger,
		distLocker,
	)
	scheduler.Start(cfg.Sweep.OnStartup)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info("shutdown signal received")

		scheduler.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.App.ShutdownWithContext(ctx); err != nil {
			log.Error("server shutdown error", zap.Error(err))
		}
	}()

	// Start server
	if err := server.Start(cfg.App.Port); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
