package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aescanero/gita/internal/application/chapters"
	"github.com/aescanero/gita/internal/config"
	"github.com/aescanero/gita/pkg/adapters/metrics/prometheus"
	"github.com/aescanero/gita/pkg/adapters/scripture"
	"github.com/aescanero/gita/pkg/adapters/storage/memory"
	redisstorage "github.com/aescanero/gita/pkg/adapters/storage/redis"
	"github.com/aescanero/gita/pkg/api/grpc"
	"github.com/aescanero/gita/pkg/api/http"
	"github.com/aescanero/gita/pkg/api/websocket"

	promclient "github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP relay (and the gRPC health server when GRPC_PORT is set)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}
}

func serve() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	logger := initLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("starting Gita chapter relay",
		zap.String("version", Version),
		zap.String("build_time", BuildTime))

	scriptureClient, err := scripture.NewClient(&scripture.Config{
		BaseURL: cfg.Upstream.BaseURL,
		APIKey:  cfg.Upstream.APIKey,
		Host:    cfg.Upstream.Host,
		Timeout: cfg.Upstream.Timeout,
		Logger:  logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create scripture client: %w", err)
	}

	cache, closeCache, err := newCache(cfg, logger)
	if err != nil {
		return err
	}
	defer closeCache()

	metricsCollector := prometheus.NewCollector(promclient.DefaultRegisterer)

	chapterService := chapters.NewService(scriptureClient, cache, metricsCollector, logger)

	// Initialize API servers
	httpServer := http.NewServer(&http.Config{
		Addr:            cfg.GetHTTPAddr(),
		Chapters:        chapterService,
		Logger:          logger,
		CORSAllowOrigin: cfg.CORSAllowOrigin,
	})

	wsHandler := websocket.NewHandler(chapterService, cfg.CORSAllowOrigin, logger)
	httpServer.SetupWebSocket(wsHandler)

	var grpcServer *grpc.Server
	if cfg.GRPCEnabled() {
		grpcServer, err = grpc.NewServer(&grpc.Config{
			Port:   cfg.GRPCPort,
			Logger: logger,
		})
		if err != nil {
			return fmt.Errorf("failed to create gRPC server: %w", err)
		}
	}

	errCh := make(chan error, 2)

	go func() {
		if err := httpServer.Start(); err != nil {
			errCh <- err
		}
	}()

	if grpcServer != nil {
		go func() {
			if err := grpcServer.Start(); err != nil {
				errCh <- err
			}
		}()
	}

	logger.Info("Gita chapter relay started",
		zap.Int("http_port", cfg.HTTPPort),
		zap.Int("grpc_port", cfg.GRPCPort),
		zap.String("upstream", cfg.Upstream.BaseURL),
		zap.String("cache", cfg.Cache.Backend))

	// Wait for interrupt signal or a server failure
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	var runErr error
	select {
	case <-sigCh:
		logger.Info("received shutdown signal")
	case runErr = <-errCh:
		logger.Error("server failed", zap.Error(runErr))
	}

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if grpcServer != nil {
		if err := grpcServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("gRPC server shutdown error", zap.Error(err))
		}
	}

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", zap.Error(err))
	}

	logger.Info("Gita chapter relay shut down complete")
	return runErr
}

// newCache builds the configured chapter cache; a nil cache disables caching
func newCache(cfg *config.Config, logger *zap.Logger) (chapters.Cache, func(), error) {
	switch cfg.Cache.Backend {
	case config.CacheMemory:
		return memory.NewChapterCache(cfg.Cache.TTL), func() {}, nil

	case config.CacheRedis:
		redisClient := goredis.NewClient(&goredis.Options{
			Addr:         cfg.Redis.Addr,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		})

		cache := redisstorage.NewChapterCache(redisClient, cfg.Cache.TTL, logger)

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Redis.DialTimeout)
		defer cancel()
		if err := cache.Ping(ctx); err != nil {
			_ = redisClient.Close()
			return nil, nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		logger.Info("connected to Redis", zap.String("addr", cfg.Redis.Addr))

		return cache, func() {
			if err := redisClient.Close(); err != nil {
				logger.Error("Redis close error", zap.Error(err))
			}
		}, nil

	default:
		return nil, func() {}, nil
	}
}
