package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"fraud-scoring-service/internal/adapters/primary/http/handlers"
	"fraud-scoring-service/internal/adapters/primary/http/middleware"
	"fraud-scoring-service/internal/adapters/secondary/artifact"
	"fraud-scoring-service/internal/adapters/secondary/filesystem"
	"fraud-scoring-service/internal/adapters/secondary/kube"
	"fraud-scoring-service/internal/adapters/secondary/postgres"
	"fraud-scoring-service/internal/config"
	ports "fraud-scoring-service/internal/core/ports/output"
	"fraud-scoring-service/internal/core/services"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	closeLog := initLogger(cfg)
	defer closeLog()

	// ============================================================================
	// Secondary Adapters
	// ============================================================================

	// Artifact sources: filesystem by default, ConfigMaps when enabled
	sources := artifact.NewSourceRouter(filesystem.NewSource())
	if cfg.Kubernetes.Enabled {
		client, err := kube.NewClientset(&cfg.Kubernetes)
		if err != nil {
			log.Warnf("Kubernetes client init failed (configmap:// paths unavailable): %v", err)
		} else {
			sources.Register(kube.ConfigMapScheme, kube.NewConfigMapSource(client))
			log.Info("ConfigMap artifact source enabled")
		}
	} else {
		log.Info("Kubernetes integration disabled")
	}

	loader := services.NewArtifactLoader(sources, artifact.Decoder)
	if _, err := loader.Load(context.Background(), cfg.Model.Path); err != nil {
		log.Fatalf("load model artifact: %v", err)
	}

	// Prediction audit store (Optional - based on config)
	var (
		recordRepo ports.PredictionRepository
		db         handlers.Pinger
	)
	if cfg.Database.Enabled {
		pool, err := openPool(cfg.Database)
		if err != nil {
			log.Fatalf("open database: %v", err)
		}
		defer pool.Close()

		recordRepo = postgres.NewPredictionRecordRepository(pool)
		db = pool
		log.Info("database connection established")
	} else {
		log.Info("prediction audit store disabled")
	}

	// ============================================================================
	// Core Services
	// ============================================================================

	predictionSvc := services.NewPredictionService(loader, recordRepo, cfg.Model.Version)
	calculatorSvc := services.NewCalculatorService()
	messageSvc := services.NewMessageService()
	itemSvc := services.NewItemService()
	simpleSvc := services.NewSimplePredictionService(cfg.Model.Version)

	// Primary Adapter (HTTP Handlers)
	h := handlers.New(loader, predictionSvc, calculatorSvc, messageSvc, itemSvc, simpleSvc, db)

	engine := gin.New()
	engine.Use(middleware.RequestID(), middleware.Logging(), gin.Recovery(), middleware.CORS(cfg.CORS.AllowedOrigins))
	h.RegisterRoutes(engine)

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: engine,
	}

	go func() {
		log.Infof("starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("server forced shutdown: %v", err)
		return
	}

	log.Info("server stopped")
}

func openPool(cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parse db config: %w", err)
	}
	poolCfg.MaxConns = int32(cfg.MaxOpenConns)
	poolCfg.MinConns = int32(cfg.MaxIdleConns)
	poolCfg.MaxConnLifetime = cfg.ConnMaxLifetime

	ctx := context.Background()
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create db pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// initLogger configures logrus and returns a func that closes the log file.
// The same func runs on log.Fatal.
func initLogger(cfg *config.Config) func() {
	level, err := log.ParseLevel(cfg.Logger.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Logger.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}

	if cfg.Logger.File == "" {
		return func() {}
	}

	rotator := &lumberjack.Logger{
		Filename:   cfg.Logger.File,
		MaxSize:    cfg.Logger.MaxSizeMB,
		MaxBackups: cfg.Logger.MaxBackups,
		MaxAge:     cfg.Logger.MaxAgeDays,
		Compress:   true,
	}
	log.SetOutput(io.MultiWriter(os.Stdout, rotator))

	closeFile := func() { _ = rotator.Close() }
	// log.Fatal skips deferred calls
	log.RegisterExitHandler(closeFile)
	return closeFile
}
