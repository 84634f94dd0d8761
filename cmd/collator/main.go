package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kitesearch/collator"
	"github.com/kitesearch/collator/internal/config"
	dbRedis "github.com/kitesearch/collator/internal/db/redis"
	"github.com/kitesearch/collator/internal/discovery"
	logpkg "github.com/kitesearch/collator/internal/logger"
	"github.com/kitesearch/collator/internal/metrics"
	indexrepo "github.com/kitesearch/collator/internal/repository/index"
	"github.com/kitesearch/collator/internal/transport/admin"
	openaiEmb "github.com/kitesearch/collator/internal/transport/openai"
	healthuc "github.com/kitesearch/collator/internal/usecase/health"
	ingestuc "github.com/kitesearch/collator/internal/usecase/ingest"
	"github.com/kitesearch/collator/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting collator",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
		zap.String("catalog_service", cfg.Catalog.ServiceName),
		zap.Strings("kinds", cfg.Catalog.Kinds),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Password: cfg.Database.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create index store", zap.Error(err))
	}
	defer store.Close()

	// Wait for the index store to be ready
	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Index store not ready", zap.Error(err))
	}
	logger.Info("Connected to index store")

	// Register collation metrics explicitly (no init())
	metrics.RegisterCollationMetrics()

	// Catalog discovery and the collator core
	disc := discovery.NewStatic(cfg.Catalog.Endpoints)

	core, err := collator.New(disc, collator.Options{
		ServiceName:      cfg.Catalog.ServiceName,
		Filter:           collator.KindFilter(cfg.Catalog.Kinds...),
		LocationTemplate: cfg.Catalog.LocationTemplate,
		Timeout:          time.Duration(cfg.Catalog.RequestTimeoutSec) * time.Second,
	})
	if err != nil {
		logger.Fatal("Failed to create collator", zap.Error(err))
	}

	// Index repository, with a vector field when embedding is configured
	repo := indexrepo.New(store, cfg.Collation.KeyPrefix, cfg.Collation.IndexName)

	var embedder ingestuc.Embedder
	var embeddingChecker healthuc.EmbeddingChecker
	if cfg.Embedding.Enabled() {
		repo = repo.WithVector(cfg.Embedding.Dimensions)

		base := openaiEmb.NewEmbedder(&openaiEmb.Config{
			APIKey:     cfg.Embedding.APIKey,
			BaseURL:    cfg.Embedding.BaseURL,
			Model:      cfg.Embedding.Model,
			Dimensions: cfg.Embedding.Dimensions,
			Provider:   cfg.Embedding.Provider,
			Logger:     logger,
		})
		embedder = vectorOnlyEmbedder{base}
		embeddingChecker = base

		logger.Info("Embedding enrichment enabled",
			zap.String("provider", cfg.Embedding.Provider),
			zap.String("model", cfg.Embedding.Model),
			zap.Int("dimensions", cfg.Embedding.Dimensions),
		)
	}

	// Use case services
	ingestSvc := ingestuc.New(core, repo, embedder, logger)
	healthSvc := healthuc.New(store, disc, cfg.Catalog.ServiceName, embeddingChecker)

	// Admin HTTP server
	server := admin.NewServer(ingestSvc, repo, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(admin.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Register(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Scheduler: one run at startup, then on the configured interval.
	schedCtx, stopScheduler := context.WithCancel(ctx)
	go runScheduler(schedCtx, ingestSvc, time.Duration(cfg.Collation.IntervalSec)*time.Second, logger)

	<-quit
	logger.Info("Received shutdown signal")
	stopScheduler()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Collator stopped gracefully")
}

// runScheduler runs collation immediately, then every interval until ctx is
// cancelled. Failed runs are logged by the ingest service and retried on the
// next tick.
func runScheduler(ctx context.Context, svc *ingestuc.Service, interval time.Duration, logger *zap.Logger) {
	logger.Info("Collation scheduler started", zap.Duration("interval", interval))

	if _, err := svc.Run(ctx); err != nil {
		logger.Warn("Startup collation failed, will retry on schedule", zap.Error(err))
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Collation scheduler stopped")
			return
		case <-ticker.C:
			_, _ = svc.Run(ctx)
		}
	}
}

// vectorOnlyEmbedder adapts the transport embedder to the ingest contract,
// dropping token usage the ingest pipeline has no use for.
type vectorOnlyEmbedder struct {
	base *openaiEmb.Embedder
}

func (e vectorOnlyEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	result, err := e.base.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	return result.Vector, nil
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
