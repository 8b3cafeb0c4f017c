// Package main is the entry point for the Sporadic Thinker blog API server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sporadicthinker/internal/cache"
	"sporadicthinker/internal/config"
	"sporadicthinker/internal/database"
	"sporadicthinker/internal/handlers"
	"sporadicthinker/internal/router"
	"sporadicthinker/internal/storage"
	"sporadicthinker/internal/store"
	"sporadicthinker/internal/token"
)

func main() {
	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Structured logger — JSON in production, text in development.
	var handler slog.Handler
	if cfg.IsDev() {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	slog.SetDefault(slog.New(handler))

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Redis for the public response cache (optional).
	var responseCache *cache.ResponseCache
	if cfg.RedisHost != "" {
		redisClient, err := cache.Connect(cfg.RedisHost, cfg.RedisPort, cfg.RedisPassword)
		if err != nil {
			slog.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		defer redisClient.Close()
		responseCache = cache.NewResponseCache(redisClient, cache.DefaultResponseTTL)
		slog.Info("response cache enabled", "host", cfg.RedisHost)
	} else {
		slog.Warn("redis not configured — response caching disabled")
	}

	// Featured image storage: S3-compatible bucket when configured,
	// local disk served at /uploads otherwise.
	var uploads *storage.Client
	if cfg.S3Endpoint != "" && cfg.S3AccessKey != "" {
		uploads, err = storage.NewS3(
			cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
			cfg.S3Bucket, cfg.S3PublicURL,
		)
		if err != nil {
			slog.Error("failed to initialize S3 storage", "error", err)
			os.Exit(1)
		}
		slog.Info("s3 storage connected", "endpoint", cfg.S3Endpoint, "bucket", cfg.S3Bucket)
	}
	if uploads == nil {
		uploads, err = storage.NewLocal(cfg.UploadDir)
		if err != nil {
			slog.Error("failed to initialize local storage", "error", err)
			os.Exit(1)
		}
		slog.Info("local upload storage enabled", "dir", cfg.UploadDir)
	}

	// Initialize data stores.
	userStore := store.NewUserStore(db)
	postStore := store.NewPostStore(db)
	categoryStore := store.NewCategoryStore(db)
	statsStore := store.NewStatsStore(db)

	// Bearer token manager signs and verifies admin JWTs.
	tokens := token.NewManager(cfg.JWTSecret, cfg.JWTExpiry)

	// Create handler groups with their dependencies.
	authHandlers := handlers.NewAuth(userStore, tokens)
	postHandlers := handlers.NewPosts(postStore, uploads, responseCache)
	categoryHandlers := handlers.NewCategories(categoryStore, responseCache)
	statsHandlers := handlers.NewStats(statsStore)

	// Set up the Chi router with all middleware and routes.
	r := router.New(router.Options{
		Tokens:       tokens,
		Auth:         authHandlers,
		Posts:        postHandlers,
		Categories:   categoryHandlers,
		Stats:        statsHandlers,
		Cache:        responseCache,
		CORSOrigins:  cfg.CORSOrigins,
		UploadDir:    cfg.UploadDir,
		IncludeStack: cfg.IsDev(),
	})

	// Create the HTTP server with sensible timeouts. WriteTimeout is
	// generous enough for multipart image uploads on slow links.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
