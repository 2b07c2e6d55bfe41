package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/rogerio-castellano/shopify-products-admin/internal/auth"
	"github.com/rogerio-castellano/shopify-products-admin/internal/catalog"
	"github.com/rogerio-castellano/shopify-products-admin/internal/config"
	"github.com/rogerio-castellano/shopify-products-admin/internal/db"
	api "github.com/rogerio-castellano/shopify-products-admin/internal/http"
	"github.com/rogerio-castellano/shopify-products-admin/internal/http/handlers"
	rl "github.com/rogerio-castellano/shopify-products-admin/internal/http/rate_limiter"
	"github.com/rogerio-castellano/shopify-products-admin/internal/logging"
	"github.com/rogerio-castellano/shopify-products-admin/internal/redissvc"
	"github.com/rogerio-castellano/shopify-products-admin/internal/repo"
)

// @title Shopify Products Admin
// @version 1.0
// @description Embedded Shopify admin app listing the shop's products with cursor pagination.
// @BasePath /
// @securityDefinitions.apikey SessionToken
// @in header
// @name Authorization
// @description Shopify App Bridge session token, sent as "Bearer <token>"
func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("could not load .env: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}

	logger := logging.New(os.Stdout, cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cipher, err := repo.NewTokenCipher(cfg.Session.EncryptionKey)
	if err != nil {
		logger.Error("invalid session encryption key", slog.Any("error", err))
		os.Exit(1)
	}

	var sessions repo.SessionRepository = repo.NewInMemorySessionRepository()
	if cfg.Postgres.URL != "" {
		database, err := db.Connect(cfg.Postgres.URL)
		if err != nil {
			logger.Error("could not connect to database", slog.Any("error", err))
			os.Exit(1)
		}
		defer closeDB(database, logger)

		if err := db.Migrate(ctx, database); err != nil {
			logger.Error("could not migrate database", slog.Any("error", err))
			os.Exit(1)
		}
		sessions = repo.NewPostgresSessionRepository(database, cipher)
	} else {
		logger.Warn("DATABASE_URL not set, sessions are kept in memory")
	}

	var states auth.StateStore = auth.NewMemoryStateStore()
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		redisService := redissvc.NewRedisService(rdb)
		if err := redisService.Ping(ctx); err != nil {
			logger.Error("could not connect to redis", slog.String("addr", cfg.Redis.Addr), slog.Any("error", err))
			os.Exit(1)
		}
		sessions = repo.NewCachedSessionRepository(sessions, redisService, cipher, cfg.Session.CacheTTL, logger)
		states = auth.NewRedisStateStore(redisService)
	}

	oauth := auth.NewOAuth(auth.OAuthConfig{
		APIKey:    cfg.Shopify.APIKey,
		APISecret: cfg.Shopify.APISecret,
		Scopes:    cfg.Shopify.Scopes,
		AppURL:    cfg.Shopify.AppURL,
	}, &http.Client{Timeout: 15 * time.Second})

	handlers.SetLogger(logger)
	handlers.SetSessionRepo(sessions)
	handlers.SetOAuth(oauth, states)
	handlers.SetCatalog(catalog.NewClient(catalog.Config{APIVersion: cfg.Shopify.APIVersion}, nil))

	limiter := rl.New(cfg.Limits.RPS, cfg.Limits.Burst)
	go limiter.StartCleanupLoop(ctx)

	srv := &http.Server{
		Addr: ":" + cfg.Port,
		Handler: api.NewRouter(api.RouterConfig{
			Logger:        logger,
			Authenticator: auth.NewShopAuthenticator(cfg.Shopify.APIKey, cfg.Shopify.APISecret, sessions),
			APIKey:        oauth.APIKey(),
			Limiter:       limiter,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("✅ Server running", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", slog.Any("error", err))
	}
}

func closeDB(database *sql.DB, logger *slog.Logger) {
	if err := database.Close(); err != nil {
		logger.Error("could not close database", slog.Any("error", err))
	}
}
