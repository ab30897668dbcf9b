package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"galaxy-server/internal/auth"
	"galaxy-server/internal/bookmark"
	"galaxy-server/internal/explorer"
	"galaxy-server/internal/galaxy"
	"galaxy-server/internal/middleware"
	"galaxy-server/internal/procgen"
	"galaxy-server/internal/selection"
	"galaxy-server/internal/server"
	"galaxy-server/internal/shared/config"
	"galaxy-server/internal/shared/database"
	"galaxy-server/internal/shared/logger"
	"galaxy-server/internal/shared/metrics"
	"galaxy-server/internal/shared/redis"
)

func main() {
	if err := config.Init(); err != nil {
		slog.Error("Failed to initialize configuration", "error", err)
		os.Exit(1)
	}

	logger.Init()
	log := slog.With("component", "main")

	cfg := config.GlobalConfig
	log.Info("Starting galaxy server",
		"environment", cfg.Server.Environment,
		"port", cfg.Server.Port,
		"db_driver", cfg.Database.Driver,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", "error", err)
		}
	}()

	if err := db.RunMigrations(ctx); err != nil {
		log.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	redisClient, err := redis.Connect(ctx, cfg.Redis)
	if err != nil {
		log.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis", "error", err)
		}
	}()

	var selections selection.Store
	if redisClient != nil {
		selections = selection.NewRedisStore(redisClient.Client, cfg.Redis.SelectionTTL)
	} else {
		selections = selection.NewMemoryStore(cfg.Redis.SelectionTTL)
	}

	tokens, err := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiration)
	if err != nil {
		log.Error("Failed to initialize token manager", "error", err)
		os.Exit(1)
	}

	states := auth.NewStateManager(auth.DefaultStateTTL)
	go states.RunCleanup(ctx, 5*time.Minute)

	m := metrics.New()
	appLogger := slog.Default()

	explorerService := explorer.NewService(explorer.NewRepository(db), appLogger)
	galaxyService := galaxy.NewService(
		procgen.NewGenerator(procgen.DefaultPalette(), appLogger),
		selections,
		m,
		cfg.Galaxy,
		appLogger,
	)
	bookmarkService := bookmark.NewService(bookmark.NewRepository(db), galaxyService, appLogger)

	routes := server.NewRoutes(server.Dependencies{
		DB:              db,
		Redis:           redisClient,
		ExplorerService: explorerService,
		GalaxyService:   galaxyService,
		BookmarkService: bookmarkService,
		Tokens:          tokens,
		States:          states,
		OAuthConfig:     auth.InitOAuth(cfg),
		Metrics:         m,
		RateLimiter:     middleware.NewRateLimiter(ctx, cfg.RateLimit),
		CORS:            middleware.NewCORS(cfg.Frontend),
		FrontendURL:     cfg.Frontend.URL,
		GalaxyConfig:    cfg.Galaxy,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      routes.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("Galaxy server listening", "addr", srv.Addr, "url", cfg.Server.URL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			log.Error("Server failed", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		log.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed", "error", err)
		return
	}

	log.Info("Server stopped")
}
