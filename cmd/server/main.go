package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/xtrntr/tradelog/internal/api"
	"github.com/xtrntr/tradelog/internal/auth"
	"github.com/xtrntr/tradelog/internal/config"
	"github.com/xtrntr/tradelog/internal/db"
	"github.com/xtrntr/tradelog/internal/feed"
	"github.com/xtrntr/tradelog/internal/trades"
	"github.com/xtrntr/tradelog/migrations"
)

// Main entry point: sets up database, services, and HTTP server
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.NewDB(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer database.Close()

	if err := database.Migrate(ctx, migrations.Init); err != nil {
		logger.Fatal("failed to migrate database", zap.Error(err))
	}

	authService := auth.NewAuthService(database, auth.Config{
		Secret:     []byte(cfg.JWTSecret),
		AccessTTL:  cfg.AccessTokenTTL,
		RefreshTTL: cfg.RefreshTokenTTL,
		BcryptCost: cfg.BcryptCost,
	}, logger.Named("auth"))

	hub := feed.NewHub(logger.Named("feed"), nil)
	defer hub.Close()

	tradeService := trades.NewTradeService(database, hub, logger.Named("trades"))
	handler := api.NewHandler(authService, tradeService, hub, logger.Named("http"))

	server := &http.Server{
		Addr:    cfg.Addr(),
		Handler: api.NewRouter(handler, cfg.CORSOrigin),
	}

	go func() {
		logger.Info("http listening", zap.String("addr", cfg.Addr()))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
	logger.Info("shutdown complete")
}
