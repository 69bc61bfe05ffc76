package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/damaloy/marketplace-api/internal/auth"
	"github.com/damaloy/marketplace-api/internal/config"
	"github.com/damaloy/marketplace-api/internal/handlers"
	"github.com/damaloy/marketplace-api/internal/logger"
	"github.com/damaloy/marketplace-api/internal/middleware"
	"github.com/damaloy/marketplace-api/internal/payments"
	"github.com/damaloy/marketplace-api/internal/store"
)

func main() {
	cfg, err := config.Load(os.Getenv("MARKET_CONFIG_DIR"))
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zlog, err := logger.New(cfg.Server.Mode)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	gin.SetMode(func() string {
		if cfg.Server.Mode == "debug" {
			return gin.DebugMode
		}
		return gin.ReleaseMode
	}())

	connectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	db, err := store.Connect(connectCtx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		zlog.Fatal("failed to connect to document store", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.Close(shutdownCtx); err != nil {
			zlog.Error("store disconnect failed", zap.Error(err))
		}
	}()

	handlerCfg := handlers.HandlerConfig{
		DB:       db,
		Logger:   zlog,
		Gateway:  payments.NewStripeGateway(cfg.Stripe.SecretKey),
		Verifier: auth.NewVerifier(cfg.Auth.JWTSecret),
	}
	r := handlers.NewRouter(handlerCfg, middleware.NewMetrics())

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	go func() {
		zlog.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("graceful shutdown failed", zap.Error(err))
	}
}
