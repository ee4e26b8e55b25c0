package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kodbank/kodbank-api/internal/api"
	"github.com/kodbank/kodbank-api/internal/infrastructure/db/mongo"
	redisdb "github.com/kodbank/kodbank-api/internal/infrastructure/db/redis"
	"github.com/kodbank/kodbank-api/internal/infrastructure/queue"
	"github.com/kodbank/kodbank-api/internal/pkg/config"
	"github.com/kodbank/kodbank-api/pkg/logger"

	_ "github.com/kodbank/kodbank-api/docs" // swagger spec registration
)

// @title           Kodbank API
// @version         1.0
// @description     Account-ledger service: registration, login, deposits, withdrawals, and transaction history.
//
// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name token
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// --- Storage: fatal if unavailable, never retried here ---
	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb unavailable")
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis unavailable")
	}
	defer func() {
		_ = rdb.Close()
	}()

	accounts := mongo.NewAccountRepository(db)
	ledger := mongo.NewLedgerRepository(mongoClient, db)

	if err := accounts.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create indexes")
	}

	// --- Background audit recorder ---
	recorder := queue.NewRecorder(cfg.Bank.AuditWorkers, ledger, log)
	recorder.Start(ctx)

	e := api.NewRouter(api.Deps{
		Mongo:    db,
		Redis:    rdb,
		Ledger:   ledger,
		Accounts: accounts,
		Audit:    recorder,
		Cfg:      cfg,
		Log:      log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	cancel() // stop audit workers

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}

	log.Info().Msg("server stopped")
}
