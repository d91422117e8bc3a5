package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/saeidalz13/battleship-solo/api"
	"github.com/saeidalz13/battleship-solo/db"
	"github.com/saeidalz13/battleship-solo/db/sqlc"
	"github.com/saeidalz13/battleship-solo/internal/config"
	"github.com/saeidalz13/battleship-solo/internal/telemetry"
	mb "github.com/saeidalz13/battleship-solo/models/battleship"
	mc "github.com/saeidalz13/battleship-solo/models/connection"
)

const shutdownTimeout = time.Second * 10

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatal("failed to load config", "err", err)
	}
	log.SetLevel(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, telemetry.Settings{
		Endpoint:         cfg.OtlpEndpoint,
		Stage:            cfg.Stage,
		ComputerStrategy: cfg.ComputerStrategy,
	})
	if err != nil {
		log.Fatal("failed to set up tracing", "err", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Warn("failed to flush traces", "err", err)
		}
	}()

	gameManagerOpts := []mb.GameManagerOption{mb.WithComputerStrategy(cfg.ComputerStrategy)}
	if cfg.Seeded {
		gameManagerOpts = append(gameManagerOpts, mb.WithSeed(cfg.GameSeed))
	}
	bgm, err := mb.NewBattleshipGameManager(gameManagerOpts...)
	if err != nil {
		log.Fatal("failed to create game manager", "err", err)
	}

	bsm := mc.NewBattleshipSessionManager()
	go bsm.CleanupPeriodically(ctx)

	rpOpts := []api.Option{
		api.WithStage(cfg.Stage),
		api.WithComputerMoveDelay(cfg.ComputerMoveDelay),
	}
	if cfg.AnalyticsEnabled() {
		psqlDb := db.MustConnectToDb(cfg.PsqlUrl)
		defer psqlDb.Close()

		dbManager := sqlc.NewDbManager(sqlc.New(psqlDb))
		rpOpts = append(rpOpts, api.WithAnalytics(dbManager.Analytics))
		log.Info("analytics enabled")
	}

	rp, err := api.NewRequestProcessor(bsm, bgm, rpOpts...)
	if err != nil {
		log.Fatal("failed to create request processor", "err", err)
	}

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           api.NewMux(rp),
		ReadHeaderTimeout: time.Second * 5,
	}

	go func() {
		log.Info("listening", "addr", cfg.Addr(), "stage", cfg.Stage, "strategy", cfg.ComputerStrategy)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down", "sessions", bsm.Count(), "games", bgm.Count())

	// Shutdown does not wait for hijacked websocket connections
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "err", err)
	}
}
