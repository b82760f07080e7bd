package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"

	"github.com/saeidalz13/battleship-solo/api"
	"github.com/saeidalz13/battleship-solo/db"
	"github.com/saeidalz13/battleship-solo/db/sqlc"
	"github.com/saeidalz13/battleship-solo/internal/config"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatal("invalid configuration", "err", err)
	}
	log.SetLevel(cfg.LogLevel)
	log.SetReportTimestamp(true)

	opts := []api.Option{
		api.WithPort(cfg.Port),
		api.WithStage(cfg.Stage),
		api.WithGameDefaults(cfg.Game),
		api.WithSessionCleanupInterval(cfg.SessionCleanupInterval),
	}

	// Analytics are optional; the game runs the same without a database
	if cfg.DatabaseUrl != "" {
		psql := db.MustConnectToDb(cfg.DatabaseUrl, db.DefaultMigrationDir)
		defer psql.Close()
		opts = append(opts, api.WithQuerier(sqlc.New(psql)))
	} else {
		log.Warn("DATABASE_URL is empty; analytics disabled")
	}

	server := api.NewServer(opts...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx); err != nil {
		log.Fatal("server stopped", "err", err)
	}
	log.Info("server shut down")
}
