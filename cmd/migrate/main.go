package main

import (
	"context"
	"flag"
	"os"

	"category-admin/internal/config"
	"category-admin/internal/db"
	"category-admin/internal/logging"
	"category-admin/internal/migrate"
)

func main() {
	down := flag.Bool("down", false, "Revert the last migration instead of applying all")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logging.New("info", "text", os.Stderr).Fatalf("load config: %v", err)
	}
	logger := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString, logger)
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	if *down {
		if err := migrate.Down(ctx, pool); err != nil {
			logger.Fatalf("revert migration: %v", err)
		}
		logger.Info("last migration reverted")
		return
	}

	if err := migrate.Apply(ctx, pool); err != nil {
		logger.Fatalf("apply migrations: %v", err)
	}

	logger.Info("migrations applied")
}
