package main

import (
	"context"
	"os"

	"category-admin/internal/config"
	"category-admin/internal/db"
	"category-admin/internal/logging"
	categoryrepo "category-admin/internal/repository/category"
	categorysvc "category-admin/internal/service/category"
	"category-admin/internal/seed"
)

func main() {
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

	svc := categorysvc.New(categoryrepo.NewPostgres(pool), nil)
	n, err := seed.Apply(ctx, svc)
	if err != nil {
		logger.Fatalf("seed apply: %v", err)
	}

	logger.WithField("categories", n).Info("seed applied")
}
