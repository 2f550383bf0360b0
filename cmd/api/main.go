package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"category-admin/internal/config"
	"category-admin/internal/db"
	"category-admin/internal/fshelper"
	"category-admin/internal/httpserver"
	"category-admin/internal/logging"
	categoryrepo "category-admin/internal/repository/category"
	categorysvc "category-admin/internal/service/category"
	"category-admin/internal/storage"
	"category-admin/internal/view"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.New("info", "text", os.Stderr).Fatalf("load config: %v", err)
	}
	logger := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)

	files := fshelper.OS()
	if err := files.CleanDirectory(cfg.RuntimeDir); err != nil {
		logger.Fatalf("clean runtime dir %s: %v", cfg.RuntimeDir, err)
	}
	if !files.Exists(cfg.UploadDir) {
		if err := files.CreateDirectory(cfg.UploadDir, fshelper.DefaultDirMode); err != nil {
			logger.Fatalf("create upload dir %s: %v", cfg.UploadDir, err)
		}
	}

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString, logger)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	renderer, err := view.NewRenderer()
	if err != nil {
		logger.Fatalf("load templates: %v", err)
	}

	uploads := storage.NewUploads(files, cfg.UploadDir, "category")
	categoryRepo := categoryrepo.NewPostgres(dbpool)
	categoryService := categorysvc.New(categoryRepo, uploads)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		CategorySvc: categoryService,
		Renderer:    renderer,
		Translator:  view.NewCatalog(cfg.Language),
		UploadDir:   uploads.Root(),
		CORSOrigins: cfg.CORSOrigins,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Infof("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Errorf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("graceful shutdown failed: %v", err)
	} else {
		logger.Info("server stopped")
	}
}
