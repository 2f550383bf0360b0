package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"category-admin/internal/config"
	"category-admin/internal/db"
	"category-admin/internal/fshelper"
	"category-admin/internal/importer"
	"category-admin/internal/logging"
	categoryrepo "category-admin/internal/repository/category"
	categorysvc "category-admin/internal/service/category"
)

func main() {
	var filePath string
	flag.StringVar(&filePath, "file", "", "Path to the category CSV (slug,name,parent,description,sort)")
	flag.Parse()

	if filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		logging.New("info", "text", os.Stderr).Fatalf("load config: %v", err)
	}
	logger := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)

	if typ, err := fshelper.Type(filePath); err != nil || typ != "file" {
		logger.Fatalf("%s is not a readable file", filePath)
	}
	if fshelper.Extension(filePath) != "csv" {
		logger.Warnf("%s does not have a .csv extension", fshelper.BaseName(filePath))
	}
	data, err := fshelper.Get(filePath)
	if err != nil {
		logger.Fatalf("read file: %v", err)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString, logger)
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	svc := categorysvc.New(categoryrepo.NewPostgres(pool), nil)
	imp := importer.NewCSVImporter(bytes.NewReader(data), svc)

	start := time.Now()
	count, err := imp.Run(ctx)
	if err != nil {
		logger.Fatalf("import failed after %d categories: %v", count, err)
	}

	fmt.Printf("Imported %d categories in %s\n", count, time.Since(start).Truncate(time.Millisecond))
}
