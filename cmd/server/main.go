// Package main implements the entry point for the QuickAI API server,
// the gateway through which authenticated users request AI-generated
// articles, emails, and image operations.
package main

import (
	"context"
	"flag"
	"log"

	"github.com/joho/godotenv"
	"github.com/quickai/quickai-api/internal/config"
	"github.com/quickai/quickai-api/internal/platform/logger"
)

func main() {
	migrateCmd := flag.String("migrate", "", "run a migration command (up, down, status) and exit")
	migrationsDir := flag.String("migrations-dir", "migrations", "directory holding goose migration files")
	flag.Parse()

	// Local development convenience; absent files are fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger := logger.Setup(cfg.Server)

	db, err := setupDatabase(cfg, appLogger)
	if err != nil {
		appLogger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() { _ = db.Close() }()

	if *migrateCmd != "" {
		if err := runMigrations(db, *migrateCmd, *migrationsDir); err != nil {
			appLogger.Error("Migration failed", "command", *migrateCmd, "error", err)
			log.Fatalf("Migration failed: %v", err)
		}
		appLogger.Info("Migration completed", "command", *migrateCmd)
		return
	}

	app, err := newApplication(context.Background(), cfg, appLogger, db)
	if err != nil {
		appLogger.Error("Failed to initialize application", "error", err)
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.startHTTPServer(context.Background(), app.setupRouter()); err != nil {
		appLogger.Error("Server exited with error", "error", err)
		log.Fatalf("Server exited with error: %v", err)
	}
}
