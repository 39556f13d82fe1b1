package main

import (
	"context"
	"log"

	"trivia-api/internal/config"
	"trivia-api/internal/database"
	"trivia-api/internal/logger"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	l := logger.Get()
	defer logger.Sync()

	db, err := database.NewSQLXDB(cfg)
	if err != nil {
		l.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := database.RunMigrations(context.Background(), db, cfg.DB.Driver); err != nil {
		l.Fatal("Failed to run migrations", zap.String("driver", cfg.DB.Driver), zap.Error(err))
	}
}
