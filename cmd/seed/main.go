package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"trivia-api/internal/config"
	"trivia-api/internal/database"
	"trivia-api/internal/logger"
	"trivia-api/internal/repository"
	"trivia-api/internal/seed"

	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		// If logger is not initialized yet, use fmt
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	seedFile := flag.String("file", cfg.Seed.File, "path to the JSON seed fixture")
	flag.Parse()

	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	if cfg.DB.Driver == config.DriverMemory {
		log.Fatal("The memory driver is seeded by the API server at startup; set db.driver to postgres or oracle")
	}

	log.Info("Starting seeding process...", zap.String("driver", cfg.DB.Driver))
	db, err := database.NewSQLXDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	log.Info("Loading seed data from file", zap.String("path", *seedFile))
	fixture, err := seed.LoadFile(*seedFile)
	if err != nil {
		log.Fatal("Failed to load seed data", zap.Error(err))
	}

	result, err := seed.Apply(ctx, fixture,
		repository.NewCategoryDatabaseAdapter(db),
		repository.NewQuestionDatabaseAdapter(db),
		repository.NewTransactionManagerAdapter(db),
	)
	if err != nil {
		log.Fatal("Seeding failed, transaction rolled back", zap.Error(err))
	}

	log.Info("Seeding process completed",
		zap.Int("categories_created", result.CategoriesCreated),
		zap.Int("categories_skipped", result.CategoriesSkipped),
		zap.Int("questions_created", result.QuestionsCreated),
		zap.Int("questions_skipped", result.QuestionsSkipped),
	)
}
