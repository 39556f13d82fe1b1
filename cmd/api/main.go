// @title Trivia API
// @version 1.0
// @description REST backend for the trivia game: categories, paginated questions, search and quiz play.
// @host localhost:5000
// @BasePath /
// @schemes http
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"trivia-api/internal/config"
	"trivia-api/internal/database"
	"trivia-api/internal/domain"
	"trivia-api/internal/handler"
	"trivia-api/internal/logger"
	"trivia-api/internal/metrics"
	"trivia-api/internal/repository"
	"trivia-api/internal/repository/memory"
	"trivia-api/internal/seed"
	"trivia-api/internal/server"
	"trivia-api/internal/service"
	"trivia-api/internal/validation"

	_ "trivia-api/cmd/api/docs"

	"go.uber.org/zap"
)

// stores bundles the persistence ports the services need.
type stores struct {
	categories domain.CategoryRepository
	questions  domain.QuestionRepository
	tm         domain.TransactionManager
	health     domain.HealthChecker
	close      func() error
}

// openStores selects the backing store by db.driver. The memory driver is
// seeded from seed.file on every start.
func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	if cfg.DB.Driver == config.DriverMemory {
		store := memory.NewStore()
		fixture, err := seed.LoadFile(cfg.Seed.File)
		if err != nil {
			return nil, err
		}
		if _, err := seed.Apply(ctx, fixture, store, store, store); err != nil {
			return nil, fmt.Errorf("failed to seed memory store: %w", err)
		}
		return &stores{
			categories: store,
			questions:  store,
			tm:         store,
			health:     store,
			close:      func() error { return nil },
		}, nil
	}

	db, err := database.NewSQLXDB(cfg)
	if err != nil {
		return nil, err
	}
	tm := repository.NewTransactionManagerAdapter(db)
	return &stores{
		categories: repository.NewCategoryDatabaseAdapter(db),
		questions:  repository.NewQuestionDatabaseAdapter(db),
		tm:         tm,
		health:     tm,
		close:      db.Close,
	}, nil
}

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	st, err := openStores(context.Background(), cfg)
	if err != nil {
		appLogger.Fatal("Failed to open store", zap.String("driver", cfg.DB.Driver), zap.Error(err))
	}
	defer func() {
		if err := st.close(); err != nil {
			appLogger.Warn("Failed to close store", zap.Error(err))
		}
	}()

	m := metrics.New()

	// Initialize services
	questionService := service.NewQuestionService(st.categories, st.questions, st.tm, validation.NewValidator())
	quizService := service.NewQuizService(st.questions, m.QuizOutcomes)

	app := server.New(cfg.Server, m, server.Handlers{
		Question: handler.NewQuestionHandler(questionService),
		Quiz:     handler.NewQuizHandler(quizService),
		Health:   handler.NewHealthHandler(st.health),
	})

	go func() {
		appLogger.Info("Starting server",
			zap.Int("port", cfg.Server.Port),
			zap.String("driver", cfg.DB.Driver),
			zap.String("env", cfg.Logger.Env),
		)
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
		return
	}
	appLogger.Info("Server exited gracefully")
}
