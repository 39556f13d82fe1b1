package database

import (
	"fmt"

	"trivia-api/internal/config"
	"trivia-api/internal/logger"

	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx"
	"github.com/jmoiron/sqlx"
	_ "github.com/sijms/go-ora/v2" // registers "oracle"
	"go.uber.org/zap"
)

// sqlDriverName maps db.driver to the database/sql driver name.
func sqlDriverName(driver string) (string, error) {
	switch driver {
	case config.DriverPostgres:
		return "pgx", nil
	case config.DriverOracle:
		return "oracle", nil
	default:
		return "", fmt.Errorf("driver %q has no SQL connection", driver)
	}
}

// NewSQLXDB opens and pings the database selected by cfg.Driver and applies
// the pool settings.
func NewSQLXDB(cfg *config.Config) (*sqlx.DB, error) {
	driverName, err := sqlDriverName(cfg.DB.Driver)
	if err != nil {
		return nil, err
	}

	// sqlx.Connect pings before returning and closes the pool on failure.
	db, err := sqlx.Connect(driverName, cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", cfg.DB.Driver, err)
	}

	if cfg.DB.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.DB.MaxOpenConns)
	}
	if cfg.DB.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.DB.MaxIdleConns)
	}
	if cfg.DB.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.DB.ConnMaxLifetime)
	}

	logger.Get().Info("Connected to database",
		zap.String("driver", cfg.DB.Driver),
		zap.String("host", cfg.DB.Host),
		zap.Int("port", cfg.DB.Port),
		zap.String("name", cfg.DB.DBName),
	)
	return db, nil
}
