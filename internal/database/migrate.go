package database

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"trivia-api/internal/config"
	"trivia-api/internal/logger"

	"github.com/golang-migrate/migrate/v4"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

//go:embed migrations
var migrationFiles embed.FS

// RunMigrations brings the schema for the configured driver up to date.
func RunMigrations(ctx context.Context, db *sqlx.DB, driver string) error {
	switch driver {
	case config.DriverPostgres:
		sub, err := fs.Sub(migrationFiles, "migrations/postgres")
		if err != nil {
			return err
		}
		return runPostgresMigrations(db, sub)
	case config.DriverOracle:
		sub, err := fs.Sub(migrationFiles, "migrations/oracle")
		if err != nil {
			return err
		}
		return runOracleMigrations(ctx, db, sub)
	default:
		return fmt.Errorf("driver %q has no migrations", driver)
	}
}

func runPostgresMigrations(db *sqlx.DB, fsys fs.FS) error {
	src, err := iofs.New(fsys, ".")
	if err != nil {
		return fmt.Errorf("could not open migration source: %w", err)
	}
	driver, err := migratepgx.WithInstance(db.DB, &migratepgx.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "pgx5", driver)
	if err != nil {
		return fmt.Errorf("could not create migrator: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	version, dirty, _ := m.Version()
	logger.Get().Info("Migrations completed successfully", zap.Uint("version", version), zap.Bool("dirty", dirty))
	return nil
}

// golang-migrate has no Oracle driver, so Oracle migrations are applied
// statement by statement and recorded in schema_migrations.
func runOracleMigrations(ctx context.Context, db *sqlx.DB, fsys fs.FS) error {
	log := logger.Get()

	var tables int
	if err := db.GetContext(ctx, &tables, `SELECT COUNT(*) FROM user_tables WHERE table_name = 'SCHEMA_MIGRATIONS'`); err != nil {
		return fmt.Errorf("could not check schema_migrations: %w", err)
	}
	if tables == 0 {
		if _, err := db.ExecContext(ctx, `CREATE TABLE schema_migrations (version VARCHAR2(255) PRIMARY KEY)`); err != nil {
			return fmt.Errorf("could not create schema_migrations: %w", err)
		}
	}

	files, err := upMigrations(fsys)
	if err != nil {
		return err
	}

	for _, name := range files {
		version := strings.TrimSuffix(name, ".up.sql")

		var applied int
		if err := db.GetContext(ctx, &applied, `SELECT COUNT(*) FROM schema_migrations WHERE version = :1`, version); err != nil {
			return fmt.Errorf("could not check migration %s: %w", version, err)
		}
		if applied > 0 {
			log.Debug("Migration already applied", zap.String("version", version))
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("could not read migration file %s: %w", name, err)
		}
		// Oracle DDL auto-commits, so a failure leaves the earlier statements
		// applied and the version unrecorded; they must be undone by hand.
		stmts := splitStatements(string(content))
		for i, stmt := range stmts {
			if _, err := db.ExecContext(ctx, stmt); err != nil {
				log.Error("Migration statement failed",
					zap.String("file", name),
					zap.Int("statement", i+1),
					zap.Int("statements", len(stmts)),
					zap.Int("applied", i),
					zap.Error(err),
				)
				return fmt.Errorf("could not execute statement %d of %d in migration %s (%d applied): %w", i+1, len(stmts), name, i, err)
			}
		}
		if _, err := db.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES (:1)`, version); err != nil {
			return fmt.Errorf("could not record migration %s: %w", version, err)
		}
		log.Info("Executed migration", zap.String("file", name))
	}

	log.Info("Migrations completed successfully", zap.Int("files", len(files)))
	return nil
}

// upMigrations lists the *.up.sql files of fsys in version order.
func upMigrations(fsys fs.FS) ([]string, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("could not read migrations directory: %w", err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".up.sql") {
			continue
		}
		files = append(files, path.Base(e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// splitStatements splits a script on ';'. go-ora executes one statement per call
// and rejects the trailing semicolon.
func splitStatements(script string) []string {
	var stmts []string
	for _, part := range strings.Split(script, ";") {
		if stmt := strings.TrimSpace(part); stmt != "" {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}
