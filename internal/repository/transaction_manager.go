package repository

import (
	"context"
	"fmt"

	"trivia-api/internal/domain"
	"trivia-api/internal/logger"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// contextKey is the type of context keys owned by this package
type contextKey string

const (
	// TransactionContextKey holds the active *sqlx.Tx in a context
	TransactionContextKey contextKey = "tx"
)

// GetExecutor returns the transaction stored in ctx, or db when there is none.
func GetExecutor(ctx context.Context, db DBTX) DBTX {
	if tx := ctx.Value(TransactionContextKey); tx != nil {
		if sqlxTx, ok := tx.(*sqlx.Tx); ok {
			return sqlxTx
		}
	}
	return db
}

// TransactionManagerAdapter implements domain.TransactionManager on sqlx.DB
type TransactionManagerAdapter struct {
	db *sqlx.DB
}

var (
	_ domain.TransactionManager = (*TransactionManagerAdapter)(nil)
	_ domain.HealthChecker      = (*TransactionManagerAdapter)(nil)
)

// NewTransactionManagerAdapter creates a new transaction manager for db
func NewTransactionManagerAdapter(db *sqlx.DB) *TransactionManagerAdapter {
	return &TransactionManagerAdapter{db: db}
}

// WithTransaction runs fn in a transaction. Nested calls join the outer one.
func (tma *TransactionManagerAdapter) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if _, ok := ctx.Value(TransactionContextKey).(*sqlx.Tx); ok {
		return fn(ctx)
	}

	tx, err := tma.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				logger.Get().Error("failed to rollback transaction after panic", zap.Error(rollbackErr))
			}
			panic(p)
		}
	}()

	txCtx := context.WithValue(ctx, TransactionContextKey, tx)

	if err := fn(txCtx); err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			return fmt.Errorf("failed to rollback transaction: %v (original error: %w)", rollbackErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Ping implements domain.HealthChecker
func (tma *TransactionManagerAdapter) Ping(ctx context.Context) error {
	return tma.db.PingContext(ctx)
}
