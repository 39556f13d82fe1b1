package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithTransaction_Commit(t *testing.T) {
	db, mock := setupTestDB(t, "pgx")
	tm := NewTransactionManagerAdapter(db)
	repo := NewQuestionDatabaseAdapter(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM questions WHERE id = $1`)).
		WithArgs(int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := tm.WithTransaction(context.Background(), func(ctx context.Context) error {
		return repo.DeleteQuestion(ctx, 2)
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTransaction_RollbackOnError(t *testing.T) {
	db, mock := setupTestDB(t, "pgx")
	tm := NewTransactionManagerAdapter(db)
	repo := NewQuestionDatabaseAdapter(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM questions`).
		WithArgs(int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectRollback()

	listErr := errors.New("listing failed")
	err := tm.WithTransaction(context.Background(), func(ctx context.Context) error {
		if err := repo.DeleteQuestion(ctx, 2); err != nil {
			return err
		}
		return listErr
	})
	assert.ErrorIs(t, err, listErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTransaction_RollbackOnPanic(t *testing.T) {
	db, mock := setupTestDB(t, "pgx")
	tm := NewTransactionManagerAdapter(db)

	mock.ExpectBegin()
	mock.ExpectRollback()

	assert.Panics(t, func() {
		_ = tm.WithTransaction(context.Background(), func(ctx context.Context) error {
			panic("boom")
		})
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTransaction_BeginError(t *testing.T) {
	db, mock := setupTestDB(t, "pgx")
	tm := NewTransactionManagerAdapter(db)

	mock.ExpectBegin().WillReturnError(errors.New("too many connections"))

	called := false
	err := tm.WithTransaction(context.Background(), func(ctx context.Context) error {
		called = true
		return nil
	})
	assert.Error(t, err)
	assert.False(t, called)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTransaction_NestedJoinsOuter(t *testing.T) {
	db, mock := setupTestDB(t, "pgx")
	tm := NewTransactionManagerAdapter(db)

	mock.ExpectBegin()
	mock.ExpectCommit()

	err := tm.WithTransaction(context.Background(), func(ctx context.Context) error {
		return tm.WithTransaction(ctx, func(ctx context.Context) error { return nil })
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetExecutor(t *testing.T) {
	db, mock := setupTestDB(t, "pgx")
	assert.Equal(t, DBTX(db), GetExecutor(context.Background(), db))

	mock.ExpectBegin()
	tx, err := db.Beginx()
	require.NoError(t, err)
	ctx := context.WithValue(context.Background(), TransactionContextKey, tx)
	assert.Equal(t, DBTX(tx), GetExecutor(ctx, db))
}

func TestTransactionManagerAdapter_Ping(t *testing.T) {
	mockDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer mockDB.Close()

	tm := &TransactionManagerAdapter{db: sqlx.NewDb(mockDB, "pgx")}
	mock.ExpectPing()
	assert.NoError(t, tm.Ping(context.Background()))

	mock.ExpectPing().WillReturnError(errors.New("down"))
	assert.Error(t, tm.Ping(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
