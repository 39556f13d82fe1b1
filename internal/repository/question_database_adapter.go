package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"trivia-api/internal/domain"
	"trivia-api/internal/repository/models"
)

const selectQuestions = `SELECT
		id "id",
		question "question",
		answer "answer",
		category "category",
		difficulty "difficulty"
	FROM questions`

// QuestionDatabaseAdapter implements domain.QuestionRepository using sqlx
type QuestionDatabaseAdapter struct {
	db DBTX
}

// NewQuestionDatabaseAdapter creates a new instance of QuestionDatabaseAdapter
func NewQuestionDatabaseAdapter(db DBTX) domain.QuestionRepository {
	return &QuestionDatabaseAdapter{db: db}
}

// ListQuestions implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) ListQuestions(ctx context.Context) ([]*domain.Question, error) {
	questions, err := a.selectQuestions(ctx, selectQuestions+` ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	return questions, nil
}

// ListQuestionsByCategory implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) ListQuestionsByCategory(ctx context.Context, categoryID int64) ([]*domain.Question, error) {
	query := selectQuestions + ` WHERE category = ? ORDER BY id ASC`
	questions, err := a.selectQuestions(ctx, query, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions for category %d: %w", categoryID, err)
	}
	return questions, nil
}

// SearchQuestions implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) SearchQuestions(ctx context.Context, term string) ([]*domain.Question, error) {
	query := selectQuestions + ` WHERE LOWER(question) LIKE ? ESCAPE '\' ORDER BY id ASC`
	questions, err := a.selectQuestions(ctx, query, containsPattern(term))
	if err != nil {
		return nil, fmt.Errorf("failed to search questions: %w", err)
	}
	return questions, nil
}

// GetQuestionByID implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) GetQuestionByID(ctx context.Context, id int64) (*domain.Question, error) {
	exec := GetExecutor(ctx, a.db)

	var modelQuestion models.Question
	query := selectQuestions + ` WHERE id = ?`
	if err := exec.GetContext(ctx, &modelQuestion, exec.Rebind(query), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get question by ID %d: %w", id, err)
	}
	return toDomainQuestion(&modelQuestion), nil
}

// SaveQuestion implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) SaveQuestion(ctx context.Context, question *domain.Question) error {
	if question == nil {
		return fmt.Errorf("cannot save nil question")
	}
	exec := GetExecutor(ctx, a.db)
	m := toModelQuestion(question)

	if isOracle(exec) {
		if err := exec.GetContext(ctx, &m.ID, `SELECT questions_seq.NEXTVAL FROM dual`); err != nil {
			return fmt.Errorf("failed to allocate question id: %w", err)
		}
		query := `INSERT INTO questions (id, question, answer, category, difficulty) VALUES (?, ?, ?, ?, ?)`
		if _, err := exec.ExecContext(ctx, exec.Rebind(query), m.ID, m.Question, m.Answer, m.Category, m.Difficulty); err != nil {
			return fmt.Errorf("failed to save question: %w", err)
		}
	} else {
		query := `INSERT INTO questions (question, answer, category, difficulty) VALUES (?, ?, ?, ?) RETURNING id`
		if err := exec.GetContext(ctx, &m.ID, exec.Rebind(query), m.Question, m.Answer, m.Category, m.Difficulty); err != nil {
			return fmt.Errorf("failed to save question: %w", err)
		}
	}

	question.ID = m.ID
	return nil
}

// DeleteQuestion implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) DeleteQuestion(ctx context.Context, id int64) error {
	exec := GetExecutor(ctx, a.db)

	result, err := exec.ExecContext(ctx, exec.Rebind(`DELETE FROM questions WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete question %d: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrQuestionNotFound
	}
	return nil
}

func (a *QuestionDatabaseAdapter) selectQuestions(ctx context.Context, query string, args ...interface{}) ([]*domain.Question, error) {
	exec := GetExecutor(ctx, a.db)

	var modelQuestions []models.Question
	if err := exec.SelectContext(ctx, &modelQuestions, exec.Rebind(query), args...); err != nil {
		return nil, err
	}

	questions := make([]*domain.Question, len(modelQuestions))
	for i := range modelQuestions {
		questions[i] = toDomainQuestion(&modelQuestions[i])
	}
	return questions, nil
}

// Helper functions for model conversion
func toDomainQuestion(m *models.Question) *domain.Question {
	return &domain.Question{
		ID:         m.ID,
		Question:   m.Question,
		Answer:     m.Answer,
		Category:   m.Category,
		Difficulty: m.Difficulty,
	}
}

func toModelQuestion(d *domain.Question) *models.Question {
	return &models.Question{
		ID:         d.ID,
		Question:   d.Question,
		Answer:     d.Answer,
		Category:   d.Category,
		Difficulty: d.Difficulty,
	}
}
