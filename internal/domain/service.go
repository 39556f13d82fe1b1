package domain

import "context"

// CategoryRepository defines the interface for category persistence
type CategoryRepository interface {
	// ListCategories returns all categories ordered by id
	ListCategories(ctx context.Context) ([]*Category, error)

	// GetCategoryByID returns nil, nil when the category does not exist
	GetCategoryByID(ctx context.Context, id int64) (*Category, error)

	// SaveCategory persists a category, keeping its ID when one is set
	SaveCategory(ctx context.Context, category *Category) error
}

// QuestionRepository defines the interface for question persistence.
// Every list method returns questions ordered by id ascending.
type QuestionRepository interface {
	ListQuestions(ctx context.Context) ([]*Question, error)
	ListQuestionsByCategory(ctx context.Context, categoryID int64) ([]*Question, error)

	// SearchQuestions matches term as a case-insensitive substring of the question text
	SearchQuestions(ctx context.Context, term string) ([]*Question, error)

	// GetQuestionByID returns nil, nil when the question does not exist
	GetQuestionByID(ctx context.Context, id int64) (*Question, error)

	// SaveQuestion inserts the question and sets its ID
	SaveQuestion(ctx context.Context, question *Question) error

	// DeleteQuestion removes the question; ErrQuestionNotFound if nothing was deleted
	DeleteQuestion(ctx context.Context, id int64) error
}

// TransactionManager runs fn inside a single store transaction. The
// transaction commits when fn returns nil and rolls back otherwise, including
// when fn panics.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// HealthChecker reports whether the backing store is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}
