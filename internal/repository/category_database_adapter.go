package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"trivia-api/internal/domain"
	"trivia-api/internal/repository/models"
)

const selectCategories = `SELECT id "id", type "type" FROM categories`

type CategoryDatabaseAdapter struct {
	db DBTX
}

// NewCategoryDatabaseAdapter creates a new instance of CategoryDatabaseAdapter
func NewCategoryDatabaseAdapter(db DBTX) domain.CategoryRepository {
	return &CategoryDatabaseAdapter{db: db}
}

// ListCategories returns all categories ordered by id
func (r *CategoryDatabaseAdapter) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	exec := GetExecutor(ctx, r.db)

	var categories []models.Category
	query := selectCategories + ` ORDER BY id ASC`
	if err := exec.SelectContext(ctx, &categories, exec.Rebind(query)); err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	domainCategories := make([]*domain.Category, len(categories))
	for i := range categories {
		domainCategories[i] = toDomainCategory(&categories[i])
	}
	return domainCategories, nil
}

// GetCategoryByID returns the category or nil when it does not exist
func (r *CategoryDatabaseAdapter) GetCategoryByID(ctx context.Context, id int64) (*domain.Category, error) {
	exec := GetExecutor(ctx, r.db)

	var category models.Category
	query := selectCategories + ` WHERE id = ?`
	if err := exec.GetContext(ctx, &category, exec.Rebind(query), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get category %d: %w", id, err)
	}
	return toDomainCategory(&category), nil
}

// SaveCategory persists a new category. A preset ID is kept so seeded
// category ids stay stable.
func (r *CategoryDatabaseAdapter) SaveCategory(ctx context.Context, category *domain.Category) error {
	if category == nil {
		return fmt.Errorf("cannot save nil category")
	}
	exec := GetExecutor(ctx, r.db)

	if category.ID == 0 && isOracle(exec) {
		if err := exec.GetContext(ctx, &category.ID, `SELECT categories_seq.NEXTVAL FROM dual`); err != nil {
			return fmt.Errorf("failed to allocate category id: %w", err)
		}
	}

	if category.ID != 0 {
		query := `INSERT INTO categories (id, type) VALUES (?, ?)`
		if _, err := exec.ExecContext(ctx, exec.Rebind(query), category.ID, category.Type); err != nil {
			return fmt.Errorf("failed to save category: %w", err)
		}
		return nil
	}

	query := `INSERT INTO categories (type) VALUES (?) RETURNING id`
	if err := exec.GetContext(ctx, &category.ID, exec.Rebind(query), category.Type); err != nil {
		return fmt.Errorf("failed to save category: %w", err)
	}
	return nil
}

func toDomainCategory(m *models.Category) *domain.Category {
	return &domain.Category{
		ID:   m.ID,
		Type: m.Type,
	}
}
