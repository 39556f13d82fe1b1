// Package seed loads the JSON trivia fixture into a store.
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"trivia-api/internal/domain"
	"trivia-api/internal/logger"

	"go.uber.org/zap"
)

// SeedCategory defines a category in the JSON seed file. The id is kept.
type SeedCategory struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
}

// SeedQuestion defines a question in the JSON seed file. Ids are assigned by
// the store in file order.
type SeedQuestion struct {
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   *int64 `json:"category"`
	Difficulty *int   `json:"difficulty"`
}

// Fixture is the whole seed file.
type Fixture struct {
	Categories []SeedCategory `json:"categories"`
	Questions  []SeedQuestion `json:"questions"`
}

// Result reports what Apply wrote.
type Result struct {
	CategoriesCreated int
	CategoriesSkipped int
	QuestionsCreated  int
	QuestionsSkipped  int
}

// LoadFile reads and decodes a fixture.
func LoadFile(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file %s: %w", path, err)
	}

	var fixture Fixture
	if err := json.Unmarshal(data, &fixture); err != nil {
		return nil, fmt.Errorf("failed to decode seed file %s: %w", path, err)
	}
	for i, c := range fixture.Categories {
		if c.ID <= 0 || c.Type == "" {
			return nil, fmt.Errorf("seed category %d: id and type are required", i)
		}
	}
	for i, q := range fixture.Questions {
		if q.Question == "" || q.Answer == "" {
			return nil, fmt.Errorf("seed question %d: question and answer are required", i)
		}
	}
	return &fixture, nil
}

// Apply writes the fixture in one transaction. Categories whose id already
// exists are skipped. Questions are only inserted into an empty question
// table so running the seeder twice does not duplicate them.
func Apply(
	ctx context.Context,
	fixture *Fixture,
	categories domain.CategoryRepository,
	questions domain.QuestionRepository,
	tm domain.TransactionManager,
) (*Result, error) {
	log := logger.Get()
	result := &Result{}

	err := tm.WithTransaction(ctx, func(txCtx context.Context) error {
		for _, sc := range fixture.Categories {
			existing, err := categories.GetCategoryByID(txCtx, sc.ID)
			if err != nil {
				return fmt.Errorf("error checking category %d: %w", sc.ID, err)
			}
			if existing != nil {
				log.Debug("Category exists", zap.Int64("id", existing.ID), zap.String("type", existing.Type))
				result.CategoriesSkipped++
				continue
			}
			if err := categories.SaveCategory(txCtx, &domain.Category{ID: sc.ID, Type: sc.Type}); err != nil {
				return fmt.Errorf("failed to save category %s: %w", sc.Type, err)
			}
			result.CategoriesCreated++
		}

		current, err := questions.ListQuestions(txCtx)
		if err != nil {
			return fmt.Errorf("error checking existing questions: %w", err)
		}
		if len(current) > 0 {
			log.Info("Questions already present, skipping", zap.Int("existing", len(current)))
			result.QuestionsSkipped = len(fixture.Questions)
			return nil
		}

		for _, sq := range fixture.Questions {
			q := domain.NewQuestion(sq.Question, sq.Answer, sq.Category, sq.Difficulty)
			if err := questions.SaveQuestion(txCtx, q); err != nil {
				return fmt.Errorf("failed to save question %q: %w", firstN(sq.Question, 20), err)
			}
			result.QuestionsCreated++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// firstN returns at most the first n runes of s.
func firstN(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
