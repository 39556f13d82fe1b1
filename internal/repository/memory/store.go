// Package memory is an in-process store implementing the domain repositories.
// It backs the memory database driver and the handler tests.
package memory

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"

	"trivia-api/internal/domain"
)

type txKey struct{}

// Store keeps categories and questions in maps guarded by a RWMutex.
// Transactions are serialized and roll back by restoring a snapshot taken
// when they begin. Calls outside a transaction wait for the open one to
// finish, so they never observe uncommitted writes.
type Store struct {
	mu             sync.RWMutex
	categories     map[int64]domain.Category
	questions      map[int64]domain.Question
	nextCategoryID int64
	nextQuestionID int64

	txMu sync.RWMutex
}

// NewStore returns an empty store. Generated ids start at 1.
func NewStore() *Store {
	return &Store{
		categories:     make(map[int64]domain.Category),
		questions:      make(map[int64]domain.Question),
		nextCategoryID: 1,
		nextQuestionID: 1,
	}
}

var (
	_ domain.CategoryRepository = (*Store)(nil)
	_ domain.QuestionRepository = (*Store)(nil)
	_ domain.TransactionManager = (*Store)(nil)
	_ domain.HealthChecker      = (*Store)(nil)
)

func (s *Store) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	defer s.enter(ctx)()
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := slices.Sorted(maps.Keys(s.categories))
	categories := make([]*domain.Category, 0, len(ids))
	for _, id := range ids {
		c := s.categories[id]
		categories = append(categories, &c)
	}
	return categories, nil
}

func (s *Store) GetCategoryByID(ctx context.Context, id int64) (*domain.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	defer s.enter(ctx)()
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.categories[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (s *Store) SaveCategory(ctx context.Context, category *domain.Category) error {
	if category == nil {
		return fmt.Errorf("cannot save nil category")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	defer s.enter(ctx)()
	s.mu.Lock()
	defer s.mu.Unlock()

	if category.ID == 0 {
		category.ID = s.nextCategoryID
	}
	if _, exists := s.categories[category.ID]; exists {
		return fmt.Errorf("category %d already exists", category.ID)
	}
	s.categories[category.ID] = *category
	if category.ID >= s.nextCategoryID {
		s.nextCategoryID = category.ID + 1
	}
	return nil
}

func (s *Store) ListQuestions(ctx context.Context) ([]*domain.Question, error) {
	return s.filterQuestions(ctx, func(*domain.Question) bool { return true })
}

func (s *Store) ListQuestionsByCategory(ctx context.Context, categoryID int64) ([]*domain.Question, error) {
	return s.filterQuestions(ctx, func(q *domain.Question) bool { return q.Category == categoryID })
}

func (s *Store) SearchQuestions(ctx context.Context, term string) ([]*domain.Question, error) {
	return s.filterQuestions(ctx, func(q *domain.Question) bool { return q.MatchesSearch(term) })
}

func (s *Store) GetQuestionByID(ctx context.Context, id int64) (*domain.Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	defer s.enter(ctx)()
	s.mu.RLock()
	defer s.mu.RUnlock()

	q, ok := s.questions[id]
	if !ok {
		return nil, nil
	}
	return &q, nil
}

func (s *Store) SaveQuestion(ctx context.Context, question *domain.Question) error {
	if question == nil {
		return fmt.Errorf("cannot save nil question")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	defer s.enter(ctx)()
	s.mu.Lock()
	defer s.mu.Unlock()

	question.ID = s.nextQuestionID
	s.nextQuestionID++
	s.questions[question.ID] = *question
	return nil
}

func (s *Store) DeleteQuestion(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	defer s.enter(ctx)()
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.questions[id]; !ok {
		return domain.ErrQuestionNotFound
	}
	delete(s.questions, id)
	return nil
}

// WithTransaction runs fn with exclusive access to the store's transaction
// slot. Any error or panic from fn restores the state seen when it started.
// Nested calls join the outer transaction.
func (s *Store) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if s.inTransaction(ctx) {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	snap := s.snapshot()
	defer func() {
		if p := recover(); p != nil {
			s.restore(snap)
			panic(p)
		}
		if err != nil {
			s.restore(snap)
		}
	}()

	return fn(context.WithValue(ctx, txKey{}, s))
}

func (s *Store) inTransaction(ctx context.Context) bool {
	tx, _ := ctx.Value(txKey{}).(*Store)
	return tx == s
}

// enter blocks while another caller's transaction is open. The returned
// func releases the slot.
func (s *Store) enter(ctx context.Context) func() {
	if s.inTransaction(ctx) {
		return func() {}
	}
	s.txMu.RLock()
	return s.txMu.RUnlock
}

// Ping always succeeds unless ctx is done.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *Store) filterQuestions(ctx context.Context, keep func(*domain.Question) bool) ([]*domain.Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	defer s.enter(ctx)()
	s.mu.RLock()
	defer s.mu.RUnlock()

	questions := make([]*domain.Question, 0, len(s.questions))
	for _, id := range slices.Sorted(maps.Keys(s.questions)) {
		q := s.questions[id]
		if keep(&q) {
			questions = append(questions, &q)
		}
	}
	return questions, nil
}

type snapshot struct {
	categories     map[int64]domain.Category
	questions      map[int64]domain.Question
	nextCategoryID int64
	nextQuestionID int64
}

func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot{
		categories:     maps.Clone(s.categories),
		questions:      maps.Clone(s.questions),
		nextCategoryID: s.nextCategoryID,
		nextQuestionID: s.nextQuestionID,
	}
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = snap.categories
	s.questions = snap.questions
	s.nextCategoryID = snap.nextCategoryID
	s.nextQuestionID = snap.nextQuestionID
}
