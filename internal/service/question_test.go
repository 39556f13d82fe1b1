package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"trivia-api/internal/config"
	"trivia-api/internal/domain"
	"trivia-api/internal/dto"
	"trivia-api/internal/logger"
	"trivia-api/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// TestMain initializes the logger for all tests in this package
func TestMain(m *testing.M) {
	if err := logger.Initialize(config.LoggerConfig{Level: "error"}); err != nil {
		panic("Failed to initialize logger for tests: " + err.Error())
	}
	exitVal := m.Run()
	_ = logger.Sync()
	os.Exit(exitVal)
}

func testCategories() []*domain.Category {
	return []*domain.Category{
		{ID: 1, Type: "Science"},
		{ID: 2, Type: "Art"},
		{ID: 3, Type: "Geography"},
	}
}

// makeQuestions returns n questions with ids 1..n spread over categories 1 and 2.
func makeQuestions(n int) []*domain.Question {
	questions := make([]*domain.Question, n)
	for i := range questions {
		questions[i] = &domain.Question{
			ID:         int64(i + 1),
			Question:   fmt.Sprintf("Question %d?", i+1),
			Answer:     fmt.Sprintf("Answer %d", i+1),
			Category:   int64(i%2 + 1),
			Difficulty: i%5 + 1,
		}
	}
	return questions
}

type questionServiceFixture struct {
	categories *MockCategoryRepository
	questions  *MockQuestionRepository
	tm         *MockTransactionManager
	svc        QuestionService
}

func newQuestionServiceFixture() *questionServiceFixture {
	f := &questionServiceFixture{
		categories: new(MockCategoryRepository),
		questions:  new(MockQuestionRepository),
		tm:         new(MockTransactionManager),
	}
	f.svc = NewQuestionService(f.categories, f.questions, f.tm, validation.NewValidator())
	return f
}

func (f *questionServiceFixture) assertExpectations(t *testing.T) {
	f.categories.AssertExpectations(t)
	f.questions.AssertExpectations(t)
	f.tm.AssertExpectations(t)
}

func TestGetCategories(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		f := newQuestionServiceFixture()
		f.categories.On("ListCategories", mock.Anything).Return(testCategories(), nil).Once()

		resp, err := f.svc.GetCategories(context.Background())
		require.NoError(t, err)
		assert.True(t, resp.Success)
		assert.Equal(t, 3, resp.TotalCategories)
		assert.Equal(t, map[int64]string{1: "Science", 2: "Art", 3: "Geography"}, resp.Categories)
		f.assertExpectations(t)
	})

	t.Run("store failure is not found", func(t *testing.T) {
		f := newQuestionServiceFixture()
		f.categories.On("ListCategories", mock.Anything).Return(nil, errors.New("db down")).Once()

		_, err := f.svc.GetCategories(context.Background())
		assert.Equal(t, domain.CodeNotFound, domain.CodeOf(err))
		f.assertExpectations(t)
	})
}

func TestGetQuestions(t *testing.T) {
	tests := []struct {
		name        string
		questions   []*domain.Question
		categories  []*domain.Category
		page        int
		wantLen     int
		wantCode    domain.ErrorCode
		wantCurrent *string
	}{
		{name: "first page of 19", questions: makeQuestions(19), categories: testCategories(), page: 1, wantLen: 10},
		{name: "last partial page", questions: makeQuestions(19), categories: testCategories(), page: 2, wantLen: 9},
		{name: "page past end", questions: makeQuestions(19), categories: testCategories(), page: 2000, wantCode: domain.CodeNotFound},
		{name: "page zero", questions: makeQuestions(19), categories: testCategories(), page: 0, wantCode: domain.CodeNotFound},
		{name: "no questions", questions: []*domain.Question{}, categories: testCategories(), page: 1, wantCode: domain.CodeNotFound},
		{name: "no categories", questions: makeQuestions(3), categories: []*domain.Category{}, page: 1, wantLen: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newQuestionServiceFixture()
			f.categories.On("ListCategories", mock.Anything).Return(tt.categories, nil).Once()
			f.questions.On("ListQuestions", mock.Anything).Return(tt.questions, nil).Once()

			resp, err := f.svc.GetQuestions(context.Background(), tt.page)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, domain.CodeOf(err))
				assert.ErrorIs(t, err, domain.ErrPageOutOfRange)
				return
			}
			require.NoError(t, err)
			assert.Len(t, resp.Questions, tt.wantLen)
			assert.Equal(t, len(tt.questions), resp.TotalQuestions)
			assert.Len(t, resp.Categories, len(tt.categories))
			if len(tt.categories) > 0 {
				require.NotNil(t, resp.CurrentCategory)
				assert.Equal(t, tt.categories[0].Type, *resp.CurrentCategory)
			} else {
				assert.Nil(t, resp.CurrentCategory)
			}
			f.assertExpectations(t)
		})
	}
}

func TestGetQuestions_PageContents(t *testing.T) {
	f := newQuestionServiceFixture()
	f.categories.On("ListCategories", mock.Anything).Return(testCategories(), nil)
	f.questions.On("ListQuestions", mock.Anything).Return(makeQuestions(19), nil)

	resp, err := f.svc.GetQuestions(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, int64(11), resp.Questions[0].ID)
	assert.Equal(t, int64(19), resp.Questions[8].ID)
}

func TestGetQuestions_StoreFailure(t *testing.T) {
	f := newQuestionServiceFixture()
	f.categories.On("ListCategories", mock.Anything).Return(testCategories(), nil).Maybe()
	f.questions.On("ListQuestions", mock.Anything).Return(nil, errors.New("db down"))

	_, err := f.svc.GetQuestions(context.Background(), 1)
	assert.Equal(t, domain.CodeInternal, domain.CodeOf(err))
}

func TestGetQuestionsByCategory(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		f := newQuestionServiceFixture()
		art := []*domain.Question{{ID: 16, Question: "Escher?", Answer: "Escher", Category: 2, Difficulty: 1}}
		f.categories.On("GetCategoryByID", mock.Anything, int64(2)).Return(&domain.Category{ID: 2, Type: "Art"}, nil).Once()
		f.questions.On("ListQuestionsByCategory", mock.Anything, int64(2)).Return(art, nil).Once()

		resp, err := f.svc.GetQuestionsByCategory(context.Background(), 2, 1)
		require.NoError(t, err)
		assert.Equal(t, "Art", resp.CurrentCategory)
		assert.Equal(t, 1, resp.TotalQuestions)
		assert.Equal(t, int64(16), resp.Questions[0].ID)
		f.assertExpectations(t)
	})

	t.Run("unknown category", func(t *testing.T) {
		f := newQuestionServiceFixture()
		f.categories.On("GetCategoryByID", mock.Anything, int64(200)).Return(nil, nil).Once()

		_, err := f.svc.GetQuestionsByCategory(context.Background(), 200, 1)
		assert.Equal(t, domain.CodeNotFound, domain.CodeOf(err))
		assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
		f.questions.AssertNotCalled(t, "ListQuestionsByCategory", mock.Anything, mock.Anything)
		f.assertExpectations(t)
	})

	t.Run("existing category without questions", func(t *testing.T) {
		f := newQuestionServiceFixture()
		f.categories.On("GetCategoryByID", mock.Anything, int64(3)).Return(&domain.Category{ID: 3, Type: "Geography"}, nil).Once()
		f.questions.On("ListQuestionsByCategory", mock.Anything, int64(3)).Return([]*domain.Question{}, nil).Once()

		resp, err := f.svc.GetQuestionsByCategory(context.Background(), 3, 1)
		require.NoError(t, err)
		assert.True(t, resp.Success)
		assert.Equal(t, 0, resp.TotalQuestions)
		assert.NotNil(t, resp.Questions)
		assert.Empty(t, resp.Questions)
		f.assertExpectations(t)
	})

	t.Run("page past end", func(t *testing.T) {
		f := newQuestionServiceFixture()
		f.categories.On("GetCategoryByID", mock.Anything, int64(1)).Return(&domain.Category{ID: 1, Type: "Science"}, nil).Once()
		f.questions.On("ListQuestionsByCategory", mock.Anything, int64(1)).Return(makeQuestions(3), nil).Once()

		_, err := f.svc.GetQuestionsByCategory(context.Background(), 1, 5)
		assert.Equal(t, domain.CodeNotFound, domain.CodeOf(err))
		f.assertExpectations(t)
	})

	t.Run("store failure", func(t *testing.T) {
		f := newQuestionServiceFixture()
		f.categories.On("GetCategoryByID", mock.Anything, int64(1)).Return(nil, errors.New("db down")).Once()

		_, err := f.svc.GetQuestionsByCategory(context.Background(), 1, 1)
		assert.Equal(t, domain.CodeInternal, domain.CodeOf(err))
		f.assertExpectations(t)
	})
}

func TestSearchQuestions(t *testing.T) {
	t.Run("matches", func(t *testing.T) {
		f := newQuestionServiceFixture()
		found := []*domain.Question{{ID: 6, Question: "What was the title of the 1990 fantasy directed by Tim Burton?", Answer: "Edward Scissorhands", Category: 5, Difficulty: 3}}
		f.questions.On("SearchQuestions", mock.Anything, "title").Return(found, nil).Once()

		resp, err := f.svc.SearchQuestions(context.Background(), &dto.SearchQuestionsRequest{SearchTerm: "title"}, 1)
		require.NoError(t, err)
		assert.Equal(t, 1, resp.TotalQuestions)
		assert.Equal(t, "Edward Scissorhands", resp.Questions[0].Answer)
		f.assertExpectations(t)
	})

	t.Run("no match is success", func(t *testing.T) {
		f := newQuestionServiceFixture()
		f.questions.On("SearchQuestions", mock.Anything, "zzz").Return([]*domain.Question{}, nil).Once()

		resp, err := f.svc.SearchQuestions(context.Background(), &dto.SearchQuestionsRequest{SearchTerm: "zzz"}, 1)
		require.NoError(t, err)
		assert.True(t, resp.Success)
		assert.Equal(t, 0, resp.TotalQuestions)
		assert.Empty(t, resp.Questions)
		f.assertExpectations(t)
	})

	t.Run("empty term", func(t *testing.T) {
		f := newQuestionServiceFixture()

		_, err := f.svc.SearchQuestions(context.Background(), &dto.SearchQuestionsRequest{}, 1)
		assert.Equal(t, domain.CodeUnprocessable, domain.CodeOf(err))
		f.questions.AssertNotCalled(t, "SearchQuestions", mock.Anything, mock.Anything)
	})

	t.Run("paginated", func(t *testing.T) {
		f := newQuestionServiceFixture()
		f.questions.On("SearchQuestions", mock.Anything, "question").Return(makeQuestions(12), nil).Once()

		resp, err := f.svc.SearchQuestions(context.Background(), &dto.SearchQuestionsRequest{SearchTerm: "question"}, 2)
		require.NoError(t, err)
		assert.Len(t, resp.Questions, 2)
		assert.Equal(t, 12, resp.TotalQuestions)
	})
}

func TestCreateQuestion(t *testing.T) {
	t.Run("defaults applied and listing refreshed", func(t *testing.T) {
		f := newQuestionServiceFixture()
		f.tm.On("WithTransaction", mock.Anything).Return(nil).Once()
		f.questions.On("SaveQuestion", mock.Anything, mock.MatchedBy(func(q *domain.Question) bool {
			return q.Category == domain.DefaultCategoryID && q.Difficulty == domain.DefaultDifficulty
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Question).ID = 20
		}).Return(nil).Once()
		f.questions.On("ListQuestions", mock.Anything).Return(makeQuestions(20), nil).Once()

		resp, err := f.svc.CreateQuestion(context.Background(), &dto.CreateQuestionRequest{Question: "q", Answer: "a"}, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(20), resp.Created)
		assert.Equal(t, 20, resp.TotalQuestions)
		assert.Len(t, resp.Questions, 10)
		f.assertExpectations(t)
	})

	t.Run("explicit category and difficulty", func(t *testing.T) {
		f := newQuestionServiceFixture()
		category, difficulty := int64(4), 2
		f.tm.On("WithTransaction", mock.Anything).Return(nil).Once()
		f.questions.On("SaveQuestion", mock.Anything, mock.MatchedBy(func(q *domain.Question) bool {
			return q.Category == 4 && q.Difficulty == 2
		})).Return(nil).Once()
		f.questions.On("ListQuestions", mock.Anything).Return(makeQuestions(1), nil).Once()

		_, err := f.svc.CreateQuestion(context.Background(), &dto.CreateQuestionRequest{
			Question: "Who is the most influential person?", Answer: "nobody", Category: &category, Difficulty: &difficulty,
		}, 1)
		require.NoError(t, err)
		f.assertExpectations(t)
	})

	t.Run("missing fields", func(t *testing.T) {
		f := newQuestionServiceFixture()

		_, err := f.svc.CreateQuestion(context.Background(), &dto.CreateQuestionRequest{Answer: "only an answer"}, 1)
		assert.Equal(t, domain.CodeUnprocessable, domain.CodeOf(err))
		f.tm.AssertNotCalled(t, "WithTransaction", mock.Anything)
	})

	t.Run("store failure", func(t *testing.T) {
		f := newQuestionServiceFixture()
		f.tm.On("WithTransaction", mock.Anything).Return(nil).Once()
		f.questions.On("SaveQuestion", mock.Anything, mock.Anything).Return(errors.New("insert failed")).Once()

		_, err := f.svc.CreateQuestion(context.Background(), &dto.CreateQuestionRequest{Question: "q", Answer: "a"}, 1)
		assert.Equal(t, domain.CodeUnprocessable, domain.CodeOf(err))
		f.questions.AssertNotCalled(t, "ListQuestions", mock.Anything)
		f.assertExpectations(t)
	})
}

func TestDeleteQuestion(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		f := newQuestionServiceFixture()
		f.tm.On("WithTransaction", mock.Anything).Return(nil).Once()
		f.questions.On("GetQuestionByID", mock.Anything, int64(2)).Return(&domain.Question{ID: 2}, nil).Once()
		f.questions.On("DeleteQuestion", mock.Anything, int64(2)).Return(nil).Once()
		f.questions.On("ListQuestions", mock.Anything).Return(makeQuestions(18), nil).Once()

		resp, err := f.svc.DeleteQuestion(context.Background(), 2, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(2), resp.Deleted)
		assert.Equal(t, 18, resp.TotalQuestions)
		assert.Len(t, resp.Questions, 10)
		f.assertExpectations(t)
	})

	t.Run("missing id", func(t *testing.T) {
		f := newQuestionServiceFixture()
		f.tm.On("WithTransaction", mock.Anything).Return(nil).Once()
		f.questions.On("GetQuestionByID", mock.Anything, int64(2000)).Return(nil, nil).Once()

		_, err := f.svc.DeleteQuestion(context.Background(), 2000, 1)
		assert.Equal(t, domain.CodeUnprocessable, domain.CodeOf(err))
		assert.ErrorIs(t, err, domain.ErrQuestionNotFound)
		f.questions.AssertNotCalled(t, "DeleteQuestion", mock.Anything, mock.Anything)
		f.assertExpectations(t)
	})

	t.Run("relist failure", func(t *testing.T) {
		f := newQuestionServiceFixture()
		f.tm.On("WithTransaction", mock.Anything).Return(nil).Once()
		f.questions.On("GetQuestionByID", mock.Anything, int64(2)).Return(&domain.Question{ID: 2}, nil).Once()
		f.questions.On("DeleteQuestion", mock.Anything, int64(2)).Return(nil).Once()
		f.questions.On("ListQuestions", mock.Anything).Return(nil, errors.New("connection lost")).Once()

		_, err := f.svc.DeleteQuestion(context.Background(), 2, 1)
		assert.Equal(t, domain.CodeUnprocessable, domain.CodeOf(err))
		f.assertExpectations(t)
	})

	t.Run("begin failure", func(t *testing.T) {
		f := newQuestionServiceFixture()
		f.tm.On("WithTransaction", mock.Anything).Return(errors.New("too many connections")).Once()

		_, err := f.svc.DeleteQuestion(context.Background(), 2, 1)
		assert.Equal(t, domain.CodeUnprocessable, domain.CodeOf(err))
		f.assertExpectations(t)
	})
}
