package service

import (
	"context"
	"math/rand/v2"

	"trivia-api/internal/domain"
	"trivia-api/internal/dto"
	"trivia-api/internal/logger"
	"trivia-api/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// QuizService defines the interface for quiz play
type QuizService interface {
	PlayQuiz(ctx context.Context, req *dto.QuizRequest) (*dto.QuizResponse, error)
}

// quizService implements QuizService
type quizService struct {
	questions domain.QuestionRepository
	outcomes  *prometheus.CounterVec
	intn      func(n int) int
}

// NewQuizService creates a new instance of quizService. outcomes may be nil.
func NewQuizService(questions domain.QuestionRepository, outcomes *prometheus.CounterVec) QuizService {
	return &quizService{
		questions: questions,
		outcomes:  outcomes,
		intn:      rand.IntN,
	}
}

// PlayQuiz implements QuizService. The pool is every question for category 0
// or an absent category, else the questions of that category; questions
// already in PreviousQuestions are never drawn again.
func (s *quizService) PlayQuiz(ctx context.Context, req *dto.QuizRequest) (*dto.QuizResponse, error) {
	categoryID := req.CategoryID()

	var (
		pool []*domain.Question
		err  error
	)
	if categoryID == domain.AllCategories {
		pool, err = s.questions.ListQuestions(ctx)
	} else {
		pool, err = s.questions.ListQuestionsByCategory(ctx, categoryID)
	}
	if err != nil {
		s.record(metrics.QuizError)
		return nil, domain.NewUnprocessableError("failed to load quiz questions", err)
	}

	question, err := domain.SelectQuizQuestion(pool, req.PreviousQuestions, s.intn)
	if err != nil {
		s.record(metrics.QuizExhausted)
		logger.Get().Debug("Quiz pool exhausted",
			zap.Int64("category_id", categoryID),
			zap.Int("pool_size", len(pool)),
			zap.Int("previous", len(req.PreviousQuestions)),
		)
		return nil, domain.NewUnprocessableError("no question left to play", err)
	}
	s.record(metrics.QuizServed)

	previous := req.PreviousQuestions
	if previous == nil {
		previous = []int64{}
	}

	return &dto.QuizResponse{
		Success:           true,
		Question:          dto.NewQuestionResponse(question),
		PreviousQuestions: previous,
	}, nil
}

func (s *quizService) record(outcome string) {
	if s.outcomes != nil {
		s.outcomes.WithLabelValues(outcome).Inc()
	}
}
