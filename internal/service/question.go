package service

import (
	"context"
	"errors"

	"trivia-api/internal/domain"
	"trivia-api/internal/dto"
	"trivia-api/internal/logger"
	"trivia-api/internal/validation"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// QuestionService defines the interface for category and question operations
type QuestionService interface {
	GetCategories(ctx context.Context) (*dto.CategoriesResponse, error)
	GetQuestions(ctx context.Context, page int) (*dto.QuestionsResponse, error)
	GetQuestionsByCategory(ctx context.Context, categoryID int64, page int) (*dto.CategoryQuestionsResponse, error)
	SearchQuestions(ctx context.Context, req *dto.SearchQuestionsRequest, page int) (*dto.SearchQuestionsResponse, error)
	CreateQuestion(ctx context.Context, req *dto.CreateQuestionRequest, page int) (*dto.CreateQuestionResponse, error)
	DeleteQuestion(ctx context.Context, id int64, page int) (*dto.DeleteQuestionResponse, error)
}

// questionService implements QuestionService
type questionService struct {
	categories domain.CategoryRepository
	questions  domain.QuestionRepository
	tm         domain.TransactionManager
	validator  *validation.Validator
}

// NewQuestionService creates a new instance of questionService
func NewQuestionService(
	categories domain.CategoryRepository,
	questions domain.QuestionRepository,
	tm domain.TransactionManager,
	validator *validation.Validator,
) QuestionService {
	return &questionService{
		categories: categories,
		questions:  questions,
		tm:         tm,
		validator:  validator,
	}
}

// GetCategories implements QuestionService. A store failure is reported as
// NotFound, matching the public contract of GET /categories.
func (s *questionService) GetCategories(ctx context.Context) (*dto.CategoriesResponse, error) {
	categories, err := s.categories.ListCategories(ctx)
	if err != nil {
		return nil, domain.NewNotFoundError("failed to list categories", err)
	}

	return &dto.CategoriesResponse{
		Success:         true,
		Categories:      domain.CategoryTypes(categories),
		TotalCategories: len(categories),
	}, nil
}

// GetQuestions implements QuestionService. An empty page, including the
// empty listing, is NotFound.
func (s *questionService) GetQuestions(ctx context.Context, page int) (*dto.QuestionsResponse, error) {
	var (
		categories []*domain.Category
		questions  []*domain.Question
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		categories, err = s.categories.ListCategories(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		questions, err = s.questions.ListQuestions(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, domain.NewInternalError("failed to list questions", err)
	}

	p := domain.NewPage(questions, page)
	if p.Empty() {
		return nil, domain.NewNotFoundError("page has no questions", domain.ErrPageOutOfRange)
	}

	var current *string
	if len(categories) > 0 {
		current = &categories[0].Type
	}

	return &dto.QuestionsResponse{
		Success:         true,
		Questions:       dto.NewQuestionResponses(p.Questions),
		TotalQuestions:  p.Total,
		CurrentCategory: current,
		Categories:      domain.CategoryTypes(categories),
	}, nil
}

// GetQuestionsByCategory implements QuestionService. An unknown category is
// NotFound; an existing category without questions is an empty success.
func (s *questionService) GetQuestionsByCategory(ctx context.Context, categoryID int64, page int) (*dto.CategoryQuestionsResponse, error) {
	category, err := s.categories.GetCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, domain.NewInternalError("failed to get category", err)
	}
	if category == nil {
		return nil, domain.NewNotFoundError("category does not exist", domain.ErrCategoryNotFound)
	}

	questions, err := s.questions.ListQuestionsByCategory(ctx, categoryID)
	if err != nil {
		return nil, domain.NewInternalError("failed to list questions by category", err)
	}

	p := domain.NewPage(questions, page)
	if p.Empty() && p.Total > 0 {
		return nil, domain.NewNotFoundError("page has no questions", domain.ErrPageOutOfRange)
	}

	return &dto.CategoryQuestionsResponse{
		Success:         true,
		Questions:       dto.NewQuestionResponses(p.Questions),
		TotalQuestions:  p.Total,
		CurrentCategory: category.Type,
	}, nil
}

// SearchQuestions implements QuestionService. No match is an empty success.
func (s *questionService) SearchQuestions(ctx context.Context, req *dto.SearchQuestionsRequest, page int) (*dto.SearchQuestionsResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	questions, err := s.questions.SearchQuestions(ctx, req.SearchTerm)
	if err != nil {
		return nil, domain.NewUnprocessableError("failed to search questions", err)
	}

	p := domain.NewPage(questions, page)
	return &dto.SearchQuestionsResponse{
		Success:        true,
		Questions:      dto.NewQuestionResponses(p.Questions),
		TotalQuestions: p.Total,
	}, nil
}

// CreateQuestion implements QuestionService. The insert and the refreshed
// listing share one transaction.
func (s *questionService) CreateQuestion(ctx context.Context, req *dto.CreateQuestionRequest, page int) (*dto.CreateQuestionResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	question := domain.NewQuestion(req.Question, req.Answer, req.Category, req.Difficulty)

	var remaining []*domain.Question
	err := s.tm.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.questions.SaveQuestion(txCtx, question); err != nil {
			return err
		}
		var err error
		remaining, err = s.questions.ListQuestions(txCtx)
		return err
	})
	if err != nil {
		logger.Get().Warn("Create question rolled back", zap.Error(err))
		return nil, domain.NewUnprocessableError("failed to create question", err)
	}

	logger.Get().Info("Question created",
		zap.Int64("question_id", question.ID),
		zap.Int64("category", question.Category),
	)

	p := domain.NewPage(remaining, page)
	return &dto.CreateQuestionResponse{
		Success:        true,
		Questions:      dto.NewQuestionResponses(p.Questions),
		TotalQuestions: p.Total,
		Created:        question.ID,
	}, nil
}

// DeleteQuestion implements QuestionService. A missing id or any store
// failure rolls back and is Unprocessable.
func (s *questionService) DeleteQuestion(ctx context.Context, id int64, page int) (*dto.DeleteQuestionResponse, error) {
	var remaining []*domain.Question
	err := s.tm.WithTransaction(ctx, func(txCtx context.Context) error {
		existing, err := s.questions.GetQuestionByID(txCtx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrQuestionNotFound
		}
		if err := s.questions.DeleteQuestion(txCtx, id); err != nil {
			return err
		}
		remaining, err = s.questions.ListQuestions(txCtx)
		return err
	})
	if err != nil {
		if !errors.Is(err, domain.ErrQuestionNotFound) {
			logger.Get().Warn("Delete question rolled back", zap.Int64("question_id", id), zap.Error(err))
		}
		return nil, domain.NewUnprocessableError("failed to delete question", err)
	}

	logger.Get().Info("Question deleted", zap.Int64("question_id", id))

	p := domain.NewPage(remaining, page)
	return &dto.DeleteQuestionResponse{
		Success:        true,
		Questions:      dto.NewQuestionResponses(p.Questions),
		Deleted:        id,
		TotalQuestions: p.Total,
	}, nil
}
