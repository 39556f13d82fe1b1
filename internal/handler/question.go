package handler

import (
	"trivia-api/internal/domain"
	"trivia-api/internal/dto"
	"trivia-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

// QuestionHandler handles category and question HTTP requests
type QuestionHandler struct {
	service service.QuestionService
}

// NewQuestionHandler creates a new QuestionHandler instance
func NewQuestionHandler(service service.QuestionService) *QuestionHandler {
	return &QuestionHandler{
		service: service,
	}
}

// pageParam reads ?page=, defaulting to 1 when absent or not a number.
func pageParam(c *fiber.Ctx) int {
	return c.QueryInt("page", 1)
}

// GetCategories godoc
// @Summary List categories
// @Description Returns every category keyed by id
// @Tags categories
// @Produce json
// @Success 200 {object} dto.CategoriesResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /categories [get]
func (h *QuestionHandler) GetCategories(c *fiber.Ctx) error {
	resp, err := h.service.GetCategories(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetQuestions godoc
// @Summary List questions
// @Description Returns one page of questions ordered by id, with all categories
// @Tags questions
// @Produce json
// @Param page query int false "Page number" default(1)
// @Success 200 {object} dto.QuestionsResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /questions [get]
func (h *QuestionHandler) GetQuestions(c *fiber.Ctx) error {
	resp, err := h.service.GetQuestions(c.UserContext(), pageParam(c))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetQuestionsByCategory godoc
// @Summary List questions of a category
// @Tags categories
// @Produce json
// @Param id path int true "Category ID"
// @Param page query int false "Page number" default(1)
// @Success 200 {object} dto.CategoryQuestionsResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /categories/{id}/questions [get]
func (h *QuestionHandler) GetQuestionsByCategory(c *fiber.Ctx) error {
	// :id<int> only routes integer ids here; anything else is a 404.
	categoryID, _ := c.ParamsInt("id")

	resp, err := h.service.GetQuestionsByCategory(c.UserContext(), int64(categoryID), pageParam(c))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// PostQuestions godoc
// @Summary Create or search questions
// @Description A body carrying searchTerm searches question text (case-insensitive); any other body creates a question. Category defaults to 1 and difficulty to 4.
// @Tags questions
// @Accept json
// @Produce json
// @Param request body dto.QuestionsPostRequest true "Question or search term"
// @Param page query int false "Page number" default(1)
// @Success 200 {object} dto.CreateQuestionResponse
// @Success 200 {object} dto.SearchQuestionsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /questions [post]
func (h *QuestionHandler) PostQuestions(c *fiber.Ctx) error {
	var req dto.QuestionsPostRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewBadRequestError("invalid request body", err)
	}

	ctx := c.UserContext()
	page := pageParam(c)

	switch cmd := req.Command().(type) {
	case *dto.SearchQuestionsRequest:
		resp, err := h.service.SearchQuestions(ctx, cmd, page)
		if err != nil {
			return err
		}
		return c.JSON(resp)
	case *dto.CreateQuestionRequest:
		resp, err := h.service.CreateQuestion(ctx, cmd, page)
		if err != nil {
			return err
		}
		return c.JSON(resp)
	default:
		return domain.NewBadRequestError("unsupported request", nil)
	}
}

// DeleteQuestion godoc
// @Summary Delete a question
// @Tags questions
// @Produce json
// @Param id path int true "Question ID"
// @Param page query int false "Page number" default(1)
// @Success 200 {object} dto.DeleteQuestionResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /questions/{id} [delete]
func (h *QuestionHandler) DeleteQuestion(c *fiber.Ctx) error {
	id, _ := c.ParamsInt("id")

	resp, err := h.service.DeleteQuestion(c.UserContext(), int64(id), pageParam(c))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
