package dto

import "trivia-api/internal/domain"

// QuestionResponse is the wire form of a question
// @Description Question information
type QuestionResponse struct {
	ID         int64  `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   int64  `json:"category"`
	Difficulty int    `json:"difficulty"`
}

// NewQuestionResponse converts a domain question
func NewQuestionResponse(q *domain.Question) QuestionResponse {
	return QuestionResponse{
		ID:         q.ID,
		Question:   q.Question,
		Answer:     q.Answer,
		Category:   q.Category,
		Difficulty: q.Difficulty,
	}
}

// NewQuestionResponses converts a slice, never returning nil so the JSON
// field is always an array.
func NewQuestionResponses(questions []*domain.Question) []QuestionResponse {
	out := make([]QuestionResponse, len(questions))
	for i, q := range questions {
		out[i] = NewQuestionResponse(q)
	}
	return out
}

// CategoriesResponse is the body of GET /categories
type CategoriesResponse struct {
	Success         bool             `json:"success"`
	Categories      map[int64]string `json:"categories"`
	TotalCategories int              `json:"total_categories"`
}

// QuestionsResponse is the body of GET /questions
type QuestionsResponse struct {
	Success         bool               `json:"success"`
	Questions       []QuestionResponse `json:"questions"`
	TotalQuestions  int                `json:"total_questions"`
	CurrentCategory *string            `json:"current_category"`
	Categories      map[int64]string   `json:"categories"`
}

// CategoryQuestionsResponse is the body of GET /categories/{id}/questions
type CategoryQuestionsResponse struct {
	Success         bool               `json:"success"`
	Questions       []QuestionResponse `json:"questions"`
	TotalQuestions  int                `json:"total_questions"`
	CurrentCategory string             `json:"current_category"`
}

// SearchQuestionsResponse is the body of a search POST /questions
type SearchQuestionsResponse struct {
	Success        bool               `json:"success"`
	Questions      []QuestionResponse `json:"questions"`
	TotalQuestions int                `json:"total_questions"`
}

// CreateQuestionResponse is the body of a create POST /questions
type CreateQuestionResponse struct {
	Success        bool               `json:"success"`
	Questions      []QuestionResponse `json:"questions"`
	TotalQuestions int                `json:"total_questions"`
	Created        int64              `json:"created"`
}

// DeleteQuestionResponse is the body of DELETE /questions/{id}.
// TotalQuestions counts the questions remaining after the delete.
type DeleteQuestionResponse struct {
	Success        bool               `json:"success"`
	Questions      []QuestionResponse `json:"questions"`
	Deleted        int64              `json:"deleted"`
	TotalQuestions int                `json:"total_questions"`
}

// QuestionsPostRequest is the raw body of POST /questions. The presence of
// searchTerm selects a search, otherwise the body creates a question.
// @Description Create a question, or search when searchTerm is present
type QuestionsPostRequest struct {
	Question   string       `json:"question"`
	Answer     string       `json:"answer"`
	Category   *FlexibleInt `json:"category"`
	Difficulty *FlexibleInt `json:"difficulty"`
	SearchTerm *string      `json:"searchTerm"`
}

// QuestionsCommand is either *CreateQuestionRequest or *SearchQuestionsRequest.
type QuestionsCommand interface {
	isQuestionsCommand()
}

// CreateQuestionRequest holds the fields of a new question. Nil category or
// difficulty take the domain defaults.
type CreateQuestionRequest struct {
	Question   string `validate:"required"`
	Answer     string `validate:"required"`
	Category   *int64
	Difficulty *int
}

// SearchQuestionsRequest holds a search term.
type SearchQuestionsRequest struct {
	SearchTerm string `validate:"required"`
}

func (*CreateQuestionRequest) isQuestionsCommand()  {}
func (*SearchQuestionsRequest) isQuestionsCommand() {}

// Command resolves the body into a create or a search command.
func (r *QuestionsPostRequest) Command() QuestionsCommand {
	if r.SearchTerm != nil {
		return &SearchQuestionsRequest{SearchTerm: *r.SearchTerm}
	}

	create := &CreateQuestionRequest{
		Question: r.Question,
		Answer:   r.Answer,
	}
	if r.Category != nil {
		category := int64(*r.Category)
		create.Category = &category
	}
	if r.Difficulty != nil {
		difficulty := int(*r.Difficulty)
		create.Difficulty = &difficulty
	}
	return create
}
