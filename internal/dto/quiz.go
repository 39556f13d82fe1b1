package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FlexibleInt is an integer that also accepts a JSON string holding a
// decimal number, e.g. 2 or "2". The web frontend posts category keys as
// strings.
type FlexibleInt int64

// UnmarshalJSON implements json.Unmarshaler
func (f *FlexibleInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid integer string %q", s)
		}
		*f = FlexibleInt(n)
		return nil
	}

	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexibleInt(n)
	return nil
}

// QuizCategory selects the pool a quiz draws from. ID 0 means every category.
type QuizCategory struct {
	ID   FlexibleInt `json:"id"`
	Type string      `json:"type"`
}

// QuizRequest is the body of POST /quizzes
// @Description Request body for the next quiz question
type QuizRequest struct {
	QuizCategory      *QuizCategory `json:"quiz_category"`
	PreviousQuestions []int64       `json:"previous_questions"`
}

// CategoryID returns the requested category, or 0 for all categories.
func (r *QuizRequest) CategoryID() int64 {
	if r.QuizCategory == nil {
		return 0
	}
	return int64(r.QuizCategory.ID)
}

// QuizResponse is the next quiz question with the previous ids echoed back
// @Description Next quiz question
type QuizResponse struct {
	Success           bool             `json:"success"`
	Question          QuestionResponse `json:"question"`
	PreviousQuestions []int64          `json:"previous_questions"`
}

// ErrorResponse represents an error in the API response
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   int    `json:"error"`
	Message string `json:"message"`
}
