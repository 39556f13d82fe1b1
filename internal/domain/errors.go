package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	CodeBadRequest       ErrorCode = "BAD_REQUEST"
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeMethodNotAllowed ErrorCode = "METHOD_NOT_ALLOWED"
	CodeUnprocessable    ErrorCode = "UNPROCESSABLE"
	CodeInternal         ErrorCode = "INTERNAL_ERROR"
)

// Sentinel causes carried inside DomainError values.
var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrQuestionNotFound = errors.New("question not found")
	ErrQuizExhausted    = errors.New("no unseen question left in the candidate pool")
	ErrPageOutOfRange   = errors.New("requested page is past the end of the result set")
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Cause   error     `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func NewBadRequestError(message string, cause error) *DomainError {
	return NewError(CodeBadRequest, message, cause)
}

func NewNotFoundError(message string, cause error) *DomainError {
	return NewError(CodeNotFound, message, cause)
}

func NewUnprocessableError(message string, cause error) *DomainError {
	return NewError(CodeUnprocessable, message, cause)
}

func NewInternalError(message string, cause error) *DomainError {
	return NewError(CodeInternal, message, cause)
}

// CodeOf returns the code of the first DomainError in err's chain, or
// CodeInternal when there is none.
func CodeOf(err error) ErrorCode {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return CodeInternal
}
