package middleware

import (
	"errors"
	"net/http"

	"trivia-api/internal/domain"
	"trivia-api/internal/dto"
	"trivia-api/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var statusMessages = map[int]string{
	http.StatusBadRequest:          "Bad Request",
	http.StatusNotFound:            "Resource Not Found",
	http.StatusMethodNotAllowed:    "Method Not Allowed",
	http.StatusUnprocessableEntity: "Unprocessable",
	http.StatusInternalServerError: "Internal Server Error",
}

// ErrorHandler is the fiber.Config.ErrorHandler writing every failure as
// {success:false, error:<status>, message}. Causes are logged, never sent.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := StatusOf(err)
		fields := []zap.Field{
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Any("request_id", c.Locals(requestIDKey)),
			zap.Error(err),
		}

		var domainErr *domain.DomainError
		switch {
		case errors.As(err, &domainErr):
			fields = append(fields, zap.String("code", string(domainErr.Code)))
			if status >= http.StatusInternalServerError {
				logger.Get().Error("Domain error occurred", fields...)
			} else {
				logger.Get().Info("Domain error occurred", fields...)
			}
		case status >= http.StatusInternalServerError:
			logger.Get().Error("Unhandled error occurred", fields...)
		default:
			logger.Get().Debug("HTTP error occurred", fields...)
		}

		return c.Status(status).JSON(dto.ErrorResponse{
			Success: false,
			Error:   status,
			Message: StatusMessage(status),
		})
	}
}

// StatusOf maps an error returned by a handler to its HTTP status.
func StatusOf(err error) int {
	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		return mapDomainErrorToHTTPStatus(domainErr)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code
	}

	return http.StatusInternalServerError
}

// StatusMessage returns the fixed envelope message for status.
func StatusMessage(status int) string {
	if msg, ok := statusMessages[status]; ok {
		return msg
	}
	return http.StatusText(status)
}

// mapDomainErrorToHTTPStatus maps domain errors to HTTP status codes
func mapDomainErrorToHTTPStatus(err *domain.DomainError) int {
	switch err.Code {
	case domain.CodeBadRequest:
		return http.StatusBadRequest
	case domain.CodeNotFound:
		return http.StatusNotFound
	case domain.CodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case domain.CodeUnprocessable:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
