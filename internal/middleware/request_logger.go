package middleware

import (
	"time"

	"trivia-api/internal/logger"
	"trivia-api/internal/util"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"
)

// requestIDKey is the fiber Locals key holding the request id.
const requestIDKey = "requestid"

// RequestID tags every request and response with a ULID in X-Request-ID.
// An incoming X-Request-ID is kept.
func RequestID() fiber.Handler {
	return requestid.New(requestid.Config{
		Header:     fiber.HeaderXRequestID,
		Generator:  util.NewULID,
		ContextKey: requestIDKey,
	})
}

// RequestLogger logs every HTTP request once it completes
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = StatusOf(err)
		}

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", time.Since(start)),
			zap.String("ip", c.IP()),
			zap.Any("request_id", c.Locals(requestIDKey)),
		)

		return err
	}
}
