package middleware

import (
	"strconv"
	"time"

	"trivia-api/internal/metrics"

	"github.com/gofiber/fiber/v2"
)

// Metrics records request counts and latency labelled by the matched route
// pattern, so /questions/2 and /questions/3 share one series.
func Metrics(m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = StatusOf(err)
		}
		route := c.Route().Path
		method := c.Method()

		m.RequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
		m.RequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
		return err
	}
}
