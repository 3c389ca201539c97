package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"reviewio/internal/metrics"
)

// Metrics records request counts and latency per matched route. Run it
// inside RequestID so errors already carry their final status.
func Metrics() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status, _ = Render(err, false)
		}
		route := c.Route().Path
		metrics.HTTPRequests.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		metrics.HTTPDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}
