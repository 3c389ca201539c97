package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/timeout"

	"reviewio/internal/logging"
)

const HeaderRequestID = "X-Request-ID"

// RequestID tags the request context with an ID (the caller's, if sent),
// echoes it in the response and writes one access log line per request.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(HeaderRequestID)
		if id == "" || len(id) > 128 {
			id = logging.NewRequestID()
		}
		ctx := logging.ContextWithRequestID(c.UserContext(), id)
		c.SetUserContext(ctx)
		c.Set(HeaderRequestID, id)

		start := time.Now()
		err := c.Next()
		if err != nil {
			// let the error handler write the status before logging it
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		ev := logging.Ctx(ctx).Info()
		if status >= fiber.StatusInternalServerError {
			ev = logging.Ctx(ctx).Error()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("ip", c.IP()).
			Msg("request")
		return nil
	}
}

// Timeout bounds every store call made under the request context. A handler
// that fails with the deadline exceeded answers 408.
func Timeout(d time.Duration) fiber.Handler {
	return timeout.NewWithContext(func(c *fiber.Ctx) error { return c.Next() }, d)
}
