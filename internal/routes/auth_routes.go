package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func SetupAuth(app *fiber.App, h *Handlers, perMinute int) {
	auth := app.Group("/auth", limiter.New(limiter.Config{
		Max:        perMinute,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			return fiber.NewError(fiber.StatusTooManyRequests, "Too many requests from this IP, please try again later")
		},
	}))

	// curl -X POST http://127.0.0.1:8000/auth/signup \
	// -H "Content-Type: application/json" \
	// -d '{"name":"Alice","username":"alice","email":"alice@example.com","password":"yourpassword"}'
	auth.Post("/signup", h.Auth.Signup)
	auth.Post("/login", h.Auth.Login)
}
