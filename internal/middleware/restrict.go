package middleware

import (
	"slices"

	"github.com/gofiber/fiber/v2"

	"reviewio/internal/models"
	"reviewio/internal/services"
)

// RestrictTo must run after InjectViewer.
func RestrictTo(roles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		v, err := Viewer(c)
		if err != nil {
			return err
		}
		if !slices.Contains(roles, v.User.Role) {
			return services.ErrNotOwner
		}
		return c.Next()
	}
}
