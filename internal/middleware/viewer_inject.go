package middleware

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"reviewio/internal/accessctx"
	"reviewio/internal/repository"
	"reviewio/internal/services"
)

// InjectViewer loads the caller's ViewerAccess into Locals("viewer").
// Deleted or deactivated accounts get 401; banned accounts get 400.
func InjectViewer(users accessctx.UserFinder, rels accessctx.RelationshipReader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, err := UIDObjectID(c)
		if err != nil {
			return err
		}

		v, err := accessctx.BuildViewerAccess(c.UserContext(), users, rels, uid)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return services.ErrAccountGone
			}
			return err
		}
		if v.User.Banned(time.Now()) {
			return services.ErrBanned
		}
		if !v.User.Active {
			return services.ErrAccountGone
		}

		c.Locals("viewer", v)
		return c.Next()
	}
}
