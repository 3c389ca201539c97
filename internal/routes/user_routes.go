package routes

import (
	"github.com/gofiber/fiber/v2"

	"reviewio/internal/middleware"
	"reviewio/internal/models"
)

func SetupUsers(r fiber.Router, h *Handlers) {
	users := r.Group("/users")

	users.Get("/me", h.Users.Me)
	users.Patch("/me", h.Users.UpdateMe)
	users.Delete("/me", h.Users.DeleteMe)

	users.Get("/:id", h.Users.Get)
	users.Get("/:id/followers", h.Users.Followers)
	users.Get("/:id/following", h.Users.Following)
	users.Patch("/:id/follow", h.Users.Follow())
	users.Patch("/:id/unfollow", h.Users.Unfollow())
	users.Patch("/:id/block", h.Users.Block())
	users.Patch("/:id/unblock", h.Users.Unblock())

	users.Patch("/:id/ban", middleware.RestrictTo(models.RoleAdmin), h.Users.Ban)
}
