package routes

import (
	"github.com/gofiber/fiber/v2"

	"reviewio/internal/middleware"
	"reviewio/internal/models"
)

func SetupCategories(r fiber.Router, h *Handlers) {
	cats := r.Group("/categories")

	cats.Get("/", h.Categories.List)
	cats.Get("/slug/:slug", h.Categories.GetBySlug)
	cats.Post("/", middleware.RestrictTo(models.RoleAdmin), h.Categories.Create)
	cats.Patch("/:id/follow", h.Categories.Follow)
	cats.Patch("/:id/unfollow", h.Categories.Unfollow)
}
