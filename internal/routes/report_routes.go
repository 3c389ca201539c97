package routes

import (
	"github.com/gofiber/fiber/v2"

	"reviewio/internal/middleware"
	"reviewio/internal/models"
)

func SetupReports(r fiber.Router, h *Handlers) {
	reports := r.Group("/reports")

	reports.Post("/", h.Reports.Create)

	reports.Get("/", middleware.RestrictTo(models.RoleAdmin), h.Reports.List)
	reports.Patch("/:id", middleware.RestrictTo(models.RoleAdmin), h.Reports.Resolve)
}
