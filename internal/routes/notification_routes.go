package routes

import "github.com/gofiber/fiber/v2"

func SetupNotifications(r fiber.Router, h *Handlers) {
	notis := r.Group("/notifications")

	notis.Get("/", h.Notifications.List)
	notis.Patch("/open", h.Notifications.OpenAll)
	notis.Patch("/:id/read", h.Notifications.Read)
	notis.Delete("/:id", h.Notifications.Delete)
}
