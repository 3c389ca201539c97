package routes

import "github.com/gofiber/fiber/v2"

func SetupComments(r fiber.Router, h *Handlers) {
	comments := r.Group("/posts/:id/comments")

	comments.Get("/", h.Comments.List)
	comments.Post("/", h.Comments.Create)
	comments.Delete("/:commentId", h.Comments.Delete)
	comments.Patch("/:commentId/like", h.Comments.Like)
	comments.Patch("/:commentId/unlike", h.Comments.Unlike)
}
