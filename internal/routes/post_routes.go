package routes

import "github.com/gofiber/fiber/v2"

func SetupPosts(r fiber.Router, h *Handlers) {
	posts := r.Group("/posts")

	// static paths first so they are not taken for :id
	posts.Get("/feed", h.Posts.Feed)
	posts.Get("/saved", h.Posts.Saved)
	posts.Get("/category/slug/:slug", h.Posts.ByCategory)
	posts.Get("/user/:userId", h.Posts.ByUser)

	posts.Post("/", h.Posts.Create)
	posts.Get("/:id", h.Posts.Get)
	posts.Patch("/:id", h.Posts.Update)
	posts.Delete("/:id", h.Posts.Delete)

	posts.Patch("/:id/like", h.Posts.Like())
	posts.Patch("/:id/unlike", h.Posts.Unlike())
	posts.Patch("/:id/save", h.Posts.Save())
	posts.Patch("/:id/unsave", h.Posts.Unsave())
}
