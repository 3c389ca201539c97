package controllers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"

	"reviewio/dto"
	"reviewio/internal/accessctx"
	"reviewio/internal/middleware"
	"reviewio/internal/services"
)

type PostHandler struct {
	Posts  *services.PostService
	Feeds  *services.FeedService
	Paging Paging
}

// @Summary      Home feed
// @Description  Posts by followed users, in subscribed categories, or by the caller, minus anything from blocked users. Community-category posts appear only through a subscription.
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page, default 1"
// @Param        limit  query     int  false  "Page size, default 5"
// @Success      200    {object}  dto.ListResponse[models.FeedPost]
// @Failure      401    {object}  dto.ErrorResponse
// @Router       /posts/feed [get]
func (h *PostHandler) Feed(c *fiber.Ctx) error {
	v, err := middleware.Viewer(c)
	if err != nil {
		return err
	}
	page, err := h.Feeds.Home(c.UserContext(), v, h.Paging.params(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.List(page))
}

// @Summary   Posts in a category
// @Tags      posts
// @Produce   json
// @Security  BearerAuth
// @Param     slug   path      string  true   "Category slug"
// @Param     page   query     int     false  "Page"
// @Success   200    {object}  dto.ListResponse[models.FeedPost]
// @Failure   404    {object}  dto.ErrorResponse
// @Router    /posts/category/slug/{slug} [get]
func (h *PostHandler) ByCategory(c *fiber.Ctx) error {
	v, err := middleware.Viewer(c)
	if err != nil {
		return err
	}
	page, err := h.Feeds.Category(c.UserContext(), v, c.Params("slug"), h.Paging.params(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.List(page))
}

// @Summary   Posts by a user
// @Tags      posts
// @Produce   json
// @Security  BearerAuth
// @Param     userId  path      string  true   "User ID"
// @Param     page    query     int     false  "Page"
// @Success   200     {object}  dto.ListResponse[models.FeedPost]
// @Router    /posts/user/{userId} [get]
func (h *PostHandler) ByUser(c *fiber.Ctx) error {
	v, err := middleware.Viewer(c)
	if err != nil {
		return err
	}
	id, err := middleware.ParamID(c, "userId")
	if err != nil {
		return err
	}
	page, err := h.Feeds.ByUser(c.UserContext(), v, id, h.Paging.params(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.List(page))
}

// @Summary   Saved posts
// @Tags      posts
// @Produce   json
// @Security  BearerAuth
// @Param     page  query     int  false  "Page"
// @Success   200   {object}  dto.ListResponse[models.FeedPost]
// @Router    /posts/saved [get]
func (h *PostHandler) Saved(c *fiber.Ctx) error {
	v, err := middleware.Viewer(c)
	if err != nil {
		return err
	}
	page, err := h.Feeds.Saved(c.UserContext(), v, h.Paging.params(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.List(page))
}

// @Summary   Get a post
// @Tags      posts
// @Produce   json
// @Security  BearerAuth
// @Param     id   path      string  true  "Post ID"
// @Success   200  {object}  dto.DocResponse[models.FeedPost]
// @Failure   404  {object}  dto.ErrorResponse
// @Router    /posts/{id} [get]
func (h *PostHandler) Get(c *fiber.Ctx) error {
	v, err := middleware.Viewer(c)
	if err != nil {
		return err
	}
	id, err := middleware.ParamID(c, "id")
	if err != nil {
		return err
	}
	p, err := h.Posts.Get(c.UserContext(), v, id)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(p))
}

// @Summary      Create a post
// @Description  Creates the post and notifies the author's followers
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.CreatePostReq  true  "Post"
// @Success      201   {object}  dto.DocResponse[models.Post]
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /posts [post]
func (h *PostHandler) Create(c *fiber.Ctx) error {
	v, err := middleware.Viewer(c)
	if err != nil {
		return err
	}
	var req dto.CreatePostReq
	if err := bind(c, &req); err != nil {
		return err
	}
	cat, _ := bson.ObjectIDFromHex(req.Category)

	p, _, err := h.Posts.Create(c.UserContext(), v, services.PostInput{
		Title:    req.Title,
		Text:     req.Text,
		Link:     req.Link,
		Category: cat,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(p))
}

// @Summary   Edit a post
// @Tags      posts
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     id    path      string             true  "Post ID"
// @Param     body  body      dto.UpdatePostReq  true  "Fields to change"
// @Success   200   {object}  dto.DocResponse[models.Post]
// @Failure   403   {object}  dto.ErrorResponse
// @Router    /posts/{id} [patch]
func (h *PostHandler) Update(c *fiber.Ctx) error {
	v, err := middleware.Viewer(c)
	if err != nil {
		return err
	}
	id, err := middleware.ParamID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdatePostReq
	if err := bind(c, &req); err != nil {
		return err
	}
	p, err := h.Posts.Update(c.UserContext(), v, id, services.PostUpdate{Title: req.Title, Text: req.Text, Link: req.Link})
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(p))
}

// @Summary   Delete a post
// @Tags      posts
// @Security  BearerAuth
// @Param     id  path  string  true  "Post ID"
// @Success   204
// @Failure   403  {object}  dto.ErrorResponse
// @Router    /posts/{id} [delete]
func (h *PostHandler) Delete(c *fiber.Ctx) error {
	v, err := middleware.Viewer(c)
	if err != nil {
		return err
	}
	id, err := middleware.ParamID(c, "id")
	if err != nil {
		return err
	}
	if err := h.Posts.Delete(c.UserContext(), v, id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// memberOp is the shape shared by like/unlike and save/unsave.
type memberOp func(ctx context.Context, v *accessctx.ViewerAccess, id bson.ObjectID) ([]bson.ObjectID, error)

func (h *PostHandler) members(op memberOp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		v, err := middleware.Viewer(c)
		if err != nil {
			return err
		}
		id, err := middleware.ParamID(c, "id")
		if err != nil {
			return err
		}
		ids, err := op(c.UserContext(), v, id)
		if err != nil {
			return err
		}
		return c.JSON(dto.OK(ids))
	}
}

// @Summary      Like a post
// @Description  Returns the updated list of user IDs that like the post
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Post ID"
// @Success      200  {object}  dto.DocResponse[[]string]
// @Failure      400  {object}  dto.ErrorResponse  "already liked"
// @Router       /posts/{id}/like [patch]
func (h *PostHandler) Like() fiber.Handler { return h.members(h.Posts.Like) }

// @Summary   Unlike a post
// @Tags      posts
// @Produce   json
// @Security  BearerAuth
// @Param     id   path      string  true  "Post ID"
// @Success   200  {object}  dto.DocResponse[[]string]
// @Failure   400  {object}  dto.ErrorResponse  "not liked"
// @Router    /posts/{id}/unlike [patch]
func (h *PostHandler) Unlike() fiber.Handler { return h.members(h.Posts.Unlike) }

// @Summary   Save a post
// @Tags      posts
// @Produce   json
// @Security  BearerAuth
// @Param     id   path      string  true  "Post ID"
// @Success   200  {object}  dto.DocResponse[[]string]
// @Router    /posts/{id}/save [patch]
func (h *PostHandler) Save() fiber.Handler { return h.members(h.Posts.Save) }

// @Summary   Remove a post from saved
// @Tags      posts
// @Produce   json
// @Security  BearerAuth
// @Param     id   path      string  true  "Post ID"
// @Success   200  {object}  dto.DocResponse[[]string]
// @Router    /posts/{id}/unsave [patch]
func (h *PostHandler) Unsave() fiber.Handler { return h.members(h.Posts.Unsave) }
