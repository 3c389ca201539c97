package controllers

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"

	"reviewio/dto"
	"reviewio/internal/middleware"
	"reviewio/internal/services"
)

type CommentHandler struct {
	Comments *services.CommentService
}

// @Summary      Comments on a post
// @Description  Oldest first. Comments by users the caller blocks, or who block the caller, are left out.
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Post ID"
// @Success      200  {object}  dto.CommentsResponse[models.FeedComment]
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /posts/{id}/comments [get]
func (h *CommentHandler) List(c *fiber.Ctx) error {
	v, err := middleware.Viewer(c)
	if err != nil {
		return err
	}
	postID, err := middleware.ParamID(c, "id")
	if err != nil {
		return err
	}
	items, err := h.Comments.List(c.UserContext(), v, postID)
	if err != nil {
		return err
	}
	return c.JSON(dto.Comments(items))
}

// @Summary      Comment on a post
// @Description  Returns every comment on the post after the insert
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Post ID"
// @Param        body  body      dto.CreateCommentReq  true  "Comment"
// @Success      201   {object}  dto.CommentsResponse[models.Comment]
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /posts/{id}/comments [post]
func (h *CommentHandler) Create(c *fiber.Ctx) error {
	v, err := middleware.Viewer(c)
	if err != nil {
		return err
	}
	postID, err := middleware.ParamID(c, "id")
	if err != nil {
		return err
	}
	var req dto.CreateCommentReq
	if err := bind(c, &req); err != nil {
		return err
	}
	items, err := h.Comments.Create(c.UserContext(), v, postID, req.Text)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.Comments(items))
}

func commentIDs(c *fiber.Ctx) (postID, commentID bson.ObjectID, err error) {
	if postID, err = middleware.ParamID(c, "id"); err != nil {
		return
	}
	commentID, err = middleware.ParamID(c, "commentId")
	return
}

// @Summary   Delete a comment
// @Tags      comments
// @Security  BearerAuth
// @Param     id         path  string  true  "Post ID"
// @Param     commentId  path  string  true  "Comment ID"
// @Success   204
// @Failure   403  {object}  dto.ErrorResponse
// @Router    /posts/{id}/comments/{commentId} [delete]
func (h *CommentHandler) Delete(c *fiber.Ctx) error {
	v, err := middleware.Viewer(c)
	if err != nil {
		return err
	}
	postID, commentID, err := commentIDs(c)
	if err != nil {
		return err
	}
	if err := h.Comments.Delete(c.UserContext(), v, postID, commentID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// @Summary   Like a comment
// @Tags      comments
// @Produce   json
// @Security  BearerAuth
// @Param     id         path      string  true  "Post ID"
// @Param     commentId  path      string  true  "Comment ID"
// @Success   200        {object}  dto.DocResponse[[]string]
// @Failure   400        {object}  dto.ErrorResponse
// @Router    /posts/{id}/comments/{commentId}/like [patch]
func (h *CommentHandler) Like(c *fiber.Ctx) error {
	v, err := middleware.Viewer(c)
	if err != nil {
		return err
	}
	postID, commentID, err := commentIDs(c)
	if err != nil {
		return err
	}
	likes, err := h.Comments.Like(c.UserContext(), v, postID, commentID)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(likes))
}

// @Summary   Unlike a comment
// @Tags      comments
// @Produce   json
// @Security  BearerAuth
// @Param     id         path      string  true  "Post ID"
// @Param     commentId  path      string  true  "Comment ID"
// @Success   200        {object}  dto.DocResponse[[]string]
// @Failure   400        {object}  dto.ErrorResponse
// @Router    /posts/{id}/comments/{commentId}/unlike [patch]
func (h *CommentHandler) Unlike(c *fiber.Ctx) error {
	v, err := middleware.Viewer(c)
	if err != nil {
		return err
	}
	postID, commentID, err := commentIDs(c)
	if err != nil {
		return err
	}
	likes, err := h.Comments.Unlike(c.UserContext(), v, postID, commentID)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(likes))
}
