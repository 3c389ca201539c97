package controllers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"

	"reviewio/dto"
	"reviewio/internal/accessctx"
	"reviewio/internal/middleware"
	"reviewio/internal/services"
)

type UserHandler struct {
	Users  *services.UserService
	Paging Paging
}

// @Summary   Current user
// @Tags      users
// @Produce   json
// @Security  BearerAuth
// @Success   200  {object}  dto.DocResponse[models.User]
// @Router    /users/me [get]
func (h *UserHandler) Me(c *fiber.Ctx) error {
	v, err := middleware.Viewer(c)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(v.User))
}

// @Summary   Get a user
// @Tags      users
// @Produce   json
// @Security  BearerAuth
// @Param     id   path      string  true  "User ID"
// @Success   200  {object}  dto.DocResponse[models.User]
// @Failure   404  {object}  dto.ErrorResponse
// @Router    /users/{id} [get]
func (h *UserHandler) Get(c *fiber.Ctx) error {
	v, err := middleware.Viewer(c)
	if err != nil {
		return err
	}
	id, err := middleware.ParamID(c, "id")
	if err != nil {
		return err
	}
	u, err := h.Users.Get(c.UserContext(), v, id)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(u))
}

// @Summary   Update profile
// @Tags      users
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     body  body      dto.UpdateMeReq  true  "Fields to change"
// @Success   200   {object}  dto.DocResponse[models.User]
// @Router    /users/me [patch]
func (h *UserHandler) UpdateMe(c *fiber.Ctx) error {
	uid, err := middleware.UIDObjectID(c)
	if err != nil {
		return err
	}
	var req dto.UpdateMeReq
	if err := bind(c, &req); err != nil {
		return err
	}
	u, err := h.Users.UpdateMe(c.UserContext(), uid, services.ProfileUpdate{Name: req.Name, Bio: req.Bio})
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(u))
}

// @Summary   Deactivate own account
// @Tags      users
// @Security  BearerAuth
// @Success   204
// @Router    /users/me [delete]
func (h *UserHandler) DeleteMe(c *fiber.Ctx) error {
	uid, err := middleware.UIDObjectID(c)
	if err != nil {
		return err
	}
	if err := h.Users.DeleteMe(c.UserContext(), uid); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// relation wraps the follow/block endpoints, which share their shape.
type relationOp func(ctx context.Context, v *accessctx.ViewerAccess, id bson.ObjectID) error

func (h *UserHandler) relation(op relationOp, msg string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		v, err := middleware.Viewer(c)
		if err != nil {
			return err
		}
		id, err := middleware.ParamID(c, "id")
		if err != nil {
			return err
		}
		if err := op(c.UserContext(), v, id); err != nil {
			return err
		}
		return c.JSON(dto.Message(msg))
	}
}

// @Summary   Follow a user
// @Tags      users
// @Security  BearerAuth
// @Param     id   path      string  true  "User ID"
// @Success   200  {object}  dto.MessageResponse
// @Failure   400  {object}  dto.ErrorResponse
// @Failure   404  {object}  dto.ErrorResponse
// @Router    /users/{id}/follow [patch]
func (h *UserHandler) Follow() fiber.Handler {
	return h.relation(h.Users.Follow, "User followed")
}

// @Summary   Unfollow a user
// @Tags      users
// @Security  BearerAuth
// @Param     id   path      string  true  "User ID"
// @Success   200  {object}  dto.MessageResponse
// @Router    /users/{id}/unfollow [patch]
func (h *UserHandler) Unfollow() fiber.Handler {
	return h.relation(h.Users.Unfollow, "User unfollowed")
}

// @Summary   Block a user
// @Tags      users
// @Security  BearerAuth
// @Param     id   path      string  true  "User ID"
// @Success   200  {object}  dto.MessageResponse
// @Router    /users/{id}/block [patch]
func (h *UserHandler) Block() fiber.Handler {
	return h.relation(h.Users.Block, "User blocked")
}

// @Summary   Unblock a user
// @Tags      users
// @Security  BearerAuth
// @Param     id   path      string  true  "User ID"
// @Success   200  {object}  dto.MessageResponse
// @Router    /users/{id}/unblock [patch]
func (h *UserHandler) Unblock() fiber.Handler {
	return h.relation(h.Users.Unblock, "User unblocked")
}

// @Summary   Followers of a user
// @Tags      users
// @Produce   json
// @Security  BearerAuth
// @Param     id     path   string  true   "User ID"
// @Param     page   query  int     false  "Page"
// @Param     limit  query  int     false  "Page size"
// @Success   200    {object}  dto.ListResponse[models.UserSummary]
// @Router    /users/{id}/followers [get]
func (h *UserHandler) Followers(c *fiber.Ctx) error {
	v, err := middleware.Viewer(c)
	if err != nil {
		return err
	}
	id, err := middleware.ParamID(c, "id")
	if err != nil {
		return err
	}
	page, err := h.Users.Followers(c.UserContext(), v, id, h.Paging.params(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.List(page))
}

// @Summary   Users a user follows
// @Tags      users
// @Produce   json
// @Security  BearerAuth
// @Param     id     path   string  true   "User ID"
// @Param     page   query  int     false  "Page"
// @Success   200    {object}  dto.ListResponse[models.UserSummary]
// @Router    /users/{id}/following [get]
func (h *UserHandler) Following(c *fiber.Ctx) error {
	v, err := middleware.Viewer(c)
	if err != nil {
		return err
	}
	id, err := middleware.ParamID(c, "id")
	if err != nil {
		return err
	}
	page, err := h.Users.Following(c.UserContext(), v, id, h.Paging.params(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.List(page))
}

// @Summary   Ban a user (admin)
// @Tags      admin
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     id    path      string      true  "User ID"
// @Param     body  body      dto.BanReq  true  "Ban length"
// @Success   200   {object}  dto.DocResponse[models.User]
// @Failure   403   {object}  dto.ErrorResponse
// @Router    /users/{id}/ban [patch]
func (h *UserHandler) Ban(c *fiber.Ctx) error {
	id, err := middleware.ParamID(c, "id")
	if err != nil {
		return err
	}
	var req dto.BanReq
	if err := bind(c, &req); err != nil {
		return err
	}
	u, err := h.Users.Ban(c.UserContext(), id, time.Duration(req.Days)*24*time.Hour)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(u))
}
