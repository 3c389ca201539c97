package controllers

import (
	"github.com/gofiber/fiber/v2"

	"reviewio/dto"
	"reviewio/internal/middleware"
	"reviewio/internal/services"
)

type NotificationHandler struct {
	Inbox  *services.InboxService
	Paging Paging
}

// @Summary   My notifications
// @Tags      notifications
// @Produce   json
// @Security  BearerAuth
// @Param     page   query     int  false  "Page"
// @Param     limit  query     int  false  "Page size"
// @Success   200    {object}  dto.InboxResponse
// @Router    /notifications [get]
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	uid, err := middleware.UIDObjectID(c)
	if err != nil {
		return err
	}
	in, err := h.Inbox.List(c.UserContext(), uid, h.Paging.params(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.Inbox(in))
}

// @Summary   Mark a notification read
// @Tags      notifications
// @Produce   json
// @Security  BearerAuth
// @Param     id   path      string  true  "Notification ID"
// @Success   200  {object}  dto.DocResponse[models.Notification]
// @Failure   404  {object}  dto.ErrorResponse
// @Router    /notifications/{id}/read [patch]
func (h *NotificationHandler) Read(c *fiber.Ctx) error {
	uid, err := middleware.UIDObjectID(c)
	if err != nil {
		return err
	}
	id, err := middleware.ParamID(c, "id")
	if err != nil {
		return err
	}
	n, err := h.Inbox.Read(c.UserContext(), uid, id)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(n))
}

// @Summary   Mark all notifications opened
// @Tags      notifications
// @Produce   json
// @Security  BearerAuth
// @Success   200  {object}  dto.OpenedResponse
// @Router    /notifications/open [patch]
func (h *NotificationHandler) OpenAll(c *fiber.Ctx) error {
	uid, err := middleware.UIDObjectID(c)
	if err != nil {
		return err
	}
	n, err := h.Inbox.OpenAll(c.UserContext(), uid)
	if err != nil {
		return err
	}
	return c.JSON(dto.OpenedResponse{Status: dto.StatusSuccess, Modified: n})
}

// @Summary   Delete a notification
// @Tags      notifications
// @Security  BearerAuth
// @Param     id  path  string  true  "Notification ID"
// @Success   204
// @Failure   404  {object}  dto.ErrorResponse
// @Router    /notifications/{id} [delete]
func (h *NotificationHandler) Delete(c *fiber.Ctx) error {
	uid, err := middleware.UIDObjectID(c)
	if err != nil {
		return err
	}
	id, err := middleware.ParamID(c, "id")
	if err != nil {
		return err
	}
	if err := h.Inbox.Delete(c.UserContext(), uid, id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
