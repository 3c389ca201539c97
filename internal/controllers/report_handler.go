package controllers

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"

	"reviewio/dto"
	"reviewio/internal/middleware"
	"reviewio/internal/models"
	"reviewio/internal/services"
)

type ReportHandler struct {
	Reports *services.ReportService
	Paging  Paging
}

// @Summary   Report a post, comment or user
// @Tags      reports
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     body  body      dto.CreateReportReq  true  "Report"
// @Success   201   {object}  dto.DocResponse[models.Report]
// @Failure   400   {object}  dto.ErrorResponse
// @Failure   404   {object}  dto.ErrorResponse
// @Router    /reports [post]
func (h *ReportHandler) Create(c *fiber.Ctx) error {
	v, err := middleware.Viewer(c)
	if err != nil {
		return err
	}
	var req dto.CreateReportReq
	if err := bind(c, &req); err != nil {
		return err
	}
	item, _ := bson.ObjectIDFromHex(req.ItemID)

	r, err := h.Reports.Create(c.UserContext(), v, services.ReportInput{
		ItemID:     item,
		ItemType:   models.ItemType(req.ItemType),
		ReportType: req.ReportType,
		Message:    req.Message,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(r))
}

// @Summary   List reports (admin)
// @Tags      admin
// @Produce   json
// @Security  BearerAuth
// @Param     status  query     string  false  "open, review or closed"
// @Param     page    query     int     false  "Page"
// @Success   200     {object}  dto.ListResponse[models.Report]
// @Router    /reports [get]
func (h *ReportHandler) List(c *fiber.Ctx) error {
	page, err := h.Reports.List(c.UserContext(), models.ReportStatus(c.Query("status")), h.Paging.params(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.List(page))
}

// @Summary      Resolve a report (admin)
// @Description  Action "delete" removes the reported post or comment. Action "ban" bans the owner.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Report ID"
// @Param        body  body      dto.ResolveReportReq  true  "Decision"
// @Success      200   {object}  dto.DocResponse[models.Report]
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /reports/{id} [patch]
func (h *ReportHandler) Resolve(c *fiber.Ctx) error {
	id, err := middleware.ParamID(c, "id")
	if err != nil {
		return err
	}
	var req dto.ResolveReportReq
	if err := bind(c, &req); err != nil {
		return err
	}
	r, err := h.Reports.Resolve(c.UserContext(), id, models.ReportStatus(req.Status), models.ReportAction(req.Action))
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(r))
}
