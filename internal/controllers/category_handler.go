package controllers

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"

	"reviewio/dto"
	"reviewio/internal/middleware"
	"reviewio/internal/services"
)

type CategoryHandler struct {
	Categories *services.CategoryService
}

// @Summary   List categories
// @Tags      categories
// @Produce   json
// @Security  BearerAuth
// @Success   200  {object}  dto.DocResponse[[]models.Category]
// @Router    /categories [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	cats, err := h.Categories.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(cats))
}

// @Summary   Get a category by slug
// @Tags      categories
// @Produce   json
// @Security  BearerAuth
// @Param     slug  path      string  true  "Slug"
// @Success   200   {object}  dto.DocResponse[models.Category]
// @Failure   404   {object}  dto.ErrorResponse
// @Router    /categories/slug/{slug} [get]
func (h *CategoryHandler) GetBySlug(c *fiber.Ctx) error {
	cat, err := h.Categories.BySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(cat))
}

// @Summary      Create a category (admin)
// @Description  Genre categories can be followed. The ancestor path is copied from the parent.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.CreateCategoryReq  true  "Category"
// @Success      201   {object}  dto.DocResponse[models.Category]
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /categories [post]
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateCategoryReq
	if err := bind(c, &req); err != nil {
		return err
	}
	in := services.CategoryInput{Name: req.Name, Genre: req.Genre}
	if req.Parent != "" {
		parent, _ := bson.ObjectIDFromHex(req.Parent)
		in.Parent = &parent
	}
	cat, err := h.Categories.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(cat))
}

// @Summary   Follow a category
// @Tags      categories
// @Security  BearerAuth
// @Param     id   path      string  true  "Category ID"
// @Success   200  {object}  dto.MessageResponse
// @Failure   400  {object}  dto.ErrorResponse
// @Router    /categories/{id}/follow [patch]
func (h *CategoryHandler) Follow(c *fiber.Ctx) error {
	v, err := middleware.Viewer(c)
	if err != nil {
		return err
	}
	id, err := middleware.ParamID(c, "id")
	if err != nil {
		return err
	}
	if err := h.Categories.Follow(c.UserContext(), v, id); err != nil {
		return err
	}
	return c.JSON(dto.Message("Category followed"))
}

// @Summary   Unfollow a category
// @Tags      categories
// @Security  BearerAuth
// @Param     id   path      string  true  "Category ID"
// @Success   200  {object}  dto.MessageResponse
// @Router    /categories/{id}/unfollow [patch]
func (h *CategoryHandler) Unfollow(c *fiber.Ctx) error {
	v, err := middleware.Viewer(c)
	if err != nil {
		return err
	}
	id, err := middleware.ParamID(c, "id")
	if err != nil {
		return err
	}
	if err := h.Categories.Unfollow(c.UserContext(), v, id); err != nil {
		return err
	}
	return c.JSON(dto.Message("Category unfollowed"))
}
