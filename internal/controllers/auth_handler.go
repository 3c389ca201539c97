package controllers

import (
	"github.com/gofiber/fiber/v2"

	"reviewio/dto"
	"reviewio/internal/services"
)

type AuthHandler struct {
	Auth *services.AuthService
}

// @Summary      Sign up
// @Description  Create an account and return a bearer token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.SignupReq  true  "Account details"
// @Success      201   {object}  dto.AuthResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /auth/signup [post]
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupReq
	if err := bind(c, &req); err != nil {
		return err
	}
	u, token, err := h.Auth.Signup(c.UserContext(), services.SignupInput{
		Name:     req.Name,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.Auth(token, u))
}

// @Summary      Log in
// @Description  Exchange email and password for a bearer token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.LoginReq  true  "Credentials"
// @Success      200   {object}  dto.AuthResponse
// @Failure      400   {object}  dto.ErrorResponse  "banned"
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginReq
	if err := bind(c, &req); err != nil {
		return err
	}
	u, token, err := h.Auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(dto.Auth(token, u))
}
