package handlers

import (
	"strings"

	"github.com/Rustaman1280/tefacontoh/internal/services"
	"github.com/Rustaman1280/tefacontoh/internal/utils"
	"github.com/gofiber/fiber/v2"
)

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email,max=100"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthHandler serves /api/auth.
type AuthHandler struct {
	Users *services.UserService
}

// Register handles POST /api/auth/register
// @Summary Register
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "Account"
// @Success 201 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	res, err := h.Users.Register(c.UserContext(), services.RegisterInput{
		Name:     strings.TrimSpace(req.Name),
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, res)
}

// Login handles POST /api/auth/login
// @Summary Log in
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Credentials"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	res, err := h.Users.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, res)
}

// Me handles GET /api/auth/me
// @Summary Current user
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	user, err := h.Users.Get(c.UserContext(), a.UserID)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, user)
}
