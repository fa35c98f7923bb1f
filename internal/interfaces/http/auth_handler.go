package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/agrochain-api/internal/application/auth"
	"github.com/jhoicas/agrochain-api/internal/application/dto"
	"github.com/jhoicas/agrochain-api/internal/domain"
	"github.com/jhoicas/agrochain-api/pkg/logger"
)

// AuthHandler maneja registro y login.
type AuthHandler struct {
	uc  *auth.AuthUseCase
	log *logger.Logger
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, log *logger.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, log: log}
}

// Signup godoc
// @Summary      Registrar usuario
// @Description  Crea el usuario y le asigna su RoleID secuencial (ej. "w3").
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SignupRequest  true  "email, password, role"
// @Success      201   {object}  dto.SignupResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/signup [post]
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var in dto.SignupRequest
	if err := c.BodyParser(&in); err != nil {
		return apiError(c, fiber.StatusBadRequest, codeInvalidBody, "All fields are required")
	}
	if !validStruct(in) {
		return apiError(c, fiber.StatusBadRequest, codeValidation, "All fields are required")
	}
	out, err := h.uc.Signup(c.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return apiError(c, fiber.StatusBadRequest, codeValidation, "All fields are required")
		case errors.Is(err, domain.ErrEmailAlreadyExists):
			return apiError(c, fiber.StatusConflict, codeEmailExists, "Email already in use")
		}
		h.log.Error().Err(err).Msg("signup")
		return apiError(c, fiber.StatusInternalServerError, codeInternal, "Internal server error")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return apiError(c, fiber.StatusBadRequest, codeInvalidBody, "Invalid email or password")
	}
	out, err := h.uc.Login(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return apiError(c, fiber.StatusBadRequest, codeInvalidCredentials, "Invalid email or password")
		}
		h.log.Error().Err(err).Msg("login")
		return apiError(c, fiber.StatusInternalServerError, codeInternal, "Internal server error")
	}
	return c.JSON(out)
}
