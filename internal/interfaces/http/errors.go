package http

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/agrochain-api/internal/application/dto"
	"github.com/jhoicas/agrochain-api/internal/domain"
	"github.com/jhoicas/agrochain-api/pkg/logger"
)

// Códigos de error de las respuestas.
const (
	codeInvalidBody        = "INVALID_BODY"
	codeValidation         = "VALIDATION"
	codeNotFound           = "NOT_FOUND"
	codeEmailExists        = "EMAIL_EXISTS"
	codeInvalidCredentials = "INVALID_CREDENTIALS"
	codeInvalidStatus      = "INVALID_STATUS"
	codeInternal           = "INTERNAL"
)

// validate instancia compartida; cachea la información de los structs.
var validate = validator.New()

// validStruct valida las etiquetas `validate` del DTO.
func validStruct(v any) bool {
	return validate.Struct(v) == nil
}

// apiError responde {code, message} (rutas /api/auth y /api/admin).
func apiError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: message})
}

// inventoryError responde {code, error} (rutas /api/inventory).
func inventoryError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(dto.InventoryErrorResponse{Code: code, Error: message})
}

// internalAPIError registra el error y responde 500 sin detalle.
func internalAPIError(c *fiber.Ctx, log *logger.Logger, err error) error {
	log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error interno")
	return apiError(c, fiber.StatusInternalServerError, codeInternal, "Server error")
}

// inventoryFailure traduce errores de dominio de /api/inventory; notFound es el mensaje del 404.
func inventoryFailure(c *fiber.Ctx, log *logger.Logger, err error, notFound string) error {
	switch {
	case errors.Is(err, domain.ErrInvalidStatus):
		return inventoryError(c, fiber.StatusBadRequest, codeInvalidStatus, "Invalid status")
	case errors.Is(err, domain.ErrInvalidInput):
		return inventoryError(c, fiber.StatusBadRequest, codeValidation, "Missing required fields")
	case errors.Is(err, domain.ErrNotFound):
		return inventoryError(c, fiber.StatusNotFound, codeNotFound, notFound)
	case errors.Is(err, domain.ErrDuplicate):
		return inventoryError(c, fiber.StatusConflict, "DUPLICATE", "Resource already exists")
	}
	log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error interno")
	return inventoryError(c, fiber.StatusInternalServerError, codeInternal, "Internal server error")
}
