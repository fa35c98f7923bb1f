package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/agrochain-api/internal/application/admin"
	"github.com/jhoicas/agrochain-api/internal/application/dto"
	"github.com/jhoicas/agrochain-api/internal/domain"
	"github.com/jhoicas/agrochain-api/pkg/logger"
)

// AdminHandler panel de administración: usuarios, logs, reportes, configuración y mensajes.
type AdminHandler struct {
	uc  *admin.AdminUseCase
	log *logger.Logger
}

// NewAdminHandler construye el handler.
func NewAdminHandler(uc *admin.AdminUseCase, log *logger.Logger) *AdminHandler {
	return &AdminHandler{uc: uc, log: log}
}

// ListUsers godoc
// @Summary      Listado paginado de usuarios
// @Tags         admin
// @Produce      json
// @Param        page       query  int     false  "página (1)"
// @Param        limit      query  int     false  "tamaño de página (10)"
// @Param        role       query  string  false  "rol o all"
// @Param        search     query  string  false  "subcadena de email o roleId"
// @Param        sortBy     query  string  false  "createdAt | email | role | roleId"
// @Param        sortOrder  query  string  false  "asc | desc"
// @Success      200  {object}  dto.UserListResponse
// @Router       /api/admin/users [get]
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	var q dto.UserListQuery
	if err := c.QueryParser(&q); err != nil {
		return apiError(c, fiber.StatusBadRequest, codeValidation, "Invalid query parameters")
	}
	out, err := h.uc.ListUsers(c.Context(), q)
	if err != nil {
		return internalAPIError(c, h.log, err)
	}
	return c.JSON(out)
}

// UserStats godoc
// @Summary      Estadísticas de usuarios
// @Tags         admin
// @Produce      json
// @Success      200  {object}  dto.UserStatsResponse
// @Router       /api/admin/users/stats [get]
func (h *AdminHandler) UserStats(c *fiber.Ctx) error {
	out, err := h.uc.UserStats(c.Context())
	if err != nil {
		return internalAPIError(c, h.log, err)
	}
	return c.JSON(out)
}

// UpdateUser godoc
// @Summary      Actualizar email y rol de un usuario
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        userId  path  string                 true  "ID del usuario"
// @Param        body    body  dto.UpdateUserRequest  true  "email, role"
// @Success      200  {object}  dto.UpdateUserResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/users/{userId} [put]
func (h *AdminHandler) UpdateUser(c *fiber.Ctx) error {
	var in dto.UpdateUserRequest
	if err := c.BodyParser(&in); err != nil || !validStruct(in) {
		return apiError(c, fiber.StatusBadRequest, codeValidation, "Email and role are required")
	}
	user, err := h.uc.UpdateUser(c.Context(), c.Params("userId"), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return apiError(c, fiber.StatusBadRequest, codeValidation, "Email and role are required")
		case errors.Is(err, domain.ErrEmailAlreadyExists):
			return apiError(c, fiber.StatusBadRequest, codeEmailExists, "Email already exists")
		case errors.Is(err, domain.ErrUserNotFound):
			return apiError(c, fiber.StatusNotFound, codeNotFound, "User not found")
		}
		return internalAPIError(c, h.log, err)
	}
	return c.JSON(dto.UpdateUserResponse{Message: "User updated successfully", User: *user})
}

// DeleteUser godoc
// @Summary      Eliminar usuario
// @Tags         admin
// @Produce      json
// @Param        userId  path  string  true  "ID del usuario"
// @Success      200  {object}  dto.DeleteUserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/users/{userId} [delete]
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	userID := c.Params("userId")
	if err := h.uc.DeleteUser(c.Context(), userID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return apiError(c, fiber.StatusNotFound, codeNotFound, "User not found")
		}
		return internalAPIError(c, h.log, err)
	}
	return c.JSON(dto.DeleteUserResponse{Message: "User deleted successfully", UserID: userID})
}

// UsersByRole godoc
// @Summary      Usuarios de un rol
// @Tags         admin
// @Produce      json
// @Param        role  query  string  true  "rol"
// @Success      200  {object}  dto.UsersByRoleResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/admin/users-by-role [get]
func (h *AdminHandler) UsersByRole(c *fiber.Ctx) error {
	out, err := h.uc.UsersByRole(c.Context(), c.Query("role"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return apiError(c, fiber.StatusBadRequest, codeValidation, "Role parameter is required")
		}
		return internalAPIError(c, h.log, err)
	}
	return c.JSON(out)
}

// ListLogs godoc
// @Summary      Logs de peticiones
// @Tags         admin
// @Produce      json
// @Param        page       query  int     false  "página (1)"
// @Param        limit      query  int     false  "tamaño de página (50)"
// @Param        level      query  string  false  "info | warning | error"
// @Param        search     query  string  false  "subcadena de message o source"
// @Param        startDate  query  string  false  "RFC 3339 o YYYY-MM-DD"
// @Param        endDate    query  string  false  "RFC 3339 o YYYY-MM-DD"
// @Success      200  {object}  dto.LogListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/admin/logs [get]
func (h *AdminHandler) ListLogs(c *fiber.Ctx) error {
	var q dto.LogQuery
	if err := c.QueryParser(&q); err != nil {
		return apiError(c, fiber.StatusBadRequest, codeValidation, "Invalid query parameters")
	}
	out, err := h.uc.ListLogs(c.Context(), q)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return apiError(c, fiber.StatusBadRequest, codeValidation, "Invalid date format")
		}
		return internalAPIError(c, h.log, err)
	}
	return c.JSON(out)
}

// LogStats godoc
// @Summary      Estadísticas de logs y salud del sistema
// @Tags         admin
// @Produce      json
// @Success      200  {object}  dto.LogStatsResponse
// @Router       /api/admin/logs/stats [get]
func (h *AdminHandler) LogStats(c *fiber.Ctx) error {
	out, err := h.uc.LogStats(c.Context())
	if err != nil {
		return internalAPIError(c, h.log, err)
	}
	return c.JSON(out)
}

// Reports godoc
// @Summary      Reporte de usuarios, mensajes y proceso
// @Tags         admin
// @Produce      json
// @Param        period  query  string  false  "ventana de usuarios recientes (7d)"
// @Success      200  {object}  dto.ReportResponse
// @Router       /api/admin/reports [get]
func (h *AdminHandler) Reports(c *fiber.Ctx) error {
	out, err := h.uc.Report(c.Context(), c.Query("period", "7d"))
	if err != nil {
		return internalAPIError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetSettings godoc
// @Summary      Configuración del sistema
// @Tags         admin
// @Produce      json
// @Success      200  {object}  dto.Settings
// @Router       /api/admin/settings [get]
func (h *AdminHandler) GetSettings(c *fiber.Ctx) error {
	return c.JSON(h.uc.Settings())
}

// UpdateSettings godoc
// @Summary      Actualizar configuración (eco, sin persistencia)
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateSettingsRequest  true  "settings"
// @Success      200  {object}  dto.UpdateSettingsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/admin/settings [put]
func (h *AdminHandler) UpdateSettings(c *fiber.Ctx) error {
	var in dto.UpdateSettingsRequest
	if err := c.BodyParser(&in); err != nil {
		return apiError(c, fiber.StatusBadRequest, codeValidation, "Invalid settings format")
	}
	out, err := h.uc.UpdateSettings(in)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, codeValidation, "Invalid settings format")
	}
	return c.JSON(out)
}

// SendMessage godoc
// @Summary      Enviar mensaje a roles o usuarios
// @Description  Con Authorization: Bearer <token> el mensaje registra al remitente.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SendMessageRequest  true  "subject, message, roles, targetUsers"
// @Success      201  {object}  dto.SendMessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/admin/send-message [post]
func (h *AdminHandler) SendMessage(c *fiber.Ctx) error {
	var in dto.SendMessageRequest
	if err := c.BodyParser(&in); err != nil || !validStruct(in) {
		return apiError(c, fiber.StatusBadRequest, codeValidation, "All fields are required")
	}
	var sentBy *string
	if id := GetUserID(c); id != "" {
		sentBy = &id
	}
	msg, err := h.uc.SendMessage(c.Context(), in, sentBy)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return apiError(c, fiber.StatusBadRequest, codeValidation, "All fields are required")
		}
		return internalAPIError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SendMessageResponse{Message: "Message sent & stored successfully", Data: *msg})
}

// GetMessages godoc
// @Summary      Bandeja de mensajes por rol y usuario
// @Tags         admin
// @Produce      json
// @Param        role    query  string  false  "rol destinatario"
// @Param        userId  query  string  false  "usuario destinatario"
// @Success      200  {object}  dto.MessagesResponse
// @Router       /api/admin/getMessages [get]
func (h *AdminHandler) GetMessages(c *fiber.Ctx) error {
	out, err := h.uc.Messages(c.Context(), c.Query("role"), c.Query("userId"))
	if err != nil {
		h.log.Error().Err(err).Msg("bandeja de mensajes")
		return apiError(c, fiber.StatusInternalServerError, codeInternal, "Server error while fetching messages")
	}
	return c.JSON(out)
}
