package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/agrochain-api/internal/application/dto"
	"github.com/jhoicas/agrochain-api/internal/application/inventory"
	"github.com/jhoicas/agrochain-api/pkg/logger"
)

// InventoryHandler artículos y pedidos de los mayoristas.
type InventoryHandler struct {
	uc  *inventory.InventoryUseCase
	log *logger.Logger
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.InventoryUseCase, log *logger.Logger) *InventoryHandler {
	return &InventoryHandler{uc: uc, log: log}
}

// AddItem godoc
// @Summary      Agregar artículo al inventario
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddItemRequest  true  "artículo"
// @Success      201   {object}  dto.ItemCreatedResponse
// @Failure      400   {object}  dto.InventoryErrorResponse
// @Router       /api/inventory/add [post]
func (h *InventoryHandler) AddItem(c *fiber.Ctx) error {
	var in dto.AddItemRequest
	if err := c.BodyParser(&in); err != nil || !validStruct(in) {
		return inventoryError(c, fiber.StatusBadRequest, codeValidation, "Missing required fields")
	}
	item, err := h.uc.AddItem(c.Context(), in)
	if err != nil {
		return inventoryFailure(c, h.log, err, "Item not found")
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ItemCreatedResponse{Message: "Item added successfully", Item: *item})
}

// ListItems godoc
// @Summary      Inventario de un mayorista
// @Tags         inventory
// @Produce      json
// @Param        wholesalerId  path  string  true  "RoleID del mayorista (ej. w1)"
// @Success      200  {array}  dto.InventoryItemResponse
// @Router       /api/inventory/{wholesalerId} [get]
func (h *InventoryHandler) ListItems(c *fiber.Ctx) error {
	items, err := h.uc.ListItems(c.Context(), c.Params("wholesalerId"))
	if err != nil {
		return inventoryFailure(c, h.log, err, "Item not found")
	}
	return c.JSON(items)
}

// ListLowStock godoc
// @Summary      Artículos en o por debajo del nivel de reorden
// @Tags         inventory
// @Produce      json
// @Param        wholesalerId  path  string  true  "RoleID del mayorista"
// @Success      200  {array}  dto.InventoryItemResponse
// @Router       /api/inventory/{wholesalerId}/low-stock [get]
func (h *InventoryHandler) ListLowStock(c *fiber.Ctx) error {
	items, err := h.uc.ListLowStock(c.Context(), c.Params("wholesalerId"))
	if err != nil {
		return inventoryFailure(c, h.log, err, "Item not found")
	}
	return c.JSON(items)
}

// CreateOrder godoc
// @Summary      Registrar pedido
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "pedido"
// @Success      201   {object}  dto.OrderCreatedResponse
// @Failure      400   {object}  dto.InventoryErrorResponse
// @Router       /api/inventory/orders [post]
func (h *InventoryHandler) CreateOrder(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil || !validStruct(in) {
		return inventoryError(c, fiber.StatusBadRequest, codeValidation, "Missing required fields")
	}
	order, err := h.uc.CreateOrder(c.Context(), in)
	if err != nil {
		return inventoryFailure(c, h.log, err, "Order not found")
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OrderCreatedResponse{Message: "Order created successfully", Order: *order})
}

// ListOrders godoc
// @Summary      Pedidos de un mayorista (fecha descendente)
// @Tags         inventory
// @Produce      json
// @Param        wholesalerId  path  string  true  "RoleID del mayorista"
// @Success      200  {array}  dto.OrderResponse
// @Router       /api/inventory/orders/{wholesalerId} [get]
func (h *InventoryHandler) ListOrders(c *fiber.Ctx) error {
	orders, err := h.uc.ListOrders(c.Context(), c.Params("wholesalerId"))
	if err != nil {
		return inventoryFailure(c, h.log, err, "Order not found")
	}
	return c.JSON(orders)
}
