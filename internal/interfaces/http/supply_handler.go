package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/agrochain-api/internal/application/dto"
	"github.com/jhoicas/agrochain-api/internal/application/supply"
	"github.com/jhoicas/agrochain-api/pkg/logger"
)

// SupplyHandler solicitudes de distribuidores y minoristas, stock de distribuidores y transacciones.
type SupplyHandler struct {
	uc  *supply.SupplyUseCase
	log *logger.Logger
}

// NewSupplyHandler construye el handler.
func NewSupplyHandler(uc *supply.SupplyUseCase, log *logger.Logger) *SupplyHandler {
	return &SupplyHandler{uc: uc, log: log}
}

// CreateDealerRequest godoc
// @Summary      Solicitud de distribuidor a mayorista
// @Tags         dealer-requests
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDealerRequestRequest  true  "solicitud"
// @Success      201   {object}  dto.DealerRequestCreatedResponse
// @Failure      400   {object}  dto.InventoryErrorResponse
// @Router       /api/inventory/dealer-requests [post]
func (h *SupplyHandler) CreateDealerRequest(c *fiber.Ctx) error {
	var in dto.CreateDealerRequestRequest
	if err := c.BodyParser(&in); err != nil || !validStruct(in) {
		return inventoryError(c, fiber.StatusBadRequest, codeValidation, "Missing required fields")
	}
	req, err := h.uc.CreateDealerRequest(c.Context(), in)
	if err != nil {
		return inventoryFailure(c, h.log, err, "Request not found")
	}
	return c.Status(fiber.StatusCreated).JSON(dto.DealerRequestCreatedResponse{Message: "Request submitted", Request: *req})
}

// ListDealerRequestsForWholesaler godoc
// @Summary      Solicitudes recibidas por un mayorista
// @Tags         dealer-requests
// @Produce      json
// @Param        roleId  path  string  true  "RoleID del mayorista"
// @Success      200  {array}  dto.DealerRequestResponse
// @Router       /api/inventory/dealer-requests/wholesaler/{roleId} [get]
func (h *SupplyHandler) ListDealerRequestsForWholesaler(c *fiber.Ctx) error {
	reqs, err := h.uc.ListDealerRequestsForWholesaler(c.Context(), c.Params("roleId"))
	if err != nil {
		return inventoryFailure(c, h.log, err, "Request not found")
	}
	return c.JSON(reqs)
}

// ListDealerRequestsForDealer godoc
// @Summary      Solicitudes enviadas por un distribuidor
// @Tags         dealer-requests
// @Produce      json
// @Param        dealerId  path  string  true  "RoleID del distribuidor"
// @Success      200  {array}  dto.DealerRequestResponse
// @Router       /api/inventory/dealer-requests/dealer/{dealerId} [get]
func (h *SupplyHandler) ListDealerRequestsForDealer(c *fiber.Ctx) error {
	reqs, err := h.uc.ListDealerRequestsForDealer(c.Context(), c.Params("dealerId"))
	if err != nil {
		return inventoryFailure(c, h.log, err, "Request not found")
	}
	return c.JSON(reqs)
}

// UpdateDealerRequest godoc
// @Summary      Cambiar estado de una solicitud de distribuidor
// @Description  Al aceptar se crea la transacción financiera (total = precio × cantidad).
// @Tags         dealer-requests
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID de la solicitud"
// @Param        body  body  dto.UpdateStatusRequest  true  "requested | accepted | rejected"
// @Success      200   {object}  dto.DealerRequestResponse
// @Failure      400   {object}  dto.InventoryErrorResponse
// @Failure      404   {object}  dto.InventoryErrorResponse
// @Router       /api/inventory/dealer-requests/{id} [patch]
func (h *SupplyHandler) UpdateDealerRequest(c *fiber.Ctx) error {
	var in dto.UpdateStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return inventoryError(c, fiber.StatusBadRequest, codeInvalidStatus, "Invalid status")
	}
	req, err := h.uc.SetDealerRequestStatus(c.Context(), c.Params("id"), in.Status)
	if err != nil {
		return inventoryFailure(c, h.log, err, "Request not found")
	}
	return c.JSON(req)
}

// UpsertDealerStock godoc
// @Summary      Crear o reemplazar stock de distribuidor
// @Description  Clave (dealerId, itemName, category, unit); la última escritura gana.
// @Tags         dealer-stock
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpsertDealerStockRequest  true  "stock"
// @Success      200   {object}  dto.DealerStockUpdatedResponse
// @Failure      400   {object}  dto.InventoryErrorResponse
// @Router       /api/inventory/dealer-stock [post]
func (h *SupplyHandler) UpsertDealerStock(c *fiber.Ctx) error {
	var in dto.UpsertDealerStockRequest
	if err := c.BodyParser(&in); err != nil || !validStruct(in) {
		return inventoryError(c, fiber.StatusBadRequest, codeValidation, "Missing required fields")
	}
	stock, err := h.uc.UpsertDealerStock(c.Context(), in)
	if err != nil {
		return inventoryFailure(c, h.log, err, "Dealer stock not found")
	}
	return c.JSON(dto.DealerStockUpdatedResponse{Message: "Dealer stock updated", Stock: *stock})
}

// ListAvailableStock godoc
// @Summary      Stock disponible agrupado por distribuidor
// @Tags         dealer-stock
// @Produce      json
// @Success      200  {array}  dto.AvailableDealer
// @Router       /api/inventory/dealer-stock/available [get]
func (h *SupplyHandler) ListAvailableStock(c *fiber.Ctx) error {
	dealers, err := h.uc.ListAvailableStock(c.Context())
	if err != nil {
		return inventoryFailure(c, h.log, err, "Dealer stock not found")
	}
	return c.JSON(dealers)
}

// ListTransactions godoc
// @Summary      Transacciones de un mayorista
// @Tags         transactions
// @Produce      json
// @Param        wholesalerRoleId  path  string  true  "RoleID del mayorista"
// @Success      200  {array}  dto.TransactionResponse
// @Router       /api/inventory/transactions/{wholesalerRoleId} [get]
func (h *SupplyHandler) ListTransactions(c *fiber.Ctx) error {
	txns, err := h.uc.ListTransactions(c.Context(), c.Params("wholesalerRoleId"))
	if err != nil {
		return inventoryFailure(c, h.log, err, "Transaction not found")
	}
	return c.JSON(txns)
}

// Statement godoc
// @Summary      Estado de cuenta en PDF
// @Tags         transactions
// @Produce      application/pdf
// @Param        wholesalerRoleId  path  string  true  "RoleID del mayorista"
// @Success      200  {file}  binary
// @Failure      500  {object}  dto.InventoryErrorResponse
// @Router       /api/inventory/transactions/{wholesalerRoleId}/statement [get]
func (h *SupplyHandler) Statement(c *fiber.Ctx) error {
	wholesalerID := c.Params("wholesalerRoleId")
	pdf, err := h.uc.Statement(c.Context(), wholesalerID)
	if err != nil {
		return inventoryFailure(c, h.log, err, "Transaction not found")
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="statement-%s.pdf"`, wholesalerID))
	return c.Send(pdf)
}

// UpdatePayment godoc
// @Summary      Actualizar estado de pago
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID de la transacción"
// @Param        body  body  dto.UpdatePaymentRequest  true  "paymentStatus (due | done), paymentMethod"
// @Success      200   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.InventoryErrorResponse
// @Failure      404   {object}  dto.InventoryErrorResponse
// @Router       /api/inventory/transactions/{id} [patch]
func (h *SupplyHandler) UpdatePayment(c *fiber.Ctx) error {
	var in dto.UpdatePaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return inventoryError(c, fiber.StatusBadRequest, codeInvalidStatus, "Invalid status")
	}
	txn, err := h.uc.SetPaymentStatus(c.Context(), c.Params("id"), in)
	if err != nil {
		return inventoryFailure(c, h.log, err, "Transaction not found")
	}
	return c.JSON(txn)
}

// CreateRetailerRequest godoc
// @Summary      Solicitud de minorista sobre stock de distribuidor
// @Tags         retailer-requests
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRetailerRequestRequest  true  "solicitud"
// @Success      201   {object}  dto.RetailerRequestCreatedResponse
// @Failure      400   {object}  dto.InventoryErrorResponse
// @Failure      404   {object}  dto.InventoryErrorResponse
// @Router       /api/inventory/retailer-requests [post]
func (h *SupplyHandler) CreateRetailerRequest(c *fiber.Ctx) error {
	var in dto.CreateRetailerRequestRequest
	if err := c.BodyParser(&in); err != nil || !validStruct(in) {
		return inventoryError(c, fiber.StatusBadRequest, codeValidation, "Missing required fields")
	}
	req, err := h.uc.CreateRetailerRequest(c.Context(), in)
	if err != nil {
		return inventoryFailure(c, h.log, err, "Dealer stock not found")
	}
	return c.Status(fiber.StatusCreated).JSON(dto.RetailerRequestCreatedResponse{Message: "Retailer request submitted", Request: *req})
}

// ListRetailerRequestsForRetailer godoc
// @Summary      Solicitudes de un minorista
// @Tags         retailer-requests
// @Produce      json
// @Param        retailerId  path  string  true  "RoleID del minorista"
// @Success      200  {array}  dto.RetailerRequestResponse
// @Router       /api/inventory/retailer-requests/retailer/{retailerId} [get]
func (h *SupplyHandler) ListRetailerRequestsForRetailer(c *fiber.Ctx) error {
	reqs, err := h.uc.ListRetailerRequestsForRetailer(c.Context(), c.Params("retailerId"))
	if err != nil {
		return inventoryFailure(c, h.log, err, "Request not found")
	}
	return c.JSON(reqs)
}

// ListRetailerRequestsForDealer godoc
// @Summary      Solicitudes recibidas por un distribuidor
// @Tags         retailer-requests
// @Produce      json
// @Param        dealerId  path  string  true  "RoleID del distribuidor"
// @Success      200  {array}  dto.RetailerRequestResponse
// @Router       /api/inventory/retailer-requests/dealer/{dealerId} [get]
func (h *SupplyHandler) ListRetailerRequestsForDealer(c *fiber.Ctx) error {
	reqs, err := h.uc.ListRetailerRequestsForDealer(c.Context(), c.Params("dealerId"))
	if err != nil {
		return inventoryFailure(c, h.log, err, "Request not found")
	}
	return c.JSON(reqs)
}

// UpdateRetailerRequest godoc
// @Summary      Cambiar estado de una solicitud de minorista
// @Tags         retailer-requests
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID de la solicitud"
// @Param        body  body  dto.UpdateStatusRequest  true  "accepted | rejected | cancelled"
// @Success      200   {object}  dto.RetailerRequestResponse
// @Failure      400   {object}  dto.InventoryErrorResponse
// @Failure      404   {object}  dto.InventoryErrorResponse
// @Router       /api/inventory/retailer-requests/{id} [patch]
func (h *SupplyHandler) UpdateRetailerRequest(c *fiber.Ctx) error {
	var in dto.UpdateStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return inventoryError(c, fiber.StatusBadRequest, codeInvalidStatus, "Invalid status")
	}
	req, err := h.uc.SetRetailerRequestStatus(c.Context(), c.Params("id"), in.Status)
	if err != nil {
		return inventoryFailure(c, h.log, err, "Request not found")
	}
	return c.JSON(req)
}
