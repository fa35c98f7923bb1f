package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Los recursos de /api/inventory exponen su identificador como "_id".

// AddItemRequest entrada de POST /api/inventory/add.
type AddItemRequest struct {
	Name         string           `json:"name" validate:"required"`
	Category     string           `json:"category" validate:"required"`
	Quantity     *decimal.Decimal `json:"quantity" validate:"required"`
	Unit         string           `json:"unit" validate:"required"`
	Price        string           `json:"price" validate:"required"`
	ReorderLevel *decimal.Decimal `json:"reorderLevel" validate:"required"`
	WholesalerID string           `json:"wholesalerId" validate:"required"`
}

// InventoryItemResponse artículo de inventario.
type InventoryItemResponse struct {
	ID           string          `json:"_id"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit"`
	Price        string          `json:"price"`
	ReorderLevel decimal.Decimal `json:"reorderLevel"`
	WholesalerID string          `json:"wholesalerId"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// ItemCreatedResponse salida del alta de artículo.
type ItemCreatedResponse struct {
	Message string                `json:"message"`
	Item    InventoryItemResponse `json:"item"`
}

// OrderItemInput línea de pedido de entrada.
type OrderItemInput struct {
	Name     string           `json:"name" validate:"required"`
	Quantity *decimal.Decimal `json:"quantity" validate:"required"`
	Unit     string           `json:"unit" validate:"required"`
}

// CreateOrderRequest entrada de POST /api/inventory/orders. Date opcional (ahora).
type CreateOrderRequest struct {
	OrderID      string           `json:"orderId" validate:"required"`
	Customer     string           `json:"customer" validate:"required"`
	Items        []OrderItemInput `json:"items" validate:"required,min=1,dive"`
	Amount       *decimal.Decimal `json:"amount" validate:"required"`
	Status       string           `json:"status" validate:"required"`
	Date         *time.Time       `json:"date"`
	Priority     string           `json:"priority" validate:"required"`
	WholesalerID string           `json:"wholesalerId" validate:"required"`
}

// OrderItemResponse línea de pedido.
type OrderItemResponse struct {
	Name     string          `json:"name"`
	Quantity decimal.Decimal `json:"quantity"`
	Unit     string          `json:"unit"`
}

// OrderResponse pedido.
type OrderResponse struct {
	ID           string              `json:"_id"`
	OrderID      string              `json:"orderId"`
	Customer     string              `json:"customer"`
	Items        []OrderItemResponse `json:"items"`
	Amount       decimal.Decimal     `json:"amount"`
	Status       string              `json:"status"`
	Date         time.Time           `json:"date"`
	Priority     string              `json:"priority"`
	WholesalerID string              `json:"wholesalerId"`
	CreatedAt    time.Time           `json:"createdAt"`
}

// OrderCreatedResponse salida del alta de pedido.
type OrderCreatedResponse struct {
	Message string        `json:"message"`
	Order   OrderResponse `json:"order"`
}

// CreateDealerRequestRequest entrada de POST /api/inventory/dealer-requests. El estado inicial siempre es "requested".
type CreateDealerRequestRequest struct {
	DealerID         string           `json:"dealerId" validate:"required"`
	DealerEmail      string           `json:"dealerEmail" validate:"required"`
	WholesalerRoleID string           `json:"wholesalerRoleId" validate:"required"`
	WholesalerEmail  string           `json:"wholesalerEmail" validate:"required"`
	ItemID           string           `json:"itemId" validate:"required"`
	ItemName         string           `json:"itemName" validate:"required"`
	Category         string           `json:"category" validate:"required"`
	RequestedQty     *decimal.Decimal `json:"requestedQty" validate:"required"`
	Unit             string           `json:"unit" validate:"required"`
	Price            string           `json:"price" validate:"required"`
}

// DealerRequestResponse solicitud distribuidor → mayorista.
type DealerRequestResponse struct {
	ID               string          `json:"_id"`
	DealerID         string          `json:"dealerId"`
	DealerEmail      string          `json:"dealerEmail"`
	WholesalerRoleID string          `json:"wholesalerRoleId"`
	WholesalerEmail  string          `json:"wholesalerEmail"`
	ItemID           string          `json:"itemId"`
	ItemName         string          `json:"itemName"`
	Category         string          `json:"category"`
	RequestedQty     decimal.Decimal `json:"requestedQty"`
	Unit             string          `json:"unit"`
	Price            string          `json:"price"`
	Status           string          `json:"status"`
	CreatedAt        time.Time       `json:"createdAt"`
}

// DealerRequestCreatedResponse salida del alta de solicitud.
type DealerRequestCreatedResponse struct {
	Message string                `json:"message"`
	Request DealerRequestResponse `json:"request"`
}

// UpdateStatusRequest entrada de PATCH de solicitudes.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// UpsertDealerStockRequest entrada de POST /api/inventory/dealer-stock.
type UpsertDealerStockRequest struct {
	DealerID        string           `json:"dealerId" validate:"required"`
	DealerEmail     string           `json:"dealerEmail"`
	ItemName        string           `json:"itemName" validate:"required"`
	Category        string           `json:"category" validate:"required"`
	Quantity        *decimal.Decimal `json:"quantity"`
	Unit            string           `json:"unit" validate:"required"`
	Price           string           `json:"price" validate:"required"`
	DealerRequestID *string          `json:"dealerRequestId"`
}

// DealerStockResponse registro de stock de distribuidor.
type DealerStockResponse struct {
	ID              string          `json:"_id"`
	DealerID        string          `json:"dealerId"`
	DealerEmail     string          `json:"dealerEmail"`
	ItemName        string          `json:"itemName"`
	Category        string          `json:"category"`
	Quantity        decimal.Decimal `json:"quantity"`
	Unit            string          `json:"unit"`
	Price           string          `json:"price"`
	DealerRequestID *string         `json:"dealerRequestId,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// DealerStockUpdatedResponse salida del upsert.
type DealerStockUpdatedResponse struct {
	Message string              `json:"message"`
	Stock   DealerStockResponse `json:"stock"`
}

// AvailableStockItem artículo disponible de un distribuidor.
type AvailableStockItem struct {
	DealerStockID string          `json:"dealerStockId"`
	ItemName      string          `json:"itemName"`
	Category      string          `json:"category"`
	Quantity      decimal.Decimal `json:"quantity"`
	Unit          string          `json:"unit"`
	Price         string          `json:"price"`
}

// AvailableDealer distribuidor con su stock disponible.
type AvailableDealer struct {
	DealerID    string               `json:"dealerId"`
	DealerEmail string               `json:"dealerEmail"`
	Items       []AvailableStockItem `json:"items"`
}

// TransactionResponse transacción financiera.
type TransactionResponse struct {
	ID               string          `json:"_id"`
	WholesalerRoleID string          `json:"wholesalerRoleId"`
	DealerID         string          `json:"dealerId"`
	DealerEmail      string          `json:"dealerEmail"`
	ItemName         string          `json:"itemName"`
	Category         string          `json:"category"`
	Quantity         decimal.Decimal `json:"quantity"`
	Unit             string          `json:"unit"`
	Price            string          `json:"price"`
	Total            decimal.Decimal `json:"total"`
	PaymentStatus    string          `json:"paymentStatus"`
	PaymentMethod    string          `json:"paymentMethod,omitempty"`
	Date             time.Time       `json:"date"`
}

// UpdatePaymentRequest entrada de PATCH /api/inventory/transactions/:id.
type UpdatePaymentRequest struct {
	PaymentStatus string  `json:"paymentStatus"`
	PaymentMethod *string `json:"paymentMethod"`
}

// CreateRetailerRequestRequest entrada de POST /api/inventory/retailer-requests.
type CreateRetailerRequestRequest struct {
	RetailerID    string           `json:"retailerId" validate:"required"`
	RetailerEmail string           `json:"retailerEmail"`
	DealerID      string           `json:"dealerId" validate:"required"`
	DealerEmail   string           `json:"dealerEmail"`
	DealerStockID string           `json:"dealerStockId" validate:"required"`
	ItemName      string           `json:"itemName" validate:"required"`
	Category      string           `json:"category" validate:"required"`
	RequestedQty  *decimal.Decimal `json:"requestedQty" validate:"required"`
	Unit          string           `json:"unit" validate:"required"`
	Price         string           `json:"price" validate:"required"`
}

// RetailerRequestResponse solicitud minorista → distribuidor.
type RetailerRequestResponse struct {
	ID            string          `json:"_id"`
	RetailerID    string          `json:"retailerId"`
	RetailerEmail string          `json:"retailerEmail"`
	DealerID      string          `json:"dealerId"`
	DealerEmail   string          `json:"dealerEmail"`
	DealerStockID string          `json:"dealerStockId"`
	ItemName      string          `json:"itemName"`
	Category      string          `json:"category"`
	RequestedQty  decimal.Decimal `json:"requestedQty"`
	Unit          string          `json:"unit"`
	Price         string          `json:"price"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// RetailerRequestCreatedResponse salida del alta de solicitud de minorista.
type RetailerRequestCreatedResponse struct {
	Message string                  `json:"message"`
	Request RetailerRequestResponse `json:"request"`
}
