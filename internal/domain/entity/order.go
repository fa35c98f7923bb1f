package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem línea embebida de un pedido.
type OrderItem struct {
	Name     string          `json:"name"`
	Quantity decimal.Decimal `json:"quantity"`
	Unit     string          `json:"unit"`
}

// Order pedido recibido por un mayorista.
type Order struct {
	ID           string
	OrderID      string // referencia externa, ej. "ORD-1042"
	Customer     string
	Items        []OrderItem
	Amount       decimal.Decimal
	Status       string
	Date         time.Time
	Priority     string
	WholesalerID RoleID
	CreatedAt    time.Time
}
