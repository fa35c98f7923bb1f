package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem artículo del inventario de un mayorista.
type InventoryItem struct {
	ID           string
	Name         string
	Category     string
	Quantity     decimal.Decimal
	Unit         string
	Price        string // texto tal como lo captura el mayorista, ej. "₹40/kg"
	ReorderLevel decimal.Decimal
	WholesalerID RoleID
	CreatedAt    time.Time
}

// BelowReorderLevel indica si la cantidad disponible está en o por debajo del punto de reorden.
func (i *InventoryItem) BelowReorderLevel() bool {
	return i.Quantity.LessThanOrEqual(i.ReorderLevel)
}
