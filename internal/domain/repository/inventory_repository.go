package repository

import (
	"context"

	"github.com/jhoicas/agrochain-api/internal/domain/entity"
)

// InventoryItemRepository inventario de los mayoristas.
type InventoryItemRepository interface {
	Create(ctx context.Context, item *entity.InventoryItem) error
	ListByWholesaler(ctx context.Context, wholesalerID entity.RoleID) ([]*entity.InventoryItem, error)
	// ListBelowReorderLevel artículos con quantity <= reorder_level.
	ListBelowReorderLevel(ctx context.Context, wholesalerID entity.RoleID) ([]*entity.InventoryItem, error)
}

// OrderRepository pedidos de los mayoristas.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	// ListByWholesaler ordenado por fecha descendente.
	ListByWholesaler(ctx context.Context, wholesalerID entity.RoleID) ([]*entity.Order, error)
}
