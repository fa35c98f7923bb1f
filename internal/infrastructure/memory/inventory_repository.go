package memory

import (
	"context"
	"time"

	"github.com/jhoicas/agrochain-api/internal/domain/entity"
	"github.com/jhoicas/agrochain-api/internal/domain/repository"
)

var (
	_ repository.InventoryItemRepository = (*InventoryItemRepo)(nil)
	_ repository.OrderRepository         = (*OrderRepo)(nil)
)

// InventoryItemRepo inventario en memoria.
type InventoryItemRepo struct {
	s *Store
}

func (r *InventoryItemRepo) Create(_ context.Context, item *entity.InventoryItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = r.s.now()
	}
	r.s.items = append(r.s.items, clone(item))
	return nil
}

func (r *InventoryItemRepo) ListByWholesaler(_ context.Context, wholesalerID entity.RoleID) ([]*entity.InventoryItem, error) {
	return r.list(func(i *entity.InventoryItem) bool { return i.WholesalerID == wholesalerID }), nil
}

func (r *InventoryItemRepo) ListBelowReorderLevel(_ context.Context, wholesalerID entity.RoleID) ([]*entity.InventoryItem, error) {
	return r.list(func(i *entity.InventoryItem) bool {
		return i.WholesalerID == wholesalerID && i.BelowReorderLevel()
	}), nil
}

func (r *InventoryItemRepo) list(keep func(*entity.InventoryItem) bool) []*entity.InventoryItem {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.InventoryItem, 0)
	for _, i := range r.s.items {
		if keep(i) {
			out = append(out, clone(i))
		}
	}
	return out
}

// OrderRepo pedidos en memoria.
type OrderRepo struct {
	s *Store
}

func (r *OrderRepo) Create(_ context.Context, order *entity.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := r.s.now()
	if order.CreatedAt.IsZero() {
		order.CreatedAt = now
	}
	if order.Date.IsZero() {
		order.Date = now
	}
	r.s.orders = append(r.s.orders, clone(order))
	return nil
}

func (r *OrderRepo) ListByWholesaler(_ context.Context, wholesalerID entity.RoleID) ([]*entity.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return newestFirst(r.s.orders,
		func(o *entity.Order) bool { return o.WholesalerID == wholesalerID },
		func(o *entity.Order) time.Time { return o.Date },
	), nil
}
