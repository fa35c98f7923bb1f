package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/agrochain-api/internal/domain/entity"
	"github.com/jhoicas/agrochain-api/internal/domain/repository"
)

var (
	_ repository.InventoryItemRepository = (*InventoryItemRepo)(nil)
	_ repository.OrderRepository         = (*OrderRepo)(nil)
)

const inventoryItemColumns = `id, name, category, quantity, unit, price, reorder_level, wholesaler_id, created_at`

// InventoryItemRepo inventario de mayoristas sobre PostgreSQL.
type InventoryItemRepo struct {
	q Querier
}

// NewInventoryItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryItemRepository(q Querier) *InventoryItemRepo {
	return &InventoryItemRepo{q: q}
}

// Create inserta un artículo.
func (r *InventoryItemRepo) Create(ctx context.Context, item *entity.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (` + inventoryItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.Name, item.Category, item.Quantity, item.Unit, item.Price,
		item.ReorderLevel, item.WholesalerID.String(), item.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert inventory item: %w", err)
	}
	return nil
}

// ListByWholesaler artículos de un mayorista.
func (r *InventoryItemRepo) ListByWholesaler(ctx context.Context, wholesalerID entity.RoleID) ([]*entity.InventoryItem, error) {
	return r.list(ctx, `SELECT `+inventoryItemColumns+` FROM inventory_items
		WHERE wholesaler_id = $1 ORDER BY created_at`, wholesalerID.String())
}

// ListBelowReorderLevel artículos en o por debajo del punto de reorden.
func (r *InventoryItemRepo) ListBelowReorderLevel(ctx context.Context, wholesalerID entity.RoleID) ([]*entity.InventoryItem, error) {
	return r.list(ctx, `SELECT `+inventoryItemColumns+` FROM inventory_items
		WHERE wholesaler_id = $1 AND quantity <= reorder_level ORDER BY quantity, name`, wholesalerID.String())
}

func (r *InventoryItemRepo) list(ctx context.Context, query string, args ...any) ([]*entity.InventoryItem, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory items: %w", err)
	}
	defer rows.Close()
	out := make([]*entity.InventoryItem, 0)
	for rows.Next() {
		var it entity.InventoryItem
		var wholesalerID string
		if err := rows.Scan(&it.ID, &it.Name, &it.Category, &it.Quantity, &it.Unit, &it.Price,
			&it.ReorderLevel, &wholesalerID, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan inventory item: %w", err)
		}
		it.WholesalerID = entity.RoleID(wholesalerID)
		out = append(out, &it)
	}
	return out, rows.Err()
}

// OrderRepo pedidos sobre PostgreSQL; las líneas se guardan como JSONB.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador.
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create inserta un pedido.
func (r *OrderRepo) Create(ctx context.Context, order *entity.Order) error {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("marshal order items: %w", err)
	}
	query := `
		INSERT INTO orders (id, order_id, customer, items, amount, status, date, priority, wholesaler_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err = r.q.Exec(ctx, query,
		order.ID, order.OrderID, order.Customer, items, order.Amount, order.Status,
		order.Date, order.Priority, order.WholesalerID.String(), order.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// ListByWholesaler pedidos de un mayorista, fecha descendente.
func (r *OrderRepo) ListByWholesaler(ctx context.Context, wholesalerID entity.RoleID) ([]*entity.Order, error) {
	query := `
		SELECT id, order_id, customer, items, amount, status, date, priority, wholesaler_id, created_at
		FROM orders WHERE wholesaler_id = $1 ORDER BY date DESC, created_at DESC`
	rows, err := r.q.Query(ctx, query, wholesalerID.String())
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.Order, error) {
		var o entity.Order
		var items []byte
		var wid string
		if err := row.Scan(&o.ID, &o.OrderID, &o.Customer, &items, &o.Amount, &o.Status,
			&o.Date, &o.Priority, &wid, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		if err := json.Unmarshal(items, &o.Items); err != nil {
			return nil, fmt.Errorf("unmarshal order items: %w", err)
		}
		o.WholesalerID = entity.RoleID(wid)
		return &o, nil
	})
}
