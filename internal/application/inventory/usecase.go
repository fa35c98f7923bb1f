package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/agrochain-api/internal/application/dto"
	"github.com/jhoicas/agrochain-api/internal/domain"
	"github.com/jhoicas/agrochain-api/internal/domain/entity"
	"github.com/jhoicas/agrochain-api/internal/domain/repository"
)

// InventoryUseCase inventario y pedidos de los mayoristas.
type InventoryUseCase struct {
	itemRepo  repository.InventoryItemRepository
	orderRepo repository.OrderRepository
	now       func() time.Time
}

// NewInventoryUseCase construye el caso de uso.
func NewInventoryUseCase(itemRepo repository.InventoryItemRepository, orderRepo repository.OrderRepository) *InventoryUseCase {
	return &InventoryUseCase{itemRepo: itemRepo, orderRepo: orderRepo, now: time.Now}
}

// AddItem da de alta un artículo en el inventario de un mayorista.
func (uc *InventoryUseCase) AddItem(ctx context.Context, in dto.AddItemRequest) (*dto.InventoryItemResponse, error) {
	if in.Quantity == nil || in.ReorderLevel == nil || strings.TrimSpace(in.WholesalerID) == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity.IsNegative() || in.ReorderLevel.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	item := &entity.InventoryItem{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Category:     in.Category,
		Quantity:     *in.Quantity,
		Unit:         in.Unit,
		Price:        in.Price,
		ReorderLevel: *in.ReorderLevel,
		WholesalerID: entity.RoleID(in.WholesalerID),
		CreatedAt:    uc.now(),
	}
	if err := uc.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	out := toItemResponse(item)
	return &out, nil
}

// ListItems inventario completo de un mayorista.
func (uc *InventoryUseCase) ListItems(ctx context.Context, wholesalerID string) ([]dto.InventoryItemResponse, error) {
	items, err := uc.itemRepo.ListByWholesaler(ctx, entity.RoleID(wholesalerID))
	if err != nil {
		return nil, err
	}
	return toItemResponses(items), nil
}

// ListLowStock artículos en o por debajo de su punto de reorden.
func (uc *InventoryUseCase) ListLowStock(ctx context.Context, wholesalerID string) ([]dto.InventoryItemResponse, error) {
	items, err := uc.itemRepo.ListBelowReorderLevel(ctx, entity.RoleID(wholesalerID))
	if err != nil {
		return nil, err
	}
	return toItemResponses(items), nil
}

// CreateOrder registra un pedido recibido por un mayorista. Sin fecha se usa la actual.
func (uc *InventoryUseCase) CreateOrder(ctx context.Context, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if in.Amount == nil || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	now := uc.now()
	date := now
	if in.Date != nil {
		date = *in.Date
	}
	items := make([]entity.OrderItem, 0, len(in.Items))
	for _, it := range in.Items {
		if it.Quantity == nil || !it.Quantity.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
		items = append(items, entity.OrderItem{Name: it.Name, Quantity: *it.Quantity, Unit: it.Unit})
	}
	order := &entity.Order{
		ID:           uuid.New().String(),
		OrderID:      in.OrderID,
		Customer:     in.Customer,
		Items:        items,
		Amount:       *in.Amount,
		Status:       in.Status,
		Date:         date,
		Priority:     in.Priority,
		WholesalerID: entity.RoleID(in.WholesalerID),
		CreatedAt:    now,
	}
	if err := uc.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}
	out := toOrderResponse(order)
	return &out, nil
}

// ListOrders pedidos de un mayorista, más reciente primero.
func (uc *InventoryUseCase) ListOrders(ctx context.Context, wholesalerID string) ([]dto.OrderResponse, error) {
	orders, err := uc.orderRepo.ListByWholesaler(ctx, entity.RoleID(wholesalerID))
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	return out, nil
}

func toItemResponse(i *entity.InventoryItem) dto.InventoryItemResponse {
	return dto.InventoryItemResponse{
		ID:           i.ID,
		Name:         i.Name,
		Category:     i.Category,
		Quantity:     i.Quantity,
		Unit:         i.Unit,
		Price:        i.Price,
		ReorderLevel: i.ReorderLevel,
		WholesalerID: i.WholesalerID.String(),
		CreatedAt:    i.CreatedAt,
	}
}

func toItemResponses(items []*entity.InventoryItem) []dto.InventoryItemResponse {
	out := make([]dto.InventoryItemResponse, 0, len(items))
	for _, i := range items {
		out = append(out, toItemResponse(i))
	}
	return out
}

func toOrderResponse(o *entity.Order) dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.OrderItemResponse{Name: it.Name, Quantity: it.Quantity, Unit: it.Unit})
	}
	return dto.OrderResponse{
		ID:           o.ID,
		OrderID:      o.OrderID,
		Customer:     o.Customer,
		Items:        items,
		Amount:       o.Amount,
		Status:       o.Status,
		Date:         o.Date,
		Priority:     o.Priority,
		WholesalerID: o.WholesalerID.String(),
		CreatedAt:    o.CreatedAt,
	}
}
