// Package memory implementa los puertos de persistencia en memoria de proceso.
// Se usa con STORAGE=memory (desarrollo) y en los tests; no hay durabilidad.
package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/jhoicas/agrochain-api/internal/domain/entity"
	"github.com/jhoicas/agrochain-api/internal/domain/repository"
)

// Store contiene todas las colecciones bajo un único mutex.
type Store struct {
	mu sync.RWMutex

	users     []*entity.User
	sequences map[string]int64

	items  []*entity.InventoryItem
	orders []*entity.Order

	dealerRequests   []*entity.DealerRequest
	transactions     []*entity.Transaction
	dealerStock      []*entity.DealerStock
	retailerRequests []*entity.RetailerRequest

	messages []*entity.AdminMessage

	now func() time.Time
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		sequences: make(map[string]int64),
		now:       time.Now,
	}
}

func (s *Store) Users() *UserRepo                   { return &UserRepo{s: s} }
func (s *Store) RoleSequences() *RoleSequenceRepo   { return &RoleSequenceRepo{s: s} }
func (s *Store) InventoryItems() *InventoryItemRepo { return &InventoryItemRepo{s: s} }
func (s *Store) Orders() *OrderRepo                 { return &OrderRepo{s: s} }
func (s *Store) DealerRequests() *DealerRequestRepo { return &DealerRequestRepo{s: s} }
func (s *Store) Transactions() *TransactionRepo     { return &TransactionRepo{s: s} }
func (s *Store) DealerStock() *DealerStockRepo      { return &DealerStockRepo{s: s} }
func (s *Store) RetailerRequests() *RetailerRequestRepo {
	return &RetailerRequestRepo{s: s}
}
func (s *Store) AdminMessages() *AdminMessageRepo { return &AdminMessageRepo{s: s} }
func (s *Store) Reports() *ReportRepo             { return &ReportRepo{s: s} }

// TxRunner ejecuta fn con los repos del almacén. En memoria no hay rollback:
// cada operación individual es atómica y fn se ejecuta tal cual.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner sobre el almacén.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// Run ejecuta fn con los repos de solicitudes y transacciones.
func (r *TxRunner) Run(_ context.Context, fn func(
	reqRepo repository.DealerRequestRepository,
	txnRepo repository.TransactionRepository,
) error) error {
	return fn(r.s.DealerRequests(), r.s.Transactions())
}

// newestFirst devuelve copias de los elementos que cumplen keep, ordenados por fecha descendente.
// A igual fecha gana el insertado después.
func newestFirst[T any](src []*T, keep func(*T) bool, date func(*T) time.Time) []*T {
	out := make([]*T, 0)
	for i := len(src) - 1; i >= 0; i-- {
		if keep(src[i]) {
			c := *src[i]
			out = append(out, &c)
		}
	}
	slices.SortStableFunc(out, func(a, b *T) int {
		return cmp.Compare(date(b).UnixNano(), date(a).UnixNano())
	})
	return out
}

func clone[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
