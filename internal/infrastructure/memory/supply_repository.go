package memory

import (
	"context"
	"time"

	"github.com/jhoicas/agrochain-api/internal/domain/entity"
	"github.com/jhoicas/agrochain-api/internal/domain/repository"
)

var (
	_ repository.DealerRequestRepository   = (*DealerRequestRepo)(nil)
	_ repository.TransactionRepository     = (*TransactionRepo)(nil)
	_ repository.DealerStockRepository     = (*DealerStockRepo)(nil)
	_ repository.RetailerRequestRepository = (*RetailerRequestRepo)(nil)
)

// DealerRequestRepo solicitudes de distribuidores en memoria.
type DealerRequestRepo struct {
	s *Store
}

func (r *DealerRequestRepo) Create(_ context.Context, req *entity.DealerRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if req.CreatedAt.IsZero() {
		req.CreatedAt = r.s.now()
	}
	r.s.dealerRequests = append(r.s.dealerRequests, clone(req))
	return nil
}

func (r *DealerRequestRepo) UpdateStatus(_ context.Context, id string, status entity.DealerRequestStatus) (*entity.DealerRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, req := range r.s.dealerRequests {
		if req.ID == id {
			req.Status = status
			return clone(req), nil
		}
	}
	return nil, nil
}

func (r *DealerRequestRepo) ListByWholesaler(_ context.Context, wholesalerID entity.RoleID) ([]*entity.DealerRequest, error) {
	return r.list(func(req *entity.DealerRequest) bool { return req.WholesalerRoleID == wholesalerID }), nil
}

func (r *DealerRequestRepo) ListByDealer(_ context.Context, dealerID entity.RoleID) ([]*entity.DealerRequest, error) {
	return r.list(func(req *entity.DealerRequest) bool { return req.DealerID == dealerID }), nil
}

func (r *DealerRequestRepo) list(keep func(*entity.DealerRequest) bool) []*entity.DealerRequest {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return newestFirst(r.s.dealerRequests, keep, func(req *entity.DealerRequest) time.Time { return req.CreatedAt })
}

// TransactionRepo transacciones en memoria.
type TransactionRepo struct {
	s *Store
}

func (r *TransactionRepo) Create(_ context.Context, txn *entity.Transaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if txn.Date.IsZero() {
		txn.Date = r.s.now()
	}
	r.s.transactions = append(r.s.transactions, clone(txn))
	return nil
}

func (r *TransactionRepo) ListByWholesaler(_ context.Context, wholesalerID entity.RoleID) ([]*entity.Transaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return newestFirst(r.s.transactions,
		func(t *entity.Transaction) bool { return t.WholesalerRoleID == wholesalerID },
		func(t *entity.Transaction) time.Time { return t.Date },
	), nil
}

func (r *TransactionRepo) UpdatePayment(_ context.Context, id string, status entity.PaymentStatus, method *string) (*entity.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, t := range r.s.transactions {
		if t.ID == id {
			t.PaymentStatus = status
			if method != nil {
				t.PaymentMethod = *method
			}
			return clone(t), nil
		}
	}
	return nil, nil
}

// DealerStockRepo stock de distribuidores en memoria.
type DealerStockRepo struct {
	s *Store
}

// Upsert reemplaza el registro con la misma clave compuesta; conserva su ID.
func (r *DealerStockRepo) Upsert(_ context.Context, stock *entity.DealerStock) (*entity.DealerStock, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if stock.CreatedAt.IsZero() {
		stock.CreatedAt = r.s.now()
	}
	key := stock.Key()
	for _, existing := range r.s.dealerStock {
		if existing.Key() == key {
			existing.DealerEmail = stock.DealerEmail
			existing.Quantity = stock.Quantity
			existing.Price = stock.Price
			existing.DealerRequestID = stock.DealerRequestID
			existing.CreatedAt = stock.CreatedAt
			return clone(existing), nil
		}
	}
	r.s.dealerStock = append(r.s.dealerStock, clone(stock))
	return clone(stock), nil
}

func (r *DealerStockRepo) GetByID(_ context.Context, id string) (*entity.DealerStock, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, st := range r.s.dealerStock {
		if st.ID == id {
			return clone(st), nil
		}
	}
	return nil, nil
}

func (r *DealerStockRepo) ListAvailable(_ context.Context) ([]*entity.DealerStock, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.DealerStock, 0)
	for _, st := range r.s.dealerStock {
		if st.Quantity.IsPositive() {
			out = append(out, clone(st))
		}
	}
	return out, nil
}

// RetailerRequestRepo solicitudes de minoristas en memoria.
type RetailerRequestRepo struct {
	s *Store
}

func (r *RetailerRequestRepo) Create(_ context.Context, req *entity.RetailerRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if req.CreatedAt.IsZero() {
		req.CreatedAt = r.s.now()
	}
	r.s.retailerRequests = append(r.s.retailerRequests, clone(req))
	return nil
}

func (r *RetailerRequestRepo) UpdateStatus(_ context.Context, id string, status entity.RetailerRequestStatus) (*entity.RetailerRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, req := range r.s.retailerRequests {
		if req.ID == id {
			req.Status = status
			return clone(req), nil
		}
	}
	return nil, nil
}

func (r *RetailerRequestRepo) ListByRetailer(_ context.Context, retailerID entity.RoleID) ([]*entity.RetailerRequest, error) {
	return r.list(func(req *entity.RetailerRequest) bool { return req.RetailerID == retailerID }), nil
}

func (r *RetailerRequestRepo) ListByDealer(_ context.Context, dealerID entity.RoleID) ([]*entity.RetailerRequest, error) {
	return r.list(func(req *entity.RetailerRequest) bool { return req.DealerID == dealerID }), nil
}

func (r *RetailerRequestRepo) list(keep func(*entity.RetailerRequest) bool) []*entity.RetailerRequest {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return newestFirst(r.s.retailerRequests, keep, func(req *entity.RetailerRequest) time.Time { return req.CreatedAt })
}
