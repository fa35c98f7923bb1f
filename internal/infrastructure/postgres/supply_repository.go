package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/agrochain-api/internal/domain/entity"
	"github.com/jhoicas/agrochain-api/internal/domain/repository"
)

var (
	_ repository.DealerRequestRepository   = (*DealerRequestRepo)(nil)
	_ repository.TransactionRepository     = (*TransactionRepo)(nil)
	_ repository.DealerStockRepository     = (*DealerStockRepo)(nil)
	_ repository.RetailerRequestRepository = (*RetailerRequestRepo)(nil)
)

// --- Dealer requests ---

const dealerRequestColumns = `id, dealer_id, dealer_email, wholesaler_role_id, wholesaler_email, item_id,
	item_name, category, requested_qty, unit, price, status, created_at`

// DealerRequestRepo solicitudes distribuidor → mayorista.
type DealerRequestRepo struct {
	q Querier
}

// NewDealerRequestRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDealerRequestRepository(q Querier) *DealerRequestRepo {
	return &DealerRequestRepo{q: q}
}

func scanDealerRequest(row pgx.Row) (*entity.DealerRequest, error) {
	var d entity.DealerRequest
	var dealerID, wholesalerID, status string
	err := row.Scan(&d.ID, &dealerID, &d.DealerEmail, &wholesalerID, &d.WholesalerEmail, &d.ItemID,
		&d.ItemName, &d.Category, &d.RequestedQty, &d.Unit, &d.Price, &status, &d.CreatedAt)
	if err != nil {
		return nil, err
	}
	d.DealerID = entity.RoleID(dealerID)
	d.WholesalerRoleID = entity.RoleID(wholesalerID)
	d.Status = entity.DealerRequestStatus(status)
	return &d, nil
}

// Create inserta la solicitud.
func (r *DealerRequestRepo) Create(ctx context.Context, req *entity.DealerRequest) error {
	query := `INSERT INTO dealer_requests (` + dealerRequestColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		req.ID, req.DealerID.String(), req.DealerEmail, req.WholesalerRoleID.String(), req.WholesalerEmail, req.ItemID,
		req.ItemName, req.Category, req.RequestedQty, req.Unit, req.Price, string(req.Status), req.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert dealer request: %w", err)
	}
	return nil
}

// UpdateStatus cambia el estado y devuelve la solicitud actualizada.
func (r *DealerRequestRepo) UpdateStatus(ctx context.Context, id string, status entity.DealerRequestStatus) (*entity.DealerRequest, error) {
	query := `UPDATE dealer_requests SET status = $2 WHERE id = $1 RETURNING ` + dealerRequestColumns
	d, err := scanDealerRequest(r.q.QueryRow(ctx, query, id, string(status)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("update dealer request status: %w", err)
	}
	return d, nil
}

// ListByWholesaler solicitudes recibidas por un mayorista.
func (r *DealerRequestRepo) ListByWholesaler(ctx context.Context, wholesalerID entity.RoleID) ([]*entity.DealerRequest, error) {
	return r.list(ctx, `wholesaler_role_id = $1`, wholesalerID.String())
}

// ListByDealer solicitudes enviadas por un distribuidor.
func (r *DealerRequestRepo) ListByDealer(ctx context.Context, dealerID entity.RoleID) ([]*entity.DealerRequest, error) {
	return r.list(ctx, `dealer_id = $1`, dealerID.String())
}

func (r *DealerRequestRepo) list(ctx context.Context, cond string, arg any) ([]*entity.DealerRequest, error) {
	rows, err := r.q.Query(ctx, `SELECT `+dealerRequestColumns+` FROM dealer_requests WHERE `+cond+` ORDER BY created_at DESC`, arg)
	if err != nil {
		return nil, fmt.Errorf("list dealer requests: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.DealerRequest, error) {
		return scanDealerRequest(row)
	})
}

// --- Transactions ---

const transactionColumns = `id, wholesaler_role_id, dealer_id, dealer_email, item_name, category,
	quantity, unit, price, total, payment_status, payment_method, date`

// TransactionRepo transacciones financieras.
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

func scanTransaction(row pgx.Row) (*entity.Transaction, error) {
	var t entity.Transaction
	var wholesalerID, dealerID, status string
	err := row.Scan(&t.ID, &wholesalerID, &dealerID, &t.DealerEmail, &t.ItemName, &t.Category,
		&t.Quantity, &t.Unit, &t.Price, &t.Total, &status, &t.PaymentMethod, &t.Date)
	if err != nil {
		return nil, err
	}
	t.WholesalerRoleID = entity.RoleID(wholesalerID)
	t.DealerID = entity.RoleID(dealerID)
	t.PaymentStatus = entity.PaymentStatus(status)
	return &t, nil
}

// Create inserta la transacción.
func (r *TransactionRepo) Create(ctx context.Context, txn *entity.Transaction) error {
	query := `INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		txn.ID, txn.WholesalerRoleID.String(), txn.DealerID.String(), txn.DealerEmail, txn.ItemName, txn.Category,
		txn.Quantity, txn.Unit, txn.Price, txn.Total, string(txn.PaymentStatus), txn.PaymentMethod, txn.Date,
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// ListByWholesaler transacciones de un mayorista, más reciente primero.
func (r *TransactionRepo) ListByWholesaler(ctx context.Context, wholesalerID entity.RoleID) ([]*entity.Transaction, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE wholesaler_role_id = $1 ORDER BY date DESC`,
		wholesalerID.String())
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.Transaction, error) {
		return scanTransaction(row)
	})
}

// UpdatePayment actualiza estado y (opcionalmente) método de pago.
func (r *TransactionRepo) UpdatePayment(ctx context.Context, id string, status entity.PaymentStatus, method *string) (*entity.Transaction, error) {
	query := `UPDATE transactions
		SET payment_status = $2, payment_method = COALESCE($3, payment_method)
		WHERE id = $1 RETURNING ` + transactionColumns
	t, err := scanTransaction(r.q.QueryRow(ctx, query, id, string(status), method))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("update transaction payment: %w", err)
	}
	return t, nil
}

// --- Dealer stock ---

const dealerStockColumns = `id, dealer_id, dealer_email, item_name, category, quantity, unit, price,
	dealer_request_id, created_at`

// DealerStockRepo inventario de reventa de distribuidores.
type DealerStockRepo struct {
	q Querier
}

// NewDealerStockRepository construye el adaptador.
func NewDealerStockRepository(q Querier) *DealerStockRepo {
	return &DealerStockRepo{q: q}
}

func scanDealerStock(row pgx.Row) (*entity.DealerStock, error) {
	var s entity.DealerStock
	var dealerID string
	err := row.Scan(&s.ID, &dealerID, &s.DealerEmail, &s.ItemName, &s.Category, &s.Quantity, &s.Unit,
		&s.Price, &s.DealerRequestID, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	s.DealerID = entity.RoleID(dealerID)
	return &s, nil
}

// Upsert inserta o reemplaza por (dealer_id, item_name, category, unit) en una sola sentencia.
func (r *DealerStockRepo) Upsert(ctx context.Context, stock *entity.DealerStock) (*entity.DealerStock, error) {
	query := `
		INSERT INTO dealer_stock (` + dealerStockColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (dealer_id, item_name, category, unit)
		DO UPDATE SET dealer_email = EXCLUDED.dealer_email,
		              quantity = EXCLUDED.quantity,
		              price = EXCLUDED.price,
		              dealer_request_id = EXCLUDED.dealer_request_id,
		              created_at = EXCLUDED.created_at
		RETURNING ` + dealerStockColumns
	s, err := scanDealerStock(r.q.QueryRow(ctx, query,
		stock.ID, stock.DealerID.String(), stock.DealerEmail, stock.ItemName, stock.Category, stock.Quantity,
		stock.Unit, stock.Price, stock.DealerRequestID, stock.CreatedAt,
	))
	if err != nil {
		return nil, fmt.Errorf("upsert dealer stock: %w", err)
	}
	return s, nil
}

// GetByID obtiene el registro o (nil, nil).
func (r *DealerStockRepo) GetByID(ctx context.Context, id string) (*entity.DealerStock, error) {
	s, err := scanDealerStock(r.q.QueryRow(ctx, `SELECT `+dealerStockColumns+` FROM dealer_stock WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get dealer stock: %w", err)
	}
	return s, nil
}

// ListAvailable stock con existencias, en orden de alta.
func (r *DealerStockRepo) ListAvailable(ctx context.Context) ([]*entity.DealerStock, error) {
	rows, err := r.q.Query(ctx, `SELECT `+dealerStockColumns+` FROM dealer_stock WHERE quantity > 0 ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list available dealer stock: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.DealerStock, error) {
		return scanDealerStock(row)
	})
}

// --- Retailer requests ---

const retailerRequestColumns = `id, retailer_id, retailer_email, dealer_id, dealer_email, dealer_stock_id,
	item_name, category, requested_qty, unit, price, status, created_at`

// RetailerRequestRepo solicitudes minorista → distribuidor.
type RetailerRequestRepo struct {
	q Querier
}

// NewRetailerRequestRepository construye el adaptador.
func NewRetailerRequestRepository(q Querier) *RetailerRequestRepo {
	return &RetailerRequestRepo{q: q}
}

func scanRetailerRequest(row pgx.Row) (*entity.RetailerRequest, error) {
	var rr entity.RetailerRequest
	var retailerID, dealerID, status string
	err := row.Scan(&rr.ID, &retailerID, &rr.RetailerEmail, &dealerID, &rr.DealerEmail, &rr.DealerStockID,
		&rr.ItemName, &rr.Category, &rr.RequestedQty, &rr.Unit, &rr.Price, &status, &rr.CreatedAt)
	if err != nil {
		return nil, err
	}
	rr.RetailerID = entity.RoleID(retailerID)
	rr.DealerID = entity.RoleID(dealerID)
	rr.Status = entity.RetailerRequestStatus(status)
	return &rr, nil
}

// Create inserta la solicitud.
func (r *RetailerRequestRepo) Create(ctx context.Context, req *entity.RetailerRequest) error {
	query := `INSERT INTO retailer_requests (` + retailerRequestColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		req.ID, req.RetailerID.String(), req.RetailerEmail, req.DealerID.String(), req.DealerEmail, req.DealerStockID,
		req.ItemName, req.Category, req.RequestedQty, req.Unit, req.Price, string(req.Status), req.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert retailer request: %w", err)
	}
	return nil
}

// UpdateStatus cambia el estado y devuelve la solicitud actualizada.
func (r *RetailerRequestRepo) UpdateStatus(ctx context.Context, id string, status entity.RetailerRequestStatus) (*entity.RetailerRequest, error) {
	query := `UPDATE retailer_requests SET status = $2 WHERE id = $1 RETURNING ` + retailerRequestColumns
	rr, err := scanRetailerRequest(r.q.QueryRow(ctx, query, id, string(status)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("update retailer request status: %w", err)
	}
	return rr, nil
}

// ListByRetailer solicitudes de un minorista.
func (r *RetailerRequestRepo) ListByRetailer(ctx context.Context, retailerID entity.RoleID) ([]*entity.RetailerRequest, error) {
	return r.list(ctx, `retailer_id = $1`, retailerID.String())
}

// ListByDealer solicitudes dirigidas a un distribuidor.
func (r *RetailerRequestRepo) ListByDealer(ctx context.Context, dealerID entity.RoleID) ([]*entity.RetailerRequest, error) {
	return r.list(ctx, `dealer_id = $1`, dealerID.String())
}

func (r *RetailerRequestRepo) list(ctx context.Context, cond string, arg any) ([]*entity.RetailerRequest, error) {
	rows, err := r.q.Query(ctx, `SELECT `+retailerRequestColumns+` FROM retailer_requests WHERE `+cond+` ORDER BY created_at DESC`, arg)
	if err != nil {
		return nil, fmt.Errorf("list retailer requests: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.RetailerRequest, error) {
		return scanRetailerRequest(row)
	})
}
