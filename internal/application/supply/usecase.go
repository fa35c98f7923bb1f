// Package supply implementa los flujos distribuidor ↔ mayorista y minorista ↔ distribuidor.
package supply

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/agrochain-api/internal/application/dto"
	"github.com/jhoicas/agrochain-api/internal/domain"
	"github.com/jhoicas/agrochain-api/internal/domain/entity"
	"github.com/jhoicas/agrochain-api/internal/domain/repository"
	"github.com/jhoicas/agrochain-api/pkg/logger"
)

// SupplyUseCase solicitudes, stock de distribuidores y transacciones.
type SupplyUseCase struct {
	txRunner     TxRunner
	requestRepo  repository.DealerRequestRepository
	txnRepo      repository.TransactionRepository
	stockRepo    repository.DealerStockRepository
	retailerRepo repository.RetailerRequestRepository
	statements   StatementGenerator
	log          *logger.Logger
	now          func() time.Time
}

// NewSupplyUseCase construye el caso de uso.
func NewSupplyUseCase(
	txRunner TxRunner,
	requestRepo repository.DealerRequestRepository,
	txnRepo repository.TransactionRepository,
	stockRepo repository.DealerStockRepository,
	retailerRepo repository.RetailerRequestRepository,
	statements StatementGenerator,
	log *logger.Logger,
) *SupplyUseCase {
	return &SupplyUseCase{
		txRunner:     txRunner,
		requestRepo:  requestRepo,
		txnRepo:      txnRepo,
		stockRepo:    stockRepo,
		retailerRepo: retailerRepo,
		statements:   statements,
		log:          log.Component("supply"),
		now:          time.Now,
	}
}

// ── Dealer requests ──────────────────────────────────────────────────────────

// CreateDealerRequest registra una solicitud en estado "requested".
func (uc *SupplyUseCase) CreateDealerRequest(ctx context.Context, in dto.CreateDealerRequestRequest) (*dto.DealerRequestResponse, error) {
	if in.RequestedQty == nil || in.RequestedQty.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	req := &entity.DealerRequest{
		ID:               uuid.New().String(),
		DealerID:         entity.RoleID(in.DealerID),
		DealerEmail:      in.DealerEmail,
		WholesalerRoleID: entity.RoleID(in.WholesalerRoleID),
		WholesalerEmail:  in.WholesalerEmail,
		ItemID:           in.ItemID,
		ItemName:         in.ItemName,
		Category:         in.Category,
		RequestedQty:     *in.RequestedQty,
		Unit:             in.Unit,
		Price:            in.Price,
		Status:           entity.DealerRequestRequested,
		CreatedAt:        uc.now(),
	}
	if err := uc.requestRepo.Create(ctx, req); err != nil {
		return nil, err
	}
	out := toDealerRequestResponse(req)
	return &out, nil
}

// ListDealerRequestsForWholesaler solicitudes recibidas, más reciente primero.
func (uc *SupplyUseCase) ListDealerRequestsForWholesaler(ctx context.Context, wholesalerID string) ([]dto.DealerRequestResponse, error) {
	reqs, err := uc.requestRepo.ListByWholesaler(ctx, entity.RoleID(wholesalerID))
	if err != nil {
		return nil, err
	}
	return toDealerRequestResponses(reqs), nil
}

// ListDealerRequestsForDealer solicitudes enviadas, más reciente primero.
func (uc *SupplyUseCase) ListDealerRequestsForDealer(ctx context.Context, dealerID string) ([]dto.DealerRequestResponse, error) {
	reqs, err := uc.requestRepo.ListByDealer(ctx, entity.RoleID(dealerID))
	if err != nil {
		return nil, err
	}
	return toDealerRequestResponses(reqs), nil
}

// SetDealerRequestStatus actualiza el estado de una solicitud. Al pasar a "accepted" crea, en la misma
// transacción de BD, una Transaction con total = precio × cantidad. No hay guarda de transición:
// aceptar dos veces crea dos transacciones.
func (uc *SupplyUseCase) SetDealerRequestStatus(ctx context.Context, id, rawStatus string) (*dto.DealerRequestResponse, error) {
	status, ok := entity.ParseDealerRequestStatus(rawStatus)
	if !ok {
		return nil, domain.ErrInvalidStatus
	}
	var updated *entity.DealerRequest
	err := uc.txRunner.Run(ctx, func(reqRepo repository.DealerRequestRepository, txnRepo repository.TransactionRepository) error {
		var err error
		updated, err = reqRepo.UpdateStatus(ctx, id, status)
		if err != nil {
			return err
		}
		if updated == nil {
			return domain.ErrNotFound
		}
		if status != entity.DealerRequestAccepted {
			return nil
		}
		txn := updated.Settle(uuid.New().String(), uc.now())
		if err := txnRepo.Create(ctx, txn); err != nil {
			return err
		}
		uc.log.Info().Str("request_id", id).Str("transaction_id", txn.ID).Str("total", txn.Total.String()).Msg("solicitud aceptada")
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := toDealerRequestResponse(updated)
	return &out, nil
}

// ── Dealer stock ─────────────────────────────────────────────────────────────

// UpsertDealerStock crea o reemplaza el stock por (dealerId, itemName, category, unit). Sin cantidad se guarda 0.
func (uc *SupplyUseCase) UpsertDealerStock(ctx context.Context, in dto.UpsertDealerStockRequest) (*dto.DealerStockResponse, error) {
	qty := decimal.Zero
	if in.Quantity != nil {
		qty = *in.Quantity
	}
	if qty.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	stock, err := uc.stockRepo.Upsert(ctx, &entity.DealerStock{
		ID:              uuid.New().String(),
		DealerID:        entity.RoleID(in.DealerID),
		DealerEmail:     in.DealerEmail,
		ItemName:        in.ItemName,
		Category:        in.Category,
		Quantity:        qty,
		Unit:            in.Unit,
		Price:           in.Price,
		DealerRequestID: in.DealerRequestID,
		CreatedAt:       uc.now(),
	})
	if err != nil {
		return nil, err
	}
	out := toDealerStockResponse(stock)
	return &out, nil
}

// ListAvailableStock stock con existencias agrupado por distribuidor, en orden de primera aparición.
func (uc *SupplyUseCase) ListAvailableStock(ctx context.Context) ([]dto.AvailableDealer, error) {
	stocks, err := uc.stockRepo.ListAvailable(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AvailableDealer, 0)
	index := make(map[entity.RoleID]int)
	for _, s := range stocks {
		i, ok := index[s.DealerID]
		if !ok {
			i = len(out)
			index[s.DealerID] = i
			out = append(out, dto.AvailableDealer{
				DealerID:    s.DealerID.String(),
				DealerEmail: s.DealerEmail,
				Items:       []dto.AvailableStockItem{},
			})
		}
		out[i].Items = append(out[i].Items, dto.AvailableStockItem{
			DealerStockID: s.ID,
			ItemName:      s.ItemName,
			Category:      s.Category,
			Quantity:      s.Quantity,
			Unit:          s.Unit,
			Price:         s.Price,
		})
	}
	return out, nil
}

// ── Retailer requests ────────────────────────────────────────────────────────

// CreateRetailerRequest registra una solicitud sobre un DealerStock existente (ErrNotFound si no existe).
func (uc *SupplyUseCase) CreateRetailerRequest(ctx context.Context, in dto.CreateRetailerRequestRequest) (*dto.RetailerRequestResponse, error) {
	if in.RequestedQty == nil || !in.RequestedQty.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	stock, err := uc.stockRepo.GetByID(ctx, in.DealerStockID)
	if err != nil {
		return nil, err
	}
	if stock == nil {
		return nil, domain.ErrNotFound
	}
	req := &entity.RetailerRequest{
		ID:            uuid.New().String(),
		RetailerID:    entity.RoleID(in.RetailerID),
		RetailerEmail: in.RetailerEmail,
		DealerID:      entity.RoleID(in.DealerID),
		DealerEmail:   in.DealerEmail,
		DealerStockID: stock.ID,
		ItemName:      in.ItemName,
		Category:      in.Category,
		RequestedQty:  *in.RequestedQty,
		Unit:          in.Unit,
		Price:         in.Price,
		Status:        entity.RetailerRequestRequested,
		CreatedAt:     uc.now(),
	}
	if err := uc.retailerRepo.Create(ctx, req); err != nil {
		return nil, err
	}
	out := toRetailerRequestResponse(req)
	return &out, nil
}

// ListRetailerRequestsForRetailer solicitudes de un minorista, más reciente primero.
func (uc *SupplyUseCase) ListRetailerRequestsForRetailer(ctx context.Context, retailerID string) ([]dto.RetailerRequestResponse, error) {
	reqs, err := uc.retailerRepo.ListByRetailer(ctx, entity.RoleID(retailerID))
	if err != nil {
		return nil, err
	}
	return toRetailerRequestResponses(reqs), nil
}

// ListRetailerRequestsForDealer solicitudes dirigidas a un distribuidor, más reciente primero.
func (uc *SupplyUseCase) ListRetailerRequestsForDealer(ctx context.Context, dealerID string) ([]dto.RetailerRequestResponse, error) {
	reqs, err := uc.retailerRepo.ListByDealer(ctx, entity.RoleID(dealerID))
	if err != nil {
		return nil, err
	}
	return toRetailerRequestResponses(reqs), nil
}

// SetRetailerRequestStatus acepta solo accepted, rejected o cancelled. Sin efectos secundarios.
func (uc *SupplyUseCase) SetRetailerRequestStatus(ctx context.Context, id, rawStatus string) (*dto.RetailerRequestResponse, error) {
	status, ok := entity.ParseRetailerStatusUpdate(rawStatus)
	if !ok {
		return nil, domain.ErrInvalidStatus
	}
	updated, err := uc.retailerRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, domain.ErrNotFound
	}
	out := toRetailerRequestResponse(updated)
	return &out, nil
}

// ── Transactions ─────────────────────────────────────────────────────────────

// ListTransactions transacciones de un mayorista, más reciente primero.
func (uc *SupplyUseCase) ListTransactions(ctx context.Context, wholesalerID string) ([]dto.TransactionResponse, error) {
	txns, err := uc.txnRepo.ListByWholesaler(ctx, entity.RoleID(wholesalerID))
	if err != nil {
		return nil, err
	}
	out := make([]dto.TransactionResponse, 0, len(txns))
	for _, t := range txns {
		out = append(out, toTransactionResponse(t))
	}
	return out, nil
}

// SetPaymentStatus actualiza el estado de pago (due | done) y opcionalmente el método.
func (uc *SupplyUseCase) SetPaymentStatus(ctx context.Context, id string, in dto.UpdatePaymentRequest) (*dto.TransactionResponse, error) {
	status, ok := entity.ParsePaymentStatus(in.PaymentStatus)
	if !ok {
		return nil, domain.ErrInvalidStatus
	}
	updated, err := uc.txnRepo.UpdatePayment(ctx, id, status, in.PaymentMethod)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, domain.ErrNotFound
	}
	out := toTransactionResponse(updated)
	return &out, nil
}

// Statement genera el PDF del estado de cuenta de un mayorista con totales pendiente/pagado.
func (uc *SupplyUseCase) Statement(ctx context.Context, wholesalerID string) ([]byte, error) {
	txns, err := uc.txnRepo.ListByWholesaler(ctx, entity.RoleID(wholesalerID))
	if err != nil {
		return nil, err
	}
	st := &Statement{
		WholesalerID: entity.RoleID(wholesalerID),
		GeneratedAt:  uc.now(),
		Transactions: txns,
		TotalDue:     decimal.Zero,
		TotalPaid:    decimal.Zero,
	}
	for _, t := range txns {
		if t.PaymentStatus == entity.PaymentDone {
			st.TotalPaid = st.TotalPaid.Add(t.Total)
		} else {
			st.TotalDue = st.TotalDue.Add(t.Total)
		}
	}
	return uc.statements.GenerateStatement(ctx, st)
}
