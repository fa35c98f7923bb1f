package supply_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/agrochain-api/internal/application/dto"
	"github.com/jhoicas/agrochain-api/internal/application/supply"
	"github.com/jhoicas/agrochain-api/internal/domain"
	"github.com/jhoicas/agrochain-api/internal/infrastructure/memory"
	"github.com/jhoicas/agrochain-api/pkg/logger"
)

type capturingGenerator struct {
	last *supply.Statement
}

func (g *capturingGenerator) GenerateStatement(_ context.Context, st *supply.Statement) ([]byte, error) {
	g.last = st
	return []byte("%PDF-fake"), nil
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func setup() (*supply.SupplyUseCase, *capturingGenerator) {
	store := memory.NewStore()
	gen := &capturingGenerator{}
	uc := supply.NewSupplyUseCase(
		memory.NewTxRunner(store),
		store.DealerRequests(),
		store.Transactions(),
		store.DealerStock(),
		store.RetailerRequests(),
		gen,
		logger.Nop(),
	)
	return uc, gen
}

func dealerRequest(price, qty string) dto.CreateDealerRequestRequest {
	return dto.CreateDealerRequestRequest{
		DealerID: "d1", DealerEmail: "d1@agro.test",
		WholesalerRoleID: "w1", WholesalerEmail: "w1@agro.test",
		ItemID: "item-1", ItemName: "Wheat", Category: "Grain",
		RequestedQty: dec(qty), Unit: "kg", Price: price,
	}
}

func TestCreateDealerRequest_EstadoInicial(t *testing.T) {
	uc, _ := setup()
	ctx := context.Background()

	req, err := uc.CreateDealerRequest(ctx, dealerRequest("40", "2"))
	require.NoError(t, err)
	assert.Equal(t, "requested", req.Status)

	byW, err := uc.ListDealerRequestsForWholesaler(ctx, "w1")
	require.NoError(t, err)
	require.Len(t, byW, 1)

	byD, err := uc.ListDealerRequestsForDealer(ctx, "d1")
	require.NoError(t, err)
	require.Len(t, byD, 1)
	assert.Equal(t, req.ID, byD[0].ID)
}

func TestSetDealerRequestStatus_AceptarCreaTransaccion(t *testing.T) {
	uc, _ := setup()
	ctx := context.Background()

	req, err := uc.CreateDealerRequest(ctx, dealerRequest("₹12.50", "4"))
	require.NoError(t, err)

	updated, err := uc.SetDealerRequestStatus(ctx, req.ID, "accepted")
	require.NoError(t, err)
	assert.Equal(t, "accepted", updated.Status)

	txns, err := uc.ListTransactions(ctx, "w1")
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.True(t, decimal.NewFromInt(50).Equal(txns[0].Total), "total = %s", txns[0].Total)
	assert.Equal(t, "due", txns[0].PaymentStatus)
	assert.Equal(t, "d1", txns[0].DealerID)
}

func TestSetDealerRequestStatus_AceptarDosVecesDuplica(t *testing.T) {
	uc, _ := setup()
	ctx := context.Background()

	req, err := uc.CreateDealerRequest(ctx, dealerRequest("10", "1"))
	require.NoError(t, err)

	_, err = uc.SetDealerRequestStatus(ctx, req.ID, "accepted")
	require.NoError(t, err)
	_, err = uc.SetDealerRequestStatus(ctx, req.ID, "accepted")
	require.NoError(t, err)

	txns, err := uc.ListTransactions(ctx, "w1")
	require.NoError(t, err)
	assert.Len(t, txns, 2)
}

func TestSetDealerRequestStatus_RechazarNoCreaTransaccion(t *testing.T) {
	uc, _ := setup()
	ctx := context.Background()

	req, err := uc.CreateDealerRequest(ctx, dealerRequest("10", "1"))
	require.NoError(t, err)
	_, err = uc.SetDealerRequestStatus(ctx, req.ID, "rejected")
	require.NoError(t, err)

	txns, err := uc.ListTransactions(ctx, "w1")
	require.NoError(t, err)
	assert.Empty(t, txns)
}

func TestSetDealerRequestStatus_Errores(t *testing.T) {
	uc, _ := setup()
	ctx := context.Background()

	req, err := uc.CreateDealerRequest(ctx, dealerRequest("10", "1"))
	require.NoError(t, err)

	_, err = uc.SetDealerRequestStatus(ctx, req.ID, "shipped")
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	_, err = uc.SetDealerRequestStatus(ctx, "no-existe", "accepted")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpsertDealerStock_UltimaEscrituraGana(t *testing.T) {
	uc, _ := setup()
	ctx := context.Background()

	in := dto.UpsertDealerStockRequest{
		DealerID: "d1", DealerEmail: "d1@agro.test", ItemName: "Wheat",
		Category: "Grain", Quantity: dec("10"), Unit: "kg", Price: "40",
	}
	first, err := uc.UpsertDealerStock(ctx, in)
	require.NoError(t, err)

	in.Quantity = dec("25")
	in.Price = "45"
	second, err := uc.UpsertDealerStock(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	avail, err := uc.ListAvailableStock(ctx)
	require.NoError(t, err)
	require.Len(t, avail, 1)
	require.Len(t, avail[0].Items, 1)
	assert.True(t, decimal.NewFromInt(25).Equal(avail[0].Items[0].Quantity))
	assert.Equal(t, "45", avail[0].Items[0].Price)
}

func TestUpsertDealerStock_SinCantidadGuardaCero(t *testing.T) {
	uc, _ := setup()
	ctx := context.Background()

	stock, err := uc.UpsertDealerStock(ctx, dto.UpsertDealerStockRequest{
		DealerID: "d1", ItemName: "Rice", Category: "Grain", Unit: "kg", Price: "30",
	})
	require.NoError(t, err)
	assert.True(t, stock.Quantity.IsZero())

	avail, err := uc.ListAvailableStock(ctx)
	require.NoError(t, err)
	assert.Empty(t, avail)
}

func TestListAvailableStock_AgrupaPorDistribuidor(t *testing.T) {
	uc, _ := setup()
	ctx := context.Background()

	for _, in := range []dto.UpsertDealerStockRequest{
		{DealerID: "d1", DealerEmail: "d1@agro.test", ItemName: "Wheat", Category: "Grain", Quantity: dec("5"), Unit: "kg", Price: "40"},
		{DealerID: "d2", DealerEmail: "d2@agro.test", ItemName: "Urea", Category: "Fertilizer", Quantity: dec("3"), Unit: "bag", Price: "300"},
		{DealerID: "d1", DealerEmail: "d1@agro.test", ItemName: "Rice", Category: "Grain", Quantity: dec("7"), Unit: "kg", Price: "35"},
	} {
		_, err := uc.UpsertDealerStock(ctx, in)
		require.NoError(t, err)
	}

	avail, err := uc.ListAvailableStock(ctx)
	require.NoError(t, err)
	require.Len(t, avail, 2)
	assert.Equal(t, "d1", avail[0].DealerID)
	assert.Len(t, avail[0].Items, 2)
	assert.Equal(t, "d2", avail[1].DealerID)
	assert.Len(t, avail[1].Items, 1)
}

func TestRetailerRequest_Flujo(t *testing.T) {
	uc, _ := setup()
	ctx := context.Background()

	stock, err := uc.UpsertDealerStock(ctx, dto.UpsertDealerStockRequest{
		DealerID: "d1", ItemName: "Wheat", Category: "Grain", Quantity: dec("10"), Unit: "kg", Price: "40",
	})
	require.NoError(t, err)

	in := dto.CreateRetailerRequestRequest{
		RetailerID: "r1", RetailerEmail: "r1@agro.test", DealerID: "d1",
		DealerStockID: stock.ID, ItemName: "Wheat", Category: "Grain",
		RequestedQty: dec("2"), Unit: "kg", Price: "40",
	}
	req, err := uc.CreateRetailerRequest(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "requested", req.Status)

	mine, err := uc.ListRetailerRequestsForRetailer(ctx, "r1")
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	forDealer, err := uc.ListRetailerRequestsForDealer(ctx, "d1")
	require.NoError(t, err)
	assert.Len(t, forDealer, 1)

	_, err = uc.SetRetailerRequestStatus(ctx, req.ID, "requested")
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	updated, err := uc.SetRetailerRequestStatus(ctx, req.ID, "cancelled")
	require.NoError(t, err)
	assert.Equal(t, "cancelled", updated.Status)

	_, err = uc.SetRetailerRequestStatus(ctx, "no-existe", "accepted")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateRetailerRequest_StockInexistente(t *testing.T) {
	uc, _ := setup()
	_, err := uc.CreateRetailerRequest(context.Background(), dto.CreateRetailerRequestRequest{
		RetailerID: "r1", DealerID: "d1", DealerStockID: "no-existe",
		ItemName: "Wheat", Category: "Grain", RequestedQty: dec("1"), Unit: "kg", Price: "40",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateRetailerRequest_CantidadNoPositiva(t *testing.T) {
	uc, _ := setup()
	_, err := uc.CreateRetailerRequest(context.Background(), dto.CreateRetailerRequestRequest{
		RetailerID: "r1", DealerID: "d1", DealerStockID: "x",
		ItemName: "Wheat", Category: "Grain", RequestedQty: dec("0"), Unit: "kg", Price: "40",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSetPaymentStatus_YEstadoDeCuenta(t *testing.T) {
	uc, gen := setup()
	ctx := context.Background()

	for _, price := range []string{"10", "20"} {
		req, err := uc.CreateDealerRequest(ctx, dealerRequest(price, "1"))
		require.NoError(t, err)
		_, err = uc.SetDealerRequestStatus(ctx, req.ID, "accepted")
		require.NoError(t, err)
	}
	txns, err := uc.ListTransactions(ctx, "w1")
	require.NoError(t, err)
	require.Len(t, txns, 2)

	method := "UPI"
	paid, err := uc.SetPaymentStatus(ctx, txns[0].ID, dto.UpdatePaymentRequest{PaymentStatus: "done", PaymentMethod: &method})
	require.NoError(t, err)
	assert.Equal(t, "done", paid.PaymentStatus)
	assert.Equal(t, "UPI", paid.PaymentMethod)

	_, err = uc.SetPaymentStatus(ctx, txns[0].ID, dto.UpdatePaymentRequest{PaymentStatus: "partial"})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	_, err = uc.SetPaymentStatus(ctx, "no-existe", dto.UpdatePaymentRequest{PaymentStatus: "done"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	pdf, err := uc.Statement(ctx, "w1")
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
	require.NotNil(t, gen.last)
	assert.Len(t, gen.last.Transactions, 2)
	assert.True(t, decimal.NewFromInt(30).Equal(gen.last.TotalDue.Add(gen.last.TotalPaid)))
	assert.True(t, txns[0].Total.Equal(gen.last.TotalPaid))
}
