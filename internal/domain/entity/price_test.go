package entity_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/agrochain-api/internal/domain/entity"
)

func TestParsePrice(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"₹12.50", "12.5"},
		{"40/kg", "40"},
		{"Rs 1,200", "1200"},
		{"", "0"},
		{"free", "0"},
		{"1.2.3", "0"},
	}
	for _, tc := range cases {
		got := entity.ParsePrice(tc.raw)
		assert.True(t, got.Equal(decimal.RequireFromString(tc.want)), "%q -> %s", tc.raw, got)
	}
}

func TestDealerRequest_Settle(t *testing.T) {
	now := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	req := &entity.DealerRequest{
		ID:               "req-1",
		DealerID:         "d1",
		DealerEmail:      "dealer@agro.in",
		WholesalerRoleID: "w2",
		ItemName:         "Urea",
		Category:         "Fertilizer",
		RequestedQty:     decimal.NewFromInt(4),
		Unit:             "bag",
		Price:            "₹12.50",
		Status:           entity.DealerRequestAccepted,
	}

	txn := req.Settle("txn-1", now)

	assert.True(t, txn.Total.Equal(decimal.NewFromInt(50)), "total = 12.50 × 4, got %s", txn.Total)
	assert.Equal(t, entity.PaymentDue, txn.PaymentStatus)
	assert.Equal(t, entity.RoleID("w2"), txn.WholesalerRoleID)
	assert.Equal(t, entity.RoleID("d1"), txn.DealerID)
	assert.Equal(t, "₹12.50", txn.Price)
	assert.Equal(t, now, txn.Date)
}

func TestDealerRequest_SettlePrecioNoNumerico(t *testing.T) {
	req := &entity.DealerRequest{RequestedQty: decimal.NewFromInt(3), Price: "on request"}
	assert.True(t, req.Settle("t", time.Now()).Total.IsZero())
}
