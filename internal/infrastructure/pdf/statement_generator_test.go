package pdf

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/agrochain-api/internal/application/supply"
	"github.com/jhoicas/agrochain-api/internal/domain/entity"
)

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0":         "0.00",
		"12.5":      "12.50",
		"1000":      "1,000.00",
		"1234567.5": "1,234,567.50",
		"-2500":     "-2,500.00",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatMoney(decimal.RequireFromString(in)), in)
	}
}

func TestGenerateStatement(t *testing.T) {
	st := &supply.Statement{
		WholesalerID: "w1",
		GeneratedAt:  time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC),
		Transactions: []*entity.Transaction{{
			ID: "t1", WholesalerRoleID: "w1", DealerID: "d1", DealerEmail: "d@x.io",
			ItemName: "Urea", Quantity: decimal.NewFromInt(4), Unit: "kg", Price: "₹12.50",
			Total: decimal.NewFromInt(50), PaymentStatus: entity.PaymentDue,
			Date: time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC),
		}},
		TotalDue:  decimal.NewFromInt(50),
		TotalPaid: decimal.Zero,
	}

	b, err := NewMarotoStatementGenerator().GenerateStatement(context.Background(), st)
	require.NoError(t, err)
	assert.True(t, len(b) > 4)
	assert.Equal(t, "%PDF", string(b[:4]))
}
