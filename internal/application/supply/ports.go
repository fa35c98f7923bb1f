package supply

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/agrochain-api/internal/domain/entity"
	"github.com/jhoicas/agrochain-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza que el cambio de estado de una solicitud y la transacción financiera se persistan juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		reqRepo repository.DealerRequestRepository,
		txnRepo repository.TransactionRepository,
	) error) error
}

// Statement estado de cuenta de un mayorista.
type Statement struct {
	WholesalerID entity.RoleID
	GeneratedAt  time.Time
	Transactions []*entity.Transaction
	TotalDue     decimal.Decimal
	TotalPaid    decimal.Decimal
}

// StatementGenerator genera el PDF del estado de cuenta.
type StatementGenerator interface {
	GenerateStatement(ctx context.Context, st *Statement) ([]byte, error)
}
