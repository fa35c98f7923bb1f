package repository

import (
	"context"

	"github.com/jhoicas/agrochain-api/internal/domain/entity"
)

// Las operaciones Get*/Update* devuelven (nil, nil) cuando el registro no existe.
// Los listados van del más reciente al más antiguo.

// DealerRequestRepository solicitudes distribuidor → mayorista.
type DealerRequestRepository interface {
	Create(ctx context.Context, req *entity.DealerRequest) error
	UpdateStatus(ctx context.Context, id string, status entity.DealerRequestStatus) (*entity.DealerRequest, error)
	ListByWholesaler(ctx context.Context, wholesalerID entity.RoleID) ([]*entity.DealerRequest, error)
	ListByDealer(ctx context.Context, dealerID entity.RoleID) ([]*entity.DealerRequest, error)
}

// TransactionRepository transacciones financieras mayorista ↔ distribuidor.
type TransactionRepository interface {
	Create(ctx context.Context, txn *entity.Transaction) error
	ListByWholesaler(ctx context.Context, wholesalerID entity.RoleID) ([]*entity.Transaction, error)
	// UpdatePayment cambia el estado de pago; method nil conserva el método actual.
	UpdatePayment(ctx context.Context, id string, status entity.PaymentStatus, method *string) (*entity.Transaction, error)
}

// DealerStockRepository inventario de reventa de los distribuidores.
type DealerStockRepository interface {
	// Upsert inserta o reemplaza (última escritura gana) por la clave compuesta y devuelve el registro resultante.
	Upsert(ctx context.Context, stock *entity.DealerStock) (*entity.DealerStock, error)
	GetByID(ctx context.Context, id string) (*entity.DealerStock, error)
	// ListAvailable registros con quantity > 0, en orden de creación.
	ListAvailable(ctx context.Context) ([]*entity.DealerStock, error)
}

// RetailerRequestRepository solicitudes minorista → distribuidor.
type RetailerRequestRepository interface {
	Create(ctx context.Context, req *entity.RetailerRequest) error
	UpdateStatus(ctx context.Context, id string, status entity.RetailerRequestStatus) (*entity.RetailerRequest, error)
	ListByRetailer(ctx context.Context, retailerID entity.RoleID) ([]*entity.RetailerRequest, error)
	ListByDealer(ctx context.Context, dealerID entity.RoleID) ([]*entity.RetailerRequest, error)
}
