package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DealerStock inventario de reventa de un distribuidor.
// Clave compuesta: (DealerID, ItemName, Category, Unit).
type DealerStock struct {
	ID              string
	DealerID        RoleID
	DealerEmail     string
	ItemName        string
	Category        string
	Quantity        decimal.Decimal
	Unit            string
	Price           string
	DealerRequestID *string // solicitud que originó el stock, si aplica
	CreatedAt       time.Time
}

// StockKey clave compuesta del upsert.
type StockKey struct {
	DealerID RoleID
	ItemName string
	Category string
	Unit     string
}

// Key devuelve la clave compuesta del registro.
func (s *DealerStock) Key() StockKey {
	return StockKey{DealerID: s.DealerID, ItemName: s.ItemName, Category: s.Category, Unit: s.Unit}
}
