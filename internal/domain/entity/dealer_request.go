package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DealerRequestStatus estado de una solicitud distribuidor → mayorista.
type DealerRequestStatus string

const (
	DealerRequestRequested DealerRequestStatus = "requested"
	DealerRequestAccepted  DealerRequestStatus = "accepted"
	DealerRequestRejected  DealerRequestStatus = "rejected"
)

// ParseDealerRequestStatus valida el estado recibido contra el conjunto cerrado.
func ParseDealerRequestStatus(s string) (DealerRequestStatus, bool) {
	switch st := DealerRequestStatus(s); st {
	case DealerRequestRequested, DealerRequestAccepted, DealerRequestRejected:
		return st, true
	}
	return "", false
}

// DealerRequest solicitud de un distribuidor a un mayorista por un artículo de su inventario.
type DealerRequest struct {
	ID               string
	DealerID         RoleID
	DealerEmail      string
	WholesalerRoleID RoleID
	WholesalerEmail  string
	ItemID           string
	ItemName         string
	Category         string
	RequestedQty     decimal.Decimal
	Unit             string
	Price            string
	Status           DealerRequestStatus
	CreatedAt        time.Time
}

// Settle construye la transacción financiera que genera la aceptación de la solicitud.
// total = ParsePrice(Price) × RequestedQty.
func (r *DealerRequest) Settle(id string, now time.Time) *Transaction {
	return &Transaction{
		ID:               id,
		WholesalerRoleID: r.WholesalerRoleID,
		DealerID:         r.DealerID,
		DealerEmail:      r.DealerEmail,
		ItemName:         r.ItemName,
		Category:         r.Category,
		Quantity:         r.RequestedQty,
		Unit:             r.Unit,
		Price:            r.Price,
		Total:            ParsePrice(r.Price).Mul(r.RequestedQty),
		PaymentStatus:    PaymentDue,
		Date:             now,
	}
}
