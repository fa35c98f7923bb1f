package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus estado de pago de una transacción.
type PaymentStatus string

const (
	PaymentDue  PaymentStatus = "due"
	PaymentDone PaymentStatus = "done"
)

// ParsePaymentStatus valida el estado de pago.
func ParsePaymentStatus(s string) (PaymentStatus, bool) {
	switch st := PaymentStatus(s); st {
	case PaymentDue, PaymentDone:
		return st, true
	}
	return "", false
}

// Transaction registro financiero creado al aceptar una DealerRequest.
// Inmutable salvo PaymentStatus y PaymentMethod.
type Transaction struct {
	ID               string
	WholesalerRoleID RoleID
	DealerID         RoleID
	DealerEmail      string
	ItemName         string
	Category         string
	Quantity         decimal.Decimal
	Unit             string
	Price            string
	Total            decimal.Decimal
	PaymentStatus    PaymentStatus
	PaymentMethod    string
	Date             time.Time
}
