package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// RetailerRequestStatus estado de una solicitud minorista → distribuidor.
type RetailerRequestStatus string

const (
	RetailerRequestRequested RetailerRequestStatus = "requested"
	RetailerRequestAccepted  RetailerRequestStatus = "accepted"
	RetailerRequestRejected  RetailerRequestStatus = "rejected"
	RetailerRequestCancelled RetailerRequestStatus = "cancelled"
)

// ParseRetailerStatusUpdate valida el estado destino de una actualización.
// "requested" solo se asigna al crear.
func ParseRetailerStatusUpdate(s string) (RetailerRequestStatus, bool) {
	switch st := RetailerRequestStatus(s); st {
	case RetailerRequestAccepted, RetailerRequestRejected, RetailerRequestCancelled:
		return st, true
	}
	return "", false
}

// RetailerRequest solicitud de un minorista sobre un registro concreto de DealerStock.
type RetailerRequest struct {
	ID            string
	RetailerID    RoleID
	RetailerEmail string
	DealerID      RoleID
	DealerEmail   string
	DealerStockID string
	ItemName      string
	Category      string
	RequestedQty  decimal.Decimal
	Unit          string
	Price         string
	Status        RetailerRequestStatus
	CreatedAt     time.Time
}
