package supply

import (
	"github.com/jhoicas/agrochain-api/internal/application/dto"
	"github.com/jhoicas/agrochain-api/internal/domain/entity"
)

func toDealerRequestResponse(r *entity.DealerRequest) dto.DealerRequestResponse {
	return dto.DealerRequestResponse{
		ID:               r.ID,
		DealerID:         r.DealerID.String(),
		DealerEmail:      r.DealerEmail,
		WholesalerRoleID: r.WholesalerRoleID.String(),
		WholesalerEmail:  r.WholesalerEmail,
		ItemID:           r.ItemID,
		ItemName:         r.ItemName,
		Category:         r.Category,
		RequestedQty:     r.RequestedQty,
		Unit:             r.Unit,
		Price:            r.Price,
		Status:           string(r.Status),
		CreatedAt:        r.CreatedAt,
	}
}

func toDealerRequestResponses(reqs []*entity.DealerRequest) []dto.DealerRequestResponse {
	out := make([]dto.DealerRequestResponse, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, toDealerRequestResponse(r))
	}
	return out
}

func toDealerStockResponse(s *entity.DealerStock) dto.DealerStockResponse {
	return dto.DealerStockResponse{
		ID:              s.ID,
		DealerID:        s.DealerID.String(),
		DealerEmail:     s.DealerEmail,
		ItemName:        s.ItemName,
		Category:        s.Category,
		Quantity:        s.Quantity,
		Unit:            s.Unit,
		Price:           s.Price,
		DealerRequestID: s.DealerRequestID,
		CreatedAt:       s.CreatedAt,
	}
}

func toRetailerRequestResponse(r *entity.RetailerRequest) dto.RetailerRequestResponse {
	return dto.RetailerRequestResponse{
		ID:            r.ID,
		RetailerID:    r.RetailerID.String(),
		RetailerEmail: r.RetailerEmail,
		DealerID:      r.DealerID.String(),
		DealerEmail:   r.DealerEmail,
		DealerStockID: r.DealerStockID,
		ItemName:      r.ItemName,
		Category:      r.Category,
		RequestedQty:  r.RequestedQty,
		Unit:          r.Unit,
		Price:         r.Price,
		Status:        string(r.Status),
		CreatedAt:     r.CreatedAt,
	}
}

func toRetailerRequestResponses(reqs []*entity.RetailerRequest) []dto.RetailerRequestResponse {
	out := make([]dto.RetailerRequestResponse, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, toRetailerRequestResponse(r))
	}
	return out
}

func toTransactionResponse(t *entity.Transaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:               t.ID,
		WholesalerRoleID: t.WholesalerRoleID.String(),
		DealerID:         t.DealerID.String(),
		DealerEmail:      t.DealerEmail,
		ItemName:         t.ItemName,
		Category:         t.Category,
		Quantity:         t.Quantity,
		Unit:             t.Unit,
		Price:            t.Price,
		Total:            t.Total,
		PaymentStatus:    string(t.PaymentStatus),
		PaymentMethod:    t.PaymentMethod,
		Date:             t.Date,
	}
}
