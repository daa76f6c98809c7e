package payment

import (
	"time"

	"github.com/marqueehq/marquee/internal/payment"
)

type paymentResponse struct {
	ID           string            `json:"id"`
	ContractID   string            `json:"contract_id"`
	ContractType string            `json:"contract_type"`
	Amount       int64             `json:"amount"`
	Direction    payment.Direction `json:"direction"`
	Status       payment.Status    `json:"status"`
	DueDate      time.Time         `json:"due_date"`
	PaidAt       *time.Time        `json:"paid_at,omitempty"`
	PaidBy       *string           `json:"paid_by,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
}

func toResponse(p *payment.Payment) paymentResponse {
	return paymentResponse{
		ID:           p.ID,
		ContractID:   p.ContractID,
		ContractType: p.ContractType,
		Amount:       p.Amount,
		Direction:    p.Direction,
		Status:       p.Status,
		DueDate:      p.DueDate,
		PaidAt:       p.PaidAt,
		PaidBy:       p.PaidBy,
		CreatedAt:    p.CreatedAt,
	}
}

func toResponseList(ps []*payment.Payment) []paymentResponse {
	resp := make([]paymentResponse, len(ps))
	for i, p := range ps {
		resp[i] = toResponse(p)
	}

	return resp
}
