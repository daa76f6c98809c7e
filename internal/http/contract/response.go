package contract

import (
	"time"

	"github.com/marqueehq/marquee/internal/contract"
)

type contractResponse struct {
	ID               string                    `json:"id"`
	Type             contract.Type             `json:"type"`
	ContractNumber   string                    `json:"contract_number,omitempty"`
	OwnerUID         string                    `json:"owner_uid"`
	EventID          string                    `json:"event_id,omitempty"`
	EventName        string                    `json:"event_name,omitempty"`
	CounterpartyID   string                    `json:"counterparty_id"`
	CounterpartyName string                    `json:"counterparty_name"`
	PaymentDirection contract.PaymentDirection `json:"payment_direction"`
	PaymentStatus    contract.PaymentStatus    `json:"payment_status"`
	ContractValue    int64                     `json:"contract_value"`
	Currency         string                    `json:"currency"`
	PaidAt           *time.Time                `json:"paid_at,omitempty"`
	PaidBy           *string                   `json:"paid_by,omitempty"`
	Recurring        bool                      `json:"recurring"`
	Installments     int64                     `json:"installments,omitempty"`
	StartDate        time.Time                 `json:"start_date"`
	EndDate          *time.Time                `json:"end_date,omitempty"`
	Terms            string                    `json:"terms,omitempty"`
	Extras           map[string]any            `json:"extras,omitempty"`
	CreatedAt        time.Time                 `json:"created_at"`
	UpdatedAt        time.Time                 `json:"updated_at"`
}

func toResponse(c *contract.Contract) contractResponse {
	return contractResponse{
		ID:               c.ID,
		Type:             c.Type,
		ContractNumber:   c.ContractNumber,
		OwnerUID:         c.OwnerUID,
		EventID:          c.EventID,
		EventName:        c.EventName,
		CounterpartyID:   c.CounterpartyID,
		CounterpartyName: c.CounterpartyName,
		PaymentDirection: c.PaymentDirection,
		PaymentStatus:    c.PaymentStatus,
		ContractValue:    c.ContractValue,
		Currency:         c.Currency,
		PaidAt:           c.PaidAt,
		PaidBy:           c.PaidBy,
		Recurring:        c.Recurring,
		Installments:     c.Installments,
		StartDate:        c.StartDate,
		EndDate:          c.EndDate,
		Terms:            c.Terms,
		Extras:           c.Extras,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}

func toResponseList(cs []*contract.Contract) []contractResponse {
	resp := make([]contractResponse, len(cs))
	for i, c := range cs {
		resp[i] = toResponse(c)
	}

	return resp
}
