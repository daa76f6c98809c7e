package event

import (
	"time"

	"github.com/marqueehq/marquee/internal/event"
)

type eventResponse struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	EventDate       time.Time    `json:"event_date"`
	LocationAddress string       `json:"location_address,omitempty"`
	OwnerUID        string       `json:"owner_uid"`
	ContractIDs     []string     `json:"contract_ids"`
	Status          event.Status `json:"status"`
	TotalReceivable int64        `json:"total_receivable"`
	TotalPayable    int64        `json:"total_payable"`
	NetRevenue      int64        `json:"net_revenue"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

func toResponse(ev *event.Event) eventResponse {
	contractIDs := ev.ContractIDs
	if contractIDs == nil {
		contractIDs = []string{}
	}

	return eventResponse{
		ID:              ev.ID,
		Name:            ev.Name,
		EventDate:       ev.EventDate,
		LocationAddress: ev.LocationAddress,
		OwnerUID:        ev.OwnerUID,
		ContractIDs:     contractIDs,
		Status:          ev.Status,
		TotalReceivable: ev.TotalReceivable,
		TotalPayable:    ev.TotalPayable,
		NetRevenue:      ev.NetRevenue,
		CreatedAt:       ev.CreatedAt,
		UpdatedAt:       ev.UpdatedAt,
	}
}

func toResponseList(evs []*event.Event) []eventResponse {
	resp := make([]eventResponse, len(evs))
	for i, ev := range evs {
		resp[i] = toResponse(ev)
	}

	return resp
}
