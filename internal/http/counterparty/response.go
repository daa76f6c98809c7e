package counterparty

import (
	"time"

	"github.com/marqueehq/marquee/internal/counterparty"
)

type counterpartyResponse struct {
	ID       string            `json:"id"`
	Type     counterparty.Type `json:"type"`
	Name     string            `json:"name"`
	Email    string            `json:"email,omitempty"`
	Phone    string            `json:"phone,omitempty"`
	Address  string            `json:"address,omitempty"`
	OwnerUID string            `json:"owner_uid"`
	Notes    string            `json:"notes,omitempty"`
	Tags     []string          `json:"tags"`

	ClientType  string `json:"client_type,omitempty"`
	CompanyName string `json:"company_name,omitempty"`
	TaxID       string `json:"tax_id,omitempty"`
	BankName    string `json:"bank_name,omitempty"`
	BankAccount string `json:"bank_account,omitempty"`

	VenueName    string `json:"venue_name,omitempty"`
	VenueAddress string `json:"venue_address,omitempty"`
	TaxCode      string `json:"tax_code,omitempty"`
	Capacity     int64  `json:"capacity,omitempty"`

	StageName string `json:"stage_name,omitempty"`
	Genre     string `json:"genre,omitempty"`

	ServiceKind    string `json:"service_kind,omitempty"`
	SupplyCategory string `json:"supply_category,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toResponse(cp *counterparty.Counterparty) counterpartyResponse {
	tags := cp.Tags
	if tags == nil {
		tags = []string{}
	}

	return counterpartyResponse{
		ID:             cp.ID,
		Type:           cp.Type,
		Name:           cp.Name,
		Email:          cp.Email,
		Phone:          cp.Phone,
		Address:        cp.Address,
		OwnerUID:       cp.OwnerUID,
		Notes:          cp.Notes,
		Tags:           tags,
		ClientType:     cp.ClientType,
		CompanyName:    cp.CompanyName,
		TaxID:          cp.TaxID,
		BankName:       cp.BankName,
		BankAccount:    cp.BankAccount,
		VenueName:      cp.VenueName,
		VenueAddress:   cp.VenueAddress,
		TaxCode:        cp.TaxCode,
		Capacity:       cp.Capacity,
		StageName:      cp.StageName,
		Genre:          cp.Genre,
		ServiceKind:    cp.ServiceKind,
		SupplyCategory: cp.SupplyCategory,
		CreatedAt:      cp.CreatedAt,
		UpdatedAt:      cp.UpdatedAt,
	}
}

func toResponseList(cps []*counterparty.Counterparty) []counterpartyResponse {
	resp := make([]counterpartyResponse, len(cps))
	for i, cp := range cps {
		resp[i] = toResponse(cp)
	}

	return resp
}
