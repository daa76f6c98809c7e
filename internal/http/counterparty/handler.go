package counterparty

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/marqueehq/marquee/internal/auth"
	"github.com/marqueehq/marquee/internal/counterparty"
)

type Handler struct {
	svc *counterparty.Service
}

func NewHandler(svc *counterparty.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type createCounterpartyRequest struct {
	Type    counterparty.Type `json:"type"`
	Name    string            `json:"name"`
	Email   string            `json:"email"`
	Phone   string            `json:"phone"`
	Address string            `json:"address"`
	Notes   string            `json:"notes"`
	Tags    []string          `json:"tags"`

	ClientType  string `json:"client_type"`
	CompanyName string `json:"company_name"`
	TaxID       string `json:"tax_id"`
	BankName    string `json:"bank_name"`
	BankAccount string `json:"bank_account"`

	VenueName    string `json:"venue_name"`
	VenueAddress string `json:"venue_address"`
	TaxCode      string `json:"tax_code"`
	Capacity     int64  `json:"capacity"`

	StageName string `json:"stage_name"`
	Genre     string `json:"genre"`

	ServiceKind    string `json:"service_kind"`
	SupplyCategory string `json:"supply_category"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createCounterpartyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	cp, err := h.svc.Create(r.Context(), counterparty.CreateParams{
		Type:           req.Type,
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		Address:        req.Address,
		OwnerUID:       auth.UserID(r.Context()),
		Notes:          req.Notes,
		Tags:           req.Tags,
		ClientType:     req.ClientType,
		CompanyName:    req.CompanyName,
		TaxID:          req.TaxID,
		BankName:       req.BankName,
		BankAccount:    req.BankAccount,
		VenueName:      req.VenueName,
		VenueAddress:   req.VenueAddress,
		TaxCode:        req.TaxCode,
		Capacity:       req.Capacity,
		StageName:      req.StageName,
		Genre:          req.Genre,
		ServiceKind:    req.ServiceKind,
		SupplyCategory: req.SupplyCategory,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(cp)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := counterparty.ListFilter{}

	if s := r.URL.Query().Get("type"); s != "" {
		filter.Type = new(counterparty.Type(s))
	}

	if s := r.URL.Query().Get("owner_uid"); s != "" {
		filter.OwnerUID = new(s)
	}

	cps, err := h.svc.List(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(cps)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	cp, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, counterparty.ErrNotFound) {
			http.Error(w, "counterparty not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(cp)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateCounterpartyRequest struct {
	Name    *string   `json:"name,omitempty"`
	Email   *string   `json:"email,omitempty"`
	Phone   *string   `json:"phone,omitempty"`
	Address *string   `json:"address,omitempty"`
	Notes   *string   `json:"notes,omitempty"`
	Tags    *[]string `json:"tags,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req updateCounterpartyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	cp, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, counterparty.ErrNotFound) {
			http.Error(w, "counterparty not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	if req.Name != nil {
		cp.Name = *req.Name
	}

	if req.Email != nil {
		cp.Email = *req.Email
	}

	if req.Phone != nil {
		cp.Phone = *req.Phone
	}

	if req.Address != nil {
		cp.Address = *req.Address
	}

	if req.Notes != nil {
		cp.Notes = *req.Notes
	}

	if req.Tags != nil {
		cp.Tags = *req.Tags
	}

	if err := h.svc.Update(r.Context(), cp); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(cp)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
