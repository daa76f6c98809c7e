package contract

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/marqueehq/marquee/internal/auth"
	"github.com/marqueehq/marquee/internal/contract"
	"github.com/marqueehq/marquee/internal/event"
)

type Handler struct {
	svc    *contract.Service
	events *event.Service
}

func NewHandler(svc *contract.Service, events *event.Service) *Handler {
	return &Handler{svc: svc, events: events}
}

// Contracts live in one collection per type, so every single-document
// route carries the type discriminator in the path.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{type}/{id}", h.get)
	r.Patch("/{type}/{id}", h.update)
	r.Delete("/{type}/{id}", h.delete)
	r.Patch("/{type}/{id}/payment-status", h.setPaymentStatus)
	r.Post("/{type}/{id}/event", h.attachEvent)
	r.Delete("/{type}/{id}/event", h.detachEvent)
}

func contractType(r *http.Request) (contract.Type, bool) {
	typ := contract.Type(chi.URLParam(r, "type"))
	_, ok := contract.CollectionFor(typ)

	return typ, ok
}

type createContractRequest struct {
	Type             contract.Type             `json:"type"`
	ContractNumber   string                    `json:"contract_number"`
	EventID          string                    `json:"event_id"`
	CounterpartyID   string                    `json:"counterparty_id"`
	PaymentDirection contract.PaymentDirection `json:"payment_direction"`
	ContractValue    int64                     `json:"contract_value"`
	Currency         string                    `json:"currency"`
	Recurring        bool                      `json:"recurring"`
	Installments     int64                     `json:"installments"`
	StartDate        time.Time                 `json:"start_date"`
	EndDate          *time.Time                `json:"end_date,omitempty"`
	Terms            string                    `json:"terms"`
	Extras           map[string]any            `json:"extras,omitempty"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createContractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.CounterpartyID == "" {
		http.Error(w, "counterparty_id is required", http.StatusBadRequest)
		return
	}

	currency := req.Currency
	if currency == "" {
		currency = "EUR"
	}

	direction := req.PaymentDirection
	if direction == "" {
		direction = contract.DirectionReceivable
	}

	c, err := h.svc.Save(r.Context(), contract.CreateParams{
		Type:             req.Type,
		ContractNumber:   req.ContractNumber,
		OwnerUID:         auth.UserID(r.Context()),
		EventID:          req.EventID,
		CounterpartyID:   req.CounterpartyID,
		PaymentDirection: direction,
		ContractValue:    req.ContractValue,
		Currency:         currency,
		Recurring:        req.Recurring,
		Installments:     req.Installments,
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
		Terms:            req.Terms,
		Extras:           req.Extras,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if c.EventID != "" {
		if _, err := h.events.AttachContract(r.Context(), c.EventID, c); err != nil {
			slog.Error("attaching contract to event failed", "contractId", c.ID, "eventId", c.EventID, "error", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(c)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := contract.ListFilter{}

	if s := r.URL.Query().Get("type"); s != "" {
		typ := contract.Type(s)
		if _, ok := contract.CollectionFor(typ); !ok {
			http.Error(w, "unknown contract type", http.StatusBadRequest)
			return
		}

		filter.Types = []contract.Type{typ}
	}

	if s := r.URL.Query().Get("event_id"); s != "" {
		filter.EventID = new(s)
	}

	if s := r.URL.Query().Get("owner_uid"); s != "" {
		filter.OwnerUID = new(s)
	}

	if s := r.URL.Query().Get("payment_status"); s != "" {
		filter.PaymentStatus = new(contract.PaymentStatus(s))
	}

	cs, err := h.svc.List(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(cs)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	typ, ok := contractType(r)
	if !ok {
		http.Error(w, "unknown contract type", http.StatusBadRequest)
		return
	}

	c, err := h.svc.Get(r.Context(), typ, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, contract.ErrNotFound) {
			http.Error(w, "contract not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(c)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateContractRequest struct {
	ContractNumber *string        `json:"contract_number,omitempty"`
	ContractValue  *int64         `json:"contract_value,omitempty"`
	Currency       *string        `json:"currency,omitempty"`
	StartDate      *time.Time     `json:"start_date,omitempty"`
	EndDate        *time.Time     `json:"end_date,omitempty"`
	Terms          *string        `json:"terms,omitempty"`
	Extras         map[string]any `json:"extras,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	typ, ok := contractType(r)
	if !ok {
		http.Error(w, "unknown contract type", http.StatusBadRequest)
		return
	}

	var req updateContractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	c, err := h.svc.Get(r.Context(), typ, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, contract.ErrNotFound) {
			http.Error(w, "contract not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	if req.ContractNumber != nil {
		c.ContractNumber = *req.ContractNumber
	}

	if req.ContractValue != nil {
		c.ContractValue = *req.ContractValue
	}

	if req.Currency != nil {
		c.Currency = *req.Currency
	}

	if req.StartDate != nil {
		c.StartDate = *req.StartDate
	}

	if req.EndDate != nil {
		c.EndDate = req.EndDate
	}

	if req.Extras != nil {
		c.Extras = req.Extras
	}

	if req.Terms != nil {
		c.Terms = *req.Terms
	}

	if err := h.svc.Update(r.Context(), c); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(c)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type paymentStatusRequest struct {
	Paid bool `json:"paid"`
}

func (h *Handler) setPaymentStatus(w http.ResponseWriter, r *http.Request) {
	typ, ok := contractType(r)
	if !ok {
		http.Error(w, "unknown contract type", http.StatusBadRequest)
		return
	}

	var req paymentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	c, err := h.svc.SetPaymentStatus(r.Context(), typ, chi.URLParam(r, "id"), req.Paid, auth.UserID(r.Context()))
	if err != nil {
		if errors.Is(err, contract.ErrNotFound) {
			http.Error(w, "contract not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(c)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type attachEventRequest struct {
	EventID string `json:"event_id"`
}

func (h *Handler) attachEvent(w http.ResponseWriter, r *http.Request) {
	typ, ok := contractType(r)
	if !ok {
		http.Error(w, "unknown contract type", http.StatusBadRequest)
		return
	}

	var req attachEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ev, err := h.events.Get(r.Context(), req.EventID)
	if err != nil {
		if errors.Is(err, event.ErrNotFound) {
			http.Error(w, "event not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	c, err := h.svc.AttachEvent(r.Context(), typ, chi.URLParam(r, "id"), ev.ID, ev.Name)
	if err != nil {
		if errors.Is(err, contract.ErrNotFound) {
			http.Error(w, "contract not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	if _, err := h.events.AttachContract(r.Context(), ev.ID, c); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(c)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) detachEvent(w http.ResponseWriter, r *http.Request) {
	typ, ok := contractType(r)
	if !ok {
		http.Error(w, "unknown contract type", http.StatusBadRequest)
		return
	}

	c, err := h.svc.Get(r.Context(), typ, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, contract.ErrNotFound) {
			http.Error(w, "contract not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	if c.EventID != "" {
		if _, err := h.events.DetachContract(r.Context(), c.EventID, c); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}

	c, err = h.svc.DetachEvent(r.Context(), typ, c.ID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(c)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	typ, ok := contractType(r)
	if !ok {
		http.Error(w, "unknown contract type", http.StatusBadRequest)
		return
	}

	// Back the contract's value out of its event before the cascade.
	c, err := h.svc.Get(r.Context(), typ, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, contract.ErrNotFound) {
			http.Error(w, "contract not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	if c.EventID != "" {
		if _, err := h.events.DetachContract(r.Context(), c.EventID, c); err != nil {
			slog.Error("detaching contract from event failed", "contractId", c.ID, "eventId", c.EventID, "error", err)
		}
	}

	if err := h.svc.Delete(r.Context(), typ, c.ID); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
