package importcsv

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/marqueehq/marquee/internal/auth"
	"github.com/marqueehq/marquee/internal/contract"
	"github.com/marqueehq/marquee/internal/counterparty"
	"github.com/marqueehq/marquee/internal/importer"
)

type Handler struct {
	importSvc       *importer.Service
	contractSvc     *contract.Service
	counterpartySvc *counterparty.Service
}

func NewHandler(importSvc *importer.Service, contractSvc *contract.Service, counterpartySvc *counterparty.Service) *Handler {
	return &Handler{
		importSvc:       importSvc,
		contractSvc:     contractSvc,
		counterpartySvc: counterpartySvc,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
}

type contractSummary struct {
	ID               string    `json:"id"`
	Type             string    `json:"type"`
	CounterpartyName string    `json:"counterparty_name"`
	ContractValue    int64     `json:"contract_value"`
	StartDate        time.Time `json:"start_date"`
}

type importSuccessResponse struct {
	Imported  int               `json:"imported"`
	Skipped   int               `json:"skipped"`
	Contracts []contractSummary `json:"contracts"`
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	format := importer.Format(r.FormValue("format"))
	if format == "" {
		format = importer.FormatSheet
	}

	typ := contract.Type(r.FormValue("type"))
	if _, ok := contract.CollectionFor(typ); !ok {
		http.Error(w, "unknown contract type", http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	entries, err := h.importSvc.Import(format, file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp := importSuccessResponse{Contracts: []contractSummary{}}

	ownerUID := auth.UserID(r.Context())

	for _, entry := range entries {
		c, err := h.contractSvc.Save(r.Context(), contract.CreateParams{
			Type:             typ,
			OwnerUID:         ownerUID,
			CounterpartyID:   h.lookupCounterparty(r.Context(), entry.CounterpartyName),
			PaymentDirection: entry.Direction,
			ContractValue:    entry.Amount,
			Currency:         "EUR",
			StartDate:        entry.Date,
			Extras: map[string]any{
				"importedDescription": entry.Description,
				"importedEventName":   entry.EventName,
			},
		})
		if err != nil {
			slog.Error("importing ledger entry failed", "event", entry.EventName, "error", err)

			resp.Skipped++

			continue
		}

		resp.Imported++
		resp.Contracts = append(resp.Contracts, contractSummary{
			ID:               c.ID,
			Type:             string(c.Type),
			CounterpartyName: c.CounterpartyName,
			ContractValue:    c.ContractValue,
			StartDate:        c.StartDate,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// lookupCounterparty matches a ledger name against existing
// counterparties. An empty result means no match; the contract save
// then falls back to its unknown-counterparty sentinel.
func (h *Handler) lookupCounterparty(ctx context.Context, name string) string {
	if name == "" {
		return ""
	}

	cps, err := h.counterpartySvc.List(ctx, counterparty.ListFilter{})
	if err != nil {
		return ""
	}

	for _, cp := range cps {
		if strings.EqualFold(strings.TrimSpace(cp.Name), strings.TrimSpace(name)) {
			return cp.ID
		}
	}

	return ""
}
