package migrate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marqueehq/marquee/internal/contract"
	"github.com/marqueehq/marquee/internal/docstore"
)

func doc(id string, data map[string]any) docstore.Document {
	return docstore.Document{ID: id, Data: data}
}

func staticResolver(names map[string]string) NameResolver {
	return func(_ context.Context, id string) (string, error) {
		if name, ok := names[id]; ok {
			return name, nil
		}

		return "", errors.New("not found")
	}
}

func TestClientToCounterparty(t *testing.T) {
	tests := []struct {
		name    string
		data    map[string]any
		wantErr bool
		check   func(t *testing.T, out map[string]any)
	}{
		{
			name: "FullRecord",
			data: map[string]any{
				"name":        "Ana Costa",
				"email":       "ana@example.com",
				"clientType":  "company",
				"companyName": "Costa Events Lda",
				"taxId":       "123456789",
			},
			check: func(t *testing.T, out map[string]any) {
				assert.Equal(t, "client", out["type"])
				assert.Equal(t, "Ana Costa", out["name"])
				assert.Equal(t, "company", out["clientType"])
				assert.Equal(t, "Costa Events Lda", out["companyName"])
				assert.Equal(t, []string{}, out["tags"])
			},
		},
		{
			name: "ClientTypeInferredFromCompanyName",
			data: map[string]any{"name": "Acme", "companyName": "Acme GmbH"},
			check: func(t *testing.T, out map[string]any) {
				assert.Equal(t, "company", out["clientType"])
			},
		},
		{
			name: "ClientTypeDefaultsToIndividual",
			data: map[string]any{"name": "Bruno"},
			check: func(t *testing.T, out map[string]any) {
				assert.Equal(t, "individual", out["clientType"])
			},
		},
		{
			name:    "MissingName",
			data:    map[string]any{"email": "x@example.com"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := ClientToCounterparty(doc("legacy-1", tt.data))

			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			tt.check(t, out)
		})
	}
}

func TestLocationToCounterparty(t *testing.T) {
	out, err := LocationToCounterparty(doc("loc-1", map[string]any{
		"name":    "Pavilhao Azul",
		"address": "Av. Central 12",
	}))
	require.NoError(t, err)

	assert.Equal(t, "venue", out["type"])
	assert.Equal(t, "Pavilhao Azul", out["venueName"])
	assert.Equal(t, "Av. Central 12", out["venueAddress"])

	_, err = LocationToCounterparty(doc("loc-2", map[string]any{"address": "nowhere"}))
	require.Error(t, err)
}

func TestServiceContractFromLegacy_Defaults(t *testing.T) {
	eventIDs := map[string]string{"sc-1": "ev-42"}
	resolve := staticResolver(map[string]string{"cp-1": "Ana Costa"})

	out, err := ServiceContractFromLegacy(t.Context(), doc("sc-1", map[string]any{
		"eventName":      "Gala",
		"eventDate":      "2024-06-10",
		"counterpartyId": "cp-1",
		"value":          int64(120_000),
	}), eventIDs, resolve)
	require.NoError(t, err)

	assert.Equal(t, "service-provision", out["type"])
	assert.Equal(t, "ev-42", out["eventId"])
	assert.Equal(t, "Ana Costa", out["counterpartyName"])
	assert.Equal(t, "receivable", out["paymentDirection"])
	assert.Equal(t, "unpaid", out["paymentStatus"])
	assert.Equal(t, "EUR", out["currency"])
	assert.Equal(t, int64(120_000), out["contractValue"])
	assert.Nil(t, out["paidAt"])
	assert.Nil(t, out["paidBy"])
}

func TestContractFromLegacy_PaidStateNormalization(t *testing.T) {
	paidAt := time.Date(2024, time.May, 2, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		data       map[string]any
		wantStatus string
		wantNils   bool
	}{
		{
			name:       "PaidWithFullAuditPair",
			data:       map[string]any{"paidAt": paidAt, "paidBy": "uid-1"},
			wantStatus: "paid",
		},
		{
			name:       "PaidAtWithoutPaidBy",
			data:       map[string]any{"paidAt": paidAt},
			wantStatus: "unpaid",
			wantNils:   true,
		},
		{
			name:       "PaidByWithoutPaidAt",
			data:       map[string]any{"paidBy": "uid-1"},
			wantStatus: "unpaid",
			wantNils:   true,
		},
		{
			name:       "UnparseablePaidAt",
			data:       map[string]any{"paidAt": "soon", "paidBy": "uid-1"},
			wantStatus: "unpaid",
			wantNils:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := map[string]any{"eventName": "Gala", "eventDate": "2024-06-10"}
			for k, v := range tt.data {
				data[k] = v
			}

			out, err := EventPlanningContractFromLegacy(t.Context(), doc("ep-1", data), nil, staticResolver(nil))
			require.NoError(t, err)

			assert.Equal(t, tt.wantStatus, out["paymentStatus"])

			if tt.wantNils {
				assert.Nil(t, out["paidAt"])
				assert.Nil(t, out["paidBy"])
			} else {
				assert.Equal(t, paidAt, out["paidAt"])
				assert.Equal(t, "uid-1", out["paidBy"])
			}
		})
	}
}

func TestContractFromLegacy_LookupMissUsesSentinel(t *testing.T) {
	out, err := ServiceContractFromLegacy(t.Context(), doc("sc-1", map[string]any{
		"eventName":      "Gala",
		"eventDate":      "2024-06-10",
		"counterpartyId": "ghost",
	}), nil, staticResolver(nil))
	require.NoError(t, err)

	assert.Equal(t, contract.UnknownCounterpartyName, out["counterpartyName"])
	assert.Equal(t, "ghost", out["counterpartyId"])
}

func TestContractFromLegacy_MissingDateFails(t *testing.T) {
	_, err := ServiceContractFromLegacy(t.Context(), doc("sc-1", map[string]any{
		"eventName": "Gala",
	}), nil, staticResolver(nil))
	require.Error(t, err)
}
