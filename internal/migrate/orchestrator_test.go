package migrate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marqueehq/marquee/internal/counterparty"
	"github.com/marqueehq/marquee/internal/docstore"
	eventpkg "github.com/marqueehq/marquee/internal/event"
)

func seedLegacy(t *testing.T, db *docstore.MemoryStore) {
	t.Helper()

	ctx := t.Context()

	clients := map[string]map[string]any{
		"cl-1": {"name": "Ana Costa", "email": "ana@example.com"},
		"cl-2": {"name": "Costa Events Lda", "companyName": "Costa Events Lda"},
		"cl-3": {"name": "Bruno Alves"},
	}
	for id, data := range clients {
		_, err := db.Create(ctx, LegacyClients, id, data)
		require.NoError(t, err)
	}

	locations := map[string]map[string]any{
		"lo-1": {"name": "Pavilhao Azul", "address": "Av. Central 12"},
		"lo-2": {"name": "Quinta do Rio", "address": "Estrada Velha 4"},
	}
	for id, data := range locations {
		_, err := db.Create(ctx, LegacyLocations, id, data)
		require.NoError(t, err)
	}

	// sc-1 and sc-2 share the event; ep-1 joins sc-4's event via an
	// adjacent date.
	contracts := []struct {
		id   string
		data map[string]any
	}{
		{"sc-1", map[string]any{
			"contractKind": "service", "eventName": "Summer Gala",
			"eventDate": "2024-06-10", "counterpartyId": "cl-1",
			"value": int64(200_000),
		}},
		{"sc-2", map[string]any{
			"contractKind": "service", "eventName": "Summer Gala",
			"eventDate": "2024-06-10", "counterpartyId": "cl-2",
			"value": int64(50_000), "paymentDirection": "payable",
		}},
		{"sc-3", map[string]any{
			"contractKind": "service", "eventName": "Autumn Fair",
			"eventDate": "2024-09-01", "counterpartyId": "ghost",
			"value": int64(80_000),
		}},
		{"sc-4", map[string]any{
			"contractKind": "service", "eventName": "Winter Ball",
			"eventDate": "2024-12-05", "counterpartyId": "cl-3",
			"value": int64(120_000),
		}},
		{"ep-1", map[string]any{
			"contractKind": "event-planning", "eventName": "Winter Ball",
			"eventDate": "2024-12-06", "counterpartyId": "cl-1",
			"value": int64(300_000),
		}},
	}
	for _, c := range contracts {
		_, err := db.Create(ctx, LegacyContracts, c.id, c.data)
		require.NoError(t, err)
	}
}

func TestOrchestrator_EndToEnd(t *testing.T) {
	ctx := t.Context()
	db := docstore.NewMemory()
	seedLegacy(t, db)

	report, err := NewOrchestrator(db).Run(ctx, false)
	require.NoError(t, err)

	require.True(t, report.Ok())
	require.Len(t, report.Stages, 5)

	for _, stage := range report.Stages {
		assert.True(t, stage.Ran, stage.Stage)
		assert.Zero(t, stage.Result.Failed, stage.Stage)
	}

	// Clients and locations land in one collection with their ids
	// preserved.
	counterparties, err := db.List(ctx, counterparty.Collection)
	require.NoError(t, err)
	require.Len(t, counterparties, 5)

	ana, err := db.Get(ctx, counterparty.Collection, "cl-1")
	require.NoError(t, err)
	assert.Equal(t, "client", ana.Data["type"])
	assert.Equal(t, "Ana Costa", ana.Data["name"])

	venue, err := db.Get(ctx, counterparty.Collection, "lo-1")
	require.NoError(t, err)
	assert.Equal(t, "venue", venue.Data["type"])
	assert.Equal(t, "Pavilhao Azul", venue.Data["venueName"])

	// Five contracts collapse into three events.
	events, err := db.List(ctx, eventpkg.Collection)
	require.NoError(t, err)
	require.Len(t, events, 3)

	byName := make(map[string]docstore.Document)
	for _, ev := range events {
		byName[ev.Data["name"].(string)] = ev
	}

	gala := byName["Summer Gala"]
	assert.ElementsMatch(t, []string{"sc-1", "sc-2"}, gala.Data["contractIds"])
	assert.Equal(t, int64(200_000), gala.Data["totalReceivable"])
	assert.Equal(t, int64(50_000), gala.Data["totalPayable"])
	assert.Equal(t, int64(150_000), gala.Data["netRevenue"])

	ball := byName["Winter Ball"]
	assert.ElementsMatch(t, []string{"sc-4", "ep-1"}, ball.Data["contractIds"])

	// Contracts keep their ids and point at their assigned events.
	sc1, err := db.Get(ctx, "serviceContracts", "sc-1")
	require.NoError(t, err)
	sc2, err := db.Get(ctx, "serviceContracts", "sc-2")
	require.NoError(t, err)
	sc3, err := db.Get(ctx, "serviceContracts", "sc-3")
	require.NoError(t, err)
	sc4, err := db.Get(ctx, "serviceContracts", "sc-4")
	require.NoError(t, err)
	ep1, err := db.Get(ctx, "eventPlanningContracts", "ep-1")
	require.NoError(t, err)

	assert.Equal(t, gala.ID, sc1.Data["eventId"])
	assert.Equal(t, gala.ID, sc2.Data["eventId"])
	assert.Equal(t, byName["Autumn Fair"].ID, sc3.Data["eventId"])
	assert.Equal(t, ball.ID, sc4.Data["eventId"])
	assert.Equal(t, ball.ID, ep1.Data["eventId"])

	// Name denormalization, with the lookup-miss sentinel for sc-3.
	assert.Equal(t, "Ana Costa", sc1.Data["counterpartyName"])
	assert.Equal(t, "Unknown Client", sc3.Data["counterpartyName"])
}

func TestOrchestrator_DryRunWritesNothing(t *testing.T) {
	db := docstore.NewMemory()
	seedLegacy(t, db)

	seedWrites := db.Writes

	report, err := NewOrchestrator(db).Run(t.Context(), true)
	require.NoError(t, err)

	assert.True(t, report.DryRun)
	assert.True(t, report.Ok())
	assert.Equal(t, seedWrites, db.Writes)

	for _, stage := range report.Stages {
		assert.True(t, stage.Ran, stage.Stage)
	}

	// Counts match what a live run would process.
	assert.Equal(t, 3, report.Stages[0].Result.Total)
	assert.Equal(t, 2, report.Stages[1].Result.Total)
	assert.Equal(t, 5, report.Stages[2].Result.Total)
	assert.Equal(t, 4, report.Stages[3].Result.Total)
	assert.Equal(t, 1, report.Stages[4].Result.Total)

	// A dry run leaves the source untouched, so running it again
	// reports the exact same counts.
	again, err := NewOrchestrator(db).Run(t.Context(), true)
	require.NoError(t, err)
	require.Len(t, again.Stages, len(report.Stages))

	for i, stage := range report.Stages {
		assert.Equal(t, stage.Result.Total, again.Stages[i].Result.Total, stage.Stage)
		assert.Equal(t, stage.Result.Successful, again.Stages[i].Result.Successful, stage.Stage)
		assert.Equal(t, stage.Result.Failed, again.Stages[i].Result.Failed, stage.Stage)
	}

	assert.Equal(t, seedWrites, db.Writes)
}

func TestOrchestrator_LiveRunAbortsAfterFailingStage(t *testing.T) {
	ctx := t.Context()
	db := docstore.NewMemory()
	seedLegacy(t, db)

	// A nameless client fails stage one without aborting it.
	_, err := db.Create(ctx, LegacyClients, "cl-bad", map[string]any{"email": "x@example.com"})
	require.NoError(t, err)

	report, err := NewOrchestrator(db).Run(ctx, false)
	require.NoError(t, err)

	assert.True(t, report.Aborted)
	assert.False(t, report.Ok())
	assert.Equal(t, 1, report.TotalFailed)
	require.Len(t, report.Stages, 5)

	first := report.Stages[0]
	assert.True(t, first.Ran)
	assert.Equal(t, 4, first.Result.Total)
	assert.Equal(t, 3, first.Result.Successful)
	require.Len(t, first.Result.Errors, 1)
	assert.Equal(t, "cl-bad", first.Result.Errors[0].ID)

	for _, stage := range report.Stages[1:] {
		assert.False(t, stage.Ran, stage.Stage)
		assert.Nil(t, stage.Result, stage.Stage)
	}

	// No rollback: the three good clients stay written.
	counterparties, err := db.List(ctx, counterparty.Collection)
	require.NoError(t, err)
	assert.Len(t, counterparties, 3)
}

func TestOrchestrator_DryRunContinuesPastFailures(t *testing.T) {
	ctx := t.Context()
	db := docstore.NewMemory()
	seedLegacy(t, db)

	_, err := db.Create(ctx, LegacyClients, "cl-bad", map[string]any{})
	require.NoError(t, err)

	seedWrites := db.Writes

	report, err := NewOrchestrator(db).Run(ctx, true)
	require.NoError(t, err)

	assert.False(t, report.Aborted)
	assert.Equal(t, 1, report.TotalFailed)
	assert.Equal(t, seedWrites, db.Writes)

	for _, stage := range report.Stages {
		assert.True(t, stage.Ran, stage.Stage)
	}
}

func TestOrchestrator_StageFatalErrorPropagates(t *testing.T) {
	db := docstore.NewMemory()

	// Empty store: stages run over empty collections without error, so
	// a fatal error needs a failing gateway.
	report, err := NewOrchestrator(failingGateway{MemoryStore: db}).Run(context.Background(), false)
	require.Error(t, err)
	assert.Nil(t, report)
	assert.Contains(t, err.Error(), StageClients)
}

type failingGateway struct {
	*docstore.MemoryStore
}

func (failingGateway) List(context.Context, string) ([]docstore.Document, error) {
	return nil, assert.AnError
}
