package repair

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marqueehq/marquee/internal/counterparty"
	"github.com/marqueehq/marquee/internal/docstore"
)

func seedDrifted(t *testing.T, db *docstore.MemoryStore) {
	t.Helper()

	ctx := t.Context()

	// A client with a stray venue field, no clientType and null tags.
	_, err := db.Create(ctx, counterparty.Collection, "cp-1", map[string]any{
		"type":      "client",
		"name":      "Ana Costa",
		"venueName": "should not be here",
		"tags":      nil,
	})
	require.NoError(t, err)

	// A venue missing timestamps.
	_, err = db.Create(ctx, counterparty.Collection, "cp-2", map[string]any{
		"type":      "venue",
		"name":      "Pavilhao Azul",
		"venueName": "Pavilhao Azul",
		"ownerUid":  "uid-1",
		"tags":      []string{"outdoor"},
	})
	require.NoError(t, err)

	// Already clean.
	_, err = db.Create(ctx, counterparty.Collection, "cp-3", map[string]any{
		"type":      "supplier",
		"name":      "Luzes & Som",
		"ownerUid":  "uid-1",
		"tags":      []string{},
		"createdAt": time.Now().UTC(),
		"updatedAt": time.Now().UTC(),
	})
	require.NoError(t, err)
}

func TestRunner_RepairsDriftedDocuments(t *testing.T) {
	ctx := t.Context()
	db := docstore.NewMemory()
	seedDrifted(t, db)

	report, err := NewRunner(db).Run(ctx, false)
	require.NoError(t, err)
	require.True(t, report.Ok())
	require.Len(t, report.Stages, 4)

	repaired, err := db.Get(ctx, counterparty.Collection, "cp-1")
	require.NoError(t, err)

	assert.NotContains(t, repaired.Data, "venueName")
	assert.Equal(t, counterparty.DefaultClientType, repaired.Data["clientType"])
	assert.Equal(t, []string{}, repaired.Data["tags"])
	assert.NotNil(t, repaired.Data["createdAt"])
	assert.NotNil(t, repaired.Data["updatedAt"])

	venue, err := db.Get(ctx, counterparty.Collection, "cp-2")
	require.NoError(t, err)
	assert.NotNil(t, venue.Data["createdAt"])
	assert.Equal(t, []string{"outdoor"}, venue.Data["tags"])
}

func TestRunner_SecondRunIsAFixedPoint(t *testing.T) {
	ctx := t.Context()
	db := docstore.NewMemory()
	seedDrifted(t, db)

	_, err := NewRunner(db).Run(ctx, false)
	require.NoError(t, err)

	writesAfterFirst := db.Writes

	report, err := NewRunner(db).Run(ctx, false)
	require.NoError(t, err)

	assert.True(t, report.Ok())
	assert.Equal(t, writesAfterFirst, db.Writes)
}

func TestRunner_DryRunWritesNothing(t *testing.T) {
	db := docstore.NewMemory()
	seedDrifted(t, db)

	seedWrites := db.Writes

	report, err := NewRunner(db).Run(t.Context(), true)
	require.NoError(t, err)

	assert.True(t, report.DryRun)
	assert.Equal(t, seedWrites, db.Writes)
}

func TestRunner_UnknownTypeIsReported(t *testing.T) {
	ctx := t.Context()
	db := docstore.NewMemory()

	_, err := db.Create(ctx, counterparty.Collection, "cp-odd", map[string]any{
		"type": "mystery",
		"name": "???",
	})
	require.NoError(t, err)

	report, err := NewRunner(db).Run(ctx, false)
	require.NoError(t, err)

	assert.False(t, report.Ok())

	// Only the schema-bound operations fail; array normalization and
	// timestamp backfill do not care about the type.
	assert.Equal(t, 1, report.Stages[0].Result.Failed)
	assert.Equal(t, 1, report.Stages[1].Result.Failed)
	assert.Zero(t, report.Stages[2].Result.Failed)
	assert.Zero(t, report.Stages[3].Result.Failed)
}

func TestOpsAreCommutative(t *testing.T) {
	run := func(ops []Op) map[string]any {
		ctx := t.Context()
		db := docstore.NewMemory()

		_, err := db.Create(ctx, counterparty.Collection, "cp-1", map[string]any{
			"type":      "client",
			"name":      "Ana",
			"venueName": "stray",
			"tags":      nil,
		})
		require.NoError(t, err)

		runner := NewRunner(db)
		for _, op := range ops {
			_, err := runner.runOp(ctx, op, false)
			require.NoError(t, err)
		}

		doc, err := db.Get(ctx, counterparty.Collection, "cp-1")
		require.NoError(t, err)

		// Timestamps differ between runs; compare the rest.
		delete(doc.Data, "createdAt")
		delete(doc.Data, "updatedAt")

		return doc.Data
	}

	ops := Ops()
	reversed := make([]Op, 0, len(ops))
	for i := len(ops) - 1; i >= 0; i-- {
		reversed = append(reversed, ops[i])
	}

	assert.Equal(t, run(ops), run(reversed))
}
