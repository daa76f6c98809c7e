package docstore_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marqueehq/marquee/internal/docstore"
)

func TestMemoryBatch_MixedOps(t *testing.T) {
	ctx := t.Context()
	db := docstore.NewMemory()

	_, err := db.Create(ctx, "payments", "pm-1", map[string]any{"amount": int64(100)})
	require.NoError(t, err)

	batch := db.Batch()
	batch.Create("payments", "pm-2", map[string]any{"amount": int64(200)})
	batch.Delete("payments", "pm-1")
	require.NoError(t, batch.Commit(ctx))

	_, err = db.Get(ctx, "payments", "pm-1")
	assert.ErrorIs(t, err, docstore.ErrNotFound)

	doc, err := db.Get(ctx, "payments", "pm-2")
	require.NoError(t, err)
	assert.Equal(t, int64(200), doc.Data["amount"])
}

func TestMemoryBatch_NilDataCreateIsNotADelete(t *testing.T) {
	ctx := t.Context()
	db := docstore.NewMemory()

	_, err := db.Create(ctx, "payments", "pm-1", map[string]any{"amount": int64(100)})
	require.NoError(t, err)

	batch := db.Batch()
	batch.Create("payments", "pm-1", nil)
	require.NoError(t, batch.Commit(ctx))

	// The document is overwritten empty, not removed.
	doc, err := db.Get(ctx, "payments", "pm-1")
	require.NoError(t, err)
	assert.Empty(t, doc.Data)
}
