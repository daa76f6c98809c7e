package migrate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marqueehq/marquee/internal/contract"
)

func day(d int) time.Time {
	return time.Date(2024, time.June, d, 0, 0, 0, 0, time.UTC)
}

func TestDedupCandidates_GroupsSameNameWithinOneDay(t *testing.T) {
	candidates := []Candidate{
		{ID: "c1", EventName: "Summer Gala", EventDate: day(10), ContractValue: 200_000, PaymentDirection: contract.DirectionReceivable},
		{ID: "c2", EventName: "summer gala ", EventDate: day(11), ContractValue: 50_000, PaymentDirection: contract.DirectionPayable},
		{ID: "c3", EventName: "Summer Gala", EventDate: day(20), ContractValue: 80_000, PaymentDirection: contract.DirectionReceivable},
		{ID: "c4", EventName: "Autumn Fair", EventDate: day(10), ContractValue: 30_000, PaymentDirection: contract.DirectionReceivable},
	}

	result := DedupCandidates(candidates)

	require.Len(t, result.Events, 3)

	assert.Equal(t, result.Assignments["c1"], result.Assignments["c2"])
	assert.NotEqual(t, result.Assignments["c1"], result.Assignments["c3"])
	assert.NotEqual(t, result.Assignments["c1"], result.Assignments["c4"])

	gala := result.Events[0]
	assert.Equal(t, "Summer Gala", gala.Name)
	assert.Equal(t, []string{"c1", "c2"}, gala.ContractIDs)
	assert.Equal(t, int64(200_000), gala.TotalReceivable)
	assert.Equal(t, int64(50_000), gala.TotalPayable)
	assert.Equal(t, int64(150_000), gala.NetRevenue)
}

func TestDedupCandidates_ChainsConsecutiveDays(t *testing.T) {
	candidates := []Candidate{
		{ID: "c1", EventName: "Festival", EventDate: day(1), PaymentDirection: contract.DirectionReceivable},
		{ID: "c2", EventName: "Festival", EventDate: day(2), PaymentDirection: contract.DirectionReceivable},
		{ID: "c3", EventName: "Festival", EventDate: day(3), PaymentDirection: contract.DirectionReceivable},
	}

	result := DedupCandidates(candidates)

	// Day 3 is two days from day 1 but one day from day 2, which is
	// already in the bucket, so the run collapses into a single event.
	require.Len(t, result.Events, 1)
	assert.Equal(t, []string{"c1", "c2", "c3"}, result.Events[0].ContractIDs)
}

func TestDedupCandidates_MintsDistinctEventIDs(t *testing.T) {
	candidates := []Candidate{
		{ID: "c1", EventName: "A", EventDate: day(1)},
		{ID: "c2", EventName: "B", EventDate: day(1)},
	}

	result := DedupCandidates(candidates)

	require.Len(t, result.Events, 2)
	assert.NotEmpty(t, result.Events[0].ID)
	assert.NotEmpty(t, result.Events[1].ID)
	assert.NotEqual(t, result.Events[0].ID, result.Events[1].ID)
	assert.NotEqual(t, "c1", result.Events[0].ID)
}

func TestCandidateFromLegacy_RequiresNameAndDate(t *testing.T) {
	tests := []struct {
		name string
		data map[string]any
	}{
		{name: "MissingName", data: map[string]any{"eventDate": day(1)}},
		{name: "MissingDate", data: map[string]any{"eventName": "Gala"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CandidateFromLegacy(doc("c1", tt.data))
			require.Error(t, err)
		})
	}
}
