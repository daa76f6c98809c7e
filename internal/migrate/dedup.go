package migrate

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/marqueehq/marquee/internal/contract"
	"github.com/marqueehq/marquee/internal/docstore"
	"github.com/marqueehq/marquee/internal/event"
)

// Candidate is one legacy contract's view of the event it belongs to.
type Candidate struct {
	ID               string
	EventName        string
	EventDate        time.Time
	LocationAddress  string
	OwnerUID         string
	ContractValue    int64
	PaymentDirection contract.PaymentDirection
}

// CandidateFromLegacy extracts the dedup candidate from a legacy
// contract document. Name and date are the grouping key, so a record
// missing either cannot be grouped and fails.
func CandidateFromLegacy(doc docstore.Document) (Candidate, error) {
	data := doc.Data

	name := firstString(data, "eventName", "event")
	if name == "" {
		return Candidate{}, fmt.Errorf("legacy contract %s has no event name", doc.ID)
	}

	date, ok := legacyDate(data, "eventDate", "startDate", "date")
	if !ok {
		return Candidate{}, fmt.Errorf("legacy contract %s has no event date", doc.ID)
	}

	direction := contract.PaymentDirection(firstString(data, "paymentDirection", "direction"))
	if direction == "" {
		direction = contract.DirectionReceivable
	}

	return Candidate{
		ID:               doc.ID,
		EventName:        name,
		EventDate:        date,
		LocationAddress:  firstString(data, "locationAddress", "location", "address"),
		OwnerUID:         firstString(data, "ownerUid", "owner", "uid"),
		ContractValue:    legacyInt64(data, "value", "contractValue", "amount"),
		PaymentDirection: direction,
	}, nil
}

// DedupResult maps each candidate to the event it was assigned and
// carries the events to be created.
type DedupResult struct {
	Assignments map[string]string // candidate id -> event id
	Events      []*event.Event
}

type eventBucket struct {
	ev    *event.Event
	dates []time.Time
}

// DedupCandidates groups contract candidates into events. A candidate
// joins the first existing bucket whose name matches and that already
// holds a date within one calendar day of the candidate's; otherwise it
// seeds a new bucket with a freshly minted event id.
//
// Matching is against any date in the bucket, so runs of consecutive
// days chain into a single event even when the run's endpoints are more
// than a day apart. That mirrors how the v1 data was grouped in
// production; re-grouping it differently would split events that
// already exist.
func DedupCandidates(candidates []Candidate) *DedupResult {
	result := &DedupResult{Assignments: make(map[string]string, len(candidates))}

	var buckets []*eventBucket

	for _, cand := range candidates {
		bucket := matchBucket(buckets, cand)

		if bucket == nil {
			bucket = &eventBucket{
				ev: &event.Event{
					ID:              uuid.NewString(),
					Name:            cand.EventName,
					EventDate:       cand.EventDate,
					LocationAddress: cand.LocationAddress,
					OwnerUID:        cand.OwnerUID,
					Status:          event.StatusPlanned,
				},
			}
			buckets = append(buckets, bucket)
			result.Events = append(result.Events, bucket.ev)
		}

		bucket.ev.ContractIDs = append(bucket.ev.ContractIDs, cand.ID)
		bucket.dates = append(bucket.dates, cand.EventDate)

		switch cand.PaymentDirection {
		case contract.DirectionPayable:
			bucket.ev.TotalPayable += cand.ContractValue
		default:
			bucket.ev.TotalReceivable += cand.ContractValue
		}

		bucket.ev.NetRevenue = bucket.ev.TotalReceivable - bucket.ev.TotalPayable

		result.Assignments[cand.ID] = bucket.ev.ID
	}

	return result
}

// matchBucket returns the first bucket the candidate belongs to.
// Buckets are not re-scored: the first hit in creation order wins.
func matchBucket(buckets []*eventBucket, cand Candidate) *eventBucket {
	for _, b := range buckets {
		if !strings.EqualFold(strings.TrimSpace(b.ev.Name), strings.TrimSpace(cand.EventName)) {
			continue
		}

		for _, d := range b.dates {
			if calendarDaysApart(d, cand.EventDate) <= 1 {
				return b
			}
		}
	}

	return nil
}

func calendarDaysApart(a, b time.Time) int {
	da := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	db := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)

	days := int(da.Sub(db) / (24 * time.Hour))
	if days < 0 {
		days = -days
	}

	return days
}
