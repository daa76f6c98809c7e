package event

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("event not found")

// Collection is the events collection name.
const Collection = "events"

// Status of an event grouping.
type Status string

const (
	StatusPlanned   Status = "planned"
	StatusConfirmed Status = "confirmed"
	StatusDone      Status = "done"
	StatusCancelled Status = "cancelled"
)

// Event groups the contracts that belong to one real-world event. The
// financial rollups are maintained on attach/detach and always equal
// the sum of the attached contracts' values partitioned by payment
// direction.
type Event struct {
	ID              string
	Name            string
	EventDate       time.Time
	LocationAddress string
	OwnerUID        string
	ContractIDs     []string
	Status          Status

	TotalReceivable int64
	TotalPayable    int64
	NetRevenue      int64

	CreatedAt time.Time
	UpdatedAt time.Time
}
