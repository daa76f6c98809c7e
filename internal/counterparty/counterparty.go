package counterparty

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a counterparty id does not exist.
var ErrNotFound = errors.New("counterparty not found")

// Collection is the target collection name.
const Collection = "counterparties"

// Type discriminates the kinds of external parties a contract can name.
type Type string

const (
	TypeClient          Type = "client"
	TypeVenue           Type = "venue"
	TypePerformer       Type = "performer"
	TypeServiceProvider Type = "service-provider"
	TypeSupplier        Type = "supplier"
)

// Counterparty is any external party to a contract. Which of the
// type-specific fields are stored is governed by the schema for Type;
// see schema.go.
type Counterparty struct {
	ID       string
	Type     Type
	Name     string
	Email    string
	Phone    string
	Address  string
	OwnerUID string
	Notes    string
	Tags     []string

	// Client fields.
	ClientType  string
	CompanyName string
	TaxID       string
	BankName    string
	BankAccount string

	// Venue fields.
	VenueName    string
	VenueAddress string
	TaxCode      string
	Capacity     int64

	// Performer fields.
	StageName string
	Genre     string

	// Service-provider fields.
	ServiceKind string

	// Supplier fields.
	SupplyCategory string

	CreatedAt time.Time
	UpdatedAt time.Time
}
