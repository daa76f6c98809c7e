package contract

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a contract id does not exist in its
// type's collection.
var ErrNotFound = errors.New("contract not found")

// Type discriminates the concrete contract variants. Each variant is
// stored in its own collection.
type Type string

const (
	TypeServiceProvision Type = "service-provision"
	TypeEventPlanning    Type = "event-planning"
	TypeVenueRental      Type = "venue-rental"
	TypePerformerBooking Type = "performer-booking"
	TypeEquipmentRental  Type = "equipment-rental"
	TypeCatering         Type = "catering"
	TypeSponsorship      Type = "sponsorship"
	TypeStaffing         Type = "staffing"
)

var collections = map[Type]string{
	TypeServiceProvision: "serviceContracts",
	TypeEventPlanning:    "eventPlanningContracts",
	TypeVenueRental:      "venueRentalContracts",
	TypePerformerBooking: "performerBookingContracts",
	TypeEquipmentRental:  "equipmentRentalContracts",
	TypeCatering:         "cateringContracts",
	TypeSponsorship:      "sponsorshipContracts",
	TypeStaffing:         "staffingContracts",
}

// CollectionFor returns the collection a contract type is stored in;
// ok is false for unknown types.
func CollectionFor(t Type) (string, bool) {
	c, ok := collections[t]
	return c, ok
}

// Types lists every concrete contract type.
func Types() []Type {
	return []Type{
		TypeServiceProvision,
		TypeEventPlanning,
		TypeVenueRental,
		TypePerformerBooking,
		TypeEquipmentRental,
		TypeCatering,
		TypeSponsorship,
		TypeStaffing,
	}
}

// PaymentDirection says which way the money flows.
type PaymentDirection string

const (
	DirectionReceivable PaymentDirection = "receivable"
	DirectionPayable    PaymentDirection = "payable"
)

// PaymentStatus is the paid/unpaid state of a contract. The paidAt and
// paidBy audit pair is set exactly when the status is paid; both are
// cleared when it is unpaid.
type PaymentStatus string

const (
	StatusPaid   PaymentStatus = "paid"
	StatusUnpaid PaymentStatus = "unpaid"
)

// UnknownCounterpartyName is the denormalization sentinel written when
// the referenced counterparty cannot be resolved. The repair tooling
// looks for this value after the fact.
const UnknownCounterpartyName = "Unknown Client"

// Contract is the base shape shared by every variant. Variant-specific
// fields live in Extras and are flattened into the stored document.
type Contract struct {
	ID               string
	Type             Type
	ContractNumber   string
	OwnerUID         string
	EventID          string // empty when not attached to an event
	CounterpartyID   string
	CounterpartyName string // denormalized cache
	EventName        string // denormalized cache
	PaymentDirection PaymentDirection
	PaymentStatus    PaymentStatus
	ContractValue    int64 // cents
	Currency         string
	PaidAt           *time.Time
	PaidBy           *string
	Recurring        bool
	Installments     int64 // number of installments when recurring
	StartDate        time.Time
	EndDate          *time.Time
	Terms            string
	Extras           map[string]any
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
