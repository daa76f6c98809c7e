package payment

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("payment not found")

// Collection is the payments collection name.
const Collection = "payments"

// Direction mirrors the owning contract's payment direction.
type Direction string

const (
	DirectionReceivable Direction = "receivable"
	DirectionPayable    Direction = "payable"
)

// Status is the lifecycle state of a single due amount.
type Status string

const (
	StatusDue  Status = "due"
	StatusPaid Status = "paid"
)

// Payment records one due or paid amount tied to a contract: the whole
// contract value for one-time contracts, one installment for recurring
// ones.
type Payment struct {
	ID           string
	ContractID   string
	ContractType string
	Amount       int64 // cents
	Direction    Direction
	Status       Status
	DueDate      time.Time
	PaidAt       *time.Time
	PaidBy       *string
	CreatedAt    time.Time
}
