package contract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/marqueehq/marquee/internal/payment"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=contract
type Repository interface {
	Create(ctx context.Context, c *Contract) error
	Get(ctx context.Context, typ Type, id string) (*Contract, error)
	List(ctx context.Context, filter ListFilter) ([]*Contract, error)
	Update(ctx context.Context, c *Contract) error
	Delete(ctx context.Context, typ Type, id string) error
}

// Payments is the slice of the payment repository the contract service
// needs for the save-time schedule and the delete cascade.
type Payments interface {
	Create(ctx context.Context, p *payment.Payment) error
	ListByContract(ctx context.Context, contractID string) ([]*payment.Payment, error)
	Update(ctx context.Context, p *payment.Payment) error
	DeleteByContract(ctx context.Context, contractID string) error
}

// Directory resolves counterparty ids to display names for the
// denormalized cache fields.
type Directory interface {
	CounterpartyName(ctx context.Context, id string) (string, error)
}

type Service struct {
	repo      Repository
	payments  Payments
	directory Directory
}

func NewService(repo Repository, payments Payments, directory Directory) *Service {
	return &Service{repo: repo, payments: payments, directory: directory}
}

type ListFilter struct {
	Types         []Type // empty means all types
	EventID       *string
	OwnerUID      *string
	PaymentStatus *PaymentStatus
}

type CreateParams struct {
	Type             Type
	ContractNumber   string
	OwnerUID         string
	EventID          string
	CounterpartyID   string
	PaymentDirection PaymentDirection
	ContractValue    int64
	Currency         string
	Recurring        bool
	Installments     int64
	StartDate        time.Time
	EndDate          *time.Time
	Terms            string
	Extras           map[string]any
}

// Save creates a contract and its payment schedule. The counterparty
// name is denormalized at save time; a failed lookup falls back to the
// Unknown Client sentinel rather than failing the save.
func (s *Service) Save(ctx context.Context, params CreateParams) (*Contract, error) {
	if _, ok := CollectionFor(params.Type); !ok {
		return nil, fmt.Errorf("unknown contract type %q", params.Type)
	}

	now := time.Now().UTC()

	c := &Contract{
		Type:             params.Type,
		ContractNumber:   params.ContractNumber,
		OwnerUID:         params.OwnerUID,
		EventID:          params.EventID,
		CounterpartyID:   params.CounterpartyID,
		CounterpartyName: s.resolveCounterpartyName(ctx, params.CounterpartyID),
		PaymentDirection: params.PaymentDirection,
		PaymentStatus:    StatusUnpaid,
		ContractValue:    params.ContractValue,
		Currency:         params.Currency,
		Recurring:        params.Recurring,
		Installments:     params.Installments,
		StartDate:        params.StartDate,
		EndDate:          params.EndDate,
		Terms:            params.Terms,
		Extras:           params.Extras,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	for _, p := range paymentSchedule(c) {
		if err := s.payments.Create(ctx, p); err != nil {
			return nil, fmt.Errorf("creating payment schedule: %w", err)
		}
	}

	return c, nil
}

func (s *Service) Get(ctx context.Context, typ Type, id string) (*Contract, error) {
	return s.repo.Get(ctx, typ, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Contract, error) {
	return s.repo.List(ctx, filter)
}

// Update rejects contracts that violate the payment audit invariant:
// paid requires both paidAt and paidBy, unpaid requires neither.
func (s *Service) Update(ctx context.Context, c *Contract) error {
	switch c.PaymentStatus {
	case StatusPaid:
		if c.PaidAt == nil || c.PaidBy == nil {
			return errors.New("paid contract must carry paidAt and paidBy")
		}
	case StatusUnpaid:
		if c.PaidAt != nil || c.PaidBy != nil {
			return errors.New("unpaid contract must not carry paidAt or paidBy")
		}
	default:
		return fmt.Errorf("unknown payment status %q", c.PaymentStatus)
	}

	c.UpdatedAt = time.Now().UTC()

	return s.repo.Update(ctx, c)
}

// SetPaymentStatus toggles a contract between paid and unpaid. The
// paidAt/paidBy pair always moves with the status. Payments for the
// contract follow the toggle; a contract that predates the payment
// schedule gets one created lazily on its first toggle.
func (s *Service) SetPaymentStatus(ctx context.Context, typ Type, id string, paid bool, actorUID string) (*Contract, error) {
	c, err := s.repo.Get(ctx, typ, id)
	if err != nil {
		return nil, err
	}

	if paid {
		now := time.Now().UTC()
		c.PaymentStatus = StatusPaid
		c.PaidAt = &now
		c.PaidBy = &actorUID
	} else {
		c.PaymentStatus = StatusUnpaid
		c.PaidAt = nil
		c.PaidBy = nil
	}

	c.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}

	payments, err := s.payments.ListByContract(ctx, c.ID)
	if err != nil {
		return nil, fmt.Errorf("listing payments: %w", err)
	}

	if len(payments) == 0 {
		for _, p := range paymentSchedule(c) {
			if err := s.payments.Create(ctx, p); err != nil {
				return nil, fmt.Errorf("creating payment lazily: %w", err)
			}
		}

		payments, err = s.payments.ListByContract(ctx, c.ID)
		if err != nil {
			return nil, fmt.Errorf("listing payments: %w", err)
		}
	}

	for _, p := range payments {
		if paid {
			p.Status = payment.StatusPaid
			p.PaidAt = c.PaidAt
			p.PaidBy = c.PaidBy
		} else {
			p.Status = payment.StatusDue
			p.PaidAt = nil
			p.PaidBy = nil
		}

		if err := s.payments.Update(ctx, p); err != nil {
			return nil, fmt.Errorf("updating payment: %w", err)
		}
	}

	return c, nil
}

// AttachEvent links the contract to an event and refreshes the
// denormalized event name. Event rollups are the event service's job.
func (s *Service) AttachEvent(ctx context.Context, typ Type, id, eventID, eventName string) (*Contract, error) {
	c, err := s.repo.Get(ctx, typ, id)
	if err != nil {
		return nil, err
	}

	c.EventID = eventID
	c.EventName = eventName
	c.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) DetachEvent(ctx context.Context, typ Type, id string) (*Contract, error) {
	return s.AttachEvent(ctx, typ, id, "", "")
}

// Delete removes the contract and cascades to its payments.
func (s *Service) Delete(ctx context.Context, typ Type, id string) error {
	if err := s.repo.Delete(ctx, typ, id); err != nil {
		return err
	}

	return s.payments.DeleteByContract(ctx, id)
}

func (s *Service) resolveCounterpartyName(ctx context.Context, id string) string {
	if id == "" {
		return UnknownCounterpartyName
	}

	name, err := s.directory.CounterpartyName(ctx, id)
	if err != nil || name == "" {
		slog.Warn("counterparty lookup missed, using sentinel", "counterpartyId", id, "error", err)
		return UnknownCounterpartyName
	}

	return name
}

// paymentSchedule derives the payment records a contract is saved
// with: one covering the full value for one-time contracts, monthly
// installments for recurring ones. Installments sum exactly to the
// contract value; rounding spill lands on the last one.
func paymentSchedule(c *Contract) []*payment.Payment {
	direction := payment.Direction(c.PaymentDirection)

	status := payment.StatusDue

	var paidAt *time.Time

	var paidBy *string

	if c.PaymentStatus == StatusPaid {
		status = payment.StatusPaid
		paidAt = c.PaidAt
		paidBy = c.PaidBy
	}

	if !c.Recurring || c.Installments <= 1 {
		return []*payment.Payment{{
			ContractID:   c.ID,
			ContractType: string(c.Type),
			Amount:       c.ContractValue,
			Direction:    direction,
			Status:       status,
			DueDate:      c.StartDate,
			PaidAt:       paidAt,
			PaidBy:       paidBy,
		}}
	}

	base := c.ContractValue / c.Installments
	schedule := make([]*payment.Payment, 0, c.Installments)

	for i := int64(0); i < c.Installments; i++ {
		amount := base
		if i == c.Installments-1 {
			amount = c.ContractValue - base*(c.Installments-1)
		}

		schedule = append(schedule, &payment.Payment{
			ContractID:   c.ID,
			ContractType: string(c.Type),
			Amount:       amount,
			Direction:    direction,
			Status:       status,
			DueDate:      c.StartDate.AddDate(0, int(i), 0),
			PaidAt:       paidAt,
			PaidBy:       paidBy,
		})
	}

	return schedule
}
