package event

import (
	"context"
	"slices"
	"time"

	"github.com/marqueehq/marquee/internal/contract"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=event
type Repository interface {
	Create(ctx context.Context, ev *Event) error
	Get(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context, filter ListFilter) ([]*Event, error)
	Update(ctx context.Context, ev *Event) error
	Delete(ctx context.Context, id string) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type ListFilter struct {
	OwnerUID  *string
	StartDate *time.Time
	EndDate   *time.Time
}

type CreateParams struct {
	Name            string
	EventDate       time.Time
	LocationAddress string
	OwnerUID        string
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Event, error) {
	now := time.Now().UTC()

	ev := &Event{
		Name:            params.Name,
		EventDate:       params.EventDate,
		LocationAddress: params.LocationAddress,
		OwnerUID:        params.OwnerUID,
		ContractIDs:     []string{},
		Status:          StatusPlanned,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Create(ctx, ev); err != nil {
		return nil, err
	}

	return ev, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Event, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Event, error) {
	return s.repo.List(ctx, filter)
}

func (s *Service) Update(ctx context.Context, ev *Event) error {
	ev.UpdatedAt = time.Now().UTC()
	return s.repo.Update(ctx, ev)
}

// AttachContract records the contract on the event and folds its value
// into the rollups. Attaching a contract twice is a no-op.
func (s *Service) AttachContract(ctx context.Context, eventID string, c *contract.Contract) (*Event, error) {
	ev, err := s.repo.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if slices.Contains(ev.ContractIDs, c.ID) {
		return ev, nil
	}

	ev.ContractIDs = append(ev.ContractIDs, c.ID)
	applyValue(ev, c, 1)
	ev.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, ev); err != nil {
		return nil, err
	}

	return ev, nil
}

// DetachContract removes the contract from the event and backs its
// value out of the rollups. Detaching an unknown contract is a no-op.
func (s *Service) DetachContract(ctx context.Context, eventID string, c *contract.Contract) (*Event, error) {
	ev, err := s.repo.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}

	idx := slices.Index(ev.ContractIDs, c.ID)
	if idx < 0 {
		return ev, nil
	}

	ev.ContractIDs = slices.Delete(ev.ContractIDs, idx, idx+1)
	applyValue(ev, c, -1)
	ev.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, ev); err != nil {
		return nil, err
	}

	return ev, nil
}

func applyValue(ev *Event, c *contract.Contract, sign int64) {
	switch c.PaymentDirection {
	case contract.DirectionReceivable:
		ev.TotalReceivable += sign * c.ContractValue
	case contract.DirectionPayable:
		ev.TotalPayable += sign * c.ContractValue
	}

	ev.NetRevenue = ev.TotalReceivable - ev.TotalPayable
}
