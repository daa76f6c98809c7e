package counterparty

import (
	"context"
	"fmt"
	"time"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=counterparty
type Repository interface {
	Create(ctx context.Context, cp *Counterparty) error
	Get(ctx context.Context, id string) (*Counterparty, error)
	List(ctx context.Context, filter ListFilter) ([]*Counterparty, error)
	Update(ctx context.Context, cp *Counterparty) error
	Delete(ctx context.Context, id string) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type ListFilter struct {
	Type     *Type
	OwnerUID *string
}

type CreateParams struct {
	Type     Type
	Name     string
	Email    string
	Phone    string
	Address  string
	OwnerUID string
	Notes    string
	Tags     []string

	ClientType  string
	CompanyName string
	TaxID       string
	BankName    string
	BankAccount string

	VenueName    string
	VenueAddress string
	TaxCode      string
	Capacity     int64

	StageName string
	Genre     string

	ServiceKind    string
	SupplyCategory string
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Counterparty, error) {
	if _, ok := SchemaFor(params.Type); !ok {
		return nil, fmt.Errorf("unknown counterparty type %q", params.Type)
	}

	now := time.Now().UTC()

	cp := &Counterparty{
		Type:           params.Type,
		Name:           params.Name,
		Email:          params.Email,
		Phone:          params.Phone,
		Address:        params.Address,
		OwnerUID:       params.OwnerUID,
		Notes:          params.Notes,
		Tags:           params.Tags,
		ClientType:     params.ClientType,
		CompanyName:    params.CompanyName,
		TaxID:          params.TaxID,
		BankName:       params.BankName,
		BankAccount:    params.BankAccount,
		VenueName:      params.VenueName,
		VenueAddress:   params.VenueAddress,
		TaxCode:        params.TaxCode,
		Capacity:       params.Capacity,
		StageName:      params.StageName,
		Genre:          params.Genre,
		ServiceKind:    params.ServiceKind,
		SupplyCategory: params.SupplyCategory,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if cp.Type == TypeClient && cp.ClientType == "" {
		cp.ClientType = DefaultClientType
	}

	if err := s.repo.Create(ctx, cp); err != nil {
		return nil, err
	}

	return cp, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Counterparty, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Counterparty, error) {
	return s.repo.List(ctx, filter)
}

func (s *Service) Update(ctx context.Context, cp *Counterparty) error {
	if _, ok := SchemaFor(cp.Type); !ok {
		return fmt.Errorf("unknown counterparty type %q", cp.Type)
	}

	cp.UpdatedAt = time.Now().UTC()

	return s.repo.Update(ctx, cp)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
