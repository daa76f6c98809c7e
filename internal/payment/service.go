package payment

import (
	"context"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=payment
type Repository interface {
	Create(ctx context.Context, p *Payment) error
	ListByContract(ctx context.Context, contractID string) ([]*Payment, error)
	List(ctx context.Context, filter ListFilter) ([]*Payment, error)
	Update(ctx context.Context, p *Payment) error
	DeleteByContract(ctx context.Context, contractID string) error
}

type ListFilter struct {
	Status    *Status
	Direction *Direction
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListByContract(ctx context.Context, contractID string) ([]*Payment, error) {
	return s.repo.ListByContract(ctx, contractID)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Payment, error) {
	return s.repo.List(ctx, filter)
}
