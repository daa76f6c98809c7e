package store

import (
	"context"
	"fmt"
	"time"

	"github.com/marqueehq/marquee/internal/docstore"
	"github.com/marqueehq/marquee/internal/payment"
)

type Store struct {
	db docstore.Gateway
}

func New(db docstore.Gateway) *Store {
	return &Store{db: db}
}

func (s *Store) Create(ctx context.Context, p *payment.Payment) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	id, err := s.db.Create(ctx, payment.Collection, p.ID, toDoc(p))
	if err != nil {
		return fmt.Errorf("creating payment: %w", err)
	}

	p.ID = id

	return nil
}

func (s *Store) ListByContract(ctx context.Context, contractID string) ([]*payment.Payment, error) {
	docs, err := s.db.List(ctx, payment.Collection)
	if err != nil {
		return nil, fmt.Errorf("listing payments: %w", err)
	}

	var out []*payment.Payment

	for _, doc := range docs {
		p := fromDoc(doc)
		if p.ContractID == contractID {
			out = append(out, p)
		}
	}

	return out, nil
}

func (s *Store) List(ctx context.Context, filter payment.ListFilter) ([]*payment.Payment, error) {
	docs, err := s.db.List(ctx, payment.Collection)
	if err != nil {
		return nil, fmt.Errorf("listing payments: %w", err)
	}

	var out []*payment.Payment

	for _, doc := range docs {
		p := fromDoc(doc)

		if filter.Status != nil && p.Status != *filter.Status {
			continue
		}

		if filter.Direction != nil && p.Direction != *filter.Direction {
			continue
		}

		out = append(out, p)
	}

	return out, nil
}

func (s *Store) Update(ctx context.Context, p *payment.Payment) error {
	if _, err := s.db.Create(ctx, payment.Collection, p.ID, toDoc(p)); err != nil {
		return fmt.Errorf("updating payment: %w", err)
	}

	return nil
}

// DeleteByContract removes every payment tied to the contract in one
// batched commit. Used by the contract delete cascade.
func (s *Store) DeleteByContract(ctx context.Context, contractID string) error {
	payments, err := s.ListByContract(ctx, contractID)
	if err != nil {
		return err
	}

	if len(payments) == 0 {
		return nil
	}

	batch := s.db.Batch()
	for _, p := range payments {
		batch.Delete(payment.Collection, p.ID)
	}

	if err := batch.Commit(ctx); err != nil {
		return fmt.Errorf("deleting payments for contract %s: %w", contractID, err)
	}

	return nil
}

func toDoc(p *payment.Payment) map[string]any {
	doc := map[string]any{
		"contractId":   p.ContractID,
		"contractType": p.ContractType,
		"amount":       p.Amount,
		"direction":    string(p.Direction),
		"status":       string(p.Status),
		"dueDate":      p.DueDate,
		"createdAt":    p.CreatedAt,
	}

	if p.PaidAt != nil {
		doc["paidAt"] = *p.PaidAt
	} else {
		doc["paidAt"] = nil
	}

	if p.PaidBy != nil {
		doc["paidBy"] = *p.PaidBy
	} else {
		doc["paidBy"] = nil
	}

	return doc
}

func fromDoc(doc docstore.Document) *payment.Payment {
	data := doc.Data

	p := &payment.Payment{
		ID:           doc.ID,
		ContractID:   str(data, "contractId"),
		ContractType: str(data, "contractType"),
		Amount:       i64(data, "amount"),
		Direction:    payment.Direction(str(data, "direction")),
		Status:       payment.Status(str(data, "status")),
		DueDate:      ts(data, "dueDate"),
		CreatedAt:    ts(data, "createdAt"),
	}

	if v, ok := data["paidAt"].(time.Time); ok {
		p.PaidAt = &v
	}

	if v, ok := data["paidBy"].(string); ok && v != "" {
		p.PaidBy = &v
	}

	return p
}

func str(data map[string]any, key string) string {
	if v, ok := data[key].(string); ok {
		return v
	}

	return ""
}

func i64(data map[string]any, key string) int64 {
	switch v := data[key].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	}

	return 0
}

func ts(data map[string]any, key string) time.Time {
	if v, ok := data[key].(time.Time); ok {
		return v
	}

	return time.Time{}
}
