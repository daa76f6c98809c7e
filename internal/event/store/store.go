package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/marqueehq/marquee/internal/docstore"
	"github.com/marqueehq/marquee/internal/event"
)

type Store struct {
	db docstore.Gateway
}

func New(db docstore.Gateway) *Store {
	return &Store{db: db}
}

func (s *Store) Create(ctx context.Context, ev *event.Event) error {
	id, err := s.db.Create(ctx, event.Collection, ev.ID, ToDoc(ev))
	if err != nil {
		return fmt.Errorf("creating event: %w", err)
	}

	ev.ID = id

	return nil
}

func (s *Store) Get(ctx context.Context, id string) (*event.Event, error) {
	doc, err := s.db.Get(ctx, event.Collection, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, event.ErrNotFound
		}

		return nil, fmt.Errorf("getting event: %w", err)
	}

	return FromDoc(*doc), nil
}

func (s *Store) List(ctx context.Context, filter event.ListFilter) ([]*event.Event, error) {
	docs, err := s.db.List(ctx, event.Collection)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}

	var out []*event.Event

	for _, doc := range docs {
		ev := FromDoc(doc)

		if filter.OwnerUID != nil && ev.OwnerUID != *filter.OwnerUID {
			continue
		}

		if filter.StartDate != nil && ev.EventDate.Before(*filter.StartDate) {
			continue
		}

		if filter.EndDate != nil && ev.EventDate.After(*filter.EndDate) {
			continue
		}

		out = append(out, ev)
	}

	return out, nil
}

func (s *Store) Update(ctx context.Context, ev *event.Event) error {
	if _, err := s.db.Get(ctx, event.Collection, ev.ID); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return event.ErrNotFound
		}

		return fmt.Errorf("updating event: %w", err)
	}

	if _, err := s.db.Create(ctx, event.Collection, ev.ID, ToDoc(ev)); err != nil {
		return fmt.Errorf("updating event: %w", err)
	}

	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.db.Delete(ctx, event.Collection, id); err != nil {
		return fmt.Errorf("deleting event: %w", err)
	}

	return nil
}

func ToDoc(ev *event.Event) map[string]any {
	contractIDs := ev.ContractIDs
	if contractIDs == nil {
		contractIDs = []string{}
	}

	return map[string]any{
		"name":            ev.Name,
		"eventDate":       ev.EventDate,
		"locationAddress": ev.LocationAddress,
		"ownerUid":        ev.OwnerUID,
		"contractIds":     contractIDs,
		"status":          string(ev.Status),
		"totalReceivable": ev.TotalReceivable,
		"totalPayable":    ev.TotalPayable,
		"netRevenue":      ev.NetRevenue,
		"createdAt":       ev.CreatedAt,
		"updatedAt":       ev.UpdatedAt,
	}
}

func FromDoc(doc docstore.Document) *event.Event {
	data := doc.Data

	return &event.Event{
		ID:              doc.ID,
		Name:            str(data, "name"),
		EventDate:       ts(data, "eventDate"),
		LocationAddress: str(data, "locationAddress"),
		OwnerUID:        str(data, "ownerUid"),
		ContractIDs:     strs(data, "contractIds"),
		Status:          event.Status(str(data, "status")),
		TotalReceivable: i64(data, "totalReceivable"),
		TotalPayable:    i64(data, "totalPayable"),
		NetRevenue:      i64(data, "netRevenue"),
		CreatedAt:       ts(data, "createdAt"),
		UpdatedAt:       ts(data, "updatedAt"),
	}
}

func str(data map[string]any, key string) string {
	if v, ok := data[key].(string); ok {
		return v
	}

	return ""
}

func strs(data map[string]any, key string) []string {
	switch v := data[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}

		return out
	}

	return nil
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
