package store

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"time"

	"github.com/marqueehq/marquee/internal/contract"
	"github.com/marqueehq/marquee/internal/docstore"
)

type Store struct {
	db docstore.Gateway
}

func New(db docstore.Gateway) *Store {
	return &Store{db: db}
}

func (s *Store) Create(ctx context.Context, c *contract.Contract) error {
	coll, ok := contract.CollectionFor(c.Type)
	if !ok {
		return fmt.Errorf("unknown contract type %q", c.Type)
	}

	id, err := s.db.Create(ctx, coll, c.ID, ToDoc(c))
	if err != nil {
		return fmt.Errorf("creating contract: %w", err)
	}

	c.ID = id

	return nil
}

func (s *Store) Get(ctx context.Context, typ contract.Type, id string) (*contract.Contract, error) {
	coll, ok := contract.CollectionFor(typ)
	if !ok {
		return nil, fmt.Errorf("unknown contract type %q", typ)
	}

	doc, err := s.db.Get(ctx, coll, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, contract.ErrNotFound
		}

		return nil, fmt.Errorf("getting contract: %w", err)
	}

	return FromDoc(typ, *doc), nil
}

func (s *Store) List(ctx context.Context, filter contract.ListFilter) ([]*contract.Contract, error) {
	types := filter.Types
	if len(types) == 0 {
		types = contract.Types()
	}

	var out []*contract.Contract

	for _, typ := range types {
		coll, ok := contract.CollectionFor(typ)
		if !ok {
			return nil, fmt.Errorf("unknown contract type %q", typ)
		}

		docs, err := s.db.List(ctx, coll)
		if err != nil {
			return nil, fmt.Errorf("listing %s: %w", coll, err)
		}

		for _, doc := range docs {
			c := FromDoc(typ, doc)

			if filter.EventID != nil && c.EventID != *filter.EventID {
				continue
			}

			if filter.OwnerUID != nil && c.OwnerUID != *filter.OwnerUID {
				continue
			}

			if filter.PaymentStatus != nil && c.PaymentStatus != *filter.PaymentStatus {
				continue
			}

			out = append(out, c)
		}
	}

	return out, nil
}

func (s *Store) Update(ctx context.Context, c *contract.Contract) error {
	coll, ok := contract.CollectionFor(c.Type)
	if !ok {
		return fmt.Errorf("unknown contract type %q", c.Type)
	}

	if _, err := s.db.Get(ctx, coll, c.ID); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return contract.ErrNotFound
		}

		return fmt.Errorf("updating contract: %w", err)
	}

	if _, err := s.db.Create(ctx, coll, c.ID, ToDoc(c)); err != nil {
		return fmt.Errorf("updating contract: %w", err)
	}

	return nil
}

func (s *Store) Delete(ctx context.Context, typ contract.Type, id string) error {
	coll, ok := contract.CollectionFor(typ)
	if !ok {
		return fmt.Errorf("unknown contract type %q", typ)
	}

	if err := s.db.Delete(ctx, coll, id); err != nil {
		return fmt.Errorf("deleting contract: %w", err)
	}

	return nil
}

// baseFields are the keys of the shared contract shape; everything else
// in a stored document belongs to the variant and round-trips through
// Extras.
var baseFields = map[string]struct{}{
	"type": {}, "contractNumber": {}, "ownerUid": {}, "eventId": {},
	"counterpartyId": {}, "counterpartyName": {}, "eventName": {},
	"paymentDirection": {}, "paymentStatus": {}, "contractValue": {},
	"currency": {}, "paidAt": {}, "paidBy": {}, "recurring": {},
	"installments": {}, "startDate": {}, "endDate": {}, "terms": {},
	"createdAt": {}, "updatedAt": {},
}

func ToDoc(c *contract.Contract) map[string]any {
	doc := map[string]any{
		"type":             string(c.Type),
		"contractNumber":   c.ContractNumber,
		"ownerUid":         c.OwnerUID,
		"eventId":          c.EventID,
		"counterpartyId":   c.CounterpartyID,
		"counterpartyName": c.CounterpartyName,
		"eventName":        c.EventName,
		"paymentDirection": string(c.PaymentDirection),
		"paymentStatus":    string(c.PaymentStatus),
		"contractValue":    c.ContractValue,
		"currency":         c.Currency,
		"recurring":        c.Recurring,
		"installments":     c.Installments,
		"startDate":        c.StartDate,
		"terms":            c.Terms,
		"createdAt":        c.CreatedAt,
		"updatedAt":        c.UpdatedAt,
	}

	if c.PaidAt != nil {
		doc["paidAt"] = *c.PaidAt
	} else {
		doc["paidAt"] = nil
	}

	if c.PaidBy != nil {
		doc["paidBy"] = *c.PaidBy
	} else {
		doc["paidBy"] = nil
	}

	if c.EndDate != nil {
		doc["endDate"] = *c.EndDate
	} else {
		doc["endDate"] = nil
	}

	for k, v := range c.Extras {
		if _, reserved := baseFields[k]; reserved {
			continue
		}

		doc[k] = v
	}

	return doc
}

func FromDoc(typ contract.Type, doc docstore.Document) *contract.Contract {
	data := doc.Data

	c := &contract.Contract{
		ID:               doc.ID,
		Type:             typ,
		ContractNumber:   str(data, "contractNumber"),
		OwnerUID:         str(data, "ownerUid"),
		EventID:          str(data, "eventId"),
		CounterpartyID:   str(data, "counterpartyId"),
		CounterpartyName: str(data, "counterpartyName"),
		EventName:        str(data, "eventName"),
		PaymentDirection: contract.PaymentDirection(str(data, "paymentDirection")),
		PaymentStatus:    contract.PaymentStatus(str(data, "paymentStatus")),
		ContractValue:    i64(data, "contractValue"),
		Currency:         str(data, "currency"),
		Recurring:        boolean(data, "recurring"),
		Installments:     i64(data, "installments"),
		StartDate:        ts(data, "startDate"),
		Terms:            str(data, "terms"),
		CreatedAt:        ts(data, "createdAt"),
		UpdatedAt:        ts(data, "updatedAt"),
	}

	if v, ok := data["paidAt"].(time.Time); ok {
		c.PaidAt = &v
	}

	if v, ok := data["paidBy"].(string); ok && v != "" {
		c.PaidBy = &v
	}

	if v, ok := data["endDate"].(time.Time); ok {
		c.EndDate = &v
	}

	extras := maps.Clone(data)
	for k := range baseFields {
		delete(extras, k)
	}

	if len(extras) > 0 {
		c.Extras = extras
	}

	return c
}

func str(data map[string]any, key string) string {
	if v, ok := data[key].(string); ok {
		return v
	}

	return ""
}

func boolean(data map[string]any, key string) bool {
	if v, ok := data[key].(bool); ok {
		return v
	}

	return false
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
