package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/marqueehq/marquee/internal/counterparty"
	"github.com/marqueehq/marquee/internal/docstore"
)

type Store struct {
	db docstore.Gateway
}

func New(db docstore.Gateway) *Store {
	return &Store{db: db}
}

func (s *Store) Create(ctx context.Context, cp *counterparty.Counterparty) error {
	id, err := s.db.Create(ctx, counterparty.Collection, cp.ID, ToDoc(cp))
	if err != nil {
		return fmt.Errorf("creating counterparty: %w", err)
	}

	cp.ID = id

	return nil
}

func (s *Store) Get(ctx context.Context, id string) (*counterparty.Counterparty, error) {
	doc, err := s.db.Get(ctx, counterparty.Collection, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, counterparty.ErrNotFound
		}

		return nil, fmt.Errorf("getting counterparty: %w", err)
	}

	return FromDoc(*doc), nil
}

func (s *Store) List(ctx context.Context, filter counterparty.ListFilter) ([]*counterparty.Counterparty, error) {
	docs, err := s.db.List(ctx, counterparty.Collection)
	if err != nil {
		return nil, fmt.Errorf("listing counterparties: %w", err)
	}

	var cps []*counterparty.Counterparty

	for _, doc := range docs {
		cp := FromDoc(doc)

		if filter.Type != nil && cp.Type != *filter.Type {
			continue
		}

		if filter.OwnerUID != nil && cp.OwnerUID != *filter.OwnerUID {
			continue
		}

		cps = append(cps, cp)
	}

	return cps, nil
}

func (s *Store) Update(ctx context.Context, cp *counterparty.Counterparty) error {
	if _, err := s.db.Get(ctx, counterparty.Collection, cp.ID); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return counterparty.ErrNotFound
		}

		return fmt.Errorf("updating counterparty: %w", err)
	}

	if _, err := s.db.Create(ctx, counterparty.Collection, cp.ID, ToDoc(cp)); err != nil {
		return fmt.Errorf("updating counterparty: %w", err)
	}

	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.db.Delete(ctx, counterparty.Collection, id); err != nil {
		return fmt.Errorf("deleting counterparty: %w", err)
	}

	return nil
}

// CounterpartyName resolves an id to a display name for contract
// denormalization.
func (s *Store) CounterpartyName(ctx context.Context, id string) (string, error) {
	cp, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}

	return cp.Name, nil
}

// ToDoc lays out the exact field set the schema for cp.Type demands:
// every schema field present, nothing else. A full Set (rather than a
// merge) is what keeps stored documents schema-exact across updates.
func ToDoc(cp *counterparty.Counterparty) map[string]any {
	schema, ok := counterparty.SchemaFor(cp.Type)
	if !ok {
		return nil
	}

	doc := make(map[string]any, len(schema.Fields))
	for _, f := range schema.Fields {
		doc[f.Name] = fieldValue(cp, f.Name)
	}

	return doc
}

func FromDoc(doc docstore.Document) *counterparty.Counterparty {
	data := doc.Data

	return &counterparty.Counterparty{
		ID:             doc.ID,
		Type:           counterparty.Type(str(data, "type")),
		Name:           str(data, "name"),
		Email:          str(data, "email"),
		Phone:          str(data, "phone"),
		Address:        str(data, "address"),
		OwnerUID:       str(data, "ownerUid"),
		Notes:          str(data, "notes"),
		Tags:           strs(data, "tags"),
		ClientType:     str(data, "clientType"),
		CompanyName:    str(data, "companyName"),
		TaxID:          str(data, "taxId"),
		BankName:       str(data, "bankName"),
		BankAccount:    str(data, "bankAccount"),
		VenueName:      str(data, "venueName"),
		VenueAddress:   str(data, "venueAddress"),
		TaxCode:        str(data, "taxCode"),
		Capacity:       i64(data, "capacity"),
		StageName:      str(data, "stageName"),
		Genre:          str(data, "genre"),
		ServiceKind:    str(data, "serviceKind"),
		SupplyCategory: str(data, "supplyCategory"),
		CreatedAt:      ts(data, "createdAt"),
		UpdatedAt:      ts(data, "updatedAt"),
	}
}

func fieldValue(cp *counterparty.Counterparty, name string) any {
	switch name {
	case "type":
		return string(cp.Type)
	case "name":
		return cp.Name
	case "email":
		return cp.Email
	case "phone":
		return cp.Phone
	case "address":
		return cp.Address
	case "ownerUid":
		return cp.OwnerUID
	case "notes":
		return cp.Notes
	case "tags":
		if cp.Tags == nil {
			return []string{}
		}

		return cp.Tags
	case "createdAt":
		return cp.CreatedAt
	case "updatedAt":
		return cp.UpdatedAt
	case "clientType":
		return cp.ClientType
	case "companyName":
		return cp.CompanyName
	case "taxId":
		return cp.TaxID
	case "bankName":
		return cp.BankName
	case "bankAccount":
		return cp.BankAccount
	case "venueName":
		return cp.VenueName
	case "venueAddress":
		return cp.VenueAddress
	case "taxCode":
		return cp.TaxCode
	case "capacity":
		return cp.Capacity
	case "stageName":
		return cp.StageName
	case "genre":
		return cp.Genre
	case "serviceKind":
		return cp.ServiceKind
	case "supplyCategory":
		return cp.SupplyCategory
	}

	return nil
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
