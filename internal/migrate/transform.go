package migrate

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/marqueehq/marquee/internal/contract"
	"github.com/marqueehq/marquee/internal/counterparty"
	"github.com/marqueehq/marquee/internal/docstore"
)

// Transformers are pure: one legacy document in, one target document
// out. Absent optional legacy fields become defaults; only a required
// target field with no legacy source is an error.

// ClientToCounterparty maps a legacy client record onto the
// client-type counterparty schema.
func ClientToCounterparty(doc docstore.Document) (map[string]any, error) {
	data := doc.Data

	name := firstString(data, "name", "Name", "clientName")
	if name == "" {
		return nil, fmt.Errorf("legacy client %s has no name", doc.ID)
	}

	now := time.Now().UTC()

	return map[string]any{
		"type":        string(counterparty.TypeClient),
		"name":        name,
		"email":       firstString(data, "email", "Email"),
		"phone":       firstString(data, "phone", "Phone", "phoneNumber"),
		"address":     firstString(data, "address", "Address"),
		"ownerUid":    firstString(data, "ownerUid", "owner", "uid"),
		"notes":       firstString(data, "notes"),
		"tags":        []string{},
		"createdAt":   legacyTimestamp(data, "createdAt", now),
		"updatedAt":   now,
		"clientType":  legacyClientType(data),
		"companyName": firstString(data, "companyName", "company"),
		"taxId":       firstString(data, "taxId", "taxNumber", "nif"),
		"bankName":    firstString(data, "bankName", "bank"),
		"bankAccount": firstString(data, "bankAccount", "iban"),
	}, nil
}

// legacyClientType infers individual vs company. Legacy records rarely
// say; a company name is the only usable signal, otherwise the
// individual default applies.
func legacyClientType(data map[string]any) string {
	if v := firstString(data, "clientType", "type"); v != "" {
		return v
	}

	if firstString(data, "companyName", "company") != "" {
		return "company"
	}

	return counterparty.DefaultClientType
}

// LocationToCounterparty maps a legacy location record onto the
// venue-type counterparty schema.
func LocationToCounterparty(doc docstore.Document) (map[string]any, error) {
	data := doc.Data

	venueName := firstString(data, "name", "Name", "venueName")
	if venueName == "" {
		return nil, fmt.Errorf("legacy location %s has no name", doc.ID)
	}

	now := time.Now().UTC()

	return map[string]any{
		"type":         string(counterparty.TypeVenue),
		"name":         venueName,
		"email":        firstString(data, "email"),
		"phone":        firstString(data, "phone", "phoneNumber"),
		"address":      firstString(data, "address", "Address"),
		"ownerUid":     firstString(data, "ownerUid", "owner", "uid"),
		"notes":        firstString(data, "notes"),
		"tags":         []string{},
		"createdAt":    legacyTimestamp(data, "createdAt", now),
		"updatedAt":    now,
		"venueName":    venueName,
		"venueAddress": firstString(data, "address", "Address"),
		"taxCode":      firstString(data, "taxCode", "taxId"),
		"capacity":     legacyInt64(data, "capacity"),
	}, nil
}

// NameResolver looks up a counterparty display name during contract
// transformation. Misses are soft: the caller substitutes the
// Unknown Client sentinel.
type NameResolver func(ctx context.Context, id string) (string, error)

// ServiceContractFromLegacy maps a legacy service contract into the
// serviceContracts collection shape, wiring the event id assigned by
// the deduplicator.
func ServiceContractFromLegacy(ctx context.Context, doc docstore.Document, eventIDs map[string]string, resolve NameResolver) (map[string]any, error) {
	target, err := contractFromLegacy(ctx, doc, contract.TypeServiceProvision, eventIDs, resolve)
	if err != nil {
		return nil, err
	}

	target["serviceDescription"] = firstString(doc.Data, "serviceDescription", "description")

	return target, nil
}

// EventPlanningContractFromLegacy maps a legacy event-planning
// contract into the eventPlanningContracts collection shape.
func EventPlanningContractFromLegacy(ctx context.Context, doc docstore.Document, eventIDs map[string]string, resolve NameResolver) (map[string]any, error) {
	target, err := contractFromLegacy(ctx, doc, contract.TypeEventPlanning, eventIDs, resolve)
	if err != nil {
		return nil, err
	}

	target["planningScope"] = firstString(doc.Data, "planningScope", "scope", "description")
	target["guestCount"] = legacyInt64(doc.Data, "guestCount", "guests")

	return target, nil
}

func contractFromLegacy(ctx context.Context, doc docstore.Document, typ contract.Type, eventIDs map[string]string, resolve NameResolver) (map[string]any, error) {
	data := doc.Data

	now := time.Now().UTC()

	startDate, ok := legacyDate(data, "eventDate", "startDate", "date")
	if !ok {
		return nil, fmt.Errorf("legacy contract %s has no event date", doc.ID)
	}

	direction := firstString(data, "paymentDirection", "direction")
	if direction == "" {
		direction = string(contract.DirectionReceivable)
	}

	// The paid state only survives when the full audit pair does;
	// anything partial is normalized back to unpaid.
	var paidAtValue, paidByValue any = nil, nil

	status := contract.StatusUnpaid

	paidAt, hasPaidAt := legacyDate(data, "paidAt")

	if paidBy := firstString(data, "paidBy"); hasPaidAt && paidBy != "" {
		status = contract.StatusPaid
		paidAtValue = paidAt
		paidByValue = paidBy
	}

	counterpartyID := firstString(data, "counterpartyId", "clientId")

	currency := firstString(data, "currency")
	if currency == "" {
		currency = "EUR"
	}

	return map[string]any{
		"type":             string(typ),
		"contractNumber":   firstString(data, "contractNumber", "number"),
		"ownerUid":         firstString(data, "ownerUid", "owner", "uid"),
		"eventId":          eventIDs[doc.ID],
		"counterpartyId":   counterpartyID,
		"counterpartyName": resolveName(ctx, counterpartyID, resolve),
		"eventName":        firstString(data, "eventName", "event"),
		"paymentDirection": direction,
		"paymentStatus":    string(status),
		"contractValue":    legacyInt64(data, "value", "contractValue", "amount"),
		"currency":         currency,
		"paidAt":           paidAtValue,
		"paidBy":           paidByValue,
		"recurring":        false,
		"installments":     int64(0),
		"startDate":        startDate,
		"endDate":          nil,
		"terms":            firstString(data, "terms"),
		"createdAt":        legacyTimestamp(data, "createdAt", now),
		"updatedAt":        now,
	}, nil
}

func resolveName(ctx context.Context, id string, resolve NameResolver) string {
	if id == "" {
		return contract.UnknownCounterpartyName
	}

	name, err := resolve(ctx, id)
	if err != nil || name == "" {
		slog.Warn("counterparty lookup missed during migration", "counterpartyId", id, "error", err)
		return contract.UnknownCounterpartyName
	}

	return name
}
