// Package repair holds the one-shot cleanup operations for schema
// drift in the counterparties collection. Every operation is
// idempotent and independent of the others; running them in any order,
// any number of times, converges on the same documents.
package repair

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/marqueehq/marquee/internal/counterparty"
	"github.com/marqueehq/marquee/internal/docstore"
	"github.com/marqueehq/marquee/internal/migrate"
)

// Op computes the field diff one repair would apply to a document. An
// empty diff means the document is already clean for this operation.
type Op struct {
	Name string
	Diff func(doc docstore.Document) (map[string]any, error)
}

// Ops returns the full repair set in the conventional run order. The
// order is cosmetic; the operations commute.
func Ops() []Op {
	return []Op{
		{Name: "RemoveInvalidFields", Diff: removeInvalidFields},
		{Name: "FillRequiredDefaults", Diff: fillRequiredDefaults},
		{Name: "NormalizeArrayFields", Diff: normalizeArrayFields},
		{Name: "BackfillTimestamps", Diff: backfillTimestamps},
	}
}

// Runner applies repair operations over the counterparties collection.
type Runner struct {
	db docstore.Gateway
}

func NewRunner(db docstore.Gateway) *Runner {
	return &Runner{db: db}
}

// Run executes every operation as its own scan and aggregates the
// per-operation results into a report. Documents that need no change
// are counted but not written; in dry-run mode nothing is written.
func (r *Runner) Run(ctx context.Context, dryRun bool) (*migrate.Report, error) {
	start := time.Now()

	report := &migrate.Report{DryRun: dryRun}

	for _, op := range Ops() {
		result, err := r.runOp(ctx, op, dryRun)
		if err != nil {
			return nil, fmt.Errorf("repair %s: %w", op.Name, err)
		}

		report.Stages = append(report.Stages, migrate.StageReport{Stage: op.Name, Ran: true, Result: result})
		report.TotalFailed += result.Failed
	}

	report.Duration = time.Since(start)

	slog.Info("repair finished",
		"dryRun", dryRun, "totalFailed", report.TotalFailed, "duration", report.Duration)

	return report, nil
}

func (r *Runner) runOp(ctx context.Context, op Op, dryRun bool) (*migrate.Result, error) {
	start := time.Now()

	docs, err := r.db.List(ctx, counterparty.Collection)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", counterparty.Collection, err)
	}

	result := &migrate.Result{Total: len(docs)}

	changed := 0

	for _, doc := range docs {
		diff, err := op.Diff(doc)
		if err != nil {
			result.RecordError(doc.ID, err)
			continue
		}

		if len(diff) == 0 {
			result.Successful++
			continue
		}

		if !dryRun {
			if err := r.db.UpdateFields(ctx, counterparty.Collection, doc.ID, diff); err != nil {
				result.RecordError(doc.ID, fmt.Errorf("applying diff: %w", err))
				continue
			}
		}

		changed++
		result.Successful++
	}

	result.Duration = time.Since(start)

	slog.Info("repair operation finished",
		"operation", op.Name, "total", result.Total, "changed", changed,
		"failed", result.Failed, "dryRun", dryRun, "duration", result.Duration)

	return result, nil
}

// removeInvalidFields strips fields the document's declared type does
// not allow, using the gateway's field-deletion sentinel. A document
// with an unknown type cannot be checked against any schema and is
// reported as failed.
func removeInvalidFields(doc docstore.Document) (map[string]any, error) {
	schema, err := schemaOf(doc)
	if err != nil {
		return nil, err
	}

	allowed := schema.Allowed()
	diff := make(map[string]any)

	for field := range doc.Data {
		if _, ok := allowed[field]; !ok {
			diff[field] = docstore.DeleteField
		}
	}

	return diff, nil
}

// fillRequiredDefaults adds the schema default for required fields the
// document is missing. Fields present but null are left alone; only
// absence counts.
func fillRequiredDefaults(doc docstore.Document) (map[string]any, error) {
	schema, err := schemaOf(doc)
	if err != nil {
		return nil, err
	}

	diff := make(map[string]any)

	for field, def := range schema.RequiredDefaults() {
		if _, ok := doc.Data[field]; !ok {
			diff[field] = def
		}
	}

	return diff, nil
}

// normalizeArrayFields rewrites null array fields to empty arrays.
func normalizeArrayFields(doc docstore.Document) (map[string]any, error) {
	diff := make(map[string]any)

	for _, field := range counterparty.ArrayFields {
		v, ok := doc.Data[field]
		if ok && v == nil {
			diff[field] = []string{}
		}
	}

	return diff, nil
}

// backfillTimestamps fills missing or null createdAt/updatedAt with the
// repair time. That loses history, but a present wrong-ish timestamp
// beats an absent one for every consumer downstream.
func backfillTimestamps(doc docstore.Document) (map[string]any, error) {
	now := time.Now().UTC()
	diff := make(map[string]any)

	for _, field := range []string{"createdAt", "updatedAt"} {
		if v, ok := doc.Data[field]; !ok || v == nil {
			diff[field] = now
		}
	}

	return diff, nil
}

func schemaOf(doc docstore.Document) (counterparty.Schema, error) {
	typ, _ := doc.Data["type"].(string)

	schema, ok := counterparty.SchemaFor(counterparty.Type(typ))
	if !ok {
		return counterparty.Schema{}, fmt.Errorf("document has unknown type %q", typ)
	}

	return schema, nil
}
