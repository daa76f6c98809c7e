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

// Stage names in pipeline order.
const (
	StageClients                = "Clients"
	StageLocations              = "Locations"
	StageEvents                 = "Events"
	StageServiceContracts       = "ServiceContracts"
	StageEventPlanningContracts = "EventPlanningContracts"
)

// Orchestrator runs the five migration stages in order. Contract stages
// depend on the event stage's assignments, and everything depends on
// the counterparties existing, so the order is fixed.
type Orchestrator struct {
	db docstore.Gateway
}

func NewOrchestrator(db docstore.Gateway) *Orchestrator {
	return &Orchestrator{db: db}
}

// Run executes the pipeline. In dry-run mode nothing is written and
// every stage runs to the end regardless of failures. In live mode any
// stage finishing with failures aborts the pipeline before the next
// stage starts; already written records are left in place for manual
// review, there is no rollback.
func (o *Orchestrator) Run(ctx context.Context, dryRun bool) (*Report, error) {
	start := time.Now()

	slog.Info("starting migration", "dryRun", dryRun)

	events := &eventStage{db: o.db}
	resolve := o.nameResolver()

	stages := []Stage{
		&copyStage{
			name:   StageClients,
			source: LegacyClients,
			target: counterparty.Collection,
			db:     o.db,
			transform: func(_ context.Context, doc docstore.Document) (map[string]any, error) {
				return ClientToCounterparty(doc)
			},
		},
		&copyStage{
			name:   StageLocations,
			source: LegacyLocations,
			target: counterparty.Collection,
			db:     o.db,
			transform: func(_ context.Context, doc docstore.Document) (map[string]any, error) {
				return LocationToCounterparty(doc)
			},
		},
		events,
		&copyStage{
			name:   StageServiceContracts,
			source: LegacyContracts,
			target: mustCollection(contract.TypeServiceProvision),
			db:     o.db,
			filter: kindFilter(legacyKindService),
			transform: func(ctx context.Context, doc docstore.Document) (map[string]any, error) {
				return ServiceContractFromLegacy(ctx, doc, events.Assignments(), resolve)
			},
		},
		&copyStage{
			name:   StageEventPlanningContracts,
			source: LegacyContracts,
			target: mustCollection(contract.TypeEventPlanning),
			db:     o.db,
			filter: kindFilter(legacyKindEventPlanning),
			transform: func(ctx context.Context, doc docstore.Document) (map[string]any, error) {
				return EventPlanningContractFromLegacy(ctx, doc, events.Assignments(), resolve)
			},
		},
	}

	report := &Report{DryRun: dryRun}

	for _, stage := range stages {
		if report.Aborted {
			report.Stages = append(report.Stages, StageReport{Stage: stage.Name()})
			continue
		}

		result, err := stage.Run(ctx, dryRun)
		if err != nil {
			return nil, fmt.Errorf("stage %s: %w", stage.Name(), err)
		}

		report.Stages = append(report.Stages, StageReport{Stage: stage.Name(), Ran: true, Result: result})
		report.TotalFailed += result.Failed

		if !dryRun && result.Failed > 0 {
			report.Aborted = true

			slog.Error("stage finished with failures, aborting pipeline",
				"stage", stage.Name(), "failed", result.Failed)
		}
	}

	report.Duration = time.Since(start)

	slog.Info("migration finished",
		"dryRun", dryRun, "aborted", report.Aborted,
		"totalFailed", report.TotalFailed, "duration", report.Duration)

	return report, nil
}

// nameResolver resolves counterparty display names against the target
// collection, caching per run. During a dry run the counterparties were
// never written, so lookups miss and contracts would get the Unknown
// Client sentinel; that only affects the preview, not the counts.
func (o *Orchestrator) nameResolver() NameResolver {
	cache := make(map[string]string)

	return func(ctx context.Context, id string) (string, error) {
		if name, ok := cache[id]; ok {
			return name, nil
		}

		doc, err := o.db.Get(ctx, counterparty.Collection, id)
		if err != nil {
			return "", err
		}

		name, _ := doc.Data["name"].(string)
		cache[id] = name

		return name, nil
	}
}

func kindFilter(kind string) func(docstore.Document) bool {
	return func(doc docstore.Document) bool {
		return firstString(doc.Data, "contractKind", "kind") == kind
	}
}

func mustCollection(typ contract.Type) string {
	coll, ok := contract.CollectionFor(typ)
	if !ok {
		panic(fmt.Sprintf("no collection for contract type %q", typ))
	}

	return coll
}
