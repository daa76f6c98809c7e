package migrate

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/marqueehq/marquee/internal/docstore"
	"github.com/marqueehq/marquee/internal/event"
	eventstore "github.com/marqueehq/marquee/internal/event/store"
)

// Stage is one step of the pipeline. A returned error is stage-fatal
// (the source collection itself could not be read); per-record problems
// are aggregated in the Result instead.
type Stage interface {
	Name() string
	Run(ctx context.Context, dryRun bool) (*Result, error)
}

const progressEvery = 10

// copyStage moves one source collection into one target collection,
// one record at a time in snapshot order, preserving document ids so
// old and new records stay correlatable.
type copyStage struct {
	name      string
	source    string
	target    string
	db        docstore.Gateway
	filter    func(docstore.Document) bool // nil keeps every document
	transform func(ctx context.Context, doc docstore.Document) (map[string]any, error)
}

func (s *copyStage) Name() string { return s.name }

func (s *copyStage) Run(ctx context.Context, dryRun bool) (*Result, error) {
	start := time.Now()

	docs, err := s.db.List(ctx, s.source)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", s.source, err)
	}

	result := &Result{}

	for _, doc := range docs {
		if s.filter != nil && !s.filter(doc) {
			continue
		}

		result.Total++

		data, err := s.transform(ctx, doc)
		if err != nil {
			result.RecordError(doc.ID, err)
			continue
		}

		if !dryRun {
			if _, err := s.db.Create(ctx, s.target, doc.ID, data); err != nil {
				result.RecordError(doc.ID, fmt.Errorf("writing %s: %w", s.target, err))
				continue
			}
		}

		result.Successful++

		if result.Total%progressEvery == 0 {
			slog.Info("migration progress", "stage", s.name, "processed", result.Total)
		}
	}

	result.Duration = time.Since(start)

	slog.Info("stage finished",
		"stage", s.name, "total", result.Total,
		"successful", result.Successful, "failed", result.Failed,
		"dryRun", dryRun, "duration", result.Duration)

	return result, nil
}

// eventStage derives events from the legacy contracts. Unlike the copy
// stages it mints fresh event ids: events have no 1:1 source document.
// The candidate-to-event assignments it produces feed the two contract
// stages that follow.
type eventStage struct {
	db          docstore.Gateway
	assignments map[string]string
}

func (s *eventStage) Name() string { return StageEvents }

// Assignments is the candidate id to event id map of the last run.
func (s *eventStage) Assignments() map[string]string {
	if s.assignments == nil {
		return map[string]string{}
	}

	return s.assignments
}

func (s *eventStage) Run(ctx context.Context, dryRun bool) (*Result, error) {
	start := time.Now()

	// The two candidate lists are independent reads; fetch them
	// concurrently and join before deduplication.
	var serviceDocs, planningDocs []docstore.Document

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		serviceDocs, err = s.fetchKind(gctx, legacyKindService)
		return err
	})
	g.Go(func() error {
		var err error
		planningDocs, err = s.fetchKind(gctx, legacyKindEventPlanning)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fetching contract candidates: %w", err)
	}

	result := &Result{}

	var candidates []Candidate

	for _, doc := range append(serviceDocs, planningDocs...) {
		result.Total++

		cand, err := CandidateFromLegacy(doc)
		if err != nil {
			result.RecordError(doc.ID, err)
			continue
		}

		candidates = append(candidates, cand)
	}

	dedup := DedupCandidates(candidates)
	s.assignments = dedup.Assignments

	failedEvents := make(map[string]struct{})

	if !dryRun {
		now := time.Now().UTC()

		for _, ev := range dedup.Events {
			ev.CreatedAt = now
			ev.UpdatedAt = now

			if _, err := s.db.Create(ctx, event.Collection, ev.ID, eventstore.ToDoc(ev)); err != nil {
				failedEvents[ev.ID] = struct{}{}

				slog.Error("writing event failed", "eventId", ev.ID, "name", ev.Name, "error", err)
			}
		}
	}

	for i, cand := range candidates {
		if _, failed := failedEvents[dedup.Assignments[cand.ID]]; failed {
			result.RecordError(cand.ID, fmt.Errorf("event write failed"))
			continue
		}

		result.Successful++

		if (i+1)%progressEvery == 0 {
			slog.Info("migration progress", "stage", s.Name(), "processed", i+1)
		}
	}

	result.Duration = time.Since(start)

	slog.Info("stage finished",
		"stage", s.Name(), "total", result.Total,
		"successful", result.Successful, "failed", result.Failed,
		"events", len(dedup.Events), "dryRun", dryRun, "duration", result.Duration)

	return result, nil
}

func (s *eventStage) fetchKind(ctx context.Context, kind string) ([]docstore.Document, error) {
	docs, err := s.db.List(ctx, LegacyContracts)
	if err != nil {
		return nil, err
	}

	var out []docstore.Document

	for _, doc := range docs {
		if firstString(doc.Data, "contractKind", "kind") == kind {
			out = append(out, doc)
		}
	}

	return out, nil
}
