// Package service contains the business logic of the dashboard backend.
// Services validate inputs, orchestrate the fetch → parse → reconcile →
// merge pipeline, and depend on the rowfeed contracts, never on a concrete
// backend.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jimmeey/expiry-dashboard/internal/annotation"
	"github.com/jimmeey/expiry-dashboard/internal/domain"
	"github.com/jimmeey/expiry-dashboard/internal/filter"
	"github.com/jimmeey/expiry-dashboard/internal/merge"
	"github.com/jimmeey/expiry-dashboard/internal/metrics"
	"github.com/jimmeey/expiry-dashboard/internal/parse"
	"github.com/jimmeey/expiry-dashboard/internal/reconcile"
	"github.com/jimmeey/expiry-dashboard/internal/rowfeed"
)

// Source values reported on Result, so the UI can flag non-live data.
const (
	SourceLive   = "live"
	SourceCache  = "cache"
	SourceSample = "sample"
)

// Result is a member list plus where it came from. Source is SourceLive on
// a successful fetch; on member-feed failure the service fails closed to
// the previous cached list (SourceCache) or, with nothing cached yet, to
// the fixed sample dataset (SourceSample) so the UI stays populated in a
// clearly-demo state instead of going blank.
type Result struct {
	Records []domain.MemberRecord `json:"data"`
	Source  string                `json:"source"`
}

// MembershipService runs the reconciliation pipeline against a row store
// and owns the session cache that keeps annotations visible across
// refreshes.
type MembershipService struct {
	store rowfeed.Store
	cache *merge.Store
	log   *slog.Logger
	now   func() time.Time
}

// NewMembershipService constructs the service. The cache is owned by the
// service; callers share annotation state only through it.
func NewMembershipService(store rowfeed.Store, cache *merge.Store, log *slog.Logger) *MembershipService {
	if log == nil {
		log = slog.Default()
	}
	return &MembershipService{store: store, cache: cache, log: log, now: time.Now}
}

// GetMembershipData runs the full pipeline: fetch both feeds concurrently,
// parse, reconcile, and merge through the session cache.
//
// A member-feed fetch failure is degraded, not propagated (see Result); an
// annotation-feed failure degrades to an empty annotation store. An error
// is returned only when the context is done.
func (s *MembershipService) GetMembershipData(ctx context.Context) (Result, error) {
	var memberRows, annotationRows [][]string

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		start := s.now()
		rows, err := s.store.MemberRows(gctx)
		metrics.ObserveFeedFetch(metrics.FeedMembers, s.now().Sub(start), err)
		memberRows = rows
		return err
	})
	g.Go(func() error {
		start := s.now()
		rows, err := s.store.AnnotationRows(gctx)
		metrics.ObserveFeedFetch(metrics.FeedAnnotations, s.now().Sub(start), err)
		if err != nil {
			// Empty store, not a failed load: the dashboard renders
			// without annotations rather than not at all.
			s.log.WarnContext(gctx, "annotation feed unavailable, proceeding with empty store", "error", err)
			rows = [][]string{rowfeed.AnnotationHeader()}
		}
		annotationRows = rows
		return nil
	})

	if err := g.Wait(); err != nil {
		if ctx.Err() != nil {
			return Result{}, fmt.Errorf("service.MembershipService.GetMembershipData: %w", ctx.Err())
		}
		return s.fallback(ctx, err), nil
	}

	members := parse.Members(memberRows)
	if len(members) == 0 {
		return Result{Records: s.cache.Merge(members), Source: SourceLive}, nil
	}

	enriched := reconcile.Enrich(members, annotation.BuildLookup(annotationRows))
	return Result{Records: s.cache.Merge(enriched), Source: SourceLive}, nil
}

// fallback picks the safest substitute for a failed member-feed fetch.
func (s *MembershipService) fallback(ctx context.Context, cause error) Result {
	if s.cache.Len() > 0 {
		s.log.ErrorContext(ctx, "member feed fetch failed, serving cached list", "error", cause)
		metrics.ObserveFallback(SourceCache)
		return Result{Records: s.cache.Snapshot(), Source: SourceCache}
	}
	s.log.ErrorContext(ctx, "member feed fetch failed, serving sample dataset", "error", cause)
	metrics.ObserveFallback(SourceSample)
	// Deliberately not merged into the cache: sample rows must not survive
	// into the first successful live fetch.
	return Result{Records: SampleRecords(), Source: SourceSample}
}

// SaveAnnotation persists one member's annotation: a read-modify-write of
// the annotation store that replaces the row with the same uniqueId or
// appends a new one. On success the session cache is updated immediately
// so the note is visible before the next refetch round-trips it.
//
// A failed write returns an error wrapping domain.ErrWrite and leaves the
// cache untouched; the user's note is never silently presented as saved.
func (s *MembershipService) SaveAnnotation(ctx context.Context, uniqueID, memberID, email, comments, notes string, tags []string, noteDate string) error {
	const op = "service.MembershipService.SaveAnnotation"

	if uniqueID == "" {
		return fmt.Errorf("%s: %w: unique id is required", op, domain.ErrValidation)
	}

	saveID := uuid.NewString()
	rows, err := s.store.AnnotationRows(ctx)
	if err != nil {
		// Without the current rows an upsert could duplicate or clobber;
		// treat an unreadable store as a failed write.
		metrics.ObserveAnnotationSave(err)
		return fmt.Errorf("%s: read store: %w: %w", op, domain.ErrWrite, err)
	}

	rec := domain.AnnotationRecord{
		UniqueID: uniqueID,
		MemberID: memberID,
		Email:    email,
		Comments: comments,
		Notes:    notes,
		Tags:     tags,
		NoteDate: noteDate,
	}
	err = s.store.WriteAnnotationRows(ctx, annotation.Upsert(rows, rec, s.now()))
	metrics.ObserveAnnotationSave(err)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.cache.ApplyLocal(uniqueID, rec.Annotation(), s.now())
	s.log.InfoContext(ctx, "annotation saved",
		"save_id", saveID,
		"unique_id", uniqueID,
		"tags", len(tags),
	)
	return nil
}

// ApplyFilters applies the structured filter configuration to records.
// Pure pass-through to the filter engine with the service clock.
func (s *MembershipService) ApplyFilters(records []domain.MemberRecord, opts domain.FilterOptions) []domain.MemberRecord {
	return filter.Apply(records, opts, s.now())
}

// ApplyQuickFilters applies the AND-combined quick-filter tokens.
func (s *MembershipService) ApplyQuickFilters(records []domain.MemberRecord, tokens []string) []domain.MemberRecord {
	return filter.ApplyQuick(records, tokens, s.now())
}

// GroupRecords partitions records per opts.GroupBy.
func (s *MembershipService) GroupRecords(records []domain.MemberRecord, by domain.GroupBy) map[string][]domain.MemberRecord {
	return filter.Group(records, by, s.now())
}
