package service

import (
	"context"
	"log/slog"
	"time"
)

// membershipFetcher is the slice of MembershipService the refresher needs.
type membershipFetcher interface {
	GetMembershipData(ctx context.Context) (Result, error)
}

// Refresher drives the periodic member-feed refetch. Each tick runs the
// full pipeline, which folds fresh data through the session cache's merge
// rule; that is what keeps a just-saved note visible even when the fetch
// snapshot predates the save.
type Refresher struct {
	svc      membershipFetcher
	interval time.Duration
	log      *slog.Logger
}

// NewRefresher constructs a Refresher ticking at interval.
func NewRefresher(svc membershipFetcher, interval time.Duration, log *slog.Logger) *Refresher {
	if log == nil {
		log = slog.Default()
	}
	return &Refresher{svc: svc, interval: interval, log: log}
}

// Run refetches immediately and then on every tick until ctx is done.
// Fetch problems are already degraded inside the service, so a cycle never
// aborts the loop.
func (r *Refresher) Run(ctx context.Context) {
	r.refresh(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.log.InfoContext(ctx, "refresher stopped")
			return
		case <-ticker.C:
			r.refresh(ctx)
		}
	}
}

func (r *Refresher) refresh(ctx context.Context) {
	result, err := r.svc.GetMembershipData(ctx)
	if err != nil {
		r.log.WarnContext(ctx, "refresh cycle aborted", "error", err)
		return
	}
	r.log.DebugContext(ctx, "refresh cycle complete",
		"records", len(result.Records),
		"source", result.Source,
	)
}
