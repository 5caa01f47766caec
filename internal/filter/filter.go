// Package filter selects subsets of the enriched member list. All functions
// are pure: they never mutate records, only choose them. Time-dependent
// clauses take an explicit now so callers (and tests) control the clock.
package filter

import (
	"time"

	"github.com/jimmeey/expiry-dashboard/internal/domain"
)

// Apply returns the records satisfying every active clause of opts, ANDed.
// A clause whose controlling option is empty or unset is skipped. Input
// order is preserved.
func Apply(records []domain.MemberRecord, opts domain.FilterOptions, now time.Time) []domain.MemberRecord {
	out := make([]domain.MemberRecord, 0, len(records))
	for _, m := range records {
		if matches(m, opts, now) {
			out = append(out, m)
		}
	}
	return out
}

func matches(m domain.MemberRecord, opts domain.FilterOptions, now time.Time) bool {
	if len(opts.Status) > 0 && !containsStatus(opts.Status, m.Status) {
		return false
	}
	if len(opts.Locations) > 0 && !contains(opts.Locations, m.Location) {
		return false
	}
	if len(opts.MembershipTypes) > 0 && !contains(opts.MembershipTypes, m.MembershipName) {
		return false
	}
	if r := opts.SessionsRange; r != nil && (m.SessionsLeft < r.Min || m.SessionsLeft > r.Max) {
		return false
	}
	if !inDateRange(m.EndDate, opts.DateRange) {
		return false
	}
	if !inDateRange(m.OrderDate, opts.JoinedDateRange) {
		return false
	}
	if len(opts.MembershipUsage) > 0 && !contains(opts.MembershipUsage, UsageBucket(m.TotalSessions, m.SessionsLeft)) {
		return false
	}
	if !withinDaysLapsed(m, opts.DaysLapsed, now) {
		return false
	}
	if len(opts.PaymentStatus) > 0 && !contains(opts.PaymentStatus, m.Paid) {
		return false
	}
	return true
}

// Usage bucket labels, as surfaced in the membershipUsage filter options.
const (
	UsageNotStarted = "Not Started"
	UsageLow        = "Low Usage (0-25%)"
	UsageMedium     = "Medium Usage (25-50%)"
	UsageHigh       = "High Usage (50-75%)"
	UsageVeryHigh   = "Very High Usage (75-99%)"
	UsageFull       = "Fully Used (100%)"
)

// UsageBucket assigns exactly one label from the half-open ladder
// [0,25) [25,50) [50,75) [75,100) {100}, with 0% pinned to Not Started.
// A zero total counts as 0% used.
func UsageBucket(totalSessions, sessionsLeft int) string {
	var percent float64
	if totalSessions > 0 {
		percent = float64(totalSessions-sessionsLeft) / float64(totalSessions) * 100
	}
	switch {
	case percent == 0:
		return UsageNotStarted
	case percent < 25:
		return UsageLow
	case percent < 50:
		return UsageMedium
	case percent < 75:
		return UsageHigh
	case percent < 100:
		return UsageVeryHigh
	default:
		return UsageFull
	}
}

// withinDaysLapsed evaluates the days-lapsed clause. It applies only to
// expired members; active records always pass. An expired record whose end
// date never normalized cannot have a lapse computed and fails a set clause.
func withinDaysLapsed(m domain.MemberRecord, r *domain.IntRange, now time.Time) bool {
	if r == nil || m.Status != domain.StatusExpired {
		return true
	}
	end, ok := parseDate(m.EndDate)
	if !ok {
		return false
	}
	days := int(now.Sub(end).Hours() / 24)
	return days >= r.Min && days <= r.Max
}

// inDateRange checks value against an inclusive range; either bound may be
// empty (unbounded on that side). With at least one bound set, a value that
// is empty or fails to parse does not pass.
func inDateRange(value string, r domain.DateRange) bool {
	if r.IsZero() {
		return true
	}
	t, ok := parseDate(value)
	if !ok {
		return false
	}
	if start, ok := parseDate(r.Start); ok && t.Before(start) {
		return false
	}
	if end, ok := parseDate(r.End); ok && t.After(end) {
		return false
	}
	return true
}

// parseDate accepts the normalized record form (RFC3339) plus the plain
// date forms filter widgets send.
func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{
		time.RFC3339,
		"2006-01-02T15:04:05.000Z",
		"2006-01-02 15:04:05",
		"2006-01-02",
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func containsStatus(set []domain.Status, v domain.Status) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
