package filter

import (
	"strings"
	"time"

	"github.com/jimmeey/expiry-dashboard/internal/domain"
)

// locationTokenPrefix marks the dynamically-generated per-location tokens,
// e.g. "location-Kwality House, Kemps Corner".
const locationTokenPrefix = "location-"

// ApplyQuick returns the records passing every active quick-filter token.
// Tokens are intersected, not unioned: "active" + "sessions" keeps only
// records that are Active AND have sessions left. Unrecognized tokens pass
// every record (fail open), so a stale token from the UI never blanks the
// table. No tokens means no filtering.
func ApplyQuick(records []domain.MemberRecord, tokens []string, now time.Time) []domain.MemberRecord {
	if len(tokens) == 0 {
		return records
	}
	out := make([]domain.MemberRecord, 0, len(records))
	for _, m := range records {
		if passesAll(m, tokens, now) {
			out = append(out, m)
		}
	}
	return out
}

func passesAll(m domain.MemberRecord, tokens []string, now time.Time) bool {
	for _, tok := range tokens {
		if !passes(m, tok, now) {
			return false
		}
	}
	return true
}

func passes(m domain.MemberRecord, token string, now time.Time) bool {
	switch token {
	case "active":
		return m.Status == domain.StatusActive
	case "expired":
		return m.Status == domain.StatusExpired
	case "sessions":
		return m.SessionsLeft > 0
	case "no-sessions":
		return m.SessionsLeft == 0
	case "recent":
		return orderedWithin(m, now, 30)
	case "weekly":
		return orderedWithin(m, now, 7)
	case "expiring":
		end, ok := parseDate(m.EndDate)
		if !ok {
			return false
		}
		return !end.Before(now) && !end.After(now.AddDate(0, 0, 30))
	default:
		if loc, isLocation := strings.CutPrefix(token, locationTokenPrefix); isLocation {
			return m.Location == loc
		}
		return true
	}
}

// orderedWithin reports whether the record's order date falls inside the
// last days days. Unparsable dates never qualify.
func orderedWithin(m domain.MemberRecord, now time.Time, days int) bool {
	ordered, ok := parseDate(m.OrderDate)
	if !ok {
		return false
	}
	return !ordered.Before(now.AddDate(0, 0, -days))
}
