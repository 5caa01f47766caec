package filter

import (
	"time"

	"github.com/jimmeey/expiry-dashboard/internal/domain"
)

// allGroup is the single bucket used when no grouping is requested.
const allGroup = "All Members"

// Group partitions records by the requested dimension. It is purely an
// arrangement of an already-filtered list; no record is ever dropped or
// duplicated, and within each group input order is preserved.
// GroupByNone (or an unrecognized value) yields a single group.
func Group(records []domain.MemberRecord, by domain.GroupBy, now time.Time) map[string][]domain.MemberRecord {
	groups := map[string][]domain.MemberRecord{}
	for _, m := range records {
		key := groupKey(m, by, now)
		groups[key] = append(groups[key], m)
	}
	return groups
}

func groupKey(m domain.MemberRecord, by domain.GroupBy, now time.Time) string {
	switch by {
	case domain.GroupByLocation:
		if m.Location == "" || m.Location == "-" {
			return "Unknown Location"
		}
		return m.Location
	case domain.GroupByMembershipType:
		if m.MembershipName == "" {
			return "Unknown Membership"
		}
		return m.MembershipName
	case domain.GroupByStatus:
		return string(m.Status)
	case domain.GroupByUsage:
		return UsageBucket(m.TotalSessions, m.SessionsLeft)
	case domain.GroupByDaysLapsed:
		return daysLapsedBand(m, now)
	default:
		return allGroup
	}
}

// daysLapsedBand assigns expired members to coarse lapse bands; active
// members and expired members without a parsable end date get their own
// buckets so nothing is dropped.
func daysLapsedBand(m domain.MemberRecord, now time.Time) string {
	if m.Status != domain.StatusExpired {
		return "Not Lapsed"
	}
	end, ok := parseDate(m.EndDate)
	if !ok {
		return "Unknown Lapse"
	}
	days := int(now.Sub(end).Hours() / 24)
	switch {
	case days <= 30:
		return "0-30 Days"
	case days <= 60:
		return "31-60 Days"
	case days <= 90:
		return "61-90 Days"
	case days <= 180:
		return "91-180 Days"
	default:
		return "180+ Days"
	}
}
