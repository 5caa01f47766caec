// Package parse converts raw member feed rows into typed domain records.
// Decoding fails closed per field, never per row: a malformed date or
// number cell gets a documented default and the load carries on. No load
// is ever aborted because one row is bad.
package parse

import (
	"strconv"
	"strings"
	"time"

	"github.com/jimmeey/expiry-dashboard/internal/domain"
	"github.com/jimmeey/expiry-dashboard/internal/rowfeed"
)

// Members decodes a raw member feed (header row first) into one
// MemberRecord per data row, order preserved. An empty or header-only feed
// yields an empty slice.
func Members(rows [][]string) []domain.MemberRecord {
	if len(rows) <= 1 {
		return []domain.MemberRecord{}
	}
	out := make([]domain.MemberRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		out = append(out, Member(row))
	}
	return out
}

// Member decodes a single positional member row.
func Member(row []string) domain.MemberRecord {
	cell := func(i int) string { return rowfeed.Cell(row, i) }

	uniqueID := cell(rowfeed.MemberColUniqueID)
	memberID := cell(rowfeed.MemberColMemberID)
	firstName := cell(rowfeed.MemberColFirstName)
	lastName := cell(rowfeed.MemberColLastName)
	email := cell(rowfeed.MemberColEmail)

	sessionsLeft := parseLeadingInt(cell(rowfeed.MemberColSessionsLeft))
	if sessionsLeft < 0 {
		sessionsLeft = 0
	}

	// Legacy feeds without the total-sessions column shift phone/address
	// one position left, hence the fallback cells.
	phone := cell(rowfeed.MemberColPhone)
	if phone == "" {
		phone = cell(rowfeed.MemberColTotalSessions)
	}
	address := cell(rowfeed.MemberColAddress)
	if address == "" {
		address = cell(rowfeed.MemberColPhone)
	}

	orderDate := NormalizeDate(cell(rowfeed.MemberColOrderDate))

	return domain.MemberRecord{
		UniqueID:       uniqueID,
		MemberID:       memberID,
		FirstName:      firstName,
		LastName:       lastName,
		Email:          email,
		MembershipName: cell(rowfeed.MemberColMembershipName),
		EndDate:        NormalizeDate(cell(rowfeed.MemberColEndDate)),
		Location:       cell(rowfeed.MemberColLocation),
		SessionsLeft:   sessionsLeft,
		TotalSessions:  EstimateTotalSessions(sessionsLeft, cell(rowfeed.MemberColTotalSessions)),
		ItemID:         cell(rowfeed.MemberColItemID),
		OrderDate:      orderDate,
		StartDate:      orderDate,
		SoldBy:         cell(rowfeed.MemberColSoldBy),
		MembershipID:   cell(rowfeed.MemberColMembershipID),
		Frozen:         cell(rowfeed.MemberColFrozen),
		Paid:           cell(rowfeed.MemberColPaid),
		Status:         parseStatus(cell(rowfeed.MemberColStatus)),
		Phone:          phone,
		Address:        address,
		Tags:           []string{},
		PersistenceKey: strings.ToLower(uniqueID + "-" + memberID + "-" + email),
		UniqueIdentifier: strings.ToLower(
			memberID + "-" + email + "-" + firstName + "-" + lastName),
	}
}

// sessionLadder holds the common membership package sizes used to estimate
// a total when the feed has no explicit total-sessions column.
var sessionLadder = [...]int{4, 8, 12, 20}

// EstimateTotalSessions returns the total-sessions value for a row: the
// explicit cell when it parses as an integer, otherwise the smallest ladder
// step >= sessionsLeft. Values above the ladder pass through unchanged
// (unlimited/custom packages); sessionsLeft 0 yields 0.
//
// The ladder path is a heuristic, not a measurement. Either way the result
// is never below sessionsLeft.
func EstimateTotalSessions(sessionsLeft int, explicitCell string) int {
	if explicitCell != "" {
		if n, ok := leadingInt(explicitCell); ok {
			if n < sessionsLeft {
				return sessionsLeft
			}
			return n
		}
	}
	if sessionsLeft <= 0 {
		return 0
	}
	for _, step := range sessionLadder {
		if sessionsLeft <= step {
			return step
		}
	}
	return sessionsLeft
}

// NormalizeDate converts a feed date cell to an RFC3339 UTC timestamp.
// "" and "-" normalize to ""; a cell that matches none of the known layouts
// is returned verbatim so the raw value is still visible downstream.
//
// Slash dates ("MM/DD/YYYY", optionally followed by a time of day) keep
// only the civil date and normalize to UTC midnight; the sheet's time
// component has proven unreliable across locales.
func NormalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return ""
	}

	if strings.Contains(s, "/") {
		if t, ok := parseSlashDate(s); ok {
			return t.Format(time.RFC3339)
		}
		return s
	}

	for _, layout := range []string{
		time.RFC3339,
		"2006-01-02T15:04:05.000Z",
		"2006-01-02 15:04:05",
		"2006-01-02",
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC().Format(time.RFC3339)
		}
	}
	return s
}

// parseSlashDate handles "MM/DD/YYYY" with an optional trailing time part.
func parseSlashDate(s string) (time.Time, bool) {
	datePart := strings.SplitN(s, " ", 2)[0]
	parts := strings.Split(datePart, "/")
	if len(parts) != 3 {
		return time.Time{}, false
	}
	month, err1 := strconv.Atoi(parts[0])
	day, err2 := strconv.Atoi(parts[1])
	year, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return time.Time{}, false
	}
	// time.Date normalizes out-of-range components (13/32/... rolls over)
	// rather than rejecting them, matching the tolerant upstream behavior.
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
}

// parseStatus maps the status cell to the two-value enum. Blank and
// unrecognized cells both collapse to Expired.
func parseStatus(s string) domain.Status {
	if strings.EqualFold(strings.TrimSpace(s), string(domain.StatusActive)) {
		return domain.StatusActive
	}
	return domain.StatusExpired
}

// parseLeadingInt reads the integer prefix of a cell ("12 sessions" → 12),
// returning 0 when there is none.
func parseLeadingInt(s string) int {
	n, _ := leadingInt(s)
	return n
}

func leadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	i := 0
	if i < len(s) && (s[i] == '-' || s[i] == '+') {
		i++
	}
	j := i
	for j < len(s) && s[j] >= '0' && s[j] <= '9' {
		j++
	}
	if j == i {
		return 0, false
	}
	n, err := strconv.Atoi(s[:j])
	if err != nil {
		return 0, false
	}
	return n, true
}
