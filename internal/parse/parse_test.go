package parse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jimmeey/expiry-dashboard/internal/domain"
	"github.com/jimmeey/expiry-dashboard/internal/parse"
)

// TestMembers_FullRow decodes a representative feed row end to end.
func TestMembers_FullRow(t *testing.T) {
	rows := [][]string{
		{"header"},
		{"U1", "M1", "Jane", "Doe", "jane@x.com", "Plan A", "2024-01-10", "Loc1",
			"5", "I1", "2023-01-10", "-", "-", "-", "-", "Active"},
	}

	members := parse.Members(rows)
	require.Len(t, members, 1)

	m := members[0]
	assert.Equal(t, "U1", m.UniqueID)
	assert.Equal(t, "M1", m.MemberID)
	assert.Equal(t, "Jane", m.FirstName)
	assert.Equal(t, "Doe", m.LastName)
	assert.Equal(t, "jane@x.com", m.Email)
	assert.Equal(t, "Plan A", m.MembershipName)
	assert.Equal(t, "Loc1", m.Location)
	assert.Equal(t, 5, m.SessionsLeft)
	assert.Equal(t, 8, m.TotalSessions, "5 sessions left rounds up the package ladder to 8")
	assert.Equal(t, domain.StatusActive, m.Status)
	assert.Equal(t, "2024-01-10T00:00:00Z", m.EndDate)
	assert.Equal(t, "2023-01-10T00:00:00Z", m.OrderDate)
	assert.Equal(t, m.OrderDate, m.StartDate)
	assert.Equal(t, "", m.Comments)
	assert.Equal(t, []string{}, m.Tags)
	assert.Equal(t, "u1-m1-jane@x.com", m.PersistenceKey)
	assert.Equal(t, "m1-jane@x.com-jane-doe", m.UniqueIdentifier)
}

func TestMembers_HeaderOnlyFeed(t *testing.T) {
	members := parse.Members([][]string{{"Unique ID", "Member ID"}})
	require.NotNil(t, members)
	assert.Empty(t, members)
}

func TestMembers_EmptyFeed(t *testing.T) {
	members := parse.Members(nil)
	require.NotNil(t, members)
	assert.Empty(t, members)
}

// TestMember_ShortRow verifies decoding fails closed per field: missing
// trailing cells become defaults, never a dropped row.
func TestMember_ShortRow(t *testing.T) {
	m := parse.Member([]string{"U2", "M2"})

	assert.Equal(t, "U2", m.UniqueID)
	assert.Equal(t, "", m.Email)
	assert.Equal(t, 0, m.SessionsLeft)
	assert.Equal(t, 0, m.TotalSessions)
	assert.Equal(t, domain.StatusExpired, m.Status, "blank status defaults to Expired")
	assert.Equal(t, "", m.EndDate)
}

func TestMember_UnrecognizedStatusDefaultsToExpired(t *testing.T) {
	row := make([]string, 16)
	row[15] = "Suspended"
	assert.Equal(t, domain.StatusExpired, parse.Member(row).Status)
}

func TestMember_StatusCaseInsensitive(t *testing.T) {
	row := make([]string, 16)
	row[15] = "active"
	assert.Equal(t, domain.StatusActive, parse.Member(row).Status)
}

func TestMember_NegativeSessionsClampedToZero(t *testing.T) {
	row := make([]string, 16)
	row[8] = "-3"
	m := parse.Member(row)
	assert.Equal(t, 0, m.SessionsLeft)
	assert.Equal(t, 0, m.TotalSessions)
}

func TestMember_PhoneAddress(t *testing.T) {
	row := make([]string, 19)
	row[16] = "20"
	row[17] = "9820012345"
	row[18] = "12 Hill Road"
	m := parse.Member(row)
	assert.Equal(t, "9820012345", m.Phone)
	assert.Equal(t, "12 Hill Road", m.Address)
}

// TestMember_PhoneFallback covers the legacy feed layout where the
// total-sessions column is absent and phone sits one cell left.
func TestMember_PhoneFallback(t *testing.T) {
	row := make([]string, 17)
	row[16] = "9820012345"
	m := parse.Member(row)
	assert.Equal(t, "9820012345", m.Phone)
	assert.Equal(t, "", m.Address)
}

func TestEstimateTotalSessions_Ladder(t *testing.T) {
	cases := []struct {
		left int
		want int
	}{
		{0, 0},
		{1, 4},
		{4, 4},
		{5, 8},
		{8, 8},
		{9, 12},
		{12, 12},
		{13, 20},
		{20, 20},
		{21, 21}, // above the ladder, pass through
		{50, 50},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, parse.EstimateTotalSessions(tc.left, ""),
			"sessionsLeft=%d", tc.left)
	}
}

func TestEstimateTotalSessions_ExplicitColumn(t *testing.T) {
	assert.Equal(t, 10, parse.EstimateTotalSessions(5, "10"))
	// An explicit total below sessionsLeft is raised to keep the
	// total >= left invariant.
	assert.Equal(t, 5, parse.EstimateTotalSessions(5, "2"))
	// A non-numeric cell falls back to the ladder.
	assert.Equal(t, 8, parse.EstimateTotalSessions(5, "n/a"))
}

func TestNormalizeDate(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"-", ""},
		{"11/02/2023 00:00:00", "2023-11-02T00:00:00Z"},
		{"25/04/2025 19:30:00", "2027-01-04T00:00:00Z"}, // day-first input rolls over, tolerant parse
		{"01/01/2026", "2026-01-01T00:00:00Z"},
		{"2022-02-28 00:00:00", "2022-02-28T00:00:00Z"},
		{"2026-01-01T05:42:39Z", "2026-01-01T05:42:39Z"},
		{"2025-04-12T13:27:43.000Z", "2025-04-12T13:27:43Z"},
		{"2024-01-10", "2024-01-10T00:00:00Z"},
		{"not a date", "not a date"}, // unparsable cells pass through verbatim
		{"13/45/", "13/45/"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, parse.NormalizeDate(tc.in), "input %q", tc.in)
	}
}
