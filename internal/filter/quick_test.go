package filter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jimmeey/expiry-dashboard/internal/domain"
	"github.com/jimmeey/expiry-dashboard/internal/filter"
)

func TestApplyQuick_NoTokensReturnsInputUnchanged(t *testing.T) {
	records := []domain.MemberRecord{{UniqueID: "U1"}}

	got := filter.ApplyQuick(records, nil, now)

	assert.Equal(t, records, got)
}

// TestApplyQuick_TokensIntersect: activating both "active" and "sessions"
// keeps only records with status Active AND sessionsLeft > 0.
func TestApplyQuick_TokensIntersect(t *testing.T) {
	records := []domain.MemberRecord{
		{UniqueID: "U1", Status: domain.StatusActive, SessionsLeft: 3},
		{UniqueID: "U2", Status: domain.StatusActive, SessionsLeft: 0},
		{UniqueID: "U3", Status: domain.StatusExpired, SessionsLeft: 3},
	}

	got := filter.ApplyQuick(records, []string{"active", "sessions"}, now)

	assert.Equal(t, []string{"U1"}, ids(got))
}

func TestApplyQuick_StatusTokens(t *testing.T) {
	records := []domain.MemberRecord{
		{UniqueID: "U1", Status: domain.StatusActive},
		{UniqueID: "U2", Status: domain.StatusExpired},
	}

	assert.Equal(t, []string{"U1"}, ids(filter.ApplyQuick(records, []string{"active"}, now)))
	assert.Equal(t, []string{"U2"}, ids(filter.ApplyQuick(records, []string{"expired"}, now)))
}

func TestApplyQuick_SessionTokens(t *testing.T) {
	records := []domain.MemberRecord{
		{UniqueID: "U1", SessionsLeft: 2},
		{UniqueID: "U2", SessionsLeft: 0},
	}

	assert.Equal(t, []string{"U1"}, ids(filter.ApplyQuick(records, []string{"sessions"}, now)))
	assert.Equal(t, []string{"U2"}, ids(filter.ApplyQuick(records, []string{"no-sessions"}, now)))
}

func TestApplyQuick_RecentAndWeekly(t *testing.T) {
	records := []domain.MemberRecord{
		{UniqueID: "U1", OrderDate: "2025-06-12T00:00:00Z"}, // 3 days ago
		{UniqueID: "U2", OrderDate: "2025-05-25T00:00:00Z"}, // 21 days ago
		{UniqueID: "U3", OrderDate: "2024-01-01T00:00:00Z"},
		{UniqueID: "U4", OrderDate: "junk"},
	}

	assert.Equal(t, []string{"U1", "U2"}, ids(filter.ApplyQuick(records, []string{"recent"}, now)))
	assert.Equal(t, []string{"U1"}, ids(filter.ApplyQuick(records, []string{"weekly"}, now)))
}

// TestApplyQuick_Expiring keeps records whose end date falls between now and
// thirty days out; already-expired records never qualify.
func TestApplyQuick_Expiring(t *testing.T) {
	records := []domain.MemberRecord{
		{UniqueID: "U1", EndDate: "2025-06-20T00:00:00Z"}, // 5 days out
		{UniqueID: "U2", EndDate: "2025-06-10T00:00:00Z"}, // already past
		{UniqueID: "U3", EndDate: "2025-09-01T00:00:00Z"}, // beyond the window
		{UniqueID: "U4", EndDate: ""},
	}

	got := filter.ApplyQuick(records, []string{"expiring"}, now)

	assert.Equal(t, []string{"U1"}, ids(got))
}

func TestApplyQuick_LocationToken(t *testing.T) {
	records := []domain.MemberRecord{
		{UniqueID: "U1", Location: "Kwality House, Kemps Corner"},
		{UniqueID: "U2", Location: "Supreme HQ, Bandra"},
	}

	got := filter.ApplyQuick(records, []string{"location-Supreme HQ, Bandra"}, now)

	assert.Equal(t, []string{"U2"}, ids(got))
}

// TestApplyQuick_UnknownTokenFailsOpen: a token this build does not know
// passes everything, so a stale UI chip never blanks the table.
func TestApplyQuick_UnknownTokenFailsOpen(t *testing.T) {
	records := []domain.MemberRecord{
		{UniqueID: "U1", Status: domain.StatusActive},
		{UniqueID: "U2", Status: domain.StatusExpired},
	}

	got := filter.ApplyQuick(records, []string{"hot-leads"}, now)

	assert.Equal(t, []string{"U1", "U2"}, ids(got))
}

func TestApplyQuick_UnknownTokenStillIntersectsWithKnown(t *testing.T) {
	records := []domain.MemberRecord{
		{UniqueID: "U1", Status: domain.StatusActive},
		{UniqueID: "U2", Status: domain.StatusExpired},
	}

	got := filter.ApplyQuick(records, []string{"hot-leads", "expired"}, now)

	assert.Equal(t, []string{"U2"}, ids(got))
}
