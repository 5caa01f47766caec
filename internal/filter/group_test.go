package filter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jimmeey/expiry-dashboard/internal/domain"
	"github.com/jimmeey/expiry-dashboard/internal/filter"
)

func TestGroup_NoneYieldsSingleGroup(t *testing.T) {
	records := []domain.MemberRecord{{UniqueID: "U1"}, {UniqueID: "U2"}}

	groups := filter.Group(records, domain.GroupByNone, now)

	require.Len(t, groups, 1)
	assert.Len(t, groups["All Members"], 2)
}

func TestGroup_ByLocation(t *testing.T) {
	records := []domain.MemberRecord{
		{UniqueID: "U1", Location: "Bandra"},
		{UniqueID: "U2", Location: "Bandra"},
		{UniqueID: "U3", Location: ""},
		{UniqueID: "U4", Location: "-"},
	}

	groups := filter.Group(records, domain.GroupByLocation, now)

	assert.Equal(t, []string{"U1", "U2"}, ids(groups["Bandra"]))
	assert.Equal(t, []string{"U3", "U4"}, ids(groups["Unknown Location"]), "blank and dash collapse together")
}

func TestGroup_ByStatus(t *testing.T) {
	records := []domain.MemberRecord{
		{UniqueID: "U1", Status: domain.StatusActive},
		{UniqueID: "U2", Status: domain.StatusExpired},
	}

	groups := filter.Group(records, domain.GroupByStatus, now)

	assert.Equal(t, []string{"U1"}, ids(groups["Active"]))
	assert.Equal(t, []string{"U2"}, ids(groups["Expired"]))
}

// TestGroup_Partition: grouping rearranges, never drops or duplicates.
func TestGroup_Partition(t *testing.T) {
	records := []domain.MemberRecord{
		{UniqueID: "U1", TotalSessions: 10, SessionsLeft: 10},
		{UniqueID: "U2", TotalSessions: 10, SessionsLeft: 0},
		{UniqueID: "U3", TotalSessions: 10, SessionsLeft: 7},
	}

	groups := filter.Group(records, domain.GroupByUsage, now)

	total := 0
	for _, g := range groups {
		total += len(g)
	}
	assert.Equal(t, len(records), total)
}

func TestGroup_ByDaysLapsed(t *testing.T) {
	records := []domain.MemberRecord{
		{UniqueID: "U1", Status: domain.StatusActive},
		{UniqueID: "U2", Status: domain.StatusExpired, EndDate: "2025-06-01T00:00:00Z"}, // 14 days
		{UniqueID: "U3", Status: domain.StatusExpired, EndDate: "2024-06-01T00:00:00Z"}, // over a year
		{UniqueID: "U4", Status: domain.StatusExpired, EndDate: "junk"},
	}

	groups := filter.Group(records, domain.GroupByDaysLapsed, now)

	assert.Equal(t, []string{"U1"}, ids(groups["Not Lapsed"]))
	assert.Equal(t, []string{"U2"}, ids(groups["0-30 Days"]))
	assert.Equal(t, []string{"U3"}, ids(groups["180+ Days"]))
	assert.Equal(t, []string{"U4"}, ids(groups["Unknown Lapse"]))
}
