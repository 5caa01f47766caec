package domain

// DateRange bounds a date field inclusively. Bounds are ISO-8601 or
// YYYY-MM-DD strings; an empty bound leaves that side unbounded. The zero
// value means "no clause".
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// IsZero reports whether neither bound is set.
func (d DateRange) IsZero() bool { return d.Start == "" && d.End == "" }

// IntRange bounds an integer field inclusively. Used through a pointer on
// FilterOptions so that nil means "no clause"; a literal 0..0 range is a
// real (and useful) filter.
type IntRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// GroupBy names the partitioning applied by the grouping helper. Grouping
// never selects records; it only arranges the already-filtered list.
type GroupBy string

const (
	GroupByNone           GroupBy = "none"
	GroupByLocation       GroupBy = "location"
	GroupByMembershipType GroupBy = "membershipType"
	GroupByStatus         GroupBy = "status"
	GroupByUsage          GroupBy = "usage"
	GroupByDaysLapsed     GroupBy = "daysLapsed"
)

// FilterOptions is the structured filter configuration. Every clause is
// skipped (passes all records) when its option is empty or unset; the
// engine ANDs all active clauses together.
type FilterOptions struct {
	// Status keeps records whose status is in the set.
	Status []Status `json:"status"`
	// Locations keeps records whose location is in the set.
	Locations []string `json:"locations"`
	// MembershipTypes keeps records whose membershipName is in the set.
	MembershipTypes []string `json:"membershipTypes"`
	// DateRange bounds EndDate (the expiry window).
	DateRange DateRange `json:"dateRange"`
	// JoinedDateRange bounds OrderDate.
	JoinedDateRange DateRange `json:"joinedDateRange"`
	// SessionsRange bounds SessionsLeft.
	SessionsRange *IntRange `json:"sessionsRange"`
	// MembershipUsage keeps records whose usage bucket label is in the set.
	MembershipUsage []string `json:"membershipUsage"`
	// DaysLapsed bounds floor(now - EndDate) in days. Evaluated only for
	// expired members; active records always pass this clause.
	DaysLapsed *IntRange `json:"daysLapsed"`
	// PaymentStatus keeps records whose paid cell is in the set.
	PaymentStatus []string `json:"paymentStatus"`
	// GroupBy is consumed by the grouping helper, not by selection.
	GroupBy GroupBy `json:"groupBy"`
}
