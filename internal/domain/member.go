// Package domain contains the core data types for the membership dashboard.
// This package has zero external dependencies and is imported by every other
// internal package (parse, reconcile, merge, filter, service, handler).
package domain

import "strings"

// Status is the membership state carried in the feed's status column.
// Anything the parser does not recognize collapses to StatusExpired.
type Status string

const (
	StatusActive  Status = "Active"
	StatusExpired Status = "Expired"
)

// MemberRecord is one membership/order line from the member feed, enriched
// with the annotation overlay attached by the reconciler.
//
// Date fields (EndDate, OrderDate, StartDate) hold normalized ISO-8601
// timestamps, or the original unparsed cell text when normalization failed.
// Records are recreated wholesale on every fetch; identity across fetches is
// established only by UniqueID (with the memberId-email composite as a
// fallback), never by object identity.
type MemberRecord struct {
	// UniqueID is the feed's first column and the sole reliable join key
	// between member data and annotation data. May be empty for malformed
	// rows; when non-empty it is unique within one fetch batch.
	UniqueID       string `json:"uniqueId"`
	MemberID       string `json:"memberId"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Email          string `json:"email"`
	MembershipName string `json:"membershipName"`
	EndDate        string `json:"endDate"`
	Location       string `json:"location"`

	// SessionsLeft is never negative; unparsable cells decode as 0.
	SessionsLeft int `json:"sessionsLeft"`
	// TotalSessions is always >= SessionsLeft. When the feed carries no
	// explicit total-sessions column the value is a ladder estimate, not a
	// measurement; see parse.EstimateTotalSessions.
	TotalSessions int `json:"totalSessions"`

	ItemID       string `json:"itemId"`
	OrderDate    string `json:"orderDate"`
	StartDate    string `json:"startDate"`
	SoldBy       string `json:"soldBy"`
	MembershipID string `json:"membershipId"`
	Frozen       string `json:"frozen"`
	Paid         string `json:"paid"`
	Status       Status `json:"status"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`

	// Annotation overlay. The member feed never carries live annotation
	// data; these fields are attached from the annotation store and are
	// empty (never null) when no annotation matches.
	Comments string   `json:"comments"`
	Notes    string   `json:"notes"`
	Tags     []string `json:"tags"`
	NoteDate string   `json:"noteDate"`

	// Diagnostic composites; not ownership keys.
	PersistenceKey   string `json:"persistenceKey"`
	UniqueIdentifier string `json:"uniqueIdentifier"`
}

// FallbackKey returns the composite annotation lookup key used when the
// primary UniqueID misses: "<memberId>-<lowercase email>". The primary feed's
// identifier column can be re-generated on sheet edits, so this more stable
// composite prevents silent loss of annotations when the primary id churns.
func (m MemberRecord) FallbackKey() string {
	return m.MemberID + "-" + strings.ToLower(m.Email)
}
