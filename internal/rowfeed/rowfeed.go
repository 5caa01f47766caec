// Package rowfeed defines the contracts for the two tabular feeds the
// dashboard consumes: the member feed and the annotation store. Both are
// fixed-width ordered string rows with a header in row 0. Column order is
// part of the contract; decoding is positional, never header-name based,
// so reordering columns upstream breaks parsing silently.
package rowfeed

import "context"

// Member feed column positions (sheet columns A..S).
const (
	MemberColUniqueID       = 0
	MemberColMemberID       = 1
	MemberColFirstName      = 2
	MemberColLastName       = 3
	MemberColEmail          = 4
	MemberColMembershipName = 5
	MemberColEndDate        = 6
	MemberColLocation       = 7
	MemberColSessionsLeft   = 8
	MemberColItemID         = 9
	MemberColOrderDate      = 10
	MemberColSoldBy         = 11
	MemberColMembershipID   = 12
	MemberColFrozen         = 13
	MemberColPaid           = 14
	MemberColStatus         = 15
	MemberColTotalSessions  = 16
	MemberColPhone          = 17
	MemberColAddress        = 18
)

// Annotation store column positions (sheet columns A..I).
const (
	AnnotationColUniqueID       = 0
	AnnotationColMemberID       = 1
	AnnotationColEmail          = 2
	AnnotationColComments       = 3
	AnnotationColNotes          = 4
	AnnotationColTags           = 5
	AnnotationColNoteDate       = 6
	AnnotationColLastUpdated    = 7
	AnnotationColPersistenceKey = 8
)

// AnnotationHeader returns the fixed header row of the annotation store.
// A brand-new (or unreachable) store is represented as this header alone.
func AnnotationHeader() []string {
	return []string{
		"Unique ID", "Member ID", "Email", "Comments", "Notes",
		"Tags", "Note Date", "Last Updated", "Persistence Key",
	}
}

// Cell returns row[i], or "" when the row is too short. Feeds routinely
// truncate trailing empty cells, so a short row is not an error.
func Cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

// Source reads the two raw feeds.
type Source interface {
	// MemberRows returns the member feed including its header row.
	// Fails with an error wrapping domain.ErrFetch on transport failure.
	MemberRows(ctx context.Context) ([][]string, error)

	// AnnotationRows returns the annotation store including its header row.
	// A store that does not exist yet is returned as a header-only result,
	// not an error; callers proceed with zero annotations.
	AnnotationRows(ctx context.Context) ([][]string, error)
}

// Writer replaces the full contents of the annotation store.
type Writer interface {
	// WriteAnnotationRows overwrites the annotation store with rows
	// (header included). Fails with an error wrapping domain.ErrWrite.
	WriteAnnotationRows(ctx context.Context, rows [][]string) error
}

// Store combines both directions; the concrete backends (Google Sheets,
// Postgres) implement it.
type Store interface {
	Source
	Writer
}
