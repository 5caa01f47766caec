package domain

// Annotation is the user-entered overlay attached to a MemberRecord:
// free-text comments and notes, an ordered tag list, and the date the note
// refers to. The zero value is the canonical "no annotation": empty strings
// and a nil tag slice, never a null sentinel with distinct meaning.
type Annotation struct {
	Comments string
	Notes    string
	Tags     []string
	NoteDate string
}

// IsZero reports whether the annotation carries no user content at all.
// NoteDate alone does not count: a date without comments, notes, or tags is
// not worth preserving across a refresh.
func (a Annotation) IsZero() bool {
	return a.Comments == "" && a.Notes == "" && len(a.Tags) == 0
}

// AnnotationRecord is one saved note set as stored in the annotation feed.
// UniqueID is the primary key: the save path replaces the existing row with
// a matching UniqueID in place, so two saves for the same id always collapse
// to one row with the latest content.
type AnnotationRecord struct {
	UniqueID string
	MemberID string
	Email    string
	Comments string
	Notes    string
	// Tags is serialized as a ", "-delimited string on the wire and parsed
	// into a sequence in memory.
	Tags     []string
	NoteDate string
	// LastUpdated is stamped by the save path at write time, RFC3339 UTC.
	LastUpdated string
	// PersistenceKey is "<uniqueId>-<memberId>-<lowercase email>",
	// recomputed on every write. Diagnostic only.
	PersistenceKey string
}

// Annotation returns the overlay portion of the record.
func (r AnnotationRecord) Annotation() Annotation {
	return Annotation{
		Comments: r.Comments,
		Notes:    r.Notes,
		Tags:     r.Tags,
		NoteDate: r.NoteDate,
	}
}
