// Package annotation converts raw annotation store rows to and from domain
// records, builds the two-key lookup used by the reconciler, and implements
// the row-level upsert behind the save operation.
package annotation

import (
	"strings"
	"time"

	"github.com/jimmeey/expiry-dashboard/internal/domain"
	"github.com/jimmeey/expiry-dashboard/internal/rowfeed"
)

// tagSeparator joins and splits the tag list on the wire.
const tagSeparator = ", "

// Lookup maps annotation keys to overlays. Each stored annotation is
// reachable under two keys populated from the same row: its raw uniqueId
// and the "<memberId>-<lowercase email>" composite. That is intentional
// redundancy against identifier churn, not ambiguity.
type Lookup map[string]domain.Annotation

// BuildLookup indexes the annotation store (header row first) by both keys.
// Rows with an empty uniqueId cell are skipped; they cannot be matched
// reliably. The index is built in one pass over the raw feed order; if two
// rows ever share a key, the later row wins silently. Known latent quirk of
// the fallback design, reproduced deliberately.
func BuildLookup(rows [][]string) Lookup {
	lookup := Lookup{}
	if len(rows) <= 1 {
		return lookup
	}
	for _, row := range rows[1:] {
		uniqueID := rowfeed.Cell(row, rowfeed.AnnotationColUniqueID)
		if uniqueID == "" {
			continue
		}
		a := Decode(row).Annotation()
		lookup[uniqueID] = a

		memberID := rowfeed.Cell(row, rowfeed.AnnotationColMemberID)
		email := rowfeed.Cell(row, rowfeed.AnnotationColEmail)
		if memberID != "" && email != "" {
			lookup[memberID+"-"+strings.ToLower(email)] = a
		}
	}
	return lookup
}

// Find returns the annotation for the primary key, falling back to the
// composite key, falling back to the zero annotation. The boolean reports
// whether either key hit.
func (l Lookup) Find(uniqueID, fallbackKey string) (domain.Annotation, bool) {
	if a, ok := l[uniqueID]; ok {
		return a, true
	}
	if a, ok := l[fallbackKey]; ok {
		return a, true
	}
	return domain.Annotation{Tags: []string{}}, false
}

// Decode converts one positional annotation row into a record.
func Decode(row []string) domain.AnnotationRecord {
	return domain.AnnotationRecord{
		UniqueID:       rowfeed.Cell(row, rowfeed.AnnotationColUniqueID),
		MemberID:       rowfeed.Cell(row, rowfeed.AnnotationColMemberID),
		Email:          rowfeed.Cell(row, rowfeed.AnnotationColEmail),
		Comments:       rowfeed.Cell(row, rowfeed.AnnotationColComments),
		Notes:          rowfeed.Cell(row, rowfeed.AnnotationColNotes),
		Tags:           ParseTags(rowfeed.Cell(row, rowfeed.AnnotationColTags)),
		NoteDate:       rowfeed.Cell(row, rowfeed.AnnotationColNoteDate),
		LastUpdated:    rowfeed.Cell(row, rowfeed.AnnotationColLastUpdated),
		PersistenceKey: rowfeed.Cell(row, rowfeed.AnnotationColPersistenceKey),
	}
}

// Encode serializes a record back into the fixed 9-cell row shape.
func Encode(rec domain.AnnotationRecord) []string {
	return []string{
		rec.UniqueID,
		rec.MemberID,
		rec.Email,
		rec.Comments,
		rec.Notes,
		JoinTags(rec.Tags),
		rec.NoteDate,
		rec.LastUpdated,
		rec.PersistenceKey,
	}
}

// ParseTags splits a ", "-delimited tag cell, discarding empty and
// whitespace-only entries. An empty cell yields an empty (non-nil) slice.
func ParseTags(cell string) []string {
	tags := []string{}
	if cell == "" {
		return tags
	}
	for _, t := range strings.Split(cell, tagSeparator) {
		if strings.TrimSpace(t) != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// JoinTags is the inverse of ParseTags.
func JoinTags(tags []string) string {
	return strings.Join(tags, tagSeparator)
}

// Upsert returns the annotation rows with rec written in: the first data
// row whose uniqueId cell equals rec.UniqueID exactly is replaced in place,
// otherwise a new row is appended. uniqueId is the sole key for write
// idempotence; the composite fallback is never consulted on the write
// path, so two saves with the same id always yield one row.
//
// The written row gets a fresh LastUpdated stamp (RFC3339 UTC of now) and a
// recomputed persistence key. A missing header row is restored first. The
// input slice is not modified.
func Upsert(rows [][]string, rec domain.AnnotationRecord, now time.Time) [][]string {
	rec.LastUpdated = now.UTC().Format(time.RFC3339)
	rec.PersistenceKey = rec.UniqueID + "-" + rec.MemberID + "-" + strings.ToLower(rec.Email)
	encoded := Encode(rec)

	out := make([][]string, 0, len(rows)+1)
	if len(rows) == 0 {
		out = append(out, rowfeed.AnnotationHeader())
	} else {
		out = append(out, rows...)
	}

	for i, row := range out[1:] {
		if rowfeed.Cell(row, rowfeed.AnnotationColUniqueID) == rec.UniqueID {
			out[i+1] = encoded
			return out
		}
	}
	return append(out, encoded)
}
