// Package reconcile joins parsed member records with the annotation lookup.
// This is the one place member data and user annotations meet; everything
// here is pure: no I/O, no mutation of inputs.
package reconcile

import (
	"github.com/jimmeey/expiry-dashboard/internal/annotation"
	"github.com/jimmeey/expiry-dashboard/internal/domain"
)

// Enrich attaches the best-available annotation to every member record:
// exact uniqueId match first, then the memberId-email composite, then the
// empty annotation. The result is 1:1 with the input; order preserved, no
// drops, no duplication.
func Enrich(members []domain.MemberRecord, lookup annotation.Lookup) []domain.MemberRecord {
	out := make([]domain.MemberRecord, len(members))
	for i, m := range members {
		a, _ := lookup.Find(m.UniqueID, m.FallbackKey())
		m.Comments = a.Comments
		m.Notes = a.Notes
		m.NoteDate = a.NoteDate
		m.Tags = a.Tags
		if m.Tags == nil {
			m.Tags = []string{}
		}
		out[i] = m
	}
	return out
}
