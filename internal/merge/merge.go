// Package merge keeps user annotations visible across refresh cycles.
//
// A save and a periodic refetch are independent operations: a refetch
// snapshot can predate a save that just landed in the annotation store, and
// without intervention the fresh (empty) fetch would appear to wipe the
// user's note until the next cycle. The Store below holds the last-known
// enriched list and merges each fresh fetch against it field by field,
// which makes that race benign rather than data-destroying.
package merge

import (
	"sync"
	"time"

	"github.com/jimmeey/expiry-dashboard/internal/domain"
)

// Store is the session-scoped holder of the last-known enriched member
// list. It is an explicit, passed-around object with a single owner (the
// membership service), not an ambient singleton. The mutex exists because
// HTTP handlers and the background refresher touch it concurrently; there
// is still only one writer-of-record per deployment.
type Store struct {
	mu      sync.Mutex
	records []domain.MemberRecord
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{}
}

// Merge folds a freshly-fetched list into the store and returns the result.
//
// On first load (empty store) the incoming list is adopted as-is. Otherwise
// each incoming record is matched against the previous copy by uniqueId and
// merged per annotation field: a previous non-empty comments/notes/tags/
// noteDate value survives only when the incoming one is empty; a non-empty
// incoming value always wins (prefer non-empty, prefer newer). Records are
// otherwise taken wholesale from the fresh fetch; member fields are never
// merged, only recreated.
func (s *Store) Merge(incoming []domain.MemberRecord) []domain.MemberRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.records) == 0 {
		s.records = append([]domain.MemberRecord(nil), incoming...)
		return s.snapshotLocked()
	}

	// Only previous records that actually carry user content participate;
	// a bare noteDate is not worth preserving on its own.
	previous := make(map[string]domain.Annotation, len(s.records))
	for _, m := range s.records {
		a := domain.Annotation{Comments: m.Comments, Notes: m.Notes, Tags: m.Tags, NoteDate: m.NoteDate}
		if m.UniqueID != "" && !a.IsZero() {
			previous[m.UniqueID] = a
		}
	}

	merged := make([]domain.MemberRecord, len(incoming))
	for i, m := range incoming {
		if prev, ok := previous[m.UniqueID]; ok {
			if m.Comments == "" {
				m.Comments = prev.Comments
			}
			if m.Notes == "" {
				m.Notes = prev.Notes
			}
			if len(m.Tags) == 0 && len(prev.Tags) > 0 {
				m.Tags = prev.Tags
			}
			if m.NoteDate == "" {
				m.NoteDate = prev.NoteDate
			}
		}
		merged[i] = m
	}

	s.records = merged
	return s.snapshotLocked()
}

// ApplyLocal overlays a just-saved annotation onto the cached record with
// the given uniqueId, so the UI reflects a successful save immediately
// instead of waiting for the next refetch to round-trip through the store.
// A record that is not currently cached is left alone; the next fetch will
// pick its annotation up from the store itself.
//
// An empty NoteDate keeps the record's existing date, or stamps now when
// there is none.
func (s *Store) ApplyLocal(uniqueID string, a domain.Annotation, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.records {
		if s.records[i].UniqueID != uniqueID {
			continue
		}
		s.records[i].Comments = a.Comments
		s.records[i].Notes = a.Notes
		s.records[i].Tags = a.Tags
		if s.records[i].Tags == nil {
			s.records[i].Tags = []string{}
		}
		switch {
		case a.NoteDate != "":
			s.records[i].NoteDate = a.NoteDate
		case s.records[i].NoteDate == "":
			s.records[i].NoteDate = now.UTC().Format(time.RFC3339)
		}
		return
	}
}

// Snapshot returns a copy of the current list. Callers may filter and sort
// it freely without affecting the store.
func (s *Store) Snapshot() []domain.MemberRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Len reports how many records are cached.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

func (s *Store) snapshotLocked() []domain.MemberRecord {
	return append([]domain.MemberRecord(nil), s.records...)
}
