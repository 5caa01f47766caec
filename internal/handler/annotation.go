package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jimmeey/expiry-dashboard/internal/domain"
)

// annotationRequest is the body of PUT /api/members/{uniqueID}/annotation.
type annotationRequest struct {
	MemberID string   `json:"memberId"`
	Email    string   `json:"email"`
	Comments string   `json:"comments"`
	Notes    string   `json:"notes"`
	Tags     []string `json:"tags"`
	NoteDate string   `json:"noteDate"`
}

// SaveAnnotation handles PUT /api/members/{uniqueID}/annotation.
// The save is an upsert keyed on uniqueID, so the handler never returns
// 404: a member without a stored annotation simply gets a new row. A
// failed persist comes back as 502; the UI must know the note did not
// land so it can retry, rather than believing a silent success.
func (s *Server) SaveAnnotation(w http.ResponseWriter, r *http.Request) {
	uniqueID := chi.URLParam(r, "uniqueID")

	var req annotationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", "malformed request body")
		return
	}

	err := s.members.SaveAnnotation(r.Context(), uniqueID,
		req.MemberID, req.Email, req.Comments, req.Notes, req.Tags, req.NoteDate)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			writeError(w, http.StatusUnprocessableEntity, "validation_error", unwrapMessage(err))
			return
		}
		if errors.Is(err, domain.ErrWrite) {
			writeError(w, http.StatusBadGateway, "write_failed", "annotation could not be persisted")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "unexpected error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
