package handler

import (
	"encoding/json"
	"net/http"
	"sort"
	"strings"

	"github.com/jimmeey/expiry-dashboard/internal/domain"
)

// membersResponse is the payload for list and query endpoints.
// Groups is present only when the query asked for grouping.
type membersResponse struct {
	Data   []domain.MemberRecord            `json:"data"`
	Source string                           `json:"source"`
	Groups map[string][]domain.MemberRecord `json:"groups,omitempty"`
}

// queryRequest is the body of POST /api/members/query.
type queryRequest struct {
	Filters      domain.FilterOptions `json:"filters"`
	QuickFilters []string             `json:"quickFilters"`
}

// facetsResponse lists the distinct values filter widgets offer.
type facetsResponse struct {
	Locations       []string `json:"locations"`
	MembershipTypes []string `json:"membershipTypes"`
}

// ListMembers handles GET /api/members.
// Returns the full reconciled member list; ?quick=tok1,tok2 applies
// AND-combined quick-filter tokens on the way out.
func (s *Server) ListMembers(w http.ResponseWriter, r *http.Request) {
	result, err := s.members.GetMembershipData(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, "fetch_failed", "could not load membership data")
		return
	}

	records := result.Records
	if raw := r.URL.Query().Get("quick"); raw != "" {
		records = s.members.ApplyQuickFilters(records, splitTokens(raw))
	}

	writeJSON(w, http.StatusOK, membersResponse{Data: records, Source: result.Source})
}

// QueryMembers handles POST /api/members/query.
// The body carries a FilterOptions object and a quick-filter token list;
// both are applied, structured filters first. A groupBy option additionally
// partitions the filtered records.
func (s *Server) QueryMembers(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", "malformed request body")
		return
	}

	result, err := s.members.GetMembershipData(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, "fetch_failed", "could not load membership data")
		return
	}

	records := s.members.ApplyFilters(result.Records, req.Filters)
	records = s.members.ApplyQuickFilters(records, req.QuickFilters)

	resp := membersResponse{Data: records, Source: result.Source}
	if req.Filters.GroupBy != "" && req.Filters.GroupBy != domain.GroupByNone {
		resp.Groups = s.members.GroupRecords(records, req.Filters.GroupBy)
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetFacets handles GET /api/members/facets.
// Returns the distinct locations and membership types present in the data,
// for populating filter widgets. Placeholder cells ("" and "-") are left
// out.
func (s *Server) GetFacets(w http.ResponseWriter, r *http.Request) {
	result, err := s.members.GetMembershipData(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, "fetch_failed", "could not load membership data")
		return
	}

	locations := map[string]bool{}
	types := map[string]bool{}
	for _, m := range result.Records {
		if m.Location != "" && m.Location != "-" {
			locations[m.Location] = true
		}
		if m.MembershipName != "" && m.MembershipName != "-" {
			types[m.MembershipName] = true
		}
	}

	writeJSON(w, http.StatusOK, facetsResponse{
		Locations:       sortedKeys(locations),
		MembershipTypes: sortedKeys(types),
	})
}

func splitTokens(raw string) []string {
	var tokens []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
