// Package handler implements the HTTP handlers for the dashboard API.
// All handlers are methods on Server. Methods are split into files by
// concern (member.go, annotation.go, health.go) but share the same Server
// struct so they can access its dependencies.
package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jimmeey/expiry-dashboard/internal/domain"
	"github.com/jimmeey/expiry-dashboard/internal/metrics"
	"github.com/jimmeey/expiry-dashboard/internal/service"
)

// MembershipServicer defines the business operations the handlers depend
// on. Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching a feed backend.
type MembershipServicer interface {
	GetMembershipData(ctx context.Context) (service.Result, error)
	SaveAnnotation(ctx context.Context, uniqueID, memberID, email, comments, notes string, tags []string, noteDate string) error
	ApplyFilters(records []domain.MemberRecord, opts domain.FilterOptions) []domain.MemberRecord
	ApplyQuickFilters(records []domain.MemberRecord, tokens []string) []domain.MemberRecord
	GroupRecords(records []domain.MemberRecord, by domain.GroupBy) map[string][]domain.MemberRecord
}

// Server holds the handler dependencies for all API endpoints.
type Server struct {
	members MembershipServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(members MembershipServicer) *Server {
	return &Server{members: members}
}

// Register mounts every route on r. Middleware is the caller's business;
// wire it before calling Register.
func (s *Server) Register(r chi.Router) {
	r.Get("/healthz", s.GetHealth)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api/members", func(r chi.Router) {
		r.Get("/", s.ListMembers)
		r.Post("/query", s.QueryMembers)
		r.Get("/facets", s.GetFacets)
		r.Put("/{uniqueID}/annotation", s.SaveAnnotation)
	})
}

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
