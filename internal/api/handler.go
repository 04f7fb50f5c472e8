// Package api implements the hosted AquaScore REST API.
// It exposes scoring and read endpoints backed by Postgres and the archive.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/aquascore/aquascore/internal/archive"
	"github.com/aquascore/aquascore/internal/compute"
	"github.com/aquascore/aquascore/internal/observability"
	"github.com/aquascore/aquascore/internal/org"
)

// Scorer runs a scoring pipeline for one organization.
type Scorer interface {
	ScoreOrganization(ctx context.Context, orgID string) (*compute.Result, error)
}

// Handler is the top-level API handler for the hosted AquaScore service.
type Handler struct {
	orgs    *org.Service
	scorer  Scorer
	archive archive.Client
	metrics *observability.Metrics
}

// NewHandler creates a new API handler. Archive and metrics may be nil.
func NewHandler(orgs *org.Service, scorer Scorer, arch archive.Client, metrics *observability.Metrics) *Handler {
	return &Handler{
		orgs:    orgs,
		scorer:  scorer,
		archive: arch,
		metrics: metrics,
	}
}

// Router builds the full route table.
func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", h.handleHealthz).Methods(http.MethodGet)
	if h.metrics != nil {
		r.Handle("/metrics", h.metrics.Handler()).Methods(http.MethodGet)
	}

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Handle("/organizations",
		h.instrument("list_organizations", h.handleListOrganizations)).Methods(http.MethodGet)
	api.Handle("/organizations",
		h.instrument("create_organization", h.handleCreateOrganization)).Methods(http.MethodPost)
	api.Handle("/organizations/{orgID}/scores",
		h.instrument("compute_score", h.handleComputeScore)).Methods(http.MethodPost)
	api.Handle("/organizations/{orgID}/scores",
		h.instrument("list_scores", h.handleListScores)).Methods(http.MethodGet)
	api.Handle("/organizations/{orgID}/scores/latest",
		h.instrument("latest_score", h.handleLatestScore)).Methods(http.MethodGet)
	api.Handle("/organizations/{orgID}/scores/{scoreID}/snapshot",
		h.instrument("score_snapshot", h.handleScoreSnapshot)).Methods(http.MethodGet)

	return r
}

func (h *Handler) instrument(route string, fn http.HandlerFunc) http.Handler {
	if h.metrics == nil {
		return fn
	}
	return h.metrics.WrapHandler(route, fn)
}

func (h *Handler) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
