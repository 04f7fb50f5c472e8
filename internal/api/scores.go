package api

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
)

func (h *Handler) handleComputeScore(w http.ResponseWriter, r *http.Request) {
	orgID := mux.Vars(r)["orgID"]

	if _, err := h.orgs.GetOrganization(r.Context(), orgID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "organization not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load organization: "+err.Error())
		return
	}

	res, err := h.scorer.ScoreOrganization(r.Context(), orgID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to compute score: "+err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"score_id":    res.ScoreID,
		"archive_ref": res.ArchiveRef,
		"score":       res.Score,
	})
}

func (h *Handler) handleListScores(w http.ResponseWriter, r *http.Request) {
	orgID := mux.Vars(r)["orgID"]

	scores, err := h.orgs.ListScores(r.Context(), orgID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list scores: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"scores": scores})
}

func (h *Handler) handleLatestScore(w http.ResponseWriter, r *http.Request) {
	orgID := mux.Vars(r)["orgID"]

	score, err := h.orgs.GetLatestScore(r.Context(), orgID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "no scores for organization")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load latest score: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, score)
}

// handleScoreSnapshot serves the archived signal snapshot a score was
// computed from. Regulator audits ask for exactly this.
func (h *Handler) handleScoreSnapshot(w http.ResponseWriter, r *http.Request) {
	if h.archive == nil {
		writeError(w, http.StatusNotImplemented, "archive not configured")
		return
	}

	vars := mux.Vars(r)
	data, err := h.archive.GetSnapshot(r.Context(), vars["orgID"], vars["scoreID"])
	if err != nil {
		writeError(w, http.StatusNotFound, "snapshot not found")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
