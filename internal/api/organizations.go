package api

import (
	"encoding/json"
	"net/http"
)

type createOrganizationRequest struct {
	Name       string `json:"name"`
	SupplyCode string `json:"supply_code,omitempty"`
}

func (h *Handler) handleListOrganizations(w http.ResponseWriter, r *http.Request) {
	orgs, err := h.orgs.ListOrganizations(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list organizations: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"organizations": orgs})
}

func (h *Handler) handleCreateOrganization(w http.ResponseWriter, r *http.Request) {
	var req createOrganizationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	var supplyCode *string
	if req.SupplyCode != "" {
		supplyCode = &req.SupplyCode
	}

	o, err := h.orgs.CreateOrganization(r.Context(), req.Name, supplyCode)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create organization: "+err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, o)
}
