package governance

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/de-tools/cost-atlas/pkg/adapters"
	"github.com/de-tools/cost-atlas/pkg/models/api"
	"github.com/de-tools/cost-atlas/pkg/services/anomaly"
)

func (h *Handler) RecordAnomaly(w http.ResponseWriter, r *http.Request) {
	input, err := decodeBody[api.CostAnomalyInput](r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rec, result, err := h.anomaly.Record(r.Context(), adapters.MapCostAnomalyInputApiToDomain(input))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	if !result.Valid {
		h.metrics.RecordValidationFailure("anomaly")
		respondJSON(w, r, http.StatusBadRequest, adapters.MapValidationDomainToApi(result))
		return
	}

	respondJSON(w, r, http.StatusCreated, adapters.MapCostAnomalyDomainToApi(*rec))
}

func (h *Handler) ListAnomalies(w http.ResponseWriter, r *http.Request) {
	filter := anomaly.Filter{
		Severity:    r.URL.Query().Get("severity"),
		ServiceType: r.URL.Query().Get("serviceType"),
	}
	if raw := r.URL.Query().Get("resolved"); raw != "" {
		resolved, err := strconv.ParseBool(raw)
		if err != nil {
			http.Error(w, "resolved must be a boolean", http.StatusBadRequest)
			return
		}
		filter.Resolved = &resolved
	}

	records, err := h.anomaly.List(r.Context(), filter)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	response := make([]api.CostAnomaly, 0, len(records))
	for _, rec := range records {
		response = append(response, adapters.MapCostAnomalyDomainToApi(*rec))
	}
	respondJSON(w, r, http.StatusOK, response)
}

func (h *Handler) GetAnomaly(w http.ResponseWriter, r *http.Request) {
	rec, err := h.anomaly.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, adapters.MapCostAnomalyDomainToApi(*rec))
}

func (h *Handler) ResolveAnomaly(w http.ResponseWriter, r *http.Request) {
	body, err := decodeBody[api.ResolutionRequest](r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rec, err := h.anomaly.Resolve(r.Context(), chi.URLParam(r, "id"), body.ResolvedBy, body.Notes)
	if err != nil {
		h.metrics.RecordTransition("anomaly", "resolve", "refused")
		respondServiceError(w, r, err)
		return
	}

	h.metrics.RecordTransition("anomaly", "resolve", "ok")
	respondJSON(w, r, http.StatusOK, adapters.MapCostAnomalyDomainToApi(*rec))
}

func (h *Handler) AlertAnomaly(w http.ResponseWriter, r *http.Request) {
	body, err := decodeBody[api.AlertRequest](r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rec, err := h.anomaly.MarkAlertSent(r.Context(), chi.URLParam(r, "id"), body.Channels)
	if err != nil {
		h.metrics.RecordTransition("anomaly", "alert", "refused")
		respondServiceError(w, r, err)
		return
	}

	h.metrics.RecordTransition("anomaly", "alert", "ok")
	respondJSON(w, r, http.StatusOK, adapters.MapCostAnomalyDomainToApi(*rec))
}

func (h *Handler) AddAnomalyFactor(w http.ResponseWriter, r *http.Request) {
	body, err := decodeBody[api.FactorRequest](r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rec, err := h.anomaly.AddContributingFactor(r.Context(), chi.URLParam(r, "id"), body.Factor)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, adapters.MapCostAnomalyDomainToApi(*rec))
}

func (h *Handler) AddAnomalyResource(w http.ResponseWriter, r *http.Request) {
	body, err := decodeBody[api.AffectedResourceRequest](r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rec, err := h.anomaly.AddAffectedResource(r.Context(), chi.URLParam(r, "id"), body.ResourceID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, adapters.MapCostAnomalyDomainToApi(*rec))
}
