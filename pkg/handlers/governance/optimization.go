package governance

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/de-tools/cost-atlas/pkg/adapters"
	"github.com/de-tools/cost-atlas/pkg/models/api"
	"github.com/de-tools/cost-atlas/pkg/services/optimization"
)

func (h *Handler) CreateOptimization(w http.ResponseWriter, r *http.Request) {
	input, err := decodeBody[api.CostOptimizationInput](r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rec, result, err := h.optimization.Create(r.Context(), adapters.MapCostOptimizationInputApiToDomain(input))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	if !result.Valid {
		h.metrics.RecordValidationFailure("optimization")
		respondJSON(w, r, http.StatusBadRequest, adapters.MapValidationDomainToApi(result))
		return
	}

	respondJSON(w, r, http.StatusCreated, adapters.MapCostOptimizationDomainToApi(*rec))
}

func (h *Handler) ListOptimizations(w http.ResponseWriter, r *http.Request) {
	filter := optimization.Filter{
		Status:     r.URL.Query().Get("status"),
		RiskLevel:  r.URL.Query().Get("riskLevel"),
		ResourceID: r.URL.Query().Get("resourceId"),
	}

	records, err := h.optimization.List(r.Context(), filter)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	response := make([]api.CostOptimization, 0, len(records))
	for _, rec := range records {
		response = append(response, adapters.MapCostOptimizationDomainToApi(*rec))
	}
	respondJSON(w, r, http.StatusOK, response)
}

func (h *Handler) GetOptimization(w http.ResponseWriter, r *http.Request) {
	rec, err := h.optimization.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, adapters.MapCostOptimizationDomainToApi(*rec))
}

func (h *Handler) ApproveOptimization(w http.ResponseWriter, r *http.Request) {
	body, err := decodeBody[api.ApprovalRequest](r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rec, err := h.optimization.Approve(r.Context(), chi.URLParam(r, "id"), body.ApprovedBy)
	if err != nil {
		h.metrics.RecordTransition("optimization", "approve", "refused")
		respondServiceError(w, r, err)
		return
	}

	h.metrics.RecordTransition("optimization", "approve", "ok")
	respondJSON(w, r, http.StatusOK, adapters.MapCostOptimizationDomainToApi(*rec))
}

func (h *Handler) ExecuteOptimization(w http.ResponseWriter, r *http.Request) {
	body, err := decodeBody[api.ExecutionRequest](r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rec, err := h.optimization.Execute(r.Context(), chi.URLParam(r, "id"), body.ExecutionResult)
	if err != nil {
		h.metrics.RecordTransition("optimization", "execute", "refused")
		respondServiceError(w, r, err)
		return
	}

	h.metrics.RecordTransition("optimization", "execute", "ok")
	respondJSON(w, r, http.StatusOK, adapters.MapCostOptimizationDomainToApi(*rec))
}

func (h *Handler) RollbackOptimization(w http.ResponseWriter, r *http.Request) {
	body, err := decodeBody[api.RollbackRequest](r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rec, err := h.optimization.Rollback(r.Context(), chi.URLParam(r, "id"), body.Reason)
	if err != nil {
		h.metrics.RecordTransition("optimization", "rollback", "refused")
		respondServiceError(w, r, err)
		return
	}

	h.metrics.RecordTransition("optimization", "rollback", "ok")
	respondJSON(w, r, http.StatusOK, adapters.MapCostOptimizationDomainToApi(*rec))
}

func (h *Handler) OverrideOptimizationStatus(w http.ResponseWriter, r *http.Request) {
	body, err := decodeBody[api.StatusOverrideRequest](r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rec, err := h.optimization.OverrideStatus(r.Context(), chi.URLParam(r, "id"), body.Status)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	h.metrics.RecordTransition("optimization", "override", "ok")
	respondJSON(w, r, http.StatusOK, adapters.MapCostOptimizationDomainToApi(*rec))
}
