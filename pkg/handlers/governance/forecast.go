package governance

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/de-tools/cost-atlas/pkg/adapters"
	"github.com/de-tools/cost-atlas/pkg/models/api"
	"github.com/de-tools/cost-atlas/pkg/services/forecast"
)

func (h *Handler) CreateForecast(w http.ResponseWriter, r *http.Request) {
	input, err := decodeBody[api.BudgetForecastInput](r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rec, result, err := h.forecast.Create(r.Context(), adapters.MapBudgetForecastInputApiToDomain(input))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	if !result.Valid {
		h.metrics.RecordValidationFailure("forecast")
		respondJSON(w, r, http.StatusBadRequest, adapters.MapValidationDomainToApi(result))
		return
	}

	respondJSON(w, r, http.StatusCreated, adapters.MapBudgetForecastDomainToApi(*rec))
}

func (h *Handler) ListForecasts(w http.ResponseWriter, r *http.Request) {
	filter := forecast.Filter{
		BudgetCategory: r.URL.Query().Get("budgetCategory"),
		Status:         r.URL.Query().Get("status"),
	}

	records, err := h.forecast.List(r.Context(), filter)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	response := make([]api.BudgetForecast, 0, len(records))
	for _, rec := range records {
		response = append(response, adapters.MapBudgetForecastDomainToApi(*rec))
	}
	respondJSON(w, r, http.StatusOK, response)
}

func (h *Handler) GetForecast(w http.ResponseWriter, r *http.Request) {
	rec, err := h.forecast.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, adapters.MapBudgetForecastDomainToApi(*rec))
}

func (h *Handler) PatchForecast(w http.ResponseWriter, r *http.Request) {
	patch, err := decodeBody[api.ForecastPatch](r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rec, result, err := h.forecast.Update(r.Context(), chi.URLParam(r, "id"), adapters.MapForecastPatchApiToDomain(patch))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	if !result.Valid {
		h.metrics.RecordValidationFailure("forecast")
		respondJSON(w, r, http.StatusBadRequest, adapters.MapValidationDomainToApi(result))
		return
	}

	respondJSON(w, r, http.StatusOK, adapters.MapBudgetForecastDomainToApi(*rec))
}

func (h *Handler) GetForecastRisk(w http.ResponseWriter, r *http.Request) {
	assessment, err := h.forecast.AssessRisk(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, adapters.MapBudgetRiskDomainToApi(assessment))
}

func (h *Handler) AddForecastAssumption(w http.ResponseWriter, r *http.Request) {
	body, err := decodeBody[api.AssumptionRequest](r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rec, err := h.forecast.AddAssumption(r.Context(), chi.URLParam(r, "id"), body.Assumption)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, adapters.MapBudgetForecastDomainToApi(*rec))
}

func (h *Handler) AddForecastRiskFactor(w http.ResponseWriter, r *http.Request) {
	body, err := decodeBody[api.RiskFactorRequest](r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rec, err := h.forecast.AddRiskFactor(r.Context(), chi.URLParam(r, "id"), body.Factor)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, adapters.MapBudgetForecastDomainToApi(*rec))
}
