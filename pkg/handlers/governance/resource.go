package governance

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/de-tools/cost-atlas/pkg/adapters"
	"github.com/de-tools/cost-atlas/pkg/models/api"
	"github.com/de-tools/cost-atlas/pkg/models/domain"
	"github.com/de-tools/cost-atlas/pkg/services/inventory"
)

func (h *Handler) ReportResource(w http.ResponseWriter, r *http.Request) {
	input, err := decodeBody[api.ResourceInventoryInput](r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rec, result, err := h.inventory.Report(r.Context(), adapters.MapResourceInventoryInputApiToDomain(input))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	if !result.Valid {
		h.metrics.RecordValidationFailure("resource")
		respondJSON(w, r, http.StatusBadRequest, adapters.MapValidationDomainToApi(result))
		return
	}

	respondJSON(w, r, http.StatusCreated, adapters.MapResourceInventoryDomainToApi(*rec))
}

func (h *Handler) ListResources(w http.ResponseWriter, r *http.Request) {
	filter := inventory.Filter{
		Region:       r.URL.Query().Get("region"),
		ResourceType: r.URL.Query().Get("resourceType"),
		State:        r.URL.Query().Get("state"),
	}

	records, err := h.inventory.List(r.Context(), filter)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	response := make([]api.ResourceInventory, 0, len(records))
	for _, rec := range records {
		response = append(response, adapters.MapResourceInventoryDomainToApi(*rec))
	}
	respondJSON(w, r, http.StatusOK, response)
}

func (h *Handler) GetResource(w http.ResponseWriter, r *http.Request) {
	key := domain.ResourceKey{
		ResourceID: chi.URLParam(r, "resourceID"),
		Region:     chi.URLParam(r, "region"),
	}

	rec, err := h.inventory.Get(r.Context(), key)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, adapters.MapResourceInventoryDomainToApi(*rec))
}

func (h *Handler) RemoveResource(w http.ResponseWriter, r *http.Request) {
	key := domain.ResourceKey{
		ResourceID: chi.URLParam(r, "resourceID"),
		Region:     chi.URLParam(r, "region"),
	}

	if err := h.inventory.Remove(r.Context(), key); err != nil {
		respondServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
