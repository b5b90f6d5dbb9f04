package governance

import (
	"net/http"

	"github.com/de-tools/cost-atlas/pkg/monitoring"
	"github.com/de-tools/cost-atlas/pkg/services/anomaly"
	"github.com/de-tools/cost-atlas/pkg/services/forecast"
	"github.com/de-tools/cost-atlas/pkg/services/inventory"
	"github.com/de-tools/cost-atlas/pkg/services/optimization"
)

// Handler exposes the governance services over HTTP. It only decodes
// requests, delegates to the services, and shapes JSON responses.
type Handler struct {
	inventory    inventory.Service
	optimization optimization.Service
	anomaly      anomaly.Service
	forecast     forecast.Service
	metrics      *monitoring.Metrics
}

func NewHandler(
	inventorySvc inventory.Service,
	optimizationSvc optimization.Service,
	anomalySvc anomaly.Service,
	forecastSvc forecast.Service,
	metrics *monitoring.Metrics,
) *Handler {
	return &Handler{
		inventory:    inventorySvc,
		optimization: optimizationSvc,
		anomaly:      anomalySvc,
		forecast:     forecastSvc,
		metrics:      metrics,
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
