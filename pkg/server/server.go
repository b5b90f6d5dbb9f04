package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/de-tools/cost-atlas/pkg/handlers/governance"
	"github.com/de-tools/cost-atlas/pkg/monitoring"
	costatlasmiddleware "github.com/de-tools/cost-atlas/pkg/server/middleware"
	"github.com/de-tools/cost-atlas/pkg/services/anomaly"
	"github.com/de-tools/cost-atlas/pkg/services/forecast"
	"github.com/de-tools/cost-atlas/pkg/services/inventory"
	"github.com/de-tools/cost-atlas/pkg/services/optimization"
)

const defaultShutdownTimeout = 10 * time.Second

type WebAPI struct {
	router          *chi.Mux
	logger          *zerolog.Logger
	server          *http.Server
	shutdownTimeout time.Duration
}

type Dependencies struct {
	Inventory    inventory.Service
	Optimization optimization.Service
	Anomaly      anomaly.Service
	Forecast     forecast.Service
	Metrics      *monitoring.Metrics
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	Dependencies    Dependencies
}

// ConfigureRouter assembles the full route tree. Tests mount the result on
// an httptest server directly.
func ConfigureRouter(logger zerolog.Logger, deps Dependencies) *chi.Mux {
	h := governance.NewHandler(
		deps.Inventory,
		deps.Optimization,
		deps.Anomaly,
		deps.Forecast,
		deps.Metrics,
	)

	router := chi.NewRouter()

	router.Use(costatlasmiddleware.Logger(&logger))
	router.Use(costatlasmiddleware.Metrics(deps.Metrics))
	router.Use(middleware.Recoverer)

	router.Get("/healthz", h.Healthz)
	router.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/resources", func(r chi.Router) {
			r.Post("/", h.ReportResource)
			r.Get("/", h.ListResources)
			r.Get("/{region}/{resourceID}", h.GetResource)
			r.Delete("/{region}/{resourceID}", h.RemoveResource)
		})

		r.Route("/optimizations", func(r chi.Router) {
			r.Post("/", h.CreateOptimization)
			r.Get("/", h.ListOptimizations)
			r.Get("/{id}", h.GetOptimization)
			r.Post("/{id}/approve", h.ApproveOptimization)
			r.Post("/{id}/execute", h.ExecuteOptimization)
			r.Post("/{id}/rollback", h.RollbackOptimization)
			r.Put("/{id}/status", h.OverrideOptimizationStatus)
		})

		r.Route("/anomalies", func(r chi.Router) {
			r.Post("/", h.RecordAnomaly)
			r.Get("/", h.ListAnomalies)
			r.Get("/{id}", h.GetAnomaly)
			r.Post("/{id}/resolve", h.ResolveAnomaly)
			r.Post("/{id}/alert", h.AlertAnomaly)
			r.Post("/{id}/factors", h.AddAnomalyFactor)
			r.Post("/{id}/resources", h.AddAnomalyResource)
		})

		r.Route("/forecasts", func(r chi.Router) {
			r.Post("/", h.CreateForecast)
			r.Get("/", h.ListForecasts)
			r.Get("/{id}", h.GetForecast)
			r.Patch("/{id}", h.PatchForecast)
			r.Get("/{id}/risk", h.GetForecastRisk)
			r.Post("/{id}/assumptions", h.AddForecastAssumption)
			r.Post("/{id}/risk-factors", h.AddForecastRiskFactor)
		})
	})

	return router
}

func NewWebAPI(logger zerolog.Logger, config Config) *WebAPI {
	router := ConfigureRouter(logger, config.Dependencies)

	shutdownTimeout := config.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = defaultShutdownTimeout
	}

	return &WebAPI{
		router: router,
		logger: &logger,
		server: &http.Server{
			Addr:    config.Addr,
			Handler: router,
		},
		shutdownTimeout: shutdownTimeout,
	}
}

func (w *WebAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-shutdown:
		w.logger.Info().Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
		defer cancel()

		err := w.server.Shutdown(ctx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}

		if err != nil {
			return err
		}
	}

	return nil
}
