package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/de-tools/cost-atlas/pkg/config"
	"github.com/de-tools/cost-atlas/pkg/models/domain"
	"github.com/de-tools/cost-atlas/pkg/monitoring"
	"github.com/de-tools/cost-atlas/pkg/server"
	"github.com/de-tools/cost-atlas/pkg/services/anomaly"
	"github.com/de-tools/cost-atlas/pkg/services/forecast"
	"github.com/de-tools/cost-atlas/pkg/services/inventory"
	"github.com/de-tools/cost-atlas/pkg/services/optimization"
	"github.com/de-tools/cost-atlas/pkg/store/memory"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for Cost Atlas",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to the settings file (defaults and env vars apply without one)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	settings, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	level, err := zerolog.ParseLevel(settings.Log.Level)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %w", err)
	}
	logger := zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()

	metrics := monitoring.NewMetrics()

	resourceStore := memory.NewStore[domain.ResourceKey, *domain.ResourceInventory]()
	optimizationStore := memory.NewStore[string, *domain.CostOptimization]()
	anomalyStore := memory.NewStore[string, *domain.CostAnomaly]()
	forecastStore := memory.NewStore[string, *domain.BudgetForecast]()

	metrics.RegisterRecordCount("resource", func() float64 {
		return float64(resourceStore.Len(context.Background()))
	})
	metrics.RegisterRecordCount("optimization", func() float64 {
		return float64(optimizationStore.Len(context.Background()))
	})
	metrics.RegisterRecordCount("anomaly", func() float64 {
		return float64(anomalyStore.Len(context.Background()))
	})
	metrics.RegisterRecordCount("forecast", func() float64 {
		return float64(forecastStore.Len(context.Background()))
	})

	api := server.NewWebAPI(logger, server.Config{
		Addr:            settings.Addr(),
		ShutdownTimeout: settings.Server.ShutdownTimeout,
		Dependencies: server.Dependencies{
			Inventory:    inventory.NewService(resourceStore),
			Optimization: optimization.NewService(optimizationStore),
			Anomaly:      anomaly.NewService(anomalyStore),
			Forecast:     forecast.NewService(forecastStore),
			Metrics:      metrics,
		},
	})

	return api.Start()
}
