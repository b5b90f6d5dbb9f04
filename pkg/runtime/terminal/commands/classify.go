package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/de-tools/cost-atlas/pkg/adapters"
	"github.com/de-tools/cost-atlas/pkg/models/domain"
	"github.com/de-tools/cost-atlas/pkg/runtime/terminal/export"
)

type ClassifyCmd struct {
	recordsPath string
	reporter    *export.Reporter
}

// NewClassifyCmd runs the pure rule engine over a records file: anomaly
// severity, optimization approval policy, and budget risk, without touching
// any server.
func NewClassifyCmd(reporter *export.Reporter) *cobra.Command {
	cc := &ClassifyCmd{reporter: reporter}
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify records from a JSON file",
		RunE:  cc.run,
	}

	cmd.Flags().StringVarP(&cc.recordsPath, "file", "f", "", "Path to the records file")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func (cc *ClassifyCmd) run(cmd *cobra.Command, args []string) error {
	set, err := loadRecordSet(cc.recordsPath)
	if err != nil {
		return err
	}

	var anomalies []export.AnomalyRow
	for _, input := range set.Anomalies {
		rec := domain.NewCostAnomaly(adapters.MapCostAnomalyInputApiToDomain(input))
		anomalies = append(anomalies, export.AnomalyRow{
			ID:                  rec.AnomalyID,
			Severity:            string(rec.DetermineSeverity()),
			DeviationAmount:     rec.DeviationAmount(),
			DeviationPercentage: rec.DeviationPercentage(),
		})
	}

	var optimizations []export.OptimizationRow
	for _, input := range set.Optimizations {
		rec := domain.NewCostOptimization(adapters.MapCostOptimizationInputApiToDomain(input))
		optimizations = append(optimizations, export.OptimizationRow{
			ID:                rec.OptimizationID,
			SavingsPercentage: rec.SavingsPercentage(),
			ApprovalRequired:  rec.RequiresApproval(),
		})
	}

	var forecasts []export.ForecastRow
	for _, input := range set.Forecasts {
		rec := domain.NewBudgetForecast(adapters.MapBudgetForecastInputApiToDomain(input))
		assessment := rec.AssessRisk()
		forecasts = append(forecasts, export.ForecastRow{
			ID:                    rec.ForecastID,
			RiskLevel:             string(assessment.RiskLevel),
			CurrentUtilization:    assessment.CurrentUtilization,
			ForecastedUtilization: assessment.ForecastedUtilization,
		})
	}

	if err := cc.reporter.ClassificationReport(anomalies, optimizations, forecasts); err != nil {
		return fmt.Errorf("render classification report: %w", err)
	}
	return nil
}
