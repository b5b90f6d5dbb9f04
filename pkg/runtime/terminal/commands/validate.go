package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/de-tools/cost-atlas/pkg/adapters"
	"github.com/de-tools/cost-atlas/pkg/models/domain"
	"github.com/de-tools/cost-atlas/pkg/runtime/terminal/export"
)

type ValidateCmd struct {
	recordsPath string
	reporter    *export.Reporter
}

// NewValidateCmd validates every record in a records file the way the
// service would on ingestion: defaults applied first, then the field checks.
func NewValidateCmd(reporter *export.Reporter) *cobra.Command {
	vc := &ValidateCmd{reporter: reporter}
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate records from a JSON file",
		RunE:  vc.run,
	}

	cmd.Flags().StringVarP(&vc.recordsPath, "file", "f", "", "Path to the records file")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func (vc *ValidateCmd) run(cmd *cobra.Command, args []string) error {
	set, err := loadRecordSet(vc.recordsPath)
	if err != nil {
		return err
	}

	var rows []export.ValidationRow
	invalid := 0

	appendRow := func(entity, id string, result domain.ValidationResult) {
		if !result.Valid {
			invalid++
		}
		rows = append(rows, export.ValidationRow{
			Entity: entity,
			ID:     id,
			Valid:  result.Valid,
			Errors: result.Errors,
		})
	}

	for _, input := range set.Resources {
		rec := domain.NewResourceInventory(adapters.MapResourceInventoryInputApiToDomain(input))
		appendRow("resource", rec.ResourceID, rec.Validate())
	}
	for _, input := range set.Optimizations {
		rec := domain.NewCostOptimization(adapters.MapCostOptimizationInputApiToDomain(input))
		appendRow("optimization", rec.OptimizationID, rec.Validate())
	}
	for _, input := range set.Anomalies {
		rec := domain.NewCostAnomaly(adapters.MapCostAnomalyInputApiToDomain(input))
		appendRow("anomaly", rec.AnomalyID, rec.Validate())
	}
	for _, input := range set.Forecasts {
		rec := domain.NewBudgetForecast(adapters.MapBudgetForecastInputApiToDomain(input))
		appendRow("forecast", rec.ForecastID, rec.Validate())
	}

	if err := vc.reporter.ValidationReport(rows); err != nil {
		return fmt.Errorf("render validation report: %w", err)
	}

	if invalid > 0 {
		return fmt.Errorf("%d of %d records invalid", invalid, len(rows))
	}
	return nil
}
