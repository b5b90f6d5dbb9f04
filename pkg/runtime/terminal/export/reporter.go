package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
)

// ValidationRow is one record's validation outcome.
type ValidationRow struct {
	Entity string
	ID     string
	Valid  bool
	Errors []string
}

// AnomalyRow is one anomaly's classification.
type AnomalyRow struct {
	ID                  string
	Severity            string
	DeviationAmount     float64
	DeviationPercentage float64
}

// OptimizationRow is one recommendation's approval classification.
type OptimizationRow struct {
	ID                string
	SavingsPercentage float64
	ApprovalRequired  bool
}

// ForecastRow is one budget's risk classification.
type ForecastRow struct {
	ID                    string
	RiskLevel             string
	CurrentUtilization    float64
	ForecastedUtilization float64
}

// Reporter renders evaluation reports as aligned text tables.
type Reporter struct {
	writer io.Writer
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{writer: writer}
}

func (r *Reporter) ValidationReport(rows []ValidationRow) error {
	tw := tabwriter.NewWriter(r.writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ENTITY\tID\tVALID\tERRORS")
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%t\t%s\n",
			row.Entity, row.ID, row.Valid, strings.Join(row.Errors, "; "))
	}
	return tw.Flush()
}

func (r *Reporter) ClassificationReport(anomalies []AnomalyRow, optimizations []OptimizationRow, forecasts []ForecastRow) error {
	if len(anomalies) > 0 {
		fmt.Fprintln(r.writer, "=== Anomalies ===")
		tw := tabwriter.NewWriter(r.writer, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tSEVERITY\tDEVIATION\tDEVIATION %")
		for _, row := range anomalies {
			fmt.Fprintf(tw, "%s\t%s\t%.2f\t%.2f\n",
				row.ID, row.Severity, row.DeviationAmount, row.DeviationPercentage)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if len(optimizations) > 0 {
		fmt.Fprintln(r.writer, "=== Optimizations ===")
		tw := tabwriter.NewWriter(r.writer, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tSAVINGS %\tAPPROVAL REQUIRED")
		for _, row := range optimizations {
			fmt.Fprintf(tw, "%s\t%.2f\t%t\n",
				row.ID, row.SavingsPercentage, row.ApprovalRequired)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if len(forecasts) > 0 {
		fmt.Fprintln(r.writer, "=== Forecasts ===")
		tw := tabwriter.NewWriter(r.writer, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tRISK\tUTILIZATION %\tFORECASTED %")
		for _, row := range forecasts {
			fmt.Fprintf(tw, "%s\t%s\t%.2f\t%.2f\n",
				row.ID, row.RiskLevel, row.CurrentUtilization, row.ForecastedUtilization)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	return nil
}
