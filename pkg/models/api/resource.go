package api

import "time"

type UtilizationMetrics struct {
	CPU       []float64 `json:"cpu"`
	Memory    []float64 `json:"memory"`
	Network   []float64 `json:"network"`
	Storage   []float64 `json:"storage"`
	TimeRange string    `json:"timeRange"`
	Interval  string    `json:"interval"`
}

type ResourceInventory struct {
	ResourceID                string             `json:"resourceId"`
	Region                    string             `json:"region"`
	ResourceType              string             `json:"resourceType"`
	CurrentCost               float64            `json:"currentCost"`
	UtilizationMetrics        UtilizationMetrics `json:"utilizationMetrics"`
	OptimizationOpportunities []string           `json:"optimizationOpportunities"`
	State                     string             `json:"state"`
	Timestamp                 time.Time          `json:"timestamp"`
}

// ResourceInventoryInput is a partial discovery report; absent fields take
// their defaults.
type ResourceInventoryInput struct {
	ResourceID                string              `json:"resourceId"`
	Region                    string              `json:"region"`
	ResourceType              string              `json:"resourceType"`
	CurrentCost               *float64            `json:"currentCost"`
	UtilizationMetrics        *UtilizationMetrics `json:"utilizationMetrics"`
	OptimizationOpportunities []string            `json:"optimizationOpportunities"`
	State                     string              `json:"state"`
}
