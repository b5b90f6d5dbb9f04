package api

// RecordSet is the file format the offline evaluator reads: raw detector and
// forecaster output grouped by entity, in the same shapes the HTTP API takes.
type RecordSet struct {
	Resources     []ResourceInventoryInput `json:"resources"`
	Optimizations []CostOptimizationInput  `json:"optimizations"`
	Anomalies     []CostAnomalyInput       `json:"anomalies"`
	Forecasts     []BudgetForecastInput    `json:"forecasts"`
}
