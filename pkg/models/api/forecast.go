package api

import "time"

type ConfidenceInterval struct {
	Lower      float64 `json:"lower"`
	Upper      float64 `json:"upper"`
	Confidence float64 `json:"confidence"`
}

type AlertThresholds struct {
	Warning         float64 `json:"warning"`
	Critical        float64 `json:"critical"`
	ForecastOverrun float64 `json:"forecast_overrun"`
}

type Variance struct {
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
	Type       string  `json:"type"`
}

type BudgetAssumption struct {
	Assumption string    `json:"assumption"`
	AddedAt    time.Time `json:"addedAt"`
}

type BudgetRiskFactor struct {
	Factor  string    `json:"factor"`
	AddedAt time.Time `json:"addedAt"`
}

type AllocationRule struct {
	BudgetID   string  `json:"budgetId"`
	Percentage float64 `json:"percentage"`
}

type BudgetRiskAssessment struct {
	RiskLevel             string  `json:"riskLevel"`
	CurrentUtilization    float64 `json:"currentUtilization"`
	ForecastedUtilization float64 `json:"forecastedUtilization"`
}

// BudgetForecast is the serialized forecast record. RemainingBudget and
// Variance are stored fields refreshed on every write; BudgetRisk is
// computed and cached at serialization time.
type BudgetForecast struct {
	ForecastID         string               `json:"forecastId"`
	BudgetName         string               `json:"budgetName"`
	BudgetCategory     string               `json:"budgetCategory"`
	Region             string               `json:"region"`
	CurrentSpend       float64              `json:"currentSpend"`
	ForecastedSpend    float64              `json:"forecastedSpend"`
	BudgetLimit        float64              `json:"budgetLimit"`
	RemainingBudget    float64              `json:"remainingBudget"`
	ConfidenceInterval ConfidenceInterval   `json:"confidenceInterval"`
	ProjectionPeriod   string               `json:"projectionPeriod"`
	AlertThresholds    AlertThresholds      `json:"alertThresholds"`
	Status             string               `json:"status"`
	Variance           Variance             `json:"variance"`
	BudgetRisk         BudgetRiskAssessment `json:"budgetRisk"`
	Assumptions        []BudgetAssumption   `json:"assumptions"`
	RiskFactors        []BudgetRiskFactor   `json:"riskFactors"`
	ChildBudgets       []string             `json:"childBudgets"`
	AllocationRules    []AllocationRule     `json:"allocationRules"`
	Timestamp          time.Time            `json:"timestamp"`
}

type BudgetForecastInput struct {
	ForecastID         string              `json:"forecastId"`
	BudgetName         string              `json:"budgetName"`
	BudgetCategory     string              `json:"budgetCategory"`
	Region             string              `json:"region"`
	CurrentSpend       *float64            `json:"currentSpend"`
	ForecastedSpend    *float64            `json:"forecastedSpend"`
	BudgetLimit        *float64            `json:"budgetLimit"`
	ConfidenceInterval *ConfidenceInterval `json:"confidenceInterval"`
	ProjectionPeriod   string              `json:"projectionPeriod"`
	AlertThresholds    *AlertThresholds    `json:"alertThresholds"`
	Status             string              `json:"status"`
	Assumptions        []string            `json:"assumptions"`
	RiskFactors        []string            `json:"riskFactors"`
	ChildBudgets       []string            `json:"childBudgets"`
	AllocationRules    []AllocationRule    `json:"allocationRules"`
}

// ForecastPatch carries a partial update; nil fields leave the stored
// value untouched. Derived fields are refreshed after the patch applies.
type ForecastPatch struct {
	BudgetName         *string             `json:"budgetName"`
	BudgetCategory     *string             `json:"budgetCategory"`
	Region             *string             `json:"region"`
	CurrentSpend       *float64            `json:"currentSpend"`
	ForecastedSpend    *float64            `json:"forecastedSpend"`
	BudgetLimit        *float64            `json:"budgetLimit"`
	ConfidenceInterval *ConfidenceInterval `json:"confidenceInterval"`
	ProjectionPeriod   *string             `json:"projectionPeriod"`
	AlertThresholds    *AlertThresholds    `json:"alertThresholds"`
	Status             *string             `json:"status"`
	ChildBudgets       []string            `json:"childBudgets"`
	AllocationRules    []AllocationRule    `json:"allocationRules"`
}

type AssumptionRequest struct {
	Assumption string `json:"assumption"`
}

type RiskFactorRequest struct {
	Factor string `json:"factor"`
}
