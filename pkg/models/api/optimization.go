package api

import "time"

// CostOptimization is the serialized recommendation record.
// SavingsPercentage is computed and cached at serialization time.
type CostOptimization struct {
	OptimizationID    string     `json:"optimizationId"`
	ResourceID        string     `json:"resourceId"`
	Region            string     `json:"region"`
	OptimizationType  string     `json:"optimizationType"`
	CurrentCost       float64    `json:"currentCost"`
	ProjectedCost     float64    `json:"projectedCost"`
	EstimatedSavings  float64    `json:"estimatedSavings"`
	SavingsPercentage float64    `json:"savingsPercentage"`
	ConfidenceScore   float64    `json:"confidenceScore"`
	RiskLevel         string     `json:"riskLevel"`
	Status            string     `json:"status"`
	ApprovalRequired  bool       `json:"approvalRequired"`
	ApprovedBy        string     `json:"approvedBy,omitempty"`
	ApprovedAt        *time.Time `json:"approvedAt,omitempty"`
	ExecutedAt        *time.Time `json:"executedAt,omitempty"`
	ExecutionResult   string     `json:"executionResult,omitempty"`
	RolledBackAt      *time.Time `json:"rolledBackAt,omitempty"`
	RollbackReason    string     `json:"rollbackReason,omitempty"`
	Timestamp         time.Time  `json:"timestamp"`
}

// CostOptimizationInput is a partial recommendation report; absent fields
// take their defaults.
type CostOptimizationInput struct {
	OptimizationID   string   `json:"optimizationId"`
	ResourceID       string   `json:"resourceId"`
	Region           string   `json:"region"`
	OptimizationType string   `json:"optimizationType"`
	CurrentCost      *float64 `json:"currentCost"`
	ProjectedCost    *float64 `json:"projectedCost"`
	EstimatedSavings *float64 `json:"estimatedSavings"`
	ConfidenceScore  *float64 `json:"confidenceScore"`
	RiskLevel        string   `json:"riskLevel"`
	Status           string   `json:"status"`
	ApprovalRequired *bool    `json:"approvalRequired"`
}

type ApprovalRequest struct {
	ApprovedBy string `json:"approvedBy"`
}

type ExecutionRequest struct {
	ExecutionResult string `json:"executionResult"`
}

type RollbackRequest struct {
	Reason string `json:"reason"`
}

type StatusOverrideRequest struct {
	Status string `json:"status"`
}
