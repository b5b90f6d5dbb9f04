package adapters

import (
	"github.com/de-tools/cost-atlas/pkg/models/api"
	"github.com/de-tools/cost-atlas/pkg/models/domain"
)

// MapCostOptimizationDomainToApi serializes a recommendation, embedding the
// savings percentage so consumers never recompute it.
func MapCostOptimizationDomainToApi(o domain.CostOptimization) api.CostOptimization {
	return api.CostOptimization{
		OptimizationID:    o.OptimizationID,
		ResourceID:        o.ResourceID,
		Region:            o.Region,
		OptimizationType:  string(o.OptimizationType),
		CurrentCost:       o.CurrentCost,
		ProjectedCost:     o.ProjectedCost,
		EstimatedSavings:  o.EstimatedSavings,
		SavingsPercentage: o.SavingsPercentage(),
		ConfidenceScore:   o.ConfidenceScore,
		RiskLevel:         string(o.RiskLevel),
		Status:            string(o.Status),
		ApprovalRequired:  o.ApprovalRequired,
		ApprovedBy:        o.ApprovedBy,
		ApprovedAt:        o.ApprovedAt,
		ExecutedAt:        o.ExecutedAt,
		ExecutionResult:   o.ExecutionResult,
		RolledBackAt:      o.RolledBackAt,
		RollbackReason:    o.RollbackReason,
		Timestamp:         o.Timestamp,
	}
}

// MapCostOptimizationApiToDomain restores a serialized recommendation. The
// cached savings percentage is dropped; the domain record recomputes it from
// the costs on demand.
func MapCostOptimizationApiToDomain(o api.CostOptimization) domain.CostOptimization {
	return domain.CostOptimization{
		OptimizationID:   o.OptimizationID,
		ResourceID:       o.ResourceID,
		Region:           o.Region,
		OptimizationType: domain.OptimizationType(o.OptimizationType),
		CurrentCost:      o.CurrentCost,
		ProjectedCost:    o.ProjectedCost,
		EstimatedSavings: o.EstimatedSavings,
		ConfidenceScore:  o.ConfidenceScore,
		RiskLevel:        domain.RiskLevel(o.RiskLevel),
		Status:           domain.OptimizationStatus(o.Status),
		ApprovalRequired: o.ApprovalRequired,
		ApprovedBy:       o.ApprovedBy,
		ApprovedAt:       o.ApprovedAt,
		ExecutedAt:       o.ExecutedAt,
		ExecutionResult:  o.ExecutionResult,
		RolledBackAt:     o.RolledBackAt,
		RollbackReason:   o.RollbackReason,
		Timestamp:        o.Timestamp,
	}
}

func MapCostOptimizationInputApiToDomain(input api.CostOptimizationInput) domain.CostOptimizationInput {
	return domain.CostOptimizationInput{
		OptimizationID:   input.OptimizationID,
		ResourceID:       input.ResourceID,
		Region:           input.Region,
		OptimizationType: input.OptimizationType,
		CurrentCost:      input.CurrentCost,
		ProjectedCost:    input.ProjectedCost,
		EstimatedSavings: input.EstimatedSavings,
		ConfidenceScore:  input.ConfidenceScore,
		RiskLevel:        input.RiskLevel,
		Status:           input.Status,
		ApprovalRequired: input.ApprovalRequired,
	}
}
