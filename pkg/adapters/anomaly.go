package adapters

import (
	"github.com/de-tools/cost-atlas/pkg/models/api"
	"github.com/de-tools/cost-atlas/pkg/models/domain"
)

// MapCostAnomalyDomainToApi serializes an anomaly, embedding the deviation
// amount and percentage so consumers never recompute them.
func MapCostAnomalyDomainToApi(a domain.CostAnomaly) api.CostAnomaly {
	mapped := api.CostAnomaly{
		AnomalyID:           a.AnomalyID,
		ServiceType:         string(a.ServiceType),
		AnomalyType:         string(a.AnomalyType),
		Region:              a.Region,
		Severity:            string(a.Severity),
		BaselineCost:        a.BaselineCost,
		ActualCost:          a.ActualCost,
		DeviationAmount:     a.DeviationAmount(),
		DeviationPercentage: a.DeviationPercentage(),
		AnalysisConfidence:  a.AnalysisConfidence,
		Resolved:            a.Resolved,
		ResolvedAt:          a.ResolvedAt,
		ResolvedBy:          a.ResolvedBy,
		ResolutionNotes:     a.ResolutionNotes,
		AlertSent:           a.AlertSent,
		AlertSentAt:         a.AlertSentAt,
		AlertChannels:       append([]string{}, a.AlertChannels...),
		ContributingFactors: []api.ContributingFactor{},
		AffectedResources:   []api.AffectedResource{},
		Timestamp:           a.Timestamp,
	}

	for _, f := range a.ContributingFactors {
		mapped.ContributingFactors = append(mapped.ContributingFactors, api.ContributingFactor{
			Factor:  f.Factor,
			AddedAt: f.AddedAt,
		})
	}
	for _, r := range a.AffectedResources {
		mapped.AffectedResources = append(mapped.AffectedResources, api.AffectedResource{
			ResourceID: r.ResourceID,
			AddedAt:    r.AddedAt,
		})
	}

	return mapped
}

// MapCostAnomalyApiToDomain restores a serialized anomaly. The cached
// deviation fields are dropped; the domain record recomputes them from the
// costs on demand.
func MapCostAnomalyApiToDomain(a api.CostAnomaly) domain.CostAnomaly {
	mapped := domain.CostAnomaly{
		AnomalyID:           a.AnomalyID,
		ServiceType:         domain.ResourceType(a.ServiceType),
		AnomalyType:         domain.AnomalyType(a.AnomalyType),
		Region:              a.Region,
		Severity:            domain.Severity(a.Severity),
		BaselineCost:        a.BaselineCost,
		ActualCost:          a.ActualCost,
		AnalysisConfidence:  a.AnalysisConfidence,
		Resolved:            a.Resolved,
		ResolvedAt:          a.ResolvedAt,
		ResolvedBy:          a.ResolvedBy,
		ResolutionNotes:     a.ResolutionNotes,
		AlertSent:           a.AlertSent,
		AlertSentAt:         a.AlertSentAt,
		AlertChannels:       append([]string{}, a.AlertChannels...),
		ContributingFactors: []domain.ContributingFactor{},
		AffectedResources:   []domain.AffectedResource{},
		Timestamp:           a.Timestamp,
	}

	for _, f := range a.ContributingFactors {
		mapped.ContributingFactors = append(mapped.ContributingFactors, domain.ContributingFactor{
			Factor:  f.Factor,
			AddedAt: f.AddedAt,
		})
	}
	for _, r := range a.AffectedResources {
		mapped.AffectedResources = append(mapped.AffectedResources, domain.AffectedResource{
			ResourceID: r.ResourceID,
			AddedAt:    r.AddedAt,
		})
	}

	return mapped
}

func MapCostAnomalyInputApiToDomain(input api.CostAnomalyInput) domain.CostAnomalyInput {
	return domain.CostAnomalyInput{
		AnomalyID:           input.AnomalyID,
		ServiceType:         input.ServiceType,
		AnomalyType:         input.AnomalyType,
		Region:              input.Region,
		Severity:            input.Severity,
		BaselineCost:        input.BaselineCost,
		ActualCost:          input.ActualCost,
		AnalysisConfidence:  input.AnalysisConfidence,
		ContributingFactors: append([]string{}, input.ContributingFactors...),
		AffectedResources:   append([]string{}, input.AffectedResources...),
	}
}
