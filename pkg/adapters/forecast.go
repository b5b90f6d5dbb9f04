package adapters

import (
	"github.com/de-tools/cost-atlas/pkg/models/api"
	"github.com/de-tools/cost-atlas/pkg/models/domain"
)

func MapConfidenceIntervalDomainToApi(ci domain.ConfidenceInterval) api.ConfidenceInterval {
	return api.ConfidenceInterval{
		Lower:      ci.Lower,
		Upper:      ci.Upper,
		Confidence: ci.Confidence,
	}
}

func MapConfidenceIntervalApiToDomain(ci api.ConfidenceInterval) domain.ConfidenceInterval {
	return domain.ConfidenceInterval{
		Lower:      ci.Lower,
		Upper:      ci.Upper,
		Confidence: ci.Confidence,
	}
}

func MapAlertThresholdsDomainToApi(t domain.AlertThresholds) api.AlertThresholds {
	return api.AlertThresholds{
		Warning:         t.Warning,
		Critical:        t.Critical,
		ForecastOverrun: t.ForecastOverrun,
	}
}

func MapAlertThresholdsApiToDomain(t api.AlertThresholds) domain.AlertThresholds {
	return domain.AlertThresholds{
		Warning:         t.Warning,
		Critical:        t.Critical,
		ForecastOverrun: t.ForecastOverrun,
	}
}

func MapVarianceDomainToApi(v domain.Variance) api.Variance {
	return api.Variance{
		Amount:     v.Amount,
		Percentage: v.Percentage,
		Type:       string(v.Type),
	}
}

func MapVarianceApiToDomain(v api.Variance) domain.Variance {
	return domain.Variance{
		Amount:     v.Amount,
		Percentage: v.Percentage,
		Type:       domain.VarianceType(v.Type),
	}
}

func MapBudgetRiskDomainToApi(r domain.BudgetRiskAssessment) api.BudgetRiskAssessment {
	return api.BudgetRiskAssessment{
		RiskLevel:             string(r.RiskLevel),
		CurrentUtilization:    r.CurrentUtilization,
		ForecastedUtilization: r.ForecastedUtilization,
	}
}

func MapAllocationRulesDomainToApi(rules []domain.AllocationRule) []api.AllocationRule {
	mapped := []api.AllocationRule{}
	for _, r := range rules {
		mapped = append(mapped, api.AllocationRule{
			BudgetID:   r.BudgetID,
			Percentage: r.Percentage,
		})
	}
	return mapped
}

func MapAllocationRulesApiToDomain(rules []api.AllocationRule) []domain.AllocationRule {
	mapped := []domain.AllocationRule{}
	for _, r := range rules {
		mapped = append(mapped, domain.AllocationRule{
			BudgetID:   r.BudgetID,
			Percentage: r.Percentage,
		})
	}
	return mapped
}

// MapBudgetForecastDomainToApi serializes a forecast, embedding a fresh risk
// assessment alongside the stored derived fields.
func MapBudgetForecastDomainToApi(f domain.BudgetForecast) api.BudgetForecast {
	mapped := api.BudgetForecast{
		ForecastID:         f.ForecastID,
		BudgetName:         f.BudgetName,
		BudgetCategory:     string(f.BudgetCategory),
		Region:             f.Region,
		CurrentSpend:       f.CurrentSpend,
		ForecastedSpend:    f.ForecastedSpend,
		BudgetLimit:        f.BudgetLimit,
		RemainingBudget:    f.RemainingBudget,
		ConfidenceInterval: MapConfidenceIntervalDomainToApi(f.ConfidenceInterval),
		ProjectionPeriod:   string(f.ProjectionPeriod),
		AlertThresholds:    MapAlertThresholdsDomainToApi(f.AlertThresholds),
		Status:             string(f.Status),
		Variance:           MapVarianceDomainToApi(f.Variance),
		BudgetRisk:         MapBudgetRiskDomainToApi(f.AssessRisk()),
		Assumptions:        []api.BudgetAssumption{},
		RiskFactors:        []api.BudgetRiskFactor{},
		ChildBudgets:       append([]string{}, f.ChildBudgets...),
		AllocationRules:    MapAllocationRulesDomainToApi(f.AllocationRules),
		Timestamp:          f.Timestamp,
	}

	for _, a := range f.Assumptions {
		mapped.Assumptions = append(mapped.Assumptions, api.BudgetAssumption{
			Assumption: a.Assumption,
			AddedAt:    a.AddedAt,
		})
	}
	for _, r := range f.RiskFactors {
		mapped.RiskFactors = append(mapped.RiskFactors, api.BudgetRiskFactor{
			Factor:  r.Factor,
			AddedAt: r.AddedAt,
		})
	}

	return mapped
}

// MapBudgetForecastApiToDomain restores a serialized forecast. The stored
// derived fields round-trip verbatim; the embedded risk assessment is dropped
// because the domain record reassesses it on demand.
func MapBudgetForecastApiToDomain(f api.BudgetForecast) domain.BudgetForecast {
	mapped := domain.BudgetForecast{
		ForecastID:         f.ForecastID,
		BudgetName:         f.BudgetName,
		BudgetCategory:     domain.BudgetCategory(f.BudgetCategory),
		Region:             f.Region,
		CurrentSpend:       f.CurrentSpend,
		ForecastedSpend:    f.ForecastedSpend,
		BudgetLimit:        f.BudgetLimit,
		RemainingBudget:    f.RemainingBudget,
		ConfidenceInterval: MapConfidenceIntervalApiToDomain(f.ConfidenceInterval),
		ProjectionPeriod:   domain.ProjectionPeriod(f.ProjectionPeriod),
		AlertThresholds:    MapAlertThresholdsApiToDomain(f.AlertThresholds),
		Status:             domain.ForecastStatus(f.Status),
		Variance:           MapVarianceApiToDomain(f.Variance),
		Assumptions:        []domain.BudgetAssumption{},
		RiskFactors:        []domain.BudgetRiskFactor{},
		ChildBudgets:       append([]string{}, f.ChildBudgets...),
		AllocationRules:    MapAllocationRulesApiToDomain(f.AllocationRules),
		Timestamp:          f.Timestamp,
	}

	for _, a := range f.Assumptions {
		mapped.Assumptions = append(mapped.Assumptions, domain.BudgetAssumption{
			Assumption: a.Assumption,
			AddedAt:    a.AddedAt,
		})
	}
	for _, r := range f.RiskFactors {
		mapped.RiskFactors = append(mapped.RiskFactors, domain.BudgetRiskFactor{
			Factor:  r.Factor,
			AddedAt: r.AddedAt,
		})
	}

	return mapped
}

func MapBudgetForecastInputApiToDomain(input api.BudgetForecastInput) domain.BudgetForecastInput {
	mapped := domain.BudgetForecastInput{
		ForecastID:       input.ForecastID,
		BudgetName:       input.BudgetName,
		BudgetCategory:   input.BudgetCategory,
		Region:           input.Region,
		CurrentSpend:     input.CurrentSpend,
		ForecastedSpend:  input.ForecastedSpend,
		BudgetLimit:      input.BudgetLimit,
		ProjectionPeriod: input.ProjectionPeriod,
		Status:           input.Status,
		Assumptions:      append([]string{}, input.Assumptions...),
		RiskFactors:      append([]string{}, input.RiskFactors...),
		ChildBudgets:     append([]string{}, input.ChildBudgets...),
		AllocationRules:  MapAllocationRulesApiToDomain(input.AllocationRules),
	}
	if input.ConfidenceInterval != nil {
		ci := MapConfidenceIntervalApiToDomain(*input.ConfidenceInterval)
		mapped.ConfidenceInterval = &ci
	}
	if input.AlertThresholds != nil {
		t := MapAlertThresholdsApiToDomain(*input.AlertThresholds)
		mapped.AlertThresholds = &t
	}
	return mapped
}

// MapForecastPatchApiToDomain converts a wire patch into the typed domain
// patch. Nil stays nil so untouched fields keep their stored values.
func MapForecastPatchApiToDomain(patch api.ForecastPatch) domain.ForecastPatch {
	mapped := domain.ForecastPatch{
		BudgetName:      patch.BudgetName,
		Region:          patch.Region,
		CurrentSpend:    patch.CurrentSpend,
		ForecastedSpend: patch.ForecastedSpend,
		BudgetLimit:     patch.BudgetLimit,
	}
	if patch.BudgetCategory != nil {
		category := domain.BudgetCategory(*patch.BudgetCategory)
		mapped.BudgetCategory = &category
	}
	if patch.ConfidenceInterval != nil {
		ci := MapConfidenceIntervalApiToDomain(*patch.ConfidenceInterval)
		mapped.ConfidenceInterval = &ci
	}
	if patch.ProjectionPeriod != nil {
		period := domain.ProjectionPeriod(*patch.ProjectionPeriod)
		mapped.ProjectionPeriod = &period
	}
	if patch.AlertThresholds != nil {
		t := MapAlertThresholdsApiToDomain(*patch.AlertThresholds)
		mapped.AlertThresholds = &t
	}
	if patch.Status != nil {
		status := domain.ForecastStatus(*patch.Status)
		mapped.Status = &status
	}
	if patch.ChildBudgets != nil {
		mapped.ChildBudgets = append([]string{}, patch.ChildBudgets...)
	}
	if patch.AllocationRules != nil {
		mapped.AllocationRules = MapAllocationRulesApiToDomain(patch.AllocationRules)
	}
	return mapped
}
