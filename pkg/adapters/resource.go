package adapters

import (
	"github.com/de-tools/cost-atlas/pkg/models/api"
	"github.com/de-tools/cost-atlas/pkg/models/domain"
)

func MapUtilizationDomainToApi(u domain.UtilizationMetrics) api.UtilizationMetrics {
	return api.UtilizationMetrics{
		CPU:       append([]float64{}, u.CPU...),
		Memory:    append([]float64{}, u.Memory...),
		Network:   append([]float64{}, u.Network...),
		Storage:   append([]float64{}, u.Storage...),
		TimeRange: u.TimeRange,
		Interval:  u.Interval,
	}
}

func MapUtilizationApiToDomain(u api.UtilizationMetrics) domain.UtilizationMetrics {
	return domain.UtilizationMetrics{
		CPU:       append([]float64{}, u.CPU...),
		Memory:    append([]float64{}, u.Memory...),
		Network:   append([]float64{}, u.Network...),
		Storage:   append([]float64{}, u.Storage...),
		TimeRange: u.TimeRange,
		Interval:  u.Interval,
	}
}

func MapResourceInventoryDomainToApi(rec domain.ResourceInventory) api.ResourceInventory {
	return api.ResourceInventory{
		ResourceID:                rec.ResourceID,
		Region:                    rec.Region,
		ResourceType:              string(rec.ResourceType),
		CurrentCost:               rec.CurrentCost,
		UtilizationMetrics:        MapUtilizationDomainToApi(rec.Utilization),
		OptimizationOpportunities: append([]string{}, rec.OptimizationOpportunities...),
		State:                     rec.State,
		Timestamp:                 rec.Timestamp,
	}
}

func MapResourceInventoryApiToDomain(rec api.ResourceInventory) domain.ResourceInventory {
	return domain.ResourceInventory{
		ResourceID:                rec.ResourceID,
		Region:                    rec.Region,
		ResourceType:              domain.ResourceType(rec.ResourceType),
		CurrentCost:               rec.CurrentCost,
		Utilization:               MapUtilizationApiToDomain(rec.UtilizationMetrics),
		OptimizationOpportunities: append([]string{}, rec.OptimizationOpportunities...),
		State:                     rec.State,
		Timestamp:                 rec.Timestamp,
	}
}

func MapResourceInventoryInputApiToDomain(input api.ResourceInventoryInput) domain.ResourceInventoryInput {
	mapped := domain.ResourceInventoryInput{
		ResourceID:                input.ResourceID,
		Region:                    input.Region,
		ResourceType:              input.ResourceType,
		CurrentCost:               input.CurrentCost,
		OptimizationOpportunities: append([]string{}, input.OptimizationOpportunities...),
		State:                     input.State,
	}
	if input.UtilizationMetrics != nil {
		u := MapUtilizationApiToDomain(*input.UtilizationMetrics)
		mapped.Utilization = &u
	}
	return mapped
}
