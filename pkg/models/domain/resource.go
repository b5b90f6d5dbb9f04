package domain

import (
	"strings"
	"time"
)

// ResourceType enumerates the cloud services the inventory tracks. The same
// values classify the service a cost anomaly was detected in.
type ResourceType string

const (
	ResourceTypeEC2        ResourceType = "ec2"
	ResourceTypeRDS        ResourceType = "rds"
	ResourceTypeLambda     ResourceType = "lambda"
	ResourceTypeS3         ResourceType = "s3"
	ResourceTypeEBS        ResourceType = "ebs"
	ResourceTypeELB        ResourceType = "elb"
	ResourceTypeCloudWatch ResourceType = "cloudwatch"
)

func resourceTypeValues() []ResourceType {
	return []ResourceType{
		ResourceTypeEC2,
		ResourceTypeRDS,
		ResourceTypeLambda,
		ResourceTypeS3,
		ResourceTypeEBS,
		ResourceTypeELB,
		ResourceTypeCloudWatch,
	}
}

// Valid reports whether the value is a known resource type.
func (t ResourceType) Valid() bool {
	return contains(resourceTypeValues(), t)
}

const (
	defaultUtilizationRange    = "24h"
	defaultUtilizationInterval = "1h"
	defaultResourceState       = "unknown"
)

// UtilizationMetrics holds the sampled time series reported for a resource,
// covering TimeRange at one sample per Interval.
type UtilizationMetrics struct {
	CPU       []float64
	Memory    []float64
	Network   []float64
	Storage   []float64
	TimeRange string
	Interval  string
}

// ResourceInventory is one discovered cloud resource. Its identity is
// (ResourceID, Region); a later report for the same identity replaces the
// record wholesale, no history is kept.
type ResourceInventory struct {
	ResourceID                string
	Region                    string
	ResourceType              ResourceType
	CurrentCost               float64
	Utilization               UtilizationMetrics
	OptimizationOpportunities []string
	State                     string
	Timestamp                 time.Time
}

// ResourceKey is the upsert identity of an inventory record.
type ResourceKey struct {
	ResourceID string
	Region     string
}

// ResourceInventoryInput is a partial discovery report. Nil pointer fields
// take their defaults during construction.
type ResourceInventoryInput struct {
	ResourceID                string
	Region                    string
	ResourceType              string
	CurrentCost               *float64
	Utilization               *UtilizationMetrics
	OptimizationOpportunities []string
	State                     string
}

// NewResourceInventory builds a structurally complete record from a partial
// discovery report, so validation and every later computation can assume all
// fields are present.
func NewResourceInventory(input ResourceInventoryInput) *ResourceInventory {
	rec := &ResourceInventory{
		ResourceID:                strings.TrimSpace(input.ResourceID),
		Region:                    strings.TrimSpace(input.Region),
		ResourceType:              ResourceType(input.ResourceType),
		OptimizationOpportunities: append([]string{}, input.OptimizationOpportunities...),
		State:                     input.State,
		Timestamp:                 time.Now().UTC(),
	}
	if input.CurrentCost != nil {
		rec.CurrentCost = *input.CurrentCost
	}
	if input.Utilization != nil {
		rec.Utilization = cloneUtilization(*input.Utilization)
	} else {
		rec.Utilization = cloneUtilization(UtilizationMetrics{})
	}
	if rec.Utilization.TimeRange == "" {
		rec.Utilization.TimeRange = defaultUtilizationRange
	}
	if rec.Utilization.Interval == "" {
		rec.Utilization.Interval = defaultUtilizationInterval
	}
	if rec.State == "" {
		rec.State = defaultResourceState
	}
	return rec
}

// Validate checks identity, classification and cost constraints. The result
// is a list of display-ready messages, never an error.
func (r *ResourceInventory) Validate() ValidationResult {
	var errs []string
	errs = requireText(errs, "resourceId", r.ResourceID)
	errs = requireText(errs, "region", r.Region)
	errs = requireOneOf(errs, "resourceType", r.ResourceType, resourceTypeValues())
	errs = requireNonNegative(errs, "currentCost", r.CurrentCost)
	return validation(errs)
}

// Key returns the upsert identity of the record.
func (r *ResourceInventory) Key() ResourceKey {
	return ResourceKey{ResourceID: r.ResourceID, Region: r.Region}
}

// Clone returns a deep copy sharing no memory with the receiver.
func (r *ResourceInventory) Clone() *ResourceInventory {
	cp := *r
	cp.Utilization = cloneUtilization(r.Utilization)
	cp.OptimizationOpportunities = append([]string{}, r.OptimizationOpportunities...)
	return &cp
}

func cloneUtilization(u UtilizationMetrics) UtilizationMetrics {
	return UtilizationMetrics{
		CPU:       append([]float64{}, u.CPU...),
		Memory:    append([]float64{}, u.Memory...),
		Network:   append([]float64{}, u.Network...),
		Storage:   append([]float64{}, u.Storage...),
		TimeRange: u.TimeRange,
		Interval:  u.Interval,
	}
}
