package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validResourceInput() ResourceInventoryInput {
	cost := 420.5
	return ResourceInventoryInput{
		ResourceID:   "i-0abc123",
		Region:       "us-east-1",
		ResourceType: "ec2",
		CurrentCost:  &cost,
		Utilization: &UtilizationMetrics{
			CPU:       []float64{45, 52, 61},
			TimeRange: "24h",
			Interval:  "1h",
		},
		OptimizationOpportunities: []string{"rightsizing"},
		State:                     "running",
	}
}

func TestNewResourceInventory_Defaults(t *testing.T) {
	rec := NewResourceInventory(ResourceInventoryInput{
		ResourceID:   "  i-0abc123  ",
		Region:       " us-east-1 ",
		ResourceType: "ec2",
	})

	assert.Equal(t, "i-0abc123", rec.ResourceID)
	assert.Equal(t, "us-east-1", rec.Region)
	assert.Equal(t, ResourceTypeEC2, rec.ResourceType)
	assert.Zero(t, rec.CurrentCost)
	assert.Equal(t, "24h", rec.Utilization.TimeRange)
	assert.Equal(t, "1h", rec.Utilization.Interval)
	assert.Equal(t, "unknown", rec.State)
	assert.NotNil(t, rec.Utilization.CPU)
	assert.NotNil(t, rec.OptimizationOpportunities)
	assert.False(t, rec.Timestamp.IsZero())
}

func TestNewResourceInventory_KeepsReportedValues(t *testing.T) {
	rec := NewResourceInventory(validResourceInput())

	assert.Equal(t, 420.5, rec.CurrentCost)
	assert.Equal(t, []float64{45, 52, 61}, rec.Utilization.CPU)
	assert.Equal(t, "running", rec.State)
	assert.Equal(t, []string{"rightsizing"}, rec.OptimizationOpportunities)
}

func TestResourceInventory_Validate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*ResourceInventoryInput)
		expected []string
	}{
		{
			name:   "valid record",
			mutate: func(input *ResourceInventoryInput) {},
		},
		{
			name: "missing resourceId",
			mutate: func(input *ResourceInventoryInput) {
				input.ResourceID = "   "
			},
			expected: []string{"resourceId is required"},
		},
		{
			name: "missing region",
			mutate: func(input *ResourceInventoryInput) {
				input.Region = ""
			},
			expected: []string{"region is required"},
		},
		{
			name: "unknown resource type",
			mutate: func(input *ResourceInventoryInput) {
				input.ResourceType = "mainframe"
			},
			expected: []string{"resourceType must be one of: ec2, rds, lambda, s3, ebs, elb, cloudwatch"},
		},
		{
			name: "negative cost",
			mutate: func(input *ResourceInventoryInput) {
				cost := -1.0
				input.CurrentCost = &cost
			},
			expected: []string{"currentCost must be a non-negative number"},
		},
		{
			name: "multiple errors keep field order",
			mutate: func(input *ResourceInventoryInput) {
				cost := -5.0
				input.ResourceID = ""
				input.ResourceType = ""
				input.CurrentCost = &cost
			},
			expected: []string{
				"resourceId is required",
				"resourceType must be one of: ec2, rds, lambda, s3, ebs, elb, cloudwatch",
				"currentCost must be a non-negative number",
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			input := validResourceInput()
			tc.mutate(&input)

			result := NewResourceInventory(input).Validate()
			if len(tc.expected) == 0 {
				assert.True(t, result.Valid)
				assert.Empty(t, result.Errors)
				return
			}
			assert.False(t, result.Valid)
			assert.Equal(t, tc.expected, result.Errors)
		})
	}
}

func TestResourceInventory_Key(t *testing.T) {
	rec := NewResourceInventory(validResourceInput())
	assert.Equal(t, ResourceKey{ResourceID: "i-0abc123", Region: "us-east-1"}, rec.Key())
}

func TestResourceInventory_CloneIsolation(t *testing.T) {
	rec := NewResourceInventory(validResourceInput())
	cp := rec.Clone()
	require.Equal(t, rec, cp)

	cp.Utilization.CPU[0] = 99
	cp.OptimizationOpportunities[0] = "cleanup"
	cp.State = "stopped"

	assert.Equal(t, 45.0, rec.Utilization.CPU[0])
	assert.Equal(t, "rightsizing", rec.OptimizationOpportunities[0])
	assert.Equal(t, "running", rec.State)
}
