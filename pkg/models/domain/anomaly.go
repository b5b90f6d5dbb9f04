package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// AnomalyType enumerates the deviation shapes the detector reports.
type AnomalyType string

const (
	AnomalyTypeSpike         AnomalyType = "spike"
	AnomalyTypeTrend         AnomalyType = "trend"
	AnomalyTypePattern       AnomalyType = "pattern"
	AnomalyTypeBaselineShift AnomalyType = "baseline_shift"
)

func anomalyTypeValues() []AnomalyType {
	return []AnomalyType{
		AnomalyTypeSpike,
		AnomalyTypeTrend,
		AnomalyTypePattern,
		AnomalyTypeBaselineShift,
	}
}

// Severity cascade thresholds, most severe tier first. Comparisons are
// strict, so a deviation exactly at a threshold falls to the lower tier.
const (
	criticalDeviationPct    = 200
	criticalDeviationAmount = 10000
	highDeviationPct        = 100
	highDeviationAmount     = 1000
	mediumDeviationPct      = 25
	mediumDeviationAmount   = 100
)

// ContributingFactor is one suspected cause appended to an anomaly.
type ContributingFactor struct {
	Factor  string
	AddedAt time.Time
}

// AffectedResource is one resource appended to an anomaly's blast radius.
type AffectedResource struct {
	ResourceID string
	AddedAt    time.Time
}

// CostAnomaly is one detected cost deviation against a service baseline.
type CostAnomaly struct {
	AnomalyID           string
	ServiceType         ResourceType
	AnomalyType         AnomalyType
	Region              string
	Severity            Severity
	BaselineCost        float64
	ActualCost          float64
	AnalysisConfidence  float64
	Resolved            bool
	ResolvedAt          *time.Time
	ResolvedBy          string
	ResolutionNotes     string
	AlertSent           bool
	AlertSentAt         *time.Time
	AlertChannels       []string
	ContributingFactors []ContributingFactor
	AffectedResources   []AffectedResource
	Timestamp           time.Time
}

// CostAnomalyInput is a partial detection report. Nil pointer fields take
// their defaults during construction.
type CostAnomalyInput struct {
	AnomalyID           string
	ServiceType         string
	AnomalyType         string
	Region              string
	Severity            string
	BaselineCost        *float64
	ActualCost          *float64
	AnalysisConfidence  *float64
	ContributingFactors []string
	AffectedResources   []string
}

// NewCostAnomaly builds a structurally complete anomaly. The ID is generated
// when absent, and the severity is classified from the cost deviation unless
// the detector supplied one.
func NewCostAnomaly(input CostAnomalyInput) *CostAnomaly {
	a := &CostAnomaly{
		AnomalyID:           input.AnomalyID,
		ServiceType:         ResourceType(input.ServiceType),
		AnomalyType:         AnomalyType(input.AnomalyType),
		Region:              input.Region,
		Severity:            Severity(input.Severity),
		AlertChannels:       []string{},
		ContributingFactors: []ContributingFactor{},
		AffectedResources:   []AffectedResource{},
		Timestamp:           time.Now().UTC(),
	}
	if a.AnomalyID == "" {
		a.AnomalyID = uuid.New().String()
	}
	if a.Region == "" {
		a.Region = DefaultRegion
	}
	if input.BaselineCost != nil {
		a.BaselineCost = *input.BaselineCost
	}
	if input.ActualCost != nil {
		a.ActualCost = *input.ActualCost
	}
	if input.AnalysisConfidence != nil {
		a.AnalysisConfidence = *input.AnalysisConfidence
	}
	if a.Severity == "" {
		a.Severity = a.DetermineSeverity()
	}
	for _, factor := range input.ContributingFactors {
		a.AddContributingFactor(factor)
	}
	for _, resourceID := range input.AffectedResources {
		a.AddAffectedResource(resourceID)
	}
	return a
}

// DeviationAmount is the signed cost difference against the baseline.
func (a *CostAnomaly) DeviationAmount() float64 {
	return a.ActualCost - a.BaselineCost
}

// DeviationPercentage is the signed deviation relative to the baseline, 0
// when no baseline exists.
func (a *CostAnomaly) DeviationPercentage() float64 {
	if a.BaselineCost == 0 {
		return 0
	}
	return (a.ActualCost - a.BaselineCost) / a.BaselineCost * 100
}

// DetermineSeverity classifies the anomaly from the absolute deviation, most
// severe rule first. It never mutates Severity; callers adopt the result if
// they want it.
func (a *CostAnomaly) DetermineSeverity() Severity {
	pct := math.Abs(a.DeviationPercentage())
	amount := math.Abs(a.DeviationAmount())
	switch {
	case pct > criticalDeviationPct || amount > criticalDeviationAmount:
		return SeverityCritical
	case pct > highDeviationPct || amount > highDeviationAmount:
		return SeverityHigh
	case pct > mediumDeviationPct || amount > mediumDeviationAmount:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// Resolve closes the anomaly exactly once, stamping who resolved it and why.
// A second call reports false and changes nothing.
func (a *CostAnomaly) Resolve(resolvedBy, notes string) bool {
	if a.Resolved {
		return false
	}
	now := time.Now().UTC()
	a.Resolved = true
	a.ResolvedAt = &now
	a.ResolvedBy = resolvedBy
	a.ResolutionNotes = notes
	return true
}

// MarkAlertSent records alert delivery exactly once. A second call reports
// false and changes nothing.
func (a *CostAnomaly) MarkAlertSent(channels []string) bool {
	if a.AlertSent {
		return false
	}
	now := time.Now().UTC()
	a.AlertSent = true
	a.AlertSentAt = &now
	a.AlertChannels = append([]string{}, channels...)
	return true
}

// AddContributingFactor appends a suspected cause, stamped with the time it
// was added. Appends always succeed.
func (a *CostAnomaly) AddContributingFactor(factor string) {
	a.ContributingFactors = append(a.ContributingFactors, ContributingFactor{
		Factor:  factor,
		AddedAt: time.Now().UTC(),
	})
}

// AddAffectedResource appends a resource to the blast radius, stamped with
// the time it was added. Appends always succeed.
func (a *CostAnomaly) AddAffectedResource(resourceID string) {
	a.AffectedResources = append(a.AffectedResources, AffectedResource{
		ResourceID: resourceID,
		AddedAt:    time.Now().UTC(),
	})
}

// Validate checks classification, cost and confidence constraints.
func (a *CostAnomaly) Validate() ValidationResult {
	var errs []string
	errs = requireOneOf(errs, "serviceType", a.ServiceType, resourceTypeValues())
	errs = requireOneOf(errs, "anomalyType", a.AnomalyType, anomalyTypeValues())
	errs = requireOneOf(errs, "severity", a.Severity, severityValues())
	errs = requireNonNegative(errs, "baselineCost", a.BaselineCost)
	errs = requireNonNegative(errs, "actualCost", a.ActualCost)
	errs = requireRange(errs, "analysisConfidence", a.AnalysisConfidence, 0, 100)
	return validation(errs)
}

// Key returns the record identity used by the repository.
func (a *CostAnomaly) Key() string {
	return a.AnomalyID
}

// Clone returns a deep copy sharing no memory with the receiver.
func (a *CostAnomaly) Clone() *CostAnomaly {
	cp := *a
	cp.ResolvedAt = cloneTime(a.ResolvedAt)
	cp.AlertSentAt = cloneTime(a.AlertSentAt)
	cp.AlertChannels = append([]string{}, a.AlertChannels...)
	cp.ContributingFactors = append([]ContributingFactor{}, a.ContributingFactors...)
	cp.AffectedResources = append([]AffectedResource{}, a.AffectedResources...)
	return &cp
}
