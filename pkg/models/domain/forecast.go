package domain

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// BudgetCategory is the organizational scope a budget applies to.
type BudgetCategory string

const (
	BudgetCategoryOrganization BudgetCategory = "organization"
	BudgetCategoryTeam         BudgetCategory = "team"
	BudgetCategoryProject      BudgetCategory = "project"
)

func budgetCategoryValues() []BudgetCategory {
	return []BudgetCategory{
		BudgetCategoryOrganization,
		BudgetCategoryTeam,
		BudgetCategoryProject,
	}
}

// ProjectionPeriod is the horizon a forecast projects over.
type ProjectionPeriod string

const (
	ProjectionPeriod1W ProjectionPeriod = "1W"
	ProjectionPeriod1M ProjectionPeriod = "1M"
	ProjectionPeriod3M ProjectionPeriod = "3M"
	ProjectionPeriod6M ProjectionPeriod = "6M"
	ProjectionPeriod1Y ProjectionPeriod = "1Y"
)

func projectionPeriodValues() []ProjectionPeriod {
	return []ProjectionPeriod{
		ProjectionPeriod1W,
		ProjectionPeriod1M,
		ProjectionPeriod3M,
		ProjectionPeriod6M,
		ProjectionPeriod1Y,
	}
}

// ForecastStatus is the administrative state of a budget forecast.
type ForecastStatus string

const (
	ForecastStatusActive    ForecastStatus = "active"
	ForecastStatusExceeded  ForecastStatus = "exceeded"
	ForecastStatusCompleted ForecastStatus = "completed"
	ForecastStatusSuspended ForecastStatus = "suspended"
)

func forecastStatusValues() []ForecastStatus {
	return []ForecastStatus{
		ForecastStatusActive,
		ForecastStatusExceeded,
		ForecastStatusCompleted,
		ForecastStatusSuspended,
	}
}

// VarianceType classifies which side of the budget limit the spend sits on.
type VarianceType string

const (
	VarianceFavorable   VarianceType = "favorable"
	VarianceUnfavorable VarianceType = "unfavorable"
	VarianceNeutral     VarianceType = "neutral"
)

// Default alert thresholds, in percent of the budget limit.
const (
	defaultWarningThreshold         = 80
	defaultCriticalThreshold        = 95
	defaultForecastOverrunThreshold = 100
	defaultIntervalConfidence       = 95
)

// ConfidenceInterval bounds a forecasted spend at a given confidence level.
type ConfidenceInterval struct {
	Lower      float64
	Upper      float64
	Confidence float64
}

// AlertThresholds are the utilization percentages that trip each risk tier.
type AlertThresholds struct {
	Warning         float64
	Critical        float64
	ForecastOverrun float64
}

// DefaultAlertThresholds returns the standard warning/critical/overrun set.
func DefaultAlertThresholds() AlertThresholds {
	return AlertThresholds{
		Warning:         defaultWarningThreshold,
		Critical:        defaultCriticalThreshold,
		ForecastOverrun: defaultForecastOverrunThreshold,
	}
}

// Variance is the spend-versus-limit difference. Amount is always the
// absolute difference; Type carries its direction.
type Variance struct {
	Amount     float64
	Percentage float64
	Type       VarianceType
}

// BudgetAssumption is one assumption the forecast was built on.
type BudgetAssumption struct {
	Assumption string
	AddedAt    time.Time
}

// BudgetRiskFactor is one identified threat to the forecast holding.
type BudgetRiskFactor struct {
	Factor  string
	AddedAt time.Time
}

// AllocationRule distributes a share of this budget to a child budget.
type AllocationRule struct {
	BudgetID   string
	Percentage float64
}

// BudgetRiskAssessment is a point-in-time risk classification of a budget,
// embedded in the serialized record when the forecast is exported.
type BudgetRiskAssessment struct {
	RiskLevel             RiskLevel
	CurrentUtilization    float64
	ForecastedUtilization float64
}

// BudgetForecast is the projected spend of one budget against its limit.
// RemainingBudget and Variance are derived fields the record carries; they
// are refreshed whenever the forecast is constructed or patched.
type BudgetForecast struct {
	ForecastID         string
	BudgetName         string
	BudgetCategory     BudgetCategory
	Region             string
	CurrentSpend       float64
	ForecastedSpend    float64
	BudgetLimit        float64
	RemainingBudget    float64
	ConfidenceInterval ConfidenceInterval
	ProjectionPeriod   ProjectionPeriod
	AlertThresholds    AlertThresholds
	Variance           Variance
	Status             ForecastStatus
	Assumptions        []BudgetAssumption
	RiskFactors        []BudgetRiskFactor
	ChildBudgets       []string
	AllocationRules    []AllocationRule
	Timestamp          time.Time
}

// BudgetForecastInput is a partial forecast definition. Nil pointer fields
// take their defaults during construction.
type BudgetForecastInput struct {
	ForecastID         string
	BudgetName         string
	BudgetCategory     string
	Region             string
	CurrentSpend       *float64
	ForecastedSpend    *float64
	BudgetLimit        *float64
	ConfidenceInterval *ConfidenceInterval
	ProjectionPeriod   string
	AlertThresholds    *AlertThresholds
	Status             string
	Assumptions        []string
	RiskFactors        []string
	ChildBudgets       []string
	AllocationRules    []AllocationRule
}

// NewBudgetForecast builds a structurally complete forecast and derives
// RemainingBudget and Variance from the initial spend and limit.
func NewBudgetForecast(input BudgetForecastInput) *BudgetForecast {
	f := &BudgetForecast{
		ForecastID:     input.ForecastID,
		BudgetName:     strings.TrimSpace(input.BudgetName),
		BudgetCategory: BudgetCategory(input.BudgetCategory),
		Region:         input.Region,
		ConfidenceInterval: ConfidenceInterval{
			Confidence: defaultIntervalConfidence,
		},
		ProjectionPeriod: ProjectionPeriod(input.ProjectionPeriod),
		AlertThresholds:  DefaultAlertThresholds(),
		Status:           ForecastStatus(input.Status),
		Assumptions:      []BudgetAssumption{},
		RiskFactors:      []BudgetRiskFactor{},
		ChildBudgets:     append([]string{}, input.ChildBudgets...),
		AllocationRules:  append([]AllocationRule{}, input.AllocationRules...),
		Timestamp:        time.Now().UTC(),
	}
	if f.ForecastID == "" {
		f.ForecastID = uuid.New().String()
	}
	if f.Region == "" {
		f.Region = DefaultRegion
	}
	if f.ProjectionPeriod == "" {
		f.ProjectionPeriod = ProjectionPeriod1M
	}
	if f.Status == "" {
		f.Status = ForecastStatusActive
	}
	if input.CurrentSpend != nil {
		f.CurrentSpend = *input.CurrentSpend
	}
	if input.ForecastedSpend != nil {
		f.ForecastedSpend = *input.ForecastedSpend
	}
	if input.BudgetLimit != nil {
		f.BudgetLimit = *input.BudgetLimit
	}
	if input.ConfidenceInterval != nil {
		f.ConfidenceInterval = *input.ConfidenceInterval
	}
	if input.AlertThresholds != nil {
		f.AlertThresholds = *input.AlertThresholds
	}
	for _, assumption := range input.Assumptions {
		f.AddAssumption(assumption)
	}
	for _, factor := range input.RiskFactors {
		f.AddRiskFactor(factor)
	}
	f.refreshDerived()
	return f
}

// BudgetUtilization is the current spend as a percentage of the limit, 0
// when no limit is set.
func (f *BudgetForecast) BudgetUtilization() float64 {
	if f.BudgetLimit == 0 {
		return 0
	}
	return f.CurrentSpend / f.BudgetLimit * 100
}

// ForecastedUtilization is the forecasted spend as a percentage of the
// limit, 0 when no limit is set.
func (f *BudgetForecast) ForecastedUtilization() float64 {
	if f.BudgetLimit == 0 {
		return 0
	}
	return f.ForecastedSpend / f.BudgetLimit * 100
}

// CalculateRemainingBudget floors at zero: an overspent budget reports 0
// remaining, never a negative amount.
func (f *BudgetForecast) CalculateRemainingBudget() float64 {
	return math.Max(0, f.BudgetLimit-f.CurrentSpend)
}

// CalculateVariance reports the spend-versus-limit difference: unfavorable
// over the limit, favorable under it, neutral at exactly the limit.
func (f *BudgetForecast) CalculateVariance() Variance {
	diff := f.CurrentSpend - f.BudgetLimit
	v := Variance{Amount: math.Abs(diff), Type: VarianceNeutral}
	switch {
	case diff > 0:
		v.Type = VarianceUnfavorable
	case diff < 0:
		v.Type = VarianceFavorable
	}
	if f.BudgetLimit != 0 {
		v.Percentage = math.Abs(diff) / f.BudgetLimit * 100
	}
	return v
}

// AssessRisk classifies budget health, first matching rule wins. The
// forecast-overrun rule is checked before the current-spend rules, so a
// projected overrun outranks an already critical spend level. All threshold
// comparisons are strict.
func (f *BudgetForecast) AssessRisk() BudgetRiskAssessment {
	assessment := BudgetRiskAssessment{
		RiskLevel:             RiskLevelLow,
		CurrentUtilization:    f.BudgetUtilization(),
		ForecastedUtilization: f.ForecastedUtilization(),
	}
	switch {
	case assessment.ForecastedUtilization > f.AlertThresholds.ForecastOverrun:
		assessment.RiskLevel = RiskLevelCritical
	case assessment.CurrentUtilization > f.AlertThresholds.Critical:
		assessment.RiskLevel = RiskLevelHigh
	case assessment.CurrentUtilization > f.AlertThresholds.Warning:
		assessment.RiskLevel = RiskLevelMedium
	}
	return assessment
}

// ForecastPatch enumerates the fields an update may change. Identity, the
// creation timestamp and the derived fields are deliberately absent: they
// cannot be overwritten by caller-supplied data.
type ForecastPatch struct {
	BudgetName         *string
	BudgetCategory     *BudgetCategory
	Region             *string
	CurrentSpend       *float64
	ForecastedSpend    *float64
	BudgetLimit        *float64
	ConfidenceInterval *ConfidenceInterval
	ProjectionPeriod   *ProjectionPeriod
	AlertThresholds    *AlertThresholds
	Status             *ForecastStatus
	ChildBudgets       []string
	AllocationRules    []AllocationRule
}

// ApplyPatch merges the patch into the forecast and then refreshes
// RemainingBudget and Variance unconditionally, whether or not the spend or
// limit changed.
func (f *BudgetForecast) ApplyPatch(patch ForecastPatch) {
	if patch.BudgetName != nil {
		f.BudgetName = strings.TrimSpace(*patch.BudgetName)
	}
	if patch.BudgetCategory != nil {
		f.BudgetCategory = *patch.BudgetCategory
	}
	if patch.Region != nil {
		f.Region = *patch.Region
	}
	if patch.CurrentSpend != nil {
		f.CurrentSpend = *patch.CurrentSpend
	}
	if patch.ForecastedSpend != nil {
		f.ForecastedSpend = *patch.ForecastedSpend
	}
	if patch.BudgetLimit != nil {
		f.BudgetLimit = *patch.BudgetLimit
	}
	if patch.ConfidenceInterval != nil {
		f.ConfidenceInterval = *patch.ConfidenceInterval
	}
	if patch.ProjectionPeriod != nil {
		f.ProjectionPeriod = *patch.ProjectionPeriod
	}
	if patch.AlertThresholds != nil {
		f.AlertThresholds = *patch.AlertThresholds
	}
	if patch.Status != nil {
		f.Status = *patch.Status
	}
	if patch.ChildBudgets != nil {
		f.ChildBudgets = append([]string{}, patch.ChildBudgets...)
	}
	if patch.AllocationRules != nil {
		f.AllocationRules = append([]AllocationRule{}, patch.AllocationRules...)
	}
	f.refreshDerived()
}

func (f *BudgetForecast) refreshDerived() {
	f.RemainingBudget = f.CalculateRemainingBudget()
	f.Variance = f.CalculateVariance()
}

// AddAssumption appends a forecast assumption, stamped with the time it was
// added. Appends always succeed.
func (f *BudgetForecast) AddAssumption(assumption string) {
	f.Assumptions = append(f.Assumptions, BudgetAssumption{
		Assumption: assumption,
		AddedAt:    time.Now().UTC(),
	})
}

// AddRiskFactor appends an identified risk, stamped with the time it was
// added. Appends always succeed.
func (f *BudgetForecast) AddRiskFactor(factor string) {
	f.RiskFactors = append(f.RiskFactors, BudgetRiskFactor{
		Factor:  factor,
		AddedAt: time.Now().UTC(),
	})
}

// Validate checks naming, classification, spend and threshold constraints.
func (f *BudgetForecast) Validate() ValidationResult {
	var errs []string
	errs = requireText(errs, "budgetName", f.BudgetName)
	errs = requireOneOf(errs, "budgetCategory", f.BudgetCategory, budgetCategoryValues())
	errs = requireNonNegative(errs, "currentSpend", f.CurrentSpend)
	errs = requireNonNegative(errs, "forecastedSpend", f.ForecastedSpend)
	errs = requireNonNegative(errs, "budgetLimit", f.BudgetLimit)
	errs = requireNonNegative(errs, "remainingBudget", f.RemainingBudget)
	errs = requireOneOf(errs, "projectionPeriod", f.ProjectionPeriod, projectionPeriodValues())
	errs = requireOneOf(errs, "status", f.Status, forecastStatusValues())
	return validation(errs)
}

// Key returns the record identity used by the repository.
func (f *BudgetForecast) Key() string {
	return f.ForecastID
}

// Clone returns a deep copy sharing no memory with the receiver.
func (f *BudgetForecast) Clone() *BudgetForecast {
	cp := *f
	cp.Assumptions = append([]BudgetAssumption{}, f.Assumptions...)
	cp.RiskFactors = append([]BudgetRiskFactor{}, f.RiskFactors...)
	cp.ChildBudgets = append([]string{}, f.ChildBudgets...)
	cp.AllocationRules = append([]AllocationRule{}, f.AllocationRules...)
	return &cp
}
