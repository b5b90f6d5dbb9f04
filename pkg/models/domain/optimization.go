package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// OptimizationType enumerates the kinds of cost-saving action the platform
// recommends.
type OptimizationType string

const (
	OptimizationTypeRightsizing OptimizationType = "rightsizing"
	OptimizationTypePricing     OptimizationType = "pricing"
	OptimizationTypeCleanup     OptimizationType = "cleanup"
	OptimizationTypeScheduling  OptimizationType = "scheduling"
)

func optimizationTypeValues() []OptimizationType {
	return []OptimizationType{
		OptimizationTypeRightsizing,
		OptimizationTypePricing,
		OptimizationTypeCleanup,
		OptimizationTypeScheduling,
	}
}

// OptimizationStatus is the lifecycle state of a recommendation. The guarded
// path is pending -> approved -> executed -> rolled_back, with pending ->
// rejected as the refusal branch.
type OptimizationStatus string

const (
	OptimizationStatusPending    OptimizationStatus = "pending"
	OptimizationStatusApproved   OptimizationStatus = "approved"
	OptimizationStatusExecuted   OptimizationStatus = "executed"
	OptimizationStatusRolledBack OptimizationStatus = "rolled_back"
	OptimizationStatusRejected   OptimizationStatus = "rejected"
)

func optimizationStatusValues() []OptimizationStatus {
	return []OptimizationStatus{
		OptimizationStatusPending,
		OptimizationStatusApproved,
		OptimizationStatusExecuted,
		OptimizationStatusRolledBack,
		OptimizationStatusRejected,
	}
}

// Valid reports whether the value is a known lifecycle status.
func (s OptimizationStatus) Valid() bool {
	return contains(optimizationStatusValues(), s)
}

// Approval policy amounts, in cost units. Savings above the gate are always
// reviewed; LOW-risk actions at or below the auto-approve limit are not.
const (
	approvalSavingsGate     = 1000
	autoApproveSavingsLimit = 100
)

// CostOptimization is a recommendation to reduce the cost of one resource.
type CostOptimization struct {
	OptimizationID   string
	ResourceID       string
	Region           string
	OptimizationType OptimizationType
	CurrentCost      float64
	ProjectedCost    float64
	EstimatedSavings float64
	ConfidenceScore  float64
	RiskLevel        RiskLevel
	Status           OptimizationStatus
	ApprovalRequired bool
	ApprovedBy       string
	ApprovedAt       *time.Time
	ExecutedAt       *time.Time
	ExecutionResult  string
	RolledBackAt     *time.Time
	RollbackReason   string
	Timestamp        time.Time
}

// CostOptimizationInput is a partial recommendation report. Nil pointer
// fields take their defaults during construction.
type CostOptimizationInput struct {
	OptimizationID   string
	ResourceID       string
	Region           string
	OptimizationType string
	CurrentCost      *float64
	ProjectedCost    *float64
	EstimatedSavings *float64
	ConfidenceScore  *float64
	RiskLevel        string
	Status           string
	ApprovalRequired *bool
}

// NewCostOptimization builds a structurally complete recommendation. The ID
// is generated when absent, the risk level defaults to MEDIUM, the status to
// pending, and ApprovalRequired is computed from the approval policy unless
// the input overrides it explicitly.
func NewCostOptimization(input CostOptimizationInput) *CostOptimization {
	o := &CostOptimization{
		OptimizationID:   strings.TrimSpace(input.OptimizationID),
		ResourceID:       strings.TrimSpace(input.ResourceID),
		Region:           input.Region,
		OptimizationType: OptimizationType(input.OptimizationType),
		RiskLevel:        RiskLevel(input.RiskLevel),
		Status:           OptimizationStatus(input.Status),
		Timestamp:        time.Now().UTC(),
	}
	if o.OptimizationID == "" {
		o.OptimizationID = uuid.New().String()
	}
	if o.Region == "" {
		o.Region = DefaultRegion
	}
	if o.RiskLevel == "" {
		o.RiskLevel = RiskLevelMedium
	}
	if o.Status == "" {
		o.Status = OptimizationStatusPending
	}
	if input.CurrentCost != nil {
		o.CurrentCost = *input.CurrentCost
	}
	if input.ProjectedCost != nil {
		o.ProjectedCost = *input.ProjectedCost
	}
	if input.EstimatedSavings != nil {
		o.EstimatedSavings = *input.EstimatedSavings
	}
	if input.ConfidenceScore != nil {
		o.ConfidenceScore = *input.ConfidenceScore
	}
	if input.ApprovalRequired != nil {
		o.ApprovalRequired = *input.ApprovalRequired
	} else {
		o.ApprovalRequired = o.RequiresApproval()
	}
	return o
}

// SavingsPercentage reports projected savings relative to current cost, 0
// when there is no current cost. The value is deliberately unclamped: a
// projected cost above the current cost yields a negative percentage,
// flagging a recommendation that would raise spend.
func (o *CostOptimization) SavingsPercentage() float64 {
	if o.CurrentCost == 0 {
		return 0
	}
	return (o.CurrentCost - o.ProjectedCost) / o.CurrentCost * 100
}

// RequiresApproval applies the approval gate, first matching rule wins:
// HIGH/CRITICAL risk is always gated, then savings above the large-impact
// gate, then the LOW-risk small-savings auto-approve window; everything else
// defaults to gated.
func (o *CostOptimization) RequiresApproval() bool {
	if o.RiskLevel == RiskLevelHigh || o.RiskLevel == RiskLevelCritical {
		return true
	}
	if o.EstimatedSavings > approvalSavingsGate {
		return true
	}
	if o.RiskLevel == RiskLevelLow && o.EstimatedSavings <= autoApproveSavingsLimit {
		return false
	}
	return true
}

// Approve moves a pending recommendation to approved and stamps the approver.
// It reports false and leaves the record untouched when the recommendation is
// not pending.
func (o *CostOptimization) Approve(approvedBy string) bool {
	if o.Status != OptimizationStatusPending {
		return false
	}
	now := time.Now().UTC()
	o.Status = OptimizationStatusApproved
	o.ApprovedBy = approvedBy
	o.ApprovedAt = &now
	return true
}

// MarkExecuted records the execution of an approved recommendation. It
// reports false and leaves the record untouched when the recommendation is
// not approved.
func (o *CostOptimization) MarkExecuted(result string) bool {
	if o.Status != OptimizationStatusApproved {
		return false
	}
	now := time.Now().UTC()
	o.Status = OptimizationStatusExecuted
	o.ExecutedAt = &now
	o.ExecutionResult = result
	return true
}

// Rollback reverts an executed recommendation. It reports false and leaves
// the record untouched when the recommendation is not executed.
func (o *CostOptimization) Rollback(reason string) bool {
	if o.Status != OptimizationStatusExecuted {
		return false
	}
	now := time.Now().UTC()
	o.Status = OptimizationStatusRolledBack
	o.RolledBackAt = &now
	o.RollbackReason = reason
	return true
}

// OverrideStatus sets the status directly, bypassing every transition guard.
// This is the administrative escape hatch; the guarded operations above are
// the normal path.
func (o *CostOptimization) OverrideStatus(status OptimizationStatus) {
	o.Status = status
}

// Validate checks identity, classification, cost and score constraints.
func (o *CostOptimization) Validate() ValidationResult {
	var errs []string
	errs = requireText(errs, "resourceId", o.ResourceID)
	errs = requireOneOf(errs, "optimizationType", o.OptimizationType, optimizationTypeValues())
	errs = requireNonNegative(errs, "currentCost", o.CurrentCost)
	errs = requireNonNegative(errs, "projectedCost", o.ProjectedCost)
	errs = requireNonNegative(errs, "estimatedSavings", o.EstimatedSavings)
	errs = requireRange(errs, "confidenceScore", o.ConfidenceScore, 0, 100)
	errs = requireOneOf(errs, "riskLevel", o.RiskLevel, riskLevelValues())
	errs = requireOneOf(errs, "status", o.Status, optimizationStatusValues())
	return validation(errs)
}

// Key returns the record identity used by the repository.
func (o *CostOptimization) Key() string {
	return o.OptimizationID
}

// Clone returns a deep copy sharing no memory with the receiver.
func (o *CostOptimization) Clone() *CostOptimization {
	cp := *o
	cp.ApprovedAt = cloneTime(o.ApprovedAt)
	cp.ExecutedAt = cloneTime(o.ExecutedAt)
	cp.RolledBackAt = cloneTime(o.RolledBackAt)
	return &cp
}
