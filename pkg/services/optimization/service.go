package optimization

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/de-tools/cost-atlas/pkg/models/domain"
)

// ErrIllegalTransition reports a lifecycle operation applied to a
// recommendation whose current status forbids it. The record is unchanged.
var ErrIllegalTransition = errors.New("illegal status transition")

// ErrUnknownStatus reports a status override with a value outside the
// lifecycle enum.
var ErrUnknownStatus = errors.New("unknown optimization status")

// Filter narrows List results. Empty fields match everything.
type Filter struct {
	Status     string
	RiskLevel  string
	ResourceID string
}

// Store is the repository the service needs. Update runs its mutation
// atomically against the stored record and discards it on error.
type Store interface {
	Get(ctx context.Context, key string) (*domain.CostOptimization, error)
	Upsert(ctx context.Context, record *domain.CostOptimization)
	List(ctx context.Context) []*domain.CostOptimization
	Find(ctx context.Context, match func(*domain.CostOptimization) bool) (*domain.CostOptimization, bool)
	Update(ctx context.Context, key string, apply func(*domain.CostOptimization) error) (*domain.CostOptimization, error)
}

type Service interface {
	// Create ingests a recommendation. A pending recommendation for a
	// (resourceId, optimizationType) pair that already has a pending record
	// refreshes that record in place, keeping its optimizationId. An invalid
	// recommendation returns the validation outcome and no record.
	Create(ctx context.Context, input domain.CostOptimizationInput) (*domain.CostOptimization, domain.ValidationResult, error)
	Get(ctx context.Context, id string) (*domain.CostOptimization, error)
	List(ctx context.Context, filter Filter) ([]*domain.CostOptimization, error)

	// The guarded lifecycle. Each returns ErrIllegalTransition when the
	// current status forbids the step.
	Approve(ctx context.Context, id, approvedBy string) (*domain.CostOptimization, error)
	Execute(ctx context.Context, id, result string) (*domain.CostOptimization, error)
	Rollback(ctx context.Context, id, reason string) (*domain.CostOptimization, error)

	// OverrideStatus is the administrative escape hatch: any known status,
	// no transition guard.
	OverrideStatus(ctx context.Context, id, status string) (*domain.CostOptimization, error)
}

type service struct {
	store Store
}

func NewService(store Store) Service {
	return &service{store: store}
}

func (s *service) Create(ctx context.Context, input domain.CostOptimizationInput) (*domain.CostOptimization, domain.ValidationResult, error) {
	rec := domain.NewCostOptimization(input)

	result := rec.Validate()
	if !result.Valid {
		return nil, result, nil
	}

	if rec.Status == domain.OptimizationStatusPending {
		existing, ok := s.store.Find(ctx, func(o *domain.CostOptimization) bool {
			return o.Status == domain.OptimizationStatusPending &&
				o.ResourceID == rec.ResourceID &&
				o.OptimizationType == rec.OptimizationType
		})
		if ok {
			rec.OptimizationID = existing.OptimizationID
		}
	}

	s.store.Upsert(ctx, rec)
	zerolog.Ctx(ctx).Debug().
		Str("optimization_id", rec.OptimizationID).
		Str("resource_id", rec.ResourceID).
		Str("optimization_type", string(rec.OptimizationType)).
		Float64("estimated_savings", rec.EstimatedSavings).
		Msg("optimization recorded")
	return rec, result, nil
}

func (s *service) Get(ctx context.Context, id string) (*domain.CostOptimization, error) {
	rec, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get optimization %s: %w", id, err)
	}
	return rec, nil
}

func (s *service) List(ctx context.Context, filter Filter) ([]*domain.CostOptimization, error) {
	records := make([]*domain.CostOptimization, 0)
	for _, rec := range s.store.List(ctx) {
		if matches(rec, filter) {
			records = append(records, rec)
		}
	}
	return records, nil
}

func (s *service) Approve(ctx context.Context, id, approvedBy string) (*domain.CostOptimization, error) {
	return s.transition(ctx, id, "approve", func(o *domain.CostOptimization) bool {
		return o.Approve(approvedBy)
	})
}

func (s *service) Execute(ctx context.Context, id, result string) (*domain.CostOptimization, error) {
	return s.transition(ctx, id, "execute", func(o *domain.CostOptimization) bool {
		return o.MarkExecuted(result)
	})
}

func (s *service) Rollback(ctx context.Context, id, reason string) (*domain.CostOptimization, error) {
	return s.transition(ctx, id, "rollback", func(o *domain.CostOptimization) bool {
		return o.Rollback(reason)
	})
}

func (s *service) OverrideStatus(ctx context.Context, id, status string) (*domain.CostOptimization, error) {
	target := domain.OptimizationStatus(status)
	if !target.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStatus, status)
	}

	updated, err := s.store.Update(ctx, id, func(o *domain.CostOptimization) error {
		o.OverrideStatus(target)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("override optimization %s: %w", id, err)
	}

	zerolog.Ctx(ctx).Info().
		Str("optimization_id", id).
		Str("status", status).
		Msg("optimization status overridden")
	return updated, nil
}

// transition runs one guarded lifecycle step atomically. The guard decides
// against the stored status, so concurrent callers race for the single
// legal transition and the losers get ErrIllegalTransition.
func (s *service) transition(ctx context.Context, id, op string, step func(*domain.CostOptimization) bool) (*domain.CostOptimization, error) {
	updated, err := s.store.Update(ctx, id, func(o *domain.CostOptimization) error {
		if !step(o) {
			return fmt.Errorf("%w: cannot %s optimization in status %q", ErrIllegalTransition, op, o.Status)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s optimization %s: %w", op, id, err)
	}

	zerolog.Ctx(ctx).Info().
		Str("optimization_id", id).
		Str("operation", op).
		Str("status", string(updated.Status)).
		Msg("optimization transitioned")
	return updated, nil
}

func matches(rec *domain.CostOptimization, filter Filter) bool {
	if filter.Status != "" && string(rec.Status) != filter.Status {
		return false
	}
	if filter.RiskLevel != "" && string(rec.RiskLevel) != filter.RiskLevel {
		return false
	}
	if filter.ResourceID != "" && rec.ResourceID != filter.ResourceID {
		return false
	}
	return true
}
