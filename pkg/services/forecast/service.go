package forecast

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/de-tools/cost-atlas/pkg/models/domain"
)

// errInvalidPatch aborts a patch commit inside Store.Update; the caller
// turns it back into the validation outcome.
var errInvalidPatch = errors.New("patch produced an invalid forecast")

// Filter narrows List results. Empty fields match everything.
type Filter struct {
	BudgetCategory string
	Status         string
}

type Store interface {
	Get(ctx context.Context, key string) (*domain.BudgetForecast, error)
	Upsert(ctx context.Context, record *domain.BudgetForecast)
	List(ctx context.Context) []*domain.BudgetForecast
	Update(ctx context.Context, key string, apply func(*domain.BudgetForecast) error) (*domain.BudgetForecast, error)
}

type Service interface {
	// Create ingests a forecast definition, derives the remaining budget and
	// variance, and stores the record when valid. An invalid definition
	// returns the validation outcome and no record.
	Create(ctx context.Context, input domain.BudgetForecastInput) (*domain.BudgetForecast, domain.ValidationResult, error)
	Get(ctx context.Context, id string) (*domain.BudgetForecast, error)
	List(ctx context.Context, filter Filter) ([]*domain.BudgetForecast, error)

	// Update applies a partial patch atomically. The patched record is
	// validated before it replaces the stored one; an invalid outcome leaves
	// the stored record untouched and is returned as data.
	Update(ctx context.Context, id string, patch domain.ForecastPatch) (*domain.BudgetForecast, domain.ValidationResult, error)

	AssessRisk(ctx context.Context, id string) (domain.BudgetRiskAssessment, error)
	AddAssumption(ctx context.Context, id, assumption string) (*domain.BudgetForecast, error)
	AddRiskFactor(ctx context.Context, id, factor string) (*domain.BudgetForecast, error)
}

type service struct {
	store Store
}

func NewService(store Store) Service {
	return &service{store: store}
}

func (s *service) Create(ctx context.Context, input domain.BudgetForecastInput) (*domain.BudgetForecast, domain.ValidationResult, error) {
	rec := domain.NewBudgetForecast(input)

	result := rec.Validate()
	if !result.Valid {
		return nil, result, nil
	}

	s.store.Upsert(ctx, rec)
	zerolog.Ctx(ctx).Debug().
		Str("forecast_id", rec.ForecastID).
		Str("budget_name", rec.BudgetName).
		Str("budget_category", string(rec.BudgetCategory)).
		Float64("budget_limit", rec.BudgetLimit).
		Msg("forecast created")
	return rec, result, nil
}

func (s *service) Get(ctx context.Context, id string) (*domain.BudgetForecast, error) {
	rec, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get forecast %s: %w", id, err)
	}
	return rec, nil
}

func (s *service) List(ctx context.Context, filter Filter) ([]*domain.BudgetForecast, error) {
	records := make([]*domain.BudgetForecast, 0)
	for _, rec := range s.store.List(ctx) {
		if matches(rec, filter) {
			records = append(records, rec)
		}
	}
	return records, nil
}

func (s *service) Update(ctx context.Context, id string, patch domain.ForecastPatch) (*domain.BudgetForecast, domain.ValidationResult, error) {
	var result domain.ValidationResult
	updated, err := s.store.Update(ctx, id, func(f *domain.BudgetForecast) error {
		f.ApplyPatch(patch)
		result = f.Validate()
		if !result.Valid {
			return errInvalidPatch
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, errInvalidPatch) {
			return nil, result, nil
		}
		return nil, domain.ValidationResult{}, fmt.Errorf("update forecast %s: %w", id, err)
	}

	zerolog.Ctx(ctx).Debug().
		Str("forecast_id", id).
		Float64("remaining_budget", updated.RemainingBudget).
		Str("variance_type", string(updated.Variance.Type)).
		Msg("forecast updated")
	return updated, result, nil
}

func (s *service) AssessRisk(ctx context.Context, id string) (domain.BudgetRiskAssessment, error) {
	rec, err := s.store.Get(ctx, id)
	if err != nil {
		return domain.BudgetRiskAssessment{}, fmt.Errorf("assess forecast %s: %w", id, err)
	}
	return rec.AssessRisk(), nil
}

func (s *service) AddAssumption(ctx context.Context, id, assumption string) (*domain.BudgetForecast, error) {
	updated, err := s.store.Update(ctx, id, func(f *domain.BudgetForecast) error {
		f.AddAssumption(assumption)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("add assumption to forecast %s: %w", id, err)
	}
	return updated, nil
}

func (s *service) AddRiskFactor(ctx context.Context, id, factor string) (*domain.BudgetForecast, error) {
	updated, err := s.store.Update(ctx, id, func(f *domain.BudgetForecast) error {
		f.AddRiskFactor(factor)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("add risk factor to forecast %s: %w", id, err)
	}
	return updated, nil
}

func matches(rec *domain.BudgetForecast, filter Filter) bool {
	if filter.BudgetCategory != "" && string(rec.BudgetCategory) != filter.BudgetCategory {
		return false
	}
	if filter.Status != "" && string(rec.Status) != filter.Status {
		return false
	}
	return true
}
