package anomaly

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/de-tools/cost-atlas/pkg/models/domain"
)

// ErrAlreadyResolved reports a resolution attempt on an anomaly that was
// resolved before. The first resolution stands.
var ErrAlreadyResolved = errors.New("anomaly already resolved")

// ErrAlertAlreadySent reports a duplicate alert delivery record. The first
// delivery stands.
var ErrAlertAlreadySent = errors.New("anomaly alert already sent")

// Filter narrows List results. Empty fields match everything; Resolved nil
// matches both open and resolved anomalies.
type Filter struct {
	Severity    string
	ServiceType string
	Resolved    *bool
}

type Store interface {
	Get(ctx context.Context, key string) (*domain.CostAnomaly, error)
	Upsert(ctx context.Context, record *domain.CostAnomaly)
	List(ctx context.Context) []*domain.CostAnomaly
	Update(ctx context.Context, key string, apply func(*domain.CostAnomaly) error) (*domain.CostAnomaly, error)
}

type Service interface {
	// Record ingests a detection. Severity comes from the detector when
	// supplied and from the deviation cascade otherwise. An invalid
	// detection returns the validation outcome and no record.
	Record(ctx context.Context, input domain.CostAnomalyInput) (*domain.CostAnomaly, domain.ValidationResult, error)
	Get(ctx context.Context, id string) (*domain.CostAnomaly, error)
	List(ctx context.Context, filter Filter) ([]*domain.CostAnomaly, error)

	// Resolve and MarkAlertSent are one-shot; a second call returns
	// ErrAlreadyResolved / ErrAlertAlreadySent.
	Resolve(ctx context.Context, id, resolvedBy, notes string) (*domain.CostAnomaly, error)
	MarkAlertSent(ctx context.Context, id string, channels []string) (*domain.CostAnomaly, error)

	AddContributingFactor(ctx context.Context, id, factor string) (*domain.CostAnomaly, error)
	AddAffectedResource(ctx context.Context, id, resourceID string) (*domain.CostAnomaly, error)
}

type service struct {
	store Store
}

func NewService(store Store) Service {
	return &service{store: store}
}

func (s *service) Record(ctx context.Context, input domain.CostAnomalyInput) (*domain.CostAnomaly, domain.ValidationResult, error) {
	rec := domain.NewCostAnomaly(input)

	result := rec.Validate()
	if !result.Valid {
		return nil, result, nil
	}

	s.store.Upsert(ctx, rec)
	zerolog.Ctx(ctx).Debug().
		Str("anomaly_id", rec.AnomalyID).
		Str("service_type", string(rec.ServiceType)).
		Str("severity", string(rec.Severity)).
		Float64("deviation_amount", rec.DeviationAmount()).
		Msg("anomaly recorded")
	return rec, result, nil
}

func (s *service) Get(ctx context.Context, id string) (*domain.CostAnomaly, error) {
	rec, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get anomaly %s: %w", id, err)
	}
	return rec, nil
}

func (s *service) List(ctx context.Context, filter Filter) ([]*domain.CostAnomaly, error) {
	records := make([]*domain.CostAnomaly, 0)
	for _, rec := range s.store.List(ctx) {
		if matches(rec, filter) {
			records = append(records, rec)
		}
	}
	return records, nil
}

func (s *service) Resolve(ctx context.Context, id, resolvedBy, notes string) (*domain.CostAnomaly, error) {
	updated, err := s.store.Update(ctx, id, func(a *domain.CostAnomaly) error {
		if !a.Resolve(resolvedBy, notes) {
			return ErrAlreadyResolved
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("resolve anomaly %s: %w", id, err)
	}

	zerolog.Ctx(ctx).Info().
		Str("anomaly_id", id).
		Str("resolved_by", resolvedBy).
		Msg("anomaly resolved")
	return updated, nil
}

func (s *service) MarkAlertSent(ctx context.Context, id string, channels []string) (*domain.CostAnomaly, error) {
	updated, err := s.store.Update(ctx, id, func(a *domain.CostAnomaly) error {
		if !a.MarkAlertSent(channels) {
			return ErrAlertAlreadySent
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("mark anomaly %s alerted: %w", id, err)
	}

	zerolog.Ctx(ctx).Info().
		Str("anomaly_id", id).
		Strs("channels", channels).
		Msg("anomaly alert recorded")
	return updated, nil
}

func (s *service) AddContributingFactor(ctx context.Context, id, factor string) (*domain.CostAnomaly, error) {
	updated, err := s.store.Update(ctx, id, func(a *domain.CostAnomaly) error {
		a.AddContributingFactor(factor)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("add factor to anomaly %s: %w", id, err)
	}
	return updated, nil
}

func (s *service) AddAffectedResource(ctx context.Context, id, resourceID string) (*domain.CostAnomaly, error) {
	updated, err := s.store.Update(ctx, id, func(a *domain.CostAnomaly) error {
		a.AddAffectedResource(resourceID)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("add resource to anomaly %s: %w", id, err)
	}
	return updated, nil
}

func matches(rec *domain.CostAnomaly, filter Filter) bool {
	if filter.Severity != "" && string(rec.Severity) != filter.Severity {
		return false
	}
	if filter.ServiceType != "" && string(rec.ServiceType) != filter.ServiceType {
		return false
	}
	if filter.Resolved != nil && rec.Resolved != *filter.Resolved {
		return false
	}
	return true
}
