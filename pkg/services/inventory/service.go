package inventory

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/de-tools/cost-atlas/pkg/models/domain"
)

// Filter narrows List results. Empty fields match everything.
type Filter struct {
	Region       string
	ResourceType string
	State        string
}

// Store is the repository the service needs: keyed access plus a full scan
// for filtered listings.
type Store interface {
	Get(ctx context.Context, key domain.ResourceKey) (*domain.ResourceInventory, error)
	Upsert(ctx context.Context, record *domain.ResourceInventory)
	Delete(ctx context.Context, key domain.ResourceKey) error
	List(ctx context.Context) []*domain.ResourceInventory
}

type Service interface {
	// Report ingests a discovery report. The record is built with defaults
	// applied, validated, and stored only when valid; a report for an already
	// known (resourceId, region) replaces the record wholesale. An invalid
	// report returns the validation outcome and no record.
	Report(ctx context.Context, input domain.ResourceInventoryInput) (*domain.ResourceInventory, domain.ValidationResult, error)
	Get(ctx context.Context, key domain.ResourceKey) (*domain.ResourceInventory, error)
	Remove(ctx context.Context, key domain.ResourceKey) error
	List(ctx context.Context, filter Filter) ([]*domain.ResourceInventory, error)
}

type service struct {
	store Store
}

func NewService(store Store) Service {
	return &service{store: store}
}

func (s *service) Report(ctx context.Context, input domain.ResourceInventoryInput) (*domain.ResourceInventory, domain.ValidationResult, error) {
	rec := domain.NewResourceInventory(input)

	result := rec.Validate()
	if !result.Valid {
		return nil, result, nil
	}

	s.store.Upsert(ctx, rec)
	zerolog.Ctx(ctx).Debug().
		Str("resource_id", rec.ResourceID).
		Str("region", rec.Region).
		Str("resource_type", string(rec.ResourceType)).
		Msg("resource reported")
	return rec, result, nil
}

func (s *service) Get(ctx context.Context, key domain.ResourceKey) (*domain.ResourceInventory, error) {
	rec, err := s.store.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("get resource %s/%s: %w", key.Region, key.ResourceID, err)
	}
	return rec, nil
}

func (s *service) Remove(ctx context.Context, key domain.ResourceKey) error {
	if err := s.store.Delete(ctx, key); err != nil {
		return fmt.Errorf("remove resource %s/%s: %w", key.Region, key.ResourceID, err)
	}
	zerolog.Ctx(ctx).Debug().
		Str("resource_id", key.ResourceID).
		Str("region", key.Region).
		Msg("resource removed")
	return nil
}

func (s *service) List(ctx context.Context, filter Filter) ([]*domain.ResourceInventory, error) {
	records := make([]*domain.ResourceInventory, 0)
	for _, rec := range s.store.List(ctx) {
		if matches(rec, filter) {
			records = append(records, rec)
		}
	}
	return records, nil
}

func matches(rec *domain.ResourceInventory, filter Filter) bool {
	if filter.Region != "" && rec.Region != filter.Region {
		return false
	}
	if filter.ResourceType != "" && string(rec.ResourceType) != filter.ResourceType {
		return false
	}
	if filter.State != "" && rec.State != filter.State {
		return false
	}
	return true
}
