package analytics

import (
	"context"
	"fmt"

	"estateflow/domain"
	"estateflow/metrics"
	"estateflow/policy"
	"estateflow/store"
)

// DefaultRegion is used when the composition root configures no region name.
const DefaultRegion = "central"

// Service gates and scopes the aggregations. Administrators aggregate over
// every listing; everyone else over only their own.
type Service struct {
	store    *store.Store
	resolver *policy.Resolver
	region   string
}

// NewService builds the analytics service for the configured region.
func NewService(st *store.Store, resolver *policy.Resolver, region string) *Service {
	if region == "" {
		region = DefaultRegion
	}
	return &Service{store: st, resolver: resolver, region: region}
}

func (s *Service) scoped(caller domain.Principal, op string) ([]domain.Property, error) {
	var out []domain.Property
	err := s.store.View(func(tx *store.Tx) error {
		actor, err := s.resolver.Resolve(tx, caller)
		if err != nil {
			return err
		}
		if !actor.CanAccessAnalytics() {
			return fmt.Errorf("analytics: %s requires analytics access: %w", op, domain.ErrUnauthorized)
		}
		for _, p := range tx.Properties() {
			if actor.Admin || p.ListedBy == actor.Principal {
				out = append(out, p)
			}
		}
		return nil
	})
	if err != nil {
		metrics.Rejection(op, err)
		return nil, err
	}
	metrics.Operation(op)
	return out, nil
}

// ConfigurationDistribution returns the layout counts over the caller's
// scope, including zero counts for unused layouts.
func (s *Service) ConfigurationDistribution(ctx context.Context, caller domain.Principal) (map[domain.Configuration]int, error) {
	props, err := s.scoped(caller, "get_configuration_distribution")
	if err != nil {
		return nil, err
	}
	return ConfigurationDistribution(props), nil
}

// FurnishingDistribution returns the furnishing counts over the caller's
// scope.
func (s *Service) FurnishingDistribution(ctx context.Context, caller domain.Principal) (map[domain.Furnishing]int, error) {
	props, err := s.scoped(caller, "get_furnishing_distribution")
	if err != nil {
		return nil, err
	}
	return FurnishingDistribution(props), nil
}

// Combined returns the full region report with its density and pricing
// projections over the caller's scope.
func (s *Service) Combined(ctx context.Context, caller domain.Principal) (Combined, error) {
	props, err := s.scoped(caller, "get_combined_analytics")
	if err != nil {
		return Combined{}, err
	}
	return Combine(Aggregate(s.region, props)), nil
}
