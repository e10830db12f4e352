// Package admin implements administrative maintenance of the store.
package admin

import (
	"context"
	"fmt"

	"estateflow/domain"
	"estateflow/logging"
	"estateflow/metrics"
	"estateflow/policy"
	"estateflow/store"
)

// Service exposes administrator-only maintenance operations.
type Service struct {
	store    *store.Store
	resolver *policy.Resolver
}

// NewService builds the admin service.
func NewService(st *store.Store, resolver *policy.Resolver) *Service {
	return &Service{store: st, resolver: resolver}
}

// ResetToFreshDraft atomically replaces all four collections with empty
// ones. There is no partial outcome: the call either fully succeeds or is
// rejected for authorization.
func (s *Service) ResetToFreshDraft(ctx context.Context, caller domain.Principal) error {
	err := s.store.Update(func(tx *store.Tx) error {
		actor, err := s.resolver.Resolve(tx, caller)
		if err != nil {
			return err
		}
		if !actor.CanReset() {
			return fmt.Errorf("admin: reset requires admin: %w", domain.ErrUnauthorized)
		}
		tx.Reset()
		return nil
	})
	if err != nil {
		metrics.Rejection("reset_to_fresh_draft", err)
		return err
	}
	metrics.Operation("reset_to_fresh_draft")
	logging.Logger.WithField("caller", string(caller)).Info("application data reset")
	return nil
}
