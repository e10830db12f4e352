// Package agent implements staff record management. Only administrators may
// mutate agent records; any resolved caller may read them.
package agent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"estateflow/domain"
	"estateflow/logging"
	"estateflow/metrics"
	"estateflow/policy"
	"estateflow/store"
)

var (
	// ErrDuplicateAgent signals an add for a principal that already has a record.
	ErrDuplicateAgent = errors.New("agent: agent already exists")
)

var validate = validator.New()

// Service exposes agent management operations.
type Service struct {
	store    *store.Store
	resolver *policy.Resolver
	now      func() time.Time
}

// NewService builds the agent service.
func NewService(st *store.Store, resolver *policy.Resolver) *Service {
	return &Service{store: st, resolver: resolver, now: time.Now}
}

// WithClock overrides the time source, for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// CreateParams carries the fields of a new agent record. The principal is
// supplied by the identity collaborator.
type CreateParams struct {
	ID          domain.Principal `validate:"required"`
	Name        string           `validate:"required"`
	ContactInfo string           `validate:"required"`
	Role        domain.Role      `validate:"required"`
}

// Add creates an agent record. Administrator only.
func (s *Service) Add(ctx context.Context, caller domain.Principal, params CreateParams) (domain.Agent, error) {
	var created domain.Agent
	err := s.store.Update(func(tx *store.Tx) error {
		actor, err := s.resolver.Resolve(tx, caller)
		if err != nil {
			return err
		}
		if !actor.CanManageAgents() {
			return fmt.Errorf("agent: add requires admin: %w", domain.ErrUnauthorized)
		}
		if err := validate.Struct(params); err != nil {
			return fmt.Errorf("agent: invalid create params: %w", err)
		}
		if !domain.ValidRole(params.Role) {
			return fmt.Errorf("agent: invalid role %q", params.Role)
		}
		if _, ok := tx.Agent(params.ID); ok {
			return fmt.Errorf("%w: %s", ErrDuplicateAgent, params.ID)
		}
		now := s.now()
		created = domain.Agent{
			ID:          params.ID,
			Name:        params.Name,
			ContactInfo: params.ContactInfo,
			Role:        params.Role,
			Active:      true,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		tx.PutAgent(created)
		return nil
	})
	if err != nil {
		metrics.Rejection("add_agent", err)
		return domain.Agent{}, err
	}
	metrics.Operation("add_agent")
	logging.Logger.WithField("agent", string(created.ID)).Info("agent added")
	return created, nil
}

// UpdateParams carries the mutable fields of an agent record.
type UpdateParams struct {
	Name        string      `validate:"required"`
	ContactInfo string      `validate:"required"`
	Role        domain.Role `validate:"required"`
}

// Update replaces the mutable fields of an existing agent. Administrator
// only. The principal and creation time never change.
func (s *Service) Update(ctx context.Context, caller domain.Principal, id domain.Principal, params UpdateParams) (domain.Agent, error) {
	var updated domain.Agent
	err := s.store.Update(func(tx *store.Tx) error {
		actor, err := s.resolver.Resolve(tx, caller)
		if err != nil {
			return err
		}
		if !actor.CanManageAgents() {
			return fmt.Errorf("agent: update requires admin: %w", domain.ErrUnauthorized)
		}
		if err := validate.Struct(params); err != nil {
			return fmt.Errorf("agent: invalid update params: %w", err)
		}
		if !domain.ValidRole(params.Role) {
			return fmt.Errorf("agent: invalid role %q", params.Role)
		}
		rec, ok := tx.Agent(id)
		if !ok {
			return fmt.Errorf("agent: %s: %w", id, domain.ErrNotFound)
		}
		rec.Name = params.Name
		rec.ContactInfo = params.ContactInfo
		rec.Role = params.Role
		rec.UpdatedAt = s.now()
		tx.PutAgent(rec)
		updated = rec
		return nil
	})
	if err != nil {
		metrics.Rejection("update_agent", err)
		return domain.Agent{}, err
	}
	metrics.Operation("update_agent")
	logging.Logger.WithField("agent", string(id)).Info("agent updated")
	return updated, nil
}

// Deactivate marks an agent inactive. Administrator only. The record and its
// prior associations remain; the agent simply stops resolving and can no
// longer receive new assignments.
func (s *Service) Deactivate(ctx context.Context, caller domain.Principal, id domain.Principal) (domain.Agent, error) {
	var updated domain.Agent
	err := s.store.Update(func(tx *store.Tx) error {
		actor, err := s.resolver.Resolve(tx, caller)
		if err != nil {
			return err
		}
		if !actor.CanManageAgents() {
			return fmt.Errorf("agent: deactivate requires admin: %w", domain.ErrUnauthorized)
		}
		rec, ok := tx.Agent(id)
		if !ok {
			return fmt.Errorf("agent: %s: %w", id, domain.ErrNotFound)
		}
		rec.Active = false
		rec.UpdatedAt = s.now()
		tx.PutAgent(rec)
		updated = rec
		return nil
	})
	if err != nil {
		metrics.Rejection("deactivate_agent", err)
		return domain.Agent{}, err
	}
	metrics.Operation("deactivate_agent")
	logging.Logger.WithField("agent", string(id)).Info("agent deactivated")
	return updated, nil
}

// Get returns one agent record. Any resolved caller may read.
func (s *Service) Get(ctx context.Context, caller domain.Principal, id domain.Principal) (domain.Agent, error) {
	var out domain.Agent
	err := s.store.View(func(tx *store.Tx) error {
		if _, err := s.resolver.Resolve(tx, caller); err != nil {
			return err
		}
		rec, ok := tx.Agent(id)
		if !ok {
			return fmt.Errorf("agent: %s: %w", id, domain.ErrNotFound)
		}
		out = rec
		return nil
	})
	if err != nil {
		metrics.Rejection("get_agent", err)
		return domain.Agent{}, err
	}
	metrics.Operation("get_agent")
	return out, nil
}

// List returns all agent records in ascending createdAt order.
func (s *Service) List(ctx context.Context, caller domain.Principal) ([]domain.Agent, error) {
	var out []domain.Agent
	err := s.store.View(func(tx *store.Tx) error {
		if _, err := s.resolver.Resolve(tx, caller); err != nil {
			return err
		}
		out = tx.Agents()
		return nil
	})
	if err != nil {
		metrics.Rejection("get_all_agents", err)
		return nil, err
	}
	metrics.Operation("get_all_agents")
	return out, nil
}
