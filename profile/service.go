// Package profile implements per-identity display profiles. A profile is
// written only by its owner; reading another identity's profile requires
// admin.
package profile

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"estateflow/domain"
	"estateflow/metrics"
	"estateflow/policy"
	"estateflow/store"
)

var validate = validator.New()

// Service exposes user profile operations.
type Service struct {
	store    *store.Store
	resolver *policy.Resolver
}

// NewService builds the profile service.
func NewService(st *store.Store, resolver *policy.Resolver) *Service {
	return &Service{store: st, resolver: resolver}
}

// SaveParams carries the profile fields.
type SaveParams struct {
	Name        string `validate:"required"`
	ContactInfo string `validate:"required"`
}

// SaveCaller creates or overwrites the caller's own profile.
func (s *Service) SaveCaller(ctx context.Context, caller domain.Principal, params SaveParams) (domain.UserProfile, error) {
	saved := domain.UserProfile{Name: params.Name, ContactInfo: params.ContactInfo}
	err := s.store.Update(func(tx *store.Tx) error {
		if _, err := s.resolver.Resolve(tx, caller); err != nil {
			return err
		}
		if err := validate.Struct(params); err != nil {
			return fmt.Errorf("profile: invalid params: %w", err)
		}
		tx.PutProfile(caller, saved)
		return nil
	})
	if err != nil {
		metrics.Rejection("save_caller_user_profile", err)
		return domain.UserProfile{}, err
	}
	metrics.Operation("save_caller_user_profile")
	return saved, nil
}

// GetCaller returns the caller's own profile.
func (s *Service) GetCaller(ctx context.Context, caller domain.Principal) (domain.UserProfile, error) {
	return s.get(caller, caller, "get_caller_user_profile")
}

// Get returns the profile of the given identity. Reading someone else's
// profile requires admin.
func (s *Service) Get(ctx context.Context, caller domain.Principal, id domain.Principal) (domain.UserProfile, error) {
	return s.get(caller, id, "get_user_profile")
}

func (s *Service) get(caller, id domain.Principal, op string) (domain.UserProfile, error) {
	var out domain.UserProfile
	err := s.store.View(func(tx *store.Tx) error {
		actor, err := s.resolver.Resolve(tx, caller)
		if err != nil {
			return err
		}
		if id != actor.Principal && !actor.Admin {
			return fmt.Errorf("profile: reading another identity's profile requires admin: %w", domain.ErrUnauthorized)
		}
		rec, ok := tx.Profile(id)
		if !ok {
			return fmt.Errorf("profile: %s: %w", id, domain.ErrNotFound)
		}
		out = rec
		return nil
	})
	if err != nil {
		metrics.Rejection(op, err)
		return domain.UserProfile{}, err
	}
	metrics.Operation(op)
	return out, nil
}
