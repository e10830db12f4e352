// Package inquiry implements customer inquiry management. Assistants operate
// only on inquiries assigned to themselves; junior agents may create and
// assign but only see their own; agents and administrators see everything.
package inquiry

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"estateflow/domain"
	"estateflow/logging"
	"estateflow/metrics"
	"estateflow/policy"
	"estateflow/store"
)

var validate = validator.New()

// Service exposes inquiry operations.
type Service struct {
	store    *store.Store
	resolver *policy.Resolver
	now      func() time.Time
}

// NewService builds the inquiry service.
func NewService(st *store.Store, resolver *policy.Resolver) *Service {
	return &Service{store: st, resolver: resolver, now: time.Now}
}

// WithClock overrides the time source, for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// isValidActiveAgent reports whether id names an existing, active agent.
// Deactivated agents keep their prior assignments but reject new ones.
func isValidActiveAgent(tx *store.Tx, id domain.Principal) bool {
	rec, ok := tx.Agent(id)
	return ok && rec.Active
}

// CreateParams carries the caller-supplied fields of a new inquiry.
type CreateParams struct {
	PropertyID    string `validate:"required"`
	CustomerName  string `validate:"required"`
	ContactInfo   string `validate:"required"`
	Source        domain.InquirySource
	AssignedAgent domain.Principal `validate:"required"`
	Notes         string
}

// Add records a new inquiry with status "new". Assigning to an agent other
// than the caller requires an assignment-capable role; the assignee must be
// an existing, active agent regardless of who calls.
func (s *Service) Add(ctx context.Context, caller domain.Principal, params CreateParams) (domain.Inquiry, error) {
	var created domain.Inquiry
	err := s.store.Update(func(tx *store.Tx) error {
		actor, err := s.resolver.Resolve(tx, caller)
		if err != nil {
			return err
		}
		if !actor.CanManageInquiries() {
			return fmt.Errorf("inquiry: add requires an inquiry-managing role: %w", domain.ErrUnauthorized)
		}
		if params.AssignedAgent != actor.Principal && !actor.CanAssignToOthers() {
			return fmt.Errorf("inquiry: role may only self-assign: %w", domain.ErrUnauthorized)
		}
		if err := validate.Struct(params); err != nil {
			return fmt.Errorf("inquiry: invalid create params: %w", err)
		}
		if !domain.ValidInquirySource(params.Source) {
			return fmt.Errorf("inquiry: invalid source %q", params.Source)
		}
		if _, ok := tx.Property(params.PropertyID); !ok {
			return fmt.Errorf("inquiry: property %s: %w", params.PropertyID, domain.ErrNotFound)
		}
		if !isValidActiveAgent(tx, params.AssignedAgent) {
			return fmt.Errorf("inquiry: assigned agent %s is not an active agent: %w", params.AssignedAgent, domain.ErrInvalidReference)
		}
		now := s.now()
		created = domain.Inquiry{
			ID:            domain.InquiryID(params.PropertyID, params.CustomerName, now),
			PropertyID:    params.PropertyID,
			CustomerName:  params.CustomerName,
			ContactInfo:   params.ContactInfo,
			Source:        params.Source,
			Status:        domain.InquiryNew,
			AssignedAgent: params.AssignedAgent,
			Notes:         params.Notes,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		tx.PutInquiry(created)
		return nil
	})
	if err != nil {
		metrics.Rejection("add_inquiry", err)
		return domain.Inquiry{}, err
	}
	metrics.Operation("add_inquiry")
	logging.Logger.WithFields(map[string]interface{}{
		"inquiry": created.ID,
		"agent":   string(created.AssignedAgent),
	}).Info("inquiry recorded")
	return created, nil
}

// UpdateParams carries the mutable fields of an inquiry. The inquiry id and
// the property it targets are immutable.
type UpdateParams struct {
	CustomerName  string `validate:"required"`
	ContactInfo   string `validate:"required"`
	Source        domain.InquirySource
	Status        domain.InquiryStatus
	AssignedAgent domain.Principal `validate:"required"`
	Notes         string
}

// Update replaces the mutable fields of an inquiry. The caller must own the
// inquiry or hold a manage-all role, and reassignment follows the same rule
// as creation: self only, unless the role can assign to others.
func (s *Service) Update(ctx context.Context, caller domain.Principal, id string, params UpdateParams) (domain.Inquiry, error) {
	var updated domain.Inquiry
	err := s.store.Update(func(tx *store.Tx) error {
		actor, err := s.resolver.Resolve(tx, caller)
		if err != nil {
			return err
		}
		if !actor.CanManageInquiries() {
			return fmt.Errorf("inquiry: update requires an inquiry-managing role: %w", domain.ErrUnauthorized)
		}
		if params.AssignedAgent != actor.Principal && !actor.CanAssignToOthers() {
			return fmt.Errorf("inquiry: role may only self-assign: %w", domain.ErrUnauthorized)
		}
		if err := validate.Struct(params); err != nil {
			return fmt.Errorf("inquiry: invalid update params: %w", err)
		}
		if !domain.ValidInquirySource(params.Source) {
			return fmt.Errorf("inquiry: invalid source %q", params.Source)
		}
		if !domain.ValidInquiryStatus(params.Status) {
			return fmt.Errorf("inquiry: invalid status %q", params.Status)
		}
		rec, ok := tx.Inquiry(id)
		if !ok {
			return fmt.Errorf("inquiry: %s: %w", id, domain.ErrNotFound)
		}
		if rec.AssignedAgent != actor.Principal && !actor.CanManageAllInquiries() {
			return fmt.Errorf("inquiry: %s is assigned to another agent: %w", id, domain.ErrUnauthorized)
		}
		if !isValidActiveAgent(tx, params.AssignedAgent) {
			return fmt.Errorf("inquiry: assigned agent %s is not an active agent: %w", params.AssignedAgent, domain.ErrInvalidReference)
		}
		rec.CustomerName = params.CustomerName
		rec.ContactInfo = params.ContactInfo
		rec.Source = params.Source
		rec.Status = params.Status
		rec.AssignedAgent = params.AssignedAgent
		rec.Notes = params.Notes
		rec.UpdatedAt = s.now()
		tx.PutInquiry(rec)
		updated = rec
		return nil
	})
	if err != nil {
		metrics.Rejection("update_inquiry", err)
		return domain.Inquiry{}, err
	}
	metrics.Operation("update_inquiry")
	logging.Logger.WithField("inquiry", id).Info("inquiry updated")
	return updated, nil
}

// Get returns one inquiry. Callers without a manage-all role may only read
// inquiries assigned to themselves.
func (s *Service) Get(ctx context.Context, caller domain.Principal, id string) (domain.Inquiry, error) {
	var out domain.Inquiry
	err := s.store.View(func(tx *store.Tx) error {
		actor, err := s.resolver.Resolve(tx, caller)
		if err != nil {
			return err
		}
		if !actor.CanManageInquiries() {
			return fmt.Errorf("inquiry: get requires an inquiry-managing role: %w", domain.ErrUnauthorized)
		}
		rec, ok := tx.Inquiry(id)
		if !ok {
			return fmt.Errorf("inquiry: %s: %w", id, domain.ErrNotFound)
		}
		if rec.AssignedAgent != actor.Principal && !actor.CanManageAllInquiries() {
			return fmt.Errorf("inquiry: %s is assigned to another agent: %w", id, domain.ErrUnauthorized)
		}
		out = rec
		return nil
	})
	if err != nil {
		metrics.Rejection("get_inquiry", err)
		return domain.Inquiry{}, err
	}
	metrics.Operation("get_inquiry")
	return out, nil
}

func (s *Service) listScoped(caller domain.Principal, op string, keep func(domain.Inquiry) bool) ([]domain.Inquiry, error) {
	var out []domain.Inquiry
	err := s.store.View(func(tx *store.Tx) error {
		actor, err := s.resolver.Resolve(tx, caller)
		if err != nil {
			return err
		}
		if !actor.CanManageInquiries() {
			return fmt.Errorf("inquiry: %s requires an inquiry-managing role: %w", op, domain.ErrUnauthorized)
		}
		manageAll := actor.CanManageAllInquiries()
		for _, q := range tx.Inquiries() {
			if !manageAll && q.AssignedAgent != actor.Principal {
				continue
			}
			if keep != nil && !keep(q) {
				continue
			}
			out = append(out, q)
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

// List returns the caller-visible inquiries in ascending createdAt order:
// all of them for manage-all roles, otherwise only the caller's assignments.
func (s *Service) List(ctx context.Context, caller domain.Principal) ([]domain.Inquiry, error) {
	return s.listScoped(caller, "get_all_inquiries", nil)
}

// ByAgent returns the caller-visible inquiries assigned to the given agent.
// For callers without a manage-all role this is non-empty only when the
// agent is the caller itself.
func (s *Service) ByAgent(ctx context.Context, caller domain.Principal, agentID domain.Principal) ([]domain.Inquiry, error) {
	return s.listScoped(caller, "get_inquiries_by_agent", func(q domain.Inquiry) bool {
		return q.AssignedAgent == agentID
	})
}

// ByProperty returns the caller-visible inquiries about the given property.
func (s *Service) ByProperty(ctx context.Context, caller domain.Principal, propertyID string) ([]domain.Inquiry, error) {
	return s.listScoped(caller, "get_inquiries_by_property", func(q domain.Inquiry) bool {
		return q.PropertyID == propertyID
	})
}

// ByStatus returns the caller-visible inquiries in the given lifecycle state.
func (s *Service) ByStatus(ctx context.Context, caller domain.Principal, status domain.InquiryStatus) ([]domain.Inquiry, error) {
	return s.listScoped(caller, "get_inquiries_by_status", func(q domain.Inquiry) bool {
		return q.Status == status
	})
}
