// Package policy derives what a caller may do. Roles form a flat set with
// distinct capabilities, not a linear hierarchy; the effective role is
// re-derived from the current agent record on every call so role changes and
// deactivation take effect immediately.
package policy

import (
	"fmt"

	"estateflow/domain"
)

// Actor is a resolved caller: its principal, effective role, and whether the
// identity collaborator marks it as an administrator. Administrators need not
// have an agent record.
type Actor struct {
	Principal domain.Principal
	Role      domain.Role
	Admin     bool
}

// CanManageProperties reports whether the actor may create listings and
// update its own. Updating another agent's listing additionally requires
// admin, checked per resource by the property service.
func (a Actor) CanManageProperties() bool {
	switch a.Role {
	case domain.RoleAdmin, domain.RoleAgent, domain.RoleJuniorAgent:
		return true
	case domain.RoleAssistant:
		return false
	default:
		return false
	}
}

// CanViewProperties reports whether the actor may read, search, filter and
// perform location lookups.
func (a Actor) CanViewProperties() bool {
	switch a.Role {
	case domain.RoleAdmin, domain.RoleAgent, domain.RoleJuniorAgent, domain.RoleAssistant:
		return true
	default:
		return false
	}
}

// CanAccessAnalytics reports whether the actor may read aggregate reports.
func (a Actor) CanAccessAnalytics() bool {
	switch a.Role {
	case domain.RoleAdmin, domain.RoleAgent, domain.RoleJuniorAgent:
		return true
	case domain.RoleAssistant:
		return false
	default:
		return false
	}
}

// CanManageInquiries reports whether the actor may create, view and update
// inquiries at all. Assistants are limited to their own assignments, which
// the inquiry service enforces per resource.
func (a Actor) CanManageInquiries() bool {
	switch a.Role {
	case domain.RoleAdmin, domain.RoleAgent, domain.RoleJuniorAgent, domain.RoleAssistant:
		return true
	default:
		return false
	}
}

// CanManageAllInquiries reports whether the actor may see and update
// inquiries assigned to other agents.
func (a Actor) CanManageAllInquiries() bool {
	switch a.Role {
	case domain.RoleAdmin, domain.RoleAgent:
		return true
	case domain.RoleJuniorAgent, domain.RoleAssistant:
		return false
	default:
		return false
	}
}

// CanAssignToOthers reports whether the actor may assign an inquiry to an
// agent other than itself.
func (a Actor) CanAssignToOthers() bool {
	switch a.Role {
	case domain.RoleAdmin, domain.RoleAgent, domain.RoleJuniorAgent:
		return true
	case domain.RoleAssistant:
		return false
	default:
		return false
	}
}

// CanManageAgents reports whether the actor may add, update or deactivate
// agent records.
func (a Actor) CanManageAgents() bool {
	return a.Role == domain.RoleAdmin
}

// CanReset reports whether the actor may clear all application data.
func (a Actor) CanReset() bool {
	return a.Role == domain.RoleAdmin
}

// AgentReader is the slice of the store the resolver needs.
type AgentReader interface {
	Agent(id domain.Principal) (domain.Agent, bool)
}

// Resolver is the identity gate: it maps a caller principal to an actor using
// the administrator allowlist and the live agent collection.
type Resolver struct {
	admins map[domain.Principal]struct{}
}

// NewResolver builds a resolver over the configured administrator principals.
func NewResolver(admins []domain.Principal) *Resolver {
	set := make(map[domain.Principal]struct{}, len(admins))
	for _, p := range admins {
		set[p] = struct{}{}
	}
	return &Resolver{admins: set}
}

// IsAdmin reports whether the identity is a configured administrator,
// independently of any agent record.
func (r *Resolver) IsAdmin(id domain.Principal) bool {
	_, ok := r.admins[id]
	return ok
}

// Resolve derives the caller's effective actor from the current store state.
// A caller that is neither an administrator nor an active agent has no base
// access and is rejected before any other check.
func (r *Resolver) Resolve(agents AgentReader, caller domain.Principal) (Actor, error) {
	if caller == "" {
		return Actor{}, fmt.Errorf("policy: empty caller: %w", domain.ErrUnauthorized)
	}
	if r.IsAdmin(caller) {
		return Actor{Principal: caller, Role: domain.RoleAdmin, Admin: true}, nil
	}
	rec, ok := agents.Agent(caller)
	if !ok || !rec.Active {
		return Actor{}, fmt.Errorf("policy: caller %s has no base access: %w", caller, domain.ErrUnauthorized)
	}
	// An active agent record with the admin role confers the same standing as
	// an allowlisted administrator; resource-scoped checks must not diverge
	// from the capability switches.
	return Actor{Principal: caller, Role: rec.Role, Admin: rec.Role == domain.RoleAdmin}, nil
}
