package domain

import "errors"

// The three error kinds every operation can surface. Authorization is always
// checked before existence, and existence before reference validity; a call
// reports the first violated condition only and performs no partial mutation.
var (
	// ErrUnauthorized signals a failed base-access or role-capability check.
	ErrUnauthorized = errors.New("domain: unauthorized")
	// ErrNotFound signals a referenced entity id that is absent.
	ErrNotFound = errors.New("domain: not found")
	// ErrInvalidReference signals a reference to an entity that exists in the
	// wrong state, such as assigning work to a deactivated agent.
	ErrInvalidReference = errors.New("domain: invalid reference")
)
