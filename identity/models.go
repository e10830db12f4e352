package identity

import (
	"time"

	"estateflow/domain"
)

// Account is an authenticatable identity. The principal it carries is the
// opaque value the core consumes; office roles live on the agent record, not
// here.
type Account struct {
	Principal    domain.Principal
	Email        string
	FullName     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RegisterRequest contains account registration data supplied by callers.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

// LoginRequest contains account login credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
