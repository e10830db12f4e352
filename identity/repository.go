package identity

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"estateflow/domain"
)

var (
	// ErrAccountNotFound signals a lookup for an unknown account.
	ErrAccountNotFound = errors.New("identity: account not found")
	// ErrDuplicateEmail signals a registration with an email already in use.
	ErrDuplicateEmail = errors.New("identity: email already registered")
)

// CreateAccountParams contains the fields needed to persist a new account.
type CreateAccountParams struct {
	Email        string
	FullName     string
	PasswordHash string
}

// Repository abstracts account storage for the service.
type Repository interface {
	CreateAccount(ctx context.Context, params CreateAccountParams) (Account, error)
	GetAccountByEmail(ctx context.Context, email string) (Account, error)
	GetAccountByPrincipal(ctx context.Context, principal domain.Principal) (Account, error)
}

// MemoryRepository keeps accounts in process memory. Identity state is
// collaborator state, not store state: it survives resetToFreshDraft.
type MemoryRepository struct {
	mu          sync.RWMutex
	byEmail     map[string]Account
	byPrincipal map[domain.Principal]Account
}

// NewMemoryRepository returns an empty account registry.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byEmail:     make(map[string]Account),
		byPrincipal: make(map[domain.Principal]Account),
	}
}

// CreateAccount registers a new account under a freshly generated principal.
func (r *MemoryRepository) CreateAccount(ctx context.Context, params CreateAccountParams) (Account, error) {
	email := strings.ToLower(strings.TrimSpace(params.Email))

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[email]; ok {
		return Account{}, ErrDuplicateEmail
	}

	now := time.Now()
	account := Account{
		Principal:    domain.Principal(uuid.NewString()),
		Email:        email,
		FullName:     params.FullName,
		PasswordHash: params.PasswordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.byEmail[email] = account
	r.byPrincipal[account.Principal] = account
	return account, nil
}

// GetAccountByEmail returns the account registered under email.
func (r *MemoryRepository) GetAccountByEmail(ctx context.Context, email string) (Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return Account{}, ErrAccountNotFound
	}
	return account, nil
}

// GetAccountByPrincipal returns the account that owns the given principal.
func (r *MemoryRepository) GetAccountByPrincipal(ctx context.Context, principal domain.Principal) (Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.byPrincipal[principal]
	if !ok {
		return Account{}, ErrAccountNotFound
	}
	return account, nil
}
