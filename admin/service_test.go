package admin

import (
	"context"
	"errors"
	"testing"
	"time"

	"estateflow/domain"
	"estateflow/policy"
	"estateflow/store"
)

func seededStore(t *testing.T) *store.Store {
	t.Helper()
	st := store.New()
	now := time.Now()
	if err := st.Update(func(tx *store.Tx) error {
		tx.PutAgent(domain.Agent{ID: "alice", Name: "alice", ContactInfo: "x", Role: domain.RoleAgent, Active: true, CreatedAt: now, UpdatedAt: now})
		tx.PutProperty(domain.Property{ID: "p1", Title: "p", Status: domain.StatusAvailable, ListedBy: "alice", CreatedAt: now, UpdatedAt: now})
		tx.PutInquiry(domain.Inquiry{ID: "q1", PropertyID: "p1", AssignedAgent: "alice", CreatedAt: now, UpdatedAt: now})
		tx.PutProfile("alice", domain.UserProfile{Name: "Alice"})
		return nil
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return st
}

func counts(t *testing.T, st *store.Store) (agents, properties, inquiries int, profileOK bool) {
	t.Helper()
	if err := st.View(func(tx *store.Tx) error {
		agents = len(tx.Agents())
		properties = len(tx.Properties())
		inquiries = len(tx.Inquiries())
		_, profileOK = tx.Profile("alice")
		return nil
	}); err != nil {
		t.Fatalf("view: %v", err)
	}
	return
}

func TestResetRequiresAdmin(t *testing.T) {
	st := seededStore(t)
	svc := NewService(st, policy.NewResolver([]domain.Principal{"root"}))

	if err := svc.ResetToFreshDraft(context.Background(), "alice"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	agents, properties, inquiries, profileOK := counts(t, st)
	if agents != 1 || properties != 1 || inquiries != 1 || !profileOK {
		t.Fatalf("rejected reset must leave collections unchanged: %d/%d/%d/%t", agents, properties, inquiries, profileOK)
	}
}

func TestResetAllowedForAdminRoleAgentRecord(t *testing.T) {
	st := seededStore(t)
	now := time.Now()
	if err := st.Update(func(tx *store.Tx) error {
		tx.PutAgent(domain.Agent{ID: "boss", Name: "boss", ContactInfo: "x", Role: domain.RoleAdmin, Active: true, CreatedAt: now, UpdatedAt: now})
		return nil
	}); err != nil {
		t.Fatalf("seed boss: %v", err)
	}
	svc := NewService(st, policy.NewResolver(nil))

	if err := svc.ResetToFreshDraft(context.Background(), "boss"); err != nil {
		t.Fatalf("record-role admin reset: %v", err)
	}

	agents, properties, inquiries, profileOK := counts(t, st)
	if agents != 0 || properties != 0 || inquiries != 0 || profileOK {
		t.Fatalf("expected empty collections, got %d/%d/%d/%t", agents, properties, inquiries, profileOK)
	}
}

func TestResetClearsEverything(t *testing.T) {
	st := seededStore(t)
	svc := NewService(st, policy.NewResolver([]domain.Principal{"root"}))

	if err := svc.ResetToFreshDraft(context.Background(), "root"); err != nil {
		t.Fatalf("reset: %v", err)
	}

	agents, properties, inquiries, profileOK := counts(t, st)
	if agents != 0 || properties != 0 || inquiries != 0 || profileOK {
		t.Fatalf("expected empty collections, got %d/%d/%d/%t", agents, properties, inquiries, profileOK)
	}
}
