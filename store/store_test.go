package store

import (
	"errors"
	"testing"
	"time"

	"estateflow/domain"
)

func mustUpdate(t *testing.T, st *Store, fn func(tx *Tx) error) {
	t.Helper()
	if err := st.Update(fn); err != nil {
		t.Fatalf("update: %v", err)
	}
}

func propertyAt(id string, createdAt time.Time) domain.Property {
	return domain.Property{
		ID:        id,
		Title:     "t-" + id,
		Status:    domain.StatusAvailable,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

func TestPropertiesOrderedByCreatedAtThenInsertion(t *testing.T) {
	st := New()
	base := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

	// Insert out of createdAt order, with a createdAt tie between b and c.
	mustUpdate(t, st, func(tx *Tx) error {
		tx.PutProperty(propertyAt("late", base.Add(time.Hour)))
		return nil
	})
	mustUpdate(t, st, func(tx *Tx) error {
		tx.PutProperty(propertyAt("tie-first", base))
		return nil
	})
	mustUpdate(t, st, func(tx *Tx) error {
		tx.PutProperty(propertyAt("tie-second", base))
		return nil
	})

	var got []string
	if err := st.View(func(tx *Tx) error {
		for _, p := range tx.Properties() {
			got = append(got, p.ID)
		}
		return nil
	}); err != nil {
		t.Fatalf("view: %v", err)
	}

	want := []string{"tie-first", "tie-second", "late"}
	if len(got) != len(want) {
		t.Fatalf("expected %d properties, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d: expected %q got %q (full order %v)", i, want[i], got[i], got)
		}
	}
}

func TestReplaceKeepsInsertionRank(t *testing.T) {
	st := New()
	base := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

	mustUpdate(t, st, func(tx *Tx) error {
		tx.PutProperty(propertyAt("a", base))
		tx.PutProperty(propertyAt("b", base))
		return nil
	})
	// Replacing "a" must not move it behind "b".
	mustUpdate(t, st, func(tx *Tx) error {
		p, ok := tx.Property("a")
		if !ok {
			t.Fatal("property a missing")
		}
		p.Title = "updated"
		tx.PutProperty(p)
		return nil
	})

	_ = st.View(func(tx *Tx) error {
		props := tx.Properties()
		if props[0].ID != "a" || props[0].Title != "updated" {
			t.Fatalf("expected updated a first, got %+v", props[0])
		}
		return nil
	})
}

func TestReadsReturnDetachedCopies(t *testing.T) {
	st := New()
	now := time.Now()
	mustUpdate(t, st, func(tx *Tx) error {
		p := propertyAt("p1", now)
		p.Images = []domain.BlobRef{"blob-1"}
		tx.PutProperty(p)
		return nil
	})

	var first domain.Property
	_ = st.View(func(tx *Tx) error {
		first, _ = tx.Property("p1")
		return nil
	})
	first.Images[0] = "mutated"
	first.Title = "mutated"

	_ = st.View(func(tx *Tx) error {
		second, _ := tx.Property("p1")
		if second.Images[0] != "blob-1" {
			t.Fatalf("stored image reference mutated through a read copy: %q", second.Images[0])
		}
		if second.Title != "t-p1" {
			t.Fatalf("stored title mutated through a read copy: %q", second.Title)
		}
		return nil
	})
}

func TestFailedUpdateLeavesStateUntouched(t *testing.T) {
	st := New()
	now := time.Now()
	mustUpdate(t, st, func(tx *Tx) error {
		tx.PutProperty(propertyAt("keep", now))
		return nil
	})

	boom := errors.New("boom")
	err := st.Update(func(tx *Tx) error {
		tx.PutProperty(propertyAt("discard", now))
		tx.Reset()
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	_ = st.View(func(tx *Tx) error {
		if _, ok := tx.Property("keep"); !ok {
			t.Fatal("existing property lost after failed update")
		}
		if _, ok := tx.Property("discard"); ok {
			t.Fatal("partial mutation visible after failed update")
		}
		return nil
	})
}

func TestResetClearsAllCollections(t *testing.T) {
	st := New()
	now := time.Now()
	mustUpdate(t, st, func(tx *Tx) error {
		tx.PutAgent(domain.Agent{ID: "agent-1", Name: "A", Role: domain.RoleAgent, Active: true, CreatedAt: now, UpdatedAt: now})
		tx.PutProperty(propertyAt("p1", now))
		tx.PutInquiry(domain.Inquiry{ID: "q1", PropertyID: "p1", CreatedAt: now, UpdatedAt: now})
		tx.PutProfile("agent-1", domain.UserProfile{Name: "A"})
		return nil
	})

	mustUpdate(t, st, func(tx *Tx) error {
		tx.Reset()
		return nil
	})

	_ = st.View(func(tx *Tx) error {
		if n := len(tx.Agents()); n != 0 {
			t.Fatalf("expected no agents after reset, got %d", n)
		}
		if n := len(tx.Properties()); n != 0 {
			t.Fatalf("expected no properties after reset, got %d", n)
		}
		if n := len(tx.Inquiries()); n != 0 {
			t.Fatalf("expected no inquiries after reset, got %d", n)
		}
		if _, ok := tx.Profile("agent-1"); ok {
			t.Fatal("expected no profiles after reset")
		}
		return nil
	})
}
