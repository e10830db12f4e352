// Package store owns the four office collections (agents, properties,
// inquiries, profiles) in memory. Every operation runs as a serialized,
// run-to-completion transaction: a mutation works on a cloned state that is
// swapped in only when the whole callback succeeds, so no caller ever
// observes a partially applied change.
package store

import (
	"sort"
	"sync"

	"estateflow/domain"
)

type record struct {
	seq uint64
}

type agentRecord struct {
	record
	agent domain.Agent
}

type propertyRecord struct {
	record
	property domain.Property
}

type inquiryRecord struct {
	record
	inquiry domain.Inquiry
}

type profileRecord struct {
	record
	profile domain.UserProfile
}

type state struct {
	seq        uint64
	agents     map[domain.Principal]agentRecord
	properties map[string]propertyRecord
	inquiries  map[string]inquiryRecord
	profiles   map[domain.Principal]profileRecord
}

func newState() *state {
	return &state{
		agents:     make(map[domain.Principal]agentRecord),
		properties: make(map[string]propertyRecord),
		inquiries:  make(map[string]inquiryRecord),
		profiles:   make(map[domain.Principal]profileRecord),
	}
}

func (s *state) clone() *state {
	out := &state{
		seq:        s.seq,
		agents:     make(map[domain.Principal]agentRecord, len(s.agents)),
		properties: make(map[string]propertyRecord, len(s.properties)),
		inquiries:  make(map[string]inquiryRecord, len(s.inquiries)),
		profiles:   make(map[domain.Principal]profileRecord, len(s.profiles)),
	}
	for k, v := range s.agents {
		out.agents[k] = v
	}
	for k, v := range s.properties {
		v.property = v.property.Clone()
		out.properties[k] = v
	}
	for k, v := range s.inquiries {
		out.inquiries[k] = v
	}
	for k, v := range s.profiles {
		out.profiles[k] = v
	}
	return out
}

// Store is the single owner of all mutable office state.
type Store struct {
	mu    sync.RWMutex
	state *state
}

// New returns an empty store.
func New() *Store {
	return &Store{state: newState()}
}

// View runs fn against a read-only transaction. Reads return copies; fn must
// not retain the transaction beyond its return.
func (s *Store) View(fn func(tx *Tx) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(&Tx{state: s.state})
}

// Update runs fn against a cloned state and commits the clone only if fn
// returns nil. A failed callback leaves the store untouched.
func (s *Store) Update(fn func(tx *Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.state.clone()
	if err := fn(&Tx{state: next}); err != nil {
		return err
	}
	s.state = next
	return nil
}

// Tx exposes typed access to the collections for the duration of one
// transaction.
type Tx struct {
	state *state
}

// PutAgent inserts or replaces the agent keyed by its principal.
func (tx *Tx) PutAgent(a domain.Agent) {
	rec, ok := tx.state.agents[a.ID]
	if !ok {
		tx.state.seq++
		rec.seq = tx.state.seq
	}
	rec.agent = a
	tx.state.agents[a.ID] = rec
}

// Agent returns the agent record for id, if present.
func (tx *Tx) Agent(id domain.Principal) (domain.Agent, bool) {
	rec, ok := tx.state.agents[id]
	return rec.agent, ok
}

// Agents returns every agent in ascending createdAt order, ties broken by
// insertion order.
func (tx *Tx) Agents() []domain.Agent {
	recs := make([]agentRecord, 0, len(tx.state.agents))
	for _, rec := range tx.state.agents {
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool {
		if !recs[i].agent.CreatedAt.Equal(recs[j].agent.CreatedAt) {
			return recs[i].agent.CreatedAt.Before(recs[j].agent.CreatedAt)
		}
		return recs[i].seq < recs[j].seq
	})
	out := make([]domain.Agent, len(recs))
	for i, rec := range recs {
		out[i] = rec.agent
	}
	return out
}

// PutProperty inserts or replaces the property keyed by its id. The stored
// copy is detached from the caller's value.
func (tx *Tx) PutProperty(p domain.Property) {
	rec, ok := tx.state.properties[p.ID]
	if !ok {
		tx.state.seq++
		rec.seq = tx.state.seq
	}
	rec.property = p.Clone()
	tx.state.properties[p.ID] = rec
}

// Property returns a copy of the property for id, if present.
func (tx *Tx) Property(id string) (domain.Property, bool) {
	rec, ok := tx.state.properties[id]
	if !ok {
		return domain.Property{}, false
	}
	return rec.property.Clone(), true
}

// Properties returns copies of every property in ascending createdAt order,
// ties broken by insertion order. Filter results downstream preserve this
// order; it is a contract consumers rely on.
func (tx *Tx) Properties() []domain.Property {
	recs := make([]propertyRecord, 0, len(tx.state.properties))
	for _, rec := range tx.state.properties {
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool {
		if !recs[i].property.CreatedAt.Equal(recs[j].property.CreatedAt) {
			return recs[i].property.CreatedAt.Before(recs[j].property.CreatedAt)
		}
		return recs[i].seq < recs[j].seq
	})
	out := make([]domain.Property, len(recs))
	for i, rec := range recs {
		out[i] = rec.property.Clone()
	}
	return out
}

// PutInquiry inserts or replaces the inquiry keyed by its id.
func (tx *Tx) PutInquiry(q domain.Inquiry) {
	rec, ok := tx.state.inquiries[q.ID]
	if !ok {
		tx.state.seq++
		rec.seq = tx.state.seq
	}
	rec.inquiry = q
	tx.state.inquiries[q.ID] = rec
}

// Inquiry returns the inquiry for id, if present.
func (tx *Tx) Inquiry(id string) (domain.Inquiry, bool) {
	rec, ok := tx.state.inquiries[id]
	return rec.inquiry, ok
}

// Inquiries returns every inquiry in ascending createdAt order, ties broken
// by insertion order.
func (tx *Tx) Inquiries() []domain.Inquiry {
	recs := make([]inquiryRecord, 0, len(tx.state.inquiries))
	for _, rec := range tx.state.inquiries {
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool {
		if !recs[i].inquiry.CreatedAt.Equal(recs[j].inquiry.CreatedAt) {
			return recs[i].inquiry.CreatedAt.Before(recs[j].inquiry.CreatedAt)
		}
		return recs[i].seq < recs[j].seq
	})
	out := make([]domain.Inquiry, len(recs))
	for i, rec := range recs {
		out[i] = rec.inquiry
	}
	return out
}

// PutProfile stores the profile for the given identity, overwriting any
// previous value.
func (tx *Tx) PutProfile(id domain.Principal, p domain.UserProfile) {
	rec, ok := tx.state.profiles[id]
	if !ok {
		tx.state.seq++
		rec.seq = tx.state.seq
	}
	rec.profile = p
	tx.state.profiles[id] = rec
}

// Profile returns the profile for id, if present.
func (tx *Tx) Profile(id domain.Principal) (domain.UserProfile, bool) {
	rec, ok := tx.state.profiles[id]
	return rec.profile, ok
}

// Reset replaces all four collections with empty ones. There is no partial
// outcome: the swap happens on commit like any other mutation.
func (tx *Tx) Reset() {
	fresh := newState()
	*tx.state = *fresh
}
