package store

import (
	"errors"
	"sync"

	"snaplink/internal/entities"
)

var (
	// ErrCodeTaken is returned when inserting a record whose short code
	// already exists, regardless of expiry state.
	ErrCodeTaken = errors.New("short code already taken")

	// ErrNotFound is returned when no record matches a short code.
	ErrNotFound = errors.New("short code not found")
)

// Store is the authoritative in-memory table of alias records. It owns the
// uniqueness invariant: a short code, once inserted, is never reusable, and
// records are never deleted. A table-level RWMutex guards membership and
// enumeration; each record carries its own lock so clicks on different
// codes do not contend with each other.
type Store struct {
	mu      sync.RWMutex
	aliases map[string]*entry
	order   []string // short codes in creation order
}

type entry struct {
	mu    sync.Mutex
	alias entities.Alias
}

// New creates an empty store.
func New() *Store {
	return &Store{
		aliases: make(map[string]*entry),
	}
}

// Insert adds a record to the store. The uniqueness check and the add are
// a single atomic step: of two concurrent inserts racing on the same code,
// exactly one wins and the other observes ErrCodeTaken.
func (s *Store) Insert(alias entities.Alias) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.aliases[alias.ShortCode]; exists {
		return ErrCodeTaken
	}

	s.aliases[alias.ShortCode] = &entry{alias: alias}
	s.order = append(s.order, alias.ShortCode)
	return nil
}

// FindByCode returns a snapshot copy of the record for a short code, expired
// records included. Callers may mutate the copy freely.
func (s *Store) FindByCode(code string) (*entities.Alias, error) {
	s.mu.RLock()
	e, exists := s.aliases[code]
	s.mu.RUnlock()

	if !exists {
		return nil, ErrNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	snapshot := e.snapshot()
	return &snapshot, nil
}

// All returns snapshot copies of every record in creation order, including
// expired and never-accessed ones.
func (s *Store) All() []entities.Alias {
	s.mu.RLock()
	entries := make([]*entry, 0, len(s.order))
	for _, code := range s.order {
		entries = append(entries, s.aliases[code])
	}
	s.mu.RUnlock()

	all := make([]entities.Alias, 0, len(entries))
	for _, e := range entries {
		e.mu.Lock()
		all = append(all, e.snapshot())
		e.mu.Unlock()
	}
	return all
}

// RecordClick appends an event to the matched record's history and
// increments its counter as one atomic unit. Concurrent clicks on the same
// code serialize on the record lock, so no update is lost and the counter
// always equals the event count.
func (s *Store) RecordClick(code string, event entities.ClickEvent) error {
	s.mu.RLock()
	e, exists := s.aliases[code]
	s.mu.RUnlock()

	if !exists {
		return ErrNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.alias.ClickEvents = append(e.alias.ClickEvents, event)
	e.alias.ClickCount++
	return nil
}

// Len returns the number of records ever created.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// snapshot copies the record, including its event history, so readers never
// observe a torn record. Callers must hold e.mu.
func (e *entry) snapshot() entities.Alias {
	a := e.alias
	a.ClickEvents = make([]entities.ClickEvent, len(e.alias.ClickEvents))
	copy(a.ClickEvents, e.alias.ClickEvents)
	return a
}
