package memory

import (
	"context"
	"sync"

	"fintrack/internal/core"
)

// Store keeps entries and budgets in process memory.
type Store struct {
	mu      sync.Mutex
	entries []core.Entry
	budgets core.Budgets
}

func New() *Store {
	return &Store{}
}

// NewWith seeds the store, e.g. for tests.
func NewWith(entries []core.Entry, budgets core.Budgets) *Store {
	s := &Store{budgets: budgets.Clone()}
	s.entries = append(s.entries, entries...)
	return s
}

func (s *Store) LoadEntries(_ context.Context) ([]core.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Entry(nil), s.entries...), nil
}

func (s *Store) SaveEntries(_ context.Context, entries []core.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append([]core.Entry(nil), entries...)
	return nil
}

func (s *Store) LoadBudgets(_ context.Context) (core.Budgets, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.budgets.Clone(), nil
}

func (s *Store) SaveBudgets(_ context.Context, budgets core.Budgets) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.budgets = budgets.Clone()
	return nil
}
