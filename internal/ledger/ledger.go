// Package ledger holds the ordered list of entries and the budget registry.
// Every successful mutation is written through to storage before returning.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"fintrack/internal/core"
)

// EntrySaver persists the full entry list.
type EntrySaver interface {
	SaveEntries(ctx context.Context, entries []core.Entry) error
}

// Match is a search hit with its 1-based position in the ledger.
type Match struct {
	Position int
	Entry    core.Entry
}

type Ledger struct {
	entries []core.Entry
	saver   EntrySaver
}

// New creates a ledger seeded with previously loaded entries.
func New(saver EntrySaver, entries []core.Entry) *Ledger {
	l := &Ledger{saver: saver}
	l.entries = append(l.entries, entries...)
	return l
}

func (l *Ledger) Len() int { return len(l.entries) }

// Entries returns a copy of the entries in display order.
func (l *Ledger) Entries() []core.Entry {
	out := make([]core.Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// List returns the entries, failing when there are none.
func (l *Ledger) List() ([]core.Entry, error) {
	if len(l.entries) == 0 {
		return nil, core.ErrEmptyLedger
	}
	return l.Entries(), nil
}

// At returns the entry at a zero-based index.
func (l *Ledger) At(index int) (core.Entry, error) {
	if index < 0 || index >= len(l.entries) {
		return core.Entry{}, core.ErrEntryOutOfRange
	}
	return l.entries[index], nil
}

// Append adds an entry at the end. If saving fails the entry stays in memory
// and the wrapped ErrSaveFailed is returned.
func (l *Ledger) Append(ctx context.Context, e core.Entry) error {
	if err := e.Validate(); err != nil {
		return err
	}
	l.entries = append(l.entries, e)
	slog.DebugContext(ctx, "entry appended", "kind", e.Kind, "position", len(l.entries))
	return l.persist(ctx)
}

// Delete removes and returns the entry at a zero-based index.
func (l *Ledger) Delete(ctx context.Context, index int) (core.Entry, error) {
	removed, err := l.At(index)
	if err != nil {
		return core.Entry{}, err
	}
	l.entries = append(l.entries[:index], l.entries[index+1:]...)
	slog.DebugContext(ctx, "entry deleted", "position", index+1)
	return removed, l.persist(ctx)
}

// Edit replaces the entry at a zero-based index with a patched copy and
// returns the new entry.
func (l *Ledger) Edit(ctx context.Context, index int, patch core.EntryPatch) (core.Entry, error) {
	current, err := l.At(index)
	if err != nil {
		return core.Entry{}, err
	}
	updated, err := current.Apply(patch)
	if err != nil {
		return core.Entry{}, err
	}
	if err := updated.Validate(); err != nil {
		return core.Entry{}, err
	}
	l.entries[index] = updated
	slog.DebugContext(ctx, "entry edited", "position", index+1)
	return updated, l.persist(ctx)
}

// Clear removes every entry. It reports false when there was nothing to clear.
func (l *Ledger) Clear(ctx context.Context) (bool, error) {
	if len(l.entries) == 0 {
		return false, nil
	}
	l.entries = nil
	slog.DebugContext(ctx, "ledger cleared")
	return true, l.persist(ctx)
}

// Find returns entries whose description, category or rendered date contain
// keyword, ignoring case.
func (l *Ledger) Find(keyword string) ([]Match, error) {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	if keyword == "" {
		return nil, core.ErrMissingKeyword
	}
	var out []Match
	for i, e := range l.entries {
		if matches(e, keyword) {
			out = append(out, Match{Position: i + 1, Entry: e})
		}
	}
	if len(out) == 0 {
		return nil, core.ErrNoMatches
	}
	return out, nil
}

func matches(e core.Entry, keyword string) bool {
	for _, field := range []string{e.Description, e.Category, e.Date.String()} {
		if strings.Contains(strings.ToLower(field), keyword) {
			return true
		}
	}
	return false
}

// TotalExpense sums every expense amount. Income is ignored.
func (l *Ledger) TotalExpense() core.Money {
	var total core.Money
	for _, e := range l.entries {
		if e.IsExpense() {
			total = total.Add(e.Amount)
		}
	}
	return total
}

// TotalExpenseIn sums expenses whose category equals category, ignoring case.
func (l *Ledger) TotalExpenseIn(category string) core.Money {
	category = strings.TrimSpace(category)
	var total core.Money
	for _, e := range l.entries {
		if e.IsExpense() && strings.EqualFold(e.Category, category) {
			total = total.Add(e.Amount)
		}
	}
	return total
}

// Categories lists distinct expense categories in order of first appearance.
func (l *Ledger) Categories() ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, e := range l.entries {
		if !e.IsExpense() {
			continue
		}
		key := strings.ToLower(e.Category)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, e.Category)
	}
	if len(out) == 0 {
		return nil, core.ErrNoCategories
	}
	return out, nil
}

func (l *Ledger) persist(ctx context.Context) error {
	if l.saver == nil {
		return nil
	}
	if err := l.saver.SaveEntries(ctx, l.Entries()); err != nil {
		slog.ErrorContext(ctx, "failed to save entries", "error", err, "count", len(l.entries))
		return fmt.Errorf("%w: %w", core.ErrSaveFailed, err)
	}
	return nil
}
