package storage

import (
	"context"

	"fintrack/internal/core"
)

// Store is the persistence port shared by every backend. Saves always write a
// full snapshot; loading from an empty backend yields no entries and no budgets.
type Store interface {
	LoadEntries(ctx context.Context) ([]core.Entry, error)
	SaveEntries(ctx context.Context, entries []core.Entry) error
	LoadBudgets(ctx context.Context) (core.Budgets, error)
	SaveBudgets(ctx context.Context, budgets core.Budgets) error
}
