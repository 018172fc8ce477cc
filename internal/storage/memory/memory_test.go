package memory

import (
	"context"
	"testing"

	"fintrack/internal/core"
)

func TestStoreCopiesOnSaveAndLoad(t *testing.T) {
	ctx := context.Background()
	s := New()

	in := []core.Entry{core.NewExpense("Lunch", core.Money{Cents: 100}, "Food", core.Date{})}
	if err := s.SaveEntries(ctx, in); err != nil {
		t.Fatalf("save: %v", err)
	}
	in[0].Description = "changed"

	got, _ := s.LoadEntries(ctx)
	if len(got) != 1 || got[0].Description != "Lunch" {
		t.Fatalf("store must keep its own copy, got %v", got)
	}
	got[0].Description = "changed again"
	again, _ := s.LoadEntries(ctx)
	if again[0].Description != "Lunch" {
		t.Fatalf("loaded slice must be a copy")
	}
}

func TestStoreBudgets(t *testing.T) {
	ctx := context.Background()
	overall := core.Money{Cents: 500}
	s := NewWith(nil, core.Budgets{Overall: &overall})

	got, _ := s.LoadBudgets(ctx)
	got.Overall.Cents = 1
	again, _ := s.LoadBudgets(ctx)
	if again.Overall.Cents != 500 {
		t.Fatalf("budgets must be deep copied, got %d", again.Overall.Cents)
	}

	if err := s.SaveBudgets(ctx, core.Budgets{}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if got, _ := s.LoadBudgets(ctx); !got.IsEmpty() {
		t.Fatalf("expected empty budgets, got %+v", got)
	}
}
