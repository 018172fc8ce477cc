package google

import (
	"context"
	"errors"
	"testing"

	"fintrack/internal/core"
)

func TestEntriesToRows(t *testing.T) {
	rows := entriesToRows([]core.Entry{
		core.NewExpense("Lunch", core.Money{Cents: 1250}, "Food", core.NewDate(2024, 3, 1)),
		core.NewIncome("Salary", core.Money{Cents: 300000}, core.Date{}),
	})
	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "Kind" {
		t.Fatalf("expected header first, got %v", rows[0])
	}
	if rows[1][2] != "12.50" || rows[1][4] != "2024-03-01" {
		t.Fatalf("unexpected expense row %v", rows[1])
	}
	if rows[2][3] != "" || rows[2][4] != "" {
		t.Fatalf("income row must have empty category and date, got %v", rows[2])
	}
}

func TestRowsToEntries(t *testing.T) {
	values := [][]interface{}{
		{"Expense", "Lunch", "12.5", "Food", "2024-03-01"},
		{},
		{"Income", "Salary", 3000, "", "no date"},
		{"Expense", "Taxi", "8"}, // short row from the API
	}
	got, err := rowsToEntries(values)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{
		"Expense: Lunch $12.50 {Food} [2024-03-01]",
		"Income: Salary $3000.00 [no date]",
		"Expense: Taxi $8.00 {Uncategorized} [no date]",
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].String() != want[i] {
			t.Fatalf("row %d: expected %q, got %q", i, want[i], got[i])
		}
	}

	bad := [][]interface{}{{"Transfer", "x", "1", "", ""}}
	if _, err := rowsToEntries(bad); !errors.Is(err, core.ErrCorruptLine) {
		t.Fatalf("expected ErrCorruptLine, got %v", err)
	}
}

func TestBudgetRows(t *testing.T) {
	overall := core.Money{Cents: 50000}
	in := core.Budgets{
		Overall:    &overall,
		Categories: []core.Budget{{Category: "Food", Amount: core.Money{Cents: 7500}}},
	}
	rows := budgetsToRows(in)
	got, err := rowsToBudgets(rows[1:])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Overall == nil || got.Overall.Cents != 50000 {
		t.Fatalf("unexpected overall %+v", got.Overall)
	}
	if len(got.Categories) != 1 || got.Categories[0].Category != "Food" || got.Categories[0].Amount.Cents != 7500 {
		t.Fatalf("unexpected categories %+v", got.Categories)
	}

	if _, err := rowsToBudgets([][]interface{}{{"weekly", "Food", "1"}}); err == nil {
		t.Fatalf("expected error for unknown scope")
	}
}

func TestNewWithServiceDefaults(t *testing.T) {
	s := NewWithService(nil, Config{SpreadsheetID: "abc"})
	if s.entriesSheet != DefaultEntriesSheet || s.budgetsSheet != DefaultBudgetsSheet {
		t.Fatalf("unexpected sheet names %q %q", s.entriesSheet, s.budgetsSheet)
	}
	if _, err := s.LoadEntries(context.Background()); err == nil {
		t.Fatalf("expected error without a service")
	}
}
