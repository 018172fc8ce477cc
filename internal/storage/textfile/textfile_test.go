package textfile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fintrack/internal/core"
)

func TestMissingFilesLoadEmpty(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "absent"))
	ctx := context.Background()

	entries, err := s.LoadEntries(ctx)
	if err != nil || len(entries) != 0 {
		t.Fatalf("expected empty ledger, got %v (err=%v)", entries, err)
	}
	budgets, err := s.LoadBudgets(ctx)
	if err != nil || !budgets.IsEmpty() {
		t.Fatalf("expected empty budgets, got %+v (err=%v)", budgets, err)
	}
}

func TestEntriesFileFormat(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)
	ctx := context.Background()

	in := []core.Entry{
		core.NewExpense("Lunch", core.Money{Cents: 1250}, "Food", core.NewDate(2024, 3, 1)),
		core.NewIncome("Salary", core.Money{Cents: 300000}, core.Date{}),
	}
	if err := s.SaveEntries(ctx, in); err != nil {
		t.Fatalf("save: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, EntriesFile))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	want := "Expense: Lunch $12.50 {Food} [2024-03-01]\nIncome: Salary $3000.00 [no date]\n"
	if string(data) != want {
		t.Fatalf("expected %q, got %q", want, string(data))
	}

	got, err := s.LoadEntries(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 2 || got[0].String() != in[0].String() || got[1].String() != in[1].String() {
		t.Fatalf("unexpected entries %v", got)
	}

	leftovers, _ := filepath.Glob(filepath.Join(dir, "*.tmp"))
	if len(leftovers) != 0 {
		t.Fatalf("temp files left behind: %v", leftovers)
	}
}

func TestCorruptLineFailsLoad(t *testing.T) {
	dir := t.TempDir()
	content := "Expense: Lunch $12.50 {Food} [no date]\n\nnot an entry\n"
	if err := os.WriteFile(filepath.Join(dir, EntriesFile), []byte(content), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := New(dir).LoadEntries(context.Background())
	if !errors.Is(err, core.ErrCorruptLine) {
		t.Fatalf("expected ErrCorruptLine, got %v", err)
	}
	if !strings.Contains(err.Error(), "line 3") {
		t.Fatalf("expected line number in %q", err)
	}
}

func TestBudgetsYAML(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)
	ctx := context.Background()

	overall := core.Money{Cents: 100000}
	in := core.Budgets{
		Overall: &overall,
		Categories: []core.Budget{
			{Category: "Food", Amount: core.Money{Cents: 15050}},
			{Category: "Eating Out", Amount: core.Money{Cents: 0}},
		},
	}
	if err := s.SaveBudgets(ctx, in); err != nil {
		t.Fatalf("save: %v", err)
	}

	data, _ := os.ReadFile(filepath.Join(dir, BudgetsFile))
	if !strings.Contains(string(data), `overall: "1000.00"`) {
		t.Fatalf("expected decimal string in yaml, got:\n%s", data)
	}

	got, err := s.LoadBudgets(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Overall == nil || got.Overall.Cents != 100000 {
		t.Fatalf("unexpected overall %+v", got.Overall)
	}
	if len(got.Categories) != 2 || got.Categories[0].Amount.Cents != 15050 || got.Categories[1].Category != "Eating Out" {
		t.Fatalf("unexpected categories %+v", got.Categories)
	}
}
