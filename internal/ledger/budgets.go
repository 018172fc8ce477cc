package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"fintrack/internal/core"
)

// BudgetSaver persists the budget registry.
type BudgetSaver interface {
	SaveBudgets(ctx context.Context, budgets core.Budgets) error
}

// Spending supplies the expense totals a budget check compares against.
type Spending interface {
	TotalExpense() core.Money
	TotalExpenseIn(category string) core.Money
}

// Report is the outcome of a budget check.
type Report struct {
	Name      string
	Budget    core.Money
	Spent     core.Money
	Remaining core.Money
}

// Budgets is the registry of the overall budget and per-category budgets.
// Category names are matched case-insensitively and keep insertion order.
type Budgets struct {
	state    core.Budgets
	saver    BudgetSaver
	spending Spending
}

func NewBudgets(saver BudgetSaver, spending Spending, initial core.Budgets) *Budgets {
	return &Budgets{state: initial.Clone(), saver: saver, spending: spending}
}

// Snapshot returns a copy of the current state.
func (b *Budgets) Snapshot() core.Budgets {
	return b.state.Clone()
}

// SetOverall stores the overall budget. A negative amount is not stored and
// reported as false with no error.
func (b *Budgets) SetOverall(ctx context.Context, amount core.Money) (bool, error) {
	if amount.IsNegative() {
		return false, nil
	}
	v := amount
	b.state.Overall = &v
	slog.DebugContext(ctx, "overall budget set", "amount_cents", amount.Cents)
	return true, b.persist(ctx)
}

// SetCategoryRaw parses rawAmount and stores it for category.
func (b *Budgets) SetCategoryRaw(ctx context.Context, category, rawAmount string) (core.Budget, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return core.Budget{}, core.ErrMissingCategory
	}
	rawAmount = strings.TrimSpace(rawAmount)
	if rawAmount == "" {
		return core.Budget{}, core.ErrMissingBudgetAmount
	}
	amount, err := core.ParseAmount(rawAmount)
	if err != nil {
		return core.Budget{}, err
	}
	return b.SetCategory(ctx, category, amount)
}

// SetCategory stores or overwrites a category budget. Overwriting keeps the
// original position and takes the new spelling of the name.
func (b *Budgets) SetCategory(ctx context.Context, category string, amount core.Money) (core.Budget, error) {
	category = strings.TrimSpace(category)
	switch {
	case category == "":
		return core.Budget{}, core.ErrMissingCategory
	case core.IsOverall(category):
		return core.Budget{}, core.ErrReservedCategory
	case amount.IsNegative():
		return core.Budget{}, core.ErrNegativeBudget
	}

	budget := core.Budget{Category: category, Amount: amount}
	if i := b.indexOf(category); i >= 0 {
		b.state.Categories[i] = budget
	} else {
		b.state.Categories = append(b.state.Categories, budget)
	}
	slog.DebugContext(ctx, "category budget set", "category", category, "amount_cents", amount.Cents)
	return budget, b.persist(ctx)
}

// Check compares a budget with what has been spent against it. target is
// either "Overall" or a category name, both case-insensitive.
func (b *Budgets) Check(target string) (Report, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return Report{}, core.ErrMissingBudgetTarget
	}
	if core.IsOverall(target) {
		if b.state.Overall == nil {
			return Report{}, core.ErrNoOverallBudget
		}
		return newReport(core.OverallBudgetName, *b.state.Overall, b.spending.TotalExpense()), nil
	}
	i := b.indexOf(target)
	if i < 0 {
		return Report{}, core.ErrNoCategoryBudget
	}
	budget := b.state.Categories[i]
	return newReport(budget.Category, budget.Amount, b.spending.TotalExpenseIn(budget.Category)), nil
}

func newReport(name string, budget, spent core.Money) Report {
	return Report{Name: name, Budget: budget, Spent: spent, Remaining: budget.Sub(spent)}
}

// List returns every budget with the overall budget first under the name
// "Overall".
func (b *Budgets) List() ([]core.Budget, error) {
	if b.state.IsEmpty() {
		return nil, core.ErrNoBudgets
	}
	out := make([]core.Budget, 0, len(b.state.Categories)+1)
	if b.state.Overall != nil {
		out = append(out, core.Budget{Category: core.OverallBudgetName, Amount: *b.state.Overall})
	}
	return append(out, b.state.Categories...), nil
}

func (b *Budgets) indexOf(category string) int {
	for i, c := range b.state.Categories {
		if strings.EqualFold(c.Category, category) {
			return i
		}
	}
	return -1
}

func (b *Budgets) persist(ctx context.Context) error {
	if b.saver == nil {
		return nil
	}
	if err := b.saver.SaveBudgets(ctx, b.Snapshot()); err != nil {
		slog.ErrorContext(ctx, "failed to save budgets", "error", err)
		return fmt.Errorf("%w: %w", core.ErrSaveFailed, err)
	}
	return nil
}
