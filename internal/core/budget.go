package core

import "strings"

// OverallBudgetName is the reserved name of the ledger-wide budget.
const OverallBudgetName = "Overall"

type (
	Budget struct {
		Category string
		Amount   Money
	}

	// Budgets is the persisted budget state. Categories keep insertion order.
	Budgets struct {
		Overall    *Money
		Categories []Budget
	}
)

// IsOverall matches the reserved name case-insensitively.
func IsOverall(name string) bool {
	return strings.EqualFold(strings.TrimSpace(name), OverallBudgetName)
}

func (b Budgets) IsEmpty() bool {
	return b.Overall == nil && len(b.Categories) == 0
}

// Clone returns a deep copy.
func (b Budgets) Clone() Budgets {
	var out Budgets
	if b.Overall != nil {
		v := *b.Overall
		out.Overall = &v
	}
	if len(b.Categories) > 0 {
		out.Categories = make([]Budget, len(b.Categories))
		copy(out.Categories, b.Categories)
	}
	return out
}
