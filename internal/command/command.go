// Package command turns one line of user input into a typed Command.
//
// Parsing is pure: it never touches the ledger, so every error returned here
// is a format error and leaves state untouched.
package command

import "fintrack/internal/core"

// Command is one parsed user request. The concrete types below are the only
// implementations.
type Command interface {
	isCommand()
}

type (
	ListEntries struct{}

	FindEntries struct {
		Keyword string
	}

	// DeleteEntry removes the entry at the zero-based Index.
	DeleteEntry struct {
		Index int
	}

	TotalExpense struct{}

	// SetOverallBudget may carry a negative amount; the registry decides.
	SetOverallBudget struct {
		Amount core.Money
	}

	// SetCategoryBudget keeps the raw amount text so the registry can tell an
	// empty amount from a malformed one.
	SetCategoryBudget struct {
		Category  string
		RawAmount string
	}

	ListBudgets struct{}

	ListCategories struct{}

	AddExpense struct {
		Description string
		Amount      core.Money
		Category    string
		Date        core.Date
	}

	AddIncome struct {
		Description string
		Amount      core.Money
		Date        core.Date
	}

	// EditEntry patches the entry at the zero-based Index.
	EditEntry struct {
		Index int
		Patch core.EntryPatch
	}

	CheckBudget struct {
		Target string
	}

	ClearEntries struct{}

	ShowHelp struct{}

	Exit struct{}
)

func (ListEntries) isCommand()       {}
func (FindEntries) isCommand()       {}
func (DeleteEntry) isCommand()       {}
func (TotalExpense) isCommand()      {}
func (SetOverallBudget) isCommand()  {}
func (SetCategoryBudget) isCommand() {}
func (ListBudgets) isCommand()       {}
func (ListCategories) isCommand()    {}
func (AddExpense) isCommand()        {}
func (AddIncome) isCommand()         {}
func (EditEntry) isCommand()         {}
func (CheckBudget) isCommand()       {}
func (ClearEntries) isCommand()      {}
func (ShowHelp) isCommand()          {}
func (Exit) isCommand()              {}

// Entry builds the expense this command describes.
func (c AddExpense) Entry() core.Entry {
	return core.NewExpense(c.Description, c.Amount, c.Category, c.Date)
}

// Entry builds the income this command describes.
func (c AddIncome) Entry() core.Entry {
	return core.NewIncome(c.Description, c.Amount, c.Date)
}
