package core

import "strings"

const (
	KindExpense Kind = "Expense"
	KindIncome  Kind = "Income"

	// DefaultCategory is assigned to expenses added without a category.
	DefaultCategory = "Uncategorized"
)

type (
	Kind string

	// Entry is one ledger line. Entries are values: edits build a new Entry
	// rather than mutating the stored one.
	Entry struct {
		Kind        Kind
		Description string
		Amount      Money
		Category    string // always empty for income
		Date        Date
	}

	// EntryPatch carries the fields an edit replaces. Nil means keep.
	EntryPatch struct {
		Description *string
		Amount      *Money
		Category    *string
		Date        *Date
	}
)

// NewExpense builds an expense, defaulting a blank category.
func NewExpense(description string, amount Money, category string, date Date) Entry {
	category = strings.TrimSpace(category)
	if category == "" {
		category = DefaultCategory
	}
	return Entry{
		Kind:        KindExpense,
		Description: description,
		Amount:      amount,
		Category:    category,
		Date:        date,
	}
}

func NewIncome(description string, amount Money, date Date) Entry {
	return Entry{
		Kind:        KindIncome,
		Description: description,
		Amount:      amount,
		Date:        date,
	}
}

func (e Entry) IsExpense() bool { return e.Kind == KindExpense }

func (e Entry) String() string { return Render(e) }

func (e Entry) Validate() error {
	switch e.Kind {
	case KindExpense:
		if strings.TrimSpace(e.Category) == "" {
			return ErrMissingCategory
		}
		if e.Amount.IsNegative() {
			return ErrNegativeAmount
		}
	case KindIncome:
		if e.Amount.IsNegative() {
			return ErrNegativeAmount
		}
	default:
		return ErrInvalidEntry
	}
	if err := e.Amount.checkRange(); err != nil {
		return err
	}
	if strings.TrimSpace(e.Description) == "" {
		return ErrMissingDescription
	}
	return nil
}

// Apply returns a copy of e with the patch fields replaced. A category on an
// income patch is rejected.
func (e Entry) Apply(p EntryPatch) (Entry, error) {
	out := e
	if p.Description != nil {
		out.Description = *p.Description
	}
	if p.Amount != nil {
		if p.Amount.IsNegative() {
			return e, ErrNegativeAmount
		}
		out.Amount = *p.Amount
	}
	if p.Category != nil {
		if !out.IsExpense() {
			return e, ErrIncomeCategory
		}
		out.Category = *p.Category
	}
	if p.Date != nil {
		out.Date = *p.Date
	}
	return out, nil
}

// IsEmpty reports whether the patch changes nothing.
func (p EntryPatch) IsEmpty() bool {
	return p.Description == nil && p.Amount == nil && p.Category == nil && p.Date == nil
}
