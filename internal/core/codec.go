package core

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	expenseLine = regexp.MustCompile(`^Expense: (.*) \$(-?\d+\.\d{2}) \{(.*)\} \[(.*)\]$`)
	incomeLine  = regexp.MustCompile(`^Income: (.*) \$(-?\d+\.\d{2}) \[(.*)\]$`)
)

// Render produces the canonical single-line form of an entry:
//
//	Expense: Lunch $12.50 {Food} [2024-03-01]
//	Income: Salary $3000.00 [no date]
func Render(e Entry) string {
	if e.Kind == KindIncome {
		return fmt.Sprintf("Income: %s $%s [%s]", e.Description, e.Amount, e.Date)
	}
	return fmt.Sprintf("Expense: %s $%s {%s} [%s]", e.Description, e.Amount, e.Category, e.Date)
}

// DecodeEntry parses a line produced by Render.
func DecodeEntry(line string) (Entry, error) {
	line = strings.TrimRight(line, "\r\n")
	if m := expenseLine.FindStringSubmatch(line); m != nil {
		amount, date, err := decodeAmountDate(m[2], m[4])
		if err != nil {
			return Entry{}, err
		}
		return NewExpense(m[1], amount, m[3], date), nil
	}
	if m := incomeLine.FindStringSubmatch(line); m != nil {
		amount, date, err := decodeAmountDate(m[2], m[3])
		if err != nil {
			return Entry{}, err
		}
		return NewIncome(m[1], amount, date), nil
	}
	return Entry{}, fmt.Errorf("%w: %q", ErrCorruptLine, line)
}

func decodeAmountDate(rawAmount, rawDate string) (Money, Date, error) {
	amount, err := ParseAmount(rawAmount)
	if err != nil {
		return Money{}, Date{}, fmt.Errorf("%w: amount %q", ErrCorruptLine, rawAmount)
	}
	if rawDate == NoDate || rawDate == "" {
		return amount, Date{}, nil
	}
	date, err := ParseDate(rawDate)
	if err != nil {
		return Money{}, Date{}, fmt.Errorf("%w: date %q", ErrCorruptLine, rawDate)
	}
	return amount, date, nil
}
