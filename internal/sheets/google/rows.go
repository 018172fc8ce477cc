package google

import (
	"fmt"
	"strings"

	"fintrack/internal/core"
)

const (
	scopeOverall  = "overall"
	scopeCategory = "category"
)

var (
	entriesHeader = []interface{}{"Kind", "Description", "Amount", "Category", "Date"}
	budgetsHeader = []interface{}{"Scope", "Category", "Amount"}
)

// entriesToRows lays out entries as kind, description, amount, category, date.
// Amounts are written as strings so the sheet keeps two decimals.
func entriesToRows(entries []core.Entry) [][]interface{} {
	rows := make([][]interface{}, 0, len(entries)+1)
	rows = append(rows, entriesHeader)
	for _, e := range entries {
		date := ""
		if !e.Date.IsEmpty() {
			date = e.Date.String()
		}
		rows = append(rows, []interface{}{string(e.Kind), e.Description, e.Amount.String(), e.Category, date})
	}
	return rows
}

// rowsToEntries parses data rows (header excluded). Fully blank rows are skipped.
func rowsToEntries(values [][]interface{}) ([]core.Entry, error) {
	var out []core.Entry
	for i, raw := range values {
		row := toStrings(raw)
		if isBlank(row) {
			continue
		}
		amount, err := core.ParseAmount(safeGet(row, 2))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w: amount %q", i+2, core.ErrCorruptLine, safeGet(row, 2))
		}
		var date core.Date
		if rawDate := safeGet(row, 4); rawDate != "" && rawDate != core.NoDate {
			if date, err = core.ParseDate(rawDate); err != nil {
				return nil, fmt.Errorf("row %d: %w: date %q", i+2, core.ErrCorruptLine, rawDate)
			}
		}
		switch core.Kind(safeGet(row, 0)) {
		case core.KindExpense:
			out = append(out, core.NewExpense(safeGet(row, 1), amount, safeGet(row, 3), date))
		case core.KindIncome:
			out = append(out, core.NewIncome(safeGet(row, 1), amount, date))
		default:
			return nil, fmt.Errorf("row %d: %w: kind %q", i+2, core.ErrCorruptLine, safeGet(row, 0))
		}
	}
	return out, nil
}

func budgetsToRows(b core.Budgets) [][]interface{} {
	rows := [][]interface{}{budgetsHeader}
	if b.Overall != nil {
		rows = append(rows, []interface{}{scopeOverall, "", b.Overall.String()})
	}
	for _, c := range b.Categories {
		rows = append(rows, []interface{}{scopeCategory, c.Category, c.Amount.String()})
	}
	return rows
}

func rowsToBudgets(values [][]interface{}) (core.Budgets, error) {
	var out core.Budgets
	for i, raw := range values {
		row := toStrings(raw)
		if isBlank(row) {
			continue
		}
		amount, err := core.ParseAmount(safeGet(row, 2))
		if err != nil {
			return core.Budgets{}, fmt.Errorf("budget row %d: %w", i+2, err)
		}
		switch strings.ToLower(safeGet(row, 0)) {
		case scopeOverall:
			v := amount
			out.Overall = &v
		case scopeCategory:
			out.Categories = append(out.Categories, core.Budget{Category: safeGet(row, 1), Amount: amount})
		default:
			return core.Budgets{}, fmt.Errorf("budget row %d: unknown scope %q", i+2, safeGet(row, 0))
		}
	}
	return out, nil
}

func toStrings(in []interface{}) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}

func safeGet(arr []string, idx int) string {
	if idx >= 0 && idx < len(arr) {
		return arr[idx]
	}
	return ""
}

func isBlank(row []string) bool {
	for _, v := range row {
		if v != "" {
			return false
		}
	}
	return true
}
