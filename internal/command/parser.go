package command

import (
	"strconv"
	"strings"
	"unicode"

	"fintrack/internal/core"
)

type parseFunc func(args string) (Command, error)

// keywords maps lower-cased command words to their argument parsers.
var keywords = map[string]parseFunc{
	"list":      noArgs(ListEntries{}),
	"find":      parseFind,
	"del":       parseDelete,
	"totalexp":  noArgs(TotalExpense{}),
	"settotbgt": parseSetOverallBudget,
	"setcatbgt": parseSetCategoryBudget,
	"listbgt":   noArgs(ListBudgets{}),
	"listcat":   noArgs(ListCategories{}),
	"addexp":    parseAddExpense,
	"addincome": parseAddIncome,
	"edit":      parseEdit,
	"check":     parseCheck,
	"clear":     noArgs(ClearEntries{}),
	"help":      noArgs(ShowHelp{}),
	"exit":      noArgs(Exit{}),
}

// Parse classifies a single input line. The keyword is matched
// case-insensitively; everything after it is handed to the keyword's parser.
func Parse(line string) (Command, error) {
	line = strings.TrimSpace(line)
	keyword, args := line, ""
	if i := strings.IndexFunc(line, unicode.IsSpace); i >= 0 {
		keyword, args = line[:i], line[i:]
	}
	parse, ok := keywords[strings.ToLower(keyword)]
	if !ok {
		return nil, core.ErrUnknownCommand
	}
	return parse(args)
}

func noArgs(c Command) parseFunc {
	return func(args string) (Command, error) {
		if strings.TrimSpace(args) != "" {
			return nil, core.ErrUnexpectedArguments
		}
		return c, nil
	}
}

func parseFind(args string) (Command, error) {
	keyword := strings.TrimSpace(args)
	if keyword == "" {
		return nil, core.ErrMissingKeyword
	}
	return FindEntries{Keyword: keyword}, nil
}

func parseDelete(args string) (Command, error) {
	index, err := parseEntryNumber(args)
	if err != nil {
		return nil, err
	}
	return DeleteEntry{Index: index}, nil
}

func parseSetOverallBudget(args string) (Command, error) {
	raw := strings.TrimSpace(args)
	if raw == "" {
		return nil, core.ErrMissingBudgetAmount
	}
	amount, err := core.ParseAmount(raw)
	if err != nil {
		return nil, err
	}
	return SetOverallBudget{Amount: amount}, nil
}

// parseSetCategoryBudget reads "c/<category words> <amount>". The amount is
// the last token; the category is everything between c/ and it.
func parseSetCategoryBudget(args string) (Command, error) {
	a := strings.TrimSpace(args)
	if !strings.HasPrefix(a, categoryMarker) {
		return nil, core.ErrInvalidBudgetFormat
	}
	rest := a[len(categoryMarker):]
	if len(markerPositions(rest, categoryMarker)) > 0 {
		return nil, core.ErrMultipleCategoryMarkers
	}

	toks := strings.Fields(rest)
	switch len(toks) {
	case 0:
		return SetCategoryBudget{}, nil
	case 1:
		return SetCategoryBudget{Category: toks[0]}, nil
	}
	last := toks[len(toks)-1]
	category := strings.TrimSpace(rest[:strings.LastIndex(rest, last)])
	return SetCategoryBudget{Category: category, RawAmount: last}, nil
}

func parseAddExpense(args string) (Command, error) {
	idx := strings.Index(args, amountMarker)
	if idx < 0 {
		return nil, core.ErrInvalidExpenseFormat
	}
	desc := strings.TrimSpace(args[:idx])
	if desc == "" {
		return nil, core.ErrMissingDescription
	}
	tail := args[idx+len(amountMarker):]
	if len(markerPositions(tail, amountMarker)) > 0 {
		return nil, core.ErrMultipleAmountMarkers
	}

	f, err := splitFields(tail, categoryMarker, dateMarker)
	if err != nil {
		return nil, err
	}
	if !f.inOrder(categoryMarker, dateMarker) {
		return nil, core.ErrInvalidExpenseFormat
	}
	if err := checkUnknownMarkers(tail, categoryMarker, dateMarker); err != nil {
		return nil, err
	}
	amount, err := parsePositiveAmount(f.lead)
	if err != nil {
		return nil, err
	}

	cmd := AddExpense{Description: desc, Amount: amount, Category: f.values[categoryMarker]}
	if f.has(dateMarker) {
		if cmd.Date, err = core.ParseDate(f.values[dateMarker]); err != nil {
			return nil, err
		}
	}
	return cmd, nil
}

func parseAddIncome(args string) (Command, error) {
	idx := strings.Index(args, amountMarker)
	if idx < 0 {
		return nil, core.ErrInvalidIncomeFormat
	}
	desc := strings.TrimSpace(args[:idx])
	if desc == "" {
		return nil, core.ErrMissingDescription
	}
	tail := args[idx+len(amountMarker):]
	if len(markerPositions(tail, amountMarker)) > 0 {
		return nil, core.ErrMultipleAmountMarkers
	}

	f, err := splitFields(tail, dateMarker)
	if err != nil {
		return nil, err
	}
	if err := checkUnknownMarkers(tail, dateMarker); err != nil {
		return nil, err
	}
	amount, err := parsePositiveAmount(f.lead)
	if err != nil {
		return nil, err
	}

	cmd := AddIncome{Description: desc, Amount: amount}
	if f.has(dateMarker) {
		if cmd.Date, err = core.ParseDate(f.values[dateMarker]); err != nil {
			return nil, err
		}
	}
	return cmd, nil
}

// parseEdit reads "<n> [description] [$/amount] [c/category] [d/date]".
// Blank fields and a zero amount leave the stored value unchanged.
func parseEdit(args string) (Command, error) {
	a := strings.TrimSpace(args)
	numTok, rest := a, ""
	if i := strings.IndexFunc(a, unicode.IsSpace); i >= 0 {
		numTok, rest = a[:i], a[i:]
	}
	index, err := parseEntryNumber(numTok)
	if err != nil {
		return nil, err
	}

	f, err := splitFields(rest, amountMarker, categoryMarker, dateMarker)
	if err != nil {
		return nil, err
	}
	if !f.inOrder(amountMarker, categoryMarker, dateMarker) {
		return nil, core.ErrInvalidEditFormat
	}
	if err := checkUnknownMarkers(rest, categoryMarker, dateMarker); err != nil {
		return nil, err
	}

	var patch core.EntryPatch
	if f.lead != "" {
		desc := f.lead
		patch.Description = &desc
	}
	if raw := f.values[amountMarker]; raw != "" {
		amount, err := core.ParseAmount(raw)
		if err != nil {
			return nil, err
		}
		if !amount.IsZero() {
			patch.Amount = &amount
		}
	}
	if cat := f.values[categoryMarker]; cat != "" {
		patch.Category = &cat
	}
	if raw := f.values[dateMarker]; raw != "" {
		date, err := core.ParseDate(raw)
		if err != nil {
			return nil, err
		}
		patch.Date = &date
	}
	return EditEntry{Index: index, Patch: patch}, nil
}

func parseCheck(args string) (Command, error) {
	target := strings.TrimSpace(args)
	if target == "" {
		return nil, core.ErrMissingBudgetTarget
	}
	return CheckBudget{Target: target}, nil
}

func parsePositiveAmount(raw string) (core.Money, error) {
	amount, err := core.ParseAmount(raw)
	if err != nil {
		return core.Money{}, err
	}
	if err := amount.Validate(); err != nil {
		return core.Money{}, err
	}
	return amount, nil
}

// parseEntryNumber converts a 1-based entry number to a zero-based index.
// Upper bounds are checked by the ledger.
func parseEntryNumber(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	switch {
	case s == "":
		return 0, core.ErrMissingEntryNumber
	case len(s) > 1 && s[0] == '-' && isDigits(s[1:]):
		return 0, core.ErrEntryNumberNegative
	case !isDigits(s):
		return 0, core.ErrEntryNumberNotNumeric
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, core.ErrEntryOutOfRange
	}
	if n == 0 {
		return 0, core.ErrEntryNumberZero
	}
	return n - 1, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
