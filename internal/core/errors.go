package core

// Error is a user-facing ledger failure. The message is printed verbatim by the REPL,
// so every failure case has exactly one fixed text.
type Error string

func (e Error) Error() string { return string(e) }

// Grammar errors
const (
	ErrUnknownCommand          Error = "Unknown command. Type 'help' to see the list of commands."
	ErrUnexpectedArguments     Error = "This command does not take any arguments."
	ErrInvalidExpenseFormat    Error = "Invalid format. Use: addExp <description> $/<amount> [c/<category>] [d/<YYYY-MM-DD>]"
	ErrInvalidIncomeFormat     Error = "Invalid format. Use: addIncome <description> $/<amount> [d/<YYYY-MM-DD>]"
	ErrInvalidEditFormat       Error = "Invalid format. Use: edit <entry number> <description> [$/<amount>] [c/<category>] [d/<YYYY-MM-DD>]"
	ErrInvalidBudgetFormat     Error = "Invalid format. Use: setCatBgt c/<category> <amount>"
	ErrMissingDescription      Error = "Description cannot be empty. Please add a description before $/."
	ErrMultipleAmountMarkers   Error = "Multiple $/ markers detected. Please provide only one amount."
	ErrMultipleCategoryMarkers Error = "Multiple c/ markers detected. Please provide only one category."
	ErrMultipleDateMarkers     Error = "Multiple d/ markers detected. Please provide only one date."
	ErrUnknownMarker           Error = "Unrecognised markers detected without a matching field"
	ErrInvalidAmountFormat     Error = "Invalid amount format. Please enter a number such as 12.50."
	ErrInvalidDate             Error = "Invalid date. Please use the format YYYY-MM-DD with a real calendar date."
	ErrMissingEntryNumber      Error = "Please provide an entry number."
	ErrEntryNumberNotNumeric   Error = "Entry number must be a whole number."
	ErrEntryNumberNegative     Error = "Entry number cannot be negative."
	ErrEntryNumberZero         Error = "Entry number must start from 1."
	ErrMissingKeyword          Error = "Please enter a keyword to search for."
	ErrMissingBudgetTarget     Error = "Please specify Overall or a category to check."
)

// Domain errors
const (
	ErrNonPositiveAmount   Error = "Amount must be greater than zero."
	ErrNegativeAmount      Error = "Amount cannot be negative."
	ErrEntryOutOfRange     Error = "Invalid or unavailable entry number."
	ErrNoMatches           Error = "No matching entries found."
	ErrEmptyLedger         Error = "There are no entries in your list."
	ErrNoCategories        Error = "There are no categories to show."
	ErrMissingCategory     Error = "Category cannot be empty."
	ErrReservedCategory    Error = "\"Overall\" is reserved. Use setTotBgt to set the overall budget."
	ErrMissingBudgetAmount Error = "Budget amount cannot be empty."
	ErrNegativeBudget      Error = "Budget amount cannot be negative."
	ErrNoOverallBudget     Error = "No budget set for Overall."
	ErrNoCategoryBudget    Error = "No budget set for this category."
	ErrNoBudgets           Error = "No budgets have been set."
	ErrInvalidEntry        Error = "Invalid entry."
	ErrAmountTooLarge      Error = "Amount is too large. The maximum is 9999999999.99."
	ErrIncomeCategory      Error = "Income entries have no category. Remove c/ to edit this entry."
)

// I/O errors. Causes are attached with fmt.Errorf("%w: %w", ...).
const (
	ErrSaveFailed  Error = "Unable to save your data"
	ErrLoadFailed  Error = "Unable to load your data"
	ErrCorruptLine Error = "Unrecognised entry line"
)
