// Package ui owns every line of text shown to the user.
package ui

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"fintrack/internal/core"
)

// Printer receives finished output lines.
type Printer interface {
	Print(line string)
}

// Console prints lines to a writer, one per call.
type Console struct {
	mu sync.Mutex
	w  io.Writer
}

func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

func (c *Console) Print(line string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.w, line)
}

// Recorder keeps printed lines in memory.
type Recorder struct {
	mu    sync.Mutex
	lines []string
}

func (r *Recorder) Print(line string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, strings.Split(line, "\n")...)
}

// Lines returns every line printed so far.
func (r *Recorder) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.lines))
	copy(out, r.lines)
	return out
}

// Reset drops the recorded lines.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = nil
}

// Text returns the recorded lines joined by newlines.
func (r *Recorder) Text() string {
	return strings.Join(r.Lines(), "\n")
}

const (
	Welcome = "Hello! I'm your finance tracker.\nWhat can I do for you? Type 'help' to see the list of commands."
	Goodbye = "Bye. Hope to see you again soon!"

	EntriesCleared    = "All entries have been cleared."
	NothingToClear    = "No entries to clear."
	NegativeOverall   = "Overall budget cannot be negative. Budget not updated."
	SavedInMemoryOnly = "Your change is kept for this session but could not be saved."
)

// HelpText lists every command with its syntax.
const HelpText = `Here are the commands you can use:
  addExp <description> $/<amount> [c/<category>] [d/<YYYY-MM-DD>]  Add an expense
  addIncome <description> $/<amount> [d/<YYYY-MM-DD>]               Add an income
  list                                                              List all entries
  find <keyword>                                                    Find entries by description, category or date
  edit <n> [description] [$/<amount>] [c/<category>] [d/<date>]     Edit entry n
  del <n>                                                           Delete entry n
  totalExp                                                          Show total expenses
  listCat                                                           List expense categories
  setTotBgt <amount>                                                Set the overall budget
  setCatBgt c/<category> <amount>                                   Set a category budget
  check <Overall|category>                                          Compare a budget with spending
  listBgt                                                           List all budgets
  clear                                                             Remove all entries
  help                                                              Show this message
  exit                                                              Quit`

// EntryLine formats an entry with its 1-based position.
func EntryLine(position int, e core.Entry) string {
	return fmt.Sprintf("%d.%s", position, core.Render(e))
}

func Added(e core.Entry, count int) string {
	kind := "expense"
	if e.Kind == core.KindIncome {
		kind = "income"
	}
	return fmt.Sprintf("Got it. I've added this %s:\n  %s\nNow you have %d entries in the list.", kind, core.Render(e), count)
}

func Deleted(e core.Entry, count int) string {
	return fmt.Sprintf("Noted. I've removed this entry:\n  %s\nNow you have %d entries in the list.", core.Render(e), count)
}

func Edited(position int, e core.Entry) string {
	return fmt.Sprintf("Updated entry %d:\n  %s", position, core.Render(e))
}

func EntryList(entries []core.Entry) string {
	lines := []string{"Here are the entries in your list:"}
	for i, e := range entries {
		lines = append(lines, EntryLine(i+1, e))
	}
	return strings.Join(lines, "\n")
}

// MatchList formats search hits keeping their ledger positions.
func MatchList(positions []int, entries []core.Entry) string {
	lines := []string{"Here are the matching entries in your list:"}
	for i, e := range entries {
		lines = append(lines, EntryLine(positions[i], e))
	}
	return strings.Join(lines, "\n")
}

func TotalExpense(total core.Money) string {
	return fmt.Sprintf("Total expenses: $%s", total)
}

func Categories(categories []string) string {
	lines := []string{"Categories:"}
	for i, c := range categories {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, c))
	}
	return strings.Join(lines, "\n")
}

func OverallBudgetSet(amount core.Money) string {
	return fmt.Sprintf("Overall budget set to $%s", amount)
}

func CategoryBudgetSet(b core.Budget) string {
	return fmt.Sprintf("Budget for %s set to $%s", b.Category, b.Amount)
}

func BudgetList(budgets []core.Budget) string {
	lines := []string{"Here are your budgets:"}
	for _, b := range budgets {
		lines = append(lines, fmt.Sprintf("  %s: $%s", b.Category, b.Amount))
	}
	return strings.Join(lines, "\n")
}

func BudgetReport(name string, budget, spent, remaining core.Money) string {
	return fmt.Sprintf("Budget for %s: $%s\nTotal spent: $%s\nRemaining: $%s", name, budget, spent, remaining)
}

// Error formats a failure for display.
func Error(err error) string {
	return fmt.Sprintf("Error: %v", err)
}
