// Package session ties one ledger and one budget registry to a printer and
// runs commands against them.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/sync/errgroup"

	"fintrack/internal/command"
	"fintrack/internal/core"
	"fintrack/internal/ledger"
	"fintrack/internal/log"
	"fintrack/internal/storage"
	"fintrack/internal/trace"
	"fintrack/internal/ui"
)

type Session struct {
	ledger  *ledger.Ledger
	budgets *ledger.Budgets
	out     ui.Printer
	logger  *log.Logger
	tracer  *trace.Tracer
}

func New(l *ledger.Ledger, b *ledger.Budgets, out ui.Printer, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.Discard()
	}
	return &Session{
		ledger:  l,
		budgets: b,
		out:     out,
		logger:  logger.WithComponent(log.ComponentSession),
		tracer:  trace.New(),
	}
}

// Open loads entries and budgets from store in parallel and builds a session
// that writes every change back to it.
func Open(ctx context.Context, store storage.Store, out ui.Printer, logger *log.Logger) (*Session, error) {
	var (
		entries []core.Entry
		budgets core.Budgets
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if entries, err = store.LoadEntries(gctx); err != nil {
			return fmt.Errorf("%w: entries: %w", core.ErrLoadFailed, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if budgets, err = store.LoadBudgets(gctx); err != nil {
			return fmt.Errorf("%w: budgets: %w", core.ErrLoadFailed, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	l := ledger.New(store, entries)
	b := ledger.NewBudgets(store, l, budgets)
	s := New(l, b, out, logger)
	s.logger.WithFields(log.NewFields().WithOperation(log.OpLoad)).DebugContext(ctx, "Session opened",
		"entries", l.Len(),
		"category_budgets", len(budgets.Categories))
	return s, nil
}

func (s *Session) Ledger() *ledger.Ledger { return s.ledger }

func (s *Session) Budgets() *ledger.Budgets { return s.budgets }

func (s *Session) Metrics() trace.Metrics { return s.tracer.Metrics() }

// Run reads commands line by line from in until exit, end of input or ctx
// cancellation. Blank lines are ignored.
func (s *Session) Run(ctx context.Context, in io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- sc.Err()
	}()

	s.out.Print(ui.Welcome)
	for {
		select {
		case <-ctx.Done():
			s.out.Print(ui.Goodbye)
			return nil
		case line, ok := <-lines:
			if !ok {
				s.out.Print(ui.Goodbye)
				select {
				case err := <-scanErr:
					return err
				default:
					return nil
				}
			}
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			if exit, _ := s.Execute(ctx, line); exit {
				return nil
			}
		}
	}
}

// Execute parses and runs one line, printing the result or the error. It
// reports whether the session should end and returns the error it printed,
// if any.
func (s *Session) Execute(ctx context.Context, line string) (bool, error) {
	ctx, finish := s.tracer.Start(ctx)

	cmd, err := command.Parse(line)
	if err != nil {
		finish(true)
		s.out.Print(ui.Error(err))
		return false, err
	}

	exit, err := s.Dispatch(ctx, cmd)
	finish(err != nil)

	fields := log.NewFields().WithOperation(log.OpExecute).WithCommand(fmt.Sprintf("%T", cmd))
	logger := s.logger.WithFields(fields).With("command_id", trace.CommandID(ctx))
	if err != nil {
		s.out.Print(ui.Error(err))
		if errors.Is(err, core.ErrSaveFailed) {
			logger.WarnContext(ctx, "Change kept in memory only", log.FieldError, err.Error())
			s.out.Print(ui.SavedInMemoryOnly)
			return exit, err
		}
		logger.DebugContext(ctx, "Command rejected", log.FieldError, err.Error())
		return exit, err
	}
	logger.DebugContext(ctx, "Command executed")
	return exit, nil
}

// kept reports whether a mutation took effect, possibly without being saved.
func kept(err error) bool {
	return err == nil || errors.Is(err, core.ErrSaveFailed)
}

// Dispatch runs a parsed command. The bool result is true only for Exit.
func (s *Session) Dispatch(ctx context.Context, cmd command.Command) (bool, error) {
	switch c := cmd.(type) {
	case command.AddExpense:
		return false, s.add(ctx, c.Entry())

	case command.AddIncome:
		return false, s.add(ctx, c.Entry())

	case command.ListEntries:
		entries, err := s.ledger.List()
		if err != nil {
			return false, err
		}
		s.out.Print(ui.EntryList(entries))

	case command.FindEntries:
		matches, err := s.ledger.Find(c.Keyword)
		if err != nil {
			return false, err
		}
		positions := make([]int, len(matches))
		entries := make([]core.Entry, len(matches))
		for i, m := range matches {
			positions[i], entries[i] = m.Position, m.Entry
		}
		s.out.Print(ui.MatchList(positions, entries))

	case command.DeleteEntry:
		removed, err := s.ledger.Delete(ctx, c.Index)
		if !kept(err) {
			return false, err
		}
		s.out.Print(ui.Deleted(removed, s.ledger.Len()))
		return false, err

	case command.EditEntry:
		updated, err := s.ledger.Edit(ctx, c.Index, c.Patch)
		if !kept(err) {
			return false, err
		}
		s.out.Print(ui.Edited(c.Index+1, updated))
		return false, err

	case command.TotalExpense:
		s.out.Print(ui.TotalExpense(s.ledger.TotalExpense()))

	case command.ListCategories:
		cats, err := s.ledger.Categories()
		if err != nil {
			return false, err
		}
		s.out.Print(ui.Categories(cats))

	case command.ClearEntries:
		cleared, err := s.ledger.Clear(ctx)
		if !kept(err) {
			return false, err
		}
		if !cleared {
			s.out.Print(ui.NothingToClear)
			return false, nil
		}
		s.out.Print(ui.EntriesCleared)
		return false, err

	case command.SetOverallBudget:
		stored, err := s.budgets.SetOverall(ctx, c.Amount)
		if !kept(err) {
			return false, err
		}
		if !stored {
			s.out.Print(ui.NegativeOverall)
			return false, nil
		}
		s.out.Print(ui.OverallBudgetSet(c.Amount))
		return false, err

	case command.SetCategoryBudget:
		budget, err := s.budgets.SetCategoryRaw(ctx, c.Category, c.RawAmount)
		if !kept(err) {
			return false, err
		}
		s.out.Print(ui.CategoryBudgetSet(budget))
		return false, err

	case command.CheckBudget:
		r, err := s.budgets.Check(c.Target)
		if err != nil {
			return false, err
		}
		s.out.Print(ui.BudgetReport(r.Name, r.Budget, r.Spent, r.Remaining))

	case command.ListBudgets:
		budgets, err := s.budgets.List()
		if err != nil {
			return false, err
		}
		s.out.Print(ui.BudgetList(budgets))

	case command.ShowHelp:
		s.out.Print(ui.HelpText)

	case command.Exit:
		s.out.Print(ui.Goodbye)
		return true, nil

	default:
		return false, core.ErrUnknownCommand
	}
	return false, nil
}

func (s *Session) add(ctx context.Context, e core.Entry) error {
	err := s.ledger.Append(ctx, e)
	if !kept(err) {
		return err
	}
	s.out.Print(ui.Added(e, s.ledger.Len()))
	return err
}
