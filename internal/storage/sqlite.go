package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"fintrack/internal/core"

	_ "modernc.org/sqlite"
)

const (
	scopeOverall  = "overall"
	scopeCategory = "category"
)

// SQLiteStore keeps entries and budgets in a local SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) LoadEntries(ctx context.Context) ([]core.Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT kind, description, amount_cents, category, date FROM entries ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	var out []core.Entry
	for rows.Next() {
		var (
			kind, desc     string
			cents          int64
			category, date sql.NullString
		)
		if err := rows.Scan(&kind, &desc, &cents, &category, &date); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		e, err := entryFromRow(kind, desc, cents, category.String, date.String)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return out, nil
}

func entryFromRow(kind, desc string, cents int64, category, rawDate string) (core.Entry, error) {
	var date core.Date
	if rawDate != "" {
		d, err := core.ParseDate(rawDate)
		if err != nil {
			return core.Entry{}, fmt.Errorf("%w: date %q", core.ErrCorruptLine, rawDate)
		}
		date = d
	}
	amount := core.Money{Cents: cents}
	switch core.Kind(kind) {
	case core.KindExpense:
		return core.NewExpense(desc, amount, category, date), nil
	case core.KindIncome:
		return core.NewIncome(desc, amount, date), nil
	}
	return core.Entry{}, fmt.Errorf("%w: kind %q", core.ErrCorruptLine, kind)
}

// SaveEntries replaces every stored entry in a single transaction.
func (s *SQLiteStore) SaveEntries(ctx context.Context, entries []core.Entry) error {
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM entries`); err != nil {
			return fmt.Errorf("delete entries: %w", err)
		}
		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO entries (position, kind, description, amount_cents, category, date) VALUES (?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("prepare insert: %w", err)
		}
		defer stmt.Close()

		for i, e := range entries {
			var category, date sql.NullString
			if e.IsExpense() {
				category = sql.NullString{String: e.Category, Valid: true}
			}
			if !e.Date.IsEmpty() {
				date = sql.NullString{String: e.Date.String(), Valid: true}
			}
			if _, err := stmt.ExecContext(ctx, i, string(e.Kind), e.Description, e.Amount.Cents, category, date); err != nil {
				return fmt.Errorf("insert entry %d: %w", i+1, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.DebugContext(ctx, "Entries saved to SQLite", "count", len(entries))
	return nil
}

func (s *SQLiteStore) LoadBudgets(ctx context.Context) (core.Budgets, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT scope, category, amount_cents FROM budgets ORDER BY position`)
	if err != nil {
		return core.Budgets{}, fmt.Errorf("query budgets: %w", err)
	}
	defer rows.Close()

	var out core.Budgets
	for rows.Next() {
		var (
			scope    string
			category sql.NullString
			cents    int64
		)
		if err := rows.Scan(&scope, &category, &cents); err != nil {
			return core.Budgets{}, fmt.Errorf("scan budget: %w", err)
		}
		amount := core.Money{Cents: cents}
		switch scope {
		case scopeOverall:
			out.Overall = &amount
		case scopeCategory:
			out.Categories = append(out.Categories, core.Budget{Category: category.String, Amount: amount})
		default:
			return core.Budgets{}, fmt.Errorf("unknown budget scope %q", scope)
		}
	}
	if err := rows.Err(); err != nil {
		return core.Budgets{}, fmt.Errorf("iterate budgets: %w", err)
	}
	return out, nil
}

func (s *SQLiteStore) SaveBudgets(ctx context.Context, budgets core.Budgets) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM budgets`); err != nil {
			return fmt.Errorf("delete budgets: %w", err)
		}
		const insert = `INSERT INTO budgets (position, scope, category, amount_cents) VALUES (?, ?, ?, ?)`
		pos := 0
		if budgets.Overall != nil {
			if _, err := tx.ExecContext(ctx, insert, pos, scopeOverall, nil, budgets.Overall.Cents); err != nil {
				return fmt.Errorf("insert overall budget: %w", err)
			}
			pos++
		}
		for _, b := range budgets.Categories {
			if _, err := tx.ExecContext(ctx, insert, pos, scopeCategory, b.Category, b.Amount.Cents); err != nil {
				return fmt.Errorf("insert budget %q: %w", b.Category, err)
			}
			pos++
		}
		return nil
	})
}

func (s *SQLiteStore) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			slog.ErrorContext(ctx, "Rollback failed", "error", rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
