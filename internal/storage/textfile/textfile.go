// Package textfile stores the ledger as plain files in a data directory:
// one canonical line per entry in ledger.txt and budgets in budgets.yaml.
package textfile

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"fintrack/internal/core"

	"gopkg.in/yaml.v3"
)

const (
	EntriesFile = "ledger.txt"
	BudgetsFile = "budgets.yaml"
)

type Store struct {
	dir string
}

func New(dir string) *Store {
	return &Store{dir: dir}
}

type (
	budgetFile struct {
		Overall    string       `yaml:"overall,omitempty"`
		Categories []budgetLine `yaml:"categories,omitempty"`
	}

	budgetLine struct {
		Category string `yaml:"category"`
		Amount   string `yaml:"amount"`
	}
)

// LoadEntries reads ledger.txt. A missing file is an empty ledger; blank lines
// are skipped and any other unreadable line fails the load.
func (s *Store) LoadEntries(_ context.Context) ([]core.Entry, error) {
	data, err := s.read(EntriesFile)
	if err != nil || data == nil {
		return nil, err
	}

	var out []core.Entry
	sc := bufio.NewScanner(bytes.NewReader(data))
	for n := 1; sc.Scan(); n++ {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		e, err := core.DecodeEntry(line)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", EntriesFile, n, err)
		}
		out = append(out, e)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", EntriesFile, err)
	}
	return out, nil
}

func (s *Store) SaveEntries(ctx context.Context, entries []core.Entry) error {
	var buf bytes.Buffer
	for _, e := range entries {
		buf.WriteString(core.Render(e))
		buf.WriteByte('\n')
	}
	if err := s.write(EntriesFile, buf.Bytes()); err != nil {
		return err
	}
	slog.DebugContext(ctx, "Entries written", "file", EntriesFile, "count", len(entries))
	return nil
}

func (s *Store) LoadBudgets(_ context.Context) (core.Budgets, error) {
	data, err := s.read(BudgetsFile)
	if err != nil || data == nil {
		return core.Budgets{}, err
	}

	var f budgetFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return core.Budgets{}, fmt.Errorf("parse %s: %w", BudgetsFile, err)
	}

	var out core.Budgets
	if f.Overall != "" {
		amount, err := core.ParseAmount(f.Overall)
		if err != nil {
			return core.Budgets{}, fmt.Errorf("%s overall: %w", BudgetsFile, err)
		}
		out.Overall = &amount
	}
	for _, line := range f.Categories {
		amount, err := core.ParseAmount(line.Amount)
		if err != nil {
			return core.Budgets{}, fmt.Errorf("%s category %q: %w", BudgetsFile, line.Category, err)
		}
		out.Categories = append(out.Categories, core.Budget{Category: line.Category, Amount: amount})
	}
	return out, nil
}

func (s *Store) SaveBudgets(ctx context.Context, budgets core.Budgets) error {
	var f budgetFile
	if budgets.Overall != nil {
		f.Overall = budgets.Overall.String()
	}
	for _, b := range budgets.Categories {
		f.Categories = append(f.Categories, budgetLine{Category: b.Category, Amount: b.Amount.String()})
	}
	data, err := yaml.Marshal(&f)
	if err != nil {
		return fmt.Errorf("encode budgets: %w", err)
	}
	if err := s.write(BudgetsFile, data); err != nil {
		return err
	}
	slog.DebugContext(ctx, "Budgets written", "file", BudgetsFile, "categories", len(budgets.Categories))
	return nil
}

// read returns nil data and no error when the file does not exist.
func (s *Store) read(name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}

// write replaces name atomically via a temp file in the same directory.
func (s *Store) write(name string, data []byte) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	tmp, err := os.CreateTemp(s.dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, name)); err != nil {
		return fmt.Errorf("replace %s: %w", name, err)
	}
	return nil
}
