package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"fintrack/internal/core"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

const (
	DefaultEntriesSheet = "Entries"
	DefaultBudgetsSheet = "Budgets"
)

// Config selects the spreadsheet and the credentials used to reach it.
type Config struct {
	SpreadsheetID      string
	ServiceAccountJSON string
	ServiceAccountFile string
	EntriesSheet       string
	BudgetsSheet       string
}

// Store keeps the ledger in two tabs of a Google spreadsheet. Every save
// clears the tab and rewrites it, header row first.
type Store struct {
	svc           *gsheet.Service
	spreadsheetID string
	entriesSheet  string
	budgetsSheet  string
}

// New creates a Sheets store from configuration using Service Account credentials.
func New(ctx context.Context, cfg Config) (*Store, error) {
	if strings.TrimSpace(cfg.SpreadsheetID) == "" {
		return nil, errors.New("missing spreadsheet id")
	}
	svc, err := newSheetsService(ctx, cfg.ServiceAccountJSON, cfg.ServiceAccountFile)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	return NewWithService(svc, cfg), nil
}

// NewWithService wraps an existing Sheets service.
func NewWithService(svc *gsheet.Service, cfg Config) *Store {
	entries := strings.TrimSpace(cfg.EntriesSheet)
	if entries == "" {
		entries = DefaultEntriesSheet
	}
	budgets := strings.TrimSpace(cfg.BudgetsSheet)
	if budgets == "" {
		budgets = DefaultBudgetsSheet
	}
	return &Store{
		svc:           svc,
		spreadsheetID: cfg.SpreadsheetID,
		entriesSheet:  entries,
		budgetsSheet:  budgets,
	}
}

// newSheetsService initializes a Sheets Service using Service Account credentials.
// Falls back to GOOGLE_APPLICATION_CREDENTIALS when neither json nor file is given.
func newSheetsService(ctx context.Context, serviceAccountJSON, serviceAccountFile string) (*gsheet.Service, error) {
	serviceAccountJSON = strings.TrimSpace(serviceAccountJSON)
	serviceAccountFile = strings.TrimSpace(serviceAccountFile)
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		data, err := os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		credentialsJSON = data
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	slog.DebugContext(ctx, "Google Sheets service created", "credentials_size", len(credentialsJSON))
	return service, nil
}

func (s *Store) LoadEntries(ctx context.Context) ([]core.Entry, error) {
	values, err := s.read(ctx, s.entriesSheet, "A2:E")
	if err != nil {
		return nil, err
	}
	return rowsToEntries(values)
}

func (s *Store) SaveEntries(ctx context.Context, entries []core.Entry) error {
	if err := s.replace(ctx, s.entriesSheet, "A:E", entriesToRows(entries)); err != nil {
		return err
	}
	slog.DebugContext(ctx, "Entries written to Google Sheets", "sheet", s.entriesSheet, "count", len(entries))
	return nil
}

func (s *Store) LoadBudgets(ctx context.Context) (core.Budgets, error) {
	values, err := s.read(ctx, s.budgetsSheet, "A2:C")
	if err != nil {
		return core.Budgets{}, err
	}
	return rowsToBudgets(values)
}

func (s *Store) SaveBudgets(ctx context.Context, budgets core.Budgets) error {
	if err := s.replace(ctx, s.budgetsSheet, "A:C", budgetsToRows(budgets)); err != nil {
		return err
	}
	slog.DebugContext(ctx, "Budgets written to Google Sheets", "sheet", s.budgetsSheet)
	return nil
}

func (s *Store) read(ctx context.Context, sheet, cells string) ([][]interface{}, error) {
	if s.svc == nil {
		return nil, errors.New("sheets service not initialized")
	}
	rng := fmt.Sprintf("%s!%s", sheet, cells)
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rng, err)
	}
	return resp.Values, nil
}

func (s *Store) replace(ctx context.Context, sheet, cells string, rows [][]interface{}) error {
	if s.svc == nil {
		return errors.New("sheets service not initialized")
	}
	rng := fmt.Sprintf("%s!%s", sheet, cells)
	if _, err := s.svc.Spreadsheets.Values.Clear(s.spreadsheetID, rng, &gsheet.ClearValuesRequest{}).Context(ctx).Do(); err != nil {
		return fmt.Errorf("clear %s: %w", rng, err)
	}
	vr := &gsheet.ValueRange{Values: rows}
	_, err := s.svc.Spreadsheets.Values.Update(s.spreadsheetID, sheet+"!A1", vr).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("update %s: %w", rng, err)
	}
	return nil
}
