package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
	"fintrack/internal/storage"
)

// Publisher announces saved collections to other processes.
type Publisher interface {
	PublishLedgerChange(ctx context.Context, collection string, count int) error
}

// PersistenceService is a storage.Store that saves to the primary store first
// and then publishes a change event. A failed publish never fails the save.
type PersistenceService struct {
	store     storage.Store
	publisher Publisher
}

var _ storage.Store = (*PersistenceService)(nil)

// NewPersistenceService wraps store. publisher may be nil.
func NewPersistenceService(store storage.Store, publisher Publisher) *PersistenceService {
	return &PersistenceService{
		store:     store,
		publisher: publisher,
	}
}

func (s *PersistenceService) LoadEntries(ctx context.Context) ([]core.Entry, error) {
	return s.store.LoadEntries(ctx)
}

func (s *PersistenceService) LoadBudgets(ctx context.Context) (core.Budgets, error) {
	return s.store.LoadBudgets(ctx)
}

func (s *PersistenceService) SaveEntries(ctx context.Context, entries []core.Entry) error {
	if err := s.store.SaveEntries(ctx, entries); err != nil {
		return fmt.Errorf("save entries: %w", err)
	}
	s.publish(ctx, amqp.CollectionEntries, len(entries))
	return nil
}

func (s *PersistenceService) SaveBudgets(ctx context.Context, budgets core.Budgets) error {
	if err := s.store.SaveBudgets(ctx, budgets); err != nil {
		return fmt.Errorf("save budgets: %w", err)
	}
	count := len(budgets.Categories)
	if budgets.Overall != nil {
		count++
	}
	s.publish(ctx, amqp.CollectionBudgets, count)
	return nil
}

func (s *PersistenceService) publish(ctx context.Context, collection string, count int) {
	if s.publisher == nil {
		slog.DebugContext(ctx, "No publisher configured, skipping change event", "collection", collection)
		return
	}
	if err := s.publisher.PublishLedgerChange(ctx, collection, count); err != nil {
		// Data is already saved locally
		slog.ErrorContext(ctx, "Failed to publish change event",
			"collection", collection,
			"count", count,
			"error", err)
	}
}

// Close closes both storage and publisher when they hold resources
func (s *PersistenceService) Close() error {
	var errs []error

	if c, ok := s.store.(io.Closer); ok {
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	if c, ok := s.publisher.(io.Closer); ok {
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close persistence service: %v", errs)
	}

	return nil
}
