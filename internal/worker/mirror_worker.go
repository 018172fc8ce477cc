package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fintrack/internal/amqp"
	"fintrack/internal/storage"
)

// MirrorWorker copies snapshots from the primary store to a mirror store,
// either on change events or on a fixed interval.
type MirrorWorker struct {
	source storage.Store
	target storage.Store
}

func NewMirrorWorker(source, target storage.Store) *MirrorWorker {
	return &MirrorWorker{source: source, target: target}
}

// HandleChange mirrors the collection named in msg. Unknown collections are
// logged and acknowledged so they do not loop through the queue.
func (w *MirrorWorker) HandleChange(ctx context.Context, msg *amqp.LedgerChangeMessage) error {
	slog.DebugContext(ctx, "Processing ledger change",
		"collection", msg.Collection,
		"count", msg.Count)

	switch msg.Collection {
	case amqp.CollectionEntries:
		return w.mirrorEntries(ctx)
	case amqp.CollectionBudgets:
		return w.mirrorBudgets(ctx)
	default:
		slog.WarnContext(ctx, "Ignoring change for unknown collection", "collection", msg.Collection)
		return nil
	}
}

// MirrorAll copies both collections.
func (w *MirrorWorker) MirrorAll(ctx context.Context) error {
	start := time.Now()
	if err := w.mirrorEntries(ctx); err != nil {
		return err
	}
	if err := w.mirrorBudgets(ctx); err != nil {
		return err
	}
	slog.InfoContext(ctx, "Full mirror completed", "duration_ms", time.Since(start).Milliseconds())
	return nil
}

// Run performs a full mirror immediately and then every interval until ctx
// ends. Failed rounds are logged and retried on the next tick.
func (w *MirrorWorker) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("mirror interval must be positive, got %s", interval)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	w.runOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			w.runOnce(ctx)
		}
	}
}

func (w *MirrorWorker) runOnce(ctx context.Context) {
	if err := w.MirrorAll(ctx); err != nil && ctx.Err() == nil {
		slog.ErrorContext(ctx, "Periodic mirror failed", "error", err)
	}
}

func (w *MirrorWorker) mirrorEntries(ctx context.Context) error {
	entries, err := w.source.LoadEntries(ctx)
	if err != nil {
		return fmt.Errorf("load entries: %w", err)
	}
	if err := w.target.SaveEntries(ctx, entries); err != nil {
		return fmt.Errorf("mirror entries: %w", err)
	}
	slog.DebugContext(ctx, "Entries mirrored", "count", len(entries))
	return nil
}

func (w *MirrorWorker) mirrorBudgets(ctx context.Context) error {
	budgets, err := w.source.LoadBudgets(ctx)
	if err != nil {
		return fmt.Errorf("load budgets: %w", err)
	}
	if err := w.target.SaveBudgets(ctx, budgets); err != nil {
		return fmt.Errorf("mirror budgets: %w", err)
	}
	slog.DebugContext(ctx, "Budgets mirrored", "categories", len(budgets.Categories))
	return nil
}
