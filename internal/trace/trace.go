// Package trace tags each executed command with an ID and keeps running
// counters for the session.
package trace

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync/atomic"
	"time"
)

// ContextKey type for context keys
type ContextKey string

const CommandIDKey ContextKey = "command_id"

// Metrics is a snapshot of the tracer counters.
type Metrics struct {
	TotalCommands  int64
	FailedCommands int64
	// LastDuration is in microseconds.
	LastDuration int64
}

type Tracer struct {
	total        atomic.Int64
	failed       atomic.Int64
	lastDuration atomic.Int64
}

func New() *Tracer {
	return &Tracer{}
}

// Start attaches a fresh command ID to ctx. The returned func records the
// outcome and must be called once the command finishes.
func (t *Tracer) Start(ctx context.Context) (context.Context, func(failed bool)) {
	start := time.Now()
	ctx = context.WithValue(ctx, CommandIDKey, GenerateCommandID())
	return ctx, func(failed bool) {
		t.total.Add(1)
		if failed {
			t.failed.Add(1)
		}
		t.lastDuration.Store(time.Since(start).Microseconds())
	}
}

func (t *Tracer) Metrics() Metrics {
	return Metrics{
		TotalCommands:  t.total.Load(),
		FailedCommands: t.failed.Load(),
		LastDuration:   t.lastDuration.Load(),
	}
}

// GenerateCommandID creates a unique command ID for log correlation
func GenerateCommandID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		// Fallback to timestamp if random fails
		return fmt.Sprintf("cmd_%d", time.Now().UnixNano())
	}
	return "cmd_" + hex.EncodeToString(bytes)
}

// CommandID extracts the command ID from context
func CommandID(ctx context.Context) string {
	if id, ok := ctx.Value(CommandIDKey).(string); ok {
		return id
	}
	return ""
}
