// Package stream publishes recorded lifecycle events to downstream
// consumers. Events travel as CloudEvents so consumers get a stable envelope
// regardless of transport.
package stream

import (
	"context"
	"log/slog"
	"sync"

	"scanhub/internal/lifecycle"
)

// LogPublisher writes events to the log only. Used when no broker is
// configured, typically in local runs.
type LogPublisher struct {
	logger *slog.Logger
}

// NewLogPublisher builds a log-only publisher.
func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, events []lifecycle.Event) error {
	for _, ev := range events {
		p.logger.InfoContext(ctx, "lifecycle event",
			"type", ev.EventType(), "envelopeId", ev.AggregateID())
	}
	return nil
}

// MemoryPublisher records events for assertions in tests.
type MemoryPublisher struct {
	mu     sync.Mutex
	events []lifecycle.Event
}

// NewMemoryPublisher builds an empty recording publisher.
func NewMemoryPublisher() *MemoryPublisher {
	return &MemoryPublisher{}
}

func (p *MemoryPublisher) Publish(_ context.Context, events []lifecycle.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
	return nil
}

// Events returns a copy of everything published so far.
func (p *MemoryPublisher) Events() []lifecycle.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]lifecycle.Event(nil), p.events...)
}
