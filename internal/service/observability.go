package service

import (
	"context"
	"io"
	"log/slog"

	"github.com/alexanderramin/turno/internal/events"
)

// StartChangeLogger subscribes to the bus and writes every change to w as
// structured log lines. It runs until ctx is cancelled. Logging is an
// observer only; dropped events are acceptable.
func StartChangeLogger(ctx context.Context, bus *events.Bus, w io.Writer) {
	if bus == nil || w == nil {
		return
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
	ch, cancel := bus.Subscribe()
	go func() {
		defer cancel()
		for {
			select {
			case <-ctx.Done():
				return
			case c, ok := <-ch:
				if !ok {
					return
				}
				logger.InfoContext(ctx, "entity_changed",
					"entity", string(c.Entity),
					"event", string(c.Event),
					"id", c.ID,
				)
			}
		}
	}()
}
