package feed

import (
	"context"
	"time"

	"github.com/rxtech-lab/argo-trading-halt/internal/types"
)

// EventStore keeps expanded halt events for windowed replay.
type EventStore interface {
	// Insert stores events that are not stored yet and returns how many were new.
	Insert(ctx context.Context, events []types.TradingHalt) (int, error)
	// Range returns events emitted in [start, end], ordered by time then insertion.
	// When symbols are given only their events are returned.
	Range(ctx context.Context, start time.Time, end time.Time, symbols ...types.Symbol) ([]types.TradingHalt, error)
	// Count returns the number of stored events.
	Count(ctx context.Context) (int, error)
	// Close releases the store.
	Close() error
}
