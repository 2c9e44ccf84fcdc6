// Package feed windows expanded halt events over a replay period, the way a
// host data feed hands them to an algorithm.
package feed

import (
	"context"
	"time"

	"github.com/rxtech-lab/argo-trading-halt/internal/datasource"
	"github.com/rxtech-lab/argo-trading-halt/internal/logger"
	"github.com/rxtech-lab/argo-trading-halt/internal/types"
	"github.com/rxtech-lab/argo-trading-halt/pkg/errors"
	"go.uber.org/zap"
)

// Feed loads halt collections through a data source and stores their events.
type Feed struct {
	source datasource.DataSource
	store  EventStore
	logger *logger.Logger
}

// NewFeed creates a feed over source, storing events in store.
func NewFeed(source datasource.DataSource, store EventStore, log *logger.Logger) *Feed {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Feed{
		source: source,
		store:  store,
		logger: log,
	}
}

// Subscribe loads the halts of one symbol and stores the events of every halt
// that overlaps [start, end]. Subscribing twice stores nothing new. It returns
// the number of newly stored events.
func (f *Feed) Subscribe(ctx context.Context, config datasource.SubscriptionConfig, start time.Time, end time.Time) (int, error) {
	if end.Before(start) {
		return 0, errors.Newf(errors.ErrCodeInvalidInterval,
			"window end %s precedes window start %s", end.Format(time.DateTime), start.Format(time.DateTime))
	}

	if config.Resolution == "" {
		config.Resolution = f.source.DefaultResolution()
	}

	if !config.Resolution.IsValid() {
		return 0, errors.Newf(errors.ErrCodeInvalidParameter, "unsupported resolution %q", config.Resolution)
	}

	collections, err := f.source.Load(ctx, config, start)
	if err != nil {
		return 0, err
	}

	var events []types.TradingHalt

	skipped := 0

	for _, collection := range collections {
		if !collection.Overlaps(start, end) {
			skipped++

			continue
		}

		events = append(events, collection.Data...)
	}

	inserted, err := f.store.Insert(ctx, events)
	if err != nil {
		return 0, err
	}

	f.logger.Info("Subscribed to trading halts",
		zap.String("symbol", config.Symbol.String()),
		zap.Int("halts", len(collections)),
		zap.Int("skipped", skipped),
		zap.Int("events", inserted),
	)

	return inserted, nil
}

// Window returns the stored events emitted in [start, end], optionally limited to symbols.
func (f *Feed) Window(ctx context.Context, start time.Time, end time.Time, symbols ...types.Symbol) ([]types.TradingHalt, error) {
	if end.Before(start) {
		return nil, errors.Newf(errors.ErrCodeInvalidInterval,
			"window end %s precedes window start %s", end.Format(time.DateTime), start.Format(time.DateTime))
	}

	return f.store.Range(ctx, start, end, symbols...)
}

// Replay calls handle for every event in [start, end] in emission order and stops
// at the first error.
func (f *Feed) Replay(ctx context.Context, start time.Time, end time.Time, handle func(types.TradingHalt) error) error {
	events, err := f.Window(ctx, start, end)
	if err != nil {
		return err
	}

	for _, event := range events {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := handle(event); err != nil {
			return err
		}
	}

	return nil
}
