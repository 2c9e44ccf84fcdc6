package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rxtech-lab/argo-trading-halt/internal/datasource"
	"github.com/rxtech-lab/argo-trading-halt/internal/feed"
	"github.com/rxtech-lab/argo-trading-halt/internal/logger"
	"github.com/rxtech-lab/argo-trading-halt/internal/metrics"
	"github.com/rxtech-lab/argo-trading-halt/internal/types"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

func replayCommand() *cli.Command {
	return &cli.Command{
		Name:  "replay",
		Usage: "Print the halt flags a subscription would receive over a date range",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "data",
				Aliases: []string{"d"},
				Usage:   "Data folder containing equity/usa/halt",
				Value:   "data",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Optional YAML data source config; overrides --data",
			},
			&cli.StringSliceFlag{
				Name:     "symbol",
				Aliases:  []string{"s"},
				Usage:    "Ticker to subscribe, repeatable",
				Required: true,
			},
			&cli.TimestampFlag{
				Name:     "start",
				Usage:    "First day in `YYYY-MM-DD` format",
				Required: true,
				Config: cli.TimestampConfig{
					Layouts: []string{dateLayout},
				},
			},
			&cli.TimestampFlag{
				Name:     "end",
				Usage:    "Last day in `YYYY-MM-DD` format, inclusive",
				Required: true,
				Config: cli.TimestampConfig{
					Layouts: []string{dateLayout},
				},
			},
		},
		Action: replayAction,
	}
}

func replayAction(ctx context.Context, cmd *cli.Command) error {
	config := datasource.DefaultConfig(cmd.String("data"))

	if path := cmd.String("config"); path != "" {
		loaded, err := datasource.LoadConfig(path)
		if err != nil {
			return err
		}

		config = loaded
	}

	log, err := logger.NewLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck

	source, err := datasource.NewTradingHaltSource(config, log)
	if err != nil {
		return err
	}

	m, err := metrics.New(prometheus.NewRegistry())
	if err != nil {
		return fmt.Errorf("failed to create metrics: %w", err)
	}

	source.SetMetrics(m)

	store, err := feed.NewDuckDBStore(source.DataTimeZone(), log)
	if err != nil {
		return err
	}
	defer store.Close()

	start, end := replayWindow(cmd.Timestamp("start"), cmd.Timestamp("end"), source.DataTimeZone())
	haltFeed := feed.NewFeed(source, store, log)

	for _, ticker := range cmd.StringSlice("symbol") {
		ticker = strings.ToUpper(strings.TrimSpace(ticker))
		subscription := datasource.SubscriptionConfig{
			Symbol:     types.NewSymbol(ticker, ticker),
			Resolution: source.DefaultResolution(),
		}

		if _, err := haltFeed.Subscribe(ctx, subscription, start, end); err != nil {
			return fmt.Errorf("failed to subscribe %s: %w", ticker, err)
		}
	}

	out := cmd.Root().Writer
	count := 0

	err = haltFeed.Replay(ctx, start, end, func(event types.TradingHalt) error {
		count++
		_, err := fmt.Fprintf(out, "%s - %s\n", event.Time.Format(time.DateTime), event)

		return err
	})
	if err != nil {
		return err
	}

	log.Info("Replay completed",
		zap.Time("start", start),
		zap.Time("end", end),
		zap.Int("events", count),
	)

	return nil
}

// replayWindow turns the inclusive day range into exchange-local bounds.
func replayWindow(startDay time.Time, endDay time.Time, loc *time.Location) (time.Time, time.Time) {
	startYear, startMonth, startDate := startDay.Date()
	endYear, endMonth, endDate := endDay.Date()

	start := time.Date(startYear, startMonth, startDate, 0, 0, 0, 0, loc)
	end := time.Date(endYear, endMonth, endDate+1, 0, 0, 0, 0, loc).Add(-time.Nanosecond)

	return start, end
}
