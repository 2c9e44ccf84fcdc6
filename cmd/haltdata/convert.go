package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rxtech-lab/argo-trading-halt/internal/datasource"
	"github.com/rxtech-lab/argo-trading-halt/internal/logger"
	"github.com/rxtech-lab/argo-trading-halt/internal/processing"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func convertCommand() *cli.Command {
	return &cli.Command{
		Name:  "convert",
		Usage: "Convert a saved NYSE historical halt export into per-symbol halt files",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "input",
				Aliases:  []string{"i"},
				Usage:    "Path to the NYSE export CSV",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "data",
				Aliases: []string{"d"},
				Usage:   "Data folder receiving equity/usa/halt",
				Value:   "data",
			},
			&cli.StringFlag{
				Name:  "time-zone",
				Usage: "IANA timezone of the export timestamps",
				Value: datasource.DefaultTimeZone,
			},
			&cli.BoolFlag{
				Name:  "quiet",
				Usage: "Hide the progress bar",
			},
		},
		Action: convertAction,
	}
}

func convertAction(ctx context.Context, cmd *cli.Command) error {
	input := cmd.String("input")
	dataFolder := cmd.String("data")

	config := datasource.DefaultConfig(dataFolder)
	config.TimeZone = cmd.String("time-zone")

	loc, err := config.Location()
	if err != nil {
		return err
	}

	log, err := logger.NewLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck

	file, err := os.Open(input)
	if err != nil {
		return fmt.Errorf("failed to open export: %w", err)
	}
	defer file.Close()

	converter := processing.NewConverter(processing.TickerResolver{}, loc, log)
	if !cmd.Bool("quiet") {
		converter.SetProgress(progressbar.NewOptions(-1,
			progressbar.OptionSetDescription("Converting halts"),
			progressbar.OptionShowCount(),
		))
	}

	lines, stats, err := converter.Convert(ctx, file)
	if err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}

	if err := converter.WriteHaltFiles(dataFolder, lines); err != nil {
		return fmt.Errorf("failed to write halt files: %w", err)
	}

	log.Info("Conversion completed",
		zap.String("input", input),
		zap.String("data", dataFolder),
		zap.Int("records", stats.Records),
		zap.Int("skipped", stats.Skipped),
		zap.Int("symbols", stats.Symbols),
	)

	return nil
}
