// Package processing converts the NYSE historical trade-halt export into the
// per-symbol halt files read by the data source.
package processing

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/rxtech-lab/argo-trading-halt/internal/datasource"
	"github.com/rxtech-lab/argo-trading-halt/internal/halt"
	"github.com/rxtech-lab/argo-trading-halt/internal/logger"
	"github.com/rxtech-lab/argo-trading-halt/internal/types"
	"github.com/rxtech-lab/argo-trading-halt/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
)

// ExportDateTimeLayout is the layout of the export's date and time columns joined by a space.
const ExportDateTimeLayout = "01/02/2006 15:04:05"

// minExportFields is halt date, halt time, symbol, reason, resume date and resume time.
const minExportFields = 6

var exportReasons = map[string]types.HaltReason{
	"Corporate action":      types.HaltReasonCorporateAction,
	"LULD pause":            types.HaltReasonLULDPause,
	"Merger effective":      types.HaltReasonMergerEffective,
	"New security offering": types.HaltReasonNewSecurityOffering,
	"News released":         types.HaltReasonNewsReleased,
	"News dissemination":    types.HaltReasonNewsDissemination,
	"News pending":          types.HaltReasonNewsPending,
	"Regulatory concern":    types.HaltReasonRegulatoryConcern,
}

// ReasonFromText maps the export's reason text to a HaltReason.
func ReasonFromText(text string) (types.HaltReason, bool) {
	reason, ok := exportReasons[strings.TrimSpace(text)]

	return reason, ok
}

// NormalizeSymbol rewrites an export ticker to the data set convention:
// preferred shares lose their space ("USB PRM" -> "USBPRM") and the remaining
// spaces become dots ("STR WS" -> "STR.WS").
func NormalizeSymbol(raw string) string {
	symbol := strings.ReplaceAll(strings.TrimSpace(raw), " PR", "PR")

	return strings.ReplaceAll(symbol, " ", ".")
}

// Stats summarises one conversion.
type Stats struct {
	Records int
	Skipped int
	Symbols int
}

// Converter turns export rows into halt file lines grouped by lowercase ticker.
type Converter struct {
	resolver IdentifierResolver
	location *time.Location
	logger   *logger.Logger
	progress *progressbar.ProgressBar
}

// NewConverter creates a converter. A nil resolver uses TickerResolver, a nil
// location is UTC and a nil logger discards logs.
func NewConverter(resolver IdentifierResolver, loc *time.Location, log *logger.Logger) *Converter {
	if resolver == nil {
		resolver = TickerResolver{}
	}

	if loc == nil {
		loc = time.UTC
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Converter{
		resolver: resolver,
		location: loc,
		logger:   log,
	}
}

// SetProgress attaches a progress bar advanced once per export row.
func (c *Converter) SetProgress(bar *progressbar.ProgressBar) {
	c.progress = bar
}

// Convert reads the export from r, skipping the header row. Rows with an
// unknown reason are skipped with a warning; malformed rows fail the conversion.
func (c *Converter) Convert(ctx context.Context, r io.Reader) (map[string][]string, Stats, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, Stats{}, errors.Wrap(errors.ErrCodeParseError, "failed to read halt export", err)
	}

	if len(records) > 0 {
		records = records[1:]
	}

	if c.progress != nil {
		c.progress.ChangeMax(len(records))
	}

	lines := make(map[string][]string)
	stats := Stats{}

	for i, record := range records {
		if err := ctx.Err(); err != nil {
			return nil, Stats{}, err
		}

		c.advance()

		if isBlank(record) {
			continue
		}

		// Row 1 is the header.
		rowNumber := i + 2

		ticker, line, err := c.convertRecord(record)
		if err != nil {
			if errors.HasCode(err, errors.ErrCodeInvalidReason) {
				stats.Skipped++
				c.logger.Warn("Skipping halt with unknown reason",
					zap.Int("row", rowNumber),
					zap.Error(err),
				)

				continue
			}

			return nil, Stats{}, errors.NewLineError("export", rowNumber, err)
		}

		stats.Records++
		lines[ticker] = append(lines[ticker], line)
	}

	stats.Symbols = len(lines)

	c.finish()

	return lines, stats, nil
}

func (c *Converter) convertRecord(record []string) (string, string, error) {
	if len(record) < minExportFields {
		return "", "", errors.Newf(errors.ErrCodeInvalidFieldCount,
			"expected at least %d fields, got %d", minExportFields, len(record))
	}

	start, err := c.parseExportTime(record[0], record[1])
	if err != nil {
		return "", "", err
	}

	resumeDate := strings.TrimSpace(record[len(record)-2])
	resumeTime := strings.TrimSpace(record[len(record)-1])

	end := ""
	if resumeDate != "" || resumeTime != "" {
		endTime, err := c.parseExportTime(resumeDate, resumeTime)
		if err != nil {
			return "", "", err
		}

		end = halt.FormatTimestamp(endTime)
	}

	reasonText := record[len(record)-3]

	reason, ok := ReasonFromText(reasonText)
	if !ok {
		return "", "", errors.Newf(errors.ErrCodeInvalidReason, "unknown halt reason %q", reasonText)
	}

	ticker := NormalizeSymbol(record[2])
	if ticker == "" {
		return "", "", errors.New(errors.ErrCodeMissingParameter, "empty symbol")
	}

	sid, err := c.resolver.Resolve(ticker, start)
	if err != nil {
		return "", "", errors.Wrapf(errors.ErrCodeDataNotFound, err, "failed to resolve identifier of %s", ticker)
	}

	line := strings.Join([]string{
		string(sid),
		ticker,
		reason.Code(),
		halt.FormatTimestamp(start),
		end,
	}, ",")

	return strings.ToLower(ticker), line, nil
}

func (c *Converter) parseExportTime(date string, clock string) (time.Time, error) {
	raw := strings.TrimSpace(date) + " " + strings.TrimSpace(clock)

	t, err := time.ParseInLocation(ExportDateTimeLayout, raw, c.location)
	if err != nil {
		return time.Time{}, errors.Wrapf(errors.ErrCodeInvalidTimestamp, err, "invalid export timestamp %q", raw)
	}

	return t, nil
}

func (c *Converter) advance() {
	if c.progress != nil {
		_ = c.progress.Add(1)
	}
}

func (c *Converter) finish() {
	if c.progress != nil {
		_ = c.progress.Finish()
	}
}

func isBlank(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}

	return true
}

// WriteHaltFiles merges lines into the per-symbol files under dataFolder.
// Existing lines are kept and duplicates collapse. Lines are ordered by halt start.
func (c *Converter) WriteHaltFiles(dataFolder string, lines map[string][]string) error {
	dir := datasource.HaltFolder(dataFolder)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(errors.ErrCodeWriteFailed, err, "failed to create %s", dir)
	}

	for ticker, newLines := range lines {
		path := datasource.HaltFilePath(dataFolder, ticker)

		existing, err := readLines(path)
		if err != nil {
			return err
		}

		merged := mergeLines(existing, newLines)

		if err := os.WriteFile(path, []byte(strings.Join(merged, "\n")+"\n"), 0644); err != nil {
			return errors.Wrapf(errors.ErrCodeWriteFailed, err, "failed to write %s", path)
		}

		c.logger.Debug("Wrote halt file",
			zap.String("path", path),
			zap.Int("existing", len(existing)),
			zap.Int("lines", len(merged)),
		)
	}

	return nil
}

func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}

		return nil, errors.Wrapf(errors.ErrCodeDataSourceUnavailable, err, "failed to read %s", path)
	}

	return strings.Split(string(data), "\n"), nil
}

func mergeLines(existing []string, added []string) []string {
	set := make(map[string]struct{}, len(existing)+len(added))

	for _, line := range append(existing, added...) {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		set[line] = struct{}{}
	}

	merged := make([]string, 0, len(set))
	for line := range set {
		merged = append(merged, line)
	}

	// Timestamps sort lexically, so lines end up in halt start order.
	sort.Slice(merged, func(i, j int) bool {
		a, b := startField(merged[i]), startField(merged[j])
		if a != b {
			return a < b
		}

		return merged[i] < merged[j]
	})

	return merged
}

func startField(line string) string {
	fields := strings.Split(line, ",")
	if len(fields) < halt.FieldCount {
		return ""
	}

	return fields[3]
}
