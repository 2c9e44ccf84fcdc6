package datasource

import (
	"bufio"
	"context"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	// Bundled zone database so America/New_York resolves on hosts without one.
	_ "time/tzdata"

	"github.com/rxtech-lab/argo-trading-halt/internal/halt"
	"github.com/rxtech-lab/argo-trading-halt/internal/logger"
	"github.com/rxtech-lab/argo-trading-halt/internal/metrics"
	"github.com/rxtech-lab/argo-trading-halt/internal/types"
	"github.com/rxtech-lab/argo-trading-halt/pkg/errors"
	"go.uber.org/zap"
)

// LocalFileProvider opens files from the local filesystem.
type LocalFileProvider struct{}

// Open implements FileProvider.
func (LocalFileProvider) Open(path string) (io.ReadCloser, error) {
	return os.Open(path)
}

// TradingHaltSource reads per-symbol halt files and expands every line into
// day-segmented start/end flags.
type TradingHaltSource struct {
	config   SourceConfig
	location *time.Location
	session  halt.Session
	logger   *logger.Logger
	files    FileProvider
	metrics  *metrics.Metrics
	clock    func() time.Time
}

// NewTradingHaltSource validates config and builds the data source.
// A nil logger discards all logs.
func NewTradingHaltSource(config SourceConfig, log *logger.Logger) (*TradingHaltSource, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	location, err := config.Location()
	if err != nil {
		return nil, err
	}

	session, err := config.Session()
	if err != nil {
		return nil, err
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	return &TradingHaltSource{
		config:   config,
		location: location,
		session:  session,
		logger:   log,
		files:    LocalFileProvider{},
		metrics:  nil,
		clock:    time.Now,
	}, nil
}

// SetFileProvider replaces the provider used by Load.
func (s *TradingHaltSource) SetFileProvider(files FileProvider) {
	s.files = files
}

// SetMetrics attaches metrics; nil disables them.
func (s *TradingHaltSource) SetMetrics(m *metrics.Metrics) {
	s.metrics = m
}

// SetClock replaces the clock used as the end of ongoing halts.
func (s *TradingHaltSource) SetClock(clock func() time.Time) {
	s.clock = clock
}

// Session returns the market session used to segment halts.
func (s *TradingHaltSource) Session() halt.Session {
	return s.session
}

// GetSource implements DataSource.
func (s *TradingHaltSource) GetSource(config SubscriptionConfig, _ time.Time, _ bool) SubscriptionDataSource {
	return SubscriptionDataSource{
		Source:    HaltFilePath(s.config.DataFolder, config.Symbol.Value),
		Transport: TransportLocalFile,
		Format:    FileFormatUnfoldingCollection,
	}
}

// Reader implements DataSource. The symbol is taken from the line, which already
// carries the mapped security identifier.
func (s *TradingHaltSource) Reader(_ SubscriptionConfig, line string, _ time.Time, _ bool) (types.BaseData, error) {
	collection, err := s.read(line)
	if err != nil {
		return nil, err
	}

	return collection, nil
}

func (s *TradingHaltSource) read(line string) (*types.HaltCollection, error) {
	record, err := halt.ParseLine(line, s.location)
	if err != nil {
		s.metrics.ObserveLine(metrics.StatusFailed)

		return nil, err
	}

	end := record.EndOr(s.clock().In(s.location))

	events, err := halt.Expand(record.Symbol, record.Reason, record.Start, end, s.session)
	if err != nil {
		s.metrics.ObserveLine(metrics.StatusFailed)

		return nil, err
	}

	s.metrics.ObserveLine(metrics.StatusParsed)
	s.metrics.ObserveExpansion(len(events) / 2)

	for _, event := range events {
		s.metrics.ObserveEvent(event.Flag.String())
	}

	return types.NewHaltCollection(record.Symbol, record.Start, end, events), nil
}

// Load implements DataSource.
func (s *TradingHaltSource) Load(ctx context.Context, config SubscriptionConfig, date time.Time) ([]*types.HaltCollection, error) {
	source := s.GetSource(config, date, false)

	file, err := s.files.Open(source.Source)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.metrics.ObserveMissingFile()
			s.logger.Debug("No halt data for symbol",
				zap.String("symbol", config.Symbol.String()),
				zap.String("path", source.Source),
			)

			return nil, nil
		}

		return nil, errors.Wrapf(errors.ErrCodeDataSourceUnavailable, err, "failed to open halt file %s", source.Source)
	}
	defer file.Close()

	var collections []*types.HaltCollection

	scanner := bufio.NewScanner(file)
	lineNumber := 0

	for scanner.Scan() {
		lineNumber++

		if err := ctx.Err(); err != nil {
			return nil, err
		}

		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		collection, err := s.read(line)
		if err != nil {
			s.logger.Error("Failed to read halt line",
				zap.String("path", source.Source),
				zap.Int("line", lineNumber),
				zap.Error(err),
			)

			return nil, errors.NewLineError(source.Source, lineNumber, err)
		}

		collections = append(collections, collection)
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(errors.ErrCodeDataSourceUnavailable, err, "failed to read halt file %s", source.Source)
	}

	s.metrics.ObserveFileLoaded()
	s.logger.Debug("Loaded halt file",
		zap.String("symbol", config.Symbol.String()),
		zap.String("path", source.Source),
		zap.Int("halts", len(collections)),
	)

	return collections, nil
}

// RequiresMapping implements DataSource.
func (s *TradingHaltSource) RequiresMapping() bool {
	return true
}

// IsSparseData implements DataSource.
func (s *TradingHaltSource) IsSparseData() bool {
	return true
}

// DefaultResolution implements DataSource.
func (s *TradingHaltSource) DefaultResolution() types.Resolution {
	return types.ResolutionSecond
}

// SupportedResolutions implements DataSource.
func (s *TradingHaltSource) SupportedResolutions() []types.Resolution {
	return types.AllResolutions
}

// DataTimeZone implements DataSource.
func (s *TradingHaltSource) DataTimeZone() *time.Location {
	return s.location
}
