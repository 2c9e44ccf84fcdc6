package datasource

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/rxtech-lab/argo-trading-halt/internal/types"
)

// TransportMedium tells the host how to fetch a subscription source.
type TransportMedium string

const (
	TransportLocalFile TransportMedium = "local_file"
)

// FileFormat tells the host how to interpret what Reader returns.
type FileFormat string

const (
	// FileFormatUnfoldingCollection yields a collection per line that the host unfolds into its points
	FileFormatUnfoldingCollection FileFormat = "unfolding_collection"
)

// HaltFolder returns the folder holding the per-symbol halt files under dataFolder.
func HaltFolder(dataFolder string) string {
	return filepath.Join(dataFolder, "equity", "usa", "halt")
}

// HaltFilePath returns the halt file of ticker under dataFolder.
func HaltFilePath(dataFolder string, ticker string) string {
	return filepath.Join(HaltFolder(dataFolder), strings.ToLower(ticker)+".csv")
}

// SubscriptionDataSource locates the data of one subscription.
type SubscriptionDataSource struct {
	Source    string
	Transport TransportMedium
	Format    FileFormat
}

// SubscriptionConfig is the part of the host subscription the adapter reads.
type SubscriptionConfig struct {
	Symbol     types.Symbol
	Resolution types.Resolution
}

// FileProvider opens the files named by GetSource. A missing file must be
// reported with an error matching fs.ErrNotExist.
type FileProvider interface {
	Open(path string) (io.ReadCloser, error)
}

// DataSource is the contract between a custom data type and the host data-feed pipeline.
type DataSource interface {
	// GetSource returns where the data for the subscription on date lives
	GetSource(config SubscriptionConfig, date time.Time, isLiveMode bool) SubscriptionDataSource
	// Reader turns one line of the source into a data point or a collection of points
	Reader(config SubscriptionConfig, line string, date time.Time, isLiveMode bool) (types.BaseData, error)
	// Load reads every line of the subscription source. A missing source yields no data.
	Load(ctx context.Context, config SubscriptionConfig, date time.Time) ([]*types.HaltCollection, error)
	// RequiresMapping reports whether renames and delistings must be applied upstream
	RequiresMapping() bool
	// IsSparseData reports whether missing files are expected and not logged as errors
	IsSparseData() bool
	// DefaultResolution is the resolution used when the subscription does not ask for one
	DefaultResolution() types.Resolution
	// SupportedResolutions lists the resolutions a subscription may use
	SupportedResolutions() []types.Resolution
	// DataTimeZone is the timezone the data timestamps are expressed in
	DataTimeZone() *time.Location
}
