package version

// Version is the current version of the trading halt adapter.
// This value is set at build time using ldflags:
// -ldflags "-X github.com/rxtech-lab/argo-trading-halt/internal/version.Version=1.2.3"
// The value "main" indicates a development build.
var Version = "v1.0.0"

// MinHostVersion is the oldest host engine release whose data-feed pipeline
// understands unfolding collections.
const MinHostVersion = "v1.4.0"

// GetVersion returns the current version of the adapter.
func GetVersion() string {
	return Version
}
