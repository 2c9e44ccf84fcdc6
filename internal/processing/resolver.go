package processing

import (
	"time"

	"github.com/rxtech-lab/argo-trading-halt/internal/types"
)

// IdentifierResolver maps a ticker, as traded on date, to its security identifier.
type IdentifierResolver interface {
	Resolve(ticker string, date time.Time) (types.SecurityIdentifier, error)
}

// TickerResolver uses the ticker itself as the identifier. It is meant for
// datasets without a security master.
type TickerResolver struct{}

// Resolve implements IdentifierResolver.
func (TickerResolver) Resolve(ticker string, _ time.Time) (types.SecurityIdentifier, error) {
	return types.ParseSecurityIdentifier(ticker), nil
}
