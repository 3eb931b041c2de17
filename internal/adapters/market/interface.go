package market

import (
	"context"

	"github.com/selivandex/briefing-bot/pkg/models"
)

// Provider supplies stock quotes for the run
type Provider interface {
	// GetName returns provider name
	GetName() string

	// GetQuotes fetches quotes for the given tickers. A ticker that fails
	// to fetch is present in the result zero-valued, so downstream code
	// can always index by symbol.
	GetQuotes(ctx context.Context, symbols []string) map[string]models.StockQuote
}
