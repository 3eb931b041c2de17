package price

import (
	"context"

	"github.com/selivandex/briefing-bot/pkg/models"
)

// Provider supplies crypto quotes for the run
type Provider interface {
	// GetName returns provider name
	GetName() string

	// GetQuotes returns USD price and 24h change for each symbol
	GetQuotes(ctx context.Context, symbols []string) (map[string]models.CryptoQuote, error)
}
