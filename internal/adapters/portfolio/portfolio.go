package portfolio

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/selivandex/briefing-bot/pkg/models"
)

// Load reads the portfolio configuration file. The file is treated as
// read-only external configuration; the generator never writes it back.
func Load(path string) (models.Portfolio, error) {
	var p models.Portfolio

	data, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("failed to read portfolio file: %w", err)
	}

	if err := json.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("failed to parse portfolio file: %w", err)
	}

	if p.Stocks == nil {
		p.Stocks = map[string]models.Holding{}
	}
	if p.Crypto == nil {
		p.Crypto = map[string]models.CryptoHolding{}
	}

	return p, nil
}

// Symbols returns the stock tickers held, in no particular order
func Symbols(p models.Portfolio) []string {
	symbols := make([]string, 0, len(p.Stocks))
	for sym := range p.Stocks {
		symbols = append(symbols, sym)
	}
	return symbols
}
