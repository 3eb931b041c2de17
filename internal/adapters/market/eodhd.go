package market

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/selivandex/briefing-bot/pkg/logger"
	"github.com/selivandex/briefing-bot/pkg/models"
)

const (
	eodhdAPIURL = "https://eodhd.com/api"
	historyDays = 5
)

// EODHDProvider fetches stock quotes from EODHD.com. Symbols without an
// exchange suffix are assumed to be US listings.
type EODHDProvider struct {
	client *http.Client
	apiKey string
}

// NewEODHDProvider creates new EODHD stock quote provider
func NewEODHDProvider(apiKey string, timeout time.Duration) *EODHDProvider {
	return &EODHDProvider{
		client: &http.Client{Timeout: timeout},
		apiKey: apiKey,
	}
}

func (p *EODHDProvider) GetName() string {
	return "eodhd"
}

// GetQuotes fetches the real-time quote and short close history for each
// ticker. Per-ticker failures degrade to a zero-valued quote; the run is
// never aborted by a bad symbol.
func (p *EODHDProvider) GetQuotes(ctx context.Context, symbols []string) map[string]models.StockQuote {
	quotes := make(map[string]models.StockQuote, len(symbols))

	for _, symbol := range symbols {
		quote, err := p.fetchQuote(ctx, symbol)
		if err != nil {
			logger.Warn("stock quote fetch failed",
				zap.String("symbol", symbol),
				zap.Error(err),
			)
			quotes[symbol] = models.StockQuote{Symbol: symbol}
			continue
		}

		history, err := p.fetchHistory(ctx, symbol)
		if err != nil {
			// History is decoration; the quote still stands without it.
			logger.Debug("stock history fetch failed",
				zap.String("symbol", symbol),
				zap.Error(err),
			)
		}
		quote.History = history

		quotes[symbol] = quote
	}

	return quotes
}

func (p *EODHDProvider) fetchQuote(ctx context.Context, symbol string) (models.StockQuote, error) {
	var quote models.StockQuote

	if p.apiKey == "" {
		return quote, fmt.Errorf("no EODHD API key configured")
	}

	addr := fmt.Sprintf("%s/real-time/%s.US?fmt=json&api_token=%s",
		eodhdAPIURL, url.PathEscape(symbol), url.QueryEscape(p.apiKey))

	var result struct {
		Code          string  `json:"code"`
		Close         float64 `json:"close"`
		PreviousClose float64 `json:"previousClose"`
		ChangePct     float64 `json:"change_p"`
	}
	if err := p.getJSON(ctx, addr, &result); err != nil {
		return quote, err
	}

	quote = models.StockQuote{
		Symbol:    symbol,
		Price:     result.Close,
		PrevClose: result.PreviousClose,
		ChangePct: result.ChangePct,
	}

	// EODHD omits change_p outside trading hours for some tickers.
	if quote.ChangePct == 0 && quote.PrevClose != 0 && quote.Price != quote.PrevClose {
		quote.ChangePct = (quote.Price - quote.PrevClose) / quote.PrevClose * 100
	}

	return quote, nil
}

func (p *EODHDProvider) fetchHistory(ctx context.Context, symbol string) ([]float64, error) {
	addr := fmt.Sprintf("%s/eod/%s.US?fmt=json&order=d&limit=%d&api_token=%s",
		eodhdAPIURL, url.PathEscape(symbol), historyDays, url.QueryEscape(p.apiKey))

	var rows []struct {
		Date  string  `json:"date"`
		Close float64 `json:"close"`
	}
	if err := p.getJSON(ctx, addr, &rows); err != nil {
		return nil, err
	}

	// Rows arrive newest first; the sparkline wants oldest first.
	history := make([]float64, 0, len(rows))
	for i := len(rows) - 1; i >= 0; i-- {
		history = append(history, rows[i].Close)
	}
	return history, nil
}

func (p *EODHDProvider) getJSON(ctx context.Context, addr string, data interface{}) error {
	req, err := http.NewRequestWithContext(ctx, "GET", addr, http.NoBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API error %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(data); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
