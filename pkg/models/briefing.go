package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Holding represents one stock position in the portfolio
type Holding struct {
	Shares decimal.Decimal `json:"shares"`
}

// CryptoHolding represents one crypto position in the portfolio
type CryptoHolding struct {
	Amount decimal.Decimal `json:"amount"`
}

// Portfolio is the read-only user configuration: positions and cash.
// It is loaded once per run and never mutated.
type Portfolio struct {
	Stocks  map[string]Holding       `json:"stocks"`
	Crypto  map[string]CryptoHolding `json:"crypto"`
	CashUSD decimal.Decimal          `json:"stocksCashUSD"`
}

// StockQuote represents one stock snapshot for the current run
type StockQuote struct {
	Symbol    string    `json:"symbol"`
	Price     float64   `json:"price"`
	PrevClose float64   `json:"prev_close"`
	ChangePct float64   `json:"change_pct"`
	History   []float64 `json:"history,omitempty"` // recent closes, oldest first
}

// CryptoQuote represents one crypto snapshot for the current run
type CryptoQuote struct {
	Symbol    string  `json:"symbol"`
	PriceUSD  float64 `json:"price_usd"`
	Change24h float64 `json:"change_24h"`
}

// DailyForecast holds one forecast day
type DailyForecast struct {
	High float64 `json:"high"`
	Low  float64 `json:"low"`
}

// WeatherObservation holds current conditions plus the multi-day outlook
// for one monitored location. Code is the WMO weather interpretation code.
// Observed is false when the fetch failed and the values are placeholders,
// which keeps a zero-degree reading distinguishable from no reading.
type WeatherObservation struct {
	Location    string          `json:"location"`
	Observed    bool            `json:"observed"`
	Temperature float64         `json:"temperature"`
	WindSpeed   float64         `json:"wind_speed"`
	Code        int             `json:"code"`
	Forecast    []DailyForecast `json:"forecast,omitempty"`
}

// NewsItem represents single news item. Relevance is the domain keyword
// match count computed by the aggregator.
type NewsItem struct {
	PublishedAt time.Time `json:"published_at"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Source      string    `json:"source"`
	URL         string    `json:"url"`
	Relevance   int       `json:"relevance"`
}

// BriefingRun is the root aggregate for one invocation: everything fetched
// or derived, serialized to data.json for audit. Narration is a pure
// function of this snapshot.
type BriefingRun struct {
	GeneratedAt time.Time              `json:"generated"`
	RunID       string                 `json:"run_id"`
	Portfolio   Portfolio              `json:"portfolio"`
	Stocks      map[string]StockQuote  `json:"stocks"`
	Crypto      map[string]CryptoQuote `json:"crypto"`
	Weather     WeatherObservation     `json:"weather"`
	News        []NewsItem             `json:"news"`
}

// StockQuoteFor returns the quote for a symbol, zero-valued when the fetch
// failed or the symbol was never quoted.
func (r *BriefingRun) StockQuoteFor(symbol string) StockQuote {
	if q, ok := r.Stocks[symbol]; ok {
		return q
	}
	return StockQuote{Symbol: symbol}
}

// CryptoQuoteFor returns the quote for a crypto symbol, zero-valued when
// absent.
func (r *BriefingRun) CryptoQuoteFor(symbol string) CryptoQuote {
	if q, ok := r.Crypto[symbol]; ok {
		return q
	}
	return CryptoQuote{Symbol: symbol}
}
