package price

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/selivandex/briefing-bot/pkg/models"
)

const coingeckoAPIURL = "https://api.coingecko.com/api/v3"

// CoinGeckoProvider implements Provider using the CoinGecko API (free, no
// API key needed)
type CoinGeckoProvider struct {
	client *http.Client
}

// NewCoinGeckoProvider creates new CoinGecko price provider
func NewCoinGeckoProvider(timeout time.Duration) *CoinGeckoProvider {
	return &CoinGeckoProvider{
		client: &http.Client{Timeout: timeout},
	}
}

func (cg *CoinGeckoProvider) GetName() string {
	return "CoinGecko"
}

// GetQuotes returns USD price and 24h change for the given symbols in one
// batch request
func (cg *CoinGeckoProvider) GetQuotes(ctx context.Context, symbols []string) (map[string]models.CryptoQuote, error) {
	coinIDs := make([]string, 0, len(symbols))
	idToSymbol := make(map[string]string, len(symbols))

	for _, symbol := range symbols {
		coinID := mapSymbolToCoinGeckoID(symbol)
		coinIDs = append(coinIDs, coinID)
		idToSymbol[coinID] = symbol
	}

	url := fmt.Sprintf("%s/simple/price?ids=%s&vs_currencies=usd&include_24hr_change=true",
		coingeckoAPIURL, strings.Join(coinIDs, ","))

	req, err := http.NewRequestWithContext(ctx, "GET", url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := cg.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API error %d: %s", resp.StatusCode, string(body))
	}

	var result map[string]struct {
		USD       float64 `json:"usd"`
		Change24h float64 `json:"usd_24h_change"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	quotes := make(map[string]models.CryptoQuote, len(result))
	for coinID, data := range result {
		symbol, ok := idToSymbol[coinID]
		if !ok {
			continue
		}
		quotes[symbol] = models.CryptoQuote{
			Symbol:    symbol,
			PriceUSD:  data.USD,
			Change24h: data.Change24h,
		}
	}

	return quotes, nil
}

// mapSymbolToCoinGeckoID maps ticker symbols to CoinGecko IDs
func mapSymbolToCoinGeckoID(symbol string) string {
	symbolMap := map[string]string{
		"BTC":  "bitcoin",
		"ETH":  "ethereum",
		"USDT": "tether",
		"USDC": "usd-coin",
		"BNB":  "binancecoin",
		"SOL":  "solana",
		"XRP":  "ripple",
		"ADA":  "cardano",
		"DOGE": "dogecoin",
	}

	if id, ok := symbolMap[symbol]; ok {
		return id
	}

	// Default: lowercase
	return strings.ToLower(symbol)
}
