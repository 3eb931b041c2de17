package briefing

import (
	"github.com/shopspring/decimal"

	"github.com/selivandex/briefing-bot/pkg/models"
)

// Valuation holds the portfolio totals for one run
type Valuation struct {
	StockTotal  decimal.Decimal
	CryptoTotal decimal.Decimal
	Cash        decimal.Decimal
}

// Total returns stocks plus cash plus crypto
func (v Valuation) Total() decimal.Decimal {
	return v.StockTotal.Add(v.Cash).Add(v.CryptoTotal)
}

// StocksWithCash returns the brokerage side of the total
func (v Valuation) StocksWithCash() decimal.Decimal {
	return v.StockTotal.Add(v.Cash)
}

// Valuate prices every position against the run's quotes. Positions
// whose quote failed contribute zero.
func Valuate(run *models.BriefingRun) Valuation {
	v := Valuation{
		StockTotal:  decimal.Zero,
		CryptoTotal: decimal.Zero,
		Cash:        run.Portfolio.CashUSD,
	}

	for symbol, holding := range run.Portfolio.Stocks {
		price := models.DecimalFromFloat(run.StockQuoteFor(symbol).Price)
		v.StockTotal = v.StockTotal.Add(price.Mul(holding.Shares))
	}

	for symbol, holding := range run.Portfolio.Crypto {
		price := models.DecimalFromFloat(run.CryptoQuoteFor(symbol).PriceUSD)
		v.CryptoTotal = v.CryptoTotal.Add(price.Mul(holding.Amount))
	}

	return v
}
