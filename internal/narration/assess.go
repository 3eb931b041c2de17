package narration

import (
	"math"
	"sort"

	"github.com/selivandex/briefing-bot/internal/relevance"
	"github.com/selivandex/briefing-bot/pkg/models"
)

// Assessment holds every threshold outcome derived from one BriefingRun.
// Narration scripts and the HTML view model both read it, so the spoken
// and visual framing can never disagree.
type Assessment struct {
	// Portfolio / market tone
	MeanChange     float64
	MarketTone     Tone
	TopMover       string
	TopMoverChange float64

	// Stocks
	SectorAvg  float64
	SectorTone Tone

	// Crypto
	BTCBand     Band
	BTCChange   float64
	ETHChange   float64
	BTCPrice    float64
	Correlation Correlation

	// Weather
	TempBand      Band
	WindBand      Band
	ForecastTrend Trend

	// News
	Tense            bool
	TopNewsRelevance int
	NewsTeaser       bool
}

// Assess computes every derived classification for the run. It is total:
// missing quotes, empty news, or an absent forecast produce the neutral
// defaults rather than an error.
func Assess(run *models.BriefingRun, rules Ruleset) Assessment {
	a := Assessment{
		MarketTone:    ToneMixed,
		SectorTone:    ToneMixed,
		BTCBand:       BandQuiet,
		Correlation:   CorrLockstep,
		ForecastTrend: TrendUnknown,
	}

	a.assessHoldings(run, rules)
	a.assessSector(run, rules)
	a.assessCrypto(run, rules)
	a.assessWeather(run, rules)
	a.assessNews(run, rules)

	return a
}

func (a *Assessment) assessHoldings(run *models.BriefingRun, rules Ruleset) {
	// Symbols are walked in sorted order so a tie in magnitude resolves
	// to the same mover on every run of the same snapshot.
	symbols := make([]string, 0, len(run.Portfolio.Stocks))
	for sym := range run.Portfolio.Stocks {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)

	sum := 0.0
	for _, symbol := range symbols {
		change := run.StockQuoteFor(symbol).ChangePct
		sum += change

		if a.TopMover == "" || math.Abs(change) > math.Abs(a.TopMoverChange) {
			a.TopMover = symbol
			a.TopMoverChange = change
		}
	}

	if len(symbols) == 0 {
		return
	}

	a.MeanChange = sum / float64(len(symbols))
	switch {
	case a.MeanChange <= rules.RedMeanPct:
		a.MarketTone = ToneRed
	case a.MeanChange >= rules.GreenMeanPct:
		a.MarketTone = ToneGreen
	default:
		a.MarketTone = ToneMixed
	}
}

func (a *Assessment) assessSector(run *models.BriefingRun, rules Ruleset) {
	count := 0
	sum := 0.0
	for _, symbol := range rules.TechWatchlist {
		if q, ok := run.Stocks[symbol]; ok {
			sum += q.ChangePct
			count++
		}
	}
	if count == 0 {
		return
	}

	a.SectorAvg = sum / float64(count)
	switch {
	case a.SectorAvg <= -rules.SectorMovePct:
		a.SectorTone = ToneRed
	case a.SectorAvg >= rules.SectorMovePct:
		a.SectorTone = ToneGreen
	default:
		a.SectorTone = ToneMixed
	}
}

func (a *Assessment) assessCrypto(run *models.BriefingRun, rules Ruleset) {
	btc := run.CryptoQuoteFor("BTC")
	eth := run.CryptoQuoteFor("ETH")

	a.BTCChange = btc.Change24h
	a.ETHChange = eth.Change24h
	a.BTCPrice = btc.PriceUSD

	switch {
	case btc.Change24h <= rules.BTCSharpDropPct:
		a.BTCBand = BandSharpDrop
	case btc.Change24h <= rules.BTCPullbackPct:
		a.BTCBand = BandPullback
	case btc.Change24h >= rules.BTCRallyPct:
		a.BTCBand = BandRally
	default:
		a.BTCBand = BandQuiet
	}

	spread := btc.Change24h - eth.Change24h
	switch {
	case math.Abs(spread) <= rules.CorrelationSpread:
		a.Correlation = CorrLockstep
	case spread > 0:
		a.Correlation = CorrETHLagging
	default:
		a.Correlation = CorrETHLeading
	}
}

func (a *Assessment) assessWeather(run *models.BriefingRun, rules Ruleset) {
	obs := run.Weather

	// A degraded fetch leaves Observed false; placeholder zeros must not
	// be banded as a cold, calm day.
	if !obs.Observed {
		return
	}

	switch {
	case obs.Temperature < rules.TempMildFrom:
		a.TempBand = BandCool
	case obs.Temperature < rules.TempWarmFrom:
		a.TempBand = BandMild
	case obs.Temperature < rules.TempHotFrom:
		a.TempBand = BandWarm
	case obs.Temperature < rules.TempScorchingFrom:
		a.TempBand = BandHot
	default:
		a.TempBand = BandScorching
	}

	switch {
	case obs.WindSpeed > rules.WindStrong:
		a.WindBand = BandWindy
	case obs.WindSpeed > rules.WindBreeze:
		a.WindBand = BandBreezy
	default:
		a.WindBand = BandCalm
	}

	// Trend: near-term daily highs against the rest of the forecast.
	lead := rules.TrendLeadDays
	if len(obs.Forecast) <= lead {
		return
	}

	var near, later float64
	for i, day := range obs.Forecast {
		if i < lead {
			near += day.High
		} else {
			later += day.High
		}
	}
	near /= float64(lead)
	later /= float64(len(obs.Forecast) - lead)

	switch {
	case later-near >= rules.TrendDeltaDeg:
		a.ForecastTrend = TrendWarming
	case near-later >= rules.TrendDeltaDeg:
		a.ForecastTrend = TrendCooling
	default:
		a.ForecastTrend = TrendSteady
	}
}

func (a *Assessment) assessNews(run *models.BriefingRun, rules Ruleset) {
	// The tension scan covers the same headline window the script reads
	// aloud, so the opening can never react to an item it won't mention.
	spoken := run.News
	if len(spoken) > rules.HeadlineCount {
		spoken = spoken[:rules.HeadlineCount]
	}
	for _, item := range spoken {
		if relevance.Matches(item.Title, rules.TensionKeywords...) {
			a.Tense = true
		}
	}

	for _, item := range run.News {
		if item.Relevance > a.TopNewsRelevance {
			a.TopNewsRelevance = item.Relevance
		}
	}
	a.NewsTeaser = len(run.News) > 0 && a.TopNewsRelevance >= rules.TeaserRelevance
}
