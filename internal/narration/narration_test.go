package narration

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/selivandex/briefing-bot/pkg/models"
)

func testRun() *models.BriefingRun {
	return &models.BriefingRun{
		GeneratedAt: time.Date(2026, 8, 31, 6, 0, 0, 0, time.UTC),
		RunID:       "test",
		Portfolio: models.Portfolio{
			Stocks: map[string]models.Holding{
				"NVDA": {Shares: decimal.NewFromInt(10)},
				"VOO":  {Shares: decimal.NewFromInt(20)},
			},
			Crypto:  map[string]models.CryptoHolding{},
			CashUSD: decimal.NewFromInt(1000),
		},
		Stocks: map[string]models.StockQuote{},
		Crypto: map[string]models.CryptoQuote{},
		Weather: models.WeatherObservation{
			Location:    "Doha",
			Observed:    true,
			Temperature: 28,
			WindSpeed:   10,
		},
	}
}

func engine() *Engine {
	return NewEngine(DefaultRuleset(), "Bernhard")
}

func TestNewsScript_EmptySetReturnsQuietPhrase(t *testing.T) {
	run := testRun()
	run.News = nil

	e := engine()
	a := Assess(run, e.Rules())
	got := e.NewsScript(run, a)

	if got != QuietNewsScript {
		t.Errorf("Expected quiet-day phrase, got %q", got)
	}
}

func TestCryptoBand_ExactBoundaryIsSharpDrop(t *testing.T) {
	run := testRun()
	run.Crypto["BTC"] = models.CryptoQuote{Symbol: "BTC", PriceUSD: 70000, Change24h: -5.0}
	run.Crypto["ETH"] = models.CryptoQuote{Symbol: "ETH", Change24h: -5.0}

	e := engine()
	a := Assess(run, e.Rules())
	if a.BTCBand != BandSharpDrop {
		t.Fatalf("Expected sharp drop band at exactly -5.0, got %s", a.BTCBand)
	}

	script := e.CryptoScript(run, a)
	if !strings.Contains(script, "significant pullback") {
		t.Errorf("Expected significant pullback phrasing, got %q", script)
	}
	if !strings.Contains(script, "well above sixty K") {
		t.Errorf("Expected reassurance line above 60K, got %q", script)
	}
}

func TestCryptoBands(t *testing.T) {
	tests := []struct {
		name     string
		change   float64
		expected Band
	}{
		{"deep drop", -8.3, BandSharpDrop},
		{"boundary sharp drop", -5.0, BandSharpDrop},
		{"pullback", -3.1, BandPullback},
		{"boundary pullback", -2.0, BandPullback},
		{"just above pullback", -1.9, BandQuiet},
		{"flat", 0, BandQuiet},
		{"boundary rally", 5.0, BandRally},
		{"strong rally", 9.2, BandRally},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run := testRun()
			run.Crypto["BTC"] = models.CryptoQuote{Symbol: "BTC", Change24h: tt.change}
			a := Assess(run, DefaultRuleset())
			if a.BTCBand != tt.expected {
				t.Errorf("change %.1f: expected band %s, got %s", tt.change, tt.expected, a.BTCBand)
			}
		})
	}
}

func TestTopMover_TieResolvesDeterministically(t *testing.T) {
	build := func() *models.BriefingRun {
		run := testRun()
		run.Stocks["NVDA"] = models.StockQuote{Symbol: "NVDA", Price: 100, ChangePct: 2}
		run.Stocks["VOO"] = models.StockQuote{Symbol: "VOO", Price: 400, ChangePct: -2}
		return run
	}

	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		a := Assess(build(), DefaultRuleset())
		seen[a.TopMover] = true
	}

	if len(seen) != 1 {
		t.Fatalf("Top mover varies across identical snapshots: %v", seen)
	}
	if !seen["NVDA"] {
		t.Errorf("Expected first symbol in sorted order to win the tie, got %v", seen)
	}
}

func TestSummary_AllFlatHoldingsIsMixed(t *testing.T) {
	run := testRun()
	run.Stocks["NVDA"] = models.StockQuote{Symbol: "NVDA", Price: 100, ChangePct: 0}
	run.Stocks["VOO"] = models.StockQuote{Symbol: "VOO", Price: 400, ChangePct: 0}

	e := engine()
	a := Assess(run, e.Rules())
	if a.MarketTone != ToneMixed {
		t.Fatalf("Expected mixed tone for flat holdings, got %s", a.MarketTone)
	}

	script := e.SummaryScript(run, a)
	if !strings.Contains(script, "Markets are mixed") {
		t.Errorf("Expected mixed framing, got %q", script)
	}
	if strings.Contains(script, "red day") || strings.Contains(script, "Green across") {
		t.Errorf("Flat holdings must not pick a directional framing: %q", script)
	}
}

func TestMarketToneBoundaries(t *testing.T) {
	tests := []struct {
		name     string
		changes  []float64
		expected Tone
	}{
		{"exactly red threshold", []float64{-2, -2}, ToneRed},
		{"just above red threshold", []float64{-1.9, -1.9}, ToneMixed},
		{"exactly green threshold", []float64{1, 1}, ToneGreen},
		{"just below green threshold", []float64{0.9, 0.9}, ToneMixed},
	}

	symbols := []string{"NVDA", "VOO"}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run := testRun()
			for i, c := range tt.changes {
				run.Stocks[symbols[i]] = models.StockQuote{Symbol: symbols[i], ChangePct: c}
			}
			a := Assess(run, DefaultRuleset())
			if a.MarketTone != tt.expected {
				t.Errorf("Expected %s, got %s (mean %.2f)", tt.expected, a.MarketTone, a.MeanChange)
			}
		})
	}
}

func TestStocksScript_ProxyAndNamedCommentaryBothAppear(t *testing.T) {
	run := testRun()
	run.Stocks["NVDA"] = models.StockQuote{Symbol: "NVDA", Price: 110, ChangePct: -6}
	run.Stocks["VOO"] = models.StockQuote{Symbol: "VOO", Price: 420, ChangePct: -1.5}

	e := engine()
	a := Assess(run, e.Rules())
	script := e.StocksScript(run, a)

	if !strings.Contains(script, "Nvidia is down") {
		t.Errorf("Expected NVDA drop commentary at -6%%, got %q", script)
	}
	if !strings.Contains(script, "it's the whole market") {
		t.Errorf("Expected broad-market proxy sentence at VOO -1.5%%, got %q", script)
	}
}

func TestStocksScript_FiveDayAverageLine(t *testing.T) {
	run := testRun()
	run.Stocks["VOO"] = models.StockQuote{
		Symbol:    "VOO",
		Price:     420,
		ChangePct: -0.5,
		History:   []float64{400, 405, 410, 415, 418},
	}

	e := engine()
	a := Assess(run, e.Rules())
	script := e.StocksScript(run, a)

	if !strings.Contains(script, "above its five day average") {
		t.Errorf("Expected above-average line for price 420 vs rising history, got %q", script)
	}
}

func TestSectorTone(t *testing.T) {
	run := testRun()
	for _, sym := range []string{"NVDA", "AAPL", "MSFT"} {
		run.Stocks[sym] = models.StockQuote{Symbol: sym, ChangePct: -2.5}
	}

	a := Assess(run, DefaultRuleset())
	if a.SectorTone != ToneRed {
		t.Errorf("Expected red sector tone at -2.5 average, got %s", a.SectorTone)
	}
}

func TestWeatherScript_ScorchingAndWindyTogether(t *testing.T) {
	run := testRun()
	run.Weather.Temperature = 40
	run.Weather.WindSpeed = 35

	e := engine()
	a := Assess(run, e.Rules())
	if a.TempBand != BandScorching {
		t.Fatalf("Expected scorching band at 40C, got %s", a.TempBand)
	}
	if a.WindBand != BandWindy {
		t.Fatalf("Expected windy band at 35, got %s", a.WindBand)
	}

	script := e.WeatherScript(run, a)
	if !strings.Contains(script, "scorching") {
		t.Errorf("Expected scorching phrase, got %q", script)
	}
	if !strings.Contains(script, "windy") {
		t.Errorf("Expected high-wind advisory, got %q", script)
	}
}

func TestWeatherScript_UnobservedReturnsNeutralPhrase(t *testing.T) {
	run := testRun()
	run.Weather = models.WeatherObservation{Location: "Doha"}

	e := engine()
	a := Assess(run, e.Rules())
	if a.TempBand != "" || a.WindBand != "" {
		t.Fatalf("Placeholder observation must not be banded, got temp %q wind %q", a.TempBand, a.WindBand)
	}

	script := e.WeatherScript(run, a)
	if script != NoWeatherScript {
		t.Errorf("Expected the no-data phrase, got %q", script)
	}

	summary := e.SummaryScript(run, a)
	if strings.Contains(summary, "degrees") {
		t.Errorf("Summary must not report a placeholder temperature: %q", summary)
	}
}

func TestWeatherTrend(t *testing.T) {
	tests := []struct {
		name     string
		highs    []float64
		expected Trend
	}{
		{"warming", []float64{30, 31, 32, 35, 36, 35, 34}, TrendWarming},
		{"cooling", []float64{36, 35, 36, 31, 30, 32, 31}, TrendCooling},
		{"steady", []float64{33, 33, 34, 33, 34, 33, 33}, TrendSteady},
		{"too short for a call", []float64{33, 34}, TrendUnknown},
		{"no forecast", nil, TrendUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run := testRun()
			run.Weather.Forecast = nil
			for _, h := range tt.highs {
				run.Weather.Forecast = append(run.Weather.Forecast, models.DailyForecast{High: h})
			}
			a := Assess(run, DefaultRuleset())
			if a.ForecastTrend != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, a.ForecastTrend)
			}
		})
	}
}

func TestNewsScript_TenseFramingAndContextLines(t *testing.T) {
	run := testRun()
	run.News = []models.NewsItem{
		{Title: "Missile attack reported near Red Sea shipping lane", Relevance: 4},
		{Title: "Gaza ceasefire talks continue", Relevance: 3},
		{Title: "Oil markets steady", Relevance: 1},
	}

	e := engine()
	a := Assess(run, e.Rules())
	if !a.Tense {
		t.Fatal("Expected tense assessment for headline containing 'attack'")
	}

	script := e.NewsScript(run, a)
	if !strings.Contains(script, "tension in the headlines") {
		t.Errorf("Expected heightened-concern opening, got %q", script)
	}
	if !strings.Contains(script, "The big story:") {
		t.Errorf("Expected lead headline framing, got %q", script)
	}
	// Both the Gaza and Red Sea context rules should have triggered.
	if !strings.Contains(script, "Gaza situation") {
		t.Errorf("Expected Gaza context line, got %q", script)
	}
	if !strings.Contains(script, "Red Sea shipping") {
		t.Errorf("Expected Red Sea context line, got %q", script)
	}
}

func TestNewsAssessment_TensionScanCoversSpokenHeadlinesOnly(t *testing.T) {
	run := testRun()
	run.News = []models.NewsItem{
		{Title: "Gulf states announce joint infrastructure fund", Relevance: 2},
		{Title: "Qatar airways expands regional routes", Relevance: 2},
		{Title: "New desalination plant opens", Relevance: 1},
		{Title: "Missile attack reported near shipping lane", Relevance: 1},
		{Title: "Oil markets steady", Relevance: 1},
	}

	e := engine()
	a := Assess(run, e.Rules())
	if a.Tense {
		t.Fatal("Tension keyword beyond the spoken headlines must not set the tense flag")
	}

	script := e.NewsScript(run, a)
	if !strings.Contains(script, "what's happening in the region") {
		t.Errorf("Expected neutral opening, got %q", script)
	}

	// The same keyword inside the spoken window does set it.
	run.News[1], run.News[3] = run.News[3], run.News[1]
	a = Assess(run, e.Rules())
	if !a.Tense {
		t.Error("Tension keyword within the spoken headlines must set the tense flag")
	}
}

func TestNewsScript_CalmFraming(t *testing.T) {
	run := testRun()
	run.News = []models.NewsItem{
		{Title: "New museum opens in the capital", Relevance: 0},
	}

	e := engine()
	a := Assess(run, e.Rules())
	script := e.NewsScript(run, a)
	if !strings.Contains(script, "what's happening in the region") {
		t.Errorf("Expected neutral opening, got %q", script)
	}
}

func TestCorrelation(t *testing.T) {
	tests := []struct {
		name     string
		btc, eth float64
		expected Correlation
	}{
		{"lockstep", -1.0, -2.5, CorrLockstep},
		{"boundary spread is lockstep", 0, -2.0, CorrLockstep},
		{"eth lagging", 1.0, -3.0, CorrETHLagging},
		{"eth leading", 1.0, 5.0, CorrETHLeading},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run := testRun()
			run.Crypto["BTC"] = models.CryptoQuote{Symbol: "BTC", Change24h: tt.btc}
			run.Crypto["ETH"] = models.CryptoQuote{Symbol: "ETH", Change24h: tt.eth}
			a := Assess(run, DefaultRuleset())
			if a.Correlation != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, a.Correlation)
			}
		})
	}
}

func TestWrite_DeterministicAfterJSONRoundTrip(t *testing.T) {
	run := testRun()
	run.Stocks["NVDA"] = models.StockQuote{Symbol: "NVDA", Price: 110, ChangePct: -6, History: []float64{120, 118, 115, 112, 110}}
	run.Stocks["VOO"] = models.StockQuote{Symbol: "VOO", Price: 420, ChangePct: -1.5}
	run.Crypto["BTC"] = models.CryptoQuote{Symbol: "BTC", PriceUSD: 64000, Change24h: -6.2}
	run.Crypto["ETH"] = models.CryptoQuote{Symbol: "ETH", PriceUSD: 3100, Change24h: -3.0}
	run.Weather.Forecast = []models.DailyForecast{{High: 40}, {High: 41}, {High: 40}, {High: 36}, {High: 35}, {High: 34}}
	run.News = []models.NewsItem{
		{Title: "Gaza strike reported", Relevance: 4, PublishedAt: time.Date(2026, 8, 31, 5, 0, 0, 0, time.UTC)},
	}

	e := engine()
	_, first := e.Write(run)

	data, err := json.Marshal(run)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var reloaded models.BriefingRun
	if err := json.Unmarshal(data, &reloaded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	_, second := e.Write(&reloaded)
	if first != second {
		t.Errorf("Scripts differ after JSON round trip.\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestWrite_NeverPanicsOnEmptyRun(t *testing.T) {
	run := &models.BriefingRun{GeneratedAt: time.Now()}
	e := engine()

	a, scripts := e.Write(run)
	if a.MarketTone != ToneMixed {
		t.Errorf("Expected mixed tone on empty run, got %s", a.MarketTone)
	}
	for topic, script := range scripts.ByTopic() {
		if script == "" {
			t.Errorf("Topic %s produced an empty script", topic)
		}
	}
}
