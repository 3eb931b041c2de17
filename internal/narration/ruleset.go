package narration

// Band classifies a continuous value into a discrete commentary category
type Band string

const (
	// Bitcoin 24h change bands
	BandSharpDrop Band = "sharp_drop"
	BandPullback  Band = "pullback"
	BandRally     Band = "rally"
	BandQuiet     Band = "quiet"

	// Temperature bands
	BandCool      Band = "cool"
	BandMild      Band = "mild"
	BandWarm      Band = "warm"
	BandHot       Band = "hot"
	BandScorching Band = "scorching"

	// Wind bands
	BandCalm   Band = "calm"
	BandBreezy Band = "breezy"
	BandWindy  Band = "windy"
)

// Tone classifies the overall market day
type Tone string

const (
	ToneRed   Tone = "red"
	ToneGreen Tone = "green"
	ToneMixed Tone = "mixed"
)

// Trend classifies the forecast direction over the week
type Trend string

const (
	TrendWarming Trend = "warming"
	TrendCooling Trend = "cooling"
	TrendSteady  Trend = "steady"
	TrendUnknown Trend = "unknown"
)

// Correlation classifies how ETH moves relative to BTC
type Correlation string

const (
	CorrLockstep   Correlation = "lockstep"
	CorrETHLagging Correlation = "eth_lagging"
	CorrETHLeading Correlation = "eth_leading"
)

// ContextRule appends one narration sentence when any of its keywords
// appears in the top headlines. Rules trigger independently.
type ContextRule struct {
	Keywords []string
	Line     string
}

// Ruleset consolidates every threshold and keyword list the narration
// functions and the page renderer share. All band comparisons are
// inclusive at the cut point in the direction of the more extreme band;
// temperature bands are half-open with an exclusive upper edge.
type Ruleset struct {
	// Market tone over the mean change of held stocks
	RedMeanPct   float64 // mean <= this is a red day
	GreenMeanPct float64 // mean >= this is a green day

	// Stocks narration
	TechWatchlist  []string
	SectorMovePct  float64 // |sector avg| >= this gets sector commentary
	NotableMovePct float64 // |change| >= this gets named commentary
	SevereMovePct  float64 // drop <= -this gets stronger framing
	MarketProxy    string  // broad-market proxy ticker
	ProxyMovePct   float64 // |proxy change| >= this gets market-wide framing

	// Crypto narration
	BTCSharpDropPct   float64 // change <= this enters the sharp drop band
	BTCPullbackPct    float64 // change <= this (above sharp drop) is a pullback
	BTCRallyPct       float64 // change >= this is a rally
	BTCReassurePrice  float64 // above this, sharp drops get a reassurance line
	CorrelationSpread float64 // |btc-eth| <= this counts as lockstep

	// Weather narration: temperature band upper edges, exclusive
	TempMildFrom      float64
	TempWarmFrom      float64
	TempHotFrom       float64
	TempScorchingFrom float64
	WindStrong        float64 // wind > this gets the high-wind advisory
	WindBreeze        float64 // wind > this gets the breeze mention
	TrendLeadDays     int     // forecast days averaged for the near term
	TrendDeltaDeg     float64 // required spread to call a trend
	RainCodes         []int   // WMO codes that trigger the umbrella advisory

	// News narration
	TensionKeywords []string
	ContextRules    []ContextRule
	HeadlineCount   int // headlines spoken aloud
	TeaserRelevance int // summary teases news at this top-item relevance
}

// DefaultRuleset returns the production thresholds
func DefaultRuleset() Ruleset {
	return Ruleset{
		RedMeanPct:   -2,
		GreenMeanPct: 1,

		TechWatchlist:  []string{"NVDA", "GOOGL", "META", "AAPL", "MSFT", "AMZN"},
		SectorMovePct:  2,
		NotableMovePct: 2,
		SevereMovePct:  3,
		MarketProxy:    "VOO",
		ProxyMovePct:   1,

		BTCSharpDropPct:   -5,
		BTCPullbackPct:    -2,
		BTCRallyPct:       5,
		BTCReassurePrice:  60000,
		CorrelationSpread: 2,

		TempMildFrom:      15,
		TempWarmFrom:      22,
		TempHotFrom:       30,
		TempScorchingFrom: 38,
		WindStrong:        30,
		WindBreeze:        15,
		TrendLeadDays:     3,
		TrendDeltaDeg:     3,
		RainCodes:         []int{51, 61, 63, 65, 80, 81, 82},

		TensionKeywords: []string{
			"strike", "attack", "missile", "killed", "war", "escalate", "threat",
		},
		ContextRules: []ContextRule{
			{
				Keywords: []string{"gaza", "israel"},
				Line:     "The Gaza situation continues to drive most of the regional coverage.",
			},
			{
				Keywords: []string{"iran"},
				Line:     "Iran is in the headlines again, which tends to keep the markets nervous.",
			},
			{
				Keywords: []string{"houthi", "red sea"},
				Line:     "Red Sea shipping is still disrupted, so expect knock-on effects for freight and oil.",
			},
		},
		HeadlineCount:   3,
		TeaserRelevance: 3,
	}
}
