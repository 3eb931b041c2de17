package narration

import (
	"fmt"
	"math"
	"strings"

	"github.com/cinar/indicator"

	"github.com/selivandex/briefing-bot/internal/relevance"
	"github.com/selivandex/briefing-bot/pkg/models"
)

// Topic names, in page order. They key voice assignments and audio file
// names.
const (
	TopicSummary = "summary"
	TopicStocks  = "stocks"
	TopicCrypto  = "crypto"
	TopicWeather = "weather"
	TopicNews    = "news"
)

// Topics lists every briefing topic in page order
var Topics = []string{TopicSummary, TopicStocks, TopicCrypto, TopicWeather, TopicNews}

// QuietNewsScript is the fixed phrase spoken when the run has no news
const QuietNewsScript = "No major regional news to report right now. Things seem relatively quiet."

// NoWeatherScript is the fixed phrase spoken when the weather fetch failed
const NoWeatherScript = "I couldn't get a weather reading this morning, so no forecast for now. I'll have it for you next time."

// Scripts holds one narration string per topic
type Scripts struct {
	Summary string
	Stocks  string
	Crypto  string
	Weather string
	News    string
}

// ByTopic returns the scripts keyed by topic name
func (s Scripts) ByTopic() map[string]string {
	return map[string]string{
		TopicSummary: s.Summary,
		TopicStocks:  s.Stocks,
		TopicCrypto:  s.Crypto,
		TopicWeather: s.Weather,
		TopicNews:    s.News,
	}
}

// Engine writes the five narration scripts for a run. Every method is a
// pure function of the run snapshot and the assessment derived from it;
// none of them can fail.
type Engine struct {
	rules    Ruleset
	greeting string
}

// NewEngine creates a narration engine with the given ruleset and the
// listener's name for the summary greeting.
func NewEngine(rules Ruleset, greeting string) *Engine {
	return &Engine{rules: rules, greeting: greeting}
}

// Rules returns the engine's ruleset, shared with the renderer
func (e *Engine) Rules() Ruleset {
	return e.rules
}

// Write assesses the run and produces the scripts for all topics
func (e *Engine) Write(run *models.BriefingRun) (Assessment, Scripts) {
	a := Assess(run, e.rules)
	return a, Scripts{
		Summary: e.SummaryScript(run, a),
		Stocks:  e.StocksScript(run, a),
		Crypto:  e.CryptoScript(run, a),
		Weather: e.WeatherScript(run, a),
		News:    e.NewsScript(run, a),
	}
}

// SummaryScript headlines the biggest mover, frames the day by market
// tone, mentions the weather, and teases high-relevance news.
func (e *Engine) SummaryScript(run *models.BriefingRun, a Assessment) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Morning %s. %s. ", e.greeting, run.GeneratedAt.Format("Monday, January 2"))

	if a.BTCBand == BandSharpDrop {
		fmt.Fprintf(&b, "Crypto's having a rough day, Bitcoin is down about %.0f percent. ", math.Abs(a.BTCChange))
		b.WriteString("Looks like risk-off sentiment across the board. ")
	}

	if a.TopMover != "" && a.TopMoverChange != 0 {
		if a.TopMoverChange < 0 {
			fmt.Fprintf(&b, "%s is the big mover in your portfolio, down %.1f percent. ",
				a.TopMover, math.Abs(a.TopMoverChange))
		} else {
			fmt.Fprintf(&b, "%s is the big mover in your portfolio, up %.1f percent. ",
				a.TopMover, a.TopMoverChange)
		}
	}

	switch a.MarketTone {
	case ToneRed:
		b.WriteString("Overall it's a red day, but nothing to panic about. Markets do this. ")
	case ToneGreen:
		b.WriteString("Green across the board today, nice to see. ")
	default:
		b.WriteString("Markets are mixed, nothing dramatic. ")
	}

	if run.Weather.Observed && run.Weather.Location != "" {
		fmt.Fprintf(&b, "It's %.0f degrees in %s. ", run.Weather.Temperature, run.Weather.Location)
	}

	if a.NewsTeaser {
		b.WriteString("I've got some significant regional news for you in the news section. ")
	}

	b.WriteString("Tap into any section if you want the deeper analysis.")

	return b.String()
}

// StocksScript explains whether moves look idiosyncratic or market-wide:
// sector average commentary, named commentary for specific tickers, and
// the broad-market proxy framing.
func (e *Engine) StocksScript(run *models.BriefingRun, a Assessment) string {
	var b strings.Builder
	rules := e.rules

	b.WriteString("Alright, let's talk about what's actually happening with your stocks. ")

	switch a.SectorTone {
	case ToneRed:
		b.WriteString("Tech is getting hit across the board today. ")
		b.WriteString("This usually means either rate concerns, or investors rotating out of growth. ")
	case ToneGreen:
		b.WriteString("Tech is leading the charge today, risk-on mode. ")
	}

	if q, ok := run.Stocks["NVDA"]; ok && math.Abs(q.ChangePct) >= rules.NotableMovePct {
		if q.ChangePct < 0 {
			b.WriteString("Nvidia is down, probably AI sentiment cooling off, or chip sector rotation. Nothing fundamental changed. ")
		} else {
			b.WriteString("Nvidia is pushing higher, the AI trade keeps rolling. ")
		}
	}

	if q, ok := run.Stocks["TSLA"]; ok && math.Abs(q.ChangePct) >= rules.NotableMovePct {
		b.WriteString("Tesla is volatile as usual, you know how that goes. ")
	}

	if q, ok := run.Stocks["AMZN"]; ok && q.ChangePct <= -rules.SevereMovePct {
		b.WriteString("Amazon is taking a hit, could be profit-taking or broader retail concerns. ")
	}

	if proxy, ok := run.Stocks[rules.MarketProxy]; ok {
		switch {
		case proxy.ChangePct <= -rules.ProxyMovePct:
			fmt.Fprintf(&b, "The broader market via %s is down too, so this isn't just your picks, it's the whole market. ",
				rules.MarketProxy)
		case proxy.ChangePct >= rules.ProxyMovePct:
			b.WriteString("The market overall is up, so a rising tide lifting all boats. ")
		}

		if line := fiveDayLine(proxy, rules.MarketProxy); line != "" {
			b.WriteString(line)
		}
	}

	b.WriteString("No major earnings or news moving your specific holdings that I can see. Mostly macro sentiment.")

	return b.String()
}

// fiveDayLine positions the proxy against its short moving average when
// history is available.
func fiveDayLine(q models.StockQuote, symbol string) string {
	if len(q.History) < 2 || q.Price <= 0 {
		return ""
	}

	sma := indicator.Sma(len(q.History), q.History)
	avg := sma[len(sma)-1]
	if avg <= 0 {
		return ""
	}

	if q.Price >= avg {
		return fmt.Sprintf("%s is still trading above its five day average, so the short term trend is intact. ", symbol)
	}
	return fmt.Sprintf("%s has slipped below its five day average, which is worth keeping an eye on. ", symbol)
}

// CryptoScript classifies Bitcoin's move into bands and relates Ethereum
// to it.
func (e *Engine) CryptoScript(run *models.BriefingRun, a Assessment) string {
	var b strings.Builder
	rules := e.rules

	b.WriteString("Okay, crypto. ")

	switch a.BTCBand {
	case BandSharpDrop:
		b.WriteString("We're seeing a significant pullback. ")
		b.WriteString("This kind of drop is usually one of three things: ")
		b.WriteString("either macro fear pushing people to cash, ")
		b.WriteString("whales taking profits, ")
		b.WriteString("or some regulatory news spooking the market. ")
		b.WriteString("Nothing has fundamentally changed about Bitcoin though. ")

		if a.BTCPrice > rules.BTCReassurePrice {
			b.WriteString("We're still well above sixty K, so this is normal volatility in the grand scheme. ")
		}

	case BandPullback:
		b.WriteString("Slight pullback, nothing unusual. Crypto does this. ")
		b.WriteString("Could just be profit-taking after recent gains. ")

	case BandRally:
		b.WriteString("Nice rally happening. ")
		b.WriteString("Usually driven by institutional buying or positive sentiment around ETFs. ")

	default:
		b.WriteString("Pretty quiet in crypto land. Consolidation phase. ")
	}

	switch a.Correlation {
	case CorrLockstep:
		b.WriteString("ETH is moving in lockstep with Bitcoin, which is normal. ")
	case CorrETHLagging:
		b.WriteString("Ethereum is underperforming Bitcoin today, sometimes that means money rotating into BTC for safety. ")
	case CorrETHLeading:
		b.WriteString("Interesting, ETH is outperforming BTC. Could be Layer 2 hype or DeFi activity picking up. ")
	}

	if a.BTCBand == BandSharpDrop {
		b.WriteString("Sentiment is fearful right now, which historically has been a good time to accumulate if you're long term. ")
	}

	b.WriteString("You're holding for the long run anyway, so don't let the daily noise stress you out.")

	return b.String()
}

// WeatherScript maps the temperature band to an advisory, adds wind and
// rain commentary, and calls the week's trend.
func (e *Engine) WeatherScript(run *models.BriefingRun, a Assessment) string {
	if !run.Weather.Observed {
		return NoWeatherScript
	}

	var b strings.Builder
	rules := e.rules
	obs := run.Weather

	switch a.TempBand {
	case BandCool:
		b.WriteString("It's actually cool out today, grab a light jacket if you're heading out. ")
	case BandMild:
		b.WriteString("Perfect weather today, not too hot and not too cold. Great day to be outside. ")
	case BandWarm:
		b.WriteString("Warming up out there. Comfortable, but you'll want to stay hydrated. ")
	case BandHot:
		if obs.Location != "" {
			fmt.Fprintf(&b, "Hot one today. Standard %s. The AC is your friend. ", obs.Location)
		} else {
			b.WriteString("Hot one today. The AC is your friend. ")
		}
	case BandScorching:
		b.WriteString("It's scorching out there. Maybe keep the outdoor activities to early morning or evening. ")
	}

	switch a.WindBand {
	case BandWindy:
		fmt.Fprintf(&b, "It's pretty windy, %.0f K per hour, might kick up some dust. ", obs.WindSpeed)
	case BandBreezy:
		b.WriteString("There's a nice breeze which helps. ")
	}

	switch a.ForecastTrend {
	case TrendWarming:
		b.WriteString("Looking at the week, it's trending warmer, so enjoy today while it lasts. ")
	case TrendCooling:
		b.WriteString("Looking at the week, it's trending cooler from here, should get more comfortable. ")
	}

	for _, code := range rules.RainCodes {
		if obs.Code == code {
			b.WriteString("Looks like rain is possible, might want an umbrella just in case. ")
			break
		}
	}

	b.WriteString("That's it for weather. Have a good one.")

	return b.String()
}

// NewsScript opens with tense or calm framing based on the high-tension
// keyword scan, reads out the top headlines, and appends the context
// lines whose keywords matched.
func (e *Engine) NewsScript(run *models.BriefingRun, a Assessment) string {
	if len(run.News) == 0 {
		return QuietNewsScript
	}

	var b strings.Builder
	rules := e.rules

	if a.Tense {
		b.WriteString("There's a lot of tension in the headlines this morning, so let's get into it. ")
	} else {
		b.WriteString("Alright, let's talk about what's happening in the region. ")
	}

	spoken := run.News
	if len(spoken) > rules.HeadlineCount {
		spoken = spoken[:rules.HeadlineCount]
	}
	for i, item := range spoken {
		switch i {
		case 0:
			fmt.Fprintf(&b, "The big story: %s. ", item.Title)
		case 1:
			fmt.Fprintf(&b, "Also worth noting: %s. ", item.Title)
		default:
			fmt.Fprintf(&b, "And %s. ", item.Title)
		}
	}

	var scanned strings.Builder
	for _, item := range spoken {
		scanned.WriteString(item.Title)
		scanned.WriteString(" ")
		scanned.WriteString(item.Description)
		scanned.WriteString(" ")
	}
	for _, rule := range rules.ContextRules {
		if relevance.Matches(scanned.String(), rule.Keywords...) {
			b.WriteString(rule.Line)
			b.WriteString(" ")
		}
	}

	b.WriteString("I'll keep an eye on these and let you know if anything develops.")

	return b.String()
}
