package briefing

import (
	"sort"

	"github.com/selivandex/briefing-bot/internal/narration"
	"github.com/selivandex/briefing-bot/pkg/models"
)

// View is the typed model the page template renders. It carries the
// narration engine's threshold outcomes (tone, bands, trend) so the
// visual styling can never diverge from the spoken framing.
type View struct {
	DateLong  string
	TimeShort string
	Greeting  string

	StocksWithCash float64
	StockTotal     float64
	Cash           float64
	CryptoTotal    float64
	NetWorth       float64

	MarketTone string // css modifier: red, green, mixed
	Rows       []StockRow

	BTC CryptoCard
	ETH CryptoCard

	Weather WeatherCard

	News      []NewsLine
	NewsTense bool

	// Panel narration text per topic; always present
	Scripts map[string]string

	// Audio file name per topic; a topic whose synthesis failed is
	// absent and the template omits its playback control.
	Audio map[string]string
}

// StockRow is one portfolio position line
type StockRow struct {
	Symbol    string
	Shares    string
	Value     float64
	Price     float64
	ChangePct float64
}

// CryptoCard is one crypto holding tile
type CryptoCard struct {
	Name      string
	Price     float64
	ChangePct float64
	Held      float64
	HeldValue float64
}

// WeatherCard carries current conditions plus the narration bands
type WeatherCard struct {
	Location    string
	Temperature float64
	WindSpeed   float64
	Description string
	Emoji       string
	TempBand    string
	Windy       bool
	Trend       string
}

// NewsLine is one headline bullet
type NewsLine struct {
	Title  string
	Source string
}

// wmoDescriptions maps WMO weather interpretation codes to display text
var wmoDescriptions = map[int]string{
	0:  "Clear sky",
	1:  "Mainly clear",
	2:  "Partly cloudy",
	3:  "Overcast",
	45: "Foggy",
	48: "Depositing rime fog",
	51: "Light drizzle",
	61: "Slight rain",
	63: "Moderate rain",
	65: "Heavy rain",
	80: "Slight rain showers",
	81: "Moderate rain showers",
	82: "Violent rain showers",
}

func weatherDescription(code int) string {
	if desc, ok := wmoDescriptions[code]; ok {
		return desc
	}
	return "Unknown"
}

func weatherEmoji(code int) string {
	switch {
	case code < 2:
		return "☀️"
	case code < 4:
		return "⛅"
	default:
		return "☁️"
	}
}

// BuildView assembles the template model from the run, its assessment,
// and the audio artifacts that actually rendered.
func BuildView(run *models.BriefingRun, a narration.Assessment, scripts narration.Scripts, audio map[string]string, greeting string) View {
	val := Valuate(run)

	view := View{
		DateLong:  run.GeneratedAt.Format("Monday, January 2, 2006"),
		TimeShort: run.GeneratedAt.Format("3:04 PM"),
		Greeting:  greeting,

		StocksWithCash: models.ToFloat64(val.StocksWithCash()),
		StockTotal:     models.ToFloat64(val.StockTotal),
		Cash:           models.ToFloat64(val.Cash),
		CryptoTotal:    models.ToFloat64(val.CryptoTotal),
		NetWorth:       models.ToFloat64(val.Total()),

		MarketTone: string(a.MarketTone),
		NewsTense:  a.Tense,

		Scripts: scripts.ByTopic(),
		Audio:   audio,
	}

	symbols := make([]string, 0, len(run.Portfolio.Stocks))
	for sym := range run.Portfolio.Stocks {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)

	for _, sym := range symbols {
		holding := run.Portfolio.Stocks[sym]
		quote := run.StockQuoteFor(sym)
		shares := models.ToFloat64(holding.Shares)
		view.Rows = append(view.Rows, StockRow{
			Symbol:    sym,
			Shares:    holding.Shares.StringFixed(2),
			Value:     quote.Price * shares,
			Price:     quote.Price,
			ChangePct: quote.ChangePct,
		})
	}

	btc := run.CryptoQuoteFor("BTC")
	eth := run.CryptoQuoteFor("ETH")
	btcHeld := models.ToFloat64(run.Portfolio.Crypto["BTC"].Amount)
	ethHeld := models.ToFloat64(run.Portfolio.Crypto["ETH"].Amount)
	view.BTC = CryptoCard{
		Name:      "Bitcoin",
		Price:     btc.PriceUSD,
		ChangePct: btc.Change24h,
		Held:      btcHeld,
		HeldValue: btc.PriceUSD * btcHeld,
	}
	view.ETH = CryptoCard{
		Name:      "Ethereum",
		Price:     eth.PriceUSD,
		ChangePct: eth.Change24h,
		Held:      ethHeld,
		HeldValue: eth.PriceUSD * ethHeld,
	}

	view.Weather = WeatherCard{
		Location:    run.Weather.Location,
		Temperature: run.Weather.Temperature,
		WindSpeed:   run.Weather.WindSpeed,
		Description: weatherDescription(run.Weather.Code),
		Emoji:       weatherEmoji(run.Weather.Code),
		TempBand:    string(a.TempBand),
		Windy:       a.WindBand == narration.BandWindy,
		Trend:       string(a.ForecastTrend),
	}
	if !run.Weather.Observed {
		view.Weather.Description = "No recent data"
	}

	for _, item := range run.News {
		view.News = append(view.News, NewsLine{
			Title:  headlineForDisplay(item.Title),
			Source: item.Source,
		})
	}

	return view
}

const maxDisplayHeadline = 80

func headlineForDisplay(title string) string {
	runes := []rune(title)
	if len(runes) <= maxDisplayHeadline {
		return title
	}
	return string(runes[:maxDisplayHeadline])
}
