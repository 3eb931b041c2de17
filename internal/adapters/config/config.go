package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config represents application configuration
type Config struct {
	Portfolio PortfolioConfig `envconfig:"PORTFOLIO"`
	Output    OutputConfig    `envconfig:"OUTPUT"`
	Market    MarketConfig    `envconfig:"MARKET"`
	Weather   WeatherConfig   `envconfig:"WEATHER"`
	News      NewsConfig      `envconfig:"NEWS"`
	Voice     VoiceConfig     `envconfig:"VOICE"`
	Telegram  TelegramConfig  `envconfig:"TELEGRAM"`
	Schedule  ScheduleConfig  `envconfig:"SCHEDULE"`
	Logging   LoggingConfig   `envconfig:"LOGGING"`
}

// PortfolioConfig locates the read-only portfolio file
type PortfolioConfig struct {
	Path string `envconfig:"PORTFOLIO_PATH" default:"config/portfolio.json"`
}

// OutputConfig controls where run artifacts are written
type OutputConfig struct {
	Dir      string `envconfig:"OUTPUT_DIR" default:"briefings"`
	BaseURL  string `envconfig:"OUTPUT_BASE_URL" required:"false"`
	Greeting string `envconfig:"OUTPUT_GREETING" default:"Bernhard"`
}

// MarketConfig represents market data parameters
type MarketConfig struct {
	EODHDAPIKey   string        `envconfig:"MARKET_EODHD_API_KEY" required:"false"`
	CryptoSymbols []string      `envconfig:"MARKET_CRYPTO_SYMBOLS" default:"BTC,ETH"`
	FetchTimeout  time.Duration `envconfig:"MARKET_FETCH_TIMEOUT" default:"10s"`
}

// WeatherConfig represents the monitored location
type WeatherConfig struct {
	Location  string  `envconfig:"WEATHER_LOCATION" default:"Doha"`
	Latitude  float64 `envconfig:"WEATHER_LATITUDE" default:"25.29"`
	Longitude float64 `envconfig:"WEATHER_LONGITUDE" default:"51.53"`
	Timezone  string  `envconfig:"WEATHER_TIMEZONE" default:"Asia/Qatar"`
}

// NewsConfig represents news acquisition configuration
type NewsConfig struct {
	Feeds    []string      `envconfig:"NEWS_FEEDS" default:"https://www.aljazeera.com/xml/rss/all.xml,https://feeds.bbci.co.uk/news/world/middle_east/rss.xml"`
	Keywords []string      `envconfig:"NEWS_KEYWORDS" default:"gaza,israel,iran,houthi,red sea,qatar,saudi,gulf,oil,opec,ceasefire,strike,missile"`
	PerFeed  int           `envconfig:"NEWS_PER_FEED" default:"3"`
	TopN     int           `envconfig:"NEWS_TOP_N" default:"5"`
	Timeout  time.Duration `envconfig:"NEWS_TIMEOUT" default:"10s"`
}

// VoiceConfig represents speech synthesis configuration. Voices assigns a
// synthesizer voice per briefing topic.
type VoiceConfig struct {
	SpeakBin string            `envconfig:"VOICE_SPEAK_BIN" default:"speak"`
	Timeout  time.Duration     `envconfig:"VOICE_TIMEOUT" default:"120s"`
	Voices   map[string]string `envconfig:"VOICE_VOICES" default:"summary:bm_lewis,stocks:am_michael,crypto:af_bella,news:bf_emma,weather:af_heart"`
}

// TelegramConfig represents the optional briefing-ready notification
type TelegramConfig struct {
	BotToken string `envconfig:"TELEGRAM_BOT_TOKEN" required:"false"`
	ChatID   int64  `envconfig:"TELEGRAM_CHAT_ID" required:"false"`
}

// ScheduleConfig controls daemon mode
type ScheduleConfig struct {
	Interval time.Duration `envconfig:"SCHEDULE_INTERVAL" default:"24h"`
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level string `envconfig:"LOG_LEVEL" default:"info"`
	File  string `envconfig:"LOG_FILE" required:"false"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("BRIEFING", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate checks if configuration is valid
func (c *Config) Validate() error {
	if c.Portfolio.Path == "" {
		return fmt.Errorf("portfolio path is required")
	}
	if c.Output.Dir == "" {
		return fmt.Errorf("output dir is required")
	}
	if c.News.TopN < 1 {
		return fmt.Errorf("news top_n must be at least 1")
	}
	if c.News.PerFeed < 1 {
		return fmt.Errorf("news per_feed must be at least 1")
	}
	if c.Schedule.Interval < time.Minute {
		return fmt.Errorf("schedule interval must be at least one minute")
	}

	// Telegram is optional but must be complete when enabled
	if c.Telegram.BotToken != "" && c.Telegram.ChatID == 0 {
		return fmt.Errorf("telegram chat_id is required when a bot token is set")
	}

	return nil
}

// TelegramEnabled reports whether the notifier should be wired
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != 0
}

// VoiceFor returns the configured voice for a topic, empty when unassigned
func (c *VoiceConfig) VoiceFor(topic string) string {
	return c.Voices[topic]
}
