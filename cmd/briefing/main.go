package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/selivandex/briefing-bot/internal/adapters/config"
	"github.com/selivandex/briefing-bot/internal/adapters/market"
	"github.com/selivandex/briefing-bot/internal/adapters/news"
	"github.com/selivandex/briefing-bot/internal/adapters/price"
	"github.com/selivandex/briefing-bot/internal/adapters/telegram"
	"github.com/selivandex/briefing-bot/internal/adapters/weather"
	"github.com/selivandex/briefing-bot/internal/briefing"
	"github.com/selivandex/briefing-bot/internal/narration"
	"github.com/selivandex/briefing-bot/internal/relevance"
	"github.com/selivandex/briefing-bot/internal/voice"
	"github.com/selivandex/briefing-bot/pkg/logger"
	"github.com/selivandex/briefing-bot/pkg/templates"
	"github.com/selivandex/briefing-bot/pkg/worker"
)

func main() {
	daemon := flag.Bool("daemon", false, "keep running and regenerate on the configured interval")
	templatesDir := flag.String("templates", "templates", "directory holding the page templates")
	flag.Parse()

	// Setup signal handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\nReceived interrupt signal, shutting down...")
		cancel()
	}()

	if err := run(ctx, *daemon, *templatesDir); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, daemon bool, templatesDir string) error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.File); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	logger.Info("Morning briefing generator starting...",
		zap.Bool("daemon", daemon),
		zap.String("output_dir", cfg.Output.Dir),
	)

	renderer, err := templates.NewManager(templatesDir)
	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}

	generator := buildGenerator(cfg, renderer)

	if !daemon {
		result, err := generator.Generate(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Briefing written to %s\n", result.Dir)
		return nil
	}

	periodic := worker.NewPeriodicWorker(generator, cfg.Schedule.Interval)
	periodic.Start(ctx)

	// Keep service running
	<-ctx.Done()
	logger.Info("shutting down gracefully...")
	periodic.Stop(30 * time.Second)

	return nil
}

func buildGenerator(cfg *config.Config, renderer templates.Renderer) *briefing.Generator {
	stocks := market.NewEODHDProvider(cfg.Market.EODHDAPIKey, cfg.Market.FetchTimeout)
	crypto := price.NewCoinGeckoProvider(cfg.Market.FetchTimeout)
	wx := weather.NewOpenMeteoProvider(
		cfg.Weather.Location,
		cfg.Weather.Latitude,
		cfg.Weather.Longitude,
		cfg.Weather.Timezone,
		cfg.Market.FetchTimeout,
	)

	feeds := make([]news.Provider, 0, len(cfg.News.Feeds))
	for _, feedURL := range cfg.News.Feeds {
		feeds = append(feeds, news.NewRSSProvider(feedURL, cfg.News.Timeout))
	}
	scorer := relevance.NewScorer(cfg.News.Keywords)
	aggregator := news.NewAggregator(feeds, scorer, cfg.News.PerFeed, cfg.News.TopN)

	engine := narration.NewEngine(narration.DefaultRuleset(), cfg.Output.Greeting)
	synth := voice.NewKokoroSynthesizer(cfg.Voice.SpeakBin, cfg.Voice.Timeout)

	var notifier briefing.Notifier
	if cfg.TelegramEnabled() {
		tn, err := telegram.NewNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			logger.Error("failed to create telegram notifier", zap.Error(err))
		} else {
			notifier = tn
		}
	}

	return briefing.NewGenerator(cfg, stocks, crypto, wx, aggregator, engine, synth, renderer, notifier)
}
