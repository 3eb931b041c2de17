package briefing

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/selivandex/briefing-bot/internal/adapters/config"
	"github.com/selivandex/briefing-bot/internal/adapters/market"
	"github.com/selivandex/briefing-bot/internal/adapters/news"
	"github.com/selivandex/briefing-bot/internal/adapters/portfolio"
	"github.com/selivandex/briefing-bot/internal/adapters/price"
	"github.com/selivandex/briefing-bot/internal/adapters/weather"
	"github.com/selivandex/briefing-bot/internal/narration"
	"github.com/selivandex/briefing-bot/internal/voice"
	"github.com/selivandex/briefing-bot/pkg/logger"
	"github.com/selivandex/briefing-bot/pkg/models"
	"github.com/selivandex/briefing-bot/pkg/templates"
)

const (
	pageTemplate = "briefing.html.tmpl"
	pointerFile  = ".current_page"
)

// Notifier announces a finished briefing. Failures are logged, never
// propagated into the run result.
type Notifier interface {
	BriefingReady(ctx context.Context, ready ReadyNotification) error
}

// ReadyNotification summarizes a finished run for the notifier
type ReadyNotification struct {
	Date       string
	MarketTone string
	NetWorth   float64
	URL        string
}

// Result describes one generated briefing
type Result struct {
	Folder string
	Dir    string
	Run    *models.BriefingRun
}

// Generator runs the daily briefing pipeline: acquire, narrate, render
// audio, render the page, persist.
type Generator struct {
	cfg             *config.Config
	stockProvider   market.Provider
	cryptoProvider  price.Provider
	weatherProvider weather.Provider
	newsAggregator  *news.Aggregator
	engine          *narration.Engine
	synth           voice.Synthesizer
	renderer        templates.Renderer
	notifier        Notifier
}

// NewGenerator creates the briefing generator. notifier may be nil.
func NewGenerator(
	cfg *config.Config,
	stocks market.Provider,
	crypto price.Provider,
	wx weather.Provider,
	aggregator *news.Aggregator,
	engine *narration.Engine,
	synth voice.Synthesizer,
	renderer templates.Renderer,
	notifier Notifier,
) *Generator {
	return &Generator{
		cfg:             cfg,
		stockProvider:   stocks,
		cryptoProvider:  crypto,
		weatherProvider: wx,
		newsAggregator:  aggregator,
		engine:          engine,
		synth:           synth,
		renderer:        renderer,
		notifier:        notifier,
	}
}

// Name implements worker.Worker for daemon mode
func (g *Generator) Name() string {
	return "briefing-generator"
}

// Run implements worker.Worker
func (g *Generator) Run(ctx context.Context) error {
	_, err := g.Generate(ctx)
	return err
}

// Generate executes one full briefing run. Acquisition and audio
// failures degrade; only an inability to produce the page itself is an
// error.
func (g *Generator) Generate(ctx context.Context) (*Result, error) {
	run := g.acquire(ctx)

	assessment, scripts := g.engine.Write(run)

	folder := run.GeneratedAt.Format("2006-01-02") + "-" + run.RunID
	dir := filepath.Join(g.cfg.Output.Dir, folder)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create run directory: %w", err)
	}

	audio := g.renderAudio(ctx, scripts, dir)

	view := BuildView(run, assessment, scripts, audio, g.cfg.Output.Greeting)
	page, err := g.renderer.ExecuteTemplate(pageTemplate, view)
	if err != nil {
		return nil, fmt.Errorf("failed to render page: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte(page), 0644); err != nil {
		return nil, fmt.Errorf("failed to write page: %w", err)
	}

	if err := g.writeSnapshot(run, dir); err != nil {
		logger.Warn("failed to write data snapshot", zap.Error(err))
	}

	// The pointer flips only after the page exists, so readers never see
	// a half-written run.
	pointer := filepath.Join(g.cfg.Output.Dir, pointerFile)
	if err := os.WriteFile(pointer, []byte(folder), 0644); err != nil {
		logger.Warn("failed to update latest pointer", zap.Error(err))
	}

	g.notify(ctx, assessment, run, folder)

	logger.Info("briefing generated",
		zap.String("folder", folder),
		zap.Int("audio_topics", len(audio)),
		zap.Int("news_items", len(run.News)),
	)

	return &Result{Folder: folder, Dir: dir, Run: run}, nil
}

// acquire builds the run snapshot. Every source degrades independently
// to an empty or zero value; acquire itself cannot fail.
func (g *Generator) acquire(ctx context.Context) *models.BriefingRun {
	run := &models.BriefingRun{
		GeneratedAt: time.Now(),
		RunID:       strings.SplitN(uuid.NewString(), "-", 2)[0],
		Stocks:      map[string]models.StockQuote{},
		Crypto:      map[string]models.CryptoQuote{},
	}

	p, err := portfolio.Load(g.cfg.Portfolio.Path)
	if err != nil {
		logger.Warn("failed to load portfolio, continuing with empty positions",
			zap.String("path", g.cfg.Portfolio.Path),
			zap.Error(err),
		)
		p = models.Portfolio{
			Stocks: map[string]models.Holding{},
			Crypto: map[string]models.CryptoHolding{},
		}
	}
	run.Portfolio = p

	run.Stocks = g.stockProvider.GetQuotes(ctx, portfolio.Symbols(p))

	if quotes, err := g.cryptoProvider.GetQuotes(ctx, g.cfg.Market.CryptoSymbols); err != nil {
		logger.Warn("crypto quote fetch failed", zap.Error(err))
	} else {
		run.Crypto = quotes
	}

	obs, err := g.weatherProvider.GetObservation(ctx)
	if err != nil {
		logger.Warn("weather fetch failed", zap.Error(err))
		obs = models.WeatherObservation{Location: g.cfg.Weather.Location}
	}
	run.Weather = obs

	run.News = g.newsAggregator.Collect(ctx)

	return run
}

// renderAudio synthesizes each topic independently and returns the file
// names that actually rendered. A failed topic is skipped; the page
// simply omits its playback control.
func (g *Generator) renderAudio(ctx context.Context, scripts narration.Scripts, dir string) map[string]string {
	byTopic := scripts.ByTopic()
	audio := make(map[string]string, len(byTopic))

	for _, topic := range narration.Topics {
		file := "audio_" + topic + ".wav"
		voiceID := g.cfg.Voice.VoiceFor(topic)

		err := g.synth.Synthesize(ctx, byTopic[topic], voiceID, filepath.Join(dir, file))
		if err != nil {
			logger.Warn("audio synthesis failed",
				zap.String("topic", topic),
				zap.String("voice", voiceID),
				zap.Error(err),
			)
			continue
		}
		audio[topic] = file
	}

	return audio
}

func (g *Generator) writeSnapshot(run *models.BriefingRun, dir string) error {
	data, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal run: %w", err)
	}
	return os.WriteFile(filepath.Join(dir, "data.json"), data, 0644)
}

func (g *Generator) notify(ctx context.Context, a narration.Assessment, run *models.BriefingRun, folder string) {
	if g.notifier == nil {
		return
	}

	url := ""
	if base := g.cfg.Output.BaseURL; base != "" {
		url = strings.TrimSuffix(base, "/") + "/" + folder + "/"
	}

	ready := ReadyNotification{
		Date:       run.GeneratedAt.Format("Monday, January 2"),
		MarketTone: string(a.MarketTone),
		NetWorth:   models.ToFloat64(Valuate(run).Total()),
		URL:        url,
	}
	if err := g.notifier.BriefingReady(ctx, ready); err != nil {
		logger.Warn("briefing notification failed", zap.Error(err))
	}
}
