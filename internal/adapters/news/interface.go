package news

import (
	"context"

	"go.uber.org/zap"

	"github.com/selivandex/briefing-bot/internal/relevance"
	"github.com/selivandex/briefing-bot/pkg/logger"
	"github.com/selivandex/briefing-bot/pkg/models"
)

// dedupPrefixLen is the normalized headline prefix compared during
// deduplication.
const dedupPrefixLen = 50

// Provider represents news source provider interface
type Provider interface {
	// GetName returns provider name
	GetName() string

	// FetchLatestNews fetches the latest news items
	FetchLatestNews(ctx context.Context, limit int) ([]models.NewsItem, error)
}

// Aggregator collects news from multiple sources and produces the ranked,
// deduplicated working set consumed by narration and rendering.
type Aggregator struct {
	scorer    *relevance.Scorer
	providers []Provider
	perFeed   int
	topN      int
}

// NewAggregator creates new news aggregator
func NewAggregator(providers []Provider, scorer *relevance.Scorer, perFeed, topN int) *Aggregator {
	return &Aggregator{
		providers: providers,
		scorer:    scorer,
		perFeed:   perFeed,
		topN:      topN,
	}
}

// Collect fetches from every provider sequentially, scores each item,
// ranks by relevance descending, deduplicates by normalized headline
// prefix, and truncates to the configured top-N. A failing provider is
// logged and skipped; Collect itself never fails.
func (a *Aggregator) Collect(ctx context.Context) []models.NewsItem {
	all := make([]models.NewsItem, 0)

	for _, provider := range a.providers {
		items, err := provider.FetchLatestNews(ctx, a.perFeed)
		if err != nil {
			logger.Warn("news provider failed",
				zap.String("provider", provider.GetName()),
				zap.Error(err),
			)
			continue
		}
		all = append(all, items...)
	}

	for i := range all {
		all[i].Relevance = a.scorer.Score(all[i].Title + " " + all[i].Description)
	}

	ranked := Rank(all)
	if len(ranked) > a.topN {
		ranked = ranked[:a.topN]
	}

	logger.Debug("news collected",
		zap.Int("candidates", len(all)),
		zap.Int("kept", len(ranked)),
	)

	return ranked
}

// Rank sorts items by relevance descending (stable, so provider order
// breaks ties) and drops items whose normalized headline prefix was
// already seen.
func Rank(items []models.NewsItem) []models.NewsItem {
	sorted := make([]models.NewsItem, len(items))
	copy(sorted, items)

	stableSortByRelevance(sorted)

	seen := make(map[string]bool, len(sorted))
	out := make([]models.NewsItem, 0, len(sorted))
	for _, item := range sorted {
		key := normalizedPrefix(item.Title)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, item)
	}
	return out
}
