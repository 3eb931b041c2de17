package news

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/selivandex/briefing-bot/pkg/models"
)

const maxDescriptionLen = 300

// RSSProvider fetches headlines from one RSS feed
type RSSProvider struct {
	parser  *gofeed.Parser
	feedURL string
	name    string
	timeout time.Duration
}

// NewRSSProvider creates a provider for a single feed URL. The provider
// name is derived from the feed host until the feed itself supplies a
// title.
func NewRSSProvider(feedURL string, timeout time.Duration) *RSSProvider {
	return &RSSProvider{
		parser:  gofeed.NewParser(),
		feedURL: feedURL,
		name:    hostLabel(feedURL),
		timeout: timeout,
	}
}

func (p *RSSProvider) GetName() string {
	return p.name
}

// FetchLatestNews parses the feed and returns up to limit items
func (p *RSSProvider) FetchLatestNews(ctx context.Context, limit int) ([]models.NewsItem, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	feed, err := p.parser.ParseURLWithContext(p.feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed %s: %w", p.feedURL, err)
	}

	source := p.name
	if feed.Title != "" {
		source = feed.Title
	}

	items := make([]models.NewsItem, 0, limit)
	for _, item := range feed.Items {
		if len(items) >= limit {
			break
		}

		published := time.Now()
		if item.PublishedParsed != nil {
			published = *item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			published = *item.UpdatedParsed
		}

		desc := item.Description
		if desc == "" {
			desc = item.Content
		}

		items = append(items, models.NewsItem{
			Title:       strings.TrimSpace(item.Title),
			Description: truncate(stripHTML(desc), maxDescriptionLen),
			Source:      source,
			URL:         item.Link,
			PublishedAt: published,
		})
	}

	return items, nil
}

var tagPattern = regexp.MustCompile(`<[^>]*>`)

func stripHTML(s string) string {
	return strings.TrimSpace(tagPattern.ReplaceAllString(s, " "))
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

func hostLabel(feedURL string) string {
	u, err := url.Parse(feedURL)
	if err != nil || u.Host == "" {
		return feedURL
	}
	return strings.TrimPrefix(u.Host, "www.")
}
