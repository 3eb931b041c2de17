package news

import (
	"sort"
	"strings"

	"github.com/selivandex/briefing-bot/pkg/models"
)

func stableSortByRelevance(items []models.NewsItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Relevance > items[j].Relevance
	})
}

// normalizedPrefix lowercases the headline and keeps its first
// dedupPrefixLen runes. Shorter headlines compare whole.
func normalizedPrefix(title string) string {
	lower := strings.ToLower(strings.TrimSpace(title))
	runes := []rune(lower)
	if len(runes) > dedupPrefixLen {
		runes = runes[:dedupPrefixLen]
	}
	return string(runes)
}
