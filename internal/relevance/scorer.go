package relevance

import (
	"strings"
)

// Scorer counts domain keyword occurrences in text. The count is the news
// relevance score used for ranking; the same keyword list drives the
// summary narration's teaser flag.
type Scorer struct {
	keywords []string
}

// NewScorer creates a scorer over the given keyword list. Keywords are
// matched as case-insensitive substrings, so multi-word entries like
// "red sea" work.
func NewScorer(keywords []string) *Scorer {
	lowered := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.TrimSpace(strings.ToLower(kw))
		if kw != "" {
			lowered = append(lowered, kw)
		}
	}
	return &Scorer{keywords: lowered}
}

// Score returns the total number of keyword occurrences in text
func (s *Scorer) Score(text string) int {
	if text == "" || len(s.keywords) == 0 {
		return 0
	}

	lower := strings.ToLower(text)
	count := 0
	for _, kw := range s.keywords {
		count += strings.Count(lower, kw)
	}
	return count
}

// Matches reports whether any of the given keywords occurs in text,
// independent of the scorer's own list.
func Matches(text string, keywords ...string) bool {
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
