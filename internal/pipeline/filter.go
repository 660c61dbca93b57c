package pipeline

import (
	"strings"

	"newsrack/internal/feed"
)

// Filter narrows articles by tag and free-text query. The tag predicate is
// an exact, case-sensitive set-membership check; the query predicate is a
// case-insensitive substring match over title or summary. Both compose with
// AND; an empty predicate is a no-op. Input order is preserved and an empty
// result is a valid outcome.
func Filter(articles []feed.Article, tag, query string) []feed.Article {
	out := make([]feed.Article, 0, len(articles))
	query = strings.ToLower(query)

	for _, a := range articles {
		if tag != "" && !a.HasTag(tag) {
			continue
		}
		if query != "" && !matchesQuery(a, query) {
			continue
		}
		out = append(out, a)
	}

	return out
}

func matchesQuery(a feed.Article, loweredQuery string) bool {
	return strings.Contains(strings.ToLower(a.Title), loweredQuery) ||
		strings.Contains(strings.ToLower(a.Summary), loweredQuery)
}
