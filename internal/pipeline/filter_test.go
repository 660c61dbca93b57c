package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"newsrack/internal/feed"
)

func sampleArticles() []feed.Article {
	return []feed.Article{
		{ID: "1", Title: "City marathon sets record", Summary: "Thousands ran", Tags: []string{"sports", "city"}},
		{ID: "2", Title: "Council budget approved", Summary: "Schools get more funding", Tags: []string{"politics"}},
		{ID: "3", Title: "Local team wins derby", Summary: "A tense match", Tags: []string{"sports"}},
		{ID: "4", Title: "New museum wing opens", Summary: "Modern art collection", Tags: []string{"culture"}},
		{ID: "5", Title: "Storm warning issued", Summary: "Heavy rain expected", Tags: []string{"weather", "city"}},
		{ID: "6", Title: "Theatre season announced", Summary: "Classics and premieres", Tags: []string{"culture"}},
		{ID: "7", Title: "Bridge repairs begin", Summary: "Expect delays downtown", Tags: []string{"city"}},
	}
}

func ids(articles []feed.Article) []string {
	out := make([]string, len(articles))
	for i, a := range articles {
		out[i] = a.ID
	}
	return out
}

func TestFilter_NoPredicates(t *testing.T) {
	all := sampleArticles()
	got := Filter(all, "", "")
	assert.Equal(t, ids(all), ids(got), "absent filters must be no-ops")
}

func TestFilter_ByTag(t *testing.T) {
	got := Filter(sampleArticles(), "sports", "")
	assert.Equal(t, []string{"1", "3"}, ids(got))
}

func TestFilter_TagIsCaseSensitive(t *testing.T) {
	got := Filter(sampleArticles(), "Sports", "")
	assert.Empty(t, got)
}

func TestFilter_ByQuery_CaseInsensitive(t *testing.T) {
	got := Filter(sampleArticles(), "", "MARATHON")
	assert.Equal(t, []string{"1"}, ids(got))
}

func TestFilter_QueryMatchesSummary(t *testing.T) {
	got := Filter(sampleArticles(), "", "funding")
	assert.Equal(t, []string{"2"}, ids(got))
}

func TestFilter_PredicatesCompose(t *testing.T) {
	// "city" tag AND query hitting only one of the tagged articles.
	got := Filter(sampleArticles(), "city", "rain")
	assert.Equal(t, []string{"5"}, ids(got))
}

func TestFilter_EmptyResultIsValid(t *testing.T) {
	got := Filter(sampleArticles(), "", "no such thing anywhere")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFilter_PreservesOrderAndIsSubsequence(t *testing.T) {
	all := sampleArticles()
	for _, tc := range []struct{ tag, query string }{
		{"", ""},
		{"sports", ""},
		{"", "e"},
		{"city", "e"},
		{"culture", "season"},
	} {
		got := Filter(all, tc.tag, tc.query)

		// Every result must appear in the original order.
		pos := -1
		for _, g := range got {
			found := -1
			for i, a := range all {
				if a.ID == g.ID {
					found = i
					break
				}
			}
			assert.Greater(t, found, pos, "result order must follow input order")
			pos = found
		}
	}
}

func TestFilter_Idempotent(t *testing.T) {
	all := sampleArticles()
	once := Filter(all, "city", "e")
	twice := Filter(once, "city", "e")
	assert.Equal(t, ids(once), ids(twice))
}
