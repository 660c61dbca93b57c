package feed

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Article is a single news item. The collection is loaded once per session
// and never mutated afterward; everything downstream treats articles as
// read-only values.
type Article struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	Summary string    `json:"summary"`
	Content string    `json:"content"`
	Date    time.Time `json:"date"`
	Tags    []string  `json:"tags"`
	Image   string    `json:"image,omitempty"`
	Video   string    `json:"video,omitempty"`
}

// articleJSON mirrors Article for decoding. Feeds in the wild carry the id
// as either a string or a number, so it is captured raw and normalized.
type articleJSON struct {
	ID      json.RawMessage `json:"id"`
	Title   string          `json:"title"`
	Summary string          `json:"summary"`
	Content string          `json:"content"`
	Date    string          `json:"date"`
	Tags    []string        `json:"tags"`
	Image   string          `json:"image"`
	Video   string          `json:"video"`
}

func (a *Article) UnmarshalJSON(data []byte) error {
	var raw articleJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	id, err := normalizeID(raw.ID)
	if err != nil {
		return err
	}

	a.ID = id
	a.Title = raw.Title
	a.Summary = raw.Summary
	a.Content = raw.Content
	a.Tags = raw.Tags
	a.Image = raw.Image
	a.Video = raw.Video

	if raw.Date != "" {
		a.Date, err = parseDate(raw.Date)
		if err != nil {
			return fmt.Errorf("article %s: %w", id, err)
		}
	}

	return nil
}

func normalizeID(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", fmt.Errorf("article missing id")
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if s == "" {
			return "", fmt.Errorf("article id cannot be empty")
		}
		return s, nil
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String(), nil
	}

	return "", fmt.Errorf("article id must be a string or number, got %s", string(raw))
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	time.RFC1123Z,
	time.RFC1123,
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// HasTag reports whether the article carries tag. Matching is exact and
// case-sensitive.
func (a *Article) HasTag(tag string) bool {
	for _, t := range a.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// SortedTags returns the article's tags in lexicographic order for display.
// The underlying slice is not modified.
func (a *Article) SortedTags() []string {
	tags := make([]string, len(a.Tags))
	copy(tags, a.Tags)
	sort.Strings(tags)
	return tags
}

// Collection holds the full article set for the session. It is populated
// exactly once by the Loader and read-only from then on.
type Collection struct {
	articles []Article
}

func NewCollection(articles []Article) *Collection {
	return &Collection{articles: articles}
}

// Articles returns the articles in feed order.
func (c *Collection) Articles() []Article {
	return c.articles
}

func (c *Collection) Len() int {
	return len(c.articles)
}

// ByID finds an article by its identifier.
func (c *Collection) ByID(id string) (Article, bool) {
	for _, a := range c.articles {
		if a.ID == id {
			return a, true
		}
	}
	return Article{}, false
}

// Tags returns every distinct tag across the entire collection, sorted
// lexicographically. The tag cloud is always built from this set, never
// from a filtered subset.
func (c *Collection) Tags() []string {
	seen := make(map[string]bool)
	var tags []string
	for _, a := range c.articles {
		for _, t := range a.Tags {
			if t == "" || seen[t] {
				continue
			}
			seen[t] = true
			tags = append(tags, t)
		}
	}
	sort.Strings(tags)
	return tags
}

// StripMarkup removes HTML tags and collapses whitespace. Summaries from
// RSS sources routinely embed markup that has no place in a list row.
func StripMarkup(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
