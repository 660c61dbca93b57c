package pipeline

import (
	"strings"

	"newsrack/internal/feed"
)

// State is the single mutable application state for the session. It is
// created once after the collection loads, owned by the dispatcher, and
// every mutation goes through Apply followed by Refresh. Filtered and
// CurrentPage are only guaranteed consistent with each other immediately
// after Refresh; nothing may read Filtered between a mutation and the next
// Refresh.
type State struct {
	All         []feed.Article
	TagFilter   string
	SearchQuery string
	CurrentPage int
	PerPage     int

	// Filtered caches the last filter application. Refresh keeps it equal
	// to Filter(All, TagFilter, SearchQuery).
	Filtered []feed.Article
}

// NewState seeds the state from the loaded collection. tagFilter comes from
// the startup tag flag and is the only way it gets an initial value.
func NewState(articles []feed.Article, tagFilter string, perPage int) *State {
	if perPage < 1 {
		perPage = 1
	}
	s := &State{
		All:         articles,
		TagFilter:   tagFilter,
		CurrentPage: 1,
		PerPage:     perPage,
	}
	s.Refresh()
	return s
}

// Refresh runs the filter and clamps the current page. This is the only
// operation that restores the Filtered/CurrentPage consistency invariant,
// and it runs after every qualifying mutation.
func (s *State) Refresh() {
	s.Filtered = Filter(s.All, s.TagFilter, s.SearchQuery)
	_, total := Paginate(s.Filtered, s.PerPage, 1)
	s.CurrentPage = ClampPage(s.CurrentPage, total)
}

// Page returns the current page window and the page count. Refresh must
// have run since the last mutation.
func (s *State) Page() ([]feed.Article, int) {
	return Paginate(s.Filtered, s.PerPage, s.CurrentPage)
}

// TotalPages reports the page count for the current filtered set.
func (s *State) TotalPages() int {
	_, total := Paginate(s.Filtered, s.PerPage, s.CurrentPage)
	return total
}

// SetSearch folds and stores the query and rewinds to the first page.
func (s *State) SetSearch(query string) {
	s.SearchQuery = strings.ToLower(query)
	s.CurrentPage = 1
}

// SetTag re-initializes the state for a tag selection: tag navigation has
// reload semantics, so the search box and page position are discarded.
func (s *State) SetTag(tag string) {
	s.TagFilter = tag
	s.SearchQuery = ""
	s.CurrentPage = 1
}

// SetPage records the requested page. Refresh clamps it against the page
// count, so a stale control can never leave the state out of range.
func (s *State) SetPage(page int) {
	s.CurrentPage = page
}
