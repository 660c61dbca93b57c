package search

// Result is one ranked deep-search hit, identified by article ID.
type Result struct {
	ArticleID string
	Title     string
	Summary   string
	Score     float64
}

// Searcher is the deep-search API used by the TUI. Deep search ranks
// matches across title, summary and full content; it is a separate
// operation from the listing filter, which stays a plain substring match.
type Searcher interface {
	Search(query string, limit int) ([]*Result, error)
}
