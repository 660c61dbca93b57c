package pipeline

import "newsrack/internal/feed"

// Paginate slices a contiguous window out of articles and reports the page
// count. An empty input still counts as a single page of zero items so the
// view always has a valid page to stand on. The caller is responsible for
// clamping page into [1, totalPages] before slicing; see State.Refresh.
func Paginate(articles []feed.Article, pageSize, page int) (items []feed.Article, totalPages int) {
	if pageSize < 1 {
		pageSize = 1
	}

	totalPages = (len(articles) + pageSize - 1) / pageSize
	if totalPages == 0 {
		totalPages = 1
	}

	start := (page - 1) * pageSize
	if start < 0 || start >= len(articles) {
		return nil, totalPages
	}

	end := start + pageSize
	if end > len(articles) {
		end = len(articles)
	}

	return articles[start:end], totalPages
}

// ClampPage forces page into [1, totalPages].
func ClampPage(page, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}
