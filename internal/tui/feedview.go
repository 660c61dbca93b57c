package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"newsrack/internal/feed"
	"newsrack/internal/lazy"
	"newsrack/internal/share"
)

// cardRow remembers where one article card landed in the viewport content,
// so scrolling can report which cards are in view.
type cardRow struct {
	articleID string
	start     int
	end       int
}

// rebuildFeed re-renders the current page into the viewport and registers
// the page's image placeholders. It returns the fetch commands for
// placeholders that are already in view.
func (a *App) rebuildFeed(scrollTop bool) []lazy.Placeholder {
	items, _ := a.state.Page()

	if a.cursor >= len(items) {
		a.cursor = len(items) - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}

	content, rows := a.renderFeedContent(items)
	a.cardRows = rows
	a.viewport.SetContent(content)
	if scrollTop {
		a.viewport.GotoTop()
	}

	placeholders := make([]lazy.Placeholder, 0, len(items))
	for _, article := range items {
		if article.Image != "" {
			placeholders = append(placeholders, lazy.Placeholder{Key: article.ID, URL: article.Image})
		}
	}

	now := a.images.Scan(placeholders)
	now = append(now, a.images.Intersect(a.visibleArticleIDs()...)...)
	return now
}

func (a *App) renderFeedContent(items []feed.Article) (string, []cardRow) {
	if len(items) == 0 {
		return a.styles.Notice.Render(MsgNoResults), nil
	}

	var sections []string
	var rows []cardRow
	line := 0

	for i, article := range items {
		card := a.renderCard(article, i == a.cursor)
		height := lipgloss.Height(card)
		rows = append(rows, cardRow{articleID: article.ID, start: line, end: line + height - 1})
		sections = append(sections, card)
		line += height + 1 // blank line between cards
	}

	if strip := a.renderPagination(); strip != "" {
		sections = append(sections, strip)
	}

	return strings.Join(sections, "\n\n"), rows
}

func (a *App) renderCard(article feed.Article, selected bool) string {
	width := a.cardWidth()

	head := a.styles.CardHead.Render(truncateEnd(article.Title, width-2))

	meta := article.Date.Format("Jan 2, 2006")
	if len(article.Tags) > 0 {
		meta += " • " + strings.Join(article.SortedTags(), ", ")
	}
	metaLine := a.styles.Meta.Render(truncateEnd(meta, width-2)) +
		" " + a.styles.Anchor.Render("#"+share.AnchorFor(article.ID))

	lines := []string{head, metaLine}

	if img := a.renderImageSlot(article); img != "" {
		lines = append(lines, img)
	}

	if a.expanded[article.ID] {
		lines = append(lines, a.renderArticleBody(article))
		lines = append(lines, a.styles.Help.Render("enter: collapse"))
	} else {
		summary := truncateEnd(feed.StripMarkup(article.Summary), a.config.UI.SummaryWidth)
		lines = append(lines, a.styles.Summary.Width(width-2).Render(summary))
	}

	style := a.styles.Card
	if selected {
		style = a.styles.CardOn
	}
	return style.Width(width).Render(lipgloss.JoinVertical(lipgloss.Top, lines...))
}

// renderImageSlot shows the placeholder lifecycle of a card's image.
func (a *App) renderImageSlot(article feed.Article) string {
	if article.Image == "" {
		return ""
	}

	width := a.cardWidth()

	switch a.images.StatusOf(article.ID) {
	case lazy.StatusResolved:
		path, _ := a.images.ResolvedPath(article.ID)
		return a.styles.ImageBox.Render("▣ image ready · " + truncateMiddle(path, width-18))
	case lazy.StatusFailed:
		return a.styles.ImageErr.Render("▢ image unavailable")
	default:
		return a.styles.ImageErr.Render("▒ image loading…")
	}
}

func (a *App) renderArticleBody(article feed.Article) string {
	body := article.Content
	if body == "" {
		body = article.Summary
	}
	body = feed.StripMarkup(body)

	r, err := a.getRenderer()
	if err != nil {
		return a.styles.Summary.Render(body)
	}

	rendered, err := r.Render(body)
	if err != nil {
		return a.styles.Summary.Render(body)
	}
	return strings.TrimRight(rendered, "\n")
}

// renderPagination draws the page strip. A single page needs no controls,
// so the strip is suppressed entirely.
func (a *App) renderPagination() string {
	total := a.state.TotalPages()
	if total <= 1 {
		return ""
	}
	current := a.state.CurrentPage

	var parts []string

	prev := a.styles.PageOff
	if current == 1 {
		prev = a.styles.PageDim
	}
	parts = append(parts, prev.Render("‹ prev"))

	for page := 1; page <= total; page++ {
		style := a.styles.PageOff
		if page == current {
			style = a.styles.PageOn
		}
		parts = append(parts, style.Render(fmt.Sprintf("%d", page)))
	}

	next := a.styles.PageOff
	if current == total {
		next = a.styles.PageDim
	}
	parts = append(parts, next.Render("next ›"))

	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}

// renderTagCloud draws the tag strip from the full collection, never from
// the filtered subset, with the "all" entry first.
func (a *App) renderTagCloud() string {
	entries := append([]string{""}, a.collection.Tags()...)

	var parts []string
	for _, tag := range entries {
		label := tag
		if label == "" {
			label = "all"
		}
		if tag == a.state.TagFilter {
			parts = append(parts, a.styles.TagOn.Render(label))
		} else {
			parts = append(parts, a.styles.Tag.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, strings.Join(parts, "  "))
}

func (a *App) renderSearchBar() string {
	return a.styles.Header.Render("search ") + a.searchInput.View()
}

// visibleArticleIDs reports which cards currently intersect the viewport.
func (a *App) visibleArticleIDs() []string {
	top := a.viewport.YOffset
	bottom := top + a.viewport.Height - 1

	var ids []string
	for _, row := range a.cardRows {
		if row.end >= top && row.start <= bottom {
			ids = append(ids, row.articleID)
		}
	}
	return ids
}

// scrollToCursor keeps the selected card inside the viewport.
func (a *App) scrollToCursor() {
	if a.cursor < 0 || a.cursor >= len(a.cardRows) {
		return
	}
	row := a.cardRows[a.cursor]

	if row.start < a.viewport.YOffset {
		a.viewport.SetYOffset(row.start)
	} else if row.end >= a.viewport.YOffset+a.viewport.Height {
		a.viewport.SetYOffset(row.end - a.viewport.Height + 1)
	}
}

func (a *App) cardWidth() int {
	width := a.width - 2
	if width < 24 {
		width = 24
	}
	return width
}

func (a *App) selectedArticle() (feed.Article, bool) {
	items, _ := a.state.Page()
	if a.cursor < 0 || a.cursor >= len(items) {
		return feed.Article{}, false
	}
	return items[a.cursor], true
}
