package tui

import (
	"github.com/charmbracelet/lipgloss"

	"newsrack/internal/search"
)

// searchResultItem adapts a ranked hit to the bubbles list item contract.
type searchResultItem struct {
	result *search.Result
}

func (i searchResultItem) Title() string       { return i.result.Title }
func (i searchResultItem) Description() string { return i.result.Summary }
func (i searchResultItem) FilterValue() string { return i.result.Title }

// renderSearchView draws the deep-search screen: a query input over a
// ranked result list. Deep search is full-text and separate from the
// listing filter.
func (a *App) renderSearchView() string {
	inputWidth := a.width - 8
	if inputWidth < 10 {
		inputWidth = a.width - 4
	}
	a.deepInput.Width = inputWidth

	borderColor := a.styles.Palette.Muted
	if a.deepInput.Focused() {
		borderColor = a.styles.Palette.Accent
	}

	input := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1).
		Width(inputWidth + 4).
		Render(a.deepInput.View())

	var help string
	switch {
	case a.deepInput.Focused():
		help = "Type to search • Tab/↓: results • Esc: back"
	case len(a.searchList.Items()) > 0:
		help = "↑↓: navigate • Enter: jump to article • Esc: back"
	default:
		help = "No results • Tab: search box • Esc: back"
	}

	body := lipgloss.JoinVertical(
		lipgloss.Top,
		a.styles.Header.Render("› deep search"),
		"",
		input,
		a.styles.Help.Render(help),
		"",
		a.searchList.View(),
	)

	return lipgloss.NewStyle().
		Width(a.width).
		Height(a.contentHeight()).
		MaxHeight(a.contentHeight()).
		Render(body)
}
