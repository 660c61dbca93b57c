package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// renderShareOverlay draws the fallback share panel for the current share
// target: the permalink plus one numbered link per platform.
func (a *App) renderShareOverlay() string {
	if a.shareTarget == nil {
		return ""
	}

	width := a.width * 4 / 5
	if width < 30 {
		width = a.width - 4
	}

	title := truncateEnd(a.shareTarget.Title, width-6)
	permalink := truncateMiddle(a.sharer.PermalinkFor(a.shareTarget.ID), width-6)

	rows := []string{
		a.styles.Title.Render("Share"),
		"",
		a.styles.CardHead.Render(title),
		a.styles.Meta.Render(permalink),
		"",
	}

	for i, link := range a.shareLinks {
		rows = append(rows, fmt.Sprintf("%s %s",
			a.styles.PageOn.Render(fmt.Sprintf("%d", i+1)),
			a.styles.Link.Render(link.Platform)))
	}

	rows = append(rows, "")
	help := "1-5: open link • esc: close"
	if a.sharer.NativeAvailable() {
		help = "1-5: open link • n: system share • esc: close"
	}
	rows = append(rows, a.styles.Help.Render(help))

	panel := a.styles.Overlay.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))

	return lipgloss.NewStyle().
		Width(a.width).
		Height(a.contentHeight()).
		Align(lipgloss.Center, lipgloss.Center).
		Render(panel)
}
