package tui

import (
	"fmt"
	"strings"
)

// Canonical short status messages used across the app.
const (
	MsgLoading     = "Loading news…"
	MsgNoResults   = "No news matches the current filter"
	MsgUnavailable = "News feed unavailable"
)

func MsgShared(title string) string {
	return fmt.Sprintf("Shared '%s'", strings.TrimSpace(title))
}

func MsgPagePosition(page, total, items int) string {
	return fmt.Sprintf("page %d/%d • %d items", page, total, items)
}

func MsgResultsCount(n int) string {
	if n == 1 {
		return "1 result"
	}
	return fmt.Sprintf("%d results", n)
}
