package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"newsrack/internal/lazy"
)

func (a *App) loadCollection() tea.Cmd {
	return func() tea.Msg {
		collection, err := a.loader.Load(a.config.Feed.Source)
		if err != nil {
			return loadFailedMsg{err: err}
		}
		return collectionLoadedMsg{collection: collection}
	}
}

// resolveImage downloads one intersected placeholder into the cache.
func (a *App) resolveImage(p lazy.Placeholder) tea.Cmd {
	return func() tea.Msg {
		path, err := a.imageFetcher.Fetch(p.URL)
		return imageResolvedMsg{key: p.Key, path: path, err: err}
	}
}

// resolveImages fans one fetch command out per placeholder.
func (a *App) resolveImages(placeholders []lazy.Placeholder) []tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(placeholders))
	for _, p := range placeholders {
		cmds = append(cmds, a.resolveImage(p))
	}
	return cmds
}

// openExternal hands a local file or URL to the media launcher.
func (a *App) openExternal(target string) tea.Cmd {
	return func() tea.Msg {
		if err := a.launcher.Open(target); err != nil {
			return errorMsg{err: fmt.Errorf("opening %s: %w", truncateMiddle(target, 60), err)}
		}
		return nil
	}
}

// shareNative publishes the permalink through the platform opener. A
// declined or failed share never surfaces as an error.
func (a *App) shareNative(title, articleID string) tea.Cmd {
	return func() tea.Msg {
		if err := a.sharer.ShareNative(title, articleID); err != nil {
			return errorMsg{err: err}
		}
		return sharedMsg{title: title}
	}
}

func (a *App) runDeepSearch(query string) tea.Cmd {
	return func() tea.Msg {
		results, err := a.engine.Search(query, 20)
		if err != nil {
			return errorMsg{err: err}
		}
		return searchResultsMsg{query: query, results: results}
	}
}
