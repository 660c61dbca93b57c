package tui

import (
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"newsrack/internal/config"
	"newsrack/internal/lazy"
	"newsrack/internal/pipeline"
)

// KeyHandler turns raw key presses into interaction events. Keys that
// mutate the listing go through the dispatcher; everything else is local
// view plumbing.
type KeyHandler struct {
	app  *App
	keys config.KeyBindings
}

func NewKeyHandler(app *App, cfg *config.Config) *KeyHandler {
	return &KeyHandler{app: app, keys: cfg.Keys.Bindings}
}

func (kh *KeyHandler) HandleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return kh.app, tea.Quit
	}

	switch kh.app.phase {
	case PhaseLoading:
		if key == kh.keys.Quit {
			return kh.app, tea.Quit
		}
		return kh.app, nil

	case PhaseFailed:
		// The failure screen is terminal; the only interaction left is
		// leaving the program.
		if key == kh.keys.Quit || key == kh.keys.Back || key == "enter" {
			return kh.app, tea.Quit
		}
		return kh.app, nil
	}

	switch kh.app.view {
	case ViewShare:
		return kh.handleShareKeys(key)
	case ViewSearch:
		return kh.handleSearchKeys(msg)
	default:
		return kh.handleFeedKeys(msg)
	}
}

func (kh *KeyHandler) handleFeedKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if kh.app.searchInput.Focused() {
		switch key {
		case kh.keys.Back, "enter":
			kh.app.searchInput.Blur()
			return kh.app, nil
		default:
			prev := kh.app.searchInput.Value()
			var cmd tea.Cmd
			kh.app.searchInput, cmd = kh.app.searchInput.Update(msg)
			if value := kh.app.searchInput.Value(); value != prev {
				return kh.app, tea.Batch(cmd, kh.app.dispatch(pipeline.SearchChanged{Query: value}))
			}
			return kh.app, cmd
		}
	}

	switch key {
	case kh.keys.Quit:
		return kh.app, tea.Quit

	case kh.keys.Search:
		kh.app.searchInput.Focus()
		return kh.app, nil

	case kh.keys.DeepSearch:
		if kh.app.engine == nil {
			return kh.app, nil
		}
		kh.app.view = ViewSearch
		kh.app.deepInput.Reset()
		kh.app.deepInput.Focus()
		kh.app.searchList.SetItems(nil)
		return kh.app, nil

	case kh.keys.NextPage:
		if kh.app.state.CurrentPage < kh.app.state.TotalPages() {
			return kh.app, kh.app.dispatch(pipeline.PageSelected{Page: kh.app.state.CurrentPage + 1})
		}
		return kh.app, nil

	case kh.keys.PrevPage:
		if kh.app.state.CurrentPage > 1 {
			return kh.app, kh.app.dispatch(pipeline.PageSelected{Page: kh.app.state.CurrentPage - 1})
		}
		return kh.app, nil

	case kh.keys.Expand:
		if article, ok := kh.app.selectedArticle(); ok {
			return kh.app, kh.app.dispatch(pipeline.ToggleExpand{ArticleID: article.ID})
		}
		return kh.app, nil

	case kh.keys.Share:
		if article, ok := kh.app.selectedArticle(); ok {
			return kh.app, kh.app.dispatch(pipeline.ShareRequested{ArticleID: article.ID})
		}
		return kh.app, nil

	case kh.keys.OpenMedia:
		return kh.app, kh.openSelectedMedia()

	case kh.keys.NextTag:
		return kh.app, kh.app.dispatch(pipeline.TagSelected{Tag: kh.cycleTag(1)})

	case kh.keys.PrevTag:
		return kh.app, kh.app.dispatch(pipeline.TagSelected{Tag: kh.cycleTag(-1)})

	case kh.keys.Theme:
		return kh.app, kh.app.cycleTheme()

	case kh.keys.Back:
		if kh.app.state.SearchQuery != "" {
			kh.app.searchInput.Reset()
			return kh.app, kh.app.dispatch(pipeline.SearchChanged{Query: ""})
		}
		return kh.app, nil

	case "up", "k":
		return kh.moveCursor(-1)

	case "down", "j":
		return kh.moveCursor(1)

	default:
		if page, err := strconv.Atoi(key); err == nil {
			if page >= 1 && page <= kh.app.state.TotalPages() && page != kh.app.state.CurrentPage {
				return kh.app, kh.app.dispatch(pipeline.PageSelected{Page: page})
			}
			return kh.app, nil
		}

		var cmd tea.Cmd
		kh.app.viewport, cmd = kh.app.viewport.Update(msg)
		fetch := kh.app.fetchCmd(kh.app.images.Intersect(kh.app.visibleArticleIDs()...))
		return kh.app, tea.Batch(cmd, fetch)
	}
}

func (kh *KeyHandler) moveCursor(delta int) (tea.Model, tea.Cmd) {
	items, _ := kh.app.state.Page()
	next := kh.app.cursor + delta
	if next < 0 || next >= len(items) {
		return kh.app, nil
	}

	kh.app.cursor = next
	placeholders := kh.app.rebuildFeed(false)
	kh.app.scrollToCursor()
	placeholders = append(placeholders, kh.app.images.Intersect(kh.app.visibleArticleIDs()...)...)
	return kh.app, kh.app.fetchCmd(placeholders)
}

// openSelectedMedia opens the selected card's cached image when it has
// resolved, otherwise its embedded video.
func (kh *KeyHandler) openSelectedMedia() tea.Cmd {
	article, ok := kh.app.selectedArticle()
	if !ok {
		return nil
	}

	if kh.app.images.StatusOf(article.ID) == lazy.StatusResolved {
		if path, ok := kh.app.images.ResolvedPath(article.ID); ok {
			return kh.app.openExternal(path)
		}
	}
	if article.Video != "" {
		return kh.app.openExternal(article.Video)
	}
	if article.Image != "" {
		return kh.app.openExternal(article.Image)
	}
	return nil
}

// cycleTag steps through the tag strip: the "all" entry first, then every
// distinct tag of the full collection.
func (kh *KeyHandler) cycleTag(delta int) string {
	entries := append([]string{""}, kh.app.collection.Tags()...)

	current := 0
	for i, tag := range entries {
		if tag == kh.app.state.TagFilter {
			current = i
			break
		}
	}

	next := (current + delta + len(entries)) % len(entries)
	return entries[next]
}

func (kh *KeyHandler) handleShareKeys(key string) (tea.Model, tea.Cmd) {
	switch key {
	case kh.keys.Back:
		kh.app.closeShare()
		return kh.app, nil

	case "n":
		if kh.app.sharer.NativeAvailable() && kh.app.shareTarget != nil {
			cmd := kh.app.shareNative(kh.app.shareTarget.Title, kh.app.shareTarget.ID)
			kh.app.closeShare()
			return kh.app, cmd
		}
		return kh.app, nil

	default:
		if idx, err := strconv.Atoi(key); err == nil && idx >= 1 && idx <= len(kh.app.shareLinks) {
			url := kh.app.shareLinks[idx-1].URL
			kh.app.closeShare()
			return kh.app, kh.app.openExternal(url)
		}
		return kh.app, nil
	}
}

func (kh *KeyHandler) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if kh.app.deepInput.Focused() {
		switch key {
		case kh.keys.Back:
			return kh.leaveSearch()
		case "enter":
			if items := kh.app.searchList.Items(); len(items) > 0 {
				if item, ok := items[0].(searchResultItem); ok {
					return kh.jumpToResult(item.result.ArticleID)
				}
			}
			return kh.app, nil
		case "tab", "down":
			if len(kh.app.searchList.Items()) > 0 {
				kh.app.deepInput.Blur()
				kh.app.searchList.Select(0)
			}
			return kh.app, nil
		default:
			prev := kh.app.deepInput.Value()
			var cmd tea.Cmd
			kh.app.deepInput, cmd = kh.app.deepInput.Update(msg)

			value := kh.app.deepInput.Value()
			if value == prev {
				return kh.app, cmd
			}
			if len(value) < 2 {
				kh.app.searchList.SetItems(nil)
				return kh.app, cmd
			}
			return kh.app, tea.Batch(cmd, kh.app.runDeepSearch(value))
		}
	}

	switch key {
	case kh.keys.Back:
		return kh.leaveSearch()
	case "tab", kh.keys.Search:
		kh.app.deepInput.Focus()
		return kh.app, nil
	case "up":
		if kh.app.searchList.Index() == 0 {
			kh.app.deepInput.Focus()
			return kh.app, nil
		}
	case "enter":
		if item, ok := kh.app.searchList.SelectedItem().(searchResultItem); ok {
			return kh.jumpToResult(item.result.ArticleID)
		}
		return kh.app, nil
	}

	var cmd tea.Cmd
	kh.app.searchList, cmd = kh.app.searchList.Update(msg)
	return kh.app, cmd
}

func (kh *KeyHandler) leaveSearch() (tea.Model, tea.Cmd) {
	kh.app.view = ViewFeed
	kh.app.deepInput.Reset()
	kh.app.searchList.SetItems(nil)
	return kh.app, nil
}

// jumpToResult lands the feed view on the page holding the given article.
// Filters hiding it are dropped first; a deep-search hit must always be
// reachable.
func (kh *KeyHandler) jumpToResult(articleID string) (tea.Model, tea.Cmd) {
	kh.app.view = ViewFeed
	kh.app.deepInput.Reset()
	kh.app.searchList.SetItems(nil)

	var cmds []tea.Cmd

	index := kh.filteredIndexOf(articleID)
	if index < 0 {
		kh.app.searchInput.Reset()
		cmds = append(cmds, kh.app.dispatch(pipeline.TagSelected{Tag: ""}))
		index = kh.filteredIndexOf(articleID)
		if index < 0 {
			return kh.app, tea.Batch(cmds...)
		}
	}

	page := index/kh.app.state.PerPage + 1
	kh.app.cursor = index % kh.app.state.PerPage
	cmds = append(cmds, kh.app.dispatch(pipeline.PageSelected{Page: page}))
	kh.app.scrollToCursor()

	return kh.app, tea.Batch(cmds...)
}

func (kh *KeyHandler) filteredIndexOf(articleID string) int {
	for i, article := range kh.app.state.Filtered {
		if article.ID == articleID {
			return i
		}
	}
	return -1
}

// HelpForCurrentView returns the status bar key hints.
func (kh *KeyHandler) HelpForCurrentView() []string {
	switch kh.app.view {
	case ViewShare:
		return []string{"1-5: open", "esc: close"}

	case ViewSearch:
		return []string{"enter: jump", "esc: back"}

	default:
		if kh.app.searchInput.Focused() {
			return []string{"enter: done", "esc: done"}
		}
		return []string{
			kh.keys.Search + ": filter",
			kh.keys.PrevPage + "/" + kh.keys.NextPage + ": page",
			kh.keys.PrevTag + "/" + kh.keys.NextTag + ": tag",
			kh.keys.Expand + ": expand",
			kh.keys.Share + ": share",
			kh.keys.Quit + ": quit",
		}
	}
}
