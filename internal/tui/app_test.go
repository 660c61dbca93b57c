package tui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsrack/internal/config"
	"newsrack/internal/feed"
	"newsrack/internal/share"
)

func sampleCollection() *feed.Collection {
	base := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)
	articles := []feed.Article{
		{ID: "1", Title: "Stadium reopens", Summary: "The stadium reopens", Date: base, Tags: []string{"sports", "city"}},
		{ID: "2", Title: "Budget vote", Summary: "Council votes on budget", Date: base, Tags: []string{"politics"}},
		{ID: "3", Title: "Gallery night", Summary: "Museums stay open late", Date: base, Tags: []string{"culture"}, Image: "https://img.example.com/3.jpg"},
		{ID: "4", Title: "Storm warning", Summary: "Heavy rain expected", Date: base, Tags: []string{"weather"}},
		{ID: "5", Title: "Derby preview", Summary: "Local teams face off", Date: base, Tags: []string{"sports"}},
		{ID: "6", Title: "New tram line", Summary: "Construction starts downtown", Date: base, Tags: []string{"city"}},
		{ID: "7", Title: "Film festival", Summary: "Open air screenings", Date: base, Tags: []string{"culture"}},
	}
	return feed.NewCollection(articles)
}

// newBrowsingApp returns an app that already finished loading, sized for
// rendering, with the overlay share fallback forced.
func newBrowsingApp(t *testing.T) *App {
	t.Helper()

	cfg := config.TestConfig()
	app := NewApp(cfg, nil, "")
	app.sharer = share.NewCoordinatorWithOpener(cfg.Share.Origin, cfg.Share.Path, "")

	model, _ := app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	app = model.(*App)
	model, _ = app.Update(collectionLoadedMsg{collection: sampleCollection()})
	return model.(*App)
}

func pressKey(t *testing.T, app *App, msg tea.KeyMsg) *App {
	t.Helper()
	model, _ := app.Update(msg)
	return model.(*App)
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestStartsInLoadingPhase(t *testing.T) {
	app := NewApp(config.TestConfig(), nil, "")

	assert.Equal(t, PhaseLoading, app.phase)
	assert.NotNil(t, app.Init())
}

func TestCollectionLoadedEntersBrowsing(t *testing.T) {
	app := newBrowsingApp(t)

	assert.Equal(t, PhaseBrowsing, app.phase)
	require.NotNil(t, app.state)
	assert.Equal(t, 1, app.state.CurrentPage)
	assert.Equal(t, 3, app.state.TotalPages(), "7 articles at 3 per page")
	assert.Contains(t, app.View(), "Stadium reopens")
}

func TestLoadFailureIsTerminal(t *testing.T) {
	app := NewApp(config.TestConfig(), nil, "")
	model, _ := app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	app = model.(*App)

	model, _ = app.Update(loadFailedMsg{err: errors.New("HTTP error: 500")})
	app = model.(*App)

	assert.Equal(t, PhaseFailed, app.phase)
	assert.Contains(t, app.View(), MsgUnavailable)
	assert.Contains(t, app.View(), "500")

	// No interaction survives the failure screen except quitting.
	app = pressKey(t, app, runeKey('x'))
	assert.Equal(t, PhaseFailed, app.phase)

	_, cmd := app.Update(runeKey('q'))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestStartTagFiltersInitialState(t *testing.T) {
	cfg := config.TestConfig()
	app := NewApp(cfg, nil, "sports")

	model, _ := app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	app = model.(*App)
	model, _ = app.Update(collectionLoadedMsg{collection: sampleCollection()})
	app = model.(*App)

	assert.Equal(t, "sports", app.state.TagFilter)
	assert.Len(t, app.state.Filtered, 2)
}

func TestPaginationKeys(t *testing.T) {
	app := newBrowsingApp(t)

	app = pressKey(t, app, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 2, app.state.CurrentPage)

	app = pressKey(t, app, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 1, app.state.CurrentPage)

	// Prev at the first page is a no-op.
	app = pressKey(t, app, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 1, app.state.CurrentPage)
}

func TestDigitJumpsToPage(t *testing.T) {
	app := newBrowsingApp(t)

	app = pressKey(t, app, runeKey('3'))
	assert.Equal(t, 3, app.state.CurrentPage)

	// Out-of-range digits are ignored.
	app = pressKey(t, app, runeKey('9'))
	assert.Equal(t, 3, app.state.CurrentPage)
}

func TestSearchTypingFiltersLive(t *testing.T) {
	app := newBrowsingApp(t)
	app = pressKey(t, app, tea.KeyMsg{Type: tea.KeyRight})

	app = pressKey(t, app, runeKey('/'))
	assert.True(t, app.searchInput.Focused())

	for _, r := range "derby" {
		app = pressKey(t, app, runeKey(r))
	}

	assert.Equal(t, "derby", app.state.SearchQuery)
	assert.Equal(t, 1, app.state.CurrentPage, "search rewinds to the first page")
	require.Len(t, app.state.Filtered, 1)
	assert.Equal(t, "5", app.state.Filtered[0].ID)

	app = pressKey(t, app, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, app.searchInput.Focused())
}

func TestEscClearsActiveSearch(t *testing.T) {
	app := newBrowsingApp(t)

	app = pressKey(t, app, runeKey('/'))
	app = pressKey(t, app, runeKey('z'))
	app = pressKey(t, app, tea.KeyMsg{Type: tea.KeyEsc}) // blur
	require.Equal(t, "z", app.state.SearchQuery)

	app = pressKey(t, app, tea.KeyMsg{Type: tea.KeyEsc}) // clear
	assert.Equal(t, "", app.state.SearchQuery)
	assert.Len(t, app.state.Filtered, 7)
}

func TestTagCycleHasReloadSemantics(t *testing.T) {
	app := newBrowsingApp(t)

	app = pressKey(t, app, runeKey('/'))
	app = pressKey(t, app, runeKey('s'))
	app = pressKey(t, app, tea.KeyMsg{Type: tea.KeyEsc})
	require.NotEmpty(t, app.state.SearchQuery)

	app = pressKey(t, app, runeKey(']'))
	assert.Equal(t, "city", app.state.TagFilter, "tags cycle in lexicographic order after the all entry")
	assert.Equal(t, "", app.state.SearchQuery, "tag navigation discards the search box")
	assert.Equal(t, 1, app.state.CurrentPage)

	app = pressKey(t, app, runeKey('['))
	assert.Equal(t, "", app.state.TagFilter, "cycling back lands on the all entry")
}

func TestExpandToggleLeavesStateAlone(t *testing.T) {
	app := newBrowsingApp(t)
	before := *app.state

	app = pressKey(t, app, tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, app.expanded["1"])

	app = pressKey(t, app, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, app.expanded["1"])

	assert.Equal(t, before.SearchQuery, app.state.SearchQuery)
	assert.Equal(t, before.TagFilter, app.state.TagFilter)
	assert.Equal(t, before.CurrentPage, app.state.CurrentPage)
}

func TestShareOverlayFallback(t *testing.T) {
	app := newBrowsingApp(t)

	app = pressKey(t, app, runeKey('s'))
	require.Equal(t, ViewShare, app.view)
	require.NotNil(t, app.shareTarget)
	assert.Equal(t, "1", app.shareTarget.ID)
	assert.Len(t, app.shareLinks, 5)

	view := app.View()
	for _, platform := range []string{"Facebook", "X", "Telegram", "WhatsApp", "LinkedIn"} {
		assert.Contains(t, view, platform)
	}

	app = pressKey(t, app, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ViewFeed, app.view)
	assert.Nil(t, app.shareTarget)
}

func TestShareOverlayLinkSelection(t *testing.T) {
	app := newBrowsingApp(t)

	app = pressKey(t, app, runeKey('s'))
	require.Equal(t, ViewShare, app.view)

	model, cmd := app.Update(runeKey('2'))
	app = model.(*App)

	assert.Equal(t, ViewFeed, app.view, "choosing a link dismisses the overlay")
	assert.NotNil(t, cmd)
}

func TestThemeCyclePersistsAcrossRebuild(t *testing.T) {
	app := newBrowsingApp(t)
	require.Equal(t, "night", app.styles.Theme)

	app = pressKey(t, app, runeKey('t'))
	assert.Equal(t, "dawn", app.styles.Theme)

	app = pressKey(t, app, runeKey('t'))
	app = pressKey(t, app, runeKey('t'))
	assert.Equal(t, "night", app.styles.Theme)
}

func TestNextTheme(t *testing.T) {
	assert.Equal(t, "dawn", NextTheme("night"))
	assert.Equal(t, "dusk", NextTheme("dawn"))
	assert.Equal(t, "night", NextTheme("dusk"))
	assert.Equal(t, "night", NextTheme("no-such-theme"))
}

func TestCursorMovesWithinPage(t *testing.T) {
	app := newBrowsingApp(t)
	require.Equal(t, 0, app.cursor)

	app = pressKey(t, app, runeKey('j'))
	assert.Equal(t, 1, app.cursor)

	app = pressKey(t, app, runeKey('j'))
	app = pressKey(t, app, runeKey('j'))
	assert.Equal(t, 2, app.cursor, "cursor stops at the last card of the page")

	app = pressKey(t, app, runeKey('k'))
	assert.Equal(t, 1, app.cursor)
}
