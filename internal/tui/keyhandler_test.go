package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsrack/internal/search"
	"newsrack/internal/share"
)

func TestDeepSearchKeyEntersSearchView(t *testing.T) {
	app := newBrowsingApp(t)
	require.NotNil(t, app.engine, "index builds from the loaded collection")

	app = pressKey(t, app, runeKey('f'))
	assert.Equal(t, ViewSearch, app.view)
	assert.True(t, app.deepInput.Focused())

	app = pressKey(t, app, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ViewFeed, app.view)
}

func TestDeepSearchShortQueryClearsResults(t *testing.T) {
	app := newBrowsingApp(t)
	app = pressKey(t, app, runeKey('f'))

	model, _ := app.Update(runeKey('d'))
	app = model.(*App)

	assert.Empty(t, app.searchList.Items(), "queries under two characters never search")
}

func TestDeepSearchResultsPopulateList(t *testing.T) {
	app := newBrowsingApp(t)
	app = pressKey(t, app, runeKey('f'))
	app.deepInput.SetValue("derby")

	results := []*search.Result{{ArticleID: "5", Title: "Derby preview", Summary: "Local teams face off", Score: 2.0}}
	model, _ := app.Update(searchResultsMsg{query: "derby", results: results})
	app = model.(*App)

	require.Len(t, app.searchList.Items(), 1)
	assert.Contains(t, app.View(), "Derby preview")
}

func TestDeepSearchStaleResultsDropped(t *testing.T) {
	app := newBrowsingApp(t)
	app = pressKey(t, app, runeKey('f'))
	app.deepInput.SetValue("storm")

	results := []*search.Result{{ArticleID: "5", Title: "Derby preview"}}
	model, _ := app.Update(searchResultsMsg{query: "derby", results: results})
	app = model.(*App)

	assert.Empty(t, app.searchList.Items(), "results for a superseded query are ignored")
}

func TestJumpToResultLandsOnArticlePage(t *testing.T) {
	app := newBrowsingApp(t)

	model, _ := app.keyHandler.jumpToResult("5")
	app = model.(*App)

	assert.Equal(t, ViewFeed, app.view)
	assert.Equal(t, 2, app.state.CurrentPage, "article 5 sits on the second page at 3 per page")
	assert.Equal(t, 1, app.cursor)
}

func TestJumpToResultDropsHidingFilters(t *testing.T) {
	app := newBrowsingApp(t)

	// A politics filter hides article 5.
	app.state.SetTag("politics")
	app.state.Refresh()
	app.rebuildFeed(true)

	model, _ := app.keyHandler.jumpToResult("5")
	app = model.(*App)

	assert.Equal(t, "", app.state.TagFilter)
	assert.Equal(t, 2, app.state.CurrentPage)
}

func TestNativeShareBypassesOverlay(t *testing.T) {
	app := newBrowsingApp(t)
	app.sharer = share.NewCoordinatorWithOpener(app.config.Share.Origin, app.config.Share.Path, "open")

	model, cmd := app.Update(runeKey('s'))
	app = model.(*App)

	assert.Equal(t, ViewFeed, app.view, "a native opener skips the overlay")
	assert.NotNil(t, cmd)
}

func TestHelpChangesPerView(t *testing.T) {
	app := newBrowsingApp(t)

	feedHelp := app.keyHandler.HelpForCurrentView()
	assert.NotEmpty(t, feedHelp)

	app = pressKey(t, app, runeKey('s'))
	require.Equal(t, ViewShare, app.view)
	assert.Contains(t, app.keyHandler.HelpForCurrentView()[0], "1-5")
}
