package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"newsrack/internal/config"
	"newsrack/internal/debuglog"
	"newsrack/internal/feed"
	"newsrack/internal/lazy"
	"newsrack/internal/media"
	"newsrack/internal/pipeline"
	"newsrack/internal/prefs"
	"newsrack/internal/search"
	"newsrack/internal/share"
)

type App struct {
	config       *config.Config
	loader       *feed.Loader
	launcher     *media.Launcher
	sharer       *share.Coordinator
	images       *lazy.Loader
	imageFetcher *lazy.Fetcher
	engine       search.Searcher
	prefsStore   *prefs.Store
	keyHandler   *KeyHandler

	collection *feed.Collection
	state      *pipeline.State
	startTag   string

	phase       Phase
	view        View
	expanded    map[string]bool
	cursor      int
	cardRows    []cardRow
	shareTarget *feed.Article
	shareLinks  []share.Link

	viewport    viewport.Model
	searchInput textinput.Model
	deepInput   textinput.Model
	searchList  list.Model
	spinner     spinner.Model

	styles          *Styles
	glamourRenderer *glamour.TermRenderer
	rendererWidth   int

	width   int
	height  int
	status  string
	err     error
	loadErr error
}

// NewApp wires the session. prefsStore may be nil, which disables theme
// persistence but nothing else.
func NewApp(cfg *config.Config, prefsStore *prefs.Store, startTag string) *App {
	si := textinput.New()
	si.Placeholder = "filter title and summary…"
	si.Prompt = "/ "

	di := textinput.New()
	di.Placeholder = "search all content…"

	searchList := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	searchList.Title = "› results"
	searchList.SetShowStatusBar(false)
	searchList.SetFilteringEnabled(false)
	searchList.SetShowHelp(false)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	theme := cfg.UI.Theme
	if prefsStore != nil {
		theme = prefsStore.Theme(theme)
	}

	app := &App{
		config:       cfg,
		loader:       feed.NewLoader(cfg),
		launcher:     media.NewLauncher(cfg),
		sharer:       share.NewCoordinator(cfg.Share.Origin, cfg.Share.Path),
		images:       lazy.NewLoader(true),
		imageFetcher: lazy.NewFetcher(cfg.Storage.ImageCacheDir, cfg.Feed.HTTPTimeout),
		prefsStore:   prefsStore,
		startTag:     startTag,
		phase:        PhaseLoading,
		view:         ViewFeed,
		expanded:     make(map[string]bool),
		viewport:     viewport.New(0, 0),
		searchInput:  si,
		deepInput:    di,
		searchList:   searchList,
		spinner:      sp,
		styles:       NewStyles(theme),
	}

	app.keyHandler = NewKeyHandler(app, cfg)

	return app
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.loadCollection(),
		a.spinner.Tick,
		tea.EnterAltScreen,
	)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.viewport.Width = msg.Width
		a.viewport.Height = a.contentHeight()

		listHeight := a.contentHeight() - 6
		if listHeight < 5 {
			listHeight = 5
		}
		a.searchList.SetSize(msg.Width, listHeight)

		inputWidth := msg.Width - 12
		if inputWidth < 20 {
			inputWidth = msg.Width
		}
		a.searchInput.Width = inputWidth

		if a.phase == PhaseBrowsing {
			cmds = append(cmds, a.fetchCmd(a.rebuildFeed(false)))
		}

	case spinner.TickMsg:
		if a.phase == PhaseLoading {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case collectionLoadedMsg:
		a.collection = msg.collection
		a.state = pipeline.NewState(a.collection.Articles(), a.startTag, a.config.UI.ItemsPerPage)
		a.phase = PhaseBrowsing

		engine, err := search.NewBleveEngine(a.collection)
		if err != nil {
			debuglog.Warnf("deep search index unavailable: %v", err)
		} else {
			a.engine = engine
		}

		cmds = append(cmds, a.fetchCmd(a.rebuildFeed(true)))

	case loadFailedMsg:
		a.phase = PhaseFailed
		a.loadErr = msg.err
		debuglog.Errorf("feed load failed: %v", msg.err)

	case imageResolvedMsg:
		if msg.err != nil {
			a.images.MarkFailed(msg.key)
			debuglog.Warnf("image %s failed: %v", msg.key, msg.err)
		} else {
			a.images.MarkResolved(msg.key, msg.path)
		}
		if a.phase == PhaseBrowsing {
			cmds = append(cmds, a.fetchCmd(a.rebuildFeed(false)))
		}

	case searchResultsMsg:
		if a.view == ViewSearch && msg.query == a.deepInput.Value() {
			items := make([]list.Item, len(msg.results))
			for i, r := range msg.results {
				items[i] = searchResultItem{result: r}
			}
			a.searchList.SetItems(items)
			a.status = MsgResultsCount(len(msg.results))
		}

	case sharedMsg:
		a.status = MsgShared(msg.title)

	case errorMsg:
		a.err = msg.err

	case tea.KeyMsg:
		return a.keyHandler.HandleKey(msg)

	case tea.MouseMsg:
		if a.phase == PhaseBrowsing && a.view == ViewFeed {
			var cmd tea.Cmd
			a.viewport, cmd = a.viewport.Update(msg)
			cmds = append(cmds, cmd, a.fetchCmd(a.images.Intersect(a.visibleArticleIDs()...)))
		}
	}

	return a, tea.Batch(cmds...)
}

// dispatch routes one interaction event through the pipeline and carries
// out the effect it reports.
func (a *App) dispatch(ev pipeline.Event) tea.Cmd {
	switch pipeline.Apply(a.state, ev) {
	case pipeline.EffectRender, pipeline.EffectRenderScrollTop:
		return a.fetchCmd(a.rebuildFeed(true))

	case pipeline.EffectToggle:
		toggle := ev.(pipeline.ToggleExpand)
		a.expanded[toggle.ArticleID] = !a.expanded[toggle.ArticleID]
		return a.fetchCmd(a.rebuildFeed(false))

	case pipeline.EffectShare:
		req := ev.(pipeline.ShareRequested)
		return a.beginShare(req.ArticleID)
	}
	return nil
}

// beginShare prefers the system opener; without one the overlay with the
// per-platform links comes up instead.
func (a *App) beginShare(articleID string) tea.Cmd {
	article, ok := a.collection.ByID(articleID)
	if !ok {
		return nil
	}

	if a.sharer.NativeAvailable() {
		return a.shareNative(article.Title, article.ID)
	}

	a.shareTarget = &article
	a.shareLinks = a.sharer.FallbackLinks(article.Title, article.ID)
	a.view = ViewShare
	return nil
}

func (a *App) closeShare() {
	a.shareTarget = nil
	a.shareLinks = nil
	a.view = ViewFeed
}

// cycleTheme switches to the next palette and persists the choice.
func (a *App) cycleTheme() tea.Cmd {
	next := NextTheme(a.styles.Theme)
	a.styles = NewStyles(next)
	if a.prefsStore != nil {
		if err := a.prefsStore.SetTheme(next); err != nil {
			debuglog.Warnf("saving theme: %v", err)
		}
	}
	if a.phase == PhaseBrowsing {
		return a.fetchCmd(a.rebuildFeed(false))
	}
	return nil
}

func (a *App) fetchCmd(placeholders []lazy.Placeholder) tea.Cmd {
	if len(placeholders) == 0 {
		return nil
	}
	return tea.Batch(a.resolveImages(placeholders)...)
}

func (a *App) getRenderer() (*glamour.TermRenderer, error) {
	wordWrap := (a.width * 9) / 10
	if wordWrap > a.config.UI.WordWrapMax {
		wordWrap = a.config.UI.WordWrapMax
	}
	if wordWrap < a.config.UI.WordWrapMin {
		wordWrap = a.config.UI.WordWrapMin
	}

	if a.glamourRenderer == nil || abs(a.rendererWidth-wordWrap) > 10 {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(wordWrap),
		)
		if err != nil {
			return nil, err
		}
		a.glamourRenderer = r
		a.rendererWidth = wordWrap
	}

	return a.glamourRenderer, nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func (a *App) contentHeight() int {
	h := a.height - 5
	if h < 3 {
		h = 3
	}
	return h
}

func (a *App) View() string {
	switch a.phase {
	case PhaseLoading:
		return lipgloss.NewStyle().
			Width(a.width).
			Height(a.height).
			Align(lipgloss.Center, lipgloss.Center).
			Render(a.spinner.View() + " " + a.styles.Help.Render(MsgLoading))

	case PhaseFailed:
		detail := ""
		if a.loadErr != nil {
			detail = a.loadErr.Error()
		}
		return lipgloss.NewStyle().
			Width(a.width).
			Height(a.height).
			Align(lipgloss.Center, lipgloss.Center).
			Render(lipgloss.JoinVertical(
				lipgloss.Center,
				a.styles.ErrText.Render("✗ "+MsgUnavailable),
				"",
				a.styles.Meta.Render(truncateEnd(detail, a.width-4)),
				"",
				a.styles.Help.Render("q: quit"),
			))
	}

	header := a.styles.Title.Render(AppName + " ›")

	var content string
	switch a.view {
	case ViewShare:
		content = a.renderShareOverlay()
	case ViewSearch:
		content = a.renderSearchView()
	default:
		content = lipgloss.JoinVertical(
			lipgloss.Top,
			a.renderSearchBar(),
			a.renderTagCloud(),
			a.viewport.View(),
		)
	}

	return lipgloss.JoinVertical(lipgloss.Top, header, content, a.statusBar())
}

func (a *App) statusBar() string {
	if a.err != nil {
		return a.styles.Status.Width(a.width).Render(
			a.styles.ErrText.Render(fmt.Sprintf("✗ %v", a.err)))
	}

	var parts []string
	if a.state != nil && a.view == ViewFeed {
		parts = append(parts, MsgPagePosition(a.state.CurrentPage, a.state.TotalPages(), len(a.state.Filtered)))
	}
	if a.status != "" {
		parts = append(parts, a.status)
	}
	parts = append(parts, a.keyHandler.HelpForCurrentView()...)

	return a.styles.Status.Width(a.width).Render(strings.Join(parts, " • "))
}
