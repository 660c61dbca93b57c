package pipeline

// Effect tells the caller which side effect must follow a state mutation.
// The decision (what changes) lives here; the effect (re-render, overlay,
// external open) is carried out by the UI layer.
type Effect int

const (
	// EffectNone means the event did not touch the state.
	EffectNone Effect = iota
	// EffectRender means the full pipeline ran and all regions must be
	// rebuilt from the current state.
	EffectRender
	// EffectRenderScrollTop is EffectRender plus a viewport rewind,
	// used after page selection.
	EffectRenderScrollTop
	// EffectToggle flips one article's expanded content locally, without
	// a pipeline run.
	EffectToggle
	// EffectShare hands the article to the share coordinator, outside
	// the pipeline.
	EffectShare
)

// Event is one user interaction category. There are exactly five; every
// input the dispatcher sees maps onto one of them.
type Event interface {
	isEvent()
}

// SearchChanged carries the new free-text query.
type SearchChanged struct {
	Query string
}

// PageSelected carries the 1-based target page from a pagination control.
type PageSelected struct {
	Page int
}

// TagSelected carries the tag picked from the tag cloud; empty means the
// "all" entry.
type TagSelected struct {
	Tag string
}

// ToggleExpand identifies the article whose content visibility flips.
type ToggleExpand struct {
	ArticleID string
}

// ShareRequested identifies the article to share.
type ShareRequested struct {
	ArticleID string
}

func (SearchChanged) isEvent()  {}
func (PageSelected) isEvent()   {}
func (TagSelected) isEvent()    {}
func (ToggleExpand) isEvent()   {}
func (ShareRequested) isEvent() {}

// Apply mutates the state for one event and reports the effect the caller
// must perform. Mutating events run the full pipeline (Refresh) before
// returning, so the state is always consistent when the effect executes.
func Apply(s *State, ev Event) Effect {
	switch ev := ev.(type) {
	case SearchChanged:
		s.SetSearch(ev.Query)
		s.Refresh()
		return EffectRender

	case PageSelected:
		s.SetPage(ev.Page)
		s.Refresh()
		return EffectRenderScrollTop

	case TagSelected:
		s.SetTag(ev.Tag)
		s.Refresh()
		return EffectRender

	case ToggleExpand:
		// Expansion is presentation-local; the state record is untouched
		// and the pipeline does not run.
		return EffectToggle

	case ShareRequested:
		return EffectShare
	}

	return EffectNone
}
