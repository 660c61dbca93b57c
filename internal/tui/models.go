package tui

import (
	"newsrack/internal/feed"
	"newsrack/internal/search"
)

// Phase is the lifecycle of one session. The feed loads exactly once; a
// load failure is terminal and leaves only quitting.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseFailed
	PhaseBrowsing
)

// View selects what the browsing phase currently shows.
type View int

const (
	ViewFeed View = iota
	ViewShare
	ViewSearch
)

type collectionLoadedMsg struct {
	collection *feed.Collection
}

type loadFailedMsg struct {
	err error
}

type imageResolvedMsg struct {
	key  string
	path string
	err  error
}

type searchResultsMsg struct {
	query   string
	results []*search.Result
}

type sharedMsg struct {
	title string
}

type errorMsg struct {
	err error
}
