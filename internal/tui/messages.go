package tui

import (
	"time"

	"github.com/TomWang22/fin-news-summarizer/internal/api"
	"github.com/TomWang22/fin-news-summarizer/internal/search"
)

// searchDoneMsg carries a completed search. seq orders racing responses:
// anything at or below the last accepted sequence is stale and dropped.
type searchDoneMsg struct {
	seq     int
	outcome *search.Outcome
}

type searchErrMsg struct {
	seq int
	err error
}

// savedRefreshedMsg reports that a saved-list operation (refresh, save,
// delete, load-more, sync toggle) finished.
type savedRefreshedMsg struct {
	notice string
	err    error
}

type diagDoneMsg struct {
	result *api.DiagResult
	err    error
}

type exportDoneMsg struct {
	filename string
	count    int
	err      error
}

// updateMsg reports a newer released version, if any.
type updateMsg struct {
	latest string
}

// tickMsg drives notice expiry while anything is on screen.
type tickMsg time.Time
