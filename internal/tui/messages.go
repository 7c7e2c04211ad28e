package tui

import "github.com/mmcdole/cardgrid/internal/domain"

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// SearchDebouncedMsg fires once the search input has been idle for the
// debounce interval. Only the message carrying the latest ID is acted on.
type SearchDebouncedMsg struct {
	ID   int
	Text string
}

// CardsLoadedMsg carries the cards of a finished fetch
type CardsLoadedMsg struct {
	Seq    uint64
	Query  domain.CardQuery
	Cards  []domain.Card
	Append bool
}

// FetchFailedMsg reports a fetch that failed or was cancelled
type FetchFailedMsg struct {
	Seq   uint64
	Query domain.CardQuery
	Err   error
}

// PreviewLoadedMsg carries rendered art for an image URL
type PreviewLoadedMsg struct {
	URL string
	Art string
}

// PreviewFailedMsg reports an image that could not be rendered
type PreviewFailedMsg struct {
	URL string
	Err error
}

// TickMsg is a general tick message for animations
type TickMsg struct{}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}
