// Package browse holds the pagination and search state behind the card grid,
// the rules for moving between states, and the location string that mirrors
// the state so a relaunch reproduces the same view.
package browse

import "github.com/mmcdole/cardgrid/internal/domain"

// Default values applied per field when the location omits or mangles them
const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// State is the {page, limit, search} triple driving both the request and the
// location, plus the outcome of the most recent request.
type State struct {
	Page   int
	Limit  int
	Search string

	// Err is the failure of the latest request, nil once a request succeeds
	Err error
}

// NewState returns the state shown before any location is applied
func NewState(limit int) State {
	if limit < 1 {
		limit = DefaultLimit
	}
	return State{Page: DefaultPage, Limit: limit}
}

// Query returns the request triple for the state
func (s State) Query() domain.CardQuery {
	return domain.CardQuery{Page: s.Page, Limit: s.Limit, Search: s.Search}
}

// WithSearch restarts pagination for a new search term. Limit is kept.
func (s State) WithSearch(term string) State {
	return State{Page: 1, Limit: s.Limit, Search: term}
}

// NextPage advances one page with the same limit and search
func (s State) NextPage() State {
	return State{Page: s.Page + 1, Limit: s.Limit, Search: s.Search}
}

// PrevPage steps back one page, never below the first
func (s State) PrevPage() State {
	page := s.Page - 1
	if page < 1 {
		page = 1
	}
	return State{Page: page, Limit: s.Limit, Search: s.Search}
}

// Failed returns the state with the request error recorded
func (s State) Failed(err error) State {
	s.Err = err
	return s
}

// Succeeded returns the state with any previous error cleared
func (s State) Succeeded() State {
	s.Err = nil
	return s
}

// HasError reports whether the latest request failed
func (s State) HasError() bool {
	return s.Err != nil
}
