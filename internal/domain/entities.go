package domain

import "fmt"

// Card is the display form of a trading card. Field order and content are
// exactly what the listing service returned, renamed for rendering.
type Card struct {
	Name     string `json:"name"`
	ManaCost string `json:"manaCost"`
	Type     string `json:"type"`
	ImageURL string `json:"imageUrl"`
}

// CardQuery is the request triple sent to a CardSource.
// Page is 1-indexed.
type CardQuery struct {
	Page   int
	Limit  int
	Search string
}

// Offset returns the zero-based index of the first card on the page
func (q CardQuery) Offset() int {
	if q.Page < 1 || q.Limit < 1 {
		return 0
	}
	return (q.Page - 1) * q.Limit
}

// String returns a compact description for logging
func (q CardQuery) String() string {
	return fmt.Sprintf("page=%d limit=%d search=%q", q.Page, q.Limit, q.Search)
}
