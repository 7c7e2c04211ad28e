package domain

import "context"

// CardSource lists cards page by page. Implemented by the listing API client,
// the Scryfall adapter and the offline catalog.
type CardSource interface {
	// ListCards returns the cards on the requested page in service order.
	// A search with no match returns an empty slice, not an error.
	ListCards(ctx context.Context, q CardQuery) ([]Card, error)
}
