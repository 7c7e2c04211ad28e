package domain

import "time"

// LocationStore persists the browse location (page=..&limit=..&search=..).
// It plays the role of the address bar: read once at startup and replaced
// after every state change.
type LocationStore interface {
	Location() (string, bool)
	SaveLocation(location string) error
}

// CachedPage is a page of cards with the time it was fetched
type CachedPage struct {
	Cards     []Card    `json:"cards"`
	FetchedAt time.Time `json:"fetched_at"`
}

// PageCache caches fetched pages keyed by their encoded location
type PageCache interface {
	GetPage(key string) (CachedPage, bool)
	SavePage(key string, cards []Card, fetchedAt time.Time) error
	DeletePage(key string) error
	// PrunePages drops pages fetched before cutoff and reports how many went
	PrunePages(cutoff time.Time) (int, error)
	InvalidateAll()
}

// Store combines location persistence and page caching.
type Store interface {
	LocationStore
	PageCache
	Close() error
}
