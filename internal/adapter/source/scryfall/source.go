// Package scryfall adapts the Scryfall search API to domain.CardSource.
package scryfall

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	scryfall "github.com/BlueMonday/go-scryfall"

	"github.com/mmcdole/cardgrid/internal/domain"
)

// PageSize is the fixed number of cards Scryfall returns per search page
const PageSize = 175

// See https://scryfall.com/docs/api#rate-limits-and-good-citizenship
const requestInterval = 100 * time.Millisecond

// searcher is the subset of the Scryfall client used here
type searcher interface {
	SearchCards(ctx context.Context, query string, opts scryfall.SearchCardsOptions) (scryfall.CardListResponse, error)
}

// Source implements domain.CardSource on top of Scryfall card search
type Source struct {
	client       searcher
	defaultQuery string
	limiter      *time.Ticker
	logger       *slog.Logger
}

// New creates a Scryfall-backed source. defaultQuery is sent when the search
// term is empty, since Scryfall rejects empty queries.
func New(defaultQuery string, logger *slog.Logger) (*Source, error) {
	client, err := scryfall.NewClient()
	if err != nil {
		return nil, fmt.Errorf("failed to create scryfall client: %w", err)
	}
	return newSource(client, defaultQuery, logger), nil
}

func newSource(client searcher, defaultQuery string, logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.Default()
	}
	if strings.TrimSpace(defaultQuery) == "" {
		defaultQuery = "game:paper"
	}
	return &Source{
		client:       client,
		defaultQuery: defaultQuery,
		limiter:      time.NewTicker(requestInterval),
		logger:       logger,
	}
}

// Close stops the rate limiter
func (s *Source) Close() error {
	s.limiter.Stop()
	return nil
}

// ListCards maps (page, limit) onto Scryfall's fixed-size pages, fetching
// one or more of them to assemble the requested window.
func (s *Source) ListCards(ctx context.Context, q domain.CardQuery) ([]domain.Card, error) {
	query := strings.TrimSpace(q.Search)
	if query == "" {
		query = s.defaultQuery
	}

	w := window(q)
	cards := make([]domain.Card, 0, q.Limit)

	for page := w.firstPage; len(cards) < q.Limit; page++ {
		if err := s.wait(ctx); err != nil {
			return nil, err
		}

		s.logger.Debug("scryfall search", "query", query, "page", page)
		resp, err := s.client.SearchCards(ctx, query, scryfall.SearchCardsOptions{Page: page})
		if err != nil {
			if isNotFound(err) {
				// Scryfall answers a search without matches with 404
				return cards, nil
			}
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, fmt.Errorf("%w: %v", domain.ErrSourceOffline, err)
		}

		batch := resp.Cards
		if page == w.firstPage {
			if w.skip >= len(batch) {
				return cards, nil
			}
			batch = batch[w.skip:]
		}
		for _, c := range batch {
			if len(cards) == q.Limit {
				break
			}
			cards = append(cards, MapCard(c))
		}

		if !resp.HasMore {
			break
		}
	}

	return cards, nil
}

func (s *Source) wait(ctx context.Context) error {
	select {
	case <-s.limiter.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// pageWindow locates the first card of a query in Scryfall's paging
type pageWindow struct {
	firstPage int // 1-indexed Scryfall page
	skip      int // cards to drop from the first page
}

func window(q domain.CardQuery) pageWindow {
	offset := q.Offset()
	return pageWindow{
		firstPage: offset/PageSize + 1,
		skip:      offset % PageSize,
	}
}

func isNotFound(err error) bool {
	var scryErr *scryfall.Error
	return errors.As(err, &scryErr) && scryErr.Status == http.StatusNotFound
}

// MapCard converts a Scryfall card to display form. Multi-faced cards without
// top-level images use the front face.
func MapCard(c scryfall.Card) domain.Card {
	card := domain.Card{
		Name:     c.Name,
		ManaCost: c.ManaCost,
		Type:     c.TypeLine,
		ImageURL: imageURL(c.ImageURIs),
	}

	if len(c.CardFaces) > 0 {
		front := c.CardFaces[0]
		if card.ManaCost == "" {
			card.ManaCost = front.ManaCost
		}
		if card.ImageURL == "" {
			card.ImageURL = imageURL(&front.ImageURIs)
		}
	}
	return card
}

func imageURL(uris *scryfall.ImageURIs) string {
	if uris == nil {
		return ""
	}
	if uris.Normal != "" {
		return uris.Normal
	}
	if uris.Large != "" {
		return uris.Large
	}
	return uris.Small
}
