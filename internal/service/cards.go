package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mmcdole/cardgrid/internal/domain"
)

// CardService fetches pages of cards through a read-through page cache.
// Cache entries expire after the configured TTL; a zero TTL disables caching.
type CardService struct {
	source domain.CardSource
	cache  domain.PageCache
	ttl    time.Duration
	logger *slog.Logger

	now func() time.Time
}

// NewCardService creates a new card service. cache may be nil.
func NewCardService(source domain.CardSource, cache domain.PageCache, ttl time.Duration, logger *slog.Logger) *CardService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CardService{
		source: source,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
		now:    time.Now,
	}
}

// Fetch returns the cards for q, from cache when a fresh copy exists
func (s *CardService) Fetch(ctx context.Context, q domain.CardQuery) ([]domain.Card, error) {
	key := CacheKey(q)

	if cards, ok := s.cached(key); ok {
		s.logger.Debug("cache hit", "query", q.String(), "cards", len(cards))
		return cards, nil
	}

	start := s.now()
	cards, err := s.source.ListCards(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("fetching cards (%s): %w", q.String(), err)
	}
	if cards == nil {
		cards = []domain.Card{}
	}

	s.logger.Debug("fetched cards", "query", q.String(), "cards", len(cards), "elapsed", s.now().Sub(start))

	if s.cacheEnabled() {
		if err := s.cache.SavePage(key, cards, s.now()); err != nil {
			s.logger.Warn("failed to cache page", "query", q.String(), "error", err)
		}
	}

	return cards, nil
}

// PruneExpired drops cached pages older than the TTL
func (s *CardService) PruneExpired() (int, error) {
	if !s.cacheEnabled() {
		return 0, nil
	}
	n, err := s.cache.PrunePages(s.now().Add(-s.ttl))
	if err != nil {
		return n, fmt.Errorf("pruning cached pages: %w", err)
	}
	if n > 0 {
		s.logger.Debug("pruned expired pages", "pages", n)
	}
	return n, nil
}

// InvalidateAll drops every cached page
func (s *CardService) InvalidateAll() {
	if s.cache != nil {
		s.cache.InvalidateAll()
	}
}

func (s *CardService) cacheEnabled() bool {
	return s.cache != nil && s.ttl > 0
}

func (s *CardService) cached(key string) ([]domain.Card, bool) {
	if !s.cacheEnabled() {
		return nil, false
	}
	page, ok := s.cache.GetPage(key)
	if !ok {
		return nil, false
	}
	if s.now().Sub(page.FetchedAt) > s.ttl {
		if err := s.cache.DeletePage(key); err != nil {
			s.logger.Warn("failed to drop expired page", "key", key, "error", err)
		}
		return nil, false
	}
	return page.Cards, true
}
