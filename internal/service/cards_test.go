package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/cardgrid/internal/adapter"
	"github.com/mmcdole/cardgrid/internal/domain"
	"github.com/mmcdole/cardgrid/internal/store"
)

type countingSource struct {
	mu    sync.Mutex
	calls int
	cards []domain.Card
	err   error
}

func (s *countingSource) ListCards(ctx context.Context, q domain.CardQuery) ([]domain.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.cards, s.err
}

func newTestService(t *testing.T, src domain.CardSource, ttl time.Duration) (*CardService, *time.Time) {
	t.Helper()
	st, err := store.NewBrowseStore("", "")
	require.NoError(t, err)

	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	svc := NewCardService(src, st, ttl, adapter.NullLogger())
	svc.now = func() time.Time { return now }
	return svc, &now
}

func TestFetchUsesCacheWithinTTL(t *testing.T) {
	src := &countingSource{cards: []domain.Card{{Name: "Bolt"}}}
	svc, now := newTestService(t, src, time.Minute)
	q := domain.CardQuery{Page: 1, Limit: 10, Search: "bolt"}

	_, err := svc.Fetch(context.Background(), q)
	require.NoError(t, err)
	cards, err := svc.Fetch(context.Background(), q)
	require.NoError(t, err)

	assert.Equal(t, 1, src.calls)
	assert.Equal(t, "Bolt", cards[0].Name)

	*now = now.Add(2 * time.Minute)
	_, err = svc.Fetch(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, 2, src.calls)
}

func TestFetchDropsExpiredPage(t *testing.T) {
	src := &countingSource{cards: []domain.Card{{Name: "Bolt"}}}
	svc, now := newTestService(t, src, time.Minute)
	q := domain.CardQuery{Page: 1, Limit: 10}

	_, err := svc.Fetch(context.Background(), q)
	require.NoError(t, err)

	*now = now.Add(2 * time.Minute)
	src.err = domain.ErrSourceOffline
	_, err = svc.Fetch(context.Background(), q)
	require.Error(t, err)

	_, ok := svc.cache.GetPage(CacheKey(q))
	assert.False(t, ok)
}

func TestPruneExpired(t *testing.T) {
	src := &countingSource{cards: []domain.Card{{Name: "Bolt"}}}
	svc, now := newTestService(t, src, time.Minute)

	_, err := svc.Fetch(context.Background(), domain.CardQuery{Page: 1, Limit: 10})
	require.NoError(t, err)
	*now = now.Add(30 * time.Second)
	_, err = svc.Fetch(context.Background(), domain.CardQuery{Page: 2, Limit: 10})
	require.NoError(t, err)

	*now = now.Add(45 * time.Second)
	n, err := svc.PruneExpired()
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, ok := svc.cache.GetPage(CacheKey(domain.CardQuery{Page: 2, Limit: 10}))
	assert.True(t, ok)
}

func TestFetchZeroTTLDisablesCache(t *testing.T) {
	src := &countingSource{cards: []domain.Card{{Name: "Bolt"}}}
	svc, _ := newTestService(t, src, 0)
	q := domain.CardQuery{Page: 1, Limit: 10}

	_, _ = svc.Fetch(context.Background(), q)
	_, _ = svc.Fetch(context.Background(), q)
	assert.Equal(t, 2, src.calls)
}

func TestFetchWrapsSourceErrors(t *testing.T) {
	src := &countingSource{err: domain.ErrSourceOffline}
	svc, _ := newTestService(t, src, time.Minute)

	_, err := svc.Fetch(context.Background(), domain.CardQuery{Page: 1, Limit: 10})
	assert.True(t, errors.Is(err, domain.ErrSourceOffline))
}

func TestFetchNilBecomesEmpty(t *testing.T) {
	svc, _ := newTestService(t, &countingSource{}, time.Minute)

	cards, err := svc.Fetch(context.Background(), domain.CardQuery{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.NotNil(t, cards)
	assert.Empty(t, cards)
}

func TestFetchWithoutCache(t *testing.T) {
	src := &countingSource{cards: []domain.Card{{Name: "Bolt"}}}
	svc := NewCardService(src, nil, time.Minute, adapter.NullLogger())

	_, err := svc.Fetch(context.Background(), domain.CardQuery{Page: 1, Limit: 10})
	require.NoError(t, err)
	svc.InvalidateAll()
	assert.Equal(t, 1, src.calls)
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "page=2&limit=10&search=black+lotus", CacheKey(domain.CardQuery{Page: 2, Limit: 10, Search: "black lotus"}))
}
