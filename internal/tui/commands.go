package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/mmcdole/cardgrid/internal/domain"
)

// maxPageFetches bounds concurrent requests when several pages load at once
const maxPageFetches = 4

// Command factories for async operations

// FetchCardsCmd loads one page of cards. ctx is owned by the model and is
// cancelled when a newer fetch starts.
func FetchCardsCmd(ctx context.Context, svc CardFetcher, q domain.CardQuery, seq uint64, appendMode bool) tea.Cmd {
	return func() tea.Msg {
		cards, err := svc.Fetch(ctx, q)
		if err != nil {
			return FetchFailedMsg{Seq: seq, Query: q, Err: err}
		}
		return CardsLoadedMsg{Seq: seq, Query: q, Cards: cards, Append: appendMode}
	}
}

// FetchThroughCmd loads pages 1..q.Page and delivers them as one result in
// page order. Any failed page fails the whole load.
func FetchThroughCmd(ctx context.Context, svc CardFetcher, q domain.CardQuery, seq uint64) tea.Cmd {
	return func() tea.Msg {
		pages := make([][]domain.Card, q.Page)

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(maxPageFetches)
		for i := range pages {
			pq := q
			pq.Page = i + 1
			g.Go(func() error {
				cards, err := svc.Fetch(gctx, pq)
				if err != nil {
					return err
				}
				pages[i] = cards
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return FetchFailedMsg{Seq: seq, Query: q, Err: err}
		}

		var cards []domain.Card
		for _, page := range pages {
			cards = append(cards, page...)
		}
		return CardsLoadedMsg{Seq: seq, Query: q, Cards: cards}
	}
}

// PreviewCmd renders the art for an image URL
func PreviewCmd(renderer PreviewRenderer, url string, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		art, err := renderer.Render(ctx, url)
		if err != nil {
			return PreviewFailedMsg{URL: url, Err: err}
		}
		return PreviewLoadedMsg{URL: url, Art: art}
	}
}

// DebounceCmd delivers a SearchDebouncedMsg after d
func DebounceCmd(id int, text string, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return SearchDebouncedMsg{ID: id, Text: text}
	})
}

// TickCmd creates a tick command for animations
func TickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return TickMsg{}
	})
}

// ClearStatusCmd clears the status message after d
func ClearStatusCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
