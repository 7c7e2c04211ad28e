package components

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/cardgrid/internal/domain"
)

func testCards(names ...string) []domain.Card {
	cards := make([]domain.Card, len(names))
	for i, name := range names {
		cards[i] = domain.Card{Name: name, ManaCost: "{R}", Type: "Instant", ImageURL: "https://img/" + name}
	}
	return cards
}

func sizedGrid(columns int) Grid {
	g := NewGrid(columns)
	g.SetSize(90, 40)
	g.SetFocused(true)
	return g
}

func TestGridSetCardsEmpty(t *testing.T) {
	g := sizedGrid(3)
	g.SetCards(testCards("A", "B"))
	g.SetCards(nil)

	assert.Equal(t, 0, g.Len())
	_, ok := g.Selected()
	assert.False(t, ok)
	assert.Contains(t, g.View(), "No cards")
}

func TestGridSetCardsKeepsOrder(t *testing.T) {
	g := sizedGrid(2)
	cards := testCards("Zeta", "Alpha", "Mu")
	g.SetCards(cards)

	require.Equal(t, 3, g.Len())
	assert.Equal(t, cards, g.Cards())
	view := g.View()
	assert.Less(t, indexOf(view, "Zeta"), indexOf(view, "Alpha"))
	assert.Less(t, indexOf(view, "Alpha"), indexOf(view, "Mu"))
}

func TestGridSetCardsCopiesInput(t *testing.T) {
	g := sizedGrid(3)
	cards := testCards("A")
	g.SetCards(cards)
	cards[0].Name = "changed"

	assert.Equal(t, "A", g.Cards()[0].Name)
}

func TestGridAppendCards(t *testing.T) {
	g := sizedGrid(3)
	g.SetCards(testCards("A", "B", "C"))

	first := g.AppendCards(testCards("D", "E"))
	assert.Equal(t, 3, first)
	assert.Equal(t, 5, g.Len())
	assert.Equal(t, 3, g.Cursor())

	card, ok := g.Selected()
	require.True(t, ok)
	assert.Equal(t, "D", card.Name)

	assert.Equal(t, -1, g.AppendCards(nil))
	assert.Equal(t, 3, g.Cursor())
}

func TestGridScrollTop(t *testing.T) {
	g := sizedGrid(3)
	g.SetCards(testCards("A", "B", "C", "D"))
	g.SetCursor(3)
	g.ScrollTop()

	assert.Equal(t, 0, g.Cursor())
}

func TestGridNavigation(t *testing.T) {
	g := sizedGrid(3)
	g.SetCards(testCards("A", "B", "C", "D", "E"))

	press := func(k string) {
		g, _ = g.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
	}

	press("l")
	assert.Equal(t, 1, g.Cursor())
	press("j")
	assert.Equal(t, 4, g.Cursor())
	press("j") // no row below
	assert.Equal(t, 4, g.Cursor())
	press("k")
	assert.Equal(t, 1, g.Cursor())
	press("G")
	assert.Equal(t, 4, g.Cursor())
	press("g")
	assert.Equal(t, 0, g.Cursor())
	press("h")
	assert.Equal(t, 0, g.Cursor())
}

func TestGridIgnoresKeysWhenBlurred(t *testing.T) {
	g := sizedGrid(3)
	g.SetCards(testCards("A", "B"))
	g.SetFocused(false)

	g, _ = g.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("l")})
	assert.Equal(t, 0, g.Cursor())
}

func TestHighlightMatchesKeepsText(t *testing.T) {
	for _, term := range []string{"", "bolt", "xyz", "LIGHT"} {
		out := highlightMatches("Lightning Bolt", term)
		assert.Equal(t, len("Lightning Bolt"), lipgloss.Width(out), term)
	}
}

func TestMatchedBytesFollowNameOffsets(t *testing.T) {
	// "İ" is two bytes but lower-cases to three
	name := "İona's Bolt"
	matched := matchedBytes(name, "BOLT")

	var got []rune
	for i, r := range name {
		if matched[i] {
			got = append(got, r)
		}
	}
	assert.Equal(t, "Bolt", string(got))
	assert.Nil(t, matchedBytes(name, "xyz"))
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}
