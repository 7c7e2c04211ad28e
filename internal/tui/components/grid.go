package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/cardgrid/internal/domain"
	"github.com/mmcdole/cardgrid/internal/tui/styles"
	"github.com/sahilm/fuzzy"
)

// Layout constants for grid
const (
	// Border adds 1 char on each side (left+right for width, top+bottom for height)
	BorderWidth  = 2
	BorderHeight = 2

	// Each card cell is bordered and shows name, mana cost and type
	CellLines  = 3
	CellHeight = CellLines + BorderHeight

	// Scroll indicators ("↑ more" and "↓ more") each take 1 line
	ScrollIndicatorLines = 2

	MinCellWidth   = 16
	DefaultColumns = 3
)

// Grid renders cards as bordered cells laid out in rows
type Grid struct {
	cards []domain.Card

	// Selection
	cursor    int
	rowOffset int
	columns   int
	maxRows   int
	highlight string
	emptyHint string

	// Dimensions
	width   int
	height  int
	focused bool

	keys GridKeyMap
}

// NewGrid creates a new grid component
func NewGrid(columns int) Grid {
	if columns < 1 {
		columns = DefaultColumns
	}
	return Grid{
		columns:   columns,
		maxRows:   1,
		emptyHint: "No cards",
		keys:      DefaultGridKeyMap(),
	}
}

// SetCards clears the grid and shows cards in input order
func (g *Grid) SetCards(cards []domain.Card) {
	g.cards = append([]domain.Card(nil), cards...)
	g.ScrollTop()
}

// AppendCards adds cards after the current ones and moves the cursor to the
// first appended card. It returns that card's index, or -1 when nothing was added.
func (g *Grid) AppendCards(cards []domain.Card) int {
	if len(cards) == 0 {
		return -1
	}
	first := len(g.cards)
	g.cards = append(g.cards, cards...)
	g.SetCursor(first)
	return first
}

// ScrollTop moves the cursor and viewport to the first card
func (g *Grid) ScrollTop() {
	g.cursor = 0
	g.rowOffset = 0
}

// SetHighlight sets the term whose characters are highlighted in card names
func (g *Grid) SetHighlight(term string) {
	g.highlight = term
}

// SetEmptyHint sets the text shown when there are no cards
func (g *Grid) SetEmptyHint(hint string) {
	g.emptyHint = hint
}

// SetSize updates the component dimensions
func (g *Grid) SetSize(width, height int) {
	g.width = width
	g.height = height
	g.recalcMaxRows()
	g.ensureVisible()
}

func (g *Grid) recalcMaxRows() {
	interior := g.height - BorderHeight - ScrollIndicatorLines
	g.maxRows = interior / CellHeight
	if g.maxRows < 1 {
		g.maxRows = 1
	}
}

// SetFocused sets the focus state
func (g *Grid) SetFocused(focused bool) {
	g.focused = focused
}

// Len returns the number of rendered cells
func (g Grid) Len() int {
	return len(g.cards)
}

// Cards returns the rendered cards in display order
func (g Grid) Cards() []domain.Card {
	return g.cards
}

// Cursor returns the current cursor position
func (g Grid) Cursor() int {
	return g.cursor
}

// SetCursor sets the cursor position
func (g *Grid) SetCursor(pos int) {
	last := len(g.cards) - 1
	if last < 0 {
		g.cursor = 0
		return
	}
	if pos < 0 {
		pos = 0
	}
	if pos > last {
		pos = last
	}
	g.cursor = pos
	g.ensureVisible()
}

// Selected returns the card under the cursor
func (g Grid) Selected() (domain.Card, bool) {
	if g.cursor < 0 || g.cursor >= len(g.cards) {
		return domain.Card{}, false
	}
	return g.cards[g.cursor], true
}

// ensureVisible keeps the cursor's row inside the viewport
func (g *Grid) ensureVisible() {
	row := g.cursor / g.columns
	if row < g.rowOffset {
		g.rowOffset = row
	}
	if row >= g.rowOffset+g.maxRows {
		g.rowOffset = row - g.maxRows + 1
	}
}

// Update handles cursor movement keys
func (g Grid) Update(msg tea.Msg) (Grid, tea.Cmd) {
	if !g.focused || len(g.cards) == 0 {
		return g, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return g, nil
	}

	switch {
	case key.Matches(keyMsg, g.keys.Left):
		g.SetCursor(g.cursor - 1)
	case key.Matches(keyMsg, g.keys.Right):
		g.SetCursor(g.cursor + 1)
	case key.Matches(keyMsg, g.keys.Up):
		if g.cursor-g.columns >= 0 {
			g.SetCursor(g.cursor - g.columns)
		}
	case key.Matches(keyMsg, g.keys.Down):
		if g.cursor+g.columns < len(g.cards) {
			g.SetCursor(g.cursor + g.columns)
		}
	case key.Matches(keyMsg, g.keys.Home):
		g.ScrollTop()
	case key.Matches(keyMsg, g.keys.End):
		g.SetCursor(len(g.cards) - 1)
	}

	return g, nil
}

// View renders the component
func (g Grid) View() string {
	style := styles.InactiveBorder
	if g.focused {
		style = styles.ActiveBorder
	}

	// Subtract frame (border) size so total rendered size equals g.width x g.height
	frameW, frameH := style.GetFrameSize()

	return style.
		Width(max(g.width-frameW, 0)).
		Height(max(g.height-frameH, 0)).
		Render(g.renderCells())
}

func (g Grid) renderCells() string {
	if len(g.cards) == 0 {
		return " \n" + styles.DimStyle.Render(g.emptyHint)
	}

	cellWidth := g.cellWidth()
	rows := (len(g.cards) + g.columns - 1) / g.columns
	end := min(g.rowOffset+g.maxRows, rows)

	var lines []string
	for row := g.rowOffset; row < end; row++ {
		var cells []string
		for col := 0; col < g.columns; col++ {
			i := row*g.columns + col
			if i >= len(g.cards) {
				break
			}
			cells = append(cells, g.renderCell(g.cards[i], i == g.cursor, cellWidth))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	// Reserve both indicator lines so the layout does not shift while scrolling
	header := " "
	if g.rowOffset > 0 {
		header = styles.DimStyle.Render("↑ more")
	}
	footer := " "
	if end < rows {
		footer = styles.DimStyle.Render("↓ more")
	}

	return header + "\n" + strings.Join(lines, "\n") + "\n" + footer
}

// cellWidth is the width of one cell including padding, excluding its border
func (g Grid) cellWidth() int {
	w := (g.width-BorderWidth)/g.columns - BorderWidth
	if w < MinCellWidth {
		w = MinCellWidth
	}
	return w
}

func (g Grid) renderCell(card domain.Card, selected bool, width int) string {
	textWidth := width - 2 // Padding(0, 1)
	lines := []string{
		highlightMatches(styles.Truncate(card.Name, textWidth), g.highlight),
		styles.ManaStyle.Render(styles.Truncate(orDash(card.ManaCost), textWidth)),
		styles.SubtitleStyle.Render(styles.Truncate(orDash(card.Type), textWidth)),
	}

	style := styles.CardCellStyle
	if selected {
		style = styles.CardCellSelectedStyle
	}
	return style.Width(width).Render(strings.Join(lines, "\n"))
}

// highlightMatches renders name with the characters matched by term emphasized
func highlightMatches(name, term string) string {
	if term == "" {
		return styles.NameStyle.Render(name)
	}

	matched := matchedBytes(name, term)
	if len(matched) == 0 {
		return styles.NameStyle.Render(name)
	}

	var b strings.Builder
	for i, r := range name {
		if matched[i] {
			b.WriteString(styles.MatchHighlightStyle.Render(string(r)))
		} else {
			b.WriteString(styles.NameStyle.Render(string(r)))
		}
	}
	return b.String()
}

// matchedBytes returns the byte offsets in name of the runes matched by term.
// Matching is case-insensitive and runs on name itself so offsets line up
// with ranging over name.
func matchedBytes(name, term string) map[int]bool {
	matches := fuzzy.Find(term, []string{name})
	if len(matches) == 0 {
		return nil
	}
	matched := make(map[int]bool, len(matches[0].MatchedIndexes))
	for _, idx := range matches[0].MatchedIndexes {
		matched[idx] = true
	}
	return matched
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
