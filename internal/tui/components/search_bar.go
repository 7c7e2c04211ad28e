package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/cardgrid/internal/tui/styles"
)

// SearchBar is the always-visible search input above the grid
type SearchBar struct {
	input textinput.Model
	width int
}

// NewSearchBar creates a new search bar
func NewSearchBar() SearchBar {
	ti := textinput.New()
	ti.Placeholder = "Search cards..."
	ti.CharLimit = 100
	ti.Prompt = "/ "
	ti.PromptStyle = styles.SearchPromptStyle
	ti.TextStyle = styles.SearchStyle
	ti.PlaceholderStyle = styles.DimStyle

	return SearchBar{input: ti}
}

// Value returns the current input text
func (s SearchBar) Value() string {
	return s.input.Value()
}

// SetValue replaces the input text without reporting a change
func (s *SearchBar) SetValue(value string) {
	s.input.SetValue(value)
	s.input.CursorEnd()
}

// Focus focuses the input
func (s *SearchBar) Focus() tea.Cmd {
	return s.input.Focus()
}

// Blur removes focus from the input
func (s *SearchBar) Blur() {
	s.input.Blur()
}

// Focused reports whether the input has focus
func (s SearchBar) Focused() bool {
	return s.input.Focused()
}

// SetWidth updates the component width
func (s *SearchBar) SetWidth(width int) {
	s.width = width
	frameW, _ := styles.ActiveBorder.GetFrameSize()
	s.input.Width = max(width-frameW-len(s.input.Prompt)-1, 1)
}

// Update routes input events to the text input, returns (bar, cmd, changed)
func (s SearchBar) Update(msg tea.Msg) (SearchBar, tea.Cmd, bool) {
	if !s.input.Focused() {
		return s, nil, false
	}

	before := s.input.Value()
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd, s.input.Value() != before
}

// View renders the component
func (s SearchBar) View() string {
	style := styles.InactiveBorder
	if s.input.Focused() {
		style = styles.ActiveBorder
	}
	frameW, _ := style.GetFrameSize()
	return style.Width(max(s.width-frameW, 0)).Render(s.input.View())
}
