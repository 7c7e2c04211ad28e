package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/cardgrid/internal/tui/styles"
)

// RenderSpinner renders a loading spinner
func RenderSpinner(frame int) string {
	frames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	return styles.SpinnerStyle.Render(frames[frame%len(frames)])
}

// RenderError renders a fetch failure with the retry affordance
func RenderError(err error) string {
	return styles.ErrorStyle.Render("Failed to load cards: "+err.Error()) +
		styles.DimStyle.Render(" · press ") +
		styles.AccentStyle.Render("r") +
		styles.DimStyle.Render(" to retry")
}

// renderFooter renders a single-line footer: status on the left, location
// and help hint on the right
func (m Model) renderFooter() string {
	var left string
	switch {
	case m.Loading:
		left = RenderSpinner(m.SpinnerFrame) + " " + styles.DimStyle.Render("Loading...")
	case m.state.HasError():
		left = RenderError(m.state.Err)
	case m.StatusMsg != "":
		if m.StatusIsErr {
			left = styles.ErrorStyle.Render(m.StatusMsg)
		} else {
			left = styles.StatusStyle.Render(m.StatusMsg)
		}
	default:
		left = styles.DimStyle.Render(fmt.Sprintf("Page %d · %d cards", m.state.Page, m.Grid.Len()))
	}

	right := styles.LocationStyle.Render(m.state.Location()) + "  " +
		styles.AccentStyle.Render("?") + styles.DimStyle.Render(" help")

	gap := m.Width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		// Not enough space - drop the location
		right = styles.AccentStyle.Render("?") + styles.DimStyle.Render(" help")
		gap = max(m.Width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	}

	return left + strings.Repeat(" ", gap) + right
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	help := `
BROWSE                          SEARCH
  h/j/k/l    Move selection        /, Tab   Focus search
  g/Home     First card            Esc      Back to grid
  G/End      Last card             Ctrl+n   Load more while typing

PAGES                           OTHER
  n          Load more             q        Quit
  p          Previous page         ?        This help
  r          Retry after error
  R          Refresh (drop cached pages)

Press any key to return...
`

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(help))
}
