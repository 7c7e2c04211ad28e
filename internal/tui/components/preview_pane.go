package components

import (
	"strings"

	"github.com/mmcdole/cardgrid/internal/domain"
	"github.com/mmcdole/cardgrid/internal/tui/styles"
)

// PreviewPane shows the selected card's details and its image art
type PreviewPane struct {
	card    domain.Card
	hasCard bool
	art     string
	artURL  string
	loading bool
	failed  bool
	width   int
	height  int
}

// NewPreviewPane creates a new preview pane
func NewPreviewPane() PreviewPane {
	return PreviewPane{}
}

// SetCard sets the card to display. Art for a different image is dropped.
func (p *PreviewPane) SetCard(card domain.Card, ok bool) {
	if !ok || card.ImageURL != p.card.ImageURL {
		p.loading = false
		p.failed = false
	}
	if !ok || card.ImageURL != p.artURL {
		p.art = ""
		p.artURL = ""
	}
	p.card = card
	p.hasCard = ok
}

// SetLoading marks the current card's art as in flight
func (p *PreviewPane) SetLoading(loading bool) {
	p.loading = loading
}

// SetArt sets the rendered art for url. Art for any other image is ignored.
func (p *PreviewPane) SetArt(url, art string) bool {
	if !p.hasCard || p.card.ImageURL != url {
		return false
	}
	p.art = art
	p.artURL = url
	p.loading = false
	p.failed = false
	return true
}

// SetFailed marks the art for url as unavailable
func (p *PreviewPane) SetFailed(url string) {
	if p.hasCard && p.card.ImageURL == url {
		p.failed = true
		p.loading = false
	}
}

// NeedsArt reports whether the current card has an image that has not been rendered
func (p PreviewPane) NeedsArt() bool {
	return p.hasCard && p.card.ImageURL != "" && p.artURL != p.card.ImageURL && !p.loading && !p.failed
}

// Art returns the rendered art, if any
func (p PreviewPane) Art() string {
	return p.art
}

// SetSize updates the component dimensions
func (p *PreviewPane) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// View renders the component
func (p PreviewPane) View() string {
	style := styles.InactiveBorder
	frameW, frameH := style.GetFrameSize()
	contentWidth := max(p.width-frameW, 0)

	var lines []string
	if p.hasCard {
		lines = append(lines,
			styles.TitleStyle.Render(styles.Truncate(p.card.Name, contentWidth)),
			styles.ManaStyle.Render(styles.Truncate(p.card.ManaCost, contentWidth)),
			styles.SubtitleStyle.Render(styles.Truncate(p.card.Type, contentWidth)),
			"",
		)
		switch {
		case p.art != "":
			lines = append(lines, p.art)
		case p.loading:
			lines = append(lines, styles.DimStyle.Render("Loading image..."))
		case p.card.ImageURL == "" || p.failed:
			lines = append(lines, styles.DimStyle.Render("No image"))
		}
	}

	return style.
		Width(contentWidth).
		Height(max(p.height-frameH, 0)).
		Render(strings.Join(lines, "\n"))
}
