package components

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mmcdole/cardgrid/internal/domain"
)

func TestPreviewPaneIgnoresArtForOtherCard(t *testing.T) {
	p := NewPreviewPane()
	p.SetSize(40, 20)

	first := domain.Card{Name: "Shock", ImageURL: "https://img/shock"}
	second := domain.Card{Name: "Opt", ImageURL: "https://img/opt"}

	p.SetCard(first, true)
	assert.True(t, p.NeedsArt())
	p.SetLoading(true)
	assert.False(t, p.NeedsArt())

	p.SetCard(second, true)
	assert.True(t, p.NeedsArt())

	assert.False(t, p.SetArt(first.ImageURL, "old art"))
	assert.Empty(t, p.Art())

	assert.True(t, p.SetArt(second.ImageURL, "new art"))
	assert.Equal(t, "new art", p.Art())
	assert.False(t, p.NeedsArt())
	assert.Contains(t, p.View(), "Opt")
}

func TestPreviewPaneWithoutImage(t *testing.T) {
	p := NewPreviewPane()
	p.SetSize(40, 20)
	p.SetCard(domain.Card{Name: "Plains"}, true)

	assert.False(t, p.NeedsArt())
	assert.Contains(t, p.View(), "No image")
}

func TestPreviewPaneFailure(t *testing.T) {
	p := NewPreviewPane()
	p.SetSize(40, 20)
	card := domain.Card{Name: "Shock", ImageURL: "https://img/shock"}
	p.SetCard(card, true)
	p.SetLoading(true)
	p.SetFailed(card.ImageURL)

	assert.False(t, p.NeedsArt())
	assert.Contains(t, p.View(), "No image")
}
