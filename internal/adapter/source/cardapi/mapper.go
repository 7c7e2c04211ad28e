package cardapi

import "github.com/mmcdole/cardgrid/internal/domain"

// MapCard converts a wire card to its display form. Fields are renamed only.
func MapCard(w WireCard) domain.Card {
	return domain.Card{
		Name:     w.Name,
		ManaCost: w.ManaCost,
		Type:     w.TypeLine,
		ImageURL: w.ImageURL,
	}
}

// MapCards converts wire cards to display form, preserving order
func MapCards(wire []WireCard) []domain.Card {
	cards := make([]domain.Card, 0, len(wire))
	for _, w := range wire {
		cards = append(cards, MapCard(w))
	}
	return cards
}
