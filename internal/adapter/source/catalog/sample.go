package catalog

import "github.com/mmcdole/cardgrid/internal/domain"

// SampleCards returns the built-in demonstration set
func SampleCards() []domain.Card {
	return []domain.Card{
		{Name: "Lightning Bolt", ManaCost: "{R}", Type: "Instant", ImageURL: "https://gatherer.wizards.com/Handlers/Image.ashx?multiverseid=191089&type=card"},
		{Name: "Black Lotus", ManaCost: "{0}", Type: "Artifact", ImageURL: "https://gatherer.wizards.com/Handlers/Image.ashx?multiverseid=382866&type=card"},
		{Name: "Counterspell", ManaCost: "{U}{U}", Type: "Instant", ImageURL: "https://gatherer.wizards.com/Handlers/Image.ashx?multiverseid=202437&type=card"},
		{Name: "Birds of Paradise", ManaCost: "{G}", Type: "Creature", ImageURL: "https://gatherer.wizards.com/Handlers/Image.ashx?multiverseid=221896&type=card"},
		{Name: "Wrath of God", ManaCost: "{2}{W}{W}", Type: "Sorcery", ImageURL: "https://gatherer.wizards.com/Handlers/Image.ashx?multiverseid=413580&type=card"},
		{Name: "Dark Ritual", ManaCost: "{B}", Type: "Instant", ImageURL: "https://gatherer.wizards.com/Handlers/Image.ashx?multiverseid=221510&type=card"},
	}
}
