package cardapi

// WireCard is a card as returned by GET /api/cards. The service stores these
// columns as nullable, so any of them may arrive as JSON null.
type WireCard struct {
	Name     string `json:"name"`
	ManaCost string `json:"mana_cost"`
	TypeLine string `json:"type_line"`
	ImageURL string `json:"image_url"`
}
