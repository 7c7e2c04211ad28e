package browse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLocation(t *testing.T) {
	tests := []struct {
		name     string
		location string
		want     State
	}{
		{"empty", "", State{Page: 1, Limit: 10, Search: ""}},
		{"all fields", "page=2&limit=20&search=bolt", State{Page: 2, Limit: 20, Search: "bolt"}},
		{"leading question mark", "?page=5&limit=3&search=elf", State{Page: 5, Limit: 3, Search: "elf"}},
		{"full url", "http://localhost:3000/?page=4&limit=12&search=wrath#top", State{Page: 4, Limit: 12, Search: "wrath"}},
		{"non-numeric page", "page=abc&limit=20&search=x", State{Page: 1, Limit: 20, Search: "x"}},
		{"non-numeric limit", "page=3&limit=lots", State{Page: 3, Limit: 10, Search: ""}},
		{"zero and negative", "page=0&limit=-4", State{Page: 1, Limit: 10, Search: ""}},
		{"escaped search", "search=black%20lotus", State{Page: 1, Limit: 10, Search: "black lotus"}},
		{"plus as space", "search=dark+ritual", State{Page: 1, Limit: 10, Search: "dark ritual"}},
		{"only limit", "limit=50", State{Page: 1, Limit: 50, Search: ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLocation(tt.location, 10))
		})
	}
}

func TestParseLocationUsesConfiguredDefaultLimit(t *testing.T) {
	assert.Equal(t, 25, ParseLocation("page=2", 25).Limit)
}

func TestLocationKeyOrder(t *testing.T) {
	s := State{Page: 4, Limit: 10, Search: "x"}
	assert.Equal(t, "page=4&limit=10&search=x", s.Location())
}

func TestLocationEscapesSearch(t *testing.T) {
	s := State{Page: 1, Limit: 10, Search: "{r} & {g}"}
	loc := s.Location()

	assert.Equal(t, "page=1&limit=10&search=%7Br%7D+%26+%7Bg%7D", loc)
	assert.Equal(t, s, ParseLocation(loc, 10))
}
