// Package catalog serves cards from a fixed in-memory list, either the
// built-in sample set or a file, filtering and paginating locally.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"gopkg.in/yaml.v3"

	"github.com/mmcdole/cardgrid/internal/domain"
)

// MatchMode selects how a search term is compared with cards
type MatchMode string

const (
	// MatchSubstring keeps cards whose name or type contains the term, ignoring case
	MatchSubstring MatchMode = "substring"
	// MatchFuzzy keeps cards whose name or type fuzzily contains the term, best first
	MatchFuzzy MatchMode = "fuzzy"
)

// entry is the on-disk shape of a catalog card
type entry struct {
	Name     string `json:"name" yaml:"name" toml:"name"`
	ManaCost string `json:"mana_cost" yaml:"mana_cost" toml:"mana_cost"`
	Type     string `json:"type_line" yaml:"type_line" toml:"type_line"`
	ImageURL string `json:"image_url" yaml:"image_url" toml:"image_url"`
}

// file is the top-level TOML document; TOML cannot hold a bare array
type file struct {
	Cards []entry `toml:"cards" yaml:"cards" json:"cards"`
}

// Catalog implements domain.CardSource over an in-memory card list
type Catalog struct {
	cards []domain.Card
	mode  MatchMode
}

// New creates a catalog over cards
func New(cards []domain.Card, mode MatchMode) *Catalog {
	if mode == "" {
		mode = MatchSubstring
	}
	return &Catalog{cards: cards, mode: mode}
}

// Builtin returns a catalog over the sample cards
func Builtin(mode MatchMode) *Catalog {
	return New(SampleCards(), mode)
}

// Load reads a catalog file. The format follows the extension: .yaml/.yml,
// .toml or .json. YAML and JSON accept either a list of cards or a
// {cards: [...]} document.
func Load(path string, mode MatchMode) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	entries, err := decode(filepath.Ext(path), data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}

	cards := make([]domain.Card, 0, len(entries))
	for _, e := range entries {
		cards = append(cards, domain.Card{
			Name:     e.Name,
			ManaCost: e.ManaCost,
			Type:     e.Type,
			ImageURL: e.ImageURL,
		})
	}
	return New(cards, mode), nil
}

func decode(ext string, data []byte) ([]entry, error) {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		var list []entry
		if err := yaml.Unmarshal(data, &list); err == nil {
			return list, nil
		}
		var doc file
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
		return doc.Cards, nil

	case ".toml":
		var doc file
		if _, err := toml.Decode(string(data), &doc); err != nil {
			return nil, err
		}
		return doc.Cards, nil

	case ".json":
		var list []entry
		if err := json.Unmarshal(data, &list); err == nil {
			return list, nil
		}
		var doc file
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
		return doc.Cards, nil

	default:
		return nil, fmt.Errorf("unsupported catalog format %q", ext)
	}
}

// Len returns the number of cards in the catalog
func (c *Catalog) Len() int {
	return len(c.cards)
}

// ListCards filters the catalog by the search term and returns the requested page
func (c *Catalog) ListCards(ctx context.Context, q domain.CardQuery) ([]domain.Card, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	matched := c.filter(q.Search)

	offset := q.Offset()
	if offset >= len(matched) {
		return []domain.Card{}, nil
	}
	end := len(matched)
	if q.Limit > 0 && offset+q.Limit < end {
		end = offset + q.Limit
	}

	page := make([]domain.Card, end-offset)
	copy(page, matched[offset:end])
	return page, nil
}

func (c *Catalog) filter(term string) []domain.Card {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return c.cards
	}

	if c.mode == MatchFuzzy {
		return c.fuzzyFilter(term)
	}

	var matched []domain.Card
	for _, card := range c.cards {
		if strings.Contains(strings.ToLower(card.Name), term) ||
			strings.Contains(strings.ToLower(card.Type), term) {
			matched = append(matched, card)
		}
	}
	return matched
}

// fuzzyFilter ranks cards by the better of their name and type distance
func (c *Catalog) fuzzyFilter(term string) []domain.Card {
	names := make([]string, len(c.cards))
	types := make([]string, len(c.cards))
	for i, card := range c.cards {
		names[i] = card.Name
		types[i] = card.Type
	}

	best := make(map[int]int)
	collect := func(ranks fuzzy.Ranks) {
		for _, r := range ranks {
			if d, ok := best[r.OriginalIndex]; !ok || r.Distance < d {
				best[r.OriginalIndex] = r.Distance
			}
		}
	}
	collect(fuzzy.RankFindNormalizedFold(term, names))
	collect(fuzzy.RankFindNormalizedFold(term, types))

	indexes := make([]int, 0, len(best))
	for i := range best {
		indexes = append(indexes, i)
	}
	sort.Slice(indexes, func(a, b int) bool {
		da, db := best[indexes[a]], best[indexes[b]]
		if da != db {
			return da < db
		}
		return indexes[a] < indexes[b]
	})

	matched := make([]domain.Card, len(indexes))
	for i, idx := range indexes {
		matched[i] = c.cards[idx]
	}
	return matched
}
