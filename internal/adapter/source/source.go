package source

import (
	"fmt"
	"log/slog"

	"github.com/mmcdole/cardgrid/internal/adapter"
	"github.com/mmcdole/cardgrid/internal/adapter/source/cardapi"
	"github.com/mmcdole/cardgrid/internal/adapter/source/catalog"
	"github.com/mmcdole/cardgrid/internal/adapter/source/scryfall"
	"github.com/mmcdole/cardgrid/internal/domain"
)

// NewClient creates the CardSource selected by the configuration.
// This factory function abstracts away the specific backend implementation.
func NewClient(cfg *adapter.SourceConfig, logger *slog.Logger) (domain.CardSource, error) {
	if cfg == nil {
		return nil, fmt.Errorf("source config is nil")
	}

	switch cfg.Type {
	case adapter.SourceTypeAPI:
		if cfg.URL == "" {
			return nil, fmt.Errorf("listing service URL is required")
		}
		return cardapi.NewClient(cfg.URL, logger, cardapi.WithMaxRetries(cfg.MaxRetries)), nil

	case adapter.SourceTypeScryfall:
		return scryfall.New(cfg.ScryfallDefaultQuery, logger)

	case adapter.SourceTypeCatalog:
		mode := catalog.MatchMode(cfg.Match)
		if mode != catalog.MatchSubstring && mode != catalog.MatchFuzzy && mode != "" {
			return nil, fmt.Errorf("unknown catalog match mode: %s", cfg.Match)
		}
		if cfg.CatalogFile == "" {
			return catalog.Builtin(mode), nil
		}
		return catalog.Load(cfg.CatalogFile, mode)

	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownSource, cfg.Type)
	}
}

// NewClientFromConfig creates a CardSource from the application config
func NewClientFromConfig(cfg *adapter.Config, logger *slog.Logger) (domain.CardSource, error) {
	return NewClient(&cfg.Source, logger)
}
