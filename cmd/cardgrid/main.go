package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mmcdole/cardgrid/internal/adapter"
	"github.com/mmcdole/cardgrid/internal/adapter/source"
	"github.com/mmcdole/cardgrid/internal/browse"
	"github.com/mmcdole/cardgrid/internal/domain"
	"github.com/mmcdole/cardgrid/internal/preview"
	"github.com/mmcdole/cardgrid/internal/service"
	"github.com/mmcdole/cardgrid/internal/store"
	"github.com/mmcdole/cardgrid/internal/tui"
)

// Version is set at build time via -ldflags
var Version = "dev"

// Preview art size in terminal cells
const (
	previewArtWidth  = 32
	previewArtHeight = 22
)

var (
	configPath string
	location   string
)

var rootCmd = &cobra.Command{
	Use:   "cardgrid",
	Short: "Browse a card listing service from the terminal",
	Long: `cardgrid shows a searchable, paginated grid of trading cards.

The current page, page size and search term form a location
(page=1&limit=10&search=bolt) that is saved on every change and
restored on the next launch. Pass --location to start somewhere else.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.OutOrStdout())
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "cardgrid %s\n", Version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default ~/.config/cardgrid/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&location, "location", "l", "", "start location, e.g. page=2&limit=10&search=bolt")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(cacheCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app holds the wired services shared by the commands
type app struct {
	cfg    *adapter.Config
	logger *slog.Logger
	source domain.CardSource
	store  *store.BrowseStore
	cards  *service.CardService
}

func setup() (*app, error) {
	cfg, err := adapter.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = adapter.NullLogger()
	}
	slog.SetDefault(logger)

	src, err := source.NewClientFromConfig(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create card source: %w", err)
	}

	st, err := store.NewBrowseStore(cfg.Cache.Dir, cfg.SourceIdentity())
	if err != nil {
		closeSource(src)
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	cards := service.NewCardService(src, st, cfg.Cache.TTL, logger)
	if _, err := cards.PruneExpired(); err != nil {
		logger.Warn("failed to prune cache", "error", err)
	}

	return &app{
		cfg:    cfg,
		logger: logger,
		source: src,
		store:  st,
		cards:  cards,
	}, nil
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.logger.Warn("failed to close store", "error", err)
	}
	closeSource(a.source)
}

func closeSource(src domain.CardSource) {
	if c, ok := src.(io.Closer); ok {
		c.Close()
	}
}

func run(out io.Writer) error {
	a, err := setup()
	if err != nil {
		return err
	}
	defer a.Close()

	a.logger.Info("starting cardgrid", "version", Version, "source", a.cfg.SourceIdentity())

	mode, err := browse.ParseRenderMode(a.cfg.Browse.LoadMore)
	if err != nil {
		return err
	}

	deps := tui.Deps{
		Cards:     a.cards,
		Locations: a.store,
		Logger:    a.logger,
	}
	if a.cfg.UI.Preview {
		deps.Preview = preview.NewRenderer(previewArtWidth, previewArtHeight, a.logger)
	}

	model, err := tui.NewModel(deps, tui.Options{
		Location:       location,
		Limit:          a.cfg.Browse.Limit,
		Debounce:       a.cfg.Browse.Debounce,
		Mode:           mode,
		RequestTimeout: a.cfg.Browse.RequestTimeout,
		Columns:        a.cfg.UI.Columns,
		PreviewWidth:   previewArtWidth + 4,
	})
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())

	a.logger.Info("starting TUI")

	final, err := p.Run()
	if err != nil {
		a.logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	if m, ok := final.(tui.Model); ok {
		a.logger.Info("shutting down", "location", m.Location())
		fmt.Fprintln(out, m.Location())
	}
	return nil
}
