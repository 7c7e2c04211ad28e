package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/cardgrid/internal/browse"
	"github.com/mmcdole/cardgrid/internal/domain"
	"github.com/mmcdole/cardgrid/internal/tui/components"
)

// Layout
const (
	SearchBarHeight     = 3
	ChromeHeight        = 1 // footer
	DefaultPreviewWidth = 36
	MinWidthForPreview  = 80

	spinnerInterval = 100 * time.Millisecond
	statusTimeout   = 3 * time.Second
)

// CardFetcher loads one page of cards
type CardFetcher interface {
	Fetch(ctx context.Context, q domain.CardQuery) ([]domain.Card, error)
}

// cacheInvalidator is implemented by fetchers that cache pages
type cacheInvalidator interface {
	InvalidateAll()
}

// PreviewRenderer renders the image at url as terminal art
type PreviewRenderer interface {
	Render(ctx context.Context, url string) (string, error)
}

// Deps are the collaborators the browser needs. Cards and Locations are
// required; a nil Preview disables image art.
type Deps struct {
	Cards     CardFetcher
	Locations domain.LocationStore
	Preview   PreviewRenderer
	Logger    *slog.Logger
}

// Options tune the browser's behaviour
type Options struct {
	// Location overrides the persisted location when non-empty
	Location       string
	Limit          int
	Debounce       time.Duration
	Mode           browse.RenderMode
	RequestTimeout time.Duration
	Columns        int
	PreviewWidth   int
}

func (o Options) withDefaults() Options {
	if o.Limit < 1 {
		o.Limit = browse.DefaultLimit
	}
	if o.Debounce <= 0 {
		o.Debounce = 300 * time.Millisecond
	}
	if o.Mode == "" {
		o.Mode = browse.ModeReplace
	}
	if o.RequestTimeout <= 0 {
		o.RequestTimeout = 15 * time.Second
	}
	if o.Columns < 1 {
		o.Columns = components.DefaultColumns
	}
	if o.PreviewWidth < 1 {
		o.PreviewWidth = DefaultPreviewWidth
	}
	return o
}

// Model is the card browser: a search bar over a grid of cards, driven by
// one browse.State that is mirrored into the persisted location.
type Model struct {
	Ready    bool
	ShowHelp bool

	// Services
	cards     CardFetcher
	locations domain.LocationStore
	previewer PreviewRenderer
	logger    *slog.Logger
	opts      Options

	// Browse state
	state      browse.State
	seq        browse.Sequencer
	cancel     context.CancelFunc
	debounceID int
	lastKind   fetchKind
	initCmd    tea.Cmd

	// UI Components
	Search  components.SearchBar
	Grid    components.Grid
	Preview components.PreviewPane

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg    string
	StatusIsErr  bool
	Loading      bool
	SpinnerFrame int
}

// NewModel creates the browser. The initial state comes from opts.Location,
// else the persisted location, else defaults, and the first fetch is queued
// for Init.
func NewModel(deps Deps, opts Options) (Model, error) {
	if deps.Cards == nil {
		return Model{}, fmt.Errorf("%w: card service", domain.ErrMissingComponent)
	}
	if deps.Locations == nil {
		return Model{}, fmt.Errorf("%w: location store", domain.ErrMissingComponent)
	}

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	opts = opts.withDefaults()

	location := opts.Location
	if location == "" {
		if saved, ok := deps.Locations.Location(); ok {
			location = saved
		}
	}

	m := Model{
		cards:     deps.Cards,
		locations: deps.Locations,
		previewer: deps.Preview,
		logger:    logger,
		opts:      opts,
		state:     browse.ParseLocation(location, opts.Limit),
		Search:    components.NewSearchBar(),
		Grid:      components.NewGrid(opts.Columns),
		Preview:   components.NewPreviewPane(),
	}

	m.Search.SetValue(m.state.Search)
	m.Search.Focus()
	m.Grid.SetHighlight(m.state.Search)
	m.updateEmptyHint()

	logger.Info("starting browser", "location", m.state.Location(), "mode", string(opts.Mode))
	m.initCmd = m.fetch(m.reloadKind())

	return m, nil
}

// Init starts the initial fetch
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.initCmd,
		textinput.Blink,
		TickCmd(spinnerInterval),
	)
}

// State returns the current browse state
func (m Model) State() browse.State {
	return m.state
}

// Location returns the location string for the current state
func (m Model) Location() string {
	return m.state.Location()
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case SearchDebouncedMsg:
		return m.handleSearchDebounced(msg)

	case CardsLoadedMsg:
		return m.handleCardsLoaded(msg)

	case FetchFailedMsg:
		return m.handleFetchFailed(msg)

	case PreviewLoadedMsg:
		m.Preview.SetArt(msg.URL, msg.Art)
		return m, nil

	case PreviewFailedMsg:
		m.logger.Debug("preview failed", "url", msg.URL, "error", msg.Err)
		m.Preview.SetFailed(msg.URL)
		return m, nil

	case TickMsg:
		m.SpinnerFrame++
		return m, TickCmd(spinnerInterval)

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil
	}

	// Cursor blink and other input internals
	var cmd tea.Cmd
	m.Search, cmd, _ = m.Search.Update(msg)
	return m, cmd
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, Keys.ForceQuit) {
		return m.quit()
	}

	if m.ShowHelp {
		m.ShowHelp = false
		return m, nil
	}

	if m.Search.Focused() {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		return m.quit()
	case key.Matches(msg, Keys.Help):
		m.ShowHelp = true
		return m, nil
	case key.Matches(msg, Keys.FocusSearch, Keys.Switch):
		return m, m.focusSearch()
	case key.Matches(msg, Keys.LoadMore):
		return m, m.loadMore()
	case key.Matches(msg, Keys.PrevPage):
		return m, m.prevPage()
	case key.Matches(msg, Keys.Retry):
		return m, m.retry()
	case key.Matches(msg, Keys.Refresh):
		return m, m.refresh()
	}

	before := m.Grid.Cursor()
	var cmd tea.Cmd
	m.Grid, cmd = m.Grid.Update(msg)
	if m.Grid.Cursor() != before {
		return m, tea.Batch(cmd, m.selectionChanged())
	}
	return m, cmd
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlN:
		return m, m.loadMore()
	case key.Matches(msg, Keys.FocusGrid, Keys.Switch):
		m.focusGrid()
		return m, nil
	}

	var cmd tea.Cmd
	var changed bool
	m.Search, cmd, changed = m.Search.Update(msg)
	if !changed {
		return m, cmd
	}

	m.debounceID++
	return m, tea.Batch(cmd, DebounceCmd(m.debounceID, m.Search.Value(), m.opts.Debounce))
}

// handleSearchDebounced fetches page 1 for the settled input. Ticks from
// earlier keystrokes carry an older ID and are dropped.
func (m Model) handleSearchDebounced(msg SearchDebouncedMsg) (tea.Model, tea.Cmd) {
	if msg.ID != m.debounceID {
		return m, nil
	}

	m.state = m.state.WithSearch(strings.ToLower(msg.Text))
	m.Grid.SetHighlight(m.state.Search)
	m.updateEmptyHint()
	return m, m.fetch(m.reloadKind())
}

func (m Model) handleCardsLoaded(msg CardsLoadedMsg) (tea.Model, tea.Cmd) {
	if !m.seq.IsLatest(msg.Seq) {
		m.logger.Debug("discarding stale response", "seq", msg.Seq, "latest", m.seq.Latest(), "query", msg.Query.String())
		return m, nil
	}
	m.finishRequest()
	m.state = m.state.Succeeded()

	m.logger.Debug("cards loaded", "query", msg.Query.String(), "count", len(msg.Cards), "append", msg.Append)

	var status tea.Cmd
	if msg.Append {
		if m.Grid.AppendCards(msg.Cards) < 0 {
			status = m.setStatus("No more cards", false)
		}
	} else {
		m.Grid.SetCards(msg.Cards)
	}

	return m, tea.Batch(status, m.selectionChanged())
}

// handleFetchFailed records the failure of the latest request and leaves the
// grid as it was
func (m Model) handleFetchFailed(msg FetchFailedMsg) (tea.Model, tea.Cmd) {
	if !m.seq.IsLatest(msg.Seq) {
		m.logger.Debug("discarding stale failure", "seq", msg.Seq, "latest", m.seq.Latest(), "error", msg.Err)
		return m, nil
	}
	m.finishRequest()

	m.logger.Error("failed to load cards", "query", msg.Query.String(), "error", msg.Err)

	var status tea.Cmd
	if m.lastKind == fetchAppend {
		// The grid still ends at the previous page; point the location back
		// at it so the next load more asks for the failed page again
		m.state = m.state.PrevPage()
		status = m.saveLocation()
	}
	m.state = m.state.Failed(msg.Err)
	return m, status
}

// fetchKind selects what a request loads and how the grid takes the result
type fetchKind int

const (
	fetchReplace fetchKind = iota // current page replaces the grid
	fetchAppend                   // current page is added after the grid
	fetchThrough                  // pages 1..current replace the grid
)

// reloadKind is how the current state is loaded from scratch. In append mode
// the grid holds every page up to the current one.
func (m Model) reloadKind() fetchKind {
	if m.opts.Mode == browse.ModeAppend && m.state.Page > browse.DefaultPage {
		return fetchThrough
	}
	return fetchReplace
}

// fetch starts a request for the current state. Any request still in flight
// is cancelled and the location is rewritten to the parameters used.
func (m *Model) fetch(kind fetchKind) tea.Cmd {
	if m.cancel != nil {
		m.cancel()
	}
	ctx, cancel := context.WithTimeout(context.Background(), m.opts.RequestTimeout)
	m.cancel = cancel

	seq := m.seq.Next()
	q := m.state.Query()
	m.lastKind = kind
	m.Loading = true
	status := m.saveLocation()

	m.logger.Debug("fetching cards", "seq", seq, "query", q.String(), "kind", int(kind))

	var cmd tea.Cmd
	switch kind {
	case fetchThrough:
		cmd = FetchThroughCmd(ctx, m.cards, q, seq)
	default:
		cmd = FetchCardsCmd(ctx, m.cards, q, seq, kind == fetchAppend)
	}
	return tea.Batch(status, cmd)
}

func (m *Model) finishRequest() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.Loading = false
}

func (m *Model) saveLocation() tea.Cmd {
	location := m.state.Location()
	if err := m.locations.SaveLocation(location); err != nil {
		m.logger.Warn("failed to save location", "location", location, "error", err)
		return m.setStatus(ErrMsg{Err: err, Context: "saving location"}.Error(), true)
	}
	return nil
}

func (m *Model) loadMore() tea.Cmd {
	m.state = m.state.NextPage()
	if m.opts.Mode == browse.ModeAppend {
		return m.fetch(fetchAppend)
	}
	return m.fetch(fetchReplace)
}

func (m *Model) prevPage() tea.Cmd {
	if m.opts.Mode == browse.ModeAppend {
		return m.setStatus("Previous page is not available in append mode", false)
	}
	if m.state.Page <= browse.DefaultPage {
		return nil
	}
	m.state = m.state.PrevPage()
	return m.fetch(fetchReplace)
}

func (m *Model) retry() tea.Cmd {
	if !m.state.HasError() {
		return nil
	}
	if m.lastKind == fetchAppend {
		// The failed page was rolled back; ask for it again
		return m.loadMore()
	}
	return m.fetch(m.lastKind)
}

// refresh drops cached pages and reloads what the grid shows
func (m *Model) refresh() tea.Cmd {
	if c, ok := m.cards.(cacheInvalidator); ok {
		c.InvalidateAll()
	}
	return m.fetch(m.reloadKind())
}

// selectionChanged syncs the preview pane with the grid cursor and requests
// art for the selected card when needed
func (m *Model) selectionChanged() tea.Cmd {
	card, ok := m.Grid.Selected()
	m.Preview.SetCard(card, ok)
	if m.previewer == nil || !m.Preview.NeedsArt() {
		return nil
	}
	m.Preview.SetLoading(true)
	return PreviewCmd(m.previewer, card.ImageURL, m.opts.RequestTimeout)
}

func (m *Model) focusSearch() tea.Cmd {
	m.Grid.SetFocused(false)
	return m.Search.Focus()
}

func (m *Model) focusGrid() {
	m.Search.Blur()
	m.Grid.SetFocused(true)
}

func (m *Model) updateEmptyHint() {
	if m.state.Search == "" {
		m.Grid.SetEmptyHint("No cards")
		return
	}
	m.Grid.SetEmptyHint(fmt.Sprintf("No cards match %q", m.state.Search))
}

func (m *Model) setStatus(msg string, isErr bool) tea.Cmd {
	m.StatusMsg = msg
	m.StatusIsErr = isErr
	return ClearStatusCmd(statusTimeout)
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	return m, tea.Quit
}

func (m Model) previewVisible() bool {
	return m.previewer != nil && m.Width >= MinWidthForPreview
}

// updateLayout updates component sizes
func (m *Model) updateLayout() {
	contentHeight := m.Height - SearchBarHeight - ChromeHeight
	gridWidth := m.Width
	if m.previewVisible() {
		gridWidth -= m.opts.PreviewWidth
		m.Preview.SetSize(m.opts.PreviewWidth, contentHeight)
	}

	m.Search.SetWidth(m.Width)
	m.Grid.SetSize(gridWidth, contentHeight)
}

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	if m.ShowHelp {
		return m.renderHelp()
	}

	content := m.Grid.View()
	if m.previewVisible() {
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, m.Preview.View())
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.Search.View(),
		content,
		m.renderFooter(),
	)
}
