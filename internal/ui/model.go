package ui

import (
	"reflect"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tmux-quicklaunch/internal/backend"
	"github.com/atomicstack/tmux-quicklaunch/internal/catalog"
	"github.com/atomicstack/tmux-quicklaunch/internal/data/dispatcher"
	"github.com/atomicstack/tmux-quicklaunch/internal/launcher"
	"github.com/atomicstack/tmux-quicklaunch/internal/theme"
	"github.com/atomicstack/tmux-quicklaunch/internal/ui/command"
	uistate "github.com/atomicstack/tmux-quicklaunch/internal/ui/state"
)

// Error surface policies.
const (
	ErrorsLog  = "log"
	ErrorsShow = "show"
)

const (
	DefaultDebounce = 100 * time.Millisecond
	defaultTimeout  = 5 * time.Second
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Options wires the model to its collaborators.
type Options struct {
	Searcher launcher.Searcher
	Launcher launcher.Launcher
	Window   launcher.Window
	Watcher  *backend.Watcher
	Catalog  *catalog.Store

	Width      int
	Height     int
	ShowFooter bool
	// Resident keeps the program running after the overlay is hidden.
	Resident    bool
	ErrorPolicy string
	Debounce    time.Duration
	// Timeout bounds every collaborator call.
	Timeout time.Duration
}

// Model implements the Bubble Tea model for the quick-launch overlay.
type Model struct {
	input     textinput.Model
	results   uistate.ResultSet
	display   uistate.DisplayList
	lastQuery string
	overtype  bool
	focused   bool
	hidden    bool

	debouncer *Debouncer
	search    *SearchDispatcher
	launches  *LaunchCoordinator
	routes    []route

	sizer *WindowSizer

	backend    *backend.Watcher
	backendErr string
	catalog    *catalog.Store
	dispatcher *dispatcher.Dispatcher
	info       catalog.Info

	errMsg      string
	errorPolicy string
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	resident    bool

	handlers map[reflect.Type]msgHandler
}

// NewModel initialises the UI state from opts.
func NewModel(opts Options) *Model {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	delay := opts.Debounce
	if delay <= 0 {
		delay = DefaultDebounce
	}
	store := opts.Catalog
	if store == nil {
		store = catalog.NewStore()
	}
	policy := opts.ErrorPolicy
	if policy != ErrorsShow {
		policy = ErrorsLog
	}
	bus := command.New(timeout)
	m := &Model{
		input:       newQueryInput(),
		focused:     true,
		debouncer:   NewDebouncer(delay),
		search:      NewSearchDispatcher(opts.Searcher, timeout),
		launches:    NewLaunchCoordinator(opts.Launcher, bus),
		backend:     opts.Watcher,
		catalog:     store,
		dispatcher:  dispatcher.New(store),
		info:        store.Info(),
		errorPolicy: policy,
		showFooter:  opts.ShowFooter,
		resident:    opts.Resident,
	}
	if opts.Window != nil {
		m.sizer = NewWindowSizer(opts.Window, timeout)
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	m.routes = m.buildRoutes(defaultKeyMap())
	m.refreshDisplay()
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.resizeCmd()}
	if m.backend != nil {
		cmds = append(cmds, waitForBackendEvent(m.backend))
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if handler := m.handlerFor(msg); handler != nil {
		return m, handler(msg)
	}
	return m, nil
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.MouseMsg{}):      m.handleMouseMsg,
		reflect.TypeOf(tea.FocusMsg{}):      m.handleFocusMsg,
		reflect.TypeOf(tea.BlurMsg{}):       m.handleBlurMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(debounceMsg{}):       m.handleDebounceMsg,
		reflect.TypeOf(searchResultMsg{}):   m.handleSearchResultMsg,
		reflect.TypeOf(launchResultMsg{}):   m.handleLaunchResultMsg,
		reflect.TypeOf(resizedMsg{}):        m.handleResizedMsg,
		reflect.TypeOf(hiddenMsg{}):         m.handleHiddenMsg,
		reflect.TypeOf(backendEventMsg{}):   m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):    m.handleBackendDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

// refreshDisplay recomputes the display list from the settled result set.
func (m *Model) refreshDisplay() {
	m.results.EnsureVisible(uistate.MaxVisibleRows)
	m.display = uistate.Render(m.results.Items, m.results.Selected).WithOffset(m.results.ViewportOffset)
}

func (m *Model) reportError(err error) {
	if err == nil {
		return
	}
	if m.errorPolicy == ErrorsShow {
		m.errMsg = err.Error()
	}
}
