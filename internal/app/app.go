package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tmux-quicklaunch/internal/backend"
	"github.com/atomicstack/tmux-quicklaunch/internal/catalog"
	"github.com/atomicstack/tmux-quicklaunch/internal/launch"
	"github.com/atomicstack/tmux-quicklaunch/internal/launcher"
	"github.com/atomicstack/tmux-quicklaunch/internal/logging/events"
	"github.com/atomicstack/tmux-quicklaunch/internal/search"
	"github.com/atomicstack/tmux-quicklaunch/internal/tmux"
	"github.com/atomicstack/tmux-quicklaunch/internal/ui"
	"github.com/atomicstack/tmux-quicklaunch/internal/window"
)

// Config describes user-provided application options.
type Config struct {
	SocketPath string `toml:"socket"`
	Width      int    `toml:"width" validate:"gte=0"`
	Height     int    `toml:"height" validate:"gte=0"`
	ShowFooter bool   `toml:"footer"`

	Engine   string        `toml:"engine" validate:"oneof=fuzzy bleve"`
	Limit    int           `toml:"limit" validate:"gte=1,lte=100"`
	Roots    []string      `toml:"roots"`
	AppDirs  []string      `toml:"app-dirs"`
	MaxDepth int           `toml:"max-depth" validate:"gte=0,lte=32"`
	Reindex  time.Duration `toml:"reindex" validate:"gte=0"`

	Launch     string `toml:"launch" validate:"oneof=open tmux"`
	Opener     string `toml:"opener"`
	Window     string `toml:"window" validate:"oneof=popup pane"`
	PaneTarget string `toml:"pane-target"`
	Resident   bool   `toml:"resident"`

	Errors   string        `toml:"errors" validate:"oneof=log show"`
	Debounce time.Duration `toml:"debounce" validate:"gte=0"`
}

// NeedsTmux reports whether any collaborator talks to the tmux server.
func (c Config) NeedsTmux() bool {
	return c.Window == window.ModePane || c.Launch == launch.ModeTmux
}

// Runtime holds the wired collaborators for one program run.
type Runtime struct {
	Model    *ui.Model
	Watcher  *backend.Watcher
	Searcher launcher.Searcher
}

// Close stops the watcher and releases the search engine.
func (r *Runtime) Close() {
	if r.Watcher != nil {
		r.Watcher.Stop()
	}
	if closer, ok := r.Searcher.(io.Closer); ok {
		_ = closer.Close()
	}
}

var (
	crawlCatalog = catalog.Crawl
	currentPane  = tmux.CurrentPane
)

// Build wires the catalog, search engine, launcher and window around a new
// UI model. The watcher starts crawling immediately.
func Build(cfg Config) (*Runtime, error) {
	socketPath := cfg.SocketPath
	if cfg.NeedsTmux() {
		resolved, err := tmux.ResolveSocketPath(cfg.SocketPath)
		if err != nil {
			return nil, fmt.Errorf("resolve socket path: %w", err)
		}
		socketPath = resolved
	}
	paneTarget := cfg.PaneTarget
	if cfg.Window == window.ModePane {
		// Pin the pane by id so later resizes follow it across moves.
		id, err := currentPane(socketPath, cfg.PaneTarget)
		if err != nil {
			return nil, fmt.Errorf("resolve pane %q: %w", cfg.PaneTarget, err)
		}
		paneTarget = id
	}

	store := catalog.NewStore()
	searcher, err := search.New(cfg.Engine, store, cfg.Limit)
	if err != nil {
		return nil, err
	}
	starter, err := launch.New(launch.Options{Mode: cfg.Launch, Opener: cfg.Opener, SocketPath: socketPath})
	if err != nil {
		return nil, err
	}
	win, err := window.New(window.Options{
		Mode:       cfg.Window,
		SocketPath: socketPath,
		PaneTarget: paneTarget,
		Metrics:    window.DefaultCellMetrics,
	})
	if err != nil {
		return nil, err
	}

	crawlOpts := catalog.Options{AppDirs: cfg.AppDirs, Roots: cfg.Roots, MaxDepth: cfg.MaxDepth}
	watcher := backend.NewWatcher(func(ctx context.Context) ([]launcher.SearchResult, error) {
		return crawlCatalog(ctx, crawlOpts)
	}, cfg.Reindex)

	model := ui.NewModel(ui.Options{
		Searcher:    searcher,
		Launcher:    starter,
		Window:      win,
		Watcher:     watcher,
		Catalog:     store,
		Width:       cfg.Width,
		Height:      cfg.Height,
		ShowFooter:  cfg.ShowFooter,
		Resident:    cfg.Resident && cfg.Window == window.ModePane,
		ErrorPolicy: cfg.Errors,
		Debounce:    cfg.Debounce,
	})
	return &Runtime{Model: model, Watcher: watcher, Searcher: searcher}, nil
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	rt, err := Build(cfg)
	if err != nil {
		return err
	}
	defer rt.Close()
	program := tea.NewProgram(rt.Model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
	)
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		events.App.Exit("killed")
		return nil
	}
	return err
}
