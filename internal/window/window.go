// Package window adapts the overlay's geometry and visibility requests to
// the tmux surface hosting it.
package window

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/atomicstack/tmux-quicklaunch/internal/launcher"
	"github.com/atomicstack/tmux-quicklaunch/internal/tmux"
)

const (
	ModePopup = "popup"
	ModePane  = "pane"
)

// CellMetrics converts logical units to terminal cells.
type CellMetrics struct {
	Width  int
	Height int
}

// DefaultCellMetrics approximates a terminal cell in logical units.
var DefaultCellMetrics = CellMetrics{Width: 8, Height: 24}

// Cells converts a logical size to whole cells, rounding up.
func (m CellMetrics) Cells(width, height int) (cols, rows int) {
	cw, ch := m.Width, m.Height
	if cw <= 0 {
		cw = DefaultCellMetrics.Width
	}
	if ch <= 0 {
		ch = DefaultCellMetrics.Height
	}
	cols = int(math.Ceil(float64(width) / float64(cw)))
	rows = int(math.Ceil(float64(height) / float64(ch)))
	return cols, rows
}

// Options configures New.
type Options struct {
	Mode       string
	SocketPath string
	PaneTarget string
	Metrics    CellMetrics
}

func New(opts Options) (launcher.Window, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Mode)) {
	case "", ModePopup:
		return &Popup{}, nil
	case ModePane:
		return &Pane{socketPath: opts.SocketPath, target: opts.PaneTarget, metrics: opts.Metrics}, nil
	default:
		return nil, fmt.Errorf("window: unknown mode %q", opts.Mode)
	}
}

// Popup hosts the overlay in a tmux display-popup. tmux cannot resize a
// popup after it opens, so requested sizes are only recorded; hiding is
// performed by exiting the program.
type Popup struct {
	mu     sync.Mutex
	width  int
	height int
	hidden bool
}

func (p *Popup) SetSize(ctx context.Context, width, height int) error {
	if err := ctx.Err(); err != nil {
		return &launcher.ResizeError{Width: width, Height: height, Err: err}
	}
	p.mu.Lock()
	p.width, p.height, p.hidden = width, height, false
	p.mu.Unlock()
	return nil
}

func (p *Popup) Hide(context.Context) error {
	p.mu.Lock()
	p.hidden = true
	p.mu.Unlock()
	return nil
}

// Size returns the last requested geometry.
func (p *Popup) Size() (width, height int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.width, p.height
}

func (p *Popup) Hidden() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hidden
}

var (
	resizePane = tmux.ResizePane
	breakPane  = tmux.BreakPane
)

// Pane hosts the overlay in a regular tmux pane that is resized in place and
// broken out into a background window when hidden.
type Pane struct {
	socketPath string
	target     string
	metrics    CellMetrics
}

func (p *Pane) SetSize(ctx context.Context, width, height int) error {
	if err := ctx.Err(); err != nil {
		return &launcher.ResizeError{Width: width, Height: height, Err: err}
	}
	cols, rows := p.metrics.Cells(width, height)
	if err := resizePane(p.socketPath, p.target, cols, rows); err != nil {
		return &launcher.ResizeError{Width: width, Height: height, Err: err}
	}
	return nil
}

func (p *Pane) Hide(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return breakPane(p.socketPath, p.target)
}
