package ui

import (
	"context"
	"errors"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tmux-quicklaunch/internal/launcher"
	"github.com/atomicstack/tmux-quicklaunch/internal/logging"
	"github.com/atomicstack/tmux-quicklaunch/internal/logging/events"
	uistate "github.com/atomicstack/tmux-quicklaunch/internal/ui/state"
)

type resizedMsg struct {
	gen      uint64
	geometry uistate.Geometry
	stale    bool
	err      error
}

// WindowSizer orders size requests for the window. Requests are stamped on
// the update loop and applied from command goroutines; one that arrives after
// a newer request has been applied is dropped, so the window always settles
// on the newest geometry.
type WindowSizer struct {
	window  launcher.Window
	timeout time.Duration
	issued  uint64

	mu      sync.Mutex
	applied uint64
}

func NewWindowSizer(window launcher.Window, timeout time.Duration) *WindowSizer {
	return &WindowSizer{window: window, timeout: timeout}
}

// next stamps a new request. Only the update loop calls it.
func (s *WindowSizer) next() uint64 {
	s.issued++
	return s.issued
}

type sizeOutcome struct {
	applied   bool
	resizeErr error
	thenErr   error
}

// apply sets the window to geom unless a newer request already ran. then, if
// given, runs under the same lock after the resize, so nothing older can land
// in between.
func (s *WindowSizer) apply(gen uint64, geom uistate.Geometry, then func(context.Context) error) sizeOutcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen < s.applied {
		return sizeOutcome{}
	}
	s.applied = gen
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	out := sizeOutcome{applied: true}
	if err := s.window.SetSize(ctx, geom.Width, geom.Height); err != nil {
		out.resizeErr = asResizeError(err, geom)
	}
	if then != nil {
		out.thenErr = then(ctx)
	}
	return out
}

// Applied returns the generation of the last request that reached the window.
func (s *WindowSizer) Applied() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applied
}

// geometry derives the window size from the settled result set.
func (m *Model) geometry() uistate.Geometry {
	return uistate.GeometryFor(m.results.Len())
}

// resizeCmd asks the window to match the current result count. The state
// update that triggered it never waits on or depends on the outcome.
func (m *Model) resizeCmd() tea.Cmd {
	geom := m.geometry()
	events.Window.Resize(m.results.Len(), geom.Width, geom.Height, geom.Scrollable)
	if m.sizer == nil {
		return nil
	}
	sizer := m.sizer
	gen := sizer.next()
	return func() tea.Msg {
		out := sizer.apply(gen, geom, nil)
		return resizedMsg{gen: gen, geometry: geom, stale: !out.applied, err: out.resizeErr}
	}
}

func (m *Model) handleResizedMsg(msg tea.Msg) tea.Cmd {
	resized, ok := msg.(resizedMsg)
	if !ok {
		return nil
	}
	if resized.stale {
		events.Window.ResizeDropped(resized.gen, m.sizer.Applied())
		return nil
	}
	if resized.err != nil {
		events.Window.ResizeError(resized.err)
		logging.Error(resized.err)
	}
	return nil
}

func asResizeError(err error, geom uistate.Geometry) error {
	var resizeErr *launcher.ResizeError
	if errors.As(err, &resizeErr) {
		return err
	}
	return &launcher.ResizeError{Width: geom.Width, Height: geom.Height, Err: err}
}
