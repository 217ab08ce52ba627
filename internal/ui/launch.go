package ui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tmux-quicklaunch/internal/launcher"
	"github.com/atomicstack/tmux-quicklaunch/internal/logging"
	"github.com/atomicstack/tmux-quicklaunch/internal/logging/events"
	"github.com/atomicstack/tmux-quicklaunch/internal/ui/command"
	uistate "github.com/atomicstack/tmux-quicklaunch/internal/ui/state"
)

type launchResultMsg struct {
	path string
	err  error
}

type hiddenMsg struct {
	reason     string
	superseded bool
	resizeErr  error
	hideErr    error
}

// LaunchCoordinator sends the selected path to the launcher. While a launch
// is in flight further requests are ignored, so one intent starts at most one
// process.
type LaunchCoordinator struct {
	launcher  launcher.Launcher
	bus       *command.Bus
	inFlight  bool
	abandoned bool
}

func NewLaunchCoordinator(l launcher.Launcher, bus *command.Bus) *LaunchCoordinator {
	return &LaunchCoordinator{launcher: l, bus: bus}
}

// Launch returns the command that performs the launch, or nil when a launch
// is already running.
func (c *LaunchCoordinator) Launch(selected launcher.SearchResult) tea.Cmd {
	path := selected.Path
	if c.inFlight {
		events.Launch.Busy(path)
		return nil
	}
	c.inFlight = true
	events.Launch.Request(path)
	l := c.launcher
	return c.bus.Execute(command.Request{
		Label: "launch",
		Handler: func(ctx context.Context) tea.Msg {
			if l == nil {
				return launchResultMsg{path: path, err: &launcher.LaunchError{Path: path, Err: errors.New("no launcher configured")}}
			}
			err := l.Launch(ctx, path)
			if err != nil {
				var launchErr *launcher.LaunchError
				if !errors.As(err, &launchErr) {
					err = &launcher.LaunchError{Path: path, Err: err}
				}
			}
			return launchResultMsg{path: path, err: err}
		},
	})
}

// Abandon detaches the in-flight launch, if any, from the overlay: its
// process still starts but its success no longer dismisses anything.
func (c *LaunchCoordinator) Abandon() {
	if c.inFlight {
		c.abandoned = true
	}
}

// Done clears the in-flight guard and reports whether the finished launch
// was abandoned.
func (c *LaunchCoordinator) Done() bool {
	abandoned := c.abandoned
	c.inFlight = false
	c.abandoned = false
	return abandoned
}

// InFlight reports whether a launch is awaiting its result.
func (c *LaunchCoordinator) InFlight() bool {
	return c.inFlight
}

func (m *Model) launchSelected() tea.Cmd {
	selected, ok := m.results.Current()
	if !ok {
		return nil
	}
	return m.launches.Launch(selected)
}

func (m *Model) handleLaunchResultMsg(msg tea.Msg) tea.Cmd {
	res, ok := msg.(launchResultMsg)
	if !ok {
		return nil
	}
	abandoned := m.launches.Done()
	if res.err != nil {
		events.Launch.Error(res.path, res.err)
		logging.Error(res.err)
		m.reportError(res.err)
		return nil
	}
	events.Launch.Success(res.path)
	if abandoned {
		// The overlay was dismissed while the launch ran.
		return nil
	}
	return m.dismiss("launch")
}

// dismiss resets the overlay to its empty state, then shrinks and hides the
// window. Pending debounce ticks and search responses are invalidated.
func (m *Model) dismiss(reason string) tea.Cmd {
	events.UI.Dismiss(reason)
	m.input.SetValue("")
	m.overtype = false
	m.errMsg = ""
	m.debouncer.Cancel()
	m.search.Invalidate()
	m.launches.Abandon()
	m.clearResults()

	geom := uistate.GeometryFor(m.results.Len())
	events.Window.Resize(0, geom.Width, geom.Height, geom.Scrollable)
	if m.sizer == nil {
		return func() tea.Msg { return hiddenMsg{reason: reason} }
	}
	sizer := m.sizer
	gen := sizer.next()
	window := sizer.window
	return func() tea.Msg {
		out := sizer.apply(gen, geom, window.Hide)
		if !out.applied {
			// A newer request, such as a refocus, already reshaped the window.
			return hiddenMsg{reason: reason, superseded: true}
		}
		return hiddenMsg{reason: reason, resizeErr: out.resizeErr, hideErr: out.thenErr}
	}
}

func (m *Model) handleHiddenMsg(msg tea.Msg) tea.Cmd {
	hidden, ok := msg.(hiddenMsg)
	if !ok {
		return nil
	}
	if hidden.superseded {
		events.Window.HideSuperseded(hidden.reason)
		return nil
	}
	if hidden.resizeErr != nil {
		events.Window.ResizeError(hidden.resizeErr)
		logging.Error(hidden.resizeErr)
	}
	if hidden.hideErr != nil {
		logging.Errorf("hide overlay (%s): %v", hidden.reason, hidden.hideErr)
	}
	events.Window.Hide(hidden.reason)
	m.hidden = true
	if m.resident {
		return nil
	}
	events.App.Exit(hidden.reason)
	return tea.Quit
}
