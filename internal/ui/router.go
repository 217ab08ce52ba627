package ui

import (
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tmux-quicklaunch/internal/logging/events"
	uistate "github.com/atomicstack/tmux-quicklaunch/internal/ui/state"
)

type keyMap struct {
	Quit     key.Binding
	Dismiss  key.Binding
	Down     key.Binding
	Up       key.Binding
	PageDown key.Binding
	PageUp   key.Binding
	Launch   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:     key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Dismiss:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "dismiss")),
		Down:     key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "next")),
		Up:       key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "previous")),
		PageDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
		PageUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		Launch:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "launch")),
	}
}

// routeAction handles a matched key. Returning consumed=false lets the key
// continue to the query input.
type routeAction func(tea.KeyMsg) (consumed bool, cmd tea.Cmd)

type route struct {
	name    string
	matches func(tea.KeyMsg) bool
	action  routeAction
}

func bindingRoute(name string, b key.Binding, action routeAction) route {
	return route{
		name:    name,
		matches: func(msg tea.KeyMsg) bool { return key.Matches(msg, b) },
		action:  action,
	}
}

// buildRoutes returns the key table in priority order. The first matching
// route wins.
func (m *Model) buildRoutes(keys keyMap) []route {
	return []route{
		bindingRoute("quit", keys.Quit, func(tea.KeyMsg) (bool, tea.Cmd) {
			events.App.Exit("interrupt")
			return true, tea.Quit
		}),
		bindingRoute("dismiss", keys.Dismiss, func(tea.KeyMsg) (bool, tea.Cmd) {
			return true, m.dismiss("escape")
		}),
		bindingRoute("down", keys.Down, func(tea.KeyMsg) (bool, tea.Cmd) {
			m.moveSelection(m.results.MoveDown)
			return true, nil
		}),
		bindingRoute("up", keys.Up, func(tea.KeyMsg) (bool, tea.Cmd) {
			m.moveSelection(m.results.MoveUp)
			return true, nil
		}),
		bindingRoute("page-down", keys.PageDown, func(tea.KeyMsg) (bool, tea.Cmd) {
			m.moveSelection(func() bool { return m.results.MovePageDown(uistate.MaxVisibleRows) })
			return true, nil
		}),
		bindingRoute("page-up", keys.PageUp, func(tea.KeyMsg) (bool, tea.Cmd) {
			m.moveSelection(func() bool { return m.results.MovePageUp(uistate.MaxVisibleRows) })
			return true, nil
		}),
		bindingRoute("launch", keys.Launch, func(tea.KeyMsg) (bool, tea.Cmd) {
			// Enter on an empty result set is swallowed.
			return true, m.launchSelected()
		}),
		{
			name:    "refocus",
			matches: isPrintable,
			action: func(tea.KeyMsg) (bool, tea.Cmd) {
				return false, m.refocusInput()
			},
		},
	}
}

// isPrintable matches a bare printable character with no modifier.
func isPrintable(msg tea.KeyMsg) bool {
	if msg.Alt || msg.Paste {
		return false
	}
	if msg.Type == tea.KeySpace {
		return true
	}
	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
		return false
	}
	return unicode.IsPrint(msg.Runes[0])
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	var routeCmd tea.Cmd
	for _, r := range m.routes {
		if !r.matches(keyMsg) {
			continue
		}
		events.UI.KeyRoute(r.name, keyMsg.String())
		consumed, cmd := r.action(keyMsg)
		if consumed {
			return cmd
		}
		routeCmd = cmd
		break
	}
	return tea.Batch(routeCmd, m.updateInput(keyMsg))
}

func (m *Model) moveSelection(move func() bool) {
	if move() {
		m.refreshDisplay()
		events.UI.Selection(m.results.Selected, m.results.Len())
	}
}
