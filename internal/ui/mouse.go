package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tmux-quicklaunch/internal/logging/events"
)

// handleMouseMsg resolves clicks through the display list so a row always
// activates the result it shows, then launches through the same path as
// Enter. The wheel moves the selection.
func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	ev, ok := msg.(tea.MouseMsg)
	if !ok {
		return nil
	}
	switch ev.Button {
	case tea.MouseButtonWheelUp:
		m.moveSelection(m.results.MoveUp)
	case tea.MouseButtonWheelDown:
		m.moveSelection(m.results.MoveDown)
	case tea.MouseButtonLeft:
		if ev.Action != tea.MouseActionPress {
			return nil
		}
		index, ok := m.display.RowAt(ev.Y)
		if !ok || !m.results.Select(index) {
			return nil
		}
		events.UI.RowActivate(index)
		m.refreshDisplay()
		return m.launchSelected()
	}
	return nil
}
