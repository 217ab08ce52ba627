package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tmux-quicklaunch/internal/backend"
	"github.com/atomicstack/tmux-quicklaunch/internal/logging"
)

func waitForBackendEvent(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	cmd := m.applyBackendEvent(eventMsg.event)
	if m.backend != nil {
		return tea.Batch(cmd, waitForBackendEvent(m.backend))
	}
	return cmd
}

func (m *Model) handleBackendDoneMsg(msg tea.Msg) tea.Cmd {
	m.backend = nil
	return nil
}

// applyBackendEvent updates the catalog. An active query is searched again
// so results reflect the new index.
func (m *Model) applyBackendEvent(evt backend.Event) tea.Cmd {
	if evt.Err != nil {
		m.backendErr = evt.Err.Error()
		logging.Error(evt.Err)
		m.dispatcher.Handle(evt)
		return nil
	}
	res := m.dispatcher.Handle(evt)
	if !res.CatalogUpdated {
		return nil
	}
	m.backendErr = ""
	m.info = res.Info
	if strings.TrimSpace(m.input.Value()) == "" {
		return nil
	}
	return m.search.Dispatch(m.input.Value())
}
