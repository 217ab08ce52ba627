package ui

import (
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tmux-quicklaunch/internal/logging/events"
)

const (
	queryPrompt      = "› "
	queryPlaceholder = "Search apps and files"
)

func newQueryInput() textinput.Model {
	ti := textinput.New()
	ti.Prompt = queryPrompt
	ti.Placeholder = queryPlaceholder
	if styles.QueryPrompt != nil {
		ti.PromptStyle = *styles.QueryPrompt
	}
	if styles.Query != nil {
		ti.TextStyle = *styles.Query
	}
	if styles.QueryPlaceholder != nil {
		ti.PlaceholderStyle = *styles.QueryPlaceholder
	}
	if styles.Cursor != nil {
		ti.Cursor.Style = *styles.Cursor
	}
	ti.Cursor.SetMode(cursor.CursorStatic)
	ti.Focus()
	return ti
}

// updateInput forwards a key to the query input and restarts the debounce
// window when the text changed. After a focus gain the first edit replaces
// the whole query.
func (m *Model) updateInput(msg tea.KeyMsg) tea.Cmd {
	before := m.input.Value()
	if m.overtype {
		m.overtype = false
		switch {
		case isPrintable(msg):
			m.input.SetValue("")
		case msg.Type == tea.KeyBackspace, msg.Type == tea.KeyDelete:
			m.input.SetValue("")
			return m.queryChanged(before)
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return tea.Batch(cmd, m.queryChanged(before))
}

func (m *Model) queryChanged(before string) tea.Cmd {
	if m.input.Value() == before {
		return nil
	}
	m.errMsg = ""
	return m.debouncer.Notify()
}

// refocusInput gives the query input focus without touching its content.
func (m *Model) refocusInput() tea.Cmd {
	if m.input.Focused() {
		return nil
	}
	return m.input.Focus()
}

func (m *Model) handleFocusMsg(msg tea.Msg) tea.Cmd {
	if _, ok := msg.(tea.FocusMsg); !ok {
		return nil
	}
	events.Window.Focus(true)
	m.focused = true
	cmd := m.input.Focus()
	m.input.CursorEnd()
	m.overtype = m.input.Value() != ""
	if m.hidden {
		m.hidden = false
		return tea.Batch(cmd, m.resizeCmd())
	}
	return cmd
}

func (m *Model) handleBlurMsg(msg tea.Msg) tea.Cmd {
	if _, ok := msg.(tea.BlurMsg); !ok {
		return nil
	}
	events.Window.Focus(false)
	m.focused = false
	m.overtype = false
	m.input.Blur()
	return nil
}
