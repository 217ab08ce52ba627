package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tmux-quicklaunch/internal/logging/events"
)

type debounceMsg struct {
	tag int
}

// Debouncer coalesces bursts of input changes. Every Notify schedules a tick
// carrying a fresh tag; only the tick whose tag is still current is acted on,
// so a burst yields exactly one action after the quiet period.
type Debouncer struct {
	delay time.Duration
	tag   int
}

func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Notify restarts the quiet period.
func (d *Debouncer) Notify() tea.Cmd {
	d.tag++
	tag := d.tag
	return tea.Tick(d.delay, func(time.Time) tea.Msg {
		return debounceMsg{tag: tag}
	})
}

// Expired reports whether msg is the tick of the latest Notify.
func (d *Debouncer) Expired(msg debounceMsg) bool {
	return msg.tag == d.tag
}

// Cancel invalidates any pending tick.
func (d *Debouncer) Cancel() {
	d.tag++
}

func (m *Model) handleDebounceMsg(msg tea.Msg) tea.Cmd {
	tick, ok := msg.(debounceMsg)
	if !ok || !m.debouncer.Expired(tick) {
		return nil
	}
	query := m.input.Value()
	events.Search.Debounced(tick.tag, query)
	return m.runSearch(query)
}
