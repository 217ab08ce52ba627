package command

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/atomicstack/tmux-quicklaunch/internal/logging/events"
)

// Handler performs the side effect of a request and reports its outcome as a
// message for the UI loop.
type Handler func(ctx context.Context) tea.Msg

// Request encapsulates an action invocation.
type Request struct {
	ID      string
	Label   string
	Handler Handler
}

// Bus runs requests off the UI loop with a bounded deadline.
type Bus struct {
	timeout time.Duration
}

// New initialises a command bus. A non-positive timeout disables the deadline.
func New(timeout time.Duration) *Bus {
	return &Bus{timeout: timeout}
}

// NewID returns a fresh request identifier.
func NewID() string {
	return uuid.NewString()
}

// Execute wraps a request into a Bubble Tea command while emitting trace logs.
func (b *Bus) Execute(req Request) tea.Cmd {
	if req.ID == "" {
		req.ID = NewID()
	}
	events.Command.Queue(req.ID, req.Label)
	return func() tea.Msg {
		if req.Handler == nil {
			events.Command.Skip(req.ID, req.Label)
			return nil
		}
		ctx := context.Background()
		if b != nil && b.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, b.timeout)
			defer cancel()
		}
		msg := req.Handler(ctx)
		events.Command.Result(req.ID, req.Label, fmt.Sprintf("%T", msg))
		return msg
	}
}
