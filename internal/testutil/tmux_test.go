package testutil

import "testing"

func TestStartTmuxServerLifecycle(t *testing.T) {
	socket := StartTmuxServer(t, 100, 30)
	if err := Tmux(socket, "has-session", "-t", Session).Run(); err != nil {
		t.Fatalf("expected test session: %v", err)
	}
	if names := WindowNames(t, socket); len(names) != 1 {
		t.Fatalf("expected one window, got %v", names)
	}
	if cols, _ := PaneSize(t, socket, Session); cols <= 0 {
		t.Fatalf("expected a sized pane, got %d cols", cols)
	}
}
