// Package testutil starts throwaway tmux servers for tests that exercise the
// tmux adapters against a real server.
package testutil

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	gotmux "github.com/atomicstack/gotmuxcc/gotmuxcc"
)

// Session is the name of the session created by StartTmuxServer.
const Session = "quicklaunch-test"

// RequireTmux skips the calling test when tmux is not present on PATH.
func RequireTmux(t *testing.T) string {
	t.Helper()
	path, err := exec.LookPath("tmux")
	if err != nil {
		t.Skip("skipping: tmux binary not available")
	}
	return path
}

// StartTmuxServer boots a temporary tmux server bound to a unique socket with
// one detached session of the given size. The server is killed when the test
// finishes.
func StartTmuxServer(t *testing.T, cols, rows int) string {
	t.Helper()
	RequireTmux(t)
	baseDir, err := os.MkdirTemp("/tmp", "tmux-quicklaunch-*")
	if err != nil {
		t.Fatalf("failed to create tmux temp dir: %v", err)
	}
	t.Cleanup(func() { _ = os.RemoveAll(baseDir) })
	socketPath := filepath.Join(baseDir, "tmux-test.sock")
	cmd := Tmux(socketPath, "-f", "/dev/null", "new-session", "-d",
		"-x", strconv.Itoa(cols), "-y", strconv.Itoa(rows),
		"-s", Session, "sleep", "600")
	if err := cmd.Run(); err != nil {
		t.Skipf("skipping: failed to start tmux server: %v", err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := killTmuxServerControl(ctx, socketPath); err != nil {
			t.Logf("control-mode kill failed for socket %s: %v; falling back to tmux kill-server", socketPath, err)
			_ = Tmux(socketPath, "kill-server").Run()
		}
	})
	return socketPath
}

// Query runs display-message against target and returns the expanded format.
func Query(t *testing.T, socketPath, target, format string) string {
	t.Helper()
	args := []string{"display-message", "-p"}
	if target != "" {
		args = append(args, "-t", target)
	}
	out, err := Tmux(socketPath, append(args, format)...).Output()
	if err != nil {
		t.Fatalf("display-message %q on %s: %v", format, target, err)
	}
	return strings.TrimSpace(string(out))
}

// PaneSize returns the width and height of target in cells.
func PaneSize(t *testing.T, socketPath, target string) (cols, rows int) {
	t.Helper()
	out := Query(t, socketPath, target, "#{pane_width} #{pane_height}")
	if _, err := fmt.Sscanf(out, "%d %d", &cols, &rows); err != nil {
		t.Fatalf("parse pane size %q: %v", out, err)
	}
	return cols, rows
}

// WindowNames lists the window names of the test session.
func WindowNames(t *testing.T, socketPath string) []string {
	t.Helper()
	out, err := Tmux(socketPath, "list-windows", "-t", Session, "-F", "#{window_name}").Output()
	if err != nil {
		t.Fatalf("list-windows: %v", err)
	}
	return strings.Fields(string(out))
}

// Tmux builds a tmux command bound to socket and isolated from any tmux
// session the test runner itself is attached to.
func Tmux(socket string, extra ...string) *exec.Cmd {
	trimmed := strings.TrimSpace(socket)
	args := make([]string, 0, len(extra)+2)
	if trimmed != "" {
		args = append(args, "-S", trimmed)
	}
	args = append(args, extra...)
	cmd := exec.Command("tmux", args...)
	env := make([]string, 0, len(os.Environ())+2)
	for _, entry := range os.Environ() {
		if strings.HasPrefix(entry, "TMUX=") {
			continue
		}
		env = append(env, entry)
	}
	env = append(env, "TMUX=")
	if trimmed != "" {
		env = append(env, "TMUX_TMPDIR="+filepath.Dir(trimmed))
	}
	cmd.Env = env
	return cmd
}

func killTmuxServerControl(ctx context.Context, socket string) error {
	if strings.TrimSpace(socket) == "" {
		return errors.New("empty tmux socket path")
	}
	client, err := gotmux.NewTmuxWithOptions(socket, gotmux.WithContext(ctx))
	if err != nil {
		return err
	}
	defer client.Close()
	return client.KillServer()
}
