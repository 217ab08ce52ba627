// Package tmux wraps the control-mode client used to resize, hide and spawn
// tmux panes and windows on behalf of the overlay.
package tmux

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	gotmux "github.com/atomicstack/gotmuxcc/gotmuxcc"
)

// SocketEnv overrides the socket discovered from $TMUX.
const SocketEnv = "TMUX_QUICKLAUNCH_SOCKET"

type tmuxClient interface {
	Command(args ...string) error
	DisplayMessage(target, format string) (string, error)
	Close()
}

type controlClient struct {
	tmux *gotmux.Tmux
}

func (c *controlClient) Command(args ...string) error {
	_, err := c.tmux.Command(args...)
	return err
}

func (c *controlClient) DisplayMessage(target, format string) (string, error) {
	return c.tmux.DisplayMessage(target, format)
}

func (c *controlClient) Close() {
	c.tmux.Close()
}

var newTmux = func(socketPath string) (tmuxClient, error) {
	var (
		t   *gotmux.Tmux
		err error
	)
	if socketPath != "" {
		t, err = gotmux.NewTmux(socketPath)
	} else {
		t, err = gotmux.DefaultTmux()
	}
	if err != nil {
		return nil, err
	}
	return &controlClient{tmux: t}, nil
}

// ResolveSocketPath returns the tmux socket to talk to. An explicit flag wins,
// then $TMUX_QUICKLAUNCH_SOCKET, then the socket named in $TMUX, then the
// tmux default under $TMUX_TMPDIR.
func ResolveSocketPath(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if envSocket := os.Getenv(SocketEnv); envSocket != "" {
		return envSocket, nil
	}
	if tmuxEnv := os.Getenv("TMUX"); tmuxEnv != "" {
		parts := strings.Split(tmuxEnv, ",")
		if len(parts) > 0 && parts[0] != "" {
			return parts[0], nil
		}
	}
	baseDir := os.Getenv("TMUX_TMPDIR")
	if baseDir == "" {
		baseDir = "/tmp"
	}
	u, err := user.Current()
	if err != nil {
		return "", err
	}
	return filepath.Join(baseDir, fmt.Sprintf("tmux-%s", u.Uid), "default"), nil
}

func run(socketPath string, args ...string) error {
	client, err := newTmux(socketPath)
	if err != nil {
		return fmt.Errorf("connect to tmux: %w", err)
	}
	defer client.Close()
	if err := client.Command(args...); err != nil {
		return fmt.Errorf("tmux %s: %w", args[0], err)
	}
	return nil
}
