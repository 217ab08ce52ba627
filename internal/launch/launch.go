// Package launch starts catalog entries, either through the platform opener
// or inside a new tmux window.
package launch

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/atomicstack/tmux-quicklaunch/internal/launcher"
	"github.com/atomicstack/tmux-quicklaunch/internal/tmux"
)

const (
	ModeOpen = "open"
	ModeTmux = "tmux"
)

// Options selects how entries are started.
type Options struct {
	Mode string
	// Opener overrides the platform opener, e.g. "xdg-open" or "code -r".
	Opener     string
	SocketPath string
}

var (
	startProcess = func(name string, args ...string) error {
		cmd := newOpenerCmd(name, args...)
		if err := cmd.Start(); err != nil {
			return err
		}
		go cmd.Wait()
		return nil
	}
	newTmuxWindow = tmux.NewWindow
)

// newOpenerCmd builds a detached opener process. Its standard streams stay
// unset so it never reads from or draws over the overlay.
func newOpenerCmd(name string, args ...string) *exec.Cmd {
	cmd := exec.Command(name, args...)
	detach(cmd)
	return cmd
}

func New(opts Options) (launcher.Launcher, error) {
	opener := openerCommand(opts.Opener, runtime.GOOS)
	switch strings.ToLower(strings.TrimSpace(opts.Mode)) {
	case "", ModeOpen:
		return &Opener{command: opener}, nil
	case ModeTmux:
		return &TmuxWindow{command: opener, socketPath: opts.SocketPath}, nil
	default:
		return nil, fmt.Errorf("launch: unknown mode %q", opts.Mode)
	}
}

func openerCommand(configured, goos string) []string {
	if fields := strings.Fields(configured); len(fields) > 0 {
		return fields
	}
	switch goos {
	case "darwin":
		return []string{"open"}
	case "windows":
		return []string{"cmd", "/C", "start", ""}
	default:
		return []string{"xdg-open"}
	}
}

// Opener hands the path to a desktop opener and returns once the process
// has started.
type Opener struct {
	command []string
}

func (o *Opener) Launch(ctx context.Context, path string) error {
	if err := validate(ctx, path); err != nil {
		return err
	}
	args := append(append([]string(nil), o.command[1:]...), path)
	if err := startProcess(o.command[0], args...); err != nil {
		return &launcher.LaunchError{Path: path, Err: err}
	}
	return nil
}

// TmuxWindow runs the opener for path in a new tmux window.
type TmuxWindow struct {
	command    []string
	socketPath string
}

func (w *TmuxWindow) Launch(ctx context.Context, path string) error {
	if err := validate(ctx, path); err != nil {
		return err
	}
	words := make([]string, 0, len(w.command)+1)
	for _, word := range w.command {
		words = append(words, tmux.ShellQuote(word))
	}
	words = append(words, tmux.ShellQuote(path))
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if err := newTmuxWindow(w.socketPath, name, strings.Join(words, " ")); err != nil {
		return &launcher.LaunchError{Path: path, Err: err}
	}
	return nil
}

func validate(ctx context.Context, path string) error {
	if strings.TrimSpace(path) == "" {
		return &launcher.LaunchError{Path: path, Err: fmt.Errorf("empty path")}
	}
	if err := ctx.Err(); err != nil {
		return &launcher.LaunchError{Path: path, Err: err}
	}
	return nil
}
