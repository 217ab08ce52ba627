package tmux

import (
	"fmt"
	"strconv"
	"strings"
)

// ResizePane sets the absolute size of target in cells.
func ResizePane(socketPath, target string, cols, rows int) error {
	if cols <= 0 || rows <= 0 {
		return fmt.Errorf("invalid pane size %dx%d", cols, rows)
	}
	args := []string{"resize-pane"}
	if t := strings.TrimSpace(target); t != "" {
		args = append(args, "-t", t)
	}
	args = append(args, "-x", strconv.Itoa(cols), "-y", strconv.Itoa(rows))
	return run(socketPath, args...)
}

// BreakPane moves target into a background window without switching to it.
func BreakPane(socketPath, target string) error {
	args := []string{"break-pane", "-d"}
	if t := strings.TrimSpace(target); t != "" {
		args = append(args, "-s", t)
	}
	return run(socketPath, args...)
}

// NewWindow opens a tmux window named name running command.
func NewWindow(socketPath, name, command string) error {
	if strings.TrimSpace(command) == "" {
		return fmt.Errorf("window command required")
	}
	args := []string{"new-window"}
	if n := strings.TrimSpace(name); n != "" {
		args = append(args, "-n", n)
	}
	args = append(args, command)
	return run(socketPath, args...)
}

// CurrentPane reports the pane id hosting target, or the active pane when
// target is empty.
func CurrentPane(socketPath, target string) (string, error) {
	client, err := newTmux(socketPath)
	if err != nil {
		return "", fmt.Errorf("connect to tmux: %w", err)
	}
	defer client.Close()
	id, err := client.DisplayMessage(strings.TrimSpace(target), "#{pane_id}")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(id), nil
}

// ShellQuote quotes s for use as a single word in a tmux shell command.
func ShellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
