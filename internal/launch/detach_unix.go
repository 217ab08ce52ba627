//go:build unix

package launch

import (
	"os/exec"
	"syscall"
)

// detach starts cmd in a new session, away from the overlay's controlling
// terminal, so the hangup sent when tmux closes the popup does not reach it.
func detach(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
}
