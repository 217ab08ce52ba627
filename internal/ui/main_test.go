package ui

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/atomicstack/tmux-quicklaunch/internal/logging"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "quicklaunch-ui")
	if err != nil {
		panic(err)
	}
	logging.Configure(filepath.Join(dir, "ui.log"))
	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}
