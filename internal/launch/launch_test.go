package launch

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/atomicstack/tmux-quicklaunch/internal/launcher"
)

type startCall struct {
	name string
	args []string
}

func withStubStart(t *testing.T, err error) *[]startCall {
	t.Helper()
	var calls []startCall
	prev := startProcess
	startProcess = func(name string, args ...string) error {
		calls = append(calls, startCall{name: name, args: args})
		return err
	}
	t.Cleanup(func() { startProcess = prev })
	return &calls
}

func TestOpenerCommandPerPlatform(t *testing.T) {
	cases := map[string][]string{
		"linux":   {"xdg-open"},
		"darwin":  {"open"},
		"windows": {"cmd", "/C", "start", ""},
	}
	for goos, want := range cases {
		if got := openerCommand("", goos); !reflect.DeepEqual(got, want) {
			t.Fatalf("%s: expected %v, got %v", goos, want, got)
		}
	}
	if got := openerCommand("code  -r", "linux"); !reflect.DeepEqual(got, []string{"code", "-r"}) {
		t.Fatalf("expected configured opener, got %v", got)
	}
}

func TestOpenerStartsConfiguredCommand(t *testing.T) {
	calls := withStubStart(t, nil)
	l, err := New(Options{Mode: ModeOpen, Opener: "code -r"})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := l.Launch(context.Background(), "/home/u/notes.md"); err != nil {
		t.Fatalf("Launch returned error: %v", err)
	}
	want := []startCall{{name: "code", args: []string{"-r", "/home/u/notes.md"}}}
	if !reflect.DeepEqual(*calls, want) {
		t.Fatalf("unexpected calls: %#v", *calls)
	}
}

func TestOpenerWrapsFailuresAsLaunchError(t *testing.T) {
	boom := errors.New("no such file")
	withStubStart(t, boom)
	l, _ := New(Options{Opener: "xdg-open"})

	err := l.Launch(context.Background(), "/apps/fw")
	var launchErr *launcher.LaunchError
	if !errors.As(err, &launchErr) {
		t.Fatalf("expected LaunchError, got %v", err)
	}
	if launchErr.Path != "/apps/fw" || !errors.Is(err, boom) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLaunchRejectsEmptyPathWithoutStarting(t *testing.T) {
	calls := withStubStart(t, nil)
	l, _ := New(Options{})
	if err := l.Launch(context.Background(), "  "); err == nil {
		t.Fatalf("expected error for empty path")
	}
	if len(*calls) != 0 {
		t.Fatalf("expected no process start, got %v", *calls)
	}
}

func TestTmuxModeOpensWindow(t *testing.T) {
	type call struct{ socket, name, command string }
	var got []call
	prev := newTmuxWindow
	newTmuxWindow = func(socket, name, command string) error {
		got = append(got, call{socket, name, command})
		return nil
	}
	t.Cleanup(func() { newTmuxWindow = prev })

	l, err := New(Options{Mode: ModeTmux, Opener: "less", SocketPath: "/tmp/sock"})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := l.Launch(context.Background(), "/home/u/it's.txt"); err != nil {
		t.Fatalf("Launch returned error: %v", err)
	}
	want := []call{{"/tmp/sock", "it's", `'less' '/home/u/it'\''s.txt'`}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected calls: %#v", got)
	}
}

func TestNewRejectsUnknownMode(t *testing.T) {
	if _, err := New(Options{Mode: "teleport"}); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}
