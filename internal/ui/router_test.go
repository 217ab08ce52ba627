package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	uistate "github.com/atomicstack/tmux-quicklaunch/internal/ui/state"
)

func TestNavigationKeysNeverReachInput(t *testing.T) {
	f := newFixture(nil)
	f.typeText("fire")
	calls := len(f.searcher.calls)
	for _, k := range []tea.KeyType{tea.KeyDown, tea.KeyDown, tea.KeyDown, tea.KeyUp, tea.KeyPgDown, tea.KeyPgUp} {
		f.press(k)
	}
	if got := f.model.input.Value(); got != "fire" {
		t.Fatalf("expected query untouched, got %q", got)
	}
	if len(f.searcher.calls) != calls {
		t.Fatalf("navigation must not trigger searches")
	}
	if f.model.results.Selected != 0 {
		t.Fatalf("expected selection 0, got %d", f.model.results.Selected)
	}
}

func TestNavigationClampsAtBounds(t *testing.T) {
	f := newFixture(nil)
	f.typeText("fire")
	f.press(tea.KeyUp)
	if f.model.results.Selected != 0 {
		t.Fatalf("expected selection to stay at 0")
	}
	f.press(tea.KeyDown)
	f.press(tea.KeyDown)
	if f.model.results.Selected != 1 {
		t.Fatalf("expected selection clamped at 1, got %d", f.model.results.Selected)
	}
}

func TestNavigationOnEmptySetIsNoOp(t *testing.T) {
	f := newFixture(nil)
	f.press(tea.KeyDown)
	f.press(tea.KeyUp)
	if f.model.results.Selected != 0 || f.model.results.Len() != 0 {
		t.Fatalf("expected untouched empty state")
	}
}

func TestPrintableKeyRefocusesInput(t *testing.T) {
	f := newFixture(nil)
	f.harness.Send(tea.BlurMsg{})
	if f.model.input.Focused() {
		t.Fatalf("expected input blurred with the terminal")
	}
	f.typeText("f")
	if !f.model.input.Focused() {
		t.Fatalf("expected input refocused")
	}
	if got := f.model.input.Value(); got != "f" {
		t.Fatalf("expected typed character to reach the input, got %q", got)
	}
}

func TestModifiedKeysAreNotPrintable(t *testing.T) {
	cases := []struct {
		msg  tea.KeyMsg
		want bool
	}{
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")}, true},
		{tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}, true},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a"), Alt: true}, false},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("ab"), Paste: true}, false},
		{tea.KeyMsg{Type: tea.KeyCtrlA}, false},
		{tea.KeyMsg{Type: tea.KeyEnter}, false},
	}
	for _, tc := range cases {
		if got := isPrintable(tc.msg); got != tc.want {
			t.Fatalf("%q: expected %v, got %v", tc.msg.String(), tc.want, got)
		}
	}
}

func TestFocusGainSelectsQueryForOvertype(t *testing.T) {
	f := newFixture(nil)
	f.typeText("fire")
	f.harness.Send(tea.BlurMsg{})
	f.harness.Send(tea.FocusMsg{})
	if !f.model.overtype {
		t.Fatalf("expected query selected after focus gain")
	}
	f.typeText("n")
	if got := f.model.input.Value(); got != "n" {
		t.Fatalf("expected typed character to replace query, got %q", got)
	}
	if last := f.searcher.calls[len(f.searcher.calls)-1]; last != "n" {
		t.Fatalf("expected search for n, got %q", last)
	}
}

func TestBackspaceAfterFocusClearsQuery(t *testing.T) {
	f := newFixture(nil)
	f.typeText("fire")
	f.harness.Send(tea.FocusMsg{})
	f.press(tea.KeyBackspace)
	if got := f.model.input.Value(); got != "" {
		t.Fatalf("expected query cleared, got %q", got)
	}
	if f.model.results.Len() != 0 {
		t.Fatalf("expected results cleared")
	}
}

func TestFocusOnEmptyQueryDoesNotOvertype(t *testing.T) {
	f := newFixture(nil)
	f.harness.Send(tea.FocusMsg{})
	if f.model.overtype {
		t.Fatalf("expected no selection for an empty query")
	}
}

func TestMouseClickLaunchesRowUnderPointer(t *testing.T) {
	f := newFixture(nil)
	f.searcher.results["t"] = manyResults(3)
	f.typeText("t")

	f.harness.Send(tea.MouseMsg{X: 4, Y: 0, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	if len(f.launcher.paths) != 0 {
		t.Fatalf("clicking the query line must not launch")
	}

	y := uistate.HeaderLines + 2*uistate.RowLines + 1
	f.harness.Send(tea.MouseMsg{X: 4, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease})
	if len(f.launcher.paths) != 0 {
		t.Fatalf("release events must not launch")
	}
	f.harness.Send(tea.MouseMsg{X: 4, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	if len(f.launcher.paths) != 1 || f.launcher.paths[0] != "/bin/toolc" {
		t.Fatalf("expected launch of the third row, got %v", f.launcher.paths)
	}
	if !f.harness.Quit() {
		t.Fatalf("expected dismiss after click launch")
	}
}

func TestMouseWheelMovesSelection(t *testing.T) {
	f := newFixture(nil)
	f.searcher.results["t"] = manyResults(3)
	f.typeText("t")
	f.harness.Send(tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	f.harness.Send(tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	if f.model.results.Selected != 2 {
		t.Fatalf("expected selection 2, got %d", f.model.results.Selected)
	}
	f.harness.Send(tea.MouseMsg{Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})
	if f.model.results.Selected != 1 {
		t.Fatalf("expected selection 1, got %d", f.model.results.Selected)
	}
}

func TestDebouncerOnlyLatestTagExpires(t *testing.T) {
	d := NewDebouncer(0)
	d.Notify()
	d.Notify()
	if d.Expired(debounceMsg{tag: 1}) {
		t.Fatalf("expected first tick to be superseded")
	}
	if !d.Expired(debounceMsg{tag: 2}) {
		t.Fatalf("expected latest tick to expire")
	}
	d.Cancel()
	if d.Expired(debounceMsg{tag: 2}) {
		t.Fatalf("expected cancel to invalidate pending tick")
	}
}
