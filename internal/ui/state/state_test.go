package state

import (
	"fmt"
	"strings"
	"testing"

	"github.com/atomicstack/tmux-quicklaunch/internal/launcher"
)

func results(n int) []launcher.SearchResult {
	out := make([]launcher.SearchResult, n)
	for i := range out {
		out[i] = launcher.SearchResult{Name: fmt.Sprintf("item %d", i), Path: fmt.Sprintf("/apps/%d", i), Kind: "app"}
	}
	return out
}

func TestMoveDownAndUpClamp(t *testing.T) {
	var r ResultSet
	r.Replace(results(3))
	for i := 0; i < 5; i++ {
		r.MoveDown()
	}
	if r.Selected != 2 {
		t.Fatalf("expected selection clamped at 2, got %d", r.Selected)
	}
	if r.MoveDown() {
		t.Fatalf("expected no movement at the end")
	}
	for i := 0; i < 5; i++ {
		r.MoveUp()
	}
	if r.Selected != 0 {
		t.Fatalf("expected selection clamped at 0, got %d", r.Selected)
	}
	if r.MoveUp() {
		t.Fatalf("expected no movement at the top")
	}
}

func TestMovesOnEmptySetAreNoOps(t *testing.T) {
	var r ResultSet
	if r.MoveDown() || r.MoveUp() || r.MovePageDown(4) || r.MovePageUp(4) {
		t.Fatalf("expected no movement on empty set")
	}
	if r.Selected != 0 {
		t.Fatalf("expected selection 0, got %d", r.Selected)
	}
	if _, ok := r.Current(); ok {
		t.Fatalf("expected no current result")
	}
}

func TestReplaceResetsSelectionAndCopies(t *testing.T) {
	var r ResultSet
	items := results(6)
	r.Replace(items)
	r.MovePageDown(4)
	r.EnsureVisible(MaxVisibleRows)
	if r.Selected != 4 || r.ViewportOffset != 1 {
		t.Fatalf("expected selection 4 offset 1, got %d/%d", r.Selected, r.ViewportOffset)
	}
	items[0].Name = "mutated"

	r.Replace(results(2))
	if r.Selected != 0 || r.ViewportOffset != 0 {
		t.Fatalf("expected reset, got %d/%d", r.Selected, r.ViewportOffset)
	}
	if cur, _ := r.Current(); cur.Name != "item 0" {
		t.Fatalf("unexpected current %q", cur.Name)
	}
	r.Clear()
	if r.Len() != 0 {
		t.Fatalf("expected empty set after clear")
	}
}

func TestSelectRejectsOutOfRange(t *testing.T) {
	var r ResultSet
	r.Replace(results(3))
	if r.Select(3) || r.Select(-1) {
		t.Fatalf("expected out-of-range selects to fail")
	}
	if !r.Select(2) || r.Selected != 2 {
		t.Fatalf("expected selection 2")
	}
}

func TestEnsureVisibleScrollsBothWays(t *testing.T) {
	var r ResultSet
	r.Replace(results(8))
	r.Select(7)
	r.EnsureVisible(4)
	if r.ViewportOffset != 4 {
		t.Fatalf("expected offset 4, got %d", r.ViewportOffset)
	}
	r.Select(1)
	r.EnsureVisible(4)
	if r.ViewportOffset != 1 {
		t.Fatalf("expected offset 1, got %d", r.ViewportOffset)
	}
}

func TestGeometryFor(t *testing.T) {
	cases := []struct {
		n          int
		height     int
		scrollable bool
	}{
		{0, 72, false},
		{1, 130, false},
		{2, 188, false},
		{4, 304, false},
		{5, 304, true},
		{8, 304, true},
	}
	for _, tc := range cases {
		g := GeometryFor(tc.n)
		if g.Height != tc.height || g.Width != 680 || g.Scrollable != tc.scrollable {
			t.Fatalf("n=%d: unexpected geometry %+v", tc.n, g)
		}
	}
}

func TestRenderMarksSelectionAndNeutralisesText(t *testing.T) {
	items := []launcher.SearchResult{
		{Name: "\x1b[31mred\x1b[0m", Path: "/tmp/a\nb", Kind: "doc"},
		{Name: "safe\u202eevil", Path: "/tmp/c\t", Kind: "app"},
	}
	list := Render(items, 1)
	if len(list.Rows) != 2 || list.Scrollable {
		t.Fatalf("unexpected list: %+v", list)
	}
	if list.Rows[0].Name != "red" || list.Rows[0].Path != "/tmp/a b" {
		t.Fatalf("unexpected first row: %+v", list.Rows[0])
	}
	if list.Rows[1].Name != "safeevil" || list.Rows[1].Path != "/tmp/c " {
		t.Fatalf("unexpected second row: %+v", list.Rows[1])
	}
	if list.Rows[0].Selected || !list.Rows[1].Selected {
		t.Fatalf("expected only the second row selected")
	}
	if items[0].Name != "\x1b[31mred\x1b[0m" {
		t.Fatalf("render must not mutate its input")
	}
}

func TestRowAtFollowsViewport(t *testing.T) {
	list := Render(results(6), 0).WithOffset(2)
	cases := []struct {
		y     int
		index int
		ok    bool
	}{
		{0, 0, false},
		{1, 0, false},
		{2, 2, true},
		{3, 2, true},
		{4, 3, true},
		{9, 5, true},
		{10, 0, false},
	}
	for _, tc := range cases {
		index, ok := list.RowAt(tc.y)
		if ok != tc.ok || (ok && index != tc.index) {
			t.Fatalf("y=%d: expected (%d,%v), got (%d,%v)", tc.y, tc.index, tc.ok, index, ok)
		}
	}
	if got := Render(results(6), 0).WithOffset(10).Offset; got != 2 {
		t.Fatalf("expected offset clamped to 2, got %d", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("short", 10); got != "short" {
		t.Fatalf("unexpected %q", got)
	}
	got := Truncate(strings.Repeat("x", 20), 8)
	if !strings.HasSuffix(got, "…") || len([]rune(got)) != 8 {
		t.Fatalf("unexpected truncation %q", got)
	}
	if Truncate("abc", 0) != "" {
		t.Fatalf("expected empty string for zero width")
	}
}
