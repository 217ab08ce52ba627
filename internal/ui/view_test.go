package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/atomicstack/tmux-quicklaunch/internal/launcher"
)

func TestViewRendersRowsWithKindAndPath(t *testing.T) {
	f := newFixture(nil)
	f.typeText("fire")
	view := ansi.Strip(f.harness.View())
	if !containsAll(view, "fire", "Firefox   [app]", "Firewall  [app]", "/apps/firefox", "/apps/fw") {
		t.Fatalf("unexpected view:\n%s", view)
	}
	lines := strings.Split(view, "\n")
	if !strings.Contains(lines[2], "Firefox") || !strings.Contains(lines[4], "Firewall") {
		t.Fatalf("expected rows to start after the header lines:\n%s", view)
	}
}

func TestViewNeutralisesUntrustedText(t *testing.T) {
	f := newFixture(nil)
	f.searcher.results["x"] = []launcher.SearchResult{{Name: "evil\x1b]0;pwned\x07name", Path: "/tmp/a\nb", Kind: "doc"}}
	f.typeText("x")
	view := f.harness.View()
	if strings.Contains(view, "pwned") || strings.Contains(view, "\x07") {
		t.Fatalf("expected escape sequences removed, got %q", view)
	}
	if !strings.Contains(ansi.Strip(view), "/tmp/a b") {
		t.Fatalf("expected newline in path flattened, got %q", view)
	}
}

func TestViewShowsNoMatchesAndScrollIndicator(t *testing.T) {
	f := newFixture(nil)
	f.typeText("zzz")
	if !strings.Contains(ansi.Strip(f.harness.View()), `No matches for "zzz"`) {
		t.Fatalf("expected no-match notice:\n%s", f.harness.View())
	}

	f = newFixture(nil)
	f.searcher.results["t"] = manyResults(6)
	f.typeText("t")
	view := ansi.Strip(f.harness.View())
	if !strings.Contains(view, "1/6") || !strings.Contains(view, "2 below") {
		t.Fatalf("expected scroll indicator:\n%s", view)
	}
	if strings.Contains(view, "tool e") {
		t.Fatalf("expected only four rows visible:\n%s", view)
	}
}

func TestViewTruncatesToFixedWidth(t *testing.T) {
	f := newFixture(func(o *Options) { o.Width = 20 })
	f.searcher.results["x"] = []launcher.SearchResult{{Name: strings.Repeat("n", 40), Path: "/p", Kind: "app"}}
	f.typeText("x")
	for _, line := range strings.Split(f.harness.View(), "\n") {
		if w := ansi.StringWidth(line); w > 20 {
			t.Fatalf("line wider than 20 cells (%d): %q", w, line)
		}
	}
}

func TestViewFooterBeforeIndexing(t *testing.T) {
	f := newFixture(func(o *Options) { o.ShowFooter = true })
	if !strings.Contains(ansi.Strip(f.harness.View()), "indexing…") {
		t.Fatalf("expected indexing notice:\n%s", f.harness.View())
	}
}

func TestViewHighlightsQuerySelectedByFocusGain(t *testing.T) {
	f := newFixture(nil)
	f.typeText("fire")
	if !f.model.queryLine().raw {
		t.Fatalf("expected the live input while editing")
	}

	f.harness.Send(tea.BlurMsg{})
	f.harness.Send(tea.FocusMsg{})
	line := f.model.queryLine()
	if line.style != styles.QuerySelected || line.text != queryPrompt+"fire" {
		t.Fatalf("expected selected query line, got %#v", line)
	}
	if view := ansi.Strip(f.harness.View()); !strings.HasPrefix(view, queryPrompt+"fire\n") {
		t.Fatalf("unexpected view:\n%s", view)
	}

	f.typeText("n")
	if !f.model.queryLine().raw {
		t.Fatalf("expected the highlight to end with the first edit")
	}
}
