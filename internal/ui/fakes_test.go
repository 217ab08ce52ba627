package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tmux-quicklaunch/internal/launcher"
)

type fakeSearcher struct {
	results map[string][]launcher.SearchResult
	err     error
	calls   []string
}

func (f *fakeSearcher) Search(_ context.Context, query string) ([]launcher.SearchResult, error) {
	f.calls = append(f.calls, query)
	if f.err != nil {
		return nil, f.err
	}
	return f.results[query], nil
}

type fakeLauncher struct {
	err   error
	paths []string
}

func (f *fakeLauncher) Launch(_ context.Context, path string) error {
	f.paths = append(f.paths, path)
	return f.err
}

type size struct{ width, height int }

type fakeWindow struct {
	sizes   []size
	hides   int
	sizeErr error
	events  []string
}

func (f *fakeWindow) SetSize(_ context.Context, width, height int) error {
	f.sizes = append(f.sizes, size{width, height})
	f.events = append(f.events, "size")
	return f.sizeErr
}

func (f *fakeWindow) Hide(context.Context) error {
	f.hides++
	f.events = append(f.events, "hide")
	return nil
}

func (f *fakeWindow) lastHeight() int {
	if len(f.sizes) == 0 {
		return -1
	}
	return f.sizes[len(f.sizes)-1].height
}

var fireResults = []launcher.SearchResult{
	{Name: "Firefox", Path: "/apps/firefox", Kind: "app"},
	{Name: "Firewall", Path: "/apps/fw", Kind: "app"},
}

type fixture struct {
	searcher *fakeSearcher
	launcher *fakeLauncher
	window   *fakeWindow
	model    *Model
	harness  *Harness
}

func newFixture(mutate func(*Options)) *fixture {
	f := &fixture{
		searcher: &fakeSearcher{results: map[string][]launcher.SearchResult{
			"f":    fireResults,
			"fi":   fireResults,
			"fir":  fireResults,
			"fire": fireResults,
		}},
		launcher: &fakeLauncher{},
		window:   &fakeWindow{},
	}
	opts := Options{
		Searcher: f.searcher,
		Launcher: f.launcher,
		Window:   f.window,
		Debounce: time.Millisecond,
	}
	if mutate != nil {
		mutate(&opts)
	}
	f.model = NewModel(opts)
	f.harness = NewHarness(f.model)
	return f
}

func (f *fixture) typeText(text string) {
	for _, r := range text {
		f.harness.Send(runeKey(r))
	}
}

func (f *fixture) press(t tea.KeyType) {
	f.harness.Send(tea.KeyMsg{Type: t})
}

func runeKey(r rune) tea.KeyMsg {
	if r == ' ' {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{r}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func manyResults(n int) []launcher.SearchResult {
	out := make([]launcher.SearchResult, n)
	for i := range out {
		out[i] = launcher.SearchResult{Name: "tool " + string(rune('a'+i)), Path: "/bin/tool" + string(rune('a'+i)), Kind: "app"}
	}
	return out
}

// collect runs cmd and returns every non-batch message it yields without
// feeding them back to the model.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

var errBoom = errors.New("boom")

func containsAll(s string, parts ...string) bool {
	for _, p := range parts {
		if !strings.Contains(s, p) {
			return false
		}
	}
	return true
}
