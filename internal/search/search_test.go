package search

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/atomicstack/tmux-quicklaunch/internal/catalog"
	"github.com/atomicstack/tmux-quicklaunch/internal/launcher"
)

func newStore(entries ...launcher.SearchResult) *catalog.Store {
	store := catalog.NewStore()
	store.SetEntries(entries)
	return store
}

func sampleEntries() []launcher.SearchResult {
	return []launcher.SearchResult{
		{Name: "Notes", Path: "/apps/notes.desktop", Kind: catalog.KindApp},
		{Name: "Firewall Settings", Path: "/apps/fw.desktop", Kind: catalog.KindApp},
		{Name: "Firefox", Path: "/apps/firefox.desktop", Kind: catalog.KindApp},
		{Name: "visual_studio", Path: "/apps/vs.desktop", Kind: catalog.KindApp},
		{Name: "fast-report", Path: "/home/u/Documents/fast-report.pdf", Kind: catalog.KindDocument},
	}
}

func paths(results []launcher.SearchResult) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Path
	}
	return out
}

func TestNewSelectsEngine(t *testing.T) {
	store := newStore()

	s, err := New("", store, 0)
	require.NoError(t, err)
	require.IsType(t, &Fuzzy{}, s)
	require.Equal(t, DefaultLimit, s.(*Fuzzy).limit)

	s, err = New("BLEVE", store, 3)
	require.NoError(t, err)
	require.IsType(t, &Bleve{}, s)

	_, err = New("grep", store, 3)
	require.Error(t, err)

	_, err = New(EngineFuzzy, nil, 3)
	require.Error(t, err)
}

func TestFuzzyRanksSubstringBeforeFuzzy(t *testing.T) {
	f := NewFuzzy(newStore(sampleEntries()...), DefaultLimit)

	results, err := f.Search(context.Background(), "fire")
	require.NoError(t, err)
	require.Equal(t, []string{"/apps/firefox.desktop", "/apps/fw.desktop"}, paths(results))

	results, err = f.Search(context.Background(), "fr")
	require.NoError(t, err)
	require.NotEmpty(t, results)
	// "fast-report" contains no literal "fr" but matches as a subsequence.
	require.Contains(t, paths(results), "/home/u/Documents/fast-report.pdf")
}

func TestFuzzyMatchesAfterSeparatorFolding(t *testing.T) {
	f := NewFuzzy(newStore(sampleEntries()...), DefaultLimit)

	results, err := f.Search(context.Background(), "visual studio")
	require.NoError(t, err)
	require.Equal(t, []string{"/apps/vs.desktop"}, paths(results))
}

func TestFuzzyHonoursLimitAndEmptyQuery(t *testing.T) {
	var entries []launcher.SearchResult
	for i := 0; i < 20; i++ {
		entries = append(entries, launcher.SearchResult{Name: fmt.Sprintf("tool %02d", i), Path: fmt.Sprintf("/bin/tool%02d", i)})
	}
	f := NewFuzzy(newStore(entries...), DefaultLimit)

	results, err := f.Search(context.Background(), "tool")
	require.NoError(t, err)
	require.Len(t, results, DefaultLimit)

	results, err = f.Search(context.Background(), "   ")
	require.NoError(t, err)
	require.Empty(t, results)
}

func TestFuzzyReturnsSearchErrorOnCancelledContext(t *testing.T) {
	f := NewFuzzy(newStore(sampleEntries()...), DefaultLimit)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.Search(ctx, "fire")
	var searchErr *launcher.SearchError
	require.True(t, errors.As(err, &searchErr))
	require.Equal(t, "fire", searchErr.Query)
	require.ErrorIs(t, err, context.Canceled)
}

func TestBleveFindsByNamePrefix(t *testing.T) {
	b := NewBleve(newStore(sampleEntries()...), DefaultLimit)
	defer b.Close()

	results, err := b.Search(context.Background(), "fire")
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"/apps/firefox.desktop", "/apps/fw.desktop"}, paths(results))
	for _, r := range results {
		require.NotEmpty(t, r.Name)
		require.Equal(t, catalog.KindApp, r.Kind)
	}
}

func TestBleveRebuildsWhenStoreChanges(t *testing.T) {
	store := newStore(sampleEntries()...)
	b := NewBleve(store, DefaultLimit)
	defer b.Close()

	results, err := b.Search(context.Background(), "terminal")
	require.NoError(t, err)
	require.Empty(t, results)

	store.SetEntries(append(sampleEntries(), launcher.SearchResult{Name: "Terminal", Path: "/apps/term.desktop", Kind: catalog.KindApp}))

	results, err = b.Search(context.Background(), "terminal")
	require.NoError(t, err)
	require.Equal(t, []string{"/apps/term.desktop"}, paths(results))
}

func TestBleveCloseIsIdempotent(t *testing.T) {
	b := NewBleve(newStore(sampleEntries()...), DefaultLimit)
	_, err := b.Search(context.Background(), "notes")
	require.NoError(t, err)
	require.NoError(t, b.Close())
	require.NoError(t, b.Close())
}
