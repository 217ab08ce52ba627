package search

import (
	"context"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/atomicstack/tmux-quicklaunch/internal/catalog"
	"github.com/atomicstack/tmux-quicklaunch/internal/launcher"
)

const (
	tierSubstring = iota
	tierNormalized
	tierFuzzy
)

type candidate struct {
	entry    launcher.SearchResult
	tier     int
	distance int
}

// Fuzzy ranks substring matches on the entry name first, then matches after
// separator folding, then fuzzy subsequence matches.
type Fuzzy struct {
	store *catalog.Store
	limit int
}

func NewFuzzy(store *catalog.Store, limit int) *Fuzzy {
	return &Fuzzy{store: store, limit: limit}
}

func (f *Fuzzy) Search(ctx context.Context, query string) ([]launcher.SearchResult, error) {
	if err := checkContext(ctx, query); err != nil {
		return nil, err
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	entries := f.store.Entries()
	lowerQuery := strings.ToLower(query)
	normQuery := normalize(query)

	candidates := make([]candidate, 0, len(entries))
	remaining := make([]string, 0, len(entries))
	remainingIdx := make([]int, 0, len(entries))
	for i, entry := range entries {
		name := strings.ToLower(entry.Name)
		switch {
		case strings.Contains(name, lowerQuery):
			candidates = append(candidates, candidate{entry: entry, tier: tierSubstring, distance: strings.Index(name, lowerQuery)})
		case strings.Contains(normalize(entry.Name), normQuery):
			candidates = append(candidates, candidate{entry: entry, tier: tierNormalized})
		default:
			remaining = append(remaining, entry.Name)
			remainingIdx = append(remainingIdx, i)
		}
	}
	if err := checkContext(ctx, query); err != nil {
		return nil, err
	}

	ranks := fuzzy.RankFindNormalizedFold(query, remaining)
	for _, rank := range ranks {
		candidates = append(candidates, candidate{
			entry:    entries[remainingIdx[rank.OriginalIndex]],
			tier:     tierFuzzy,
			distance: rank.Distance,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.tier != b.tier {
			return a.tier < b.tier
		}
		if a.distance != b.distance {
			return a.distance < b.distance
		}
		return len(a.entry.Name) < len(b.entry.Name)
	})

	if len(candidates) > f.limit {
		candidates = candidates[:f.limit]
	}
	results := make([]launcher.SearchResult, len(candidates))
	for i, c := range candidates {
		results[i] = c.entry
	}
	return results, nil
}
