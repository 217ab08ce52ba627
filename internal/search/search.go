// Package search ranks catalog entries for a query. Two engines are
// available: an in-process fuzzy ranker and an in-memory bleve index.
package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/atomicstack/tmux-quicklaunch/internal/catalog"
	"github.com/atomicstack/tmux-quicklaunch/internal/launcher"
)

const (
	EngineFuzzy = "fuzzy"
	EngineBleve = "bleve"

	DefaultLimit = 8
)

// New returns the engine named by kind reading from store. A non-positive
// limit selects DefaultLimit.
func New(kind string, store *catalog.Store, limit int) (launcher.Searcher, error) {
	if store == nil {
		return nil, fmt.Errorf("search: nil catalog store")
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", EngineFuzzy:
		return NewFuzzy(store, limit), nil
	case EngineBleve:
		return NewBleve(store, limit), nil
	default:
		return nil, fmt.Errorf("search: unknown engine %q", kind)
	}
}

func checkContext(ctx context.Context, query string) error {
	if err := ctx.Err(); err != nil {
		return &launcher.SearchError{Query: query, Err: err}
	}
	return nil
}

// normalize folds the separators commonly used in file names to spaces so
// "visual-studio" matches "visual studio".
func normalize(s string) string {
	return strings.NewReplacer("_", " ", "-", " ").Replace(strings.ToLower(s))
}
