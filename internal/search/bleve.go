package search

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/atomicstack/tmux-quicklaunch/internal/catalog"
	"github.com/atomicstack/tmux-quicklaunch/internal/launcher"
	"github.com/atomicstack/tmux-quicklaunch/internal/logging/events"
)

const (
	indexFieldName = "name"
	indexFieldPath = "path"
	indexFieldKind = "kind"

	indexingBatchSize = 100
)

type document struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Kind string `json:"kind"`
}

// Bleve serves queries from an in-memory index that is rebuilt whenever the
// catalog store changes.
type Bleve struct {
	store *catalog.Store
	limit int

	mu      sync.Mutex
	index   bleve.Index
	version uint64
}

func NewBleve(store *catalog.Store, limit int) *Bleve {
	return &Bleve{store: store, limit: limit}
}

func (b *Bleve) Search(ctx context.Context, q string) ([]launcher.SearchResult, error) {
	if err := checkContext(ctx, q); err != nil {
		return nil, err
	}
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.refreshLocked(); err != nil {
		return nil, &launcher.SearchError{Query: q, Err: err}
	}

	req := bleve.NewSearchRequestOptions(buildQuery(q), b.limit, 0, false)
	req.Fields = []string{indexFieldName, indexFieldPath, indexFieldKind}
	res, err := b.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, &launcher.SearchError{Query: q, Err: err}
	}

	results := make([]launcher.SearchResult, 0, len(res.Hits))
	for _, hit := range res.Hits {
		result := launcher.SearchResult{Path: hit.ID}
		if name, ok := hit.Fields[indexFieldName].(string); ok {
			result.Name = name
		}
		if kind, ok := hit.Fields[indexFieldKind].(string); ok {
			result.Kind = kind
		}
		results = append(results, result)
	}
	return results, nil
}

// Close releases the in-memory index.
func (b *Bleve) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.index == nil {
		return nil
	}
	err := b.index.Close()
	b.index = nil
	return err
}

func (b *Bleve) refreshLocked() error {
	version := b.store.Version()
	if b.index != nil && version == b.version {
		return nil
	}
	index, err := bleve.NewMemOnly(createIndexMapping())
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	entries := b.store.Entries()
	batch := index.NewBatch()
	for i, entry := range entries {
		if err := batch.Index(entry.Path, document{Name: entry.Name, Path: entry.Path, Kind: entry.Kind}); err != nil {
			index.Close()
			return fmt.Errorf("index %s: %w", entry.Path, err)
		}
		if (i+1)%indexingBatchSize == 0 {
			if err := index.Batch(batch); err != nil {
				index.Close()
				return err
			}
			batch = index.NewBatch()
		}
	}
	if batch.Size() > 0 {
		if err := index.Batch(batch); err != nil {
			index.Close()
			return err
		}
	}
	if b.index != nil {
		b.index.Close()
	}
	b.index = index
	b.version = version
	info := b.store.Info()
	events.Catalog.Loaded(info.Total, info.Apps, info.Files)
	return nil
}

func createIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	docMapping := bleve.NewDocumentMapping()

	nameFieldMapping := bleve.NewTextFieldMapping()
	nameFieldMapping.Analyzer = standard.Name
	docMapping.AddFieldMappingsAt(indexFieldName, nameFieldMapping)

	pathFieldMapping := bleve.NewTextFieldMapping()
	pathFieldMapping.Analyzer = keyword.Name
	docMapping.AddFieldMappingsAt(indexFieldPath, pathFieldMapping)

	kindFieldMapping := bleve.NewTextFieldMapping()
	kindFieldMapping.Analyzer = keyword.Name
	docMapping.AddFieldMappingsAt(indexFieldKind, kindFieldMapping)

	indexMapping.DefaultMapping = docMapping
	return indexMapping
}

func buildQuery(q string) query.Query {
	const (
		boostForName    = 3.0
		boostForPrefix  = 2.0
		boostForNorm    = 1.5
		boostForFuzzy   = 1.0
		fuzzyMinimumLen = 3
	)
	lower := strings.ToLower(q)

	disjunct := bleve.NewDisjunctionQuery()

	nameQuery := bleve.NewMatchQuery(q)
	nameQuery.SetField(indexFieldName)
	nameQuery.SetBoost(boostForName)
	disjunct.AddQuery(nameQuery)

	if norm := normalize(q); norm != lower {
		normQuery := bleve.NewMatchQuery(norm)
		normQuery.SetField(indexFieldName)
		normQuery.SetBoost(boostForNorm)
		disjunct.AddQuery(normQuery)
	}

	for _, term := range strings.Fields(normalize(q)) {
		prefixQuery := bleve.NewPrefixQuery(term)
		prefixQuery.SetField(indexFieldName)
		prefixQuery.SetBoost(boostForPrefix)
		disjunct.AddQuery(prefixQuery)

		if len(term) >= fuzzyMinimumLen {
			fuzzyQuery := bleve.NewFuzzyQuery(term)
			fuzzyQuery.SetField(indexFieldName)
			fuzzyQuery.SetFuzziness(1)
			fuzzyQuery.SetBoost(boostForFuzzy)
			disjunct.AddQuery(fuzzyQuery)
		}
	}
	return disjunct
}
