package events

import "github.com/atomicstack/tmux-quicklaunch/internal/logging"

type SearchTracer struct{}

type CatalogTracer struct{}

var (
	Search  = SearchTracer{}
	Catalog = CatalogTracer{}
)

func (SearchTracer) Debounced(tag int, query string) {
	logging.Trace("search.debounce", map[string]interface{}{"tag": tag, "query": query})
}

func (SearchTracer) Dispatch(seq uint64, query string) {
	logging.Trace("search.dispatch", map[string]interface{}{"seq": seq, "query": query})
}

func (SearchTracer) Cleared(seq uint64) {
	logging.Trace("search.clear", map[string]interface{}{"seq": seq})
}

func (SearchTracer) Apply(seq uint64, query string, count int) {
	logging.Trace("search.apply", map[string]interface{}{"seq": seq, "query": query, "count": count})
}

// Stale records a response that arrived after a newer dispatch.
func (SearchTracer) Stale(seq, latest uint64, query string) {
	logging.Trace("search.stale", map[string]interface{}{"seq": seq, "latest": latest, "query": query})
}

func (SearchTracer) Error(seq uint64, err error) {
	if err == nil {
		return
	}
	logging.Trace("search.error", map[string]interface{}{"seq": seq, "error": err.Error()})
}

func (CatalogTracer) Loaded(total, apps, files int) {
	logging.Trace("catalog.loaded", map[string]interface{}{"total": total, "apps": apps, "files": files})
}

func (CatalogTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("catalog.error", map[string]interface{}{"error": err.Error()})
}
