package dispatcher

import (
	"github.com/atomicstack/tmux-quicklaunch/internal/backend"
	"github.com/atomicstack/tmux-quicklaunch/internal/catalog"
	"github.com/atomicstack/tmux-quicklaunch/internal/launcher"
	"github.com/atomicstack/tmux-quicklaunch/internal/logging/events"
)

type Result struct {
	CatalogUpdated bool
	Info           catalog.Info
}

type Dispatcher struct {
	catalog *catalog.Store
}

func New(store *catalog.Store) *Dispatcher {
	return &Dispatcher{catalog: store}
}

// Handle applies a backend event to the stores it owns. Failed crawls leave
// the previous catalog in place.
func (d *Dispatcher) Handle(evt backend.Event) Result {
	var res Result
	if evt.Err != nil {
		events.Catalog.Error(evt.Err)
		return res
	}
	switch evt.Kind {
	case backend.KindCatalog:
		if entries, ok := evt.Data.([]launcher.SearchResult); ok {
			d.catalog.SetEntries(entries)
			res.CatalogUpdated = true
			res.Info = d.catalog.Info()
			events.Catalog.Loaded(res.Info.Total, res.Info.Apps, res.Info.Files)
		}
	}
	return res
}
