package backend

import (
	"context"
	"sync"
	"time"

	"github.com/atomicstack/tmux-quicklaunch/internal/launcher"
)

// Kind represents the type of data emitted by the backend watcher.
type Kind int

const (
	KindCatalog Kind = iota
)

// Event conveys updated data or an error from a backend crawl.
type Event struct {
	Kind Kind
	Data interface{}
	Err  error
}

// CrawlFunc builds a fresh catalog snapshot.
type CrawlFunc func(ctx context.Context) ([]launcher.SearchResult, error)

// minCrawlSpacing keeps successive crawls apart even when the configured
// interval is very small.
const minCrawlSpacing = time.Second

// Watcher crawls the catalog off the UI loop and publishes events. With a
// zero interval it crawls once and closes its event channel.
type Watcher struct {
	crawl    CrawlFunc
	interval time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher starts a watcher that runs crawl immediately and then every
// interval.
func NewWatcher(crawl CrawlFunc, interval time.Duration) *Watcher {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		crawl:    crawl,
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 4),
	}

	w.startCatalogPoller()

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w
}

// Events returns a channel of backend events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher. An in-flight crawl observes the cancelled
// context; use Wait if a clean drain is required (e.g. in tests).
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until the crawler goroutine has exited and the events channel
// is closed. Call after Stop when a clean shutdown is required.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) startCatalogPoller() {
	throttle := newThrottle(minCrawlSpacing)
	w.wg.Add(1)
	go w.poll(KindCatalog, func(ctx context.Context) (interface{}, error) {
		if !throttle.wait(ctx) {
			return nil, ctx.Err()
		}
		return w.crawl(ctx)
	})
}

func (w *Watcher) poll(kind Kind, fetch func(context.Context) (interface{}, error)) {
	defer w.wg.Done()

	emit := func() bool {
		data, err := fetch(w.ctx)
		if w.ctx.Err() != nil {
			return false
		}
		evt := Event{Kind: kind, Data: data, Err: err}
		select {
		case <-w.ctx.Done():
			return false
		case w.events <- evt:
			return true
		}
	}

	if !emit() || w.interval <= 0 {
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			if !emit() {
				return
			}
		}
	}
}
