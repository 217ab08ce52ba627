package backend

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/atomicstack/tmux-quicklaunch/internal/launcher"
)

func TestWatcherCrawlsOnceWithZeroInterval(t *testing.T) {
	calls := 0
	w := NewWatcher(func(context.Context) ([]launcher.SearchResult, error) {
		calls++
		return []launcher.SearchResult{{Name: "Notes", Path: "/apps/notes"}}, nil
	}, 0)

	var got []Event
	for evt := range w.Events() {
		got = append(got, evt)
	}
	if calls != 1 || len(got) != 1 {
		t.Fatalf("expected one crawl and one event, got %d crawls and %d events", calls, len(got))
	}
	entries, ok := got[0].Data.([]launcher.SearchResult)
	if got[0].Kind != KindCatalog || !ok || len(entries) != 1 {
		t.Fatalf("unexpected event: %#v", got[0])
	}
}

func TestWatcherPublishesCrawlErrors(t *testing.T) {
	boom := errors.New("permission denied")
	w := NewWatcher(func(context.Context) ([]launcher.SearchResult, error) {
		return nil, boom
	}, 0)
	evt, ok := <-w.Events()
	if !ok {
		t.Fatalf("expected an event")
	}
	if !errors.Is(evt.Err, boom) {
		t.Fatalf("expected crawl error, got %v", evt.Err)
	}
}

func TestWatcherStopClosesEvents(t *testing.T) {
	started := make(chan struct{})
	w := NewWatcher(func(ctx context.Context) ([]launcher.SearchResult, error) {
		close(started)
		<-ctx.Done()
		return nil, ctx.Err()
	}, time.Hour)

	<-started
	w.Stop()
	w.Wait()
	if _, ok := <-w.Events(); ok {
		t.Fatalf("expected no event after stop")
	}
}

func TestThrottleSpacesCalls(t *testing.T) {
	th := newThrottle(20 * time.Millisecond)
	ctx := context.Background()
	start := time.Now()
	th.wait(ctx)
	th.wait(ctx)
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Fatalf("expected second wait to be delayed, elapsed %s", elapsed)
	}
	var nilThrottle *throttle
	if !nilThrottle.wait(ctx) {
		t.Fatalf("expected nil throttle to pass through")
	}
}

func TestThrottleWaitStopsOnCancel(t *testing.T) {
	th := newThrottle(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	if !th.wait(ctx) {
		t.Fatalf("expected first wait to claim a slot")
	}
	cancel()
	done := make(chan bool, 1)
	go func() { done <- th.wait(ctx) }()
	select {
	case ok := <-done:
		if ok {
			t.Fatalf("expected cancelled wait to report false")
		}
	case <-time.After(time.Second):
		t.Fatalf("cancelled wait did not return")
	}
}
