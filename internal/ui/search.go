package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tmux-quicklaunch/internal/launcher"
	"github.com/atomicstack/tmux-quicklaunch/internal/logging"
	"github.com/atomicstack/tmux-quicklaunch/internal/logging/events"
)

type searchResultMsg struct {
	seq     uint64
	query   string
	results []launcher.SearchResult
	err     error
}

// SearchDispatcher sends queries to the searcher and tags every request with
// a sequence number so only the newest response is applied.
type SearchDispatcher struct {
	searcher launcher.Searcher
	timeout  time.Duration
	seq      uint64
}

func NewSearchDispatcher(searcher launcher.Searcher, timeout time.Duration) *SearchDispatcher {
	return &SearchDispatcher{searcher: searcher, timeout: timeout}
}

// Dispatch starts a search for the trimmed query. It returns nil without
// contacting the searcher when the query is empty; the caller clears the
// result set in that case. Either way older in-flight responses become stale.
func (d *SearchDispatcher) Dispatch(query string) tea.Cmd {
	q := strings.TrimSpace(query)
	d.seq++
	seq := d.seq
	if q == "" || d.searcher == nil {
		events.Search.Cleared(seq)
		return nil
	}
	events.Search.Dispatch(seq, q)
	searcher := d.searcher
	timeout := d.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		results, err := searcher.Search(ctx, q)
		if err == nil {
			err = validateResults(results)
		}
		if err != nil {
			var searchErr *launcher.SearchError
			if !errors.As(err, &searchErr) {
				err = &launcher.SearchError{Query: q, Err: err}
			}
			return searchResultMsg{seq: seq, query: q, err: err}
		}
		return searchResultMsg{seq: seq, query: q, results: results}
	}
}

// Invalidate marks every in-flight response stale.
func (d *SearchDispatcher) Invalidate() {
	d.seq++
}

// Accept reports whether msg answers the most recent dispatch.
func (d *SearchDispatcher) Accept(msg searchResultMsg) bool {
	return msg.seq == d.seq
}

// Latest returns the sequence number of the most recent dispatch.
func (d *SearchDispatcher) Latest() uint64 {
	return d.seq
}

// validateResults rejects responses whose launch handles are missing or
// ambiguous.
func validateResults(results []launcher.SearchResult) error {
	seen := make(map[string]struct{}, len(results))
	for i, r := range results {
		if strings.TrimSpace(r.Path) == "" {
			return fmt.Errorf("result %d has no path", i)
		}
		if _, dup := seen[r.Path]; dup {
			return fmt.Errorf("duplicate result path %q", r.Path)
		}
		seen[r.Path] = struct{}{}
	}
	return nil
}

// runSearch dispatches query, clearing the results immediately when it is
// empty.
func (m *Model) runSearch(query string) tea.Cmd {
	if cmd := m.search.Dispatch(query); cmd != nil {
		return cmd
	}
	m.clearResults()
	return m.resizeCmd()
}

func (m *Model) handleSearchResultMsg(msg tea.Msg) tea.Cmd {
	res, ok := msg.(searchResultMsg)
	if !ok {
		return nil
	}
	if !m.search.Accept(res) {
		events.Search.Stale(res.seq, m.search.Latest(), res.query)
		return nil
	}
	if res.err != nil {
		events.Search.Error(res.seq, res.err)
		logging.Error(res.err)
		m.reportError(res.err)
		return nil
	}
	events.Search.Apply(res.seq, res.query, len(res.results))
	m.applyResults(res.query, res.results)
	return m.resizeCmd()
}

// clearResults empties the result set and forgets the last applied query.
func (m *Model) clearResults() {
	m.results.Clear()
	m.lastQuery = ""
	m.errMsg = ""
	m.refreshDisplay()
}

func (m *Model) applyResults(query string, results []launcher.SearchResult) {
	m.results.Replace(results)
	m.lastQuery = query
	m.errMsg = ""
	m.refreshDisplay()
}
