package state

import "github.com/atomicstack/tmux-quicklaunch/internal/launcher"

// ResultSet holds the settled results of the latest applied search together
// with the selection and the first visible row. Items is replaced wholesale,
// never edited in place.
type ResultSet struct {
	Items          []launcher.SearchResult
	Selected       int
	ViewportOffset int
}

// Len reports the number of results.
func (r *ResultSet) Len() int {
	return len(r.Items)
}

// Replace installs a new result list and resets the selection to the top.
func (r *ResultSet) Replace(items []launcher.SearchResult) {
	if len(items) == 0 {
		r.Items = nil
	} else {
		r.Items = append([]launcher.SearchResult(nil), items...)
	}
	r.Reset()
}

// Clear drops every result.
func (r *ResultSet) Clear() {
	r.Replace(nil)
}

// Current returns the selected result, if any.
func (r *ResultSet) Current() (launcher.SearchResult, bool) {
	if r.Selected < 0 || r.Selected >= len(r.Items) {
		return launcher.SearchResult{}, false
	}
	return r.Items[r.Selected], true
}
