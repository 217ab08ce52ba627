package state

// MoveDown advances the selection by one, stopping at the last result.
func (r *ResultSet) MoveDown() bool {
	return r.moveBy(1)
}

// MoveUp moves the selection back by one, stopping at the first result.
func (r *ResultSet) MoveUp() bool {
	return r.moveBy(-1)
}

// Reset selects the first result and scrolls to the top.
func (r *ResultSet) Reset() {
	r.Selected = 0
	r.ViewportOffset = 0
}

// Select moves the selection to index. Out-of-range indexes are rejected.
func (r *ResultSet) Select(index int) bool {
	if index < 0 || index >= len(r.Items) {
		return false
	}
	r.Selected = index
	return true
}

// MovePageUp moves the selection up by the given page size.
func (r *ResultSet) MovePageUp(maxVisible int) bool {
	return r.moveBy(-r.pageSize(maxVisible))
}

// MovePageDown moves the selection down by the given page size.
func (r *ResultSet) MovePageDown(maxVisible int) bool {
	return r.moveBy(r.pageSize(maxVisible))
}

func (r *ResultSet) moveBy(delta int) bool {
	if len(r.Items) == 0 {
		r.Selected = 0
		return false
	}
	old := r.Selected
	if r.Selected < 0 {
		r.Selected = 0
	}
	r.Selected += delta
	if r.Selected < 0 {
		r.Selected = 0
	}
	if r.Selected >= len(r.Items) {
		r.Selected = len(r.Items) - 1
	}
	return r.Selected != old
}

func (r *ResultSet) pageSize(maxVisible int) int {
	total := len(r.Items)
	if total == 0 {
		return 0
	}
	size := maxVisible
	if size <= 0 || size > total {
		size = total
	}
	if size < 1 {
		size = 1
	}
	return size
}

// EnsureVisible adjusts the viewport offset so the selection stays visible.
func (r *ResultSet) EnsureVisible(maxVisible int) {
	if len(r.Items) == 0 {
		r.Selected = 0
		r.ViewportOffset = 0
		return
	}
	if r.Selected < 0 {
		r.Selected = 0
	}
	if r.Selected >= len(r.Items) {
		r.Selected = len(r.Items) - 1
	}
	if maxVisible <= 0 {
		r.ViewportOffset = 0
		return
	}
	maxOffset := len(r.Items) - maxVisible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if r.ViewportOffset > maxOffset {
		r.ViewportOffset = maxOffset
	}
	if r.ViewportOffset < 0 {
		r.ViewportOffset = 0
	}
	if r.Selected < r.ViewportOffset {
		r.ViewportOffset = r.Selected
	}
	upper := r.ViewportOffset + maxVisible - 1
	if r.Selected > upper {
		r.ViewportOffset = r.Selected - maxVisible + 1
		if r.ViewportOffset < 0 {
			r.ViewportOffset = 0
		}
		if r.ViewportOffset > maxOffset {
			r.ViewportOffset = maxOffset
		}
	}
}
