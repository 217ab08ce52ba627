package state

import "github.com/atomicstack/tmux-quicklaunch/internal/launcher"

// Screen layout shared by the view and pointer hit-testing: a query line and
// a spacer precede the rows, and every row spans a name line and a path line.
const (
	HeaderLines = 2
	RowLines    = 2
)

// Row is one rendered result. Index is the row's position in the result set
// and is the value pointer activation resolves to.
type Row struct {
	Index    int
	Name     string
	Path     string
	Kind     string
	Selected bool
}

// DisplayList is the projection of a result set onto the screen.
type DisplayList struct {
	Rows       []Row
	Offset     int
	Visible    int
	Scrollable bool
}

// Render projects results and the selected index into a display list with
// neutralised text. It has no side effects.
func Render(results []launcher.SearchResult, selected int) DisplayList {
	geom := GeometryFor(len(results))
	list := DisplayList{
		Rows:       make([]Row, len(results)),
		Visible:    geom.Visible,
		Scrollable: geom.Scrollable,
	}
	for i, result := range results {
		list.Rows[i] = Row{
			Index:    i,
			Name:     Sanitize(result.Name),
			Path:     Sanitize(result.Path),
			Kind:     Sanitize(result.Kind),
			Selected: i == selected,
		}
	}
	return list
}

// WithOffset returns the list scrolled so that offset is the first visible row.
func (d DisplayList) WithOffset(offset int) DisplayList {
	maxOffset := len(d.Rows) - d.Visible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if offset > maxOffset {
		offset = maxOffset
	}
	if offset < 0 {
		offset = 0
	}
	d.Offset = offset
	return d
}

// VisibleRows returns the rows currently on screen.
func (d DisplayList) VisibleRows() []Row {
	end := d.Offset + d.Visible
	if end > len(d.Rows) {
		end = len(d.Rows)
	}
	if d.Offset >= end {
		return nil
	}
	return d.Rows[d.Offset:end]
}

// RowAt maps a screen line to the result index rendered there.
func (d DisplayList) RowAt(y int) (int, bool) {
	if y < HeaderLines {
		return 0, false
	}
	pos := (y - HeaderLines) / RowLines
	rows := d.VisibleRows()
	if pos >= len(rows) {
		return 0, false
	}
	return rows[pos].Index, true
}
