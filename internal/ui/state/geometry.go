package state

// Window geometry in logical units. The overlay shows at most MaxVisibleRows
// results before it scrolls.
const (
	WindowWidth    = 680
	BaseHeight     = 72
	RowHeight      = 58
	MaxVisibleRows = 4
)

// Geometry is the window size derived from a result count.
type Geometry struct {
	Width      int
	Height     int
	Scrollable bool
	Visible    int
}

// GeometryFor returns the geometry for n results.
func GeometryFor(n int) Geometry {
	if n < 0 {
		n = 0
	}
	visible := n
	if visible > MaxVisibleRows {
		visible = MaxVisibleRows
	}
	return Geometry{
		Width:      WindowWidth,
		Height:     BaseHeight + visible*RowHeight,
		Scrollable: n > MaxVisibleRows,
		Visible:    visible,
	}
}
