package render

// Camera maps arena coordinates onto a rectangle of terminal cells. The
// arena is stretched to fill the rectangle, so one cell covers more arena
// units vertically than horizontally on a typical terminal.
type Camera struct {
	OriginX, OriginY int // top-left cell of the arena view
	Cols, Rows       int
	ArenaW, ArenaH   float64
}

// NewCamera fits an arena of the given size into cols×rows cells at (x, y).
func NewCamera(arenaW, arenaH float64, x, y, cols, rows int) *Camera {
	return &Camera{
		OriginX: x, OriginY: y,
		Cols: max(cols, 1), Rows: max(rows, 1),
		ArenaW: arenaW, ArenaH: arenaH,
	}
}

// ArenaToScreen converts an arena point to a cell. visible is false for
// points outside the arena view, such as enemies still walking in from
// beyond the edge.
func (c *Camera) ArenaToScreen(ax, ay float64) (sx, sy int, visible bool) {
	if ax < 0 || ay < 0 || ax >= c.ArenaW || ay >= c.ArenaH {
		return 0, 0, false
	}
	sx = c.OriginX + int(ax/c.ArenaW*float64(c.Cols))
	sy = c.OriginY + int(ay/c.ArenaH*float64(c.Rows))
	return sx, sy, true
}

// ScreenToArena returns the arena point at the center of a cell. Cells
// outside the view are clamped onto its border.
func (c *Camera) ScreenToArena(sx, sy int) (float64, float64) {
	col := min(max(sx-c.OriginX, 0), c.Cols-1)
	row := min(max(sy-c.OriginY, 0), c.Rows-1)
	return (float64(col) + 0.5) / float64(c.Cols) * c.ArenaW,
		(float64(row) + 0.5) / float64(c.Rows) * c.ArenaH
}

// Contains reports whether a cell lies inside the arena view.
func (c *Camera) Contains(sx, sy int) bool {
	return sx >= c.OriginX && sx < c.OriginX+c.Cols && sy >= c.OriginY && sy < c.OriginY+c.Rows
}

// CellsFor converts an arena distance along x into a cell count.
func (c *Camera) CellsFor(d float64) int {
	return int(d / c.ArenaW * float64(c.Cols))
}
