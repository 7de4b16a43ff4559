package tilemap

import "github.com/jakecoffman/cp"

// Rect is an axis-aligned rectangle with a top-left origin, y down.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

func RectFromPoints(left, top, right, bottom float64) Rect {
	return Rect{X: left, Y: top, Width: right - left, Height: bottom - top}
}

func (r Rect) Left() float64   { return r.X }
func (r Rect) Top() float64    { return r.Y }
func (r Rect) Right() float64  { return r.X + r.Width }
func (r Rect) Bottom() float64 { return r.Y + r.Height }

func (r Rect) Middle() cp.Vector {
	return cp.Vector{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Grown returns r expanded by border on every side. A negative border
// shrinks it.
func (r Rect) Grown(border float64) Rect {
	return Rect{
		X:      r.X - border,
		Y:      r.Y - border,
		Width:  r.Width + 2*border,
		Height: r.Height + 2*border,
	}
}

func (r Rect) Moved(dx, dy float64) Rect {
	r.X += dx
	r.Y += dy
	return r
}

func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.Width &&
		r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height &&
		r.Y+r.Height > other.Y
}

func (r Rect) Contains(p cp.Vector) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// CellRange is a half-open range of grid cells: [Left,Right) x [Top,Bottom).
type CellRange struct {
	Left, Top     int
	Right, Bottom int
}

func (c CellRange) Empty() bool {
	return c.Right <= c.Left || c.Bottom <= c.Top
}

func (c CellRange) Count() int {
	if c.Empty() {
		return 0
	}
	return (c.Right - c.Left) * (c.Bottom - c.Top)
}
