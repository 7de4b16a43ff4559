package tilemap

import (
	"strings"

	"github.com/jakecoffman/cp"
)

// SlopeShape describes a diagonal tile: the low bits hold which corner the
// solid half sits in, bits 4-6 which half of the tile is deformed.
type SlopeShape uint32

const (
	SouthWest SlopeShape = 0
	NorthEast SlopeShape = 1
	SouthEast SlopeShape = 2
	NorthWest SlopeShape = 3

	DirectionMask SlopeShape = 0x0003

	DeformNone   SlopeShape = 0x0000
	DeformBottom SlopeShape = 0x0010
	DeformTop    SlopeShape = 0x0020
	DeformLeft   SlopeShape = 0x0030
	DeformRight  SlopeShape = 0x0040

	DeformMask SlopeShape = 0x0070
)

func (s SlopeShape) Direction() SlopeShape { return s & DirectionMask }
func (s SlopeShape) Deform() SlopeShape    { return s & DeformMask }

func (s SlopeShape) IsSouth() bool {
	d := s.Direction()
	return d == SouthWest || d == SouthEast
}

func (s SlopeShape) IsEast() bool {
	d := s.Direction()
	return d == NorthEast || d == SouthEast
}

var slopeDirections = map[string]SlopeShape{
	"southwest": SouthWest,
	"northeast": NorthEast,
	"southeast": SouthEast,
	"northwest": NorthWest,
}

var slopeDeforms = map[string]SlopeShape{
	"":       DeformNone,
	"none":   DeformNone,
	"bottom": DeformBottom,
	"top":    DeformTop,
	"left":   DeformLeft,
	"right":  DeformRight,
}

// ParseSlope builds a descriptor from level-file names such as
// ("southeast", "top"). Unknown names report false.
func ParseSlope(direction, deform string) (SlopeShape, bool) {
	dir, ok := slopeDirections[strings.ToLower(strings.TrimSpace(direction))]
	if !ok {
		return 0, false
	}
	def, ok := slopeDeforms[strings.ToLower(strings.TrimSpace(deform))]
	if !ok {
		return 0, false
	}
	return dir | def, true
}

// deformedRect returns the part of cell that holds the slope's hypotenuse.
func (s SlopeShape) deformedRect(cell Rect) Rect {
	mid := cell.Middle()
	switch s.Deform() {
	case DeformBottom:
		return RectFromPoints(cell.Left(), mid.Y, cell.Right(), cell.Bottom())
	case DeformTop:
		return RectFromPoints(cell.Left(), cell.Top(), cell.Right(), mid.Y)
	case DeformLeft:
		return RectFromPoints(cell.Left(), cell.Top(), mid.X, cell.Bottom())
	case DeformRight:
		return RectFromPoints(mid.X, cell.Top(), cell.Right(), cell.Bottom())
	default:
		return cell
	}
}

// Polygon returns the solid region of a slope tile occupying cell, as a
// convex polygon in world coordinates.
func (s SlopeShape) Polygon(cell Rect) []cp.Vector {
	r := s.deformedRect(cell)

	var a, b, inside cp.Vector
	switch s.Direction() {
	case SouthWest:
		a, b = cp.Vector{X: r.Left(), Y: r.Top()}, cp.Vector{X: r.Right(), Y: r.Bottom()}
		inside = cp.Vector{X: cell.Left(), Y: cell.Bottom()}
	case NorthEast:
		a, b = cp.Vector{X: r.Left(), Y: r.Top()}, cp.Vector{X: r.Right(), Y: r.Bottom()}
		inside = cp.Vector{X: cell.Right(), Y: cell.Top()}
	case SouthEast:
		a, b = cp.Vector{X: r.Right(), Y: r.Top()}, cp.Vector{X: r.Left(), Y: r.Bottom()}
		inside = cp.Vector{X: cell.Right(), Y: cell.Bottom()}
	default:
		a, b = cp.Vector{X: r.Right(), Y: r.Top()}, cp.Vector{X: r.Left(), Y: r.Bottom()}
		inside = cp.Vector{X: cell.Left(), Y: cell.Top()}
	}

	side := func(p cp.Vector) float64 {
		return (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
	}
	want := side(inside)

	corners := []cp.Vector{
		{X: cell.Left(), Y: cell.Top()},
		{X: cell.Right(), Y: cell.Top()},
		{X: cell.Right(), Y: cell.Bottom()},
		{X: cell.Left(), Y: cell.Bottom()},
	}

	// single-plane Sutherland-Hodgman clip of the cell against the hypotenuse
	out := make([]cp.Vector, 0, 5)
	for i := range corners {
		cur := corners[i]
		next := corners[(i+1)%len(corners)]
		sc := side(cur) * want
		sn := side(next) * want
		if sc >= 0 {
			out = append(out, cur)
		}
		if (sc > 0 && sn < 0) || (sc < 0 && sn > 0) {
			t := sc / (sc - sn)
			out = append(out, cur.Lerp(next, t))
		}
	}
	return out
}
