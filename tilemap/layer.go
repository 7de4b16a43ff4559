package tilemap

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bramble/common"
)

// Layer is one rectangular tile grid. Tiles are stored row-major.
type Layer struct {
	Name   string
	Width  int
	Height int
	Tiles  []Tile
	// Offset is the world position of cell (0,0).
	Offset cp.Vector
	// Solid marks a solid-terrain layer; decorative layers never support
	// or block anything.
	Solid bool
	// Path names the motion path driving this layer. A non-empty path makes
	// the layer moving.
	Path string
}

// NewLayer allocates an empty width x height layer.
func NewLayer(name string, width, height int, solid bool) (*Layer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("tilemap: layer %q: invalid dimensions %dx%d", name, width, height)
	}
	return &Layer{
		Name:   name,
		Width:  width,
		Height: height,
		Tiles:  make([]Tile, width*height),
		Solid:  solid,
	}, nil
}

// Moving reports whether the layer has an associated motion path.
func (l *Layer) Moving() bool {
	return l != nil && l.Path != ""
}

func (l *Layer) inBounds(x, y int) bool {
	return l != nil && x >= 0 && y >= 0 && x < l.Width && y < l.Height
}

// Tile returns the tile at grid cell (x,y), or Empty outside the grid.
func (l *Layer) Tile(x, y int) Tile {
	if !l.inBounds(x, y) {
		return Empty
	}
	idx := y*l.Width + x
	if idx >= len(l.Tiles) {
		return Empty
	}
	return l.Tiles[idx]
}

// SetTile stores t at (x,y). Cells outside the grid are ignored.
func (l *Layer) SetTile(x, y int, t Tile) {
	if !l.inBounds(x, y) {
		return
	}
	idx := y*l.Width + x
	if idx >= len(l.Tiles) {
		return
	}
	l.Tiles[idx] = t
}

// Cell converts a world point into grid coordinates.
func (l *Layer) Cell(p cp.Vector) (int, int) {
	x := int(math.Floor((p.X - l.Offset.X) / common.TileSize))
	y := int(math.Floor((p.Y - l.Offset.Y) / common.TileSize))
	return x, y
}

// TileAt returns the tile under world point p.
func (l *Layer) TileAt(p cp.Vector) Tile {
	if l == nil {
		return Empty
	}
	x, y := l.Cell(p)
	return l.Tile(x, y)
}

// CellRect returns the world bounds of grid cell (x,y).
func (l *Layer) CellRect(x, y int) Rect {
	return Rect{
		X:      l.Offset.X + float64(x*common.TileSize),
		Y:      l.Offset.Y + float64(y*common.TileSize),
		Width:  common.TileSize,
		Height: common.TileSize,
	}
}

// TilesOverlapping returns every cell whose bounds intersect r. The range is
// not clipped to the grid; cells outside it read as Empty.
func (l *Layer) TilesOverlapping(r Rect) CellRange {
	if l == nil || r.Width <= 0 || r.Height <= 0 {
		return CellRange{}
	}
	local := r.Moved(-l.Offset.X, -l.Offset.Y)
	return CellRange{
		Left:   int(math.Floor(local.Left() / common.TileSize)),
		Top:    int(math.Floor(local.Top() / common.TileSize)),
		Right:  int(math.Ceil(local.Right() / common.TileSize)),
		Bottom: int(math.Ceil(local.Bottom() / common.TileSize)),
	}
}

// Bounds returns the world rectangle covered by the layer.
func (l *Layer) Bounds() Rect {
	return Rect{
		X:      l.Offset.X,
		Y:      l.Offset.Y,
		Width:  float64(l.Width * common.TileSize),
		Height: float64(l.Height * common.TileSize),
	}
}
