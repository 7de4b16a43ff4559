package placement

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/bramble/tilemap"
)

// TileLayer is the read-only terrain surface the kernel consults.
// *tilemap.Layer satisfies it. Every layer handed to the kernel is treated
// as solid terrain; build the set with FromLayers, which drops decorative
// layers.
type TileLayer interface {
	TileAt(p cp.Vector) tilemap.Tile
	Tile(x, y int) tilemap.Tile
	TilesOverlapping(r tilemap.Rect) tilemap.CellRange
	Moving() bool
}

// FromLayers adapts concrete layers to the kernel's interface, keeping only
// solid-terrain layers.
func FromLayers(layers ...*tilemap.Layer) []TileLayer {
	out := make([]TileLayer, 0, len(layers))
	for _, l := range layers {
		if l == nil || !l.Solid {
			continue
		}
		out = append(out, l)
	}
	return out
}

// FootprintSolid reports whether a single static layer is solid in every
// cell overlapping r. Moving layers are skipped entirely and solidity is
// never combined across layers.
func FootprintSolid(r tilemap.Rect, layers []TileLayer) bool {
	for _, layer := range layers {
		if layer == nil || layer.Moving() {
			continue
		}
		if layerSolid(layer, r) {
			return true
		}
	}
	return false
}

func layerSolid(layer TileLayer, r tilemap.Rect) bool {
	cells := layer.TilesOverlapping(r)
	if cells.Empty() {
		return false
	}
	for x := cells.Left; x < cells.Right; x++ {
		for y := cells.Top; y < cells.Bottom; y++ {
			if !layer.Tile(x, y).IsSolid() {
				return false
			}
		}
	}
	return true
}

// supportAt returns the first tile at p that is solid in any layer. Moving
// layers count here; only the footprint test excludes them.
func supportAt(p cp.Vector, layers []TileLayer) (tilemap.Tile, bool) {
	for _, layer := range layers {
		if layer == nil {
			continue
		}
		if t := layer.TileAt(p); t.IsSolid() {
			return t, true
		}
	}
	return tilemap.Empty, false
}
