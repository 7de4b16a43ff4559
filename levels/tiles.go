package levels

import (
	"fmt"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bramble/tilemap"
)

var attributeNames = map[string]tilemap.Attributes{
	"solid":    tilemap.Solid,
	"unisolid": tilemap.Unisolid,
	"slope":    tilemap.Slope,
	"hurts":    tilemap.Hurts,
	"ice":      tilemap.Ice,
}

// Tile converts a legend entry to a grid tile.
func (s TileSpec) Tile() (tilemap.Tile, error) {
	var t tilemap.Tile
	for _, name := range s.Attrs {
		attr, ok := attributeNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return tilemap.Empty, fmt.Errorf("unknown tile attribute %q", name)
		}
		t.Attributes |= attr
	}
	if t.IsSlope() {
		shape, ok := tilemap.ParseSlope(s.Slope, s.Deform)
		if !ok {
			return tilemap.Empty, fmt.Errorf("invalid slope %q/%q", s.Slope, s.Deform)
		}
		t.Data = uint32(shape)
	}
	return t, nil
}

// TileLayers builds one tile grid per level layer, in file order.
func (l *Level) TileLayers() ([]*tilemap.Layer, error) {
	legend := make(map[byte]tilemap.Tile, len(l.Legend))
	for sym, spec := range l.Legend {
		if len(sym) != 1 {
			return nil, fmt.Errorf("level %q: legend key %q must be one character", l.Name, sym)
		}
		t, err := spec.Tile()
		if err != nil {
			return nil, fmt.Errorf("level %q: legend %q: %w", l.Name, sym, err)
		}
		legend[sym[0]] = t
	}

	out := make([]*tilemap.Layer, 0, len(l.Layers))
	for _, spec := range l.Layers {
		layer, err := tilemap.NewLayer(spec.Name, l.Width, l.Height, spec.Solid)
		if err != nil {
			return nil, fmt.Errorf("level %q: %w", l.Name, err)
		}
		layer.Path = spec.Path
		layer.Offset = cp.Vector{X: spec.OffsetX, Y: spec.OffsetY}
		for y, row := range spec.Rows {
			for x := 0; x < len(row) && x < l.Width; x++ {
				if t, ok := legend[row[x]]; ok {
					layer.SetTile(x, y, t)
				}
			}
		}
		out = append(out, layer)
	}
	return out, nil
}

// PixelSize is the level's extent in world units.
func (l *Level) PixelSize() (float64, float64) {
	return float64(l.Width) * tilemap.TileSizeF, float64(l.Height) * tilemap.TileSizeF
}
