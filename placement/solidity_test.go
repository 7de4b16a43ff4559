package placement

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bramble/tilemap"
)

func solidLayer(t *testing.T, w, h int) *tilemap.Layer {
	t.Helper()
	l, err := tilemap.NewLayer("solid", w, h, true)
	if err != nil {
		t.Fatalf("NewLayer: %v", err)
	}
	return l
}

func fill(l *tilemap.Layer, x0, y0, x1, y1 int) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			l.SetTile(x, y, tilemap.SolidTile())
		}
	}
}

// column covers cells (1,3)..(1,5), the footprint of an Up root anchored at (48,96).
var column = tilemap.Rect{X: 32, Y: 96, Width: 32, Height: 96}.Grown(-1)

// countingLayer records how many cells were read.
type countingLayer struct {
	*tilemap.Layer
	reads int
}

func (c *countingLayer) Tile(x, y int) tilemap.Tile {
	c.reads++
	return c.Layer.Tile(x, y)
}

// alwaysSolid claims every cell is solid but moves.
type alwaysSolid struct{}

func (alwaysSolid) TileAt(cp.Vector) tilemap.Tile { return tilemap.SolidTile() }
func (alwaysSolid) Tile(int, int) tilemap.Tile    { return tilemap.SolidTile() }
func (alwaysSolid) TilesOverlapping(r tilemap.Rect) tilemap.CellRange {
	return tilemap.CellRange{Left: 0, Top: 0, Right: 1, Bottom: 1}
}
func (alwaysSolid) Moving() bool { return true }

func TestFootprintSolid(t *testing.T) {
	t.Run("no_layers", func(t *testing.T) {
		if FootprintSolid(column, nil) {
			t.Fatalf("expected false with zero layers")
		}
	})

	t.Run("fully_solid_layer", func(t *testing.T) {
		l := solidLayer(t, 4, 8)
		fill(l, 1, 3, 2, 6)
		if !FootprintSolid(column, FromLayers(l)) {
			t.Fatalf("expected solid column to pass")
		}
	})

	t.Run("one_hole_vetoes", func(t *testing.T) {
		l := solidLayer(t, 4, 8)
		fill(l, 0, 0, 4, 8)
		l.SetTile(1, 4, tilemap.Empty)
		if FootprintSolid(column, FromLayers(l)) {
			t.Fatalf("expected hole to veto")
		}
	})

	t.Run("no_union_across_layers", func(t *testing.T) {
		top := solidLayer(t, 4, 8)
		bottom := solidLayer(t, 4, 8)
		fill(top, 1, 3, 2, 5)
		fill(bottom, 1, 5, 2, 6)
		if FootprintSolid(column, FromLayers(top, bottom)) {
			t.Fatalf("solidity must come from a single layer")
		}
	})

	t.Run("any_single_layer_suffices", func(t *testing.T) {
		partial := solidLayer(t, 4, 8)
		fill(partial, 1, 3, 2, 4)
		full := solidLayer(t, 4, 8)
		fill(full, 1, 3, 2, 6)
		if !FootprintSolid(column, FromLayers(partial, full)) {
			t.Fatalf("expected second layer to pass")
		}
	})

	t.Run("moving_layer_skipped", func(t *testing.T) {
		moving := solidLayer(t, 4, 8)
		fill(moving, 0, 0, 4, 8)
		moving.Path = "elevator"
		if FootprintSolid(column, FromLayers(moving)) {
			t.Fatalf("moving layer must not support a hazard")
		}
		if FootprintSolid(column, []TileLayer{alwaysSolid{}}) {
			t.Fatalf("moving layer must be skipped regardless of its tiles")
		}
	})

	t.Run("moving_layer_does_not_block_static", func(t *testing.T) {
		static := solidLayer(t, 4, 8)
		fill(static, 1, 3, 2, 6)
		if !FootprintSolid(column, []TileLayer{alwaysSolid{}, static}) {
			t.Fatalf("static layer should still pass")
		}
	})

	t.Run("decorative_layer_skipped", func(t *testing.T) {
		deco, err := tilemap.NewLayer("deco", 4, 8, false)
		if err != nil {
			t.Fatalf("NewLayer: %v", err)
		}
		fill(deco, 0, 0, 4, 8)
		if got := FromLayers(deco); len(got) != 0 {
			t.Fatalf("expected decorative layer to be dropped, got %d layers", len(got))
		}
		if FootprintSolid(column, FromLayers(deco)) {
			t.Fatalf("decorative layer must not support a hazard")
		}
		if plan := Evaluate(Request{Emitter: tilemap.Rect{X: 32, Y: 32, Width: 32, Height: 32}, Facing: Up}, FromLayers(deco)); plan.Supported {
			t.Fatalf("decorative layer must not count as support")
		}
	})

	t.Run("outside_grid_is_not_solid", func(t *testing.T) {
		l := solidLayer(t, 2, 4)
		fill(l, 0, 0, 2, 4)
		if FootprintSolid(column, FromLayers(l)) {
			t.Fatalf("cells past the grid edge must read as empty")
		}
	})

	t.Run("short_circuits_on_first_hole", func(t *testing.T) {
		l := solidLayer(t, 4, 8)
		cl := &countingLayer{Layer: l}
		if FootprintSolid(column, []TileLayer{cl}) {
			t.Fatalf("empty layer should fail")
		}
		if cl.reads != 1 {
			t.Fatalf("expected a single tile read, got %d", cl.reads)
		}
	})
}
