package placement

import (
	"testing"

	"github.com/milk9111/bramble/tilemap"
)

var allFacings = []Facing{Up, Down, Left, Right}

var allSlopeDirections = []tilemap.SlopeShape{
	tilemap.SouthWest, tilemap.NorthEast, tilemap.SouthEast, tilemap.NorthWest,
}

var allDeforms = []tilemap.SlopeShape{
	tilemap.DeformNone, tilemap.DeformBottom, tilemap.DeformTop, tilemap.DeformLeft, tilemap.DeformRight,
}

func TestSlopeOffsetNonSlopeIsZero(t *testing.T) {
	tiles := []tilemap.Tile{
		tilemap.Empty,
		tilemap.SolidTile(),
		{Attributes: tilemap.Solid | tilemap.Hurts, Data: uint32(tilemap.SouthWest | tilemap.DeformTop)},
	}
	for _, tile := range tiles {
		for _, f := range allFacings {
			if got := SlopeOffset(tile, f); got != 0 {
				t.Fatalf("tile %+v facing %s: offset %v, want 0", tile, f, got)
			}
		}
	}
}

func TestSlopeOffsetTable(t *testing.T) {
	tests := []struct {
		name   string
		slope  tilemap.SlopeShape
		facing Facing
		want   float64
	}{
		{"up_south_top_half", tilemap.SouthWest | tilemap.DeformTop, Up, 16},
		{"up_south_bottom", tilemap.SouthEast | tilemap.DeformBottom, Up, 32},
		{"up_south_full", tilemap.SouthWest, Up, 32},
		{"up_north_ignored", tilemap.NorthEast | tilemap.DeformTop, Up, 0},
		{"down_north_bottom_half", tilemap.NorthWest | tilemap.DeformBottom, Down, -16},
		{"down_north_full", tilemap.NorthEast, Down, -32},
		{"down_south_ignored", tilemap.SouthWest, Down, 0},
		{"left_east_left_half", tilemap.NorthEast | tilemap.DeformLeft, Left, 16},
		{"left_east_full", tilemap.SouthEast, Left, 32},
		{"left_west_ignored", tilemap.SouthWest | tilemap.DeformLeft, Left, 0},
		{"right_west_right_half", tilemap.NorthWest | tilemap.DeformRight, Right, -16},
		{"right_west_top", tilemap.SouthWest | tilemap.DeformTop, Right, -32},
		{"right_east_ignored", tilemap.SouthEast | tilemap.DeformRight, Right, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := SlopeOffset(tilemap.SlopeTile(tc.slope), tc.facing); got != tc.want {
				t.Fatalf("SlopeOffset = %v, want %v", got, tc.want)
			}
		})
	}
}

func facesEmitter(s tilemap.SlopeShape, f Facing) bool {
	switch f {
	case Up:
		return s.IsSouth()
	case Down:
		return !s.IsSouth()
	case Left:
		return s.IsEast()
	default:
		return !s.IsEast()
	}
}

func TestSlopeOffsetMagnitudes(t *testing.T) {
	for _, dir := range allSlopeDirections {
		for _, def := range allDeforms {
			shape := dir | def
			tile := tilemap.SlopeTile(shape)
			for _, f := range allFacings {
				got := SlopeOffset(tile, f)
				if !facesEmitter(shape, f) {
					if got != 0 {
						t.Fatalf("slope %#x facing %s: mismatched orientation gave %v", uint32(shape), f, got)
					}
					continue
				}
				mag := got
				if mag < 0 {
					mag = -mag
				}
				if mag != 16 && mag != 32 {
					t.Fatalf("slope %#x facing %s: magnitude %v not in {16,32}", uint32(shape), f, got)
				}
				negative := f == Down || f == Right
				if (got < 0) != negative {
					t.Fatalf("slope %#x facing %s: wrong sign %v", uint32(shape), f, got)
				}
			}
		}
	}
}

func TestSlopeOffsetUnknownFacingPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for unknown facing")
		}
	}()
	SlopeOffset(tilemap.SlopeTile(tilemap.SouthWest), Facing(9))
}
