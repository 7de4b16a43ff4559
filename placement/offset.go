package placement

import (
	"fmt"

	"github.com/milk9111/bramble/tilemap"
)

const (
	halfStep = tilemap.TileSizeF / 2
	fullStep = tilemap.TileSizeF
)

// SlopeOffset returns how far a hazard anchored against tile must be moved
// along its growth axis so it sits flush with the visible slope surface.
// Non-slope tiles and slopes that do not face the emitter yield zero.
func SlopeOffset(tile tilemap.Tile, f Facing) float64 {
	if !tile.IsSlope() {
		return 0
	}

	slope := tile.Slope()
	deform := slope.Deform()

	switch f {
	case Up:
		if !slope.IsSouth() {
			return 0
		}
		if deform == tilemap.DeformTop {
			return halfStep
		}
		return fullStep

	case Down:
		if slope.IsSouth() {
			return 0
		}
		if deform == tilemap.DeformBottom {
			return -halfStep
		}
		return -fullStep

	case Left:
		if !slope.IsEast() {
			return 0
		}
		if deform == tilemap.DeformLeft {
			return halfStep
		}
		return fullStep

	case Right:
		if slope.IsEast() {
			return 0
		}
		if deform == tilemap.DeformRight {
			return -halfStep
		}
		return -fullStep

	default:
		panic(fmt.Sprintf("placement: unknown facing %d", uint8(f)))
	}
}
