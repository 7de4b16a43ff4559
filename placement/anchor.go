package placement

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bramble/tilemap"
)

// FootprintTiles is the hazard length along its growth axis, in tiles.
const FootprintTiles = 3

// SlopePolicy selects which facings get flush-to-slope correction.
type SlopePolicy uint8

const (
	// SlopesAll corrects every facing.
	SlopesAll SlopePolicy = iota
	// SlopesVertical corrects only Up and Down. Horizontal emitters keep
	// the plain half-tile centering.
	SlopesVertical
)

// Request describes one placement attempt.
type Request struct {
	// Emitter is the bounding box of the creature or trap spawning the hazard.
	Emitter tilemap.Rect
	Facing  Facing
	Slopes  SlopePolicy
}

// Plan records every intermediate value of a placement attempt so callers
// can inspect or draw it.
type Plan struct {
	Facing Facing
	// Base is the anchor before slope correction.
	Base cp.Vector
	// Anchor is where the hazard is spawned.
	Anchor cp.Vector
	Offset float64
	// Supported is true when a solid tile sits under Base.
	Supported bool
	Support   tilemap.Tile
	// Candidate is the nominal hazard rectangle; Probe is Candidate inset by
	// one unit and is what the solidity test ran against.
	Candidate tilemap.Rect
	Probe     tilemap.Rect
	Solid     bool
}

// OK reports whether the plan allows a spawn.
func (p Plan) OK() bool {
	return p.Supported && p.Solid
}

// Spawn is the request handed to whoever owns the area's entity list.
type Spawn struct {
	Pos    cp.Vector
	Facing Facing
}

// AnchorPoint returns where a hazard emitted from emitter originates.
func AnchorPoint(emitter tilemap.Rect, f Facing) cp.Vector {
	mid := emitter.Middle()
	switch f {
	case Up:
		return cp.Vector{X: mid.X, Y: emitter.Bottom() + tilemap.TileSizeF}
	case Down:
		return cp.Vector{X: mid.X, Y: emitter.Top()}
	case Left:
		return cp.Vector{X: emitter.Right() + tilemap.TileSizeF, Y: mid.Y}
	case Right:
		return cp.Vector{X: emitter.Left(), Y: mid.Y}
	default:
		panic(fmt.Sprintf("placement: unknown facing %d", uint8(f)))
	}
}

// FootprintSize returns the hazard's width and height for f.
func FootprintSize(f Facing) (float64, float64) {
	long := tilemap.TileSizeF * FootprintTiles
	if f.Vertical() {
		return tilemap.TileSizeF, long
	}
	return long, tilemap.TileSizeF
}

// CandidateRect returns the nominal hazard rectangle for a hazard anchored
// at anchor. Down and Right footprints extend back from the anchor, clamped
// at the world origin.
func CandidateRect(anchor cp.Vector, f Facing) tilemap.Rect {
	w, h := FootprintSize(f)
	pos := anchor
	switch f {
	case Down:
		pos.Y = math.Max(pos.Y-h, 0)
		pos.X -= halfStep
	case Up:
		pos.X -= halfStep
	case Right:
		pos.X = math.Max(pos.X-w, 0)
		pos.Y -= halfStep
	case Left:
		pos.Y -= halfStep
	default:
		panic(fmt.Sprintf("placement: unknown facing %d", uint8(f)))
	}
	return tilemap.Rect{X: pos.X, Y: pos.Y, Width: w, Height: h}
}

func applyOffset(p cp.Vector, f Facing, offset float64) cp.Vector {
	if f.Vertical() {
		p.Y += offset
	} else {
		p.X += offset
	}
	return p
}

// Evaluate runs the full placement test without deciding anything for the
// caller. It never mutates layers.
func Evaluate(req Request, layers []TileLayer) Plan {
	plan := Plan{Facing: req.Facing}
	plan.Base = AnchorPoint(req.Emitter, req.Facing)
	plan.Anchor = plan.Base

	plan.Support, plan.Supported = supportAt(plan.Base, layers)
	if !plan.Supported {
		return plan
	}

	if req.Slopes == SlopesAll || req.Facing.Vertical() {
		plan.Offset = SlopeOffset(plan.Support, req.Facing)
	}
	plan.Anchor = applyOffset(plan.Base, req.Facing, plan.Offset)

	plan.Candidate = CandidateRect(plan.Anchor, req.Facing)
	plan.Probe = plan.Candidate.Grown(-1)
	plan.Solid = FootprintSolid(plan.Probe, layers)
	return plan
}

// Place returns the spawn for req, or false when the hazard would not be
// fully embedded in solid terrain.
func Place(req Request, layers []TileLayer) (Spawn, bool) {
	plan := Evaluate(req, layers)
	if !plan.OK() {
		return Spawn{}, false
	}
	return Spawn{Pos: plan.Anchor, Facing: req.Facing}, true
}
