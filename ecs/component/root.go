package component

import (
	"github.com/milk9111/bramble/placement"
	"github.com/milk9111/bramble/tilemap"
)

// RootPhase is the lifecycle stage of a root hazard.
type RootPhase uint8

const (
	RootGrowing RootPhase = iota
	RootHolding
	RootRetracting
	RootDone
)

// Root is a spawned hazard growing out of solid terrain along Facing.
type Root struct {
	Facing placement.Facing
	// Footprint is the full 32x96 (or 96x32) rect the root occupies when
	// fully grown.
	Footprint   tilemap.Rect
	GrowTime    float64
	HoldTime    float64
	RetractTime float64

	Phase   RootPhase
	Elapsed float64
	// Exposed is the grown fraction in [0,1].
	Exposed float64
}

var RootComponent = NewComponent[Root]()
