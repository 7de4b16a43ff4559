package component

import (
	"github.com/milk9111/bramble/creature"
	"github.com/milk9111/bramble/placement"
)

// RootTrap is an invisible emitter that places roots from its bounding box.
type RootTrap struct {
	Latch  creature.TrapLatch
	Facing placement.Facing
	Sticky bool
	Width  float64
	Height float64
	Active bool
}

var RootTrapComponent = NewComponent[RootTrap]()
