package component

import (
	"github.com/milk9111/bramble/creature"
	"github.com/milk9111/bramble/placement"
)

// Creature is the shared record every badguy carries. Kind selects the
// behavior table; Variant and Stats change together through SetVariant.
type Creature struct {
	Kind    creature.Kind
	Variant creature.Variant
	Sprite  string
	Stats   creature.Stats
	// Facing is the walking direction, Left or Right.
	Facing placement.Facing
	// TurnAtLedges makes walkers turn around instead of falling.
	TurnAtLedges bool
	// SpeedScale multiplies the walk speed; AI scripts raise it to roll.
	SpeedScale float64
}

// SetVariant switches the creature's variant and reloads its sprite and stats.
func (c *Creature) SetVariant(v creature.Variant) {
	b := creature.Lookup(c.Kind)
	c.Variant = v
	c.Sprite = b.DefaultSprite(v)
	c.Stats = b.Stats(v)
}

var CreatureComponent = NewComponent[Creature]()

// Frozen marks a creature encased in ice for Remaining seconds.
type Frozen struct {
	Remaining float64
}

var FrozenComponent = NewComponent[Frozen]()

// Dead is attached by systems that decide a creature dies this tick; the
// cleanup system destroys the entity after every system has seen it.
type Dead struct {
	Reason string
}

var DeadComponent = NewComponent[Dead]()
