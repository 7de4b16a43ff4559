package system

import (
	"github.com/milk9111/bramble/creature"
	"github.com/milk9111/bramble/ecs"
	"github.com/milk9111/bramble/ecs/component"
	"github.com/milk9111/bramble/placement"
)

// WalkSystem sets every walker's horizontal velocity from its facing and
// stats, turning it around at walls and, when asked, at ledges.
type WalkSystem struct{}

func NewWalkSystem() *WalkSystem {
	return &WalkSystem{}
}

func (s *WalkSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach2(w, component.CreatureComponent.Kind(), component.VelocityComponent.Kind(), func(e ecs.Entity, c *component.Creature, v *component.Velocity) {
		if !walker(c) || isDead(w, e) {
			return
		}
		if isFrozen(w, e) {
			v.X = 0
			return
		}

		if contact, ok := ecs.Get(w, e, component.ContactComponent.Kind()); ok {
			blocked := (c.Facing == placement.Left && contact.WallLeft) || (c.Facing == placement.Right && contact.WallRight)
			if blocked || (c.TurnAtLedges && contact.Grounded && contact.LedgeAhead) {
				c.Facing = c.Facing.Opposite()
			}
		}

		v.X = walkVelocity(c)
		if c.Stats.FallSpeed > 0 && v.Y > c.Stats.FallSpeed {
			v.Y = c.Stats.FallSpeed
		}
	})
}

func walkVelocity(c *component.Creature) float64 {
	scale := c.SpeedScale
	if scale <= 0 {
		scale = 1
	}
	speed := c.Stats.WalkSpeed * scale
	if c.Facing == placement.Left {
		return -speed
	}
	return speed
}

// LeafSystem runs each experienced leaf's flight and lets it override the
// vertical velocity while it rises.
type LeafSystem struct{}

func NewLeafSystem() *LeafSystem {
	return &LeafSystem{}
}

func (s *LeafSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.DeltaTime()
	ecs.ForEach3(w, component.LeafComponent.Kind(), component.CreatureComponent.Kind(), component.VelocityComponent.Kind(), func(e ecs.Entity, leaf *component.Leaf, c *component.Creature, v *component.Velocity) {
		if isDead(w, e) {
			return
		}
		vy, override := leaf.Flight.Step(dt, creature.FlightInput{
			OnGround: isGrounded(w, e),
			Frozen:   isFrozen(w, e),
			Stats:    c.Stats,
		})
		if override {
			v.Y = vy
		}
	})
}
