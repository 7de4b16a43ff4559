package system

import (
	"math"

	"github.com/milk9111/bramble/ecs"
	"github.com/milk9111/bramble/ecs/component"
	"github.com/milk9111/bramble/ecs/entity"
)

const (
	PlayerHurtCooldown = 1.0
	StarDuration       = 10.0
	FreezeRadius       = 96.0
	FreezeDuration     = 3.0
	bounceFactor       = 0.6
)

// PlayerControlSystem turns the player's Input into velocity and runs the
// sandbox powers: star invincibility and a freeze blast.
type PlayerControlSystem struct {
	prevStar   bool
	prevFreeze bool
}

func NewPlayerControlSystem() *PlayerControlSystem {
	return &PlayerControlSystem{}
}

func (s *PlayerControlSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	pe, p, ok := findPlayer(w)
	if !ok {
		return
	}
	dt := w.DeltaTime()
	p.Invincible = math.Max(0, p.Invincible-dt)
	p.HurtCooldown = math.Max(0, p.HurtCooldown-dt)

	in, ok := ecs.Get(w, pe, component.InputComponent.Kind())
	if !ok {
		return
	}
	v, ok := ecs.Get(w, pe, component.VelocityComponent.Kind())
	if !ok {
		return
	}

	v.X = 0
	if in.Left {
		v.X -= p.MoveSpeed
	}
	if in.Right {
		v.X += p.MoveSpeed
	}

	grounded := isGrounded(w, pe)
	if grounded {
		p.ButtJump = false
		if in.Jump {
			v.Y = -p.JumpSpeed
		}
	} else if in.Down {
		p.ButtJump = true
		v.Y = math.Max(v.Y, p.JumpSpeed)
	}

	if in.Star && !s.prevStar {
		p.Invincible = StarDuration
	}
	if in.Freeze && !s.prevFreeze {
		freezeAround(w, pe)
	}
	s.prevStar = in.Star
	s.prevFreeze = in.Freeze
}

// freezeAround ices every walker whose center is within FreezeRadius of pe.
func freezeAround(w *ecs.World, pe ecs.Entity) {
	pt, ok := ecs.Get(w, pe, component.TransformComponent.Kind())
	if !ok {
		return
	}
	ecs.ForEach2(w, component.CreatureComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, c *component.Creature, t *component.Transform) {
		if !walker(c) || isDead(w, e) {
			return
		}
		if math.Hypot(t.X-pt.X, t.Y-pt.Y) > FreezeRadius {
			return
		}
		_ = ecs.Add(w, e, component.FrozenComponent.Kind(), &component.Frozen{Remaining: FreezeDuration})
		if leaf, ok := ecs.Get(w, e, component.LeafComponent.Kind()); ok {
			leaf.Flight.Flying = false
		}
	})
}

// bouncePlayer kicks the player up after a stomp.
func bouncePlayer(w *ecs.World, pe ecs.Entity, p *component.Player) {
	if v, ok := ecs.Get(w, pe, component.VelocityComponent.Kind()); ok {
		v.Y = -p.JumpSpeed * bounceFactor
	}
}

// stomping reports whether the player box lands on top of target this tick.
func stomping(w *ecs.World, pe, target ecs.Entity) bool {
	pb, ok := entity.Bounds(w, pe)
	if !ok {
		return false
	}
	tb, ok := entity.Bounds(w, target)
	if !ok {
		return false
	}
	v, ok := ecs.Get(w, pe, component.VelocityComponent.Kind())
	if !ok || v.Y <= 0 {
		return false
	}
	return pb.Bottom() <= tb.Top()+tb.Height/2
}
