package system

import (
	"github.com/milk9111/bramble/creature"
	"github.com/milk9111/bramble/ecs"
	"github.com/milk9111/bramble/ecs/component"
	"github.com/milk9111/bramble/ecs/entity"
	"github.com/milk9111/bramble/placement"
	"github.com/milk9111/bramble/tilemap"
)

// ContactSystem resolves creature-on-creature and player-on-creature
// touches from box overlap. Creature bodies never collide physically, so
// this is the only place such contacts happen.
type ContactSystem struct{}

func NewContactSystem() *ContactSystem {
	return &ContactSystem{}
}

type contactBody struct {
	e   ecs.Entity
	c   *component.Creature
	box tilemap.Rect
}

func (s *ContactSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	var bodies []contactBody
	ecs.ForEach(w, component.CreatureComponent.Kind(), func(e ecs.Entity, c *component.Creature) {
		if !walker(c) || isDead(w, e) {
			return
		}
		if box, ok := entity.Bounds(w, e); ok {
			bodies = append(bodies, contactBody{e: e, c: c, box: box})
		}
	})

	for _, a := range bodies {
		leaf, ok := ecs.Get(w, a.e, component.LeafComponent.Kind())
		if !ok || isDead(w, a.e) {
			continue
		}
		for _, b := range bodies {
			if b.e == a.e || isDead(w, b.e) || !a.box.Intersects(b.box) {
				continue
			}
			resolveLeafContact(w, a, leaf, b)
			if isDead(w, a.e) {
				break
			}
		}
	}

	pe, p, ok := findPlayer(w)
	if !ok {
		return
	}
	pbox, ok := entity.Bounds(w, pe)
	if !ok {
		return
	}
	for _, b := range bodies {
		if isDead(w, b.e) || !pbox.Intersects(b.box) {
			continue
		}
		resolvePlayerContact(w, pe, p, b)
	}
}

func resolveLeafContact(w *ecs.World, leaf contactBody, l *component.Leaf, other contactBody) {
	outcome, next := creature.ResolveContact(leaf.c.Variant, l.Flight, other.c.Kind, other.c.Variant)
	switch outcome {
	case creature.ContactBothDie:
		kill(w, leaf.e, "corruption")
		kill(w, other.e, "corruption")
	case creature.ContactCorrupt:
		other.c.SetVariant(next)
		w.Events().Push(ecs.Event{Type: ecs.EventCorrupted, Entity: other.e, Data: next})
	case creature.ContactReplace:
		replaceLeaf(w, other, next, 0)
	}
}

// replaceLeaf kills old and queues a leaf of variant v in its place.
func replaceLeaf(w *ecs.World, old contactBody, v creature.Variant, invincibility float64) {
	kill(w, old.e, "replaced")
	spawnQueue(w).Push(placement.SpawnRequest{
		Kind:          creature.KindExperiencedLeaf,
		Variant:       v,
		Pos:           old.box.Middle(),
		Facing:        old.c.Facing,
		Invincibility: invincibility,
		Source:        uint64(old.e),
	})
	if v != old.c.Variant {
		w.Events().Push(ecs.Event{Type: ecs.EventCorrupted, Entity: old.e, Data: v})
	}
}

func resolvePlayerContact(w *ecs.World, pe ecs.Entity, p *component.Player, b contactBody) {
	leaf, isLeaf := ecs.Get(w, b.e, component.LeafComponent.Kind())
	frozen := isFrozen(w, b.e)

	if stomping(w, pe, b.e) {
		if !isLeaf {
			kill(w, b.e, "squished")
			bouncePlayer(w, pe, p)
			return
		}
		switch creature.ResolveSquish(b.c.Variant, leaf.Flight, frozen, p.Invincible > 0, p.ButtJump) {
		case creature.SquishDie:
			kill(w, b.e, "squished")
			bouncePlayer(w, pe, p)
		case creature.SquishBounce:
			bouncePlayer(w, pe, p)
		case creature.SquishFrozen:
			kill(w, b.e, "shattered")
			bouncePlayer(w, pe, p)
		case creature.SquishDegrade:
			replaceLeaf(w, b, creature.LeafCorrupted, creature.DegradeInvincibility)
			bouncePlayer(w, pe, p)
		case creature.SquishHurtPlayer:
			hurtPlayer(w, pe, p, 1, b.e)
		}
		return
	}

	if frozen {
		return
	}
	if p.Invincible > 0 {
		killFall(w, b, leaf)
		return
	}
	if isLeaf && leaf.Flight.Invincible() {
		return
	}
	hurtPlayer(w, pe, p, 1, b.e)
}

// killFall knocks a creature out of play, as a star-powered player does on
// touch.
func killFall(w *ecs.World, b contactBody, leaf *component.Leaf) {
	if leaf == nil {
		kill(w, b.e, "kill_fall")
		return
	}
	switch creature.ResolveKillFall(b.c.Variant, leaf.Flight) {
	case creature.KillFallIgnore:
	case creature.KillFallDegrade:
		replaceLeaf(w, b, creature.LeafCorrupted, creature.DegradeInvincibility)
	default:
		kill(w, b.e, "kill_fall")
	}
}

// HazardSystem hurts the player on overlap with any hazard box.
type HazardSystem struct{}

func NewHazardSystem() *HazardSystem {
	return &HazardSystem{}
}

func (s *HazardSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	pe, p, ok := findPlayer(w)
	if !ok {
		return
	}
	pbox, ok := entity.Bounds(w, pe)
	if !ok {
		return
	}
	ecs.ForEach2(w, component.HazardComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, h *component.Hazard, t *component.Transform) {
		if h.Width <= 0 || h.Height <= 0 {
			return
		}
		if root, ok := ecs.Get(w, e, component.RootComponent.Kind()); ok && root.Exposed <= 0 {
			return
		}
		box := tilemap.Rect{X: t.X + h.OffsetX, Y: t.Y + h.OffsetY, Width: h.Width, Height: h.Height}
		if box.Intersects(pbox) {
			hurtPlayer(w, pe, p, h.Damage, e)
		}
	})
}
