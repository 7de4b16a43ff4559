package system

import (
	"sort"

	"github.com/milk9111/bramble/creature"
	"github.com/milk9111/bramble/ecs"
	"github.com/milk9111/bramble/ecs/component"
	"github.com/milk9111/bramble/ecs/entity"
	"github.com/milk9111/bramble/placement"
	"github.com/milk9111/bramble/tilemap"
)

// terrainLayers returns the level's solid layers in query order.
func terrainLayers(w *ecs.World) []placement.TileLayer {
	type ordered struct {
		layer *tilemap.Layer
		order int
	}
	var found []ordered
	ecs.ForEach(w, component.TileLayerComponent.Kind(), func(_ ecs.Entity, tl *component.TileLayer) {
		if tl.Layer == nil || !tl.Layer.Solid {
			return
		}
		found = append(found, ordered{layer: tl.Layer, order: tl.Order})
	})
	sort.SliceStable(found, func(i, j int) bool { return found[i].order < found[j].order })

	layers := make([]*tilemap.Layer, 0, len(found))
	for _, f := range found {
		layers = append(layers, f.layer)
	}
	return placement.FromLayers(layers...)
}

// spawnQueue returns the world's spawn queue, creating it on first use.
func spawnQueue(w *ecs.World) *component.SpawnQueue {
	if e, ok := ecs.First(w, component.SpawnQueueComponent.Kind()); ok {
		if q, ok := ecs.Get(w, e, component.SpawnQueueComponent.Kind()); ok {
			return q
		}
	}
	q := &component.SpawnQueue{}
	_ = ecs.Add(w, ecs.CreateEntity(w), component.SpawnQueueComponent.Kind(), q)
	return q
}

func findPlayer(w *ecs.World) (ecs.Entity, *component.Player, bool) {
	e, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return 0, nil, false
	}
	p, ok := ecs.Get(w, e, component.PlayerComponent.Kind())
	if !ok {
		return 0, nil, false
	}
	return e, p, true
}

func isFrozen(w *ecs.World, e ecs.Entity) bool {
	return ecs.Has(w, e, component.FrozenComponent.Kind())
}

func isDead(w *ecs.World, e ecs.Entity) bool {
	return ecs.Has(w, e, component.DeadComponent.Kind())
}

func isGrounded(w *ecs.World, e ecs.Entity) bool {
	c, ok := ecs.Get(w, e, component.ContactComponent.Kind())
	return ok && c.Grounded
}

// kill marks e dead once and reports the death.
func kill(w *ecs.World, e ecs.Entity, reason string) {
	if isDead(w, e) {
		return
	}
	_ = ecs.Add(w, e, component.DeadComponent.Kind(), &component.Dead{Reason: reason})
	w.Events().Push(ecs.Event{Type: ecs.EventKilled, Entity: e, Data: reason})
}

// walker reports whether c is a creature that moves and takes part in
// contacts, as opposed to traps and their roots.
func walker(c *component.Creature) bool {
	return c.Kind != creature.KindRootTrap && c.Kind != creature.KindRoot
}

// hurtPlayer applies damage unless the player is protected.
func hurtPlayer(w *ecs.World, pe ecs.Entity, p *component.Player, damage int, source ecs.Entity) bool {
	if p.Invincible > 0 || p.HurtCooldown > 0 {
		return false
	}
	p.Health -= damage
	p.HurtCooldown = PlayerHurtCooldown
	w.Events().Push(ecs.Event{Type: ecs.EventPlayerHurt, Entity: pe, Data: source})
	return true
}

func playerBounds(w *ecs.World) (box tilemap.Rect, ok bool) {
	pe, _, found := findPlayer(w)
	if !found {
		return box, false
	}
	return entity.Bounds(w, pe)
}
