package entity

import (
	"fmt"

	"github.com/milk9111/bramble/creature"
	"github.com/milk9111/bramble/ecs"
	"github.com/milk9111/bramble/ecs/component"
	"github.com/milk9111/bramble/placement"
	"github.com/milk9111/bramble/tilemap"
)

// PrefabFor names the prefab spec used for creatures of kind k.
func PrefabFor(k creature.Kind) string {
	return k.String() + ".yaml"
}

// Size returns the extent of e's box: its collider, or its trap area.
func Size(w *ecs.World, e ecs.Entity) (float64, float64, bool) {
	if b, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok {
		return b.Width, b.Height, true
	}
	if t, ok := ecs.Get(w, e, component.RootTrapComponent.Kind()); ok {
		return t.Width, t.Height, true
	}
	if r, ok := ecs.Get(w, e, component.RootComponent.Kind()); ok {
		return r.Footprint.Width, r.Footprint.Height, true
	}
	return 0, 0, false
}

// Bounds is e's world-space box centered on its transform.
func Bounds(w *ecs.World, e ecs.Entity) (tilemap.Rect, bool) {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return tilemap.Rect{}, false
	}
	width, height, ok := Size(w, e)
	if !ok {
		return tilemap.Rect{}, false
	}
	return tilemap.Rect{X: t.X - width/2, Y: t.Y - height/2, Width: width, Height: height}, true
}

// placeTopLeft moves a freshly built entity so its box starts at (x,y).
func placeTopLeft(w *ecs.World, e ecs.Entity, x, y float64) error {
	width, height, _ := Size(w, e)
	return SetEntityTransform(w, e, x+width/2, y+height/2, 0)
}

func NewPlayerAt(w *ecs.World, x, y float64) (ecs.Entity, error) {
	e, err := BuildEntity(w, "player.yaml")
	if err != nil {
		return 0, err
	}
	if err := placeTopLeft(w, e, x, y); err != nil {
		return 0, err
	}
	return e, nil
}

// NewCreatureAt builds a creature of kind from its prefab with its box's
// top-left corner at (x,y).
func NewCreatureAt(w *ecs.World, kind creature.Kind, x, y float64, overrides map[string]map[string]any) (ecs.Entity, error) {
	e, err := BuildEntityWith(w, PrefabFor(kind), overrides)
	if err != nil {
		return 0, err
	}
	if err := placeTopLeft(w, e, x, y); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, err
	}
	return e, nil
}

func NewRootTrapAt(w *ecs.World, x, y float64, overrides map[string]map[string]any) (ecs.Entity, error) {
	return NewCreatureAt(w, creature.KindRootTrap, x, y, overrides)
}

// NewRoot builds a root hazard whose fully grown footprint is the nominal
// candidate rectangle at the request's anchor.
func NewRoot(w *ecs.World, req placement.SpawnRequest) (ecs.Entity, error) {
	e, err := BuildEntity(w, PrefabFor(creature.KindRoot))
	if err != nil {
		return 0, err
	}
	root, ok := ecs.Get(w, e, component.RootComponent.Kind())
	if !ok {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("root prefab lacks a root component")
	}
	root.Facing = req.Facing
	root.Footprint = placement.CandidateRect(req.Pos, req.Facing)
	mid := root.Footprint.Middle()
	if err := SetEntityTransform(w, e, mid.X, mid.Y, 0); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, err
	}
	if req.Sprite != "" {
		if c, ok := ecs.Get(w, e, component.CreatureComponent.Kind()); ok {
			c.Sprite = req.Sprite
		}
	}
	return e, nil
}

// Spawn turns one queued request into an entity.
func Spawn(w *ecs.World, req placement.SpawnRequest) (ecs.Entity, error) {
	if req.Kind == creature.KindRoot {
		return NewRoot(w, req)
	}

	overrides := map[string]map[string]any{
		"creature": {"variant": creature.VariantName(req.Kind, req.Variant)},
	}
	if !req.Facing.Vertical() {
		overrides["creature"]["direction"] = req.Facing.String()
	}
	if req.Sprite != "" {
		overrides["creature"]["sprite"] = req.Sprite
	}
	if req.Kind == creature.KindExperiencedLeaf && req.Invincibility > 0 {
		overrides["leaf"] = map[string]any{"invincibility": req.Invincibility}
	}

	e, err := BuildEntityWith(w, PrefabFor(req.Kind), overrides)
	if err != nil {
		return 0, err
	}
	if err := SetEntityTransform(w, e, req.Pos.X, req.Pos.Y, 0); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, err
	}
	return e, nil
}
