package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/bramble/creature"
	"github.com/milk9111/bramble/ecs"
	"github.com/milk9111/bramble/ecs/component"
	"github.com/milk9111/bramble/ecs/entity"
	"github.com/milk9111/bramble/placement"
)

// BushIgelSystem runs the rolling igel's spawner. A corrupted igel pushes
// roots up through the floor under it; a normal one drops vicious ivy
// behind itself.
type BushIgelSystem struct {
	RootSprite string
}

func NewBushIgelSystem() *BushIgelSystem {
	return &BushIgelSystem{}
}

func (s *BushIgelSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	dt := w.DeltaTime()
	var layers []placement.TileLayer

	ecs.ForEach2(w, component.BushIgelComponent.Kind(), component.CreatureComponent.Kind(), func(e ecs.Entity, igel *component.BushIgel, c *component.Creature) {
		if isDead(w, e) {
			return
		}
		if !igel.Spawner.Tick(dt, igel.Rolling, isFrozen(w, e), c.Stats.SpawnPeriod) {
			return
		}
		box, ok := entity.Bounds(w, e)
		if !ok {
			return
		}

		if creature.IsCorrupted(c.Kind, c.Variant) {
			// Roots need ground under the igel; an airborne roll just
			// restarts the spawn timer.
			if !isGrounded(w, e) {
				return
			}
			if layers == nil {
				layers = terrainLayers(w)
			}
			plan := placement.Evaluate(placement.Request{
				Emitter: box,
				Facing:  placement.Up,
				Slopes:  placement.SlopesVertical,
			}, layers)
			_ = ecs.Add(w, e, component.PlacementDebugComponent.Kind(), &component.PlacementDebug{Plan: plan})
			if !plan.OK() {
				return
			}
			req := placement.RootRequest(placement.Spawn{Pos: plan.Anchor, Facing: placement.Up}, s.RootSprite)
			req.Source = uint64(e)
			spawnQueue(w).Push(req)
			return
		}

		mid := box.Middle()
		behind := c.Facing.Opposite()
		dx := igel.IvyOffsetX
		if behind == placement.Left {
			dx = -dx
		}
		spawnQueue(w).Push(placement.SpawnRequest{
			Kind:   creature.KindViciousIvy,
			Pos:    cp.Vector{X: mid.X + dx, Y: mid.Y - igel.IvyOffsetY},
			Facing: behind,
			Source: uint64(e),
		})
	})
}
