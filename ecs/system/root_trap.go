package system

import (
	"github.com/milk9111/bramble/ecs"
	"github.com/milk9111/bramble/ecs/component"
	"github.com/milk9111/bramble/ecs/entity"
	"github.com/milk9111/bramble/placement"
)

// placementDebugTTL is how long an evaluated plan stays on the overlay.
const placementDebugTTL = 1.0

// RootTrapSystem fires root traps, either periodically or when the player
// steps on them, and queues a root wherever the terrain can hold one.
type RootTrapSystem struct {
	// Editor is true while the level is open in the editor. Traps then keep
	// a zero initial delay.
	Editor bool
	// Sprite is handed to every root the traps spawn.
	Sprite string
}

func NewRootTrapSystem(editor bool) *RootTrapSystem {
	return &RootTrapSystem{Editor: editor}
}

func (s *RootTrapSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	dt := w.DeltaTime()
	layers := terrainLayers(w)

	playerBox, hasPlayer := playerBounds(w)

	ecs.ForEach(w, component.RootTrapComponent.Kind(), func(e ecs.Entity, trap *component.RootTrap) {
		if !trap.Active {
			trap.Latch.Activate(s.Editor)
			trap.Active = true
		}

		fire := trap.Latch.Tick(dt)
		if !fire && hasPlayer {
			if box, ok := entity.Bounds(w, e); ok && box.Intersects(playerBox) {
				fire = trap.Latch.Step()
			}
		}
		if dbg, ok := ecs.Get(w, e, component.PlacementDebugComponent.Kind()); ok {
			dbg.Age += dt
		}
		if !fire {
			return
		}
		s.emit(w, e, trap, layers)
	})
}

func (s *RootTrapSystem) emit(w *ecs.World, e ecs.Entity, trap *component.RootTrap, layers []placement.TileLayer) {
	box, ok := entity.Bounds(w, e)
	if !ok {
		return
	}
	plan := placement.Evaluate(placement.Request{
		Emitter: box,
		Facing:  trap.Facing,
		Slopes:  placement.SlopesAll,
	}, layers)
	_ = ecs.Add(w, e, component.PlacementDebugComponent.Kind(), &component.PlacementDebug{Plan: plan})
	if !plan.OK() {
		return
	}

	req := placement.RootRequest(placement.Spawn{Pos: plan.Anchor, Facing: trap.Facing}, s.Sprite)
	req.Source = uint64(e)
	spawnQueue(w).Push(req)
}
