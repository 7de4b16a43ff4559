package system

import (
	"github.com/milk9111/bramble/ecs"
	"github.com/milk9111/bramble/ecs/component"
	"github.com/milk9111/bramble/ecs/entity"
)

// TTLSystem counts TTL components down in seconds and destroys entities
// when their time runs out.
type TTLSystem struct{}

func NewTTLSystem() *TTLSystem {
	return &TTLSystem{}
}

func (s *TTLSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.DeltaTime()

	ecs.ForEach(w, component.TTLComponent.Kind(), func(e ecs.Entity, ttl *component.TTL) {
		if ttl == nil {
			return
		}
		if ttl.Seconds > 0 {
			ttl.Seconds -= dt
			if ttl.Seconds > 0 {
				return
			}
		}
		ecs.DestroyEntity(w, e)
	})
}

// CleanupSystem destroys everything marked dead this tick. It runs last so
// every other system sees the mark first.
type CleanupSystem struct{}

func NewCleanupSystem() *CleanupSystem {
	return &CleanupSystem{}
}

func (s *CleanupSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	for _, e := range w.Query(component.DeadComponent.Kind()) {
		ecs.DestroyEntity(w, e)
	}
}

// FrozenSystem thaws creatures once their ice runs out.
type FrozenSystem struct{}

func NewFrozenSystem() *FrozenSystem {
	return &FrozenSystem{}
}

func (s *FrozenSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.DeltaTime()

	ecs.ForEach(w, component.FrozenComponent.Kind(), func(e ecs.Entity, f *component.Frozen) {
		f.Remaining -= dt
		if f.Remaining > 0 {
			return
		}
		ecs.Remove(w, e, component.FrozenComponent.Kind())
		if leaf, ok := ecs.Get(w, e, component.LeafComponent.Kind()); ok {
			leaf.Flight.Unfreeze()
		}
	})
}

// OutOfBoundsSystem kills creatures that fall below the level.
type OutOfBoundsSystem struct{}

func NewOutOfBoundsSystem() *OutOfBoundsSystem {
	return &OutOfBoundsSystem{}
}

func (s *OutOfBoundsSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	be, ok := ecs.First(w, component.LevelBoundsComponent.Kind())
	if !ok {
		return
	}
	lb, _ := ecs.Get(w, be, component.LevelBoundsComponent.Kind())

	ecs.ForEach2(w, component.CreatureComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, c *component.Creature, _ *component.Transform) {
		if !walker(c) {
			return
		}
		if box, ok := entity.Bounds(w, e); ok && box.Top() > lb.Height {
			kill(w, e, "fell")
		}
	})
}
