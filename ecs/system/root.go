package system

import (
	"github.com/milk9111/bramble/common"
	"github.com/milk9111/bramble/ecs"
	"github.com/milk9111/bramble/ecs/component"
	"github.com/milk9111/bramble/placement"
	"github.com/milk9111/bramble/tilemap"
)

// RootSystem grows, holds and retracts spawned roots, keeping their
// transform and hazard box on the exposed part.
type RootSystem struct{}

func NewRootSystem() *RootSystem {
	return &RootSystem{}
}

func (s *RootSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	dt := w.DeltaTime()

	ecs.ForEach2(w, component.RootComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, root *component.Root, t *component.Transform) {
		if root.Phase == component.RootDone {
			return
		}
		root.Elapsed += dt
		advanceRoot(root)

		box := exposedRect(root)
		mid := box.Middle()
		t.X, t.Y = mid.X, mid.Y
		if h, ok := ecs.Get(w, e, component.HazardComponent.Kind()); ok {
			h.Width, h.Height = box.Width, box.Height
			h.OffsetX, h.OffsetY = -box.Width/2, -box.Height/2
		}

		if root.Phase == component.RootDone {
			_ = ecs.Add(w, e, component.TTLComponent.Kind(), &component.TTL{Seconds: 0})
		}
	})
}

func phaseFraction(elapsed, total float64) float64 {
	if total <= 0 {
		return 1
	}
	return common.Clamp(elapsed/total, 0, 1)
}

// advanceRoot moves root through as many phases as Elapsed covers.
func advanceRoot(root *component.Root) {
	for {
		switch root.Phase {
		case component.RootGrowing:
			root.Exposed = phaseFraction(root.Elapsed, root.GrowTime)
			if root.Elapsed < root.GrowTime {
				return
			}
			root.Elapsed -= max(root.GrowTime, 0)
			root.Phase = component.RootHolding
		case component.RootHolding:
			root.Exposed = 1
			if root.Elapsed < root.HoldTime {
				return
			}
			root.Elapsed -= max(root.HoldTime, 0)
			root.Phase = component.RootRetracting
		case component.RootRetracting:
			root.Exposed = 1 - phaseFraction(root.Elapsed, root.RetractTime)
			if root.Elapsed < root.RetractTime {
				return
			}
			root.Exposed = 0
			root.Phase = component.RootDone
			return
		default:
			return
		}
	}
}

// exposedRect is the footprint pushed out of the terrain along the root's
// facing by the grown fraction.
func exposedRect(root *component.Root) tilemap.Rect {
	w, h := placement.FootprintSize(root.Facing)
	var dx, dy float64
	switch root.Facing {
	case placement.Up:
		dy = -h * root.Exposed
	case placement.Down:
		dy = h * root.Exposed
	case placement.Left:
		dx = -w * root.Exposed
	case placement.Right:
		dx = w * root.Exposed
	}
	return root.Footprint.Moved(dx, dy)
}
