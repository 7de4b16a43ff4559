package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bramble/creature"
	"github.com/milk9111/bramble/ecs"
	"github.com/milk9111/bramble/ecs/component"
	"github.com/milk9111/bramble/ecs/entity"
	"github.com/milk9111/bramble/placement"
	"github.com/milk9111/bramble/tilemap"
)

func TestExposedRect(t *testing.T) {
	tests := []struct {
		name   string
		facing placement.Facing
		dx, dy float64
	}{
		{"up", placement.Up, 0, -48},
		{"down", placement.Down, 0, 48},
		{"left", placement.Left, -48, 0},
		{"right", placement.Right, 48, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := &component.Root{
				Facing:    tt.facing,
				Footprint: placement.CandidateRect(cp.Vector{X: 200, Y: 200}, tt.facing),
				Exposed:   0.5,
			}
			want := root.Footprint.Moved(tt.dx, tt.dy)
			if got := exposedRect(root); got != want {
				t.Fatalf("expected %+v, got %+v", want, got)
			}
		})
	}
}

func TestRootLifecycle(t *testing.T) {
	w := ecs.NewWorld()
	e, err := entity.NewRoot(w, placement.SpawnRequest{
		Kind:   creature.KindRoot,
		Pos:    cp.Vector{X: 80, Y: 96},
		Facing: placement.Up,
	})
	if err != nil {
		t.Fatalf("spawn root: %v", err)
	}
	root, _ := ecs.Get(w, e, component.RootComponent.Kind())
	root.GrowTime, root.HoldTime, root.RetractTime = 0.25, 1.0, 0.375

	sched := ecs.NewScheduler(NewRootSystem(), NewTTLSystem())
	step := func(n int) {
		for i := 0; i < n; i++ {
			sched.Update(w, 0.125)
		}
	}

	step(1)
	if root.Phase != component.RootGrowing || root.Exposed != 0.5 {
		t.Fatalf("expected half grown, got %+v", root)
	}
	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	if tr.X != 80 || tr.Y != 96 {
		t.Fatalf("expected the root to follow its exposed part, got %+v", tr)
	}
	h, _ := ecs.Get(w, e, component.HazardComponent.Kind())
	hazard := tilemap.Rect{X: tr.X + h.OffsetX, Y: tr.Y + h.OffsetY, Width: h.Width, Height: h.Height}
	if want := (tilemap.Rect{X: 64, Y: 48, Width: 32, Height: 96}); hazard != want {
		t.Fatalf("expected hazard %+v, got %+v", want, hazard)
	}

	step(1)
	if root.Phase != component.RootHolding || root.Exposed != 1 {
		t.Fatalf("expected fully grown, got %+v", root)
	}

	step(8)
	if root.Phase != component.RootRetracting {
		t.Fatalf("expected retracting after the hold, got %+v", root)
	}

	step(2)
	if !ecs.IsAlive(w, e) || root.Exposed <= 0 || root.Exposed >= 1 {
		t.Fatalf("expected a partly retracted root, got %+v", root)
	}

	step(1)
	if ecs.IsAlive(w, e) {
		t.Fatalf("expected the root destroyed once retracted")
	}
}

func TestRootZeroTimesFinishInOneTick(t *testing.T) {
	root := &component.Root{Elapsed: 0.01}
	advanceRoot(root)
	if root.Phase != component.RootDone || root.Exposed != 0 {
		t.Fatalf("expected done, got %+v", root)
	}
}

func TestTTLSystem(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	_ = ecs.Add(w, e, component.TTLComponent.Kind(), &component.TTL{Seconds: 0.3})
	sched := ecs.NewScheduler(NewTTLSystem())

	sched.Update(w, 0.125)
	sched.Update(w, 0.125)
	if !ecs.IsAlive(w, e) {
		t.Fatalf("destroyed too early")
	}
	sched.Update(w, 0.125)
	if ecs.IsAlive(w, e) {
		t.Fatalf("expected destroyed after 0.375s")
	}
}
