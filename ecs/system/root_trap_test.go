package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bramble/creature"
	"github.com/milk9111/bramble/ecs"
	"github.com/milk9111/bramble/ecs/component"
	"github.com/milk9111/bramble/ecs/entity"
	"github.com/milk9111/bramble/levels"
	"github.com/milk9111/bramble/placement"
)

func loadPit(t *testing.T) *ecs.World {
	t.Helper()
	lvl, err := levels.LoadLevelFromFS("pit")
	if err != nil {
		t.Fatalf("load level: %v", err)
	}
	w := ecs.NewWorld()
	if err := entity.LoadLevelToWorld(w, lvl); err != nil {
		t.Fatalf("load to world: %v", err)
	}
	return w
}

func TestRootTrapPeriodic(t *testing.T) {
	w := loadPit(t)
	sys := NewRootTrapSystem(false)
	q := spawnQueue(w)

	// The zero initial delay is raised to MinInitialDelay outside the editor.
	w.SetDeltaTime(0.05)
	sys.Update(w)
	if len(q.Requests) != 0 {
		t.Fatalf("trap fired on the load frame")
	}
	sys.Update(w)
	if len(q.Requests) != 1 {
		t.Fatalf("expected one root after the initial delay, got %d", len(q.Requests))
	}

	req := q.Requests[0]
	want := cp.Vector{X: 80, Y: 96}
	if req.Kind != creature.KindRoot || req.Facing != placement.Up || req.Pos != want {
		t.Fatalf("unexpected request %+v", req)
	}

	// spawn_delay is 1s in the level file.
	w.SetDeltaTime(0.25)
	for i := 0; i < 3; i++ {
		sys.Update(w)
	}
	if len(q.Requests) != 1 {
		t.Fatalf("trap fired before its spawn delay, got %d", len(q.Requests))
	}
	sys.Update(w)
	if len(q.Requests) != 2 {
		t.Fatalf("expected a second root after 1s, got %d", len(q.Requests))
	}

	te, _ := ecs.First(w, component.RootTrapComponent.Kind())
	dbg, ok := ecs.Get(w, te, component.PlacementDebugComponent.Kind())
	if !ok || !dbg.Plan.OK() {
		t.Fatalf("expected a successful plan recorded for the overlay, got %+v", dbg)
	}
}

func TestRootTrapEditorFiresImmediately(t *testing.T) {
	w := loadPit(t)
	w.SetDeltaTime(1.0 / 60)
	NewRootTrapSystem(true).Update(w)
	if n := len(spawnQueue(w).Requests); n != 1 {
		t.Fatalf("expected the editor trap to fire on its first tick, got %d", n)
	}
}

func TestRootTrapRefusesUnsupportedPlacement(t *testing.T) {
	w := newGroundWorld(t, 6, 6, 3)
	// Facing down with nothing above: no support at the anchor.
	if _, err := entity.NewRootTrapAt(w, 64, 64, map[string]map[string]any{
		"root_trap": {"direction": "down"},
	}); err != nil {
		t.Fatalf("build trap: %v", err)
	}
	sys := NewRootTrapSystem(true)
	w.SetDeltaTime(0.1)
	sys.Update(w)
	if n := len(spawnQueue(w).Requests); n != 0 {
		t.Fatalf("expected no root without support, got %d", n)
	}
	te, _ := ecs.First(w, component.RootTrapComponent.Kind())
	dbg, ok := ecs.Get(w, te, component.PlacementDebugComponent.Kind())
	if !ok || dbg.Plan.Supported {
		t.Fatalf("expected an unsupported plan, got %+v", dbg)
	}
}

func TestRootTrapOnStep(t *testing.T) {
	w := newGroundWorld(t, 6, 6, 3)
	if _, err := entity.NewRootTrapAt(w, 64, 32, map[string]map[string]any{
		"root_trap": {"on_step": true, "spawn_delay": 1.0},
	}); err != nil {
		t.Fatalf("build trap: %v", err)
	}
	player, err := entity.NewPlayerAt(w, 0, 0)
	if err != nil {
		t.Fatalf("build player: %v", err)
	}

	sys := NewRootTrapSystem(false)
	q := spawnQueue(w)
	w.SetDeltaTime(0.25)
	for i := 0; i < 4; i++ {
		sys.Update(w)
	}
	if len(q.Requests) != 0 {
		t.Fatalf("on-step trap fired without contact, got %d", len(q.Requests))
	}

	if err := entity.SetEntityTransform(w, player, 80, 48, 0); err != nil {
		t.Fatal(err)
	}
	sys.Update(w)
	if len(q.Requests) != 1 {
		t.Fatalf("expected a root on contact, got %d", len(q.Requests))
	}

	// Standing on it keeps the latch closed until the spawn delay runs out.
	sys.Update(w)
	sys.Update(w)
	if len(q.Requests) != 1 {
		t.Fatalf("latched trap fired again, got %d", len(q.Requests))
	}
	sys.Update(w)
	sys.Update(w)
	sys.Update(w)
	if len(q.Requests) != 2 {
		t.Fatalf("expected the trap to rearm after its delay, got %d", len(q.Requests))
	}
}
