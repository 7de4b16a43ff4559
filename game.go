package main

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/bramble/common"
	"github.com/milk9111/bramble/ecs"
	"github.com/milk9111/bramble/ecs/component"
	"github.com/milk9111/bramble/ecs/entity"
	"github.com/milk9111/bramble/ecs/system"
	"github.com/milk9111/bramble/levels"
	"github.com/milk9111/bramble/prefabs"
)

const (
	baseWidth  = common.BaseWidth
	baseHeight = common.BaseHeight
)

type Game struct {
	frames int
	debug  bool

	world     *ecs.World
	scheduler *ecs.Scheduler
	physics   *system.PhysicsSystem
	ai        *system.AISystem
	watcher   *prefabs.Watcher
}

func NewGame(levelName string, debug, editor bool) (*Game, error) {
	lvl, err := levels.LoadLevelFromFS(levelName)
	if err != nil {
		return nil, fmt.Errorf("load level %s: %w", levelName, err)
	}

	world := ecs.NewWorld()
	if err := entity.LoadLevelToWorld(world, lvl); err != nil {
		return nil, fmt.Errorf("load level %s: %w", levelName, err)
	}

	physics := system.NewPhysicsSystem()
	ai := system.NewAISystem()
	scheduler := ecs.NewScheduler(
		system.NewPlayerControlSystem(),
		ai,
		system.NewWalkSystem(),
		system.NewLeafSystem(),
		physics,
		system.NewFrozenSystem(),
		system.NewContactSystem(),
		system.NewOutOfBoundsSystem(),
		system.NewBushIgelSystem(),
		system.NewRootTrapSystem(editor),
		system.NewRootSystem(),
		system.NewHazardSystem(),
		system.NewTTLSystem(),
		system.NewSpawnDispatchSystem(),
		system.NewCleanupSystem(),
	)

	return &Game{
		debug:     debug,
		world:     world,
		scheduler: scheduler,
		physics:   physics,
		ai:        ai,
	}, nil
}

// Watch starts hot reloading prefab specs and AI scripts from dirs.
func (g *Game) Watch(dirs ...string) error {
	w, err := prefabs.NewWatcher(dirs...)
	if err != nil {
		return fmt.Errorf("watch prefabs: %w", err)
	}
	g.watcher = w
	return nil
}

func (g *Game) Close() {
	if g.watcher == nil {
		return
	}
	if err := g.watcher.Close(); err != nil {
		log.Printf("prefabs: close watcher: %v", err)
	}
	g.watcher = nil
}

func (g *Game) Update() error {
	g.frames++

	g.drainWatcher()
	g.readInput()
	g.scheduler.Update(g.world, common.FixedDelta)

	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.debug = !g.debug
	}
	return nil
}

func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	for _, name := range g.watcher.Pending() {
		if prefabs.IsScript(name) {
			script := prefabs.ScriptName(name)
			g.ai.Reload(script)
			log.Printf("prefabs: reloaded script %s", script)
			continue
		}
		// Specs are read per spawn, so new entities pick up the change.
		log.Printf("prefabs: %s changed", name)
	}
	for {
		select {
		case err, ok := <-g.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("prefabs: watcher: %v", err)
		default:
			return
		}
	}
}

func (g *Game) readInput() {
	e, ok := ecs.First(g.world, component.InputComponent.Kind())
	if !ok {
		return
	}
	in, _ := ecs.Get(g.world, e, component.InputComponent.Kind())
	in.Left = ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA)
	in.Right = ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD)
	in.Jump = ebiten.IsKeyPressed(ebiten.KeySpace) || ebiten.IsKeyPressed(ebiten.KeyArrowUp)
	in.Down = ebiten.IsKeyPressed(ebiten.KeyArrowDown)
	in.Star = ebiten.IsKeyPressed(ebiten.KeyS)
	in.Freeze = ebiten.IsKeyPressed(ebiten.KeyF)
}

func (g *Game) Draw(screen *ebiten.Image) {
	cam := system.FollowPlayer(g.world, baseWidth, baseHeight)
	system.DrawWorld(g.world, screen, cam)

	if g.debug {
		system.DrawPlacementDebug(g.world, screen, cam)
		system.DrawPhysicsDebug(g.physics, screen, cam)
	}

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Frames: %d    FPS: %.2f", g.frames, ebiten.ActualFPS()), 10, baseHeight-20)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
