package entity

import (
	"fmt"
	"strings"

	"github.com/milk9111/bramble/creature"
	"github.com/milk9111/bramble/ecs"
	"github.com/milk9111/bramble/ecs/component"
	"github.com/milk9111/bramble/levels"
)

// creatureProps are level prop keys that configure the creature component
// rather than the type's own component.
var creatureProps = map[string]bool{
	"kind":           true,
	"variant":        true,
	"direction":      true,
	"sprite":         true,
	"turn_at_ledges": true,
}

// propOverrides routes level props to component fields. Root traps read
// "direction" themselves.
func propOverrides(kind creature.Kind, props map[string]any) map[string]map[string]any {
	if len(props) == 0 {
		return nil
	}
	own := kind.String()
	if kind == creature.KindExperiencedLeaf {
		own = "leaf"
	}
	out := map[string]map[string]any{}
	for k, v := range props {
		target := own
		if kind != creature.KindRootTrap && creatureProps[k] {
			target = "creature"
		}
		if k == "kind" {
			continue
		}
		if out[target] == nil {
			out[target] = map[string]any{}
		}
		out[target][k] = v
	}
	return out
}

// LoadLevelToWorld creates the level's bounds, one entity per tile layer,
// the spawn queue and every placed entity.
func LoadLevelToWorld(world *ecs.World, lvl *levels.Level) error {
	if world == nil || lvl == nil {
		return fmt.Errorf("load level: nil world or level")
	}

	width, height := lvl.PixelSize()
	bounds := ecs.CreateEntity(world)
	if err := ecs.Add(world, bounds, component.LevelBoundsComponent.Kind(), &component.LevelBounds{
		Width:  width,
		Height: height,
	}); err != nil {
		return err
	}

	layers, err := lvl.TileLayers()
	if err != nil {
		return err
	}
	for i, layer := range layers {
		e := ecs.CreateEntity(world)
		if err := ecs.Add(world, e, component.TileLayerComponent.Kind(), &component.TileLayer{Layer: layer, Order: i}); err != nil {
			return err
		}
	}

	if _, err := EnsureSpawnQueue(world); err != nil {
		return err
	}

	for i, ent := range lvl.Entities {
		if err := placeLevelEntity(world, ent); err != nil {
			return fmt.Errorf("level %q entity %d (%s): %w", lvl.Name, i, ent.Type, err)
		}
	}

	return nil
}

func placeLevelEntity(world *ecs.World, ent levels.Entity) error {
	typ := strings.ToLower(strings.TrimSpace(ent.Type))
	switch typ {
	case "player":
		_, err := NewPlayerAt(world, ent.X, ent.Y)
		return err
	case "creature":
		name, _ := ent.Props["kind"].(string)
		kind, err := creature.ParseKind(name)
		if err != nil {
			return err
		}
		_, err = NewCreatureAt(world, kind, ent.X, ent.Y, propOverrides(kind, ent.Props))
		return err
	default:
		kind, err := creature.ParseKind(typ)
		if err != nil {
			return err
		}
		_, err = NewCreatureAt(world, kind, ent.X, ent.Y, propOverrides(kind, ent.Props))
		return err
	}
}

// EnsureSpawnQueue returns the world's spawn queue entity, creating it once.
func EnsureSpawnQueue(world *ecs.World) (ecs.Entity, error) {
	if e, ok := ecs.First(world, component.SpawnQueueComponent.Kind()); ok {
		return e, nil
	}
	e := ecs.CreateEntity(world)
	if err := ecs.Add(world, e, component.SpawnQueueComponent.Kind(), &component.SpawnQueue{}); err != nil {
		return 0, err
	}
	return e, nil
}
