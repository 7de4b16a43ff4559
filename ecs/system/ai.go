package system

import (
	"github.com/milk9111/bramble/ecs"
	"github.com/milk9111/bramble/ecs/component"
)

// AISystem runs each scripted entity's tengo state machine once per tick.
type AISystem struct {
	scriptCache map[ecs.Entity]*aiScriptRuntime
}

func NewAISystem() *AISystem {
	return &AISystem{scriptCache: map[ecs.Entity]*aiScriptRuntime{}}
}

// Reload drops every compiled runtime built from script so the next tick
// recompiles it. An empty script drops them all.
func (s *AISystem) Reload(script string) {
	if s == nil {
		return
	}
	for e, rt := range s.scriptCache {
		if script == "" || rt == nil || rt.scriptPath == script {
			delete(s.scriptCache, e)
		}
	}
}

func (s *AISystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	if s.scriptCache == nil {
		s.scriptCache = map[ecs.Entity]*aiScriptRuntime{}
	}
	for e := range s.scriptCache {
		if !ecs.IsAlive(w, e) {
			delete(s.scriptCache, e)
		}
	}

	var playerX, playerY float64
	if pe, _, ok := findPlayer(w); ok {
		if t, ok := ecs.Get(w, pe, component.TransformComponent.Kind()); ok {
			playerX, playerY = t.X, t.Y
		}
	}

	ecs.ForEach3(w, component.AIConfigComponent.Kind(), component.AIStateComponent.Kind(), component.AIContextComponent.Kind(), func(e ecs.Entity, cfg *component.AIConfig, state *component.AIState, aiCtx *component.AIContext) {
		if isDead(w, e) {
			return
		}
		s.updateFromScript(&aiActionContext{
			World:   w,
			Entity:  e,
			Config:  cfg,
			State:   state,
			Context: aiCtx,
			PlayerX: playerX,
			PlayerY: playerY,
		})
	})
}
