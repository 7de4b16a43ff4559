package placement

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/bramble/creature"
)

// SpawnRequest asks the dispatcher to create one entity at the end of the
// tick. Systems never create hazards directly.
type SpawnRequest struct {
	Kind    creature.Kind
	Variant creature.Variant
	Pos     cp.Vector
	Facing  Facing
	Sprite  string
	// Invincibility, when positive, is granted to the spawned creature.
	Invincibility float64
	// Source is the emitter's entity handle, zero when unknown.
	Source uint64
}

// RootRequest turns a successful placement into a root spawn request.
func RootRequest(s Spawn, sprite string) SpawnRequest {
	return SpawnRequest{
		Kind:   creature.KindRoot,
		Pos:    s.Pos,
		Facing: s.Facing,
		Sprite: sprite,
	}
}
