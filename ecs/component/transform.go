package component

import "github.com/jakecoffman/cp"

// Transform is the entity's world position; for bodies it tracks the
// center of the collider.
type Transform struct {
	X        float64
	Y        float64
	Rotation float64
}

func (t Transform) Pos() cp.Vector {
	return cp.Vector{X: t.X, Y: t.Y}
}

var TransformComponent = NewComponent[Transform]()
