package component

// Hazard marks an entity as dangerous on overlap. Bounds are world units
// relative to the Transform position.
type Hazard struct {
	Width   float64
	Height  float64
	OffsetX float64
	OffsetY float64
	Damage  int
}

var HazardComponent = NewComponent[Hazard]()
