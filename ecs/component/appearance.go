package component

import "image/color"

// Appearance is how the debug renderer draws an entity.
type Appearance struct {
	Color  color.Color
	Hidden bool
}

var AppearanceComponent = NewComponent[Appearance]()
