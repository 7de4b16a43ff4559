package component

import "github.com/milk9111/bramble/creature"

// Leaf holds the experienced leaf's flight state.
type Leaf struct {
	Flight creature.Flight
}

var LeafComponent = NewComponent[Leaf]()
