package component

import "github.com/milk9111/bramble/creature"

// BushIgel is the rolling hedgehog's spawner. Rolling is written by its AI
// script.
type BushIgel struct {
	Spawner creature.IgelSpawner
	Rolling bool
	// IvyOffsetX/IvyOffsetY place the normal variant's ivy behind and above.
	IvyOffsetX float64
	IvyOffsetY float64
}

var BushIgelComponent = NewComponent[BushIgel]()
