package component

import "github.com/milk9111/bramble/tilemap"

// TileLayer wraps one tile grid of the current level.
type TileLayer struct {
	Layer *tilemap.Layer
	// Order is the draw and query order, lowest first.
	Order int
}

var TileLayerComponent = NewComponent[TileLayer]()

// LevelBounds stores the world-space bounds of the current level.
type LevelBounds struct {
	Width  float64
	Height float64
}

var LevelBoundsComponent = NewComponent[LevelBounds]()
