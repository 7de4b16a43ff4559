package common

const (
	// TileSize is the edge length of one grid cell in world units.
	TileSize = 32

	BaseWidth  = 1280
	BaseHeight = 720

	// TicksPerSecond matches ebiten's default fixed update rate.
	TicksPerSecond = 60
	FixedDelta     = 1.0 / TicksPerSecond

	// Gravity is applied in world units per second squared, y down.
	Gravity = 900.0
)
