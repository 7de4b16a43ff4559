package tilemap

import "github.com/milk9111/bramble/common"

// Attributes is the tile attribute bitmask.
type Attributes uint32

const (
	Solid Attributes = 1 << iota
	Unisolid
	Slope
	Hurts
	Ice
)

// Tile is a single grid cell. Data carries the slope descriptor when the
// Slope attribute is set.
type Tile struct {
	Attributes Attributes
	Data       uint32
}

// Empty is the tile returned for cells outside a layer.
var Empty = Tile{}

func (t Tile) IsSolid() bool { return t.Attributes&Solid != 0 }
func (t Tile) IsSlope() bool { return t.Attributes&Slope != 0 }
func (t Tile) Hurts() bool   { return t.Attributes&Hurts != 0 }

// Slope returns the slope descriptor stored in Data. The result is only
// meaningful when IsSlope is true.
func (t Tile) Slope() SlopeShape {
	return SlopeShape(t.Data)
}

func SolidTile() Tile {
	return Tile{Attributes: Solid}
}

func SlopeTile(s SlopeShape) Tile {
	return Tile{Attributes: Solid | Slope, Data: uint32(s)}
}

// TileSizeF is common.TileSize as a float for world-space math.
const TileSizeF = float64(common.TileSize)
