package placement

import (
	"fmt"
	"strings"
)

// Facing is the cardinal direction a hazard grows toward.
type Facing uint8

const (
	Up Facing = iota
	Down
	Left
	Right
)

var facingNames = [...]string{
	Up:    "up",
	Down:  "down",
	Left:  "left",
	Right: "right",
}

func (f Facing) Valid() bool {
	return f <= Right
}

func (f Facing) String() string {
	if !f.Valid() {
		return fmt.Sprintf("facing(%d)", uint8(f))
	}
	return facingNames[f]
}

// Vertical reports whether hazards for f grow along the y axis.
func (f Facing) Vertical() bool {
	switch f {
	case Up, Down:
		return true
	case Left, Right:
		return false
	default:
		panic(fmt.Sprintf("placement: unknown facing %d", uint8(f)))
	}
}

// Opposite returns the reverse direction.
func (f Facing) Opposite() Facing {
	switch f {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	default:
		panic(fmt.Sprintf("placement: unknown facing %d", uint8(f)))
	}
}

// ParseFacing accepts the lower-case names used in prefabs and levels.
func ParseFacing(s string) (Facing, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range facingNames {
		if n == name {
			return Facing(i), nil
		}
	}
	return 0, fmt.Errorf("placement: unknown facing %q", s)
}

func (f Facing) MarshalText() ([]byte, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("placement: unknown facing %d", uint8(f))
	}
	return []byte(f.String()), nil
}

func (f *Facing) UnmarshalText(b []byte) error {
	parsed, err := ParseFacing(string(b))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// FlipVertical mirrors f top to bottom: Up and Down swap, horizontal
// facings are unchanged.
func (f Facing) FlipVertical() Facing {
	if f.Vertical() {
		return f.Opposite()
	}
	return f
}
