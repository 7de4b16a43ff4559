package levels

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed *.json
var LevelsFS embed.FS

var (
	ErrInvalidDimensions = errors.New("levels: invalid dimensions")
	ErrLayerSize         = errors.New("levels: layer size mismatch")
	ErrUnknownTile       = errors.New("levels: unknown tile symbol")
)

// Level is the on-disk description of one playfield. Layer rows are strings
// whose characters index into Legend; '.' and ' ' are always empty.
type Level struct {
	Name     string              `json:"name"`
	Width    int                 `json:"width"`
	Height   int                 `json:"height"`
	Legend   map[string]TileSpec `json:"legend"`
	Layers   []Layer             `json:"layers"`
	Entities []Entity            `json:"entities,omitempty"`
}

type Layer struct {
	Name    string   `json:"name"`
	Solid   bool     `json:"solid"`
	Path    string   `json:"path,omitempty"`
	OffsetX float64  `json:"offset_x,omitempty"`
	OffsetY float64  `json:"offset_y,omitempty"`
	Rows    []string `json:"rows"`
}

// TileSpec is a legend entry. Attrs are lowercase attribute names; Slope and
// Deform are only read when "slope" is among them.
type TileSpec struct {
	Attrs  []string `json:"attrs"`
	Slope  string   `json:"slope,omitempty"`
	Deform string   `json:"deform,omitempty"`
}

type Entity struct {
	Type  string         `json:"type"`
	X     float64        `json:"x"`
	Y     float64        `json:"y"`
	Props map[string]any `json:"props,omitempty"`
}

// Decode parses and validates a level.
func Decode(data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	if err := lvl.Validate(); err != nil {
		return nil, err
	}
	return &lvl, nil
}

// Validate checks grid dimensions and legend coverage.
func (l *Level) Validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("level %q: %dx%d: %w", l.Name, l.Width, l.Height, ErrInvalidDimensions)
	}
	for _, layer := range l.Layers {
		if len(layer.Rows) != l.Height {
			return fmt.Errorf("level %q: layer %q has %d rows, want %d: %w", l.Name, layer.Name, len(layer.Rows), l.Height, ErrLayerSize)
		}
		for y, row := range layer.Rows {
			if len(row) != l.Width {
				return fmt.Errorf("level %q: layer %q row %d has %d cells, want %d: %w", l.Name, layer.Name, y, len(row), l.Width, ErrLayerSize)
			}
			for x := 0; x < len(row); x++ {
				sym := row[x]
				if sym == '.' || sym == ' ' {
					continue
				}
				if _, ok := l.Legend[string(sym)]; !ok {
					return fmt.Errorf("level %q: layer %q cell (%d,%d) %q: %w", l.Name, layer.Name, x, y, sym, ErrUnknownTile)
				}
			}
		}
	}
	return nil
}

// LoadLevelFromFS reads a level from disk when a levels/ directory holds it,
// otherwise from the embedded set.
func LoadLevelFromFS(name string) (*Level, error) {
	clean := strings.TrimPrefix(filepath.ToSlash(name), "levels/")
	if !strings.HasSuffix(clean, ".json") {
		clean += ".json"
	}
	data, err := os.ReadFile(filepath.Join("levels", filepath.FromSlash(clean)))
	if err != nil {
		data, err = fs.ReadFile(LevelsFS, clean)
	}
	if err != nil {
		return nil, fmt.Errorf("read level %s: %w", clean, err)
	}
	lvl, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", clean, err)
	}
	return lvl, nil
}

// Names lists the embedded level files.
func Names() []string {
	entries, err := fs.ReadDir(LevelsFS, ".")
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
			out = append(out, e.Name())
		}
	}
	sort.Strings(out)
	return out
}
