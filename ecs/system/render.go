package system

import (
	"fmt"
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/bramble/common"
	"github.com/milk9111/bramble/ecs"
	"github.com/milk9111/bramble/ecs/component"
	"github.com/milk9111/bramble/ecs/entity"
	"github.com/milk9111/bramble/tilemap"
	"golang.org/x/image/font/basicfont"
)

var (
	solidTileColor = color.NRGBA{R: 0x5d, G: 0x40, B: 0x37, A: 0xff}
	decoTileColor  = color.NRGBA{R: 0x33, G: 0x69, B: 0x1e, A: 0x60}
	slopeEdgeColor = color.NRGBA{R: 0xa1, G: 0x88, B: 0x7f, A: 0xff}
	defaultColor   = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	frozenColor    = color.NRGBA{R: 0x81, G: 0xd4, B: 0xfa, A: 0xff}
)

// Camera is the top-left world position drawn at the screen origin.
type Camera struct {
	X, Y float64
}

// FollowPlayer centers the camera on the player, clamped to the level.
func FollowPlayer(w *ecs.World, screenW, screenH int) Camera {
	var cam Camera
	pe, _, ok := findPlayer(w)
	if !ok {
		return cam
	}
	t, ok := ecs.Get(w, pe, component.TransformComponent.Kind())
	if !ok {
		return cam
	}
	cam.X = t.X - float64(screenW)/2
	cam.Y = t.Y - float64(screenH)/2
	if be, ok := ecs.First(w, component.LevelBoundsComponent.Kind()); ok {
		b, _ := ecs.Get(w, be, component.LevelBoundsComponent.Kind())
		cam.X = common.Clamp(cam.X, 0, max(0, b.Width-float64(screenW)))
		cam.Y = common.Clamp(cam.Y, 0, max(0, b.Height-float64(screenH)))
	}
	return cam
}

func (c Camera) rect(screen *ebiten.Image, r tilemap.Rect, clr color.Color) {
	vector.DrawFilledRect(screen, float32(r.X-c.X), float32(r.Y-c.Y), float32(r.Width), float32(r.Height), clr, false)
}

func (c Camera) outline(screen *ebiten.Image, r tilemap.Rect, clr color.Color) {
	vector.StrokeRect(screen, float32(r.X-c.X), float32(r.Y-c.Y), float32(r.Width), float32(r.Height), 1, clr, false)
}

func (c Camera) line(screen *ebiten.Image, a, b cp.Vector, clr color.Color) {
	vector.StrokeLine(screen, float32(a.X-c.X), float32(a.Y-c.Y), float32(b.X-c.X), float32(b.Y-c.Y), 1, clr, false)
}

// DrawWorld draws tile layers in order, then every visible entity box.
func DrawWorld(w *ecs.World, screen *ebiten.Image, cam Camera) {
	if w == nil || screen == nil {
		return
	}

	var layers []*component.TileLayer
	ecs.ForEach(w, component.TileLayerComponent.Kind(), func(_ ecs.Entity, tl *component.TileLayer) {
		layers = append(layers, tl)
	})
	sort.SliceStable(layers, func(i, j int) bool { return layers[i].Order < layers[j].Order })
	for _, tl := range layers {
		drawLayer(screen, cam, tl.Layer)
	}

	ecs.ForEach2(w, component.AppearanceComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, a *component.Appearance, _ *component.Transform) {
		if a.Hidden {
			return
		}
		if leaf, ok := ecs.Get(w, e, component.LeafComponent.Kind()); ok && !leaf.Flight.Visible() {
			return
		}
		box, ok := entity.Bounds(w, e)
		if !ok {
			return
		}
		if root, ok := ecs.Get(w, e, component.RootComponent.Kind()); ok {
			if root.Exposed <= 0 {
				return
			}
			box = exposedRect(root)
		}
		clr := a.Color
		if clr == nil {
			clr = defaultColor
		}
		if isFrozen(w, e) {
			clr = frozenColor
		}
		cam.rect(screen, box, clr)
	})
}

func drawLayer(screen *ebiten.Image, cam Camera, layer *tilemap.Layer) {
	if layer == nil {
		return
	}
	fill := decoTileColor
	if layer.Solid {
		fill = solidTileColor
	}
	for y := 0; y < layer.Height; y++ {
		for x := 0; x < layer.Width; x++ {
			tile := layer.Tile(x, y)
			if tile == tilemap.Empty {
				continue
			}
			cell := layer.CellRect(x, y)
			if !tile.IsSlope() {
				cam.rect(screen, cell, fill)
				continue
			}
			verts := tile.Slope().Polygon(cell)
			for i := range verts {
				cam.line(screen, verts[i], verts[(i+1)%len(verts)], slopeEdgeColor)
			}
		}
	}
}

var (
	planBaseColor      = color.NRGBA{R: 0xff, G: 0xeb, B: 0x3b, A: 0xff}
	planCandidateOK    = color.NRGBA{R: 0x66, G: 0xbb, B: 0x6a, A: 0xff}
	planCandidateFail  = color.NRGBA{R: 0xef, G: 0x53, B: 0x50, A: 0xff}
	planProbeColor     = color.NRGBA{R: 0x42, G: 0xa5, B: 0xf5, A: 0xff}
	trapOutlineColor   = color.NRGBA{R: 0xbc, G: 0xaa, B: 0xa4, A: 0xff}
	hazardOutlineColor = color.NRGBA{R: 0xff, G: 0x17, B: 0x44, A: 0xff}
)

var debugFace = ebtext.NewGoXFace(basicfont.Face7x13)

// DrawPlacementDebug overlays trap areas, the last placement plan of each
// emitter, hazard boxes and the player's status.
func DrawPlacementDebug(w *ecs.World, screen *ebiten.Image, cam Camera) {
	if w == nil || screen == nil {
		return
	}

	ecs.ForEach(w, component.RootTrapComponent.Kind(), func(e ecs.Entity, _ *component.RootTrap) {
		if box, ok := entity.Bounds(w, e); ok {
			cam.outline(screen, box, trapOutlineColor)
		}
	})

	ecs.ForEach(w, component.PlacementDebugComponent.Kind(), func(_ ecs.Entity, dbg *component.PlacementDebug) {
		if dbg.Age > placementDebugTTL {
			return
		}
		plan := dbg.Plan
		mark := func(p cp.Vector) {
			cam.line(screen, cp.Vector{X: p.X - 3, Y: p.Y}, cp.Vector{X: p.X + 3, Y: p.Y}, planBaseColor)
			cam.line(screen, cp.Vector{X: p.X, Y: p.Y - 3}, cp.Vector{X: p.X, Y: p.Y + 3}, planBaseColor)
		}
		mark(plan.Base)
		if !plan.Supported {
			return
		}
		mark(plan.Anchor)
		clr := planCandidateFail
		if plan.OK() {
			clr = planCandidateOK
		}
		cam.outline(screen, plan.Candidate, clr)
		cam.outline(screen, plan.Probe, planProbeColor)
	})

	ecs.ForEach2(w, component.HazardComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, h *component.Hazard, t *component.Transform) {
		if h.Width <= 0 || h.Height <= 0 {
			return
		}
		cam.outline(screen, tilemap.Rect{X: t.X + h.OffsetX, Y: t.Y + h.OffsetY, Width: h.Width, Height: h.Height}, hazardOutlineColor)
	})

	if pe, p, ok := findPlayer(w); ok {
		text := fmt.Sprintf("Health: %d\nGrounded: %v\nStar: %.1f\nButt jump: %v\nEntities: %d",
			p.Health, isGrounded(w, pe), p.Invincible, p.ButtJump, len(ecs.Entities(w)))
		op := &ebtext.DrawOptions{}
		op.GeoM.Translate(10, 10)
		op.LineSpacing = debugFace.Metrics().HAscent + debugFace.Metrics().HDescent + 2
		op.ColorScale.ScaleWithColor(defaultColor)
		ebtext.Draw(screen, text, debugFace, op)
	}
}
