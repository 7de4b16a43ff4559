package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bramble/common"
	"github.com/milk9111/bramble/ecs"
	"github.com/milk9111/bramble/ecs/component"
	"github.com/milk9111/bramble/placement"
	"github.com/milk9111/bramble/tilemap"
)

const (
	collisionTypeBody cp.CollisionType = iota + 1
	collisionTypeGround
	collisionTypeSolid
)

// terrainCategory is the filter category of tiles and level walls.
const terrainCategory uint = 1

// ledgeProbeDepth is how far below a walker's feet the ledge probe looks.
const ledgeProbeDepth = 4.0

type PhysicsSystem struct {
	space         *cp.Space
	handlersReady bool

	entities    map[ecs.Entity]*bodyInfo
	terrain     map[*tilemap.Layer][]*cp.Shape
	walls       []*cp.Shape
	bodyShapes  map[*cp.Shape]ecs.Entity
	groundShape map[*cp.Shape]ecs.Entity
	contacts    map[ecs.Entity]*component.Contact
}

type bodyInfo struct {
	body        *cp.Body
	mainShape   *cp.Shape
	groundShape *cp.Shape
	static      bool
}

func NewPhysicsSystem() *PhysicsSystem {
	ps := &PhysicsSystem{}
	ps.reset()
	return ps
}

func (ps *PhysicsSystem) reset() {
	ps.space = cp.NewSpace()
	ps.space.Iterations = 20
	ps.space.SetGravity(cp.Vector{X: 0, Y: common.Gravity})
	ps.handlersReady = false
	ps.entities = make(map[ecs.Entity]*bodyInfo)
	ps.terrain = make(map[*tilemap.Layer][]*cp.Shape)
	ps.walls = nil
	ps.bodyShapes = make(map[*cp.Shape]ecs.Entity)
	ps.groundShape = make(map[*cp.Shape]ecs.Entity)
	ps.contacts = make(map[ecs.Entity]*component.Contact)
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	if ps.space == nil {
		ps.reset()
	}
	dt := w.DeltaTime()
	if dt <= 0 {
		return
	}

	ps.ensureHandlers()
	ps.syncTerrain(w)
	ps.syncWorldBounds(w)
	ps.syncEntities(w)
	ps.applyVelocities(w)

	ecs.ForEach(w, component.ContactComponent.Kind(), func(e ecs.Entity, _ *component.Contact) {
		*ps.contactFor(e) = component.Contact{}
	})
	ps.space.Step(dt)

	ps.syncTransforms(w)
	ps.flushContacts(w)
}

func (ps *PhysicsSystem) contactFor(e ecs.Entity) *component.Contact {
	c := ps.contacts[e]
	if c == nil {
		c = &component.Contact{}
		ps.contacts[e] = c
	}
	return c
}

func (ps *PhysicsSystem) ensureHandlers() {
	if ps.handlersReady || ps.space == nil {
		return
	}

	wallHandler := ps.space.NewCollisionHandler(collisionTypeBody, collisionTypeSolid)
	wallHandler.UserData = ps
	wallHandler.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil {
			return true
		}
		shapeA, shapeB := arb.Shapes()
		e, bodyIsA := sys.bodyShapes[shapeA]
		if !bodyIsA {
			var okB bool
			e, okB = sys.bodyShapes[shapeB]
			if !okB {
				return true
			}
		}

		n := arb.Normal()
		if !bodyIsA {
			n = n.Neg()
		}
		st := sys.contactFor(e)
		if n.X < -0.5 {
			st.WallLeft = true
		} else if n.X > 0.5 {
			st.WallRight = true
		}
		return true
	}

	groundHandler := ps.space.NewCollisionHandler(collisionTypeGround, collisionTypeSolid)
	groundHandler.UserData = ps
	groundHandler.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil {
			return true
		}
		shapeA, shapeB := arb.Shapes()
		e, okA := sys.groundShape[shapeA]
		if !okA {
			var okB bool
			e, okB = sys.groundShape[shapeB]
			if !okB {
				return true
			}
		}

		n := arb.Normal()
		if !okA {
			n = n.Neg()
		}
		// Grounded only when the ground lies below the sensor (y down).
		if n.Y <= 0.5 {
			return true
		}
		sys.contactFor(e).Grounded = true
		return true
	}

	// Bodies pass through each other; creature contact is box overlap.
	bodyHandler := ps.space.NewCollisionHandler(collisionTypeBody, collisionTypeBody)
	bodyHandler.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		return false
	}

	ps.handlersReady = true
}

func terrainFilter() cp.ShapeFilter {
	return cp.NewShapeFilter(cp.NO_GROUP, terrainCategory, cp.ALL_CATEGORIES)
}

func bodyFilter(layer *component.CollisionLayer) cp.ShapeFilter {
	category, mask := terrainCategory, cp.ALL_CATEGORIES
	if layer != nil {
		if layer.Category != 0 {
			category = uint(layer.Category)
		}
		if layer.Mask != 0 {
			mask = uint(layer.Mask)
		}
	}
	return cp.NewShapeFilter(cp.NO_GROUP, category, mask)
}

// syncTerrain builds static shapes for every solid tile layer and drops
// the shapes of layers that left the world.
func (ps *PhysicsSystem) syncTerrain(w *ecs.World) {
	seen := make(map[*tilemap.Layer]bool)
	ecs.ForEach(w, component.TileLayerComponent.Kind(), func(_ ecs.Entity, tl *component.TileLayer) {
		if tl.Layer == nil || !tl.Layer.Solid {
			return
		}
		seen[tl.Layer] = true
		if _, ok := ps.terrain[tl.Layer]; ok {
			return
		}
		shapes := terrainShapes(ps.space.StaticBody, tl.Layer)
		for _, shape := range shapes {
			ps.space.AddShape(shape)
		}
		ps.terrain[tl.Layer] = shapes
	})

	for layer, shapes := range ps.terrain {
		if seen[layer] {
			continue
		}
		for _, shape := range shapes {
			ps.space.RemoveShape(shape)
		}
		delete(ps.terrain, layer)
	}
}

// terrainShapes merges each row's runs of plain solid tiles into one box
// and gives every slope tile its own polygon.
func terrainShapes(static *cp.Body, layer *tilemap.Layer) []*cp.Shape {
	var shapes []*cp.Shape
	add := func(shape *cp.Shape) {
		shape.SetFriction(0.8)
		shape.SetCollisionType(collisionTypeSolid)
		shape.SetFilter(terrainFilter())
		shapes = append(shapes, shape)
	}

	for y := 0; y < layer.Height; y++ {
		start := -1
		flush := func(end int) {
			if start < 0 {
				return
			}
			left := layer.CellRect(start, y)
			right := layer.CellRect(end-1, y)
			add(cp.NewBox2(static, cp.BB{L: left.Left(), B: left.Top(), R: right.Right(), T: left.Bottom()}, 0))
			start = -1
		}
		for x := 0; x < layer.Width; x++ {
			tile := layer.Tile(x, y)
			switch {
			case tile.IsSlope():
				flush(x)
				verts := counterClockwise(tile.Slope().Polygon(layer.CellRect(x, y)))
				if len(verts) >= 3 {
					add(cp.NewPolyShapeRaw(static, len(verts), verts, 0))
				}
			case tile.IsSolid():
				if start < 0 {
					start = x
				}
			default:
				flush(x)
			}
		}
		flush(layer.Width)
	}
	return shapes
}

// counterClockwise returns verts wound the way Chipmunk expects.
func counterClockwise(verts []cp.Vector) []cp.Vector {
	var area float64
	for i := range verts {
		j := (i + 1) % len(verts)
		area += verts[i].X*verts[j].Y - verts[j].X*verts[i].Y
	}
	if area >= 0 {
		return verts
	}
	out := make([]cp.Vector, len(verts))
	for i, v := range verts {
		out[len(verts)-1-i] = v
	}
	return out
}

// syncWorldBounds closes the level's top and sides. The bottom stays open
// so creatures can fall out.
func (ps *PhysicsSystem) syncWorldBounds(w *ecs.World) {
	if ps.walls != nil {
		return
	}
	be, ok := ecs.First(w, component.LevelBoundsComponent.Kind())
	if !ok {
		return
	}
	bounds, ok := ecs.Get(w, be, component.LevelBoundsComponent.Kind())
	if !ok || bounds.Width <= 0 || bounds.Height <= 0 {
		return
	}

	segments := []struct{ a, b cp.Vector }{
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: bounds.Width, Y: 0}},
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: 0, Y: bounds.Height}},
		{a: cp.Vector{X: bounds.Width, Y: 0}, b: cp.Vector{X: bounds.Width, Y: bounds.Height}},
	}
	for _, seg := range segments {
		shape := cp.NewSegment(ps.space.StaticBody, seg.a, seg.b, 1)
		shape.SetFriction(0.8)
		shape.SetCollisionType(collisionTypeSolid)
		shape.SetFilter(terrainFilter())
		ps.space.AddShape(shape)
		ps.walls = append(ps.walls, shape)
	}
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ps.cleanupEntities(w)

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
		if info := ps.entities[e]; info != nil {
			bodyComp.Body = info.body
			bodyComp.Shape = info.mainShape
			return
		}

		layer, _ := ecs.Get(w, e, component.CollisionLayerComponent.Kind())
		wantGround := ecs.Has(w, e, component.ContactComponent.Kind())
		info := ps.createBodyInfo(transform, bodyComp, bodyFilter(layer), wantGround)
		ps.entities[e] = info
		ps.bodyShapes[info.mainShape] = e
		if info.groundShape != nil {
			ps.groundShape[info.groundShape] = e
		}
		bodyComp.Body = info.body
		bodyComp.Shape = info.mainShape
	})
}

func (ps *PhysicsSystem) createBodyInfo(transform *component.Transform, bodyComp *component.PhysicsBody, filter cp.ShapeFilter, wantGround bool) *bodyInfo {
	width, height := bodyComp.Width, bodyComp.Height
	if width <= 0 || height <= 0 {
		width, height = tilemap.TileSizeF, tilemap.TileSizeF
	}

	if bodyComp.Static {
		bb := cp.BB{L: transform.X - width/2, B: transform.Y - height/2, R: transform.X + width/2, T: transform.Y + height/2}
		shape := cp.NewBox2(ps.space.StaticBody, bb, 0)
		shape.SetFriction(bodyComp.Friction)
		shape.SetCollisionType(collisionTypeSolid)
		shape.SetSensor(bodyComp.Sensor)
		shape.SetFilter(filter)
		ps.space.AddShape(shape)
		return &bodyInfo{body: ps.space.StaticBody, mainShape: shape, static: true}
	}

	mass := bodyComp.Mass
	if mass <= 0 {
		mass = 1
	}
	// Infinite moment keeps walkers upright.
	body := cp.NewBody(mass, math.Inf(1))
	body.SetPosition(cp.Vector{X: transform.X, Y: transform.Y})
	if bodyComp.NoGravity {
		body.SetVelocityUpdateFunc(func(b *cp.Body, _ cp.Vector, damping, dt float64) {
			cp.BodyUpdateVelocity(b, cp.Vector{}, damping, dt)
		})
	}

	shape := cp.NewBox(body, width, height, 0)
	shape.SetFriction(bodyComp.Friction)
	shape.SetCollisionType(collisionTypeBody)
	shape.SetSensor(bodyComp.Sensor)
	shape.SetFilter(filter)

	ps.space.AddBody(body)
	ps.space.AddShape(shape)
	info := &bodyInfo{body: body, mainShape: shape}

	if wantGround {
		groundBB := cp.BB{
			L: -width * 0.45,
			B: height / 2.0,
			R: width * 0.45,
			T: height/2.0 + 2,
		}
		ground := cp.NewBox2(body, groundBB, 0)
		ground.SetSensor(true)
		ground.SetCollisionType(collisionTypeGround)
		ground.SetFilter(filter)
		ps.space.AddShape(ground)
		info.groundShape = ground
	}
	return info
}

func (ps *PhysicsSystem) applyVelocities(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.VelocityComponent.Kind(), func(e ecs.Entity, bodyComp *component.PhysicsBody, v *component.Velocity) {
		if bodyComp.Body == nil || bodyComp.Static {
			return
		}
		bodyComp.Body.SetVelocity(v.X, v.Y)
	})
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	var layers []placement.TileLayer
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
		if bodyComp.Body == nil || bodyComp.Static {
			return
		}
		vel := bodyComp.Body.Velocity()
		if bodyComp.MaxFall > 0 && vel.Y > bodyComp.MaxFall {
			vel.Y = bodyComp.MaxFall
			bodyComp.Body.SetVelocityVector(vel)
		}
		pos := bodyComp.Body.Position()
		transform.X, transform.Y = pos.X, pos.Y
		if v, ok := ecs.Get(w, e, component.VelocityComponent.Kind()); ok {
			v.X, v.Y = vel.X, vel.Y
		}

		c, ok := ecs.Get(w, e, component.CreatureComponent.Kind())
		if !ok {
			return
		}
		if layers == nil {
			layers = terrainLayers(w)
		}
		ps.contactFor(e).LedgeAhead = ledgeAhead(pos, bodyComp.Width, bodyComp.Height, c.Facing, layers)
	})
}

// ledgeAhead reports whether the floor ends just past the walker's front
// foot.
func ledgeAhead(center cp.Vector, width, height float64, facing placement.Facing, layers []placement.TileLayer) bool {
	probe := cp.Vector{X: center.X + width/2 + 1, Y: center.Y + height/2 + ledgeProbeDepth}
	if facing == placement.Left {
		probe.X = center.X - width/2 - 1
	}
	for _, layer := range layers {
		if layer.TileAt(probe).IsSolid() {
			return false
		}
	}
	return true
}

func (ps *PhysicsSystem) flushContacts(w *ecs.World) {
	for e, st := range ps.contacts {
		c, ok := ecs.Get(w, e, component.ContactComponent.Kind())
		if !ok {
			continue
		}
		*c = *st
	}
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if ecs.IsAlive(w, e) && ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			continue
		}
		for _, shape := range []*cp.Shape{info.mainShape, info.groundShape} {
			if shape == nil {
				continue
			}
			ps.space.RemoveShape(shape)
			delete(ps.bodyShapes, shape)
			delete(ps.groundShape, shape)
		}
		if info.body != nil && !info.static {
			ps.space.RemoveBody(info.body)
		}
		delete(ps.entities, e)
		delete(ps.contacts, e)
	}
}
