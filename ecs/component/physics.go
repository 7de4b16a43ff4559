package component

import "github.com/jakecoffman/cp"

// PhysicsBody stores Chipmunk2D runtime data and collider configuration.
// Body and Shape are created lazily by the physics system.
type PhysicsBody struct {
	Body      *cp.Body
	Shape     *cp.Shape
	Width     float64
	Height    float64
	Mass      float64
	Friction  float64
	Static    bool
	Sensor    bool
	NoGravity bool
	// MaxFall caps downward speed; zero means uncapped.
	MaxFall float64
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()

// Contact is the physics system's per-tick summary of what a body touches.
type Contact struct {
	Grounded  bool
	WallLeft  bool
	WallRight bool
	// LedgeAhead is true when there is no floor one step ahead in the
	// walking direction.
	LedgeAhead bool
}

var ContactComponent = NewComponent[Contact]()

// CollisionLayer lets entities declare a collision category and mask.
type CollisionLayer struct {
	// Category is zero for the default category 1.
	Category uint32 `yaml:"category"`
	// Mask is zero to collide with everything.
	Mask uint32 `yaml:"mask"`
}

var CollisionLayerComponent = NewComponent[CollisionLayer]()

// Velocity is the desired velocity before the physics step and the
// resolved one after it, in world units per second.
type Velocity struct {
	X float64
	Y float64
}

var VelocityComponent = NewComponent[Velocity]()
