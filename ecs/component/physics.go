package component

import "github.com/jakecoffman/cp"

// PhysicsBody stores Chipmunk2D runtime data and collider configuration.
// A Radius > 0 makes a circle, otherwise Width x Height is a box centered on
// the transform plus offset.
type PhysicsBody struct {
	Body    *cp.Body
	Shape   *cp.Shape
	Width   float64
	Height  float64
	Radius  float64
	OffsetX float64
	OffsetY float64
	// Sensor shapes report overlaps without pushing anything.
	Sensor bool
	Static bool
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
