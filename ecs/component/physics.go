package component

import "github.com/milk9111/robotgrabber/physics"

// PhysicsBody is the collider configuration for an entity. The physics system
// registers it with the space under the entity's ref on first sight.
type PhysicsBody struct {
	Tag      string
	Layer    physics.Layer
	Width    float64
	Height   float64
	Mass     float64
	Friction float64

	Registered bool
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
