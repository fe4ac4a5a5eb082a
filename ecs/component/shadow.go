package component

import "github.com/milk9111/robotgrabber/physics"

type Shadow struct {
	Shadow *physics.Shadow
	// LaunchScale multiplies the robot's vertical speed at release to get the
	// initial speed along the height axis.
	LaunchScale float64
}

var ShadowComponent = NewComponent[Shadow]()
