package component

import (
	"image/color"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/robotgrabber/physics"
)

// Grabber mirrors the grab controller's view for rendering and the HUD.
type Grabber struct {
	Pos           cp.Vector
	CursorVisible bool
	SpriteVisible bool
	Glow          bool
	Beam          cp.Vector
	BeamOrigin    cp.Vector
	Tethered      bool

	State      string
	Grabbed    physics.Ref
	HasGrabbed bool
	Touch      bool

	Size      float64
	GlowColor color.Color
	BeamColor color.Color
}

var GrabberComponent = NewComponent[Grabber]()
