package component

// Camera maps world units to screen pixels. X and Y are the world point at
// the centre of the screen.
type Camera struct {
	X             float64
	Y             float64
	PixelsPerUnit float64
}

var CameraComponent = NewComponent[Camera]()
