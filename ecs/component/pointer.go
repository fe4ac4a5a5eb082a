package component

import "github.com/jakecoffman/cp"

// Pointer stores the primary button state for the frame, in screen pixels and
// in world units.
type Pointer struct {
	ScreenX float64
	ScreenY float64
	World   cp.Vector

	Pressed  bool
	Held     bool
	Released bool
	Moved    bool
	Touch    bool
}

var PointerComponent = NewComponent[Pointer]()
