package component

import "github.com/jakecoffman/cp"

type Robot struct {
	MoveSpeed float64
	// HoverHeight is how far above the ground a robot dangles on the tether.
	HoverHeight float64

	Locked   bool
	Grabbed  bool
	Airborne bool

	DropForce    cp.Vector
	HasDropForce bool
}

var RobotComponent = NewComponent[Robot]()
