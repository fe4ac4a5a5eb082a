package component

import "github.com/jakecoffman/cp"

// Targeter is a single destination picked by a robot's idle script.
type Targeter struct {
	Target cp.Vector
	Active bool
}

var TargeterComponent = NewComponent[Targeter]()
