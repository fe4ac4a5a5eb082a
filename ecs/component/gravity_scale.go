package component

// GravityScale scales world gravity for a robot while it is airborne.
// Grounded robots always run at 0.
type GravityScale struct {
	Scale float64
}

var GravityScaleComponent = NewComponent[GravityScale]()
