package component

import "github.com/jakecoffman/cp"

// DrawnPath collects the points a player draws for a locked robot and the
// progress of the robot following them.
type DrawnPath struct {
	Points     []cp.Vector
	MinSpacing float64
	MinPoints  int

	Following bool
	Index     int
}

// TryAddPoint appends p when it is at least MinSpacing from the last point.
func (p *DrawnPath) TryAddPoint(pt cp.Vector) bool {
	if p.Following {
		return false
	}
	if n := len(p.Points); n > 0 && p.Points[n-1].DistanceSq(pt) < p.MinSpacing*p.MinSpacing {
		return false
	}
	p.Points = append(p.Points, pt)
	return true
}

// Finish starts following when enough points were drawn. A short path is
// discarded.
func (p *DrawnPath) Finish() bool {
	need := p.MinPoints
	if need < 2 {
		need = 2
	}
	if len(p.Points) < need {
		p.Clear()
		return false
	}
	p.Following = true
	p.Index = 0
	return true
}

func (p *DrawnPath) Clear() {
	p.Points = p.Points[:0]
	p.Following = false
	p.Index = 0
}

// Next returns the waypoint being walked to.
func (p *DrawnPath) Next() (cp.Vector, bool) {
	if !p.Following || p.Index >= len(p.Points) {
		return cp.Vector{}, false
	}
	return p.Points[p.Index], true
}

// Advance moves on to the following waypoint and stops at the end.
func (p *DrawnPath) Advance() {
	p.Index++
	if p.Index >= len(p.Points) {
		p.Clear()
	}
}

var DrawnPathComponent = NewComponent[DrawnPath]()
