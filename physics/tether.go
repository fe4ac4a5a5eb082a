package physics

import (
	"errors"

	"github.com/jakecoffman/cp"
)

var (
	ErrAlreadyTethered = errors.New("physics: body already tethered")
	ErrPoolFull        = errors.New("physics: tether pool full")
	ErrNilBody         = errors.New("physics: body is nil")
)

// Handle addresses a slot in a TetherPool. The zero Handle is never valid and
// a handle goes stale as soon as its tether is detached.
type Handle struct {
	index int
	gen   uint32
}

// Valid reports whether the handle was ever issued.
func (h Handle) Valid() bool {
	return h.gen != 0
}

// Tether is the data side of one elastic link between a body and a world
// point. The Chipmunk joint mirrors it.
type Tether struct {
	Body          *cp.Body
	Anchor        cp.Vector // body-local
	Connected     cp.Vector // world
	Distance      float64
	CollideBodies bool
}

type tetherSlot struct {
	Tether
	joint  *cp.Constraint
	gen    uint32
	active bool
}

// TetherPool is a fixed-capacity table of tethers from dynamic bodies to
// points on the static body of one space.
type TetherPool struct {
	space *cp.Space
	slots []tetherSlot
}

// NewTetherPool creates a pool with room for capacity simultaneous tethers.
func NewTetherPool(space *cp.Space, capacity int) *TetherPool {
	if capacity <= 0 {
		capacity = 1
	}
	return &TetherPool{space: space, slots: make([]tetherSlot, capacity)}
}

// Attach links body at localAnchor to a world point restDistance above the
// anchor, so the tether starts taut and pointing straight up.
func (p *TetherPool) Attach(body *cp.Body, localAnchor cp.Vector, restDistance float64) (Handle, error) {
	if body == nil {
		return Handle{}, ErrNilBody
	}
	free := -1
	for i := range p.slots {
		s := &p.slots[i]
		if s.active && s.Body == body {
			return Handle{}, ErrAlreadyTethered
		}
		if !s.active && free < 0 {
			free = i
		}
	}
	if free < 0 {
		return Handle{}, ErrPoolFull
	}
	if restDistance < 0 {
		restDistance = 0
	}

	connected := body.Position().Add(localAnchor).Add(cp.Vector{Y: restDistance})
	joint := cp.NewSlideJoint(body, p.space.StaticBody, localAnchor, connected, 0, restDistance)
	joint.SetCollideBodies(true)
	p.space.AddConstraint(joint)

	s := &p.slots[free]
	s.gen++
	if s.gen == 0 {
		s.gen = 1
	}
	s.Tether = Tether{
		Body:          body,
		Anchor:        localAnchor,
		Connected:     connected,
		Distance:      restDistance,
		CollideBodies: true,
	}
	s.joint = joint
	s.active = true
	return Handle{index: free, gen: s.gen}, nil
}

func (p *TetherPool) slot(h Handle) *tetherSlot {
	if p == nil || !h.Valid() || h.index < 0 || h.index >= len(p.slots) {
		return nil
	}
	s := &p.slots[h.index]
	if !s.active || s.gen != h.gen {
		return nil
	}
	return s
}

// Active reports whether h still refers to an attached tether.
func (p *TetherPool) Active(h Handle) bool {
	return p.slot(h) != nil
}

// Get returns a copy of the tether for h.
func (p *TetherPool) Get(h Handle) (Tether, bool) {
	s := p.slot(h)
	if s == nil {
		return Tether{}, false
	}
	return s.Tether, true
}

// SetConnectedAnchor moves the world end of the tether.
func (p *TetherPool) SetConnectedAnchor(h Handle, point cp.Vector) bool {
	s := p.slot(h)
	if s == nil {
		return false
	}
	s.Connected = point
	if joint, ok := s.joint.Class.(*cp.SlideJoint); ok {
		joint.AnchorB = point
	}
	s.Body.Activate()
	return true
}

// ConnectedAnchor returns the world end of the tether.
func (p *TetherPool) ConnectedAnchor(h Handle) cp.Vector {
	if s := p.slot(h); s != nil {
		return s.Connected
	}
	return cp.Vector{}
}

// Anchor returns the body-local end of the tether.
func (p *TetherPool) Anchor(h Handle) cp.Vector {
	if s := p.slot(h); s != nil {
		return s.Anchor
	}
	return cp.Vector{}
}

// WorldAnchor returns the body end of the tether in world space.
func (p *TetherPool) WorldAnchor(h Handle) cp.Vector {
	if s := p.slot(h); s != nil {
		return s.Body.LocalToWorld(s.Anchor)
	}
	return cp.Vector{}
}

// Displacement is the vector from the body end to the world end.
func (p *TetherPool) Displacement(h Handle) cp.Vector {
	s := p.slot(h)
	if s == nil {
		return cp.Vector{}
	}
	return s.Connected.Sub(s.Body.LocalToWorld(s.Anchor))
}

// Distance returns the rest distance of the tether, or 0 when detached.
func (p *TetherPool) Distance(h Handle) float64 {
	if s := p.slot(h); s != nil {
		return s.Distance
	}
	return 0
}

// Detach removes the tether. Detaching a stale handle does nothing and
// reports false.
func (p *TetherPool) Detach(h Handle) bool {
	s := p.slot(h)
	if s == nil {
		return false
	}
	p.release(s)
	return true
}

// DetachBody removes any tether attached to body.
func (p *TetherPool) DetachBody(body *cp.Body) bool {
	if p == nil || body == nil {
		return false
	}
	for i := range p.slots {
		s := &p.slots[i]
		if s.active && s.Body == body {
			p.release(s)
			return true
		}
	}
	return false
}

func (p *TetherPool) release(s *tetherSlot) {
	if s.joint != nil && p.space.ContainsConstraint(s.joint) {
		p.space.RemoveConstraint(s.joint)
	}
	s.joint = nil
	s.active = false
	s.Tether = Tether{}
}

// Len returns the number of attached tethers.
func (p *TetherPool) Len() int {
	if p == nil {
		return 0
	}
	n := 0
	for i := range p.slots {
		if p.slots[i].active {
			n++
		}
	}
	return n
}

// Cap returns the pool capacity.
func (p *TetherPool) Cap() int {
	if p == nil {
		return 0
	}
	return len(p.slots)
}
