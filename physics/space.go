package physics

import "github.com/jakecoffman/cp"

// Layer is a collision category bit. Shapes carry exactly one layer and
// queries select shapes by mask.
type Layer uint

const (
	LayerMap Layer = 1 << iota
	LayerGrabbable
	LayerGrabbed
)

// Ref identifies the owner of a collider. ECS entities convert losslessly.
type Ref uint64

// Collider is a registered dynamic body with a single box shape.
type Collider struct {
	Ref         Ref
	Tag         string
	Body        *cp.Body
	Shape       *cp.Shape
	HalfExtents cp.Vector
	Layer       Layer

	mass         float64
	gravityScale float64
	rotates      bool
}

// Position returns the body origin in world space.
func (c *Collider) Position() cp.Vector {
	if c == nil || c.Body == nil {
		return cp.Vector{}
	}
	return c.Body.Position()
}

// Config tunes the Chipmunk space.
type Config struct {
	Gravity    cp.Vector
	Iterations int
	Damping    float64
	MaxTethers int
}

// Space owns the Chipmunk space, every collider registered with it and the
// tether pool that links colliders to world points.
type Space struct {
	space     *cp.Space
	colliders map[*cp.Shape]*Collider
	byRef     map[Ref]*Collider
	tethers   *TetherPool
}

const defaultMaxTethers = 4

// NewSpace creates a physics space with a tether pool.
func NewSpace(cfg Config) *Space {
	space := cp.NewSpace()
	space.Iterations = 20
	if cfg.Iterations > 0 {
		space.Iterations = uint(cfg.Iterations)
	}
	space.SetGravity(cfg.Gravity)
	if cfg.Damping > 0 && cfg.Damping <= 1 {
		space.SetDamping(cfg.Damping)
	}

	capacity := cfg.MaxTethers
	if capacity <= 0 {
		capacity = defaultMaxTethers
	}

	return &Space{
		space:     space,
		colliders: make(map[*cp.Shape]*Collider),
		byRef:     make(map[Ref]*Collider),
		tethers:   NewTetherPool(space, capacity),
	}
}

// Space returns the underlying Chipmunk space.
func (s *Space) Space() *cp.Space {
	if s == nil {
		return nil
	}
	return s.space
}

// Tethers returns the tether pool owned by this space.
func (s *Space) Tethers() *TetherPool {
	if s == nil {
		return nil
	}
	return s.tethers
}

// Gravity returns the space gravity.
func (s *Space) Gravity() cp.Vector {
	if s == nil || s.space == nil {
		return cp.Vector{}
	}
	return s.space.Gravity()
}

// AddBox registers a dynamic box collider centred on pos. Rotation starts
// frozen and gravity scale starts at zero, which keeps grounded actors on the
// ground plane of a top-down world.
func (s *Space) AddBox(ref Ref, tag string, layer Layer, pos cp.Vector, width, height, mass, friction float64) *Collider {
	if s == nil || s.space == nil {
		return nil
	}
	if old, ok := s.byRef[ref]; ok {
		s.remove(old)
	}
	if mass <= 0 {
		mass = 1
	}
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}

	body := cp.NewBody(mass, cp.INFINITY)
	body.SetPosition(pos)

	shape := cp.NewBox(body, width, height, 0)
	shape.SetFriction(friction)

	c := &Collider{
		Ref:         ref,
		Tag:         tag,
		Body:        body,
		Shape:       shape,
		HalfExtents: cp.Vector{X: width / 2, Y: height / 2},
		mass:        mass,
	}
	body.UserData = c
	shape.UserData = c
	body.SetVelocityUpdateFunc(func(b *cp.Body, gravity cp.Vector, damping float64, dt float64) {
		cp.BodyUpdateVelocity(b, gravity.Mult(c.gravityScale), damping, dt)
	})

	s.space.AddBody(body)
	s.space.AddShape(shape)
	s.setLayer(c, layer)

	s.colliders[shape] = c
	s.byRef[ref] = c
	return c
}

// Remove unregisters the collider for ref and detaches any tether on it.
func (s *Space) Remove(ref Ref) bool {
	if s == nil {
		return false
	}
	c, ok := s.byRef[ref]
	if !ok {
		return false
	}
	s.remove(c)
	return true
}

func (s *Space) remove(c *Collider) {
	s.tethers.DetachBody(c.Body)
	s.space.RemoveShape(c.Shape)
	s.space.RemoveBody(c.Body)
	delete(s.colliders, c.Shape)
	delete(s.byRef, c.Ref)
}

// Collider returns the collider registered for ref.
func (s *Space) Collider(ref Ref) (*Collider, bool) {
	if s == nil {
		return nil, false
	}
	c, ok := s.byRef[ref]
	return c, ok
}

// Len returns the number of registered colliders.
func (s *Space) Len() int {
	if s == nil {
		return 0
	}
	return len(s.byRef)
}

// SetLayer moves a collider onto another collision layer.
func (s *Space) SetLayer(ref Ref, layer Layer) bool {
	c, ok := s.Collider(ref)
	if !ok {
		return false
	}
	s.setLayer(c, layer)
	return true
}

func (s *Space) setLayer(c *Collider, layer Layer) {
	c.Layer = layer
	c.Shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, uint(layer), cp.ALL_CATEGORIES))
}

// FreeRotation lets the body spin, as a dangling actor does on its tether.
func (s *Space) FreeRotation(ref Ref) bool {
	c, ok := s.Collider(ref)
	if !ok {
		return false
	}
	if c.rotates {
		return true
	}
	w := c.HalfExtents.X * 2
	h := c.HalfExtents.Y * 2
	c.Body.SetMoment(cp.MomentForBox(c.mass, w, h))
	c.rotates = true
	return true
}

// FreezeRotation restores the upright, non-rotating body.
func (s *Space) FreezeRotation(ref Ref) bool {
	c, ok := s.Collider(ref)
	if !ok {
		return false
	}
	c.Body.SetMoment(cp.INFINITY)
	c.rotates = false
	c.Body.SetAngle(0)
	c.Body.SetAngularVelocity(0)
	return true
}

// RotationFree reports whether the body may currently rotate.
func (s *Space) RotationFree(ref Ref) bool {
	c, ok := s.Collider(ref)
	if !ok {
		return false
	}
	return c.rotates
}

// SetGravityScale scales world gravity for one body. 0 disables gravity.
func (s *Space) SetGravityScale(ref Ref, scale float64) bool {
	c, ok := s.Collider(ref)
	if !ok {
		return false
	}
	c.gravityScale = scale
	return true
}

// ApplyImpulse applies an impulse at the body's centre of gravity.
func (s *Space) ApplyImpulse(ref Ref, impulse cp.Vector) bool {
	c, ok := s.Collider(ref)
	if !ok {
		return false
	}
	c.Body.ApplyImpulseAtWorldPoint(impulse, c.Body.Position())
	return true
}

// Teleport moves a body and reinserts its shape into the spatial index so
// queries made before the next step see the new position.
func (s *Space) Teleport(ref Ref, pos cp.Vector) bool {
	c, ok := s.Collider(ref)
	if !ok {
		return false
	}
	c.Body.SetPosition(pos)
	s.space.RemoveShape(c.Shape)
	s.space.AddShape(c.Shape)
	return true
}

// Step advances the simulation.
func (s *Space) Step(dt float64) {
	if s == nil || s.space == nil || dt <= 0 {
		return
	}
	s.space.Step(dt)
}
