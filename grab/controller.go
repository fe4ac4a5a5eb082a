package grab

import (
	"log"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/robotgrabber/physics"
)

// State is the grab loop phase derived from the tether and actor flags.
type State int

const (
	// Idle: nothing tethered.
	Idle State = iota
	// TetheredLocked: actor pinned to the ground while the player draws a path.
	TetheredLocked
	// TetheredHover: actor unlocked and dangling on the tether.
	TetheredHover
)

func (s State) String() string {
	switch s {
	case TetheredLocked:
		return "locked"
	case TetheredHover:
		return "hover"
	default:
		return "idle"
	}
}

// Pointer is one frame of primary-button input in world space.
type Pointer struct {
	Pos      cp.Vector
	Pressed  bool
	Held     bool
	Released bool
	Moved    bool
	Modality InputModality
}

// View is what the grabber sprite and cursor should show this frame.
type View struct {
	GrabberPos    cp.Vector
	CursorVisible bool
	SpriteVisible bool
	Glow          bool
	// Beam points from BeamOrigin, the actor's anchor, to the tether's world end.
	Beam       cp.Vector
	BeamOrigin cp.Vector
	Tethered   bool
}

// Controller turns pointer edges into tether transitions. It is the only
// owner of its tether handle and of the tethered actor's lock and grab flags.
type Controller struct {
	cfg    Config
	space  *physics.Space
	actors Actors
	hooks  Hooks

	tether      physics.Handle
	collider    *physics.Collider
	actor       Actor
	secondClick bool

	view View
}

// NewController creates an idle controller.
func NewController(cfg Config, space *physics.Space, actors Actors, hooks Hooks) *Controller {
	return &Controller{
		cfg:    cfg,
		space:  space,
		actors: actors,
		hooks:  hooks,
	}
}

// SetConfig swaps tuning. The rest distance of an existing tether is kept.
func (c *Controller) SetConfig(cfg Config) {
	c.cfg = cfg
}

func (c *Controller) Config() Config {
	return c.cfg
}

// State returns the current grab phase.
func (c *Controller) State() State {
	if !c.tethered() {
		return Idle
	}
	if c.actor.Locked() {
		return TetheredLocked
	}
	return TetheredHover
}

// CurrentGrabbed returns the tethered actor's collider owner.
func (c *Controller) CurrentGrabbed() (physics.Ref, bool) {
	if !c.tethered() {
		return 0, false
	}
	return c.collider.Ref, true
}

// SecondClick reports whether the player pressed again on the tethered actor.
func (c *Controller) SecondClick() bool {
	return c.secondClick
}

// Tether returns the active tether handle, or the zero handle.
func (c *Controller) Tether() physics.Handle {
	return c.tether
}

// View returns the presentation state computed by the last Update.
func (c *Controller) View() View {
	return c.view
}

func (c *Controller) tethered() bool {
	return c.collider != nil && c.space.Tethers().Active(c.tether)
}

// Update runs one frame: presentation, press, drag, then release.
func (c *Controller) Update(p Pointer) {
	if c == nil || c.space == nil {
		return
	}
	if c.collider != nil && !c.tethered() {
		// the collider or its tether was removed under us
		c.clear()
	}

	c.updateView(p)

	if p.Pressed && p.Pos.Y < c.cfg.HUDExclusionY {
		if !c.tethered() {
			if !c.acquire(p) {
				return
			}
		} else {
			hit, ok := c.space.OverlapFirst(p.Pos, c.cfg.GrabRadius, c.cfg.GrabbedLayer)
			c.secondClick = ok && hit == c.collider
		}
	}

	if p.Held && c.tethered() {
		c.drag(p)
	}

	if p.Released {
		c.release()
	}
}

func (c *Controller) updateView(p Pointer) {
	tethered := c.tethered()
	v := &c.view
	v.Tethered = tethered

	if p.Modality == ModalityTouch {
		v.SpriteVisible = tethered
		v.Glow = tethered
	} else {
		v.SpriteVisible = p.Pos.Y < c.cfg.HUDExclusionY || tethered
		v.Glow = false
	}

	tracking := !tethered || c.secondClick
	if !v.CursorVisible {
		if tracking {
			v.GrabberPos = p.Pos
		} else {
			dist := c.space.Tethers().Distance(c.tether)
			v.GrabberPos = c.collider.Position().Add(cp.Vector{Y: dist})
		}
	}
	v.CursorVisible = p.Pos.Y > c.cfg.HUDExclusionY || !tracking

	v.Beam, v.BeamOrigin = cp.Vector{}, cp.Vector{}
	if tethered {
		v.Beam = c.space.Tethers().Displacement(c.tether)
		v.BeamOrigin = c.space.Tethers().WorldAnchor(c.tether)
	}
}

func (c *Controller) acquire(p Pointer) bool {
	col, ok := c.space.FindNearest(p.Pos, c.cfg.GrabRadius, c.cfg.GrabbableLayer, c.cfg.RequiredTag)
	if !ok {
		return false
	}
	actor, ok := c.actors.Actor(col.Ref)
	if !ok || actor == nil {
		return false
	}

	anchor := cp.Vector{Y: col.HalfExtents.Y}
	h, err := c.space.Tethers().Attach(col.Body, anchor, c.cfg.RestDistance(p.Modality))
	if err != nil {
		log.Printf("grab: attach tether to %d: %v", col.Ref, err)
		return false
	}

	actor.SetLocked(true)
	actor.ClearDrawnPath()
	actor.ClearTargeter()
	actor.PlayGrabSound()

	c.tether = h
	c.collider = col
	c.actor = actor
	c.secondClick = false

	if c.hooks.Grabbed != nil {
		c.hooks.Grabbed(col.Ref)
	}
	return true
}

func (c *Controller) drag(p Pointer) {
	if c.secondClick {
		c.space.FreeRotation(c.collider.Ref)
		c.space.Tethers().SetConnectedAnchor(c.tether, p.Pos)
		return
	}
	if c.actor.Locked() {
		c.actor.TryAddPathPoint(p.Pos)
	}
}

func (c *Controller) release() {
	if !c.tethered() {
		return
	}

	if c.actor.Locked() {
		c.actor.SetLocked(false)
		if c.actor.FinishDrawingPath() {
			c.releaseTether(cp.Vector{})
			return
		}
		c.actor.SetGrabbed(true)
		c.space.SetLayer(c.collider.Ref, c.cfg.GrabbedLayer)
	}

	if c.secondClick {
		pool := c.space.Tethers()
		force := ThrowForce(pool.Displacement(c.tether), pool.Distance(c.tether), c.cfg.DeadZoneFactor, c.cfg.ForceMultiplier)
		c.actor.SetDropForce(force)
		c.releaseTether(force)
	}
}

func (c *Controller) releaseTether(force cp.Vector) {
	ref := c.collider.Ref
	c.space.Tethers().Detach(c.tether)
	c.space.SetLayer(ref, c.cfg.GrabbableLayer)
	c.actor.SetGrabbed(false)
	c.clear()

	if c.hooks.Released != nil {
		c.hooks.Released(ref, force)
	}
}

func (c *Controller) clear() {
	c.tether = physics.Handle{}
	c.collider = nil
	c.actor = nil
	c.secondClick = false
}

// ThrowForce scales the tether displacement d into a throw, or returns zero
// when |d|² is within deadZoneFactor·rest² of a taut tether.
func ThrowForce(d cp.Vector, rest, deadZoneFactor, multiplier float64) cp.Vector {
	if d.LengthSq() <= deadZoneFactor*rest*rest {
		return cp.Vector{}
	}
	return d.Mult(multiplier)
}
