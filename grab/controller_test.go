package grab

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/robotgrabber/physics"
)

type fakeActor struct {
	locked    bool
	grabbed   bool
	pathValid bool

	points          []cp.Vector
	pathClears      int
	targeterClears  int
	grabSounds      int
	dropForce       cp.Vector
	dropForceWasSet bool
}

func (a *fakeActor) Locked() bool                { return a.locked }
func (a *fakeActor) SetLocked(locked bool)       { a.locked = locked }
func (a *fakeActor) Grabbed() bool               { return a.grabbed }
func (a *fakeActor) SetGrabbed(grabbed bool)     { a.grabbed = grabbed }
func (a *fakeActor) TryAddPathPoint(p cp.Vector) { a.points = append(a.points, p) }
func (a *fakeActor) ClearDrawnPath()             { a.pathClears++; a.points = nil }
func (a *fakeActor) FinishDrawingPath() bool     { return a.pathValid }
func (a *fakeActor) ClearTargeter()              { a.targeterClears++ }
func (a *fakeActor) PlayGrabSound()              { a.grabSounds++ }
func (a *fakeActor) SetDropForce(force cp.Vector) {
	a.dropForce = force
	a.dropForceWasSet = true
}

type harness struct {
	space    *physics.Space
	ctrl     *Controller
	actors   map[physics.Ref]*fakeActor
	grabbed  []physics.Ref
	released []cp.Vector
}

func newHarness(t *testing.T, robots map[physics.Ref]cp.Vector) *harness {
	t.Helper()
	h := &harness{
		space:  physics.NewSpace(physics.Config{MaxTethers: 1}),
		actors: make(map[physics.Ref]*fakeActor),
	}
	for ref, pos := range robots {
		h.space.AddBox(ref, "robot", physics.LayerGrabbable, pos, 1, 1, 1, 0.5)
		h.actors[ref] = &fakeActor{}
	}
	actors := ActorsFunc(func(ref physics.Ref) (Actor, bool) {
		a, ok := h.actors[ref]
		return a, ok
	})
	hooks := Hooks{
		Grabbed:  func(ref physics.Ref) { h.grabbed = append(h.grabbed, ref) },
		Released: func(ref physics.Ref, force cp.Vector) { h.released = append(h.released, force) },
	}
	h.ctrl = NewController(DefaultConfig(), h.space, actors, hooks)
	return h
}

func press(x, y float64) Pointer {
	return Pointer{Pos: cp.Vector{X: x, Y: y}, Pressed: true, Held: true}
}

func hold(x, y float64) Pointer {
	return Pointer{Pos: cp.Vector{X: x, Y: y}, Held: true, Moved: true}
}

func release(x, y float64) Pointer {
	return Pointer{Pos: cp.Vector{X: x, Y: y}, Released: true}
}

func TestAcquireNothingInRadius(t *testing.T) {
	h := newHarness(t, map[physics.Ref]cp.Vector{1: {X: 40}})

	h.ctrl.Update(press(0, 0))

	if h.ctrl.State() != Idle {
		t.Fatalf("expected idle, got %v", h.ctrl.State())
	}
	if _, ok := h.ctrl.CurrentGrabbed(); ok {
		t.Fatalf("nothing should be grabbed")
	}
	if h.space.Tethers().Len() != 0 {
		t.Fatalf("no tether should exist")
	}
	if len(h.grabbed) != 0 {
		t.Fatalf("grabbed hook fired without a hit")
	}
}

func TestAcquireNearest(t *testing.T) {
	h := newHarness(t, map[physics.Ref]cp.Vector{
		1: {X: 2},
		2: {X: -1},
	})

	h.ctrl.Update(press(0, 0))

	ref, ok := h.ctrl.CurrentGrabbed()
	if !ok || ref != 2 {
		t.Fatalf("expected robot 2, got %d ok=%v", ref, ok)
	}
	if h.ctrl.State() != TetheredLocked {
		t.Fatalf("expected locked, got %v", h.ctrl.State())
	}
	a := h.actors[2]
	if !a.locked || a.pathClears != 1 || a.targeterClears != 1 || a.grabSounds != 1 {
		t.Fatalf("unexpected actor state after grab: %+v", a)
	}
	if len(h.grabbed) != 1 || h.grabbed[0] != 2 {
		t.Fatalf("expected grabbed hook for 2, got %v", h.grabbed)
	}

	pool := h.space.Tethers()
	tether := h.ctrl.Tether()
	if got := pool.Distance(tether); got != 0.1 {
		t.Fatalf("expected mouse rest distance 0.1, got %v", got)
	}
	if got := pool.Anchor(tether); got != (cp.Vector{Y: 0.5}) {
		t.Fatalf("expected anchor on top edge, got %v", got)
	}
	want := cp.Vector{X: -1, Y: 0.6}
	if got := pool.ConnectedAnchor(tether); got.Sub(want).Length() > 1e-12 {
		t.Fatalf("expected connected anchor %v, got %v", want, got)
	}
}

func TestAcquireTouchDistance(t *testing.T) {
	h := newHarness(t, map[physics.Ref]cp.Vector{1: {}})
	p := press(0, 0)
	p.Modality = ModalityTouch

	h.ctrl.Update(p)

	if got := h.space.Tethers().Distance(h.ctrl.Tether()); got != 1 {
		t.Fatalf("expected touch rest distance 1, got %v", got)
	}
}

func TestPressAboveHUDIgnored(t *testing.T) {
	h := newHarness(t, map[physics.Ref]cp.Vector{1: {Y: 6.8}})

	h.ctrl.Update(press(0, 7.2))

	if h.ctrl.State() != Idle {
		t.Fatalf("press above HUD threshold must not grab")
	}
}

func TestPathDrawAndComplete(t *testing.T) {
	h := newHarness(t, map[physics.Ref]cp.Vector{1: {}})
	a := h.actors[1]
	a.pathValid = true

	h.ctrl.Update(press(0, 0))
	connected := h.space.Tethers().ConnectedAnchor(h.ctrl.Tether())
	h.ctrl.Update(hold(1, 0))
	h.ctrl.Update(hold(2, 1))

	if len(a.points) != 3 {
		t.Fatalf("expected 3 path points, got %v", a.points)
	}
	if got := h.space.Tethers().ConnectedAnchor(h.ctrl.Tether()); got != connected {
		t.Fatalf("path drawing must not move the tether, got %v", got)
	}

	h.ctrl.Update(release(2, 1))

	if h.ctrl.State() != Idle {
		t.Fatalf("expected idle after completed path, got %v", h.ctrl.State())
	}
	if a.locked || a.grabbed {
		t.Fatalf("actor flags must be cleared: %+v", a)
	}
	if h.space.Tethers().Len() != 0 {
		t.Fatalf("tether must be detached")
	}
	if len(h.released) != 1 || h.released[0] != (cp.Vector{}) {
		t.Fatalf("expected one zero-force release, got %v", h.released)
	}
	if a.dropForceWasSet {
		t.Fatalf("path release must not hand out a drop force")
	}
}

func TestShortPathHovers(t *testing.T) {
	h := newHarness(t, map[physics.Ref]cp.Vector{1: {}})
	a := h.actors[1]

	h.ctrl.Update(press(0, 0))
	h.ctrl.Update(release(0, 0))

	if h.ctrl.State() != TetheredHover {
		t.Fatalf("expected hover, got %v", h.ctrl.State())
	}
	if !a.grabbed || a.locked {
		t.Fatalf("expected grabbed and unlocked actor: %+v", a)
	}
	c, _ := h.space.Collider(1)
	if c.Layer != physics.LayerGrabbed {
		t.Fatalf("hovering actor should sit on the grabbed layer, got %v", c.Layer)
	}
	if h.space.Tethers().Len() != 1 {
		t.Fatalf("tether must stay attached while hovering")
	}
	if len(h.released) != 0 {
		t.Fatalf("hover must not fire the released hook")
	}
}

func TestSecondClickThrow(t *testing.T) {
	h := newHarness(t, map[physics.Ref]cp.Vector{1: {}})
	a := h.actors[1]

	h.ctrl.Update(press(0, 0))
	h.ctrl.Update(release(0, 0))

	h.ctrl.Update(press(0.2, 0.1))
	if !h.ctrl.SecondClick() {
		t.Fatalf("press on the hovering actor should be a second click")
	}
	if !h.space.RotationFree(1) {
		t.Fatalf("second click drag should free the actor's rotation")
	}

	h.ctrl.Update(hold(3, 4.5))
	if got := h.space.Tethers().ConnectedAnchor(h.ctrl.Tether()); got != (cp.Vector{X: 3, Y: 4.5}) {
		t.Fatalf("connected anchor should follow the pointer, got %v", got)
	}

	h.ctrl.Update(release(3, 4.5))

	want := cp.Vector{X: 6, Y: 8}
	if !a.dropForceWasSet || a.dropForce != want {
		t.Fatalf("expected drop force %v, got %v", want, a.dropForce)
	}
	if h.ctrl.State() != Idle || h.space.Tethers().Len() != 0 {
		t.Fatalf("throw must fully release")
	}
	c, _ := h.space.Collider(1)
	if c.Layer != physics.LayerGrabbable {
		t.Fatalf("throw must restore the grabbable layer, got %v", c.Layer)
	}
	if len(h.released) != 1 || h.released[0] != want {
		t.Fatalf("expected released hook with %v, got %v", want, h.released)
	}
	if h.ctrl.SecondClick() {
		t.Fatalf("second click must reset on release")
	}
}

func TestSecondClickDeadZone(t *testing.T) {
	h := newHarness(t, map[physics.Ref]cp.Vector{1: {}})
	a := h.actors[1]

	h.ctrl.Update(press(0, 0))
	h.ctrl.Update(release(0, 0))
	h.ctrl.Update(press(0, 0.6))
	h.ctrl.Update(release(0, 0.6))

	if !a.dropForceWasSet || a.dropForce != (cp.Vector{}) {
		t.Fatalf("near-taut release should throw with zero force, got %v", a.dropForce)
	}
	if h.ctrl.State() != Idle {
		t.Fatalf("expected idle, got %v", h.ctrl.State())
	}
}

func TestPressAwayFromHoveringActor(t *testing.T) {
	h := newHarness(t, map[physics.Ref]cp.Vector{1: {}})

	h.ctrl.Update(press(0, 0))
	h.ctrl.Update(release(0, 0))
	h.ctrl.Update(press(0, -20))
	if h.ctrl.SecondClick() {
		t.Fatalf("press far from the actor is not a second click")
	}
	h.ctrl.Update(release(0, -20))

	if h.ctrl.State() != TetheredHover {
		t.Fatalf("actor should keep hovering, got %v", h.ctrl.State())
	}
	if h.space.Tethers().Len() != 1 {
		t.Fatalf("pressing again must never attach a second tether")
	}
}

func TestReleaseWithoutTetherIsNoop(t *testing.T) {
	h := newHarness(t, map[physics.Ref]cp.Vector{1: {}})

	h.ctrl.Update(release(0, 0))

	if len(h.released) != 0 || h.ctrl.State() != Idle {
		t.Fatalf("release with nothing tethered must do nothing")
	}
}

func TestRemovedColliderClearsController(t *testing.T) {
	h := newHarness(t, map[physics.Ref]cp.Vector{1: {}})

	h.ctrl.Update(press(0, 0))
	h.space.Remove(1)
	h.ctrl.Update(Pointer{})

	if h.ctrl.State() != Idle {
		t.Fatalf("controller should drop a vanished actor, got %v", h.ctrl.State())
	}
}

func TestViewTracking(t *testing.T) {
	h := newHarness(t, map[physics.Ref]cp.Vector{1: {X: 1, Y: 1}})

	h.ctrl.Update(Pointer{Pos: cp.Vector{X: 5, Y: 2}, Moved: true})
	v := h.ctrl.View()
	if v.GrabberPos != (cp.Vector{X: 5, Y: 2}) || v.CursorVisible || !v.SpriteVisible {
		t.Fatalf("idle grabber should follow a hidden cursor, got %+v", v)
	}

	h.ctrl.Update(Pointer{Pos: cp.Vector{X: 5, Y: 8}, Moved: true})
	v = h.ctrl.View()
	if !v.CursorVisible || v.SpriteVisible {
		t.Fatalf("pointer over the HUD should show the cursor and hide the sprite, got %+v", v)
	}

	h.ctrl.Update(press(1, 1))
	h.ctrl.Update(release(1, 1))
	h.ctrl.Update(Pointer{Pos: cp.Vector{X: 3, Y: 3}, Moved: true})
	v = h.ctrl.View()
	if !v.CursorVisible || !v.Tethered {
		t.Fatalf("hovering actor should show the cursor, got %+v", v)
	}
}

func TestViewDanglesAboveActor(t *testing.T) {
	h := newHarness(t, map[physics.Ref]cp.Vector{1: {X: 1, Y: 1}})

	h.ctrl.Update(press(1, 1))
	// cursor still hidden from the press frame, so this frame pins the sprite
	h.ctrl.Update(hold(4, 4))

	want := cp.Vector{X: 1, Y: 1.1}
	if got := h.ctrl.View().GrabberPos; got.Sub(want).Length() > 1e-12 {
		t.Fatalf("expected grabber dangling at %v, got %v", want, got)
	}
}

func TestViewTouchGlow(t *testing.T) {
	h := newHarness(t, map[physics.Ref]cp.Vector{1: {}})

	p := press(0, 0)
	p.Modality = ModalityTouch
	h.ctrl.Update(p)
	if h.ctrl.View().SpriteVisible || h.ctrl.View().Glow {
		t.Fatalf("touch grabber is hidden until something is tethered")
	}

	p = hold(0, 0)
	p.Modality = ModalityTouch
	h.ctrl.Update(p)
	if !h.ctrl.View().SpriteVisible || !h.ctrl.View().Glow {
		t.Fatalf("touch grabber should glow while tethered")
	}
}

func TestThrowForce(t *testing.T) {
	const rest = 0.5
	cases := []struct {
		name string
		d    cp.Vector
		want cp.Vector
	}{
		{name: "zero", d: cp.Vector{}, want: cp.Vector{}},
		{name: "inside_dead_zone", d: cp.Vector{X: 0.3, Y: 0.4}, want: cp.Vector{}},
		{name: "on_dead_zone_edge", d: cp.Vector{Y: 0.5}, want: cp.Vector{}},
		{name: "three_rest_squared", d: cp.Vector{X: 0.5 * math.Sqrt(3)}, want: cp.Vector{X: math.Sqrt(3)}},
		{name: "just_outside", d: cp.Vector{X: 0.6, Y: 0.5}, want: cp.Vector{X: 1.2, Y: 1}},
		{name: "far", d: cp.Vector{X: -3, Y: 4}, want: cp.Vector{X: -6, Y: 8}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := ThrowForce(c.d, rest, 2, 2); got != c.want {
				t.Fatalf("expected %v, got %v", c.want, got)
			}
		})
	}
}
