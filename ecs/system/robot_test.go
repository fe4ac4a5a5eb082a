package system

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/robotgrabber/common"
	"github.com/milk9111/robotgrabber/ecs"
	"github.com/milk9111/robotgrabber/ecs/component"
	"github.com/milk9111/robotgrabber/physics"
)

func newRobot(t *testing.T, w *ecs.World, space *physics.Space, pos cp.Vector) ecs.Entity {
	t.Helper()
	e := w.CreateEntity()
	space.AddBox(physics.Ref(e), "robot", physics.LayerGrabbable, pos, 1, 1, 1, 0.5)
	space.SetGravityScale(physics.Ref(e), 0)
	_ = ecs.Add(w, e, component.TransformComponent, component.Transform{X: pos.X, Y: pos.Y})
	_ = ecs.Add(w, e, component.RobotComponent, component.Robot{MoveSpeed: 3, HoverHeight: 1})
	_ = ecs.Add(w, e, component.DrawnPathComponent, component.DrawnPath{MinSpacing: 0.25, MinPoints: 2})
	_ = ecs.Add(w, e, component.TargeterComponent, component.Targeter{})
	_ = ecs.Add(w, e, component.ShadowComponent, component.Shadow{Shadow: physics.NewShadow(0.5, -20), LaunchScale: 1})
	return e
}

func TestRobotWalksPath(t *testing.T) {
	w := ecs.NewWorld()
	space := physics.NewSpace(physics.Config{})
	sys := NewRobotSystem(space)
	e := newRobot(t, w, space, cp.Vector{})

	path, _ := ecs.GetPtr(w, e, component.DrawnPathComponent)
	path.TryAddPoint(cp.Vector{X: 1})
	path.TryAddPoint(cp.Vector{X: 2})
	path.Finish()

	sys.Update(w)

	c, _ := space.Collider(physics.Ref(e))
	if v := c.Body.Velocity(); math.Abs(v.X-3) > 1e-9 || math.Abs(v.Y) > 1e-9 {
		t.Fatalf("expected velocity (3, 0) toward the first waypoint, got %v", v)
	}
}

func TestRobotSteerStopsOnTarget(t *testing.T) {
	w := ecs.NewWorld()
	space := physics.NewSpace(physics.Config{})
	sys := NewRobotSystem(space)
	e := newRobot(t, w, space, cp.Vector{})

	tg, _ := ecs.GetPtr(w, e, component.TargeterComponent)
	tg.Target = cp.Vector{X: 0.02}
	tg.Active = true

	sys.Update(w)

	if tg, _ := ecs.Get(w, e, component.TargeterComponent); tg.Active {
		t.Fatalf("targeter should clear on arrival")
	}
	c, _ := space.Collider(physics.Ref(e))
	if v := c.Body.Velocity(); v.Length() != 0 {
		t.Fatalf("expected robot to stop, got %v", v)
	}
}

func TestRobotLockedHoldsStill(t *testing.T) {
	w := ecs.NewWorld()
	space := physics.NewSpace(physics.Config{})
	sys := NewRobotSystem(space)
	e := newRobot(t, w, space, cp.Vector{})

	r, _ := ecs.GetPtr(w, e, component.RobotComponent)
	r.Locked = true
	tg, _ := ecs.GetPtr(w, e, component.TargeterComponent)
	tg.Target = cp.Vector{X: 5}
	tg.Active = true

	sys.Update(w)

	c, _ := space.Collider(physics.Ref(e))
	if v := c.Body.Velocity(); v.Length() != 0 {
		t.Fatalf("locked robot moved with %v", v)
	}
}

func TestRobotLaunchAndLand(t *testing.T) {
	w := ecs.NewWorld()
	space := physics.NewSpace(physics.Config{Gravity: cp.Vector{Y: -9.8}})
	robots := NewRobotSystem(space)
	shadows := NewShadowSystem(space)
	e := newRobot(t, w, space, cp.Vector{})

	sh, _ := ecs.Get(w, e, component.ShadowComponent)
	sh.Shadow.SetHeight(1)

	r, _ := ecs.GetPtr(w, e, component.RobotComponent)
	r.DropForce = cp.Vector{X: 2}
	r.HasDropForce = true

	robots.Update(w)

	r, _ = ecs.GetPtr(w, e, component.RobotComponent)
	if !r.Airborne || r.HasDropForce {
		t.Fatalf("expected airborne robot after launch, got %+v", r)
	}
	if sh.Shadow.IsKinematic() {
		t.Fatalf("launched shadow should integrate height")
	}
	c, _ := space.Collider(physics.Ref(e))
	if v := c.Body.Velocity(); v.X <= 0 {
		t.Fatalf("expected impulse along +x, got %v", v)
	}

	landed := false
	for i := 0; i < 2*common.TPS; i++ {
		shadows.Update(w)
		for _, evt := range w.Events().Drain() {
			if evt.Kind == ecs.EventGrounded && evt.Entity == e {
				landed = true
			}
		}
		if landed {
			break
		}
	}
	if !landed {
		t.Fatalf("expected robot to land within two seconds")
	}

	r, _ = ecs.GetPtr(w, e, component.RobotComponent)
	if r.Airborne || !sh.Shadow.IsKinematic() || sh.Shadow.Height() != 0 {
		t.Fatalf("expected grounded robot, got %+v height=%v", r, sh.Shadow.Height())
	}
	if v := c.Body.Velocity(); v.Length() != 0 {
		t.Fatalf("landed robot should stop, got %v", v)
	}
}

func TestRobotCaughtMidFlight(t *testing.T) {
	w := ecs.NewWorld()
	space := physics.NewSpace(physics.Config{Gravity: cp.Vector{Y: -9.8}})
	sys := NewRobotSystem(space)
	e := newRobot(t, w, space, cp.Vector{})

	r, _ := ecs.GetPtr(w, e, component.RobotComponent)
	r.Airborne = true
	r.Grabbed = true

	sys.Update(w)

	r, _ = ecs.GetPtr(w, e, component.RobotComponent)
	if r.Airborne {
		t.Fatalf("catching a robot should end its flight")
	}
	sh, _ := ecs.Get(w, e, component.ShadowComponent)
	if sh.Shadow.Height() != 1 {
		t.Fatalf("grabbed robot should hover at 1, got %v", sh.Shadow.Height())
	}
	if w.Events().Len() != 0 {
		t.Fatalf("a catch is not a landing")
	}
}

func TestApplySample(t *testing.T) {
	cam := component.Camera{X: 2, Y: 1, PixelsPerUnit: 40}
	var ptr component.Pointer

	applySample(&ptr, pointerSample{x: common.BaseWidth / 2, y: common.BaseHeight / 2, pressed: true, held: true}, cam)
	if ptr.World != (cp.Vector{X: 2, Y: 1}) || !ptr.Pressed || !ptr.Held || !ptr.Moved {
		t.Fatalf("unexpected pointer %+v", ptr)
	}

	applySample(&ptr, pointerSample{x: common.BaseWidth / 2, y: common.BaseHeight/2 - 40, held: true, touch: true}, cam)
	if ptr.World != (cp.Vector{X: 2, Y: 2}) || ptr.Pressed || !ptr.Moved || !ptr.Touch {
		t.Fatalf("screen up should be world up, got %+v", ptr)
	}

	applySample(&ptr, pointerSample{x: common.BaseWidth / 2, y: common.BaseHeight/2 - 40, released: true}, cam)
	if ptr.Moved || !ptr.Released || ptr.Held {
		t.Fatalf("unexpected release sample %+v", ptr)
	}
}

func TestScreenWorldRoundTrip(t *testing.T) {
	cam := component.Camera{X: -3, Y: 4, PixelsPerUnit: 45}
	for _, p := range []cp.Vector{{}, {X: 1.5, Y: -2}, {X: -10, Y: 7.25}} {
		sx, sy := WorldToScreen(cam, p)
		if got := ScreenToWorld(cam, sx, sy); got.Distance(p) > 1e-9 {
			t.Fatalf("round trip of %v gave %v", p, got)
		}
	}
}
