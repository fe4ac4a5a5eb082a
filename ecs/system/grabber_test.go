package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/robotgrabber/ecs"
	"github.com/milk9111/robotgrabber/ecs/component"
	"github.com/milk9111/robotgrabber/grab"
	"github.com/milk9111/robotgrabber/physics"
)

type grabScene struct {
	w       *ecs.World
	space   *physics.Space
	sys     *GrabberSystem
	robot   ecs.Entity
	grabber ecs.Entity
}

func newGrabScene(t *testing.T) *grabScene {
	t.Helper()
	s := &grabScene{
		w:     ecs.NewWorld(),
		space: physics.NewSpace(physics.Config{MaxTethers: 1}),
	}
	s.sys = NewGrabberSystem(s.space, grab.DefaultConfig())

	s.robot = s.w.CreateEntity()
	s.space.AddBox(physics.Ref(s.robot), "robot", physics.LayerGrabbable, cp.Vector{}, 1, 1, 1, 0.5)
	_ = ecs.Add(s.w, s.robot, component.RobotComponent, component.Robot{MoveSpeed: 2, HoverHeight: 1})
	_ = ecs.Add(s.w, s.robot, component.DrawnPathComponent, component.DrawnPath{MinSpacing: 0.25, MinPoints: 2})
	_ = ecs.Add(s.w, s.robot, component.TargeterComponent, component.Targeter{Target: cp.Vector{X: 4}, Active: true})
	_ = ecs.Add(s.w, s.robot, component.AudioComponent, component.Audio{
		Names: []string{"grab", "throw", "land"},
		Play:  make([]bool, 3),
	})

	s.grabber = s.w.CreateEntity()
	_ = ecs.Add(s.w, s.grabber, component.GrabberTagComponent, component.GrabberTag{})
	_ = ecs.Add(s.w, s.grabber, component.PointerComponent, component.Pointer{})
	_ = ecs.Add(s.w, s.grabber, component.GrabberComponent, component.Grabber{})
	return s
}

func (s *grabScene) frame(x, y float64, pressed, held, released bool) {
	ptr, _ := ecs.GetPtr(s.w, s.grabber, component.PointerComponent)
	next := cp.Vector{X: x, Y: y}
	ptr.Moved = next != ptr.World
	ptr.World = next
	ptr.Pressed = pressed
	ptr.Held = held
	ptr.Released = released
	s.sys.Update(s.w)
}

func TestGrabberSystemGrabAndThrow(t *testing.T) {
	s := newGrabScene(t)

	s.frame(0, 0.5, true, true, false)

	robot, _ := ecs.Get(s.w, s.robot, component.RobotComponent)
	if !robot.Locked {
		t.Fatalf("expected robot locked after grab")
	}
	if tg, _ := ecs.Get(s.w, s.robot, component.TargeterComponent); tg.Active {
		t.Fatalf("grab should clear the targeter")
	}
	if a, _ := ecs.Get(s.w, s.robot, component.AudioComponent); !a.Play[0] {
		t.Fatalf("expected grab clip requested")
	}

	s.frame(0, 0.5, false, false, true)

	robot, _ = ecs.Get(s.w, s.robot, component.RobotComponent)
	if robot.Locked || !robot.Grabbed {
		t.Fatalf("expected hovering robot, got %+v", robot)
	}
	view, _ := ecs.Get(s.w, s.grabber, component.GrabberComponent)
	if !view.Tethered || view.State != "hover" || !view.HasGrabbed || view.Grabbed != physics.Ref(s.robot) {
		t.Fatalf("unexpected grabber view %+v", view)
	}

	s.frame(0, 0.5, true, true, false)
	s.frame(3, 4.5, false, true, false)
	s.frame(3, 4.5, false, false, true)

	robot, _ = ecs.Get(s.w, s.robot, component.RobotComponent)
	if !robot.HasDropForce || robot.DropForce != (cp.Vector{X: 6, Y: 8}) {
		t.Fatalf("expected drop force (6, 8), got %+v", robot)
	}
	if robot.Grabbed {
		t.Fatalf("thrown robot should not be grabbed")
	}

	events := s.w.Events().Drain()
	if len(events) != 2 {
		t.Fatalf("expected grabbed and released events, got %+v", events)
	}
	if events[0].Kind != ecs.EventGrabbed || events[0].Entity != s.robot {
		t.Fatalf("unexpected first event %+v", events[0])
	}
	if events[1].Kind != ecs.EventReleased || events[1].Force != (cp.Vector{X: 6, Y: 8}) {
		t.Fatalf("unexpected second event %+v", events[1])
	}

	view, _ = ecs.Get(s.w, s.grabber, component.GrabberComponent)
	if view.Tethered || view.HasGrabbed || view.State != "idle" {
		t.Fatalf("expected idle grabber, got %+v", view)
	}
}

func TestGrabberSystemDrawsPath(t *testing.T) {
	s := newGrabScene(t)

	s.frame(0, 0.5, true, true, false)
	s.frame(1, 0.5, false, true, false)
	s.frame(2, 0.5, false, true, false)
	s.frame(2, 0.5, false, false, true)

	path, _ := ecs.Get(s.w, s.robot, component.DrawnPathComponent)
	if !path.Following || len(path.Points) != 3 {
		t.Fatalf("expected a followed 3 point path, got %+v", path)
	}
	robot, _ := ecs.Get(s.w, s.robot, component.RobotComponent)
	if robot.Locked || robot.Grabbed {
		t.Fatalf("path release should free the robot, got %+v", robot)
	}
	if s.space.Tethers().Len() != 0 {
		t.Fatalf("expected tether released")
	}
}

func TestGrabberSystemIgnoresNonRobots(t *testing.T) {
	s := newGrabScene(t)
	// a collider with the right tag but no robot component
	crate := s.w.CreateEntity()
	s.space.AddBox(physics.Ref(crate), "robot", physics.LayerGrabbable, cp.Vector{X: -3}, 1, 1, 1, 0.5)
	s.space.Remove(physics.Ref(s.robot))

	s.frame(-3, 0.5, true, true, false)

	if _, ok := s.sys.Controller().CurrentGrabbed(); ok {
		t.Fatalf("entity without a robot component must not be grabbed")
	}
}

func TestClipForEvent(t *testing.T) {
	tests := []struct {
		name   string
		event  ecs.Event
		want   string
		wantOK bool
	}{
		{name: "grabbed", event: ecs.Event{Kind: ecs.EventGrabbed}},
		{name: "dropped", event: ecs.Event{Kind: ecs.EventReleased}},
		{name: "thrown", event: ecs.Event{Kind: ecs.EventReleased, Force: cp.Vector{X: 1}}, want: "throw", wantOK: true},
		{name: "grounded", event: ecs.Event{Kind: ecs.EventGrounded}, want: "land", wantOK: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := clipForEvent(tc.event)
			if got != tc.want || ok != tc.wantOK {
				t.Fatalf("expected %q ok=%v, got %q ok=%v", tc.want, tc.wantOK, got, ok)
			}
		})
	}
}

func TestAudioSystemRequestsFromEvents(t *testing.T) {
	w := ecs.NewWorld()
	e := w.CreateEntity()
	_ = ecs.Add(w, e, component.AudioComponent, component.Audio{
		Names: []string{"grab", "throw", "land"},
		Play:  make([]bool, 3),
	})
	w.Events().Push(ecs.Event{Kind: ecs.EventReleased, Entity: e, Force: cp.Vector{Y: 3}})

	// no players are attached, so requests stay pending
	NewAudioSystem().Update(w)

	a, _ := ecs.Get(w, e, component.AudioComponent)
	if a.Play[0] || !a.Play[1] || a.Play[2] {
		t.Fatalf("expected only throw requested, got %v", a.Play)
	}
	if w.Events().Len() != 0 {
		t.Fatalf("audio system should drain the queue")
	}
}
