package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/robotgrabber/ecs"
	"github.com/milk9111/robotgrabber/ecs/component"
	"github.com/milk9111/robotgrabber/grab"
	"github.com/milk9111/robotgrabber/physics"
)

// GrabberSystem feeds the pointer to the grab controller and publishes its
// view on the grabber entity.
type GrabberSystem struct {
	ctrl  *grab.Controller
	world *ecs.World
}

func NewGrabberSystem(space *physics.Space, cfg grab.Config) *GrabberSystem {
	g := &GrabberSystem{}
	hooks := grab.Hooks{
		Grabbed: func(ref physics.Ref) {
			g.world.Events().Push(ecs.Event{Kind: ecs.EventGrabbed, Entity: ecs.Entity(ref)})
		},
		Released: func(ref physics.Ref, force cp.Vector) {
			g.world.Events().Push(ecs.Event{Kind: ecs.EventReleased, Entity: ecs.Entity(ref), Force: force})
		},
	}
	g.ctrl = grab.NewController(cfg, space, grab.ActorsFunc(g.actor), hooks)
	return g
}

func (g *GrabberSystem) Controller() *grab.Controller {
	if g == nil {
		return nil
	}
	return g.ctrl
}

func (g *GrabberSystem) SetConfig(cfg grab.Config) {
	g.ctrl.SetConfig(cfg)
}

func (g *GrabberSystem) Update(w *ecs.World) {
	if g == nil || w == nil {
		return
	}
	g.world = w

	e, ok := w.First(component.GrabberTagComponent.Kind(), component.PointerComponent.Kind())
	if !ok {
		return
	}
	ptr, ok := ecs.Get(w, e, component.PointerComponent)
	if !ok {
		return
	}

	modality := grab.ModalityMouse
	if ptr.Touch {
		modality = grab.ModalityTouch
	}
	g.ctrl.Update(grab.Pointer{
		Pos:      ptr.World,
		Pressed:  ptr.Pressed,
		Held:     ptr.Held,
		Released: ptr.Released,
		Moved:    ptr.Moved,
		Modality: modality,
	})

	view, ok := ecs.GetPtr(w, e, component.GrabberComponent)
	if !ok {
		return
	}
	v := g.ctrl.View()
	view.Pos = v.GrabberPos
	view.CursorVisible = v.CursorVisible
	view.SpriteVisible = v.SpriteVisible
	view.Glow = v.Glow
	view.Beam = v.Beam
	view.BeamOrigin = v.BeamOrigin
	view.Tethered = v.Tethered
	view.State = g.ctrl.State().String()
	view.Grabbed, view.HasGrabbed = g.ctrl.CurrentGrabbed()
	view.Touch = ptr.Touch
}

func (g *GrabberSystem) actor(ref physics.Ref) (grab.Actor, bool) {
	e := ecs.Entity(ref)
	if g.world == nil || !g.world.IsAlive(e) || !ecs.Has(g.world, e, component.RobotComponent) {
		return nil, false
	}
	return robotActor{w: g.world, e: e}, true
}

// robotActor exposes a robot entity's components to the grab controller.
type robotActor struct {
	w *ecs.World
	e ecs.Entity
}

func (a robotActor) robot() *component.Robot {
	r, ok := ecs.GetPtr(a.w, a.e, component.RobotComponent)
	if !ok {
		return &component.Robot{}
	}
	return r
}

func (a robotActor) Locked() bool {
	return a.robot().Locked
}

func (a robotActor) SetLocked(locked bool) {
	a.robot().Locked = locked
}

func (a robotActor) Grabbed() bool {
	return a.robot().Grabbed
}

func (a robotActor) SetGrabbed(grabbed bool) {
	a.robot().Grabbed = grabbed
}

func (a robotActor) TryAddPathPoint(p cp.Vector) {
	if path, ok := ecs.GetPtr(a.w, a.e, component.DrawnPathComponent); ok {
		path.TryAddPoint(p)
	}
}

func (a robotActor) ClearDrawnPath() {
	if path, ok := ecs.GetPtr(a.w, a.e, component.DrawnPathComponent); ok {
		path.Clear()
	}
}

func (a robotActor) FinishDrawingPath() bool {
	path, ok := ecs.GetPtr(a.w, a.e, component.DrawnPathComponent)
	if !ok {
		return false
	}
	return path.Finish()
}

func (a robotActor) ClearTargeter() {
	if t, ok := ecs.GetPtr(a.w, a.e, component.TargeterComponent); ok {
		t.Active = false
	}
}

func (a robotActor) SetDropForce(force cp.Vector) {
	r := a.robot()
	r.DropForce = force
	r.HasDropForce = true
}

func (a robotActor) PlayGrabSound() {
	if audioComp, ok := ecs.GetPtr(a.w, a.e, component.AudioComponent); ok {
		audioComp.Request("grab")
	}
}
