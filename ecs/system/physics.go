package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/robotgrabber/common"
	"github.com/milk9111/robotgrabber/ecs"
	"github.com/milk9111/robotgrabber/ecs/component"
	"github.com/milk9111/robotgrabber/physics"
)

// PhysicsSystem keeps the physics space in step with the world: it registers
// new bodies, drops bodies of destroyed entities, advances one fixed step and
// copies poses back into transforms.
type PhysicsSystem struct {
	space *physics.Space
	refs  map[ecs.Entity]struct{}
	dt    float64
}

func NewPhysicsSystem(space *physics.Space) *PhysicsSystem {
	return &PhysicsSystem{
		space: space,
		refs:  make(map[ecs.Entity]struct{}),
		dt:    common.PhysicsDT,
	}
}

func (ps *PhysicsSystem) Space() *physics.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || ps.space == nil || w == nil {
		return
	}

	ps.Sync(w)
	ps.space.Step(ps.dt)
	ps.syncTransforms(w)
}

// Sync registers and unregisters colliders without stepping.
func (ps *PhysicsSystem) Sync(w *ecs.World) {
	for e := range ps.refs {
		if w.IsAlive(e) && ecs.Has(w, e, component.PhysicsBodyComponent) {
			continue
		}
		ps.space.Remove(physics.Ref(e))
		delete(ps.refs, e)
	}

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, body *component.PhysicsBody, t *component.Transform) {
		if body.Registered {
			if _, ok := ps.refs[e]; ok {
				return
			}
		}
		layer := body.Layer
		if layer == 0 {
			layer = physics.LayerGrabbable
		}
		c := ps.space.AddBox(physics.Ref(e), body.Tag, layer, cp.Vector{X: t.X, Y: t.Y}, body.Width, body.Height, body.Mass, body.Friction)
		if c == nil {
			return
		}
		body.Registered = true
		ps.refs[e] = struct{}{}
	})
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	ecs.ForEach(w, component.TransformComponent.Kind(), func(e ecs.Entity, t *component.Transform) {
		c, ok := ps.space.Collider(physics.Ref(e))
		if !ok {
			return
		}
		pos := c.Position()
		t.X = pos.X
		t.Y = pos.Y
		t.Rotation = c.Body.Angle()
	})
}
