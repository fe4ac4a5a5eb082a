package system

import (
	"github.com/milk9111/robotgrabber/common"
	"github.com/milk9111/robotgrabber/ecs"
	"github.com/milk9111/robotgrabber/ecs/component"
	"github.com/milk9111/robotgrabber/physics"
)

// ShadowSystem advances each robot's height simulation after the physics
// step and lands airborne robots whose shadow reaches the ground.
type ShadowSystem struct {
	space *physics.Space
	dt    float64
}

func NewShadowSystem(space *physics.Space) *ShadowSystem {
	return &ShadowSystem{space: space, dt: common.PhysicsDT}
}

func (s *ShadowSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	ecs.ForEach2(w, component.RobotComponent.Kind(), component.ShadowComponent.Kind(), func(e ecs.Entity, robot *component.Robot, shadow *component.Shadow) {
		sh := shadow.Shadow
		if sh == nil {
			return
		}
		if t, ok := ecs.Get(w, e, component.TransformComponent); ok {
			sh.Track(t.X)
		}
		sh.Step(s.dt)

		if robot.Airborne && sh.IsFalling() && sh.Grounded() {
			land(w, s.space, e, robot, shadow, true)
		}
	})
}

// land ends a flight: the shadow snaps to the ground, gravity and rotation
// are switched off and the body stops.
func land(w *ecs.World, space *physics.Space, e ecs.Entity, robot *component.Robot, shadow *component.Shadow, notify bool) {
	robot.Airborne = false
	if shadow != nil && shadow.Shadow != nil {
		shadow.Shadow.SetGrounded(true)
	}

	ref := physics.Ref(e)
	space.SetGravityScale(ref, 0)
	space.FreezeRotation(ref)
	if c, ok := space.Collider(ref); ok {
		c.Body.SetVelocity(0, 0)
	}

	if notify {
		w.Events().Push(ecs.Event{Kind: ecs.EventGrounded, Entity: e})
	}
}
