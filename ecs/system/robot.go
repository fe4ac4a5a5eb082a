package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/robotgrabber/common"
	"github.com/milk9111/robotgrabber/ecs"
	"github.com/milk9111/robotgrabber/ecs/component"
	"github.com/milk9111/robotgrabber/physics"
)

const arriveDistance = 0.05

// RobotSystem moves robots on the ground and launches thrown robots into the
// air. It runs after the grabber and before the physics step.
type RobotSystem struct {
	space *physics.Space
	dt    float64
}

func NewRobotSystem(space *physics.Space) *RobotSystem {
	return &RobotSystem{space: space, dt: common.PhysicsDT}
}

func (r *RobotSystem) Update(w *ecs.World) {
	if r == nil || r.space == nil || w == nil {
		return
	}

	ecs.ForEach(w, component.RobotComponent.Kind(), func(e ecs.Entity, robot *component.Robot) {
		ref := physics.Ref(e)
		c, ok := r.space.Collider(ref)
		if !ok {
			return
		}
		shadow, _ := ecs.GetPtr(w, e, component.ShadowComponent)

		if robot.HasDropForce {
			r.launch(w, e, c, robot, shadow)
			return
		}
		if robot.Airborne {
			if !robot.Locked && !robot.Grabbed {
				return
			}
			// caught mid-flight
			land(w, r.space, e, robot, shadow, false)
		}

		switch {
		case robot.Locked:
			c.Body.SetVelocity(0, 0)
		case robot.Grabbed:
			if shadow != nil && shadow.Shadow != nil {
				shadow.Shadow.SetHeight(robot.HoverHeight)
			}
		default:
			r.walk(w, e, c, robot)
		}
	})
}

func (r *RobotSystem) walk(w *ecs.World, e ecs.Entity, c *physics.Collider, robot *component.Robot) {
	if path, ok := ecs.GetPtr(w, e, component.DrawnPathComponent); ok {
		if next, ok := path.Next(); ok {
			if r.steer(c, next, robot.MoveSpeed) {
				path.Advance()
			}
			return
		}
	}
	if t, ok := ecs.GetPtr(w, e, component.TargeterComponent); ok && t.Active {
		if r.steer(c, t.Target, robot.MoveSpeed) {
			t.Active = false
		}
		return
	}
	c.Body.SetVelocity(0, 0)
}

// steer sets a velocity toward target and reports arrival. The last step is
// shortened so the robot stops on the target instead of overshooting.
func (r *RobotSystem) steer(c *physics.Collider, target cp.Vector, speed float64) bool {
	d := target.Sub(c.Position())
	dist := d.Length()
	if dist <= arriveDistance || speed <= 0 {
		c.Body.SetVelocity(0, 0)
		return dist <= arriveDistance
	}
	step := speed * r.dt
	if step > dist {
		c.Body.SetVelocityVector(d.Mult(1 / r.dt))
		return false
	}
	c.Body.SetVelocityVector(d.Mult(speed / dist))
	return false
}

// launch applies the throw impulse, turns gravity on and predicts the flight
// so the shadow can follow it down.
func (r *RobotSystem) launch(w *ecs.World, e ecs.Entity, c *physics.Collider, robot *component.Robot, shadow *component.Shadow) {
	ref := physics.Ref(e)
	force := robot.DropForce
	robot.DropForce = cp.Vector{}
	robot.HasDropForce = false
	robot.Airborne = true

	if path, ok := ecs.GetPtr(w, e, component.DrawnPathComponent); ok {
		path.Clear()
	}

	c.Body.SetVelocity(0, 0)
	r.space.ApplyImpulse(ref, force)

	scale := 1.0
	if gs, ok := ecs.Get(w, e, component.GravityScaleComponent); ok {
		scale = gs.Scale
	}
	r.space.SetGravityScale(ref, scale)

	if shadow == nil || shadow.Shadow == nil {
		return
	}
	sh := shadow.Shadow
	pos := c.Position()
	vel := c.Body.Velocity()
	height := sh.Height()

	launchScale := shadow.LaunchScale
	if launchScale == 0 {
		launchScale = 1
	}
	vz := vel.Y * launchScale

	sh.Track(pos.X)
	sh.SetGrounded(false)
	sh.SetHeight(height)
	sh.SetVelocity(vz)
	airTime := physics.AirTime(vz, height, sh.Gravity())
	sh.SetTrajectory(pos, vel, r.space.Gravity().Y*scale, airTime)
}
