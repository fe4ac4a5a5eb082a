package physics

import "github.com/jakecoffman/cp"

// Shadow simulates the height of an actor above the ground plane, separate
// from its 2D gameplay position. The ground offset it reports drives how far
// a drop shadow sits below the actor sprite.
type Shadow struct {
	z         float64 // collider centre height; ground contact at z == halfHeight
	vz        float64
	gravity   float64
	halfH     float64
	kinematic bool

	x      float64
	startX float64
	slope  float64
}

// NewShadow creates a grounded, kinematic shadow. gravity is the acceleration
// along the height axis and should be negative.
func NewShadow(halfHeight, gravity float64) *Shadow {
	if halfHeight < 0 {
		halfHeight = 0
	}
	return &Shadow{
		z:         halfHeight,
		gravity:   gravity,
		halfH:     halfHeight,
		kinematic: true,
	}
}

// SetVelocity sets the vertical velocity along the height axis.
func (s *Shadow) SetVelocity(v float64) {
	s.vz = v
}

// Velocity returns the vertical velocity along the height axis.
func (s *Shadow) Velocity() float64 {
	return s.vz
}

// SetHeight places the bottom of the shadow collider h above the ground.
func (s *Shadow) SetHeight(h float64) {
	s.z = h + s.halfH
}

// Height returns how far the bottom of the collider is above the ground.
func (s *Shadow) Height() float64 {
	return s.z - s.halfH
}

// SetGravity changes the height-axis acceleration.
func (s *Shadow) SetGravity(g float64) {
	s.gravity = g
}

func (s *Shadow) Gravity() float64 {
	return s.gravity
}

// SetKinematic toggles height integration and takes the current horizontal
// position as the new slope origin.
func (s *Shadow) SetKinematic(kinematic bool) {
	s.kinematic = kinematic
	s.startX = s.x
}

func (s *Shadow) IsKinematic() bool {
	return s.kinematic
}

// IsFalling reports whether the shadow moves toward the ground.
func (s *Shadow) IsFalling() bool {
	return s.vz < 0
}

// Grounded reports whether the ground offset has reached or crossed zero.
func (s *Shadow) Grounded() bool {
	return s.GroundOffset() <= 0
}

// SetGrounded(true) lands the shadow: velocity and height snap to zero, height
// integration stops and the slope resets. SetGrounded(false) re-enables
// integration from the current height.
func (s *Shadow) SetGrounded(grounded bool) {
	if grounded {
		s.vz = 0
		s.z = s.halfH
	}
	s.kinematic = grounded
	s.slope = 0
	s.startX = s.x
}

// Slope returns the current ground-offset slope.
func (s *Shadow) Slope() float64 {
	return s.slope
}

// Track updates the horizontal position the slope is measured against.
func (s *Shadow) Track(x float64) {
	s.x = x
}

// GroundOffset is the height above ground corrected by the horizontal drift
// since the last reset, scaled by the trajectory slope.
func (s *Shadow) GroundOffset() float64 {
	return (s.z - s.halfH) - s.slope*(s.x-s.startX)
}

// SetTrajectory predicts the landing point of an actor at pos moving with vel
// under gravityY for airTime seconds and keeps the resulting slope.
func (s *Shadow) SetTrajectory(pos, vel cp.Vector, gravityY, airTime float64) Trajectory {
	traj := Predict(pos, vel.X, vel.Y, gravityY, airTime)
	s.slope = traj.Slope
	s.startX = traj.StartX
	s.x = pos.X
	return traj
}

// Step integrates the height axis over dt unless the shadow is kinematic.
func (s *Shadow) Step(dt float64) {
	if s.kinematic || dt <= 0 {
		return
	}
	s.vz += s.gravity * dt
	s.z += s.vz * dt
}
