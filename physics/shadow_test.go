package physics

import (
	"testing"

	"github.com/jakecoffman/cp"
)

func TestShadowGroundedResets(t *testing.T) {
	s := NewShadow(0.25, -10)
	s.SetHeight(2)
	s.SetKinematic(false)
	s.SetVelocity(3)
	s.SetTrajectory(cp.Vector{X: 1}, cp.Vector{X: 2, Y: 0}, -10, 1)
	if s.Slope() == 0 {
		t.Fatalf("expected a trajectory slope")
	}

	s.SetGrounded(true)
	if s.Slope() != 0 {
		t.Fatalf("expected slope reset, got %v", s.Slope())
	}
	if s.Velocity() != 0 || !s.IsKinematic() {
		t.Fatalf("grounding must stop the shadow")
	}

	for i := 0; i < 5; i++ {
		s.Track(float64(i) * 3)
		s.Step(0.1)
		if got := s.GroundOffset(); got != 0 {
			t.Fatalf("step %d: expected zero offset, got %v", i, got)
		}
		if !s.Grounded() {
			t.Fatalf("step %d: expected grounded", i)
		}
	}
}

func TestShadowFlight(t *testing.T) {
	s := NewShadow(0.5, -10)
	s.SetGrounded(true)
	s.SetKinematic(false)
	s.SetVelocity(5)

	s.Step(0.1)
	if s.IsFalling() {
		t.Fatalf("rising shadow reported falling")
	}
	if s.Grounded() {
		t.Fatalf("rising shadow reported grounded, offset %v", s.GroundOffset())
	}

	landed := false
	for i := 0; i < 200; i++ {
		s.Step(0.1)
		if s.IsFalling() && s.Grounded() {
			landed = true
			break
		}
	}
	if !landed {
		t.Fatalf("shadow never landed")
	}
}

func TestShadowOffsetFollowsSlope(t *testing.T) {
	s := NewShadow(0, -10)
	s.SetHeight(1)
	s.SetTrajectory(cp.Vector{X: 0}, cp.Vector{X: 2}, -10, 1)

	s.Track(1)
	// (1 - 0) - (-2.5 * (1 - 0)) = 3.5
	if got := s.GroundOffset(); got != 3.5 {
		t.Fatalf("expected 3.5, got %v", got)
	}
}

func TestShadowKinematicIgnoresStep(t *testing.T) {
	s := NewShadow(0.1, -10)
	s.SetHeight(1)
	s.SetVelocity(4)
	s.Step(1)
	if s.Height() != 1 {
		t.Fatalf("kinematic shadow moved to %v", s.Height())
	}
}
