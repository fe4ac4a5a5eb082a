package physics

import (
	"math"

	"github.com/jakecoffman/cp"
)

// SlopeEpsilon replaces a zero horizontal run when computing a trajectory
// slope so a vertical drop never divides by zero.
const SlopeEpsilon = 1e-6

// Trajectory is a predicted ballistic landing point and the ground-offset
// slope derived from it.
type Trajectory struct {
	FinalX float64
	FinalY float64
	Slope  float64
	StartX float64
}

// Predict applies constant-acceleration kinematics to find where a body at pos
// with velocity (vx, vy) ends up after t seconds under gravityY.
func Predict(pos cp.Vector, vx, vy, gravityY, t float64) Trajectory {
	finalX := pos.X + vx*t
	finalY := pos.Y + vy*t + 0.5*gravityY*t*t

	run := finalX - pos.X
	if run == 0 {
		run = SlopeEpsilon
	}
	return Trajectory{
		FinalX: finalX,
		FinalY: finalY,
		Slope:  (finalY - pos.Y) / run,
		StartX: pos.X,
	}
}

// AirTime returns how long a body launched upward at vz from height h takes to
// come back to zero height under gravity g (g < 0). It returns 0 when the body
// is already down and not rising, or when g would never bring it back.
func AirTime(vz, h, g float64) float64 {
	if g >= 0 {
		return 0
	}
	if h <= 0 && vz <= 0 {
		return 0
	}
	disc := vz*vz - 2*g*h
	if disc < 0 {
		return 0
	}
	return (vz + math.Sqrt(disc)) / -g
}
