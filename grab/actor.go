package grab

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/robotgrabber/physics"
)

// Actor is the grabbable side of the grab loop. The controller only flips its
// flags, feeds it path points and hands it a drop force; the actor's owner
// creates and destroys it.
type Actor interface {
	Locked() bool
	SetLocked(locked bool)
	Grabbed() bool
	SetGrabbed(grabbed bool)

	TryAddPathPoint(p cp.Vector)
	ClearDrawnPath()
	// FinishDrawingPath reports whether the drawn path is long enough to follow.
	FinishDrawingPath() bool
	ClearTargeter()

	SetDropForce(force cp.Vector)
	PlayGrabSound()
}

// Actors resolves collider owners to actors.
type Actors interface {
	Actor(ref physics.Ref) (Actor, bool)
}

// ActorsFunc adapts a function to Actors.
type ActorsFunc func(ref physics.Ref) (Actor, bool)

func (f ActorsFunc) Actor(ref physics.Ref) (Actor, bool) {
	return f(ref)
}

// Hooks are notified on grab loop transitions. Any hook may be nil.
type Hooks struct {
	Grabbed  func(ref physics.Ref)
	Released func(ref physics.Ref, force cp.Vector)
}
