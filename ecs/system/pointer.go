package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/robotgrabber/ecs"
	"github.com/milk9111/robotgrabber/ecs/component"
)

// pointerSample is the raw primary-button state for one frame.
type pointerSample struct {
	x, y     float64
	pressed  bool
	held     bool
	released bool
	touch    bool
}

// PointerSystem folds the mouse and the first active touch into one
// logical pointer. Ebiten reports both in layout pixels.
type PointerSystem struct {
	// ForceTouch treats the mouse as a finger, for trying touch tuning on a
	// desktop.
	ForceTouch bool

	touchID  ebiten.TouchID
	touching bool
	lastX    float64
	lastY    float64
	touchBuf []ebiten.TouchID
}

func NewPointerSystem(forceTouch bool) *PointerSystem {
	return &PointerSystem{ForceTouch: forceTouch}
}

func (p *PointerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	s := p.sample()
	cam := activeCamera(w)

	ecs.ForEach(w, component.PointerComponent.Kind(), func(_ ecs.Entity, ptr *component.Pointer) {
		applySample(ptr, s, cam)
	})
}

func (p *PointerSystem) sample() pointerSample {
	var s pointerSample

	p.touchBuf = inpututil.AppendJustPressedTouchIDs(p.touchBuf[:0])
	if !p.touching && len(p.touchBuf) > 0 {
		p.touching = true
		p.touchID = p.touchBuf[0]
		s.pressed = true
	}

	if p.touching {
		s.touch = true
		if inpututil.IsTouchJustReleased(p.touchID) {
			p.touching = false
			s.released = true
			s.x, s.y = p.lastX, p.lastY
		} else {
			tx, ty := ebiten.TouchPosition(p.touchID)
			s.x, s.y = float64(tx), float64(ty)
			s.held = true
		}
	} else {
		cx, cy := ebiten.CursorPosition()
		s.x, s.y = float64(cx), float64(cy)
		s.pressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
		s.held = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
		s.released = inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
		s.touch = p.ForceTouch
	}

	p.lastX, p.lastY = s.x, s.y
	return s
}

func applySample(ptr *component.Pointer, s pointerSample, cam component.Camera) {
	ptr.Moved = s.x != ptr.ScreenX || s.y != ptr.ScreenY
	ptr.ScreenX = s.x
	ptr.ScreenY = s.y
	ptr.World = ScreenToWorld(cam, s.x, s.y)
	ptr.Pressed = s.pressed
	ptr.Held = s.held
	ptr.Released = s.released
	ptr.Touch = s.touch
}
