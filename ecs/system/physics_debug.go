package system

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/robotgrabber/ecs"
	"github.com/milk9111/robotgrabber/ecs/component"
	"github.com/milk9111/robotgrabber/grab"
	"github.com/milk9111/robotgrabber/physics"
)

const (
	debugCircleSegments = 24
	debugDotSize        = 4
)

// DrawPhysicsDebug outlines every collider and tether in the space and the
// grab radius around the pointer.
func DrawPhysicsDebug(space *physics.Space, cfg grab.Config, w *ecs.World, screen *ebiten.Image) {
	if space == nil || w == nil || screen == nil {
		return
	}

	drawer := &physicsDebugDrawer{screen: screen, cam: activeCamera(w)}
	cp.DrawSpace(space.Space(), drawer)

	if e, ok := w.First(component.PointerComponent.Kind()); ok {
		ptr, _ := ecs.Get(w, e, component.PointerComponent)
		drawer.drawCircle(ptr.World, cfg.GrabRadius, cp.FColor{R: 1, G: 1, B: 1, A: 0.25})
	}
}

// DrawGrabDebug prints the grab controller and every robot's flight state.
func DrawGrabDebug(ctrl *grab.Controller, w *ecs.World, screen *ebiten.Image) {
	if ctrl == nil || w == nil || screen == nil {
		return
	}
	text := fmt.Sprintf("Grab State: %s\nSecond Click: %v", ctrl.State(), ctrl.SecondClick())
	if ref, ok := ctrl.CurrentGrabbed(); ok {
		text += "\nGrabbed: #" + ecs.Entity(ref).String()
	}

	ecs.ForEach2(w, component.RobotComponent.Kind(), component.ShadowComponent.Kind(), func(e ecs.Entity, robot *component.Robot, shadow *component.Shadow) {
		if !robot.Airborne || shadow.Shadow == nil {
			return
		}
		text += fmt.Sprintf("\n#%v airborne h=%.2f vz=%.2f offset=%.2f", e, shadow.Shadow.Height(), shadow.Shadow.Velocity(), shadow.Shadow.GroundOffset())
	})
	ebitenutil.DebugPrintAt(screen, text, 10, hudDebugTop)
}

// hudDebugTop keeps debug text below the status bar.
const hudDebugTop = 48

type physicsDebugDrawer struct {
	screen *ebiten.Image
	cam    component.Camera
}

func (d *physicsDebugDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	if radius <= 0 {
		return
	}
	d.drawCircle(pos, radius, outline)
	end := cp.Vector{X: pos.X + math.Cos(angle)*radius, Y: pos.Y + math.Sin(angle)*radius}
	d.drawLine(pos, end, outline)
}

func (d *physicsDebugDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, fill)
}

func (d *physicsDebugDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, outline)
	if radius > 0 {
		d.drawCircle(a, radius, outline)
		d.drawCircle(b, radius, outline)
	}
}

func (d *physicsDebugDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if count <= 0 {
		return
	}
	d.drawPolygon(verts[:count], outline)
}

// DrawDot takes size in screen pixels.
func (d *physicsDebugDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	if size <= 0 {
		size = debugDotSize
	}
	x, y := WorldToScreen(d.cam, pos)
	half := float32(size / 2)
	c := toNRGBA(fill)
	vector.StrokeLine(d.screen, float32(x)-half, float32(y), float32(x)+half, float32(y), 1, c, false)
	vector.StrokeLine(d.screen, float32(x), float32(y)-half, float32(x), float32(y)+half, 1, c, false)
}

func (d *physicsDebugDrawer) Flags() uint {
	return cp.DRAW_SHAPES | cp.DRAW_CONSTRAINTS
}

func (d *physicsDebugDrawer) OutlineColor() cp.FColor {
	return cp.FColor{R: 0.2, G: 1, B: 0.2, A: 0.9}
}

// ShapeColor marks shapes by collision layer.
func (d *physicsDebugDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	if shape != nil {
		if c, ok := shape.UserData.(*physics.Collider); ok && c.Layer == physics.LayerGrabbed {
			return cp.FColor{R: 1, G: 0.85, B: 0.2, A: 0.6}
		}
	}
	return cp.FColor{R: 0.1, G: 0.6, B: 0.1, A: 0.5}
}

func (d *physicsDebugDrawer) ConstraintColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.5, B: 0.1, A: 0.9}
}

func (d *physicsDebugDrawer) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.2, B: 0.2, A: 0.9}
}

func (d *physicsDebugDrawer) Data() interface{} {
	return nil
}

func (d *physicsDebugDrawer) drawLine(a, b cp.Vector, color cp.FColor) {
	x1, y1 := WorldToScreen(d.cam, a)
	x2, y2 := WorldToScreen(d.cam, b)
	vector.StrokeLine(d.screen, float32(x1), float32(y1), float32(x2), float32(y2), 1, toNRGBA(color), false)
}

func (d *physicsDebugDrawer) drawPolygon(verts []cp.Vector, color cp.FColor) {
	if len(verts) == 0 {
		return
	}
	for i := 0; i < len(verts); i++ {
		a := verts[i]
		b := verts[(i+1)%len(verts)]
		d.drawLine(a, b, color)
	}
}

func (d *physicsDebugDrawer) drawCircle(center cp.Vector, radius float64, color cp.FColor) {
	if radius <= 0 {
		return
	}
	points := make([]cp.Vector, 0, debugCircleSegments)
	for i := 0; i < debugCircleSegments; i++ {
		t := (2 * math.Pi) * (float64(i) / float64(debugCircleSegments))
		points = append(points, cp.Vector{X: center.X + math.Cos(t)*radius, Y: center.Y + math.Sin(t)*radius})
	}
	d.drawPolygon(points, color)
}

func toNRGBA(c cp.FColor) color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R) * 255),
		G: uint8(clamp01(c.G) * 255),
		B: uint8(clamp01(c.B) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
