package system

import (
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/robotgrabber/ecs"
	"github.com/milk9111/robotgrabber/ecs/component"
	"golang.org/x/image/colornames"
)

var (
	shadowColor = color.RGBA{A: 90}
	pathColor   = color.RGBA{R: 255, G: 255, B: 255, A: 140}
)

const (
	pathStroke = 3
	beamStroke = 4
)

type RenderSystem struct {
	pixel *ebiten.Image
}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{}
}

func (r *RenderSystem) Update(_ *ecs.World) {}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}
	if r.pixel == nil {
		r.pixel = ebiten.NewImage(1, 1)
		r.pixel.Fill(color.White)
	}

	cam := activeCamera(w)

	entities := w.Query(component.TransformComponent.Kind(), component.PhysicsBodyComponent.Kind())
	sort.SliceStable(entities, func(i, j int) bool {
		li := 0
		if layer, ok := ecs.Get(w, entities[i], component.RenderLayerComponent); ok {
			li = layer.Index
		}
		lj := 0
		if layer, ok := ecs.Get(w, entities[j], component.RenderLayerComponent); ok {
			lj = layer.Index
		}
		if li != lj {
			return li < lj
		}
		return uint64(entities[i]) < uint64(entities[j])
	})

	// shadows sit under every body
	for _, e := range entities {
		r.drawShadow(w, screen, cam, e)
	}
	for _, e := range entities {
		r.drawBody(w, screen, cam, e)
		r.drawPath(w, screen, cam, e)
	}

	r.drawGrabber(w, screen, cam)
}

func (r *RenderSystem) drawShadow(w *ecs.World, screen *ebiten.Image, cam component.Camera, e ecs.Entity) {
	s, ok := ecs.Get(w, e, component.ShadowComponent)
	if !ok || s.Shadow == nil {
		return
	}
	t, _ := ecs.Get(w, e, component.TransformComponent)
	body, _ := ecs.Get(w, e, component.PhysicsBodyComponent)

	ground := cp.Vector{X: t.X, Y: t.Y - body.Height/2 - s.Shadow.GroundOffset()}
	x, y := WorldToScreen(cam, ground)
	radius := body.Width / 2 * cam.PixelsPerUnit
	vector.FillCircle(screen, float32(x), float32(y), float32(radius), shadowColor, true)
}

func (r *RenderSystem) drawBody(w *ecs.World, screen *ebiten.Image, cam component.Camera, e ecs.Entity) {
	t, _ := ecs.Get(w, e, component.TransformComponent)
	body, _ := ecs.Get(w, e, component.PhysicsBodyComponent)
	if body.Width <= 0 || body.Height <= 0 {
		return
	}

	var clr color.Color = colornames.Lightsteelblue
	if tint, ok := ecs.Get(w, e, component.TintComponent); ok && tint.Color != nil {
		clr = tint.Color
	}

	x, y := WorldToScreen(cam, cp.Vector{X: t.X, Y: t.Y})
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-0.5, -0.5)
	op.GeoM.Scale(body.Width*cam.PixelsPerUnit, body.Height*cam.PixelsPerUnit)
	// screen y points down, so world angles flip
	op.GeoM.Rotate(-t.Rotation)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	screen.DrawImage(r.pixel, op)
}

func (r *RenderSystem) drawPath(w *ecs.World, screen *ebiten.Image, cam component.Camera, e ecs.Entity) {
	path, ok := ecs.Get(w, e, component.DrawnPathComponent)
	if !ok || len(path.Points) < 2 {
		return
	}
	start := 0
	if path.Following {
		start = path.Index
	}
	for i := start + 1; i < len(path.Points); i++ {
		x0, y0 := WorldToScreen(cam, path.Points[i-1])
		x1, y1 := WorldToScreen(cam, path.Points[i])
		vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), pathStroke, pathColor, true)
	}
}

func (r *RenderSystem) drawGrabber(w *ecs.World, screen *ebiten.Image, cam component.Camera) {
	e, ok := w.First(component.GrabberComponent.Kind())
	if !ok {
		return
	}
	g, _ := ecs.Get(w, e, component.GrabberComponent)

	size := g.Size
	if size <= 0 {
		size = 0.4
	}
	x, y := WorldToScreen(cam, g.Pos)
	half := size / 2 * cam.PixelsPerUnit

	if g.Tethered {
		var beam color.Color = colornames.Cyan
		if g.BeamColor != nil {
			beam = g.BeamColor
		}
		ox, oy := WorldToScreen(cam, g.BeamOrigin)
		ex, ey := WorldToScreen(cam, g.BeamOrigin.Add(g.Beam))
		vector.StrokeLine(screen, float32(ox), float32(oy), float32(ex), float32(ey), beamStroke, beam, true)
	}

	if g.SpriteVisible {
		var sprite color.Color = colornames.White
		if tint, ok := ecs.Get(w, e, component.TintComponent); ok && tint.Color != nil {
			sprite = tint.Color
		}
		vector.StrokeRect(screen, float32(x-half), float32(y-half), float32(half*2), float32(half*2), 2, sprite, false)
	}

	if g.Glow {
		var glow color.Color = colornames.Gold
		if g.GlowColor != nil {
			glow = g.GlowColor
		}
		vector.StrokeCircle(screen, float32(x), float32(y), float32(half*1.6), 3, glow, true)
	}
}
