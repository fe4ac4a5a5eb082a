package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/robotgrabber/common"
	"github.com/milk9111/robotgrabber/ecs"
	"github.com/milk9111/robotgrabber/ecs/component"
)

const defaultPixelsPerUnit = 45

func activeCamera(w *ecs.World) component.Camera {
	cam := component.Camera{PixelsPerUnit: defaultPixelsPerUnit}
	if e, ok := w.First(component.CameraComponent.Kind()); ok {
		if c, ok := ecs.Get(w, e, component.CameraComponent); ok && c.PixelsPerUnit > 0 {
			cam = c
		}
	}
	return cam
}

// ScreenToWorld converts a pixel on the base-resolution screen to world units.
// Screen y grows downward and world y grows upward.
func ScreenToWorld(cam component.Camera, sx, sy float64) cp.Vector {
	return cp.Vector{
		X: cam.X + (sx-common.BaseWidth/2)/cam.PixelsPerUnit,
		Y: cam.Y - (sy-common.BaseHeight/2)/cam.PixelsPerUnit,
	}
}

// WorldToScreen is the inverse of ScreenToWorld.
func WorldToScreen(cam component.Camera, p cp.Vector) (float64, float64) {
	return (p.X-cam.X)*cam.PixelsPerUnit + common.BaseWidth/2,
		common.BaseHeight/2 - (p.Y-cam.Y)*cam.PixelsPerUnit
}
