package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/robotgrabber/ecs"
	"github.com/milk9111/robotgrabber/ecs/component"
	"github.com/milk9111/robotgrabber/grab"
	"github.com/milk9111/robotgrabber/physics"
	"github.com/milk9111/robotgrabber/prefabs"
	"golang.org/x/image/colornames"
)

const defaultPixelsPerUnit = 45

func NewCamera(w *ecs.World, pixelsPerUnit float64) (ecs.Entity, error) {
	if pixelsPerUnit <= 0 {
		pixelsPerUnit = defaultPixelsPerUnit
	}
	camera := w.CreateEntity()
	if err := ecs.Add(w, camera, component.CameraTagComponent, component.CameraTag{}); err != nil {
		return 0, fmt.Errorf("camera: add camera tag: %w", err)
	}
	if err := ecs.Add(w, camera, component.CameraComponent, component.Camera{PixelsPerUnit: pixelsPerUnit}); err != nil {
		return 0, fmt.Errorf("camera: add camera component: %w", err)
	}
	return camera, nil
}

// NewGrabber creates the single pointer-driven grabber entity.
func NewGrabber(w *ecs.World, spec *prefabs.GrabberSpec) (ecs.Entity, error) {
	if spec == nil {
		return 0, fmt.Errorf("grabber: spec is nil")
	}
	grabber := w.CreateEntity()
	if err := ecs.Add(w, grabber, component.GrabberTagComponent, component.GrabberTag{}); err != nil {
		return 0, fmt.Errorf("grabber: add tag: %w", err)
	}
	if err := ecs.Add(w, grabber, component.PointerComponent, component.Pointer{}); err != nil {
		return 0, fmt.Errorf("grabber: add pointer: %w", err)
	}
	if err := ecs.Add(w, grabber, component.GrabberComponent, component.Grabber{
		State:     grab.Idle.String(),
		Size:      spec.Size,
		GlowColor: spec.GlowColor.Or(colornames.Gold),
		BeamColor: spec.BeamColor.Or(colornames.Cyan),
	}); err != nil {
		return 0, fmt.Errorf("grabber: add view: %w", err)
	}
	if err := ecs.Add(w, grabber, component.TintComponent, component.Tint{Color: spec.Color.Or(colornames.White)}); err != nil {
		return 0, fmt.Errorf("grabber: add tint: %w", err)
	}
	return grabber, nil
}

// BuildWorld creates the camera, the grabber and every robot spawn.
func BuildWorld(w *ecs.World, ws *prefabs.WorldSpec, gs *prefabs.GrabberSpec, rs *prefabs.RobotSpec, opts Options) error {
	if w == nil || ws == nil {
		return fmt.Errorf("build world: world and spec are required")
	}
	if _, err := NewCamera(w, ws.PixelsPerUnit); err != nil {
		return fmt.Errorf("build world: %w", err)
	}
	if _, err := NewGrabber(w, gs); err != nil {
		return fmt.Errorf("build world: %w", err)
	}
	for i, spawn := range ws.Spawns {
		prefab := spawn.Prefab
		if prefab == "" {
			prefab = prefabs.RobotFile
		}
		if prefab != prefabs.RobotFile {
			return fmt.Errorf("build world: spawn %d (%q): unknown prefab %q", i, spawn.Name, spawn.Prefab)
		}
		if _, err := BuildRobot(w, rs, spawn, opts); err != nil {
			return fmt.Errorf("build world: spawn %d: %w", i, err)
		}
	}
	return nil
}

// GrabConfig turns the grabber prefab into controller tuning. Unset fields
// keep their defaults.
func GrabConfig(spec *prefabs.GrabberSpec) grab.Config {
	cfg := grab.DefaultConfig()
	if spec == nil {
		return cfg
	}
	if spec.GrabRadius > 0 {
		cfg.GrabRadius = spec.GrabRadius
	}
	if spec.MouseTetherDistance > 0 {
		cfg.MouseTetherDistance = spec.MouseTetherDistance
	}
	if spec.TouchTetherDistance > 0 {
		cfg.TouchTetherDistance = spec.TouchTetherDistance
	}
	if spec.ForceMultiplier != 0 {
		cfg.ForceMultiplier = spec.ForceMultiplier
	}
	if spec.HUDExclusionY != 0 {
		cfg.HUDExclusionY = spec.HUDExclusionY
	}
	if spec.DeadZoneFactor > 0 {
		cfg.DeadZoneFactor = spec.DeadZoneFactor
	}
	if spec.RequiredTag != "" {
		cfg.RequiredTag = spec.RequiredTag
	}
	return cfg
}

// PhysicsConfig combines world and grabber prefabs into space settings.
func PhysicsConfig(ws *prefabs.WorldSpec, gs *prefabs.GrabberSpec) physics.Config {
	var cfg physics.Config
	if ws != nil {
		cfg.Gravity = cp.Vector{Y: ws.Gravity}
		cfg.Iterations = ws.Iterations
		cfg.Damping = ws.Damping
	}
	if gs != nil {
		cfg.MaxTethers = gs.MaxTethers
	}
	return cfg
}
