package entity

import (
	"fmt"
	"sort"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/robotgrabber/assets"
	"github.com/milk9111/robotgrabber/ecs"
	"github.com/milk9111/robotgrabber/ecs/component"
	"github.com/milk9111/robotgrabber/physics"
	"github.com/milk9111/robotgrabber/prefabs"
	"golang.org/x/image/colornames"
)

// Options control how prefabs are turned into entities.
type Options struct {
	// Silent skips creating audio players. Clips can still be requested.
	Silent bool
}

type buildContext struct {
	Name  string
	Robot *prefabs.RobotSpec
	Opts  Options
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"robot_tag":     addRobotTag,
	"transform":     addTransform,
	"robot":         addRobot,
	"physics_body":  addPhysicsBody,
	"gravity_scale": addGravityScale,
	"drawn_path":    addDrawnPath,
	"targeter":      addTargeter,
	"shadow":        addShadow,
	"robot_script":  addRobotScript,
	"render_layer":  addRenderLayer,
	"tint":          addTint,
	"audio":         addAudio,
}

var componentBuildOrder = []string{
	"robot_tag",
	"transform",
	"robot",
	"physics_body",
	"gravity_scale",
	"drawn_path",
	"targeter",
	"shadow",
	"robot_script",
	"render_layer",
	"tint",
	"audio",
}

// BuildRobot creates a robot from the robot prefab. The spawn's components
// override prefab values key by key.
func BuildRobot(w *ecs.World, spec *prefabs.RobotSpec, spawn prefabs.EntityBuildSpec, opts Options) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build robot: world is nil")
	}
	if spec == nil {
		return 0, fmt.Errorf("build robot: %q: robot spec is nil", spawn.Name)
	}

	var unknown []string
	for name := range spawn.Components {
		if _, ok := componentRegistry[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return 0, fmt.Errorf("build robot: %q: no builder for components %v", spawn.Name, unknown)
	}

	e := w.CreateEntity()
	ctx := &buildContext{Name: spawn.Name, Robot: spec, Opts: opts}
	for _, name := range componentBuildOrder {
		if err := componentRegistry[name](w, e, spawn.Components[name], ctx); err != nil {
			w.DestroyEntity(e)
			return 0, fmt.Errorf("build robot: %q: add %q: %w", spawn.Name, name, err)
		}
	}

	return e, nil
}

func addRobotTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.RobotTagComponent, component.RobotTag{})
}

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TransformComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	return ecs.Add(w, e, component.TransformComponent, component.Transform{
		X:        spec.X,
		Y:        spec.Y,
		Rotation: spec.Rotation,
	})
}

func addRobot(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.Overlay(prefabs.RobotComponentSpec{
		MoveSpeed:   ctx.Robot.MoveSpeed,
		HoverHeight: ctx.Robot.HoverHeight,
	}, raw)
	if err != nil {
		return fmt.Errorf("decode robot spec: %w", err)
	}
	return ecs.Add(w, e, component.RobotComponent, component.Robot{
		MoveSpeed:   spec.MoveSpeed,
		HoverHeight: spec.HoverHeight,
	})
}

func addPhysicsBody(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.Overlay(ctx.Robot.Collider, raw)
	if err != nil {
		return fmt.Errorf("decode physics_body spec: %w", err)
	}
	if spec.Width <= 0 || spec.Height <= 0 {
		return fmt.Errorf("collider must have a positive size, got %vx%v", spec.Width, spec.Height)
	}
	tag := ctx.Robot.Tag
	if tag == "" {
		tag = "robot"
	}
	return ecs.Add(w, e, component.PhysicsBodyComponent, component.PhysicsBody{
		Tag:      tag,
		Layer:    physics.LayerGrabbable,
		Width:    spec.Width,
		Height:   spec.Height,
		Mass:     spec.Mass,
		Friction: spec.Friction,
	})
}

type gravityScaleSpec struct {
	Scale float64 `yaml:"scale"`
}

func addGravityScale(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	base := ctx.Robot.GravityScale
	if base == 0 {
		base = 1
	}
	spec, err := prefabs.Overlay(gravityScaleSpec{Scale: base}, raw)
	if err != nil {
		return fmt.Errorf("decode gravity_scale spec: %w", err)
	}
	return ecs.Add(w, e, component.GravityScaleComponent, component.GravityScale{Scale: spec.Scale})
}

func addDrawnPath(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.Overlay(ctx.Robot.Path, raw)
	if err != nil {
		return fmt.Errorf("decode drawn_path spec: %w", err)
	}
	return ecs.Add(w, e, component.DrawnPathComponent, component.DrawnPath{
		MinSpacing: spec.MinSpacing,
		MinPoints:  spec.MinPoints,
	})
}

func addTargeter(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.TargeterComponent, component.Targeter{})
}

func addShadow(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.Overlay(ctx.Robot.Shadow, raw)
	if err != nil {
		return fmt.Errorf("decode shadow spec: %w", err)
	}
	if spec.Gravity >= 0 {
		return fmt.Errorf("shadow gravity must be negative, got %v", spec.Gravity)
	}
	half := spec.HalfHeight
	if half == 0 {
		half = ctx.Robot.Collider.Height / 2
	}
	return ecs.Add(w, e, component.ShadowComponent, component.Shadow{
		Shadow:      physics.NewShadow(half, spec.Gravity),
		LaunchScale: spec.LaunchScale,
	})
}

func addRobotScript(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	// copy so overrides never write into the shared prefab params
	params := make(map[string]any, len(ctx.Robot.Script.Params))
	for k, v := range ctx.Robot.Script.Params {
		params[k] = v
	}
	spec, err := prefabs.Overlay(prefabs.RobotScriptComponentSpec{
		Path:   ctx.Robot.Script.Path,
		Params: params,
	}, raw)
	if err != nil {
		return fmt.Errorf("decode robot_script spec: %w", err)
	}
	if spec.Path == "" {
		return nil
	}
	return ecs.Add(w, e, component.RobotScriptComponent, component.RobotScript{
		Path:   spec.Path,
		Params: spec.Params,
	})
}

func addRenderLayer(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.Overlay(ctx.Robot.RenderLayer, raw)
	if err != nil {
		return fmt.Errorf("decode render_layer spec: %w", err)
	}
	return ecs.Add(w, e, component.RenderLayerComponent, component.RenderLayer{Index: spec.Index})
}

type tintSpec struct {
	Color prefabs.YAMLColor `yaml:"color"`
}

func addTint(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.Overlay(tintSpec{Color: ctx.Robot.Color}, raw)
	if err != nil {
		return fmt.Errorf("decode tint spec: %w", err)
	}
	return ecs.Add(w, e, component.TintComponent, component.Tint{Color: spec.Color.Or(colornames.Orange)})
}

func addAudio(w *ecs.World, e ecs.Entity, _ any, ctx *buildContext) error {
	audioComp := buildAudioComponent(ctx.Robot.Audio, ctx.Opts.Silent)
	if audioComp == nil {
		return nil
	}
	return ecs.Add(w, e, component.AudioComponent, *audioComp)
}

func buildAudioComponent(tones []prefabs.ToneSpec, silent bool) *component.Audio {
	n := len(tones)
	if n == 0 {
		return nil
	}

	names := make([]string, 0, n)
	players := make([]*audio.Player, 0, n)
	volume := make([]float64, 0, n)

	for _, tone := range tones {
		names = append(names, tone.Name)
		volume = append(volume, tone.Volume)
		if silent {
			continue
		}
		players = append(players, assets.LoadTonePlayer(tone.Frequency, tone.Duration))
	}

	return &component.Audio{
		Names:   names,
		Players: players,
		Volume:  volume,
		Play:    make([]bool, n),
	}
}
