package system

import (
	"fmt"
	"log"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/robotgrabber/ecs"
	"github.com/milk9111/robotgrabber/ecs/component"
	"github.com/milk9111/robotgrabber/physics"
	"github.com/milk9111/robotgrabber/prefabs"
)

const robotScriptDispatch = `
update(__engine, __state, __params)
`

type robotScriptRuntime struct {
	scriptPath string
	compiled   *tengo.Compiled
	stateData  *tengo.Map
	failed     bool
}

// RobotScriptSystem runs each idle robot's tengo script once per frame. A
// robot is idle when it is not tethered, flying or following a drawn path.
type RobotScriptSystem struct {
	space   *physics.Space
	runtime map[ecs.Entity]*robotScriptRuntime
}

func NewRobotScriptSystem(space *physics.Space) *RobotScriptSystem {
	return &RobotScriptSystem{space: space, runtime: map[ecs.Entity]*robotScriptRuntime{}}
}

// Reload drops cached runtimes for path, or for every script when path is
// empty. Script state starts over on the next update.
func (s *RobotScriptSystem) Reload(path string) {
	if s == nil {
		return
	}
	for e, rt := range s.runtime {
		if path == "" || cleanScriptName(rt.scriptPath) == cleanScriptName(path) {
			delete(s.runtime, e)
		}
	}
}

func (s *RobotScriptSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	for e := range s.runtime {
		if !w.IsAlive(e) {
			delete(s.runtime, e)
		}
	}

	ecs.ForEach2(w, component.RobotScriptComponent.Kind(), component.RobotComponent.Kind(), func(e ecs.Entity, script *component.RobotScript, robot *component.Robot) {
		script.Frame++
		if robot.Locked || robot.Grabbed || robot.Airborne || robot.HasDropForce {
			return
		}
		if path, ok := ecs.Get(w, e, component.DrawnPathComponent); ok && path.Following {
			return
		}

		rt, err := s.scriptRuntime(e, script.Path)
		if err != nil {
			log.Printf("robot_script: entity=%v load %s: %v", e, script.Path, err)
			return
		}
		if rt.failed {
			return
		}

		engine := s.buildEngine(w, e)
		if err := rt.run(engine, script.Params); err != nil {
			// one report per load; a fixed script is picked up by Reload
			rt.failed = true
			log.Printf("robot_script: entity=%v update: %v", e, err)
		}
	})
}

func (s *RobotScriptSystem) scriptRuntime(e ecs.Entity, path string) (*robotScriptRuntime, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("empty script path")
	}
	if rt, ok := s.runtime[e]; ok && rt != nil && rt.scriptPath == path {
		return rt, nil
	}

	src, err := prefabs.LoadScript(path)
	if err != nil {
		return nil, err
	}
	rt, err := compileRobotScript(path, src)
	if err != nil {
		return nil, err
	}
	s.runtime[e] = rt
	return rt, nil
}

func compileRobotScript(path string, src []byte) (*robotScriptRuntime, error) {
	script := tengo.NewScript([]byte(string(src) + "\n" + robotScriptDispatch))
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	_ = script.Add("__params", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, err
	}
	return &robotScriptRuntime{
		scriptPath: path,
		compiled:   compiled,
		stateData:  &tengo.Map{Value: map[string]tengo.Object{}},
	}, nil
}

func (rt *robotScriptRuntime) run(engine *tengo.ImmutableMap, params map[string]any) error {
	if rt == nil || rt.compiled == nil {
		return fmt.Errorf("nil script runtime")
	}
	if params == nil {
		params = map[string]any{}
	}
	if err := rt.compiled.Set("__engine", engine); err != nil {
		return err
	}
	if err := rt.compiled.Set("__state", rt.stateData); err != nil {
		return err
	}
	if err := rt.compiled.Set("__params", params); err != nil {
		return err
	}
	return rt.compiled.Run()
}

func (s *RobotScriptSystem) buildEngine(w *ecs.World, e ecs.Entity) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["get_position"] = &tengo.UserFunction{Name: "get_position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		var pos cp.Vector
		if c, ok := s.space.Collider(physics.Ref(e)); ok {
			pos = c.Position()
		} else if t, ok := ecs.Get(w, e, component.TransformComponent); ok {
			pos = cp.Vector{X: t.X, Y: t.Y}
		}
		return &tengo.Array{Value: []tengo.Object{&tengo.Float{Value: pos.X}, &tengo.Float{Value: pos.Y}}}, nil
	}}

	values["has_target"] = &tengo.UserFunction{Name: "has_target", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if t, ok := ecs.Get(w, e, component.TargeterComponent); ok && t.Active {
			return tengo.TrueValue, nil
		}
		return tengo.FalseValue, nil
	}}

	values["set_target"] = &tengo.UserFunction{Name: "set_target", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 2 {
			return tengo.FalseValue, nil
		}
		x, okX := tengo.ToFloat64(args[0])
		y, okY := tengo.ToFloat64(args[1])
		if !okX || !okY {
			return tengo.FalseValue, nil
		}
		t, ok := ecs.GetPtr(w, e, component.TargeterComponent)
		if !ok {
			return tengo.FalseValue, nil
		}
		t.Target = cp.Vector{X: x, Y: y}
		t.Active = true
		return tengo.TrueValue, nil
	}}

	values["clear_target"] = &tengo.UserFunction{Name: "clear_target", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if t, ok := ecs.GetPtr(w, e, component.TargeterComponent); ok {
			t.Active = false
		}
		return tengo.UndefinedValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func cleanScriptName(path string) string {
	s := strings.TrimPrefix(path, "prefabs/")
	return strings.TrimPrefix(s, "scripts/")
}
