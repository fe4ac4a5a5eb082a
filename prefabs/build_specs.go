package prefabs

import "gopkg.in/yaml.v3"

// EntityBuildSpec is one spawn entry. Components override the defaults of the
// prefab it instantiates, keyed by component name.
type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Prefab     string         `yaml:"prefab"`
	Components map[string]any `yaml:"components"`
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

// Overlay decodes raw on top of base, so keys missing from raw keep base's
// values.
func Overlay[T any](base T, raw any) (T, error) {
	if raw == nil {
		return base, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return base, err
	}
	out := base
	if err := yaml.Unmarshal(b, &out); err != nil {
		return base, err
	}
	return out, nil
}

type RobotComponentSpec struct {
	MoveSpeed   float64 `yaml:"move_speed"`
	HoverHeight float64 `yaml:"hover_height"`
}

type TransformComponentSpec = TransformSpec

type RobotScriptComponentSpec struct {
	Path   string         `yaml:"path"`
	Params map[string]any `yaml:"params"`
}
