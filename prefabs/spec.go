package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

const (
	GrabberFile = "grabber.yaml"
	RobotFile   = "robot.yaml"
	WorldFile   = "world.yaml"
)

type GrabberSpec struct {
	Name                string    `yaml:"name"`
	GrabRadius          float64   `yaml:"grab_radius"`
	MouseTetherDistance float64   `yaml:"mouse_tether_distance"`
	TouchTetherDistance float64   `yaml:"touch_tether_distance"`
	ForceMultiplier     float64   `yaml:"force_multiplier"`
	HUDExclusionY       float64   `yaml:"hud_exclusion_y"`
	DeadZoneFactor      float64   `yaml:"dead_zone_factor"`
	RequiredTag         string    `yaml:"required_tag"`
	MaxTethers          int       `yaml:"max_tethers"`
	Size                float64   `yaml:"size"`
	Color               YAMLColor `yaml:"color"`
	GlowColor           YAMLColor `yaml:"glow_color"`
	BeamColor           YAMLColor `yaml:"beam_color"`
}

func LoadGrabberSpec() (*GrabberSpec, error) {
	spec, err := LoadSpec[GrabberSpec](GrabberFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type RobotSpec struct {
	Name         string          `yaml:"name"`
	Tag          string          `yaml:"tag"`
	MoveSpeed    float64         `yaml:"move_speed"`
	HoverHeight  float64         `yaml:"hover_height"`
	GravityScale float64         `yaml:"gravity_scale"`
	Collider     ColliderSpec    `yaml:"collider"`
	Path         PathSpec        `yaml:"path"`
	Shadow       ShadowSpec      `yaml:"shadow"`
	Script       ScriptSpec      `yaml:"script"`
	RenderLayer  RenderLayerSpec `yaml:"render_layer"`
	Color        YAMLColor       `yaml:"color"`
	Audio        []ToneSpec      `yaml:"audio"`
}

func LoadRobotSpec() (*RobotSpec, error) {
	spec, err := LoadSpec[RobotSpec](RobotFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type WorldSpec struct {
	Name          string            `yaml:"name"`
	Gravity       float64           `yaml:"gravity"`
	Iterations    int               `yaml:"iterations"`
	Damping       float64           `yaml:"damping"`
	PixelsPerUnit float64           `yaml:"pixels_per_unit"`
	Background    YAMLColor         `yaml:"background"`
	Spawns        []EntityBuildSpec `yaml:"spawns"`
}

func LoadWorldSpec() (*WorldSpec, error) {
	spec, err := LoadSpec[WorldSpec](WorldFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type ColliderSpec struct {
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	Mass     float64 `yaml:"mass"`
	Friction float64 `yaml:"friction"`
}

type PathSpec struct {
	MinSpacing float64 `yaml:"min_spacing"`
	MinPoints  int     `yaml:"min_points"`
}

type ShadowSpec struct {
	Gravity     float64 `yaml:"gravity"`
	HalfHeight  float64 `yaml:"half_height"`
	LaunchScale float64 `yaml:"launch_scale"`
}

type ScriptSpec struct {
	Path   string         `yaml:"path"`
	Params map[string]any `yaml:"params"`
}

type RenderLayerSpec struct {
	Index int `yaml:"index"`
}

type TransformSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Rotation float64 `yaml:"rotation"`
}

// ToneSpec describes a generated sound effect.
type ToneSpec struct {
	Name      string  `yaml:"name"`
	Frequency float64 `yaml:"frequency"`
	Duration  float64 `yaml:"duration"`
	Volume    float64 `yaml:"volume"`
}

// YAMLColor accepts "#rrggbb", "#rrggbbaa" or an SVG colour name.
type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	if named, ok := colornames.Map[strings.ToLower(value.Value)]; ok {
		c.Color = named
		return nil
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}

// Or returns the colour, or fallback when none was set.
func (c YAMLColor) Or(fallback color.Color) color.Color {
	if c.Color == nil {
		return fallback
	}
	return c.Color
}
