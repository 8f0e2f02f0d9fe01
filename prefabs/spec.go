package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

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

type CameraSpec struct {
	Name       string  `yaml:"name"`
	Target     string  `yaml:"target"`
	Zoom       float64 `yaml:"zoom"`
	Smoothness float64 `yaml:"smoothness"`
}

func LoadCameraSpec() (*CameraSpec, error) {
	data, err := Load("camera.yaml")
	if err != nil {
		return nil, fmt.Errorf("prefabs: load camera.yaml: %w", err)
	}
	var spec CameraSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal camera.yaml: %w", err)
	}
	return &spec, nil
}

// DebugSpec configures the debug overlay.
type DebugSpec struct {
	ShowProbes bool       `yaml:"show_probes"`
	ShowMap    bool       `yaml:"show_map"`
	BoxColor   *YAMLColor `yaml:"box_color"`
}

func LoadDebugSpec() (*DebugSpec, error) {
	spec, err := LoadSpec[DebugSpec]("debug.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}
	parsed, err := ParseColor(value.Value)
	if err != nil {
		return err
	}
	c.Color = parsed
	return nil
}

// ParseColor reads "#rrggbb" or "#rrggbbaa"; the leading # is optional.
func ParseColor(value string) (color.Color, error) {
	s := strings.TrimPrefix(value, "#")

	if len(s) != 6 && len(s) != 8 {
		return nil, fmt.Errorf("invalid color format: %s", value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return nil, err
	}
	g, err := parse(2)
	if err != nil {
		return nil, err
	}
	b, err := parse(4)
	if err != nil {
		return nil, err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return nil, err
		}
	}

	return color.NRGBA{R: r, G: g, B: b, A: a}, nil
}
