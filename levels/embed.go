package levels

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

//go:embed *.json
var LevelsFS embed.FS

// Level is a set of axis-aligned static boxes (Z up) plus the entities to
// spawn in it.
type Level struct {
	Name     string   `json:"name"`
	Boxes    []Box    `json:"boxes"`
	Entities []Entity `json:"entities,omitempty"`
}

type Box struct {
	Name  string     `json:"name"`
	Min   [3]float64 `json:"min"`
	Max   [3]float64 `json:"max"`
	Color string     `json:"color,omitempty"`
}

type Entity struct {
	Type  string                 `json:"type"`
	X     float64                `json:"x"`
	Y     float64                `json:"y"`
	Z     float64                `json:"z"`
	Yaw   float64                `json:"yaw"`
	Props map[string]interface{} `json:"props,omitempty"`
}

// Prop returns the string property key of the entity, or "".
func (e Entity) Prop(key string) string {
	if e.Props == nil {
		return ""
	}
	s, _ := e.Props[key].(string)
	return s
}

// LoadLevelFromFS reads levels/<name> from disk when present and falls
// back to the embedded copy. The .json extension is optional.
func LoadLevelFromFS(name string) (*Level, error) {
	clean := cleanLevelName(name)
	data, err := os.ReadFile(filepath.Join("levels", clean))
	if err != nil {
		data, err = fs.ReadFile(LevelsFS, clean)
	}
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	if len(lvl.Boxes) == 0 {
		return nil, fmt.Errorf("level %q has no boxes", lvl.Name)
	}
	return &lvl, nil
}

// Names lists the embedded levels without extension.
func Names() []string {
	entries, err := fs.ReadDir(LevelsFS, ".")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
			names = append(names, strings.TrimSuffix(e.Name(), ".json"))
		}
	}
	return names
}

func cleanLevelName(name string) string {
	s := filepath.ToSlash(strings.TrimSpace(name))
	s = strings.TrimPrefix(s, "levels/")
	if s == "" {
		s = "tower"
	}
	if !strings.HasSuffix(s, ".json") {
		s += ".json"
	}
	return s
}
