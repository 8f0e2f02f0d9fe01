package system

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/jumper/ecs"
	"github.com/milk9111/jumper/ecs/component"
	"github.com/milk9111/jumper/prefabs"
)

// Globals a script reads each step.
var scriptInputGlobals = map[string]any{
	"frame":      int64(0),
	"state":      "",
	"mode":       "",
	"near_wall":  false,
	"near_floor": false,
	"near_ledge": false,
	"pos_x":      0.0,
	"pos_y":      0.0,
	"pos_z":      0.0,
	"vel_z":      0.0,
}

// Globals a script writes. They are reset before every run.
var scriptOutputGlobals = map[string]any{
	"jump":   false,
	"crouch": false,
	"move_x": 0.0,
	"move_y": 0.0,
}

type inputScriptRuntime struct {
	name     string
	compiled *tengo.Compiled
	mem      *tengo.Map
}

// ScriptInputSystem runs the tengo script of every ScriptInput avatar once
// per step and copies its outputs into the avatar's Input. A script keeps
// data between steps in the `mem` map.
type ScriptInputSystem struct {
	// Load resolves a script name to its source.
	Load func(name string) ([]byte, error)

	runtimes map[ecs.Entity]*inputScriptRuntime
	failed   map[string]bool
}

func NewScriptInputSystem() *ScriptInputSystem {
	return &ScriptInputSystem{Load: prefabs.LoadScript}
}

func (s *ScriptInputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach2(w, component.ScriptInputComponent.Kind(), component.InputComponent.Kind(), func(e ecs.Entity, script *component.ScriptInput, input *component.Input) {
		rt, err := s.runtime(e, script.Name)
		if err != nil {
			if !s.failed[script.Name] {
				log.Printf("script input: entity=%v load %q: %v", e, script.Name, err)
				s.failed[script.Name] = true
			}
			*input = component.Input{}
			return
		}
		if err := rt.run(scriptInputs(w, e)); err != nil {
			log.Printf("script input: entity=%v run %q: %v", e, script.Name, err)
			s.failed[script.Name] = true
			delete(s.runtimes, e)
			*input = component.Input{}
			return
		}
		input.Jump = rt.compiled.Get("jump").Bool()
		input.Crouch = rt.compiled.Get("crouch").Bool()
		input.MoveX = rt.compiled.Get("move_x").Float()
		input.MoveY = rt.compiled.Get("move_y").Float()
	})
}

// Invalidate drops compiled scripts named name so they reload from disk on
// the next step. Script memory starts over.
func (s *ScriptInputSystem) Invalidate(name string) {
	name = filepath.ToSlash(strings.TrimSpace(name))
	matches := func(n string) bool {
		return n != "" && (n == name || strings.HasSuffix(name, "/"+n))
	}
	for e, rt := range s.runtimes {
		if matches(rt.name) {
			delete(s.runtimes, e)
		}
	}
	for n := range s.failed {
		if matches(n) {
			delete(s.failed, n)
		}
	}
}

// Reset drops every compiled script, for when the world they ran against
// is replaced.
func (s *ScriptInputSystem) Reset() {
	s.runtimes = nil
	s.failed = nil
}

func (s *ScriptInputSystem) runtime(e ecs.Entity, name string) (*inputScriptRuntime, error) {
	if s.runtimes == nil {
		s.runtimes = map[ecs.Entity]*inputScriptRuntime{}
	}
	if s.failed == nil {
		s.failed = map[string]bool{}
	}
	if rt, ok := s.runtimes[e]; ok && rt.name == name {
		return rt, nil
	}
	if s.failed[name] {
		return nil, fmt.Errorf("script %q failed to compile", name)
	}
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("empty script name")
	}

	load := s.Load
	if load == nil {
		load = prefabs.LoadScript
	}
	src, err := load(name)
	if err != nil {
		return nil, err
	}
	compiled, err := compileInputScript(src)
	if err != nil {
		return nil, err
	}

	rt := &inputScriptRuntime{
		name:     name,
		compiled: compiled,
		mem:      &tengo.Map{Value: map[string]tengo.Object{}},
	}
	s.runtimes[e] = rt
	return rt, nil
}

func compileInputScript(src []byte) (*tengo.Compiled, error) {
	script := tengo.NewScript(src)
	for name, v := range scriptInputGlobals {
		if err := script.Add(name, v); err != nil {
			return nil, err
		}
	}
	for name, v := range scriptOutputGlobals {
		if err := script.Add(name, v); err != nil {
			return nil, err
		}
	}
	if err := script.Add("mem", map[string]any{}); err != nil {
		return nil, err
	}
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	return script.Compile()
}

// run executes the script once. A panic inside the VM is returned as an
// error.
func (rt *inputScriptRuntime) run(inputs map[string]any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("script panicked: %v", r)
		}
	}()

	for name, v := range inputs {
		if err := rt.compiled.Set(name, v); err != nil {
			return err
		}
	}
	for name, v := range scriptOutputGlobals {
		if err := rt.compiled.Set(name, v); err != nil {
			return err
		}
	}
	if err := rt.compiled.Set("mem", rt.mem); err != nil {
		return err
	}
	return rt.compiled.Run()
}

func scriptInputs(w *ecs.World, e ecs.Entity) map[string]any {
	in := map[string]any{"frame": int64(w.Frame())}
	if tr, ok := ecs.Get(w, e, component.TraversalComponent.Kind()); ok && tr.Machine != nil {
		in["state"] = tr.Machine.State().String()
	}
	if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok {
		in["mode"] = body.Mode.String()
		in["vel_z"] = body.Velocity.Z()
	}
	if sensors, ok := ecs.Get(w, e, component.SensorsComponent.Kind()); ok {
		in["near_wall"] = sensors.Snapshot.NearWall
		in["near_floor"] = sensors.Snapshot.NearFloor
		in["near_ledge"] = sensors.Snapshot.NearLedgeHeight
	}
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		in["pos_x"] = t.Position.X()
		in["pos_y"] = t.Position.Y()
		in["pos_z"] = t.Position.Z()
	}
	return in
}
