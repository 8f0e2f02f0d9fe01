package entity

import (
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/jumper/ecs"
	"github.com/milk9111/jumper/ecs/component"
	"github.com/milk9111/jumper/prefabs"
	"github.com/milk9111/jumper/traversal"
)

type entityPrefabSpec = prefabs.EntityBuildSpec

type buildContext struct {
	PrefabPath string
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"avatar_tag":    addAvatarTag,
	"input":         addInput,
	"script_input":  addScriptInput,
	"transform":     addTransform,
	"physics_body":  addPhysicsBody,
	"gravity_scale": addGravityScale,
	"sensors":       addSensors,
	"traversal":     addTraversal,
	"climb":         addClimb,
	"animation":     addAnimation,
	"camera":        addCamera,
}

var componentBuildOrder = []string{
	"avatar_tag",
	"input",
	"script_input",
	"transform",
	"physics_body",
	"gravity_scale",
	"sensors",
	"traversal",
	"climb",
	"animation",
	"camera",
}

func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	return buildFromSpec(w, spec, prefabPath)
}

func buildFromSpec(w *ecs.World, spec entityPrefabSpec, prefabPath string) (ecs.Entity, error) {
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath}

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	for _, name := range componentBuildOrder {
		raw, ok := remaining[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](w, e, raw, ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
		delete(remaining, name)
	}

	if len(remaining) > 0 {
		names := make([]string, 0, len(remaining))
		for name := range remaining {
			names = append(names, name)
		}
		sort.Strings(names)
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, names[0])
	}

	return e, nil
}

// SetEntityTransform places e at pos facing yaw, keeping pitch and roll.
func SetEntityTransform(w *ecs.World, e ecs.Entity, pos mgl64.Vec3, yaw float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		t = &component.Transform{}
	}
	t.Position = pos
	t.Rotation.Yaw = traversal.NormalizeAxis(yaw)
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

func addAvatarTag(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.AvatarTagComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode avatar_tag spec: %w", err)
	}
	return ecs.Add(w, e, component.AvatarTagComponent.Kind(), &component.AvatarTag{
		Name:   spec.Name,
		Prefab: ctx.PrefabPath,
	})
}

func addInput(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
}

func addScriptInput(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ScriptInputComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode script_input spec: %w", err)
	}
	if spec.Name == "" {
		return fmt.Errorf("script_input requires a name")
	}
	return ecs.Add(w, e, component.ScriptInputComponent.Kind(), &component.ScriptInput{Name: spec.Name})
}

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TransformComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		Position: mgl64.Vec3{spec.X, spec.Y, spec.Z},
		Rotation: traversal.Rotator{Pitch: spec.Pitch, Yaw: spec.Yaw, Roll: spec.Roll}.Normalized(),
	})
}

func addPhysicsBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.PhysicsBodyComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode physics_body spec: %w", err)
	}
	body := component.DefaultPhysicsBody()
	setFloat(&body.Radius, spec.Radius)
	setFloat(&body.HalfHeight, spec.HalfHeight)
	setFloat(&body.JumpZVelocity, spec.JumpZVelocity)
	setFloat(&body.AirControl, spec.AirControl)
	setFloat(&body.MaxWalkSpeed, spec.MaxWalkSpeed)
	setFloat(&body.Acceleration, spec.Acceleration)
	if spec.YawRate != nil {
		body.RotationRate = traversal.YawRate(*spec.YawRate)
	}
	if body.Radius <= 0 || body.HalfHeight <= 0 {
		return fmt.Errorf("physics_body needs a positive radius and half_height, got %v/%v", body.Radius, body.HalfHeight)
	}
	return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &body)
}

func addGravityScale(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.GravityScaleComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode gravity_scale spec: %w", err)
	}
	scale := spec.Scale
	if scale == 0 {
		scale = 1
	}
	return ecs.Add(w, e, component.GravityScaleComponent.Kind(), &component.GravityScale{Scale: scale})
}

func addSensors(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.SensorsComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode sensors spec: %w", err)
	}
	sensors := component.DefaultSensors()
	setFloat(&sensors.WallZOffset, spec.WallZOffset)
	setFloat(&sensors.WallLength, spec.WallLength)
	setFloat(&sensors.FloorDistance, spec.FloorDistance)
	setFloat(&sensors.LedgeStartHeight, spec.LedgeStartHeight)
	setFloat(&sensors.LedgeDistance, spec.LedgeDistance)
	setFloat(&sensors.LedgeForwardOffset, spec.LedgeForwardOffset)
	return ecs.Add(w, e, component.SensorsComponent.Kind(), &sensors)
}

func addTraversal(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TraversalComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode traversal spec: %w", err)
	}
	return ecs.Add(w, e, component.TraversalComponent.Kind(), &component.Traversal{Tuning: spec.Tuning()})
}

func addClimb(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ClimbComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode climb spec: %w", err)
	}
	return ecs.Add(w, e, component.ClimbComponent.Kind(), &component.Climb{Duration: spec.Duration})
}

func addAnimation(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.AnimationComponent.Kind(), &component.Animation{})
}

func addCamera(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.CameraComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode camera spec: %w", err)
	}
	return ecs.Add(w, e, component.CameraComponent.Kind(), &component.Camera{
		TargetName: spec.TargetName,
		Zoom:       spec.Zoom,
		Smoothness: spec.Smoothness,
	})
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}
