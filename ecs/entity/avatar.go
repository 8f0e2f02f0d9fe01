package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/jumper/ecs"
	"github.com/milk9111/jumper/ecs/component"
	"github.com/milk9111/jumper/prefabs"
	"github.com/milk9111/jumper/traversal"
)

const DefaultAvatarPrefab = "avatar.yaml"

func NewAvatar(w *ecs.World) (ecs.Entity, error) {
	return BuildEntity(w, DefaultAvatarPrefab)
}

// NewAvatarAt builds prefab (the default avatar when empty) standing at pos
// facing yaw.
func NewAvatarAt(w *ecs.World, prefab string, pos mgl64.Vec3, yaw float64) (ecs.Entity, error) {
	if prefab == "" {
		prefab = DefaultAvatarPrefab
	}
	avatar, err := BuildEntity(w, prefab)
	if err != nil {
		return 0, err
	}
	if err := SetEntityTransform(w, avatar, pos, yaw); err != nil {
		return 0, fmt.Errorf("avatar: override transform: %w", err)
	}
	return avatar, nil
}

// RenameAvatar changes the name the camera and logs know the avatar by.
func RenameAvatar(w *ecs.World, e ecs.Entity, name string) error {
	tag, ok := ecs.Get(w, e, component.AvatarTagComponent.Kind())
	if !ok {
		return fmt.Errorf("avatar: entity %v has no avatar tag", e)
	}
	tag.Name = name
	return nil
}

// AttachScript hands the avatar's input to the named tengo script.
func AttachScript(w *ecs.World, e ecs.Entity, script string) error {
	if script == "" {
		return fmt.Errorf("avatar: empty script name")
	}
	if !ecs.Has(w, e, component.InputComponent.Kind()) {
		if err := ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{}); err != nil {
			return fmt.Errorf("avatar: add input: %w", err)
		}
	}
	return ecs.Add(w, e, component.ScriptInputComponent.Kind(), &component.ScriptInput{Name: script})
}

// AvatarTuning reads the traversal tuning of prefab as it is on disk now.
func AvatarTuning(prefab string) (traversal.Tuning, error) {
	spec, err := prefabs.LoadEntityBuildSpec(prefab)
	if err != nil {
		return traversal.Tuning{}, err
	}
	tr, err := prefabs.DecodeComponentSpec[prefabs.TraversalComponentSpec](spec.Components["traversal"])
	if err != nil {
		return traversal.Tuning{}, fmt.Errorf("avatar: decode traversal of %q: %w", prefab, err)
	}
	return tr.Tuning(), nil
}

// AvatarsFromPrefab lists the avatars built from prefab.
func AvatarsFromPrefab(w *ecs.World, prefab string) []ecs.Entity {
	var out []ecs.Entity
	ecs.ForEach(w, component.AvatarTagComponent.Kind(), func(e ecs.Entity, tag *component.AvatarTag) {
		if tag.Prefab == prefab {
			out = append(out, e)
		}
	})
	return out
}
