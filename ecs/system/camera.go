package system

import (
	"github.com/milk9111/jumper/ecs"
	"github.com/milk9111/jumper/ecs/component"
)

// CameraSystem eases the side-view camera toward the avatar it follows.
type CameraSystem struct {
	camEntity    ecs.Entity
	targetEntity ecs.Entity
}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{}
}

func (cs *CameraSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	if !ecs.IsAlive(w, cs.camEntity) {
		camEntity, ok := ecs.First(w, component.CameraComponent.Kind())
		if !ok {
			return
		}
		cs.camEntity = camEntity
		cs.targetEntity = 0
	}
	cam, ok := ecs.Get(w, cs.camEntity, component.CameraComponent.Kind())
	if !ok {
		return
	}

	if !ecs.IsAlive(w, cs.targetEntity) {
		cs.targetEntity = findAvatarByName(w, cam.TargetName)
		if !cs.targetEntity.Valid() {
			return
		}
		// first sight: jump straight to the target
		if tr, ok := ecs.Get(w, cs.targetEntity, component.TransformComponent.Kind()); ok {
			cam.X, cam.Z = tr.Position.X(), tr.Position.Z()
		}
	}

	tr, ok := ecs.Get(w, cs.targetEntity, component.TransformComponent.Kind())
	if !ok {
		return
	}
	smooth := cam.Smoothness
	if smooth <= 0 || smooth > 1 {
		smooth = 1
	}
	cam.X += (tr.Position.X() - cam.X) * smooth
	cam.Z += (tr.Position.Z() - cam.Z) * smooth

	if bounds, ok := firstLevelBounds(w); ok {
		cam.Z = max(cam.Z, bounds.Min.Z())
	}
}

// findAvatarByName returns the avatar tagged name, or the first avatar when
// name is empty.
func findAvatarByName(w *ecs.World, name string) ecs.Entity {
	var found ecs.Entity
	ecs.ForEach(w, component.AvatarTagComponent.Kind(), func(e ecs.Entity, tag *component.AvatarTag) {
		if found.Valid() {
			return
		}
		if name == "" || tag.Name == name {
			found = e
		}
	})
	return found
}

func firstLevelBounds(w *ecs.World) (*component.LevelBounds, bool) {
	e, ok := ecs.First(w, component.LevelBoundsComponent.Kind())
	if !ok {
		return nil, false
	}
	return ecs.Get(w, e, component.LevelBoundsComponent.Kind())
}
