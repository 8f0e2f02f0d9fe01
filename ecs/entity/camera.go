package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/jumper/ecs"
	"github.com/milk9111/jumper/ecs/component"
	"github.com/milk9111/jumper/prefabs"
)

func NewCamera(w *ecs.World) (ecs.Entity, error) {
	cameraSpec, err := prefabs.LoadCameraSpec()
	if err != nil {
		return 0, fmt.Errorf("camera: load spec: %w", err)
	}

	camera := ecs.CreateEntity(w)
	if err := ecs.Add(w, camera, component.TransformComponent.Kind(), &component.Transform{}); err != nil {
		return 0, fmt.Errorf("camera: add transform: %w", err)
	}

	smooth := cameraSpec.Smoothness
	if smooth == 0 {
		smooth = 0.15
	}
	zoom := cameraSpec.Zoom
	if zoom == 0 {
		zoom = 1
	}
	if err := ecs.Add(w, camera, component.CameraComponent.Kind(), &component.Camera{
		TargetName: cameraSpec.Target,
		Zoom:       zoom,
		Smoothness: smooth,
	}); err != nil {
		return 0, fmt.Errorf("camera: add camera component: %w", err)
	}

	return camera, nil
}

func NewCameraAt(w *ecs.World, pos mgl64.Vec3) (ecs.Entity, error) {
	camera, err := NewCamera(w)
	if err != nil {
		return 0, err
	}
	if err := SetEntityTransform(w, camera, pos, 0); err != nil {
		return 0, fmt.Errorf("camera: override transform: %w", err)
	}
	cam, _ := ecs.Get(w, camera, component.CameraComponent.Kind())
	cam.X, cam.Z = pos.X(), pos.Z()
	return camera, nil
}
