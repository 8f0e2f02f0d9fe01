package entity

import (
	"fmt"
	"log"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/jumper/ecs"
	"github.com/milk9111/jumper/ecs/component"
	"github.com/milk9111/jumper/levels"
	"github.com/milk9111/jumper/prefabs"
)

// LoadLevelToWorld creates a StaticBox entity per level box, indexes the
// boxes for collision queries and spawns the level's entities.
func LoadLevelToWorld(world *ecs.World, lvl *levels.Level) error {
	if world == nil || lvl == nil {
		return fmt.Errorf("load level: nil world or level")
	}

	boxes := make([]ecs.Box, 0, len(lvl.Boxes))
	bounds := component.LevelBounds{
		Min: mgl64.Vec3{math.Inf(1), math.Inf(1), math.Inf(1)},
		Max: mgl64.Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)},
	}
	for _, b := range lvl.Boxes {
		box := ecs.Box{Name: b.Name, Min: mgl64.Vec3(b.Min), Max: mgl64.Vec3(b.Max)}
		boxes = append(boxes, box)

		static := &component.StaticBox{Name: b.Name, Min: box.Min, Max: box.Max}
		if b.Color != "" {
			c, err := prefabs.ParseColor(b.Color)
			if err != nil {
				log.Printf("level: box %q: %v", b.Name, err)
			} else {
				static.Color = c
			}
		}
		e := ecs.CreateEntity(world)
		if err := ecs.Add(world, e, component.StaticBoxComponent.Kind(), static); err != nil {
			return err
		}

		for i := 0; i < 3; i++ {
			bounds.Min[i] = math.Min(bounds.Min[i], math.Min(b.Min[i], b.Max[i]))
			bounds.Max[i] = math.Max(bounds.Max[i], math.Max(b.Min[i], b.Max[i]))
		}
	}
	if len(boxes) > 0 {
		e := ecs.CreateEntity(world)
		if err := ecs.Add(world, e, component.LevelBoundsComponent.Kind(), &bounds); err != nil {
			return err
		}
	}
	world.SetPhysicsWorld(ecs.NewPhysicsWorld(boxes))

	for _, ent := range lvl.Entities {
		pos := mgl64.Vec3{ent.X, ent.Y, ent.Z}
		switch strings.ToLower(ent.Type) {
		case "avatar":
			avatar, err := NewAvatarAt(world, ent.Prop("prefab"), pos, ent.Yaw)
			if err != nil {
				return err
			}
			if name := ent.Prop("name"); name != "" {
				if err := RenameAvatar(world, avatar, name); err != nil {
					return err
				}
			}
			if script := ent.Prop("script"); script != "" {
				if err := AttachScript(world, avatar, script); err != nil {
					return err
				}
			}
		case "camera":
			if _, err := NewCameraAt(world, pos); err != nil {
				return err
			}
		default:
			log.Printf("level: %q: unknown entity type %q", lvl.Name, ent.Type)
		}
	}

	return nil
}
