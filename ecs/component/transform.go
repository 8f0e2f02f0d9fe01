package component

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/jumper/traversal"
)

// Transform is the world pose of an entity. For avatars Position is the
// capsule center.
type Transform struct {
	Position mgl64.Vec3
	Rotation traversal.Rotator
}

var TransformComponent = NewComponent[Transform]()
