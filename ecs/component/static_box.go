package component

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
)

// StaticBox is one axis-aligned block of level geometry. The level loader
// mirrors every StaticBox into the world's PhysicsWorld.
type StaticBox struct {
	Name  string
	Min   mgl64.Vec3
	Max   mgl64.Vec3
	Color color.Color
}

var StaticBoxComponent = NewComponent[StaticBox]()
