package component

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/jumper/traversal"
)

// PhysicsBody is the kinematic capsule of an avatar and the movement
// parameters the traversal states tune.
type PhysicsBody struct {
	Velocity     mgl64.Vec3
	Mode         traversal.MovementMode
	RotationRate traversal.Rotator

	Radius     float64
	HalfHeight float64

	JumpZVelocity float64
	AirControl    float64
	MaxWalkSpeed  float64
	Acceleration  float64

	// PrevVelocityZ is last step's vertical speed, used to spot the apex.
	PrevVelocityZ float64
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()

// DefaultPhysicsBody returns the stock avatar capsule, standing.
func DefaultPhysicsBody() PhysicsBody {
	return PhysicsBody{
		Mode:          traversal.Walking,
		RotationRate:  traversal.DefaultTuning().DefaultRotationRate,
		Radius:        42,
		HalfHeight:    96,
		JumpZVelocity: 600,
		AirControl:    0.2,
		MaxWalkSpeed:  600,
		Acceleration:  2048,
	}
}
