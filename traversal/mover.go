package traversal

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// Mover is the slice of the physics body the traversal states may read and
// write. Implementations own gravity, integration and collision.
type Mover interface {
	Position() mgl64.Vec3
	Rotation() Rotator
	SetRotation(r Rotator)

	MovementMode() MovementMode
	SetMovementMode(mode MovementMode)

	Velocity() mgl64.Vec3
	SetVelocity(v mgl64.Vec3)

	GravityScale() float64
	SetGravityScale(scale float64)
	SetRotationRate(rate Rotator)

	// StopImmediately zeroes velocity and any pending acceleration.
	StopImmediately()
	// Jump applies the body's own jump impulse.
	Jump()
	// Launch adds v to the velocity, or replaces the planar and/or
	// vertical components when the override flags are set.
	Launch(v mgl64.Vec3, overrideXY, overrideZ bool)
	// MoveTo starts a one-shot interpolation of position and orientation.
	// It returns immediately; the mover advances the move on its own clock.
	MoveTo(target mgl64.Vec3, orient Rotator, duration time.Duration) MoveHandle
}

// MoveHandle tracks an interpolated move started by Mover.MoveTo.
type MoveHandle interface {
	Done() bool
	Cancel()
}

// Notifier receives traversal mode changes meant for animation.
type Notifier interface {
	GrabLedge(grabbing bool)
	ClimbingLedge(climbing bool)
	WallSliding(sliding bool)
}
