package traversal

import "github.com/go-gl/mathgl/mgl64"

// SensorSnapshot is the result of one step of environment probing.
// It is handed to Dispatch by value, so a single dispatch always sees
// the same readings even if the probes run again afterwards.
type SensorSnapshot struct {
	NearFloor       bool
	NearWall        bool
	NearLedgeHeight bool

	WallImpactPoint mgl64.Vec3
	WallNormal      mgl64.Vec3
	LedgeHeight     mgl64.Vec3
}

// Input is the held state of the traversal buttons for one step.
type Input struct {
	Jump   bool
	Crouch bool
}
