package component

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// Climb drives the ledge climb while the machine sits in Climbing. The
// machine only waits for Walking; this component is what gets it there.
type Climb struct {
	Duration time.Duration

	Active  bool
	Elapsed time.Duration
	From    mgl64.Vec3
	To      mgl64.Vec3
}

var ClimbComponent = NewComponent[Climb]()
