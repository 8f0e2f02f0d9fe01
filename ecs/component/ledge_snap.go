package component

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/jumper/traversal"
)

// LedgeSnap is an in-flight one-shot interpolation of an avatar's pose. It
// is also the traversal.MoveHandle returned to the state that started it.
type LedgeSnap struct {
	FromPosition mgl64.Vec3
	ToPosition   mgl64.Vec3
	FromRotation traversal.Rotator
	ToRotation   traversal.Rotator

	Duration time.Duration
	Elapsed  time.Duration

	Finished  bool
	Cancelled bool
}

var LedgeSnapComponent = NewComponent[LedgeSnap]()

func (s *LedgeSnap) Done() bool {
	return s.Finished || s.Cancelled
}

// Cancel stops the move where it is.
func (s *LedgeSnap) Cancel() {
	s.Cancelled = true
}

// Progress returns the normalized time of the move in [0, 1].
func (s *LedgeSnap) Progress() float64 {
	if s.Duration <= 0 {
		return 1
	}
	t := float64(s.Elapsed) / float64(s.Duration)
	if t > 1 {
		return 1
	}
	return t
}
