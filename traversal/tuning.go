package traversal

import "time"

// Tuning holds the per-avatar constants the states read.
type Tuning struct {
	LedgeGrabHeightOffset float64
	LedgeGrabNormalOffset float64
	LedgeSnapDuration     time.Duration

	WallSlideDistance     float64
	WallSlideMaxRiseSpeed float64
	WallSlideGravityScale float64

	WallJumpForward float64
	WallJumpUp      float64

	DefaultRotationRate Rotator
	ApexGravityScale    float64
}

// DefaultTuning returns the stock values of the jumper avatar.
func DefaultTuning() Tuning {
	return Tuning{
		LedgeGrabHeightOffset: 100,
		LedgeGrabNormalOffset: 100,
		LedgeSnapDuration:     100 * time.Millisecond,

		WallSlideDistance:     70,
		WallSlideMaxRiseSpeed: 5,
		WallSlideGravityScale: 0.3,

		WallJumpForward: 500,
		WallJumpUp:      700,

		DefaultRotationRate: YawRate(540),
		ApexGravityScale:    2,
	}
}
