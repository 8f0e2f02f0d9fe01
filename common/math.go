package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	// Gravity is the world gravity magnitude in units/s^2 along -Z.
	Gravity = 980.0
	// FixedDelta is the simulation step in seconds.
	FixedDelta = 1.0 / 60.0
)

func Lerp(a, b, t float32) float32 {
	return a + t*(b-a)
}

func Lerp64(a, b, t float64) float64 {
	return a + t*(b-a)
}

func LerpVec3(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

// LerpAngle interpolates between two angles in degrees along the shorter arc.
func LerpAngle(a, b, t float64) float64 {
	d := math.Mod(b-a, 360)
	if d > 180 {
		d -= 360
	} else if d < -180 {
		d += 360
	}
	return a + d*t
}

// MoveTowardAngle steps current toward target by at most maxStep degrees.
func MoveTowardAngle(current, target, maxStep float64) float64 {
	d := math.Mod(target-current, 360)
	if d > 180 {
		d -= 360
	} else if d < -180 {
		d += 360
	}
	if math.Abs(d) <= maxStep {
		return current + d
	}
	if d < 0 {
		return current - maxStep
	}
	return current + maxStep
}

func Clamp01(t float64) float64 {
	return math.Max(0, math.Min(1, t))
}

// SmoothStep eases t in [0,1].
func SmoothStep(t float64) float64 {
	t = Clamp01(t)
	return t * t * (3 - 2*t)
}

// Planar drops the Z component.
func Planar(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X(), v.Y(), 0}
}
