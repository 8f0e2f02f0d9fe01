package traversal

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Rotator is an orientation (or angular rate) in degrees. Yaw turns about
// world up (+Z), pitch raises the forward axis toward +Z, roll spins about
// forward.
type Rotator struct {
	Pitch float64
	Yaw   float64
	Roll  float64
}

// YawRate returns a rotation rate that only turns about the up axis.
func YawRate(degPerSec float64) Rotator {
	return Rotator{Yaw: degPerSec}
}

func (r Rotator) IsZero() bool {
	return r.Pitch == 0 && r.Yaw == 0 && r.Roll == 0
}

// Normalized wraps every axis into (-180, 180].
func (r Rotator) Normalized() Rotator {
	return Rotator{
		Pitch: NormalizeAxis(r.Pitch),
		Yaw:   NormalizeAxis(r.Yaw),
		Roll:  NormalizeAxis(r.Roll),
	}
}

// Forward is the unit X axis of the rotation.
func (r Rotator) Forward() mgl64.Vec3 {
	sp, cp := sinCos(r.Pitch)
	sy, cy := sinCos(r.Yaw)
	return mgl64.Vec3{cp * cy, cp * sy, sp}
}

// Right is the unit Y axis of the rotation.
func (r Rotator) Right() mgl64.Vec3 {
	sp, cp := sinCos(r.Pitch)
	sy, cy := sinCos(r.Yaw)
	sr, cr := sinCos(r.Roll)
	return mgl64.Vec3{
		sr*sp*cy - cr*sy,
		sr*sp*sy + cr*cy,
		-sr * cp,
	}
}

// Up is the unit Z axis of the rotation.
func (r Rotator) Up() mgl64.Vec3 {
	sp, cp := sinCos(r.Pitch)
	sy, cy := sinCos(r.Yaw)
	sr, cr := sinCos(r.Roll)
	return mgl64.Vec3{
		-(cr*sp*cy + sr*sy),
		cy*sr - cr*sp*sy,
		cr * cp,
	}
}

// FacingRotator builds the rotation whose forward axis points along dir and
// whose up axis lies in the plane of dir and up.
func FacingRotator(dir, up mgl64.Vec3) Rotator {
	if dir.Len() == 0 {
		return Rotator{}
	}
	x := dir.Normalize()
	z := up
	if z.Len() == 0 {
		z = mgl64.Vec3{0, 0, 1}
	}
	z = z.Normalize()
	y := z.Cross(x)
	if y.Len() == 0 {
		// dir parallel to up; any yaw is as good as another
		y = mgl64.Vec3{0, 1, 0}
	}
	y = y.Normalize()
	z = x.Cross(y)

	pitch := mgl64.RadToDeg(math.Atan2(x.Z(), math.Hypot(x.X(), x.Y())))
	yaw := mgl64.RadToDeg(math.Atan2(x.Y(), x.X()))
	sy := Rotator{Pitch: pitch, Yaw: yaw}.Right()
	roll := mgl64.RadToDeg(math.Atan2(z.Dot(sy), y.Dot(sy)))

	return Rotator{Pitch: pitch, Yaw: yaw, Roll: roll}
}

// AlignToWall faces into the wall described by normal, keeping up as the
// avatar's vertical axis.
func AlignToWall(normal, up mgl64.Vec3) Rotator {
	return FacingRotator(normal.Mul(-1), up)
}

// NormalizeAxis wraps an angle in degrees into (-180, 180].
func NormalizeAxis(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg <= -180 {
		deg += 360
	} else if deg > 180 {
		deg -= 360
	}
	return deg
}

func sinCos(deg float64) (float64, float64) {
	return math.Sincos(mgl64.DegToRad(deg))
}
