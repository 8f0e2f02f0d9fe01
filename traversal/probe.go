package traversal

import "github.com/go-gl/mathgl/mgl64"

// Segment is a probe ray from Start to End.
type Segment struct {
	Start mgl64.Vec3
	End   mgl64.Vec3
}

// WallProbe casts forward from zOffset above the avatar origin.
func WallProbe(pos mgl64.Vec3, rot Rotator, zOffset, length float64) Segment {
	start := pos.Add(mgl64.Vec3{0, 0, zOffset})
	return Segment{Start: start, End: start.Add(rot.Forward().Mul(length))}
}

// LedgeProbe casts down from startHeight above the avatar, forwardOffset in
// front of it.
func LedgeProbe(pos mgl64.Vec3, rot Rotator, startHeight, distance, forwardOffset float64) Segment {
	start := pos.Add(mgl64.Vec3{0, 0, startHeight}).Add(rot.Forward().Mul(forwardOffset))
	return Segment{Start: start, End: start.Sub(mgl64.Vec3{0, 0, distance})}
}

// FloorProbe casts down from one unit in front of the avatar origin.
func FloorProbe(pos mgl64.Vec3, rot Rotator, distance float64) Segment {
	start := pos.Add(rot.Forward())
	return Segment{Start: start, End: start.Sub(mgl64.Vec3{0, 0, distance})}
}

// LedgeGrabTarget is where the avatar origin hangs for the wall and ledge
// in snap: pushed off the wall along its normal and dropped below the lip.
func LedgeGrabTarget(snap SensorSnapshot, heightOffset, normalOffset float64) mgl64.Vec3 {
	return mgl64.Vec3{
		snap.WallImpactPoint.X() + snap.WallNormal.X()*normalOffset,
		snap.WallImpactPoint.Y() + snap.WallNormal.Y()*normalOffset,
		snap.LedgeHeight.Z() - heightOffset,
	}
}
