package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/jumper/ecs"
	"github.com/milk9111/jumper/ecs/component"
	"github.com/milk9111/jumper/traversal"
)

// Faces whose normal Z is within this of 0 count as walls, above it as
// floors.
const walkableNormalZ = 0.5

// PerceptionSystem probes the level around every avatar and stores the
// result as the avatar's sensor snapshot for this step.
type PerceptionSystem struct{}

func NewPerceptionSystem() *PerceptionSystem {
	return &PerceptionSystem{}
}

func (p *PerceptionSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	pw := w.PhysicsWorld()
	ecs.ForEach2(w, component.TransformComponent.Kind(), component.SensorsComponent.Kind(), func(e ecs.Entity, tr *component.Transform, sensors *component.Sensors) {
		sensors.Snapshot = Sense(pw, tr.Position, tr.Rotation, sensors)
	})
}

// Sense runs the wall, floor and ledge probes of s from pos facing rot. The
// ledge probe only counts while the wall probe has a hit, since the ledge
// grab is placed relative to that wall.
func Sense(pw *ecs.PhysicsWorld, pos mgl64.Vec3, rot traversal.Rotator, s *component.Sensors) traversal.SensorSnapshot {
	var snap traversal.SensorSnapshot
	if pw == nil || s == nil {
		return snap
	}

	wall := traversal.WallProbe(pos, rot, s.WallZOffset, s.WallLength)
	if hit, ok := pw.Raycast(wall.Start, wall.End); ok && isWallNormal(hit.Normal) {
		snap.NearWall = true
		snap.WallImpactPoint = hit.Point
		snap.WallNormal = hit.Normal
	}

	floor := traversal.FloorProbe(pos, rot, s.FloorDistance)
	if hit, ok := pw.Raycast(floor.Start, floor.End); ok && hit.Normal.Z() > walkableNormalZ {
		snap.NearFloor = true
	}

	if snap.NearWall {
		ledge := traversal.LedgeProbe(pos, rot, s.LedgeStartHeight, s.LedgeDistance, s.LedgeForwardOffset)
		if hit, ok := pw.Raycast(ledge.Start, ledge.End); ok && hit.Normal.Z() > walkableNormalZ {
			snap.NearLedgeHeight = true
			snap.LedgeHeight = hit.Point
		}
	}
	return snap
}

func isWallNormal(n mgl64.Vec3) bool {
	return n.Z() < walkableNormalZ && n.Z() > -walkableNormalZ
}

// ProbeSegments returns the wall, floor and ledge probes of s, for drawing.
func ProbeSegments(pos mgl64.Vec3, rot traversal.Rotator, s *component.Sensors) [3]traversal.Segment {
	return [3]traversal.Segment{
		traversal.WallProbe(pos, rot, s.WallZOffset, s.WallLength),
		traversal.FloorProbe(pos, rot, s.FloorDistance),
		traversal.LedgeProbe(pos, rot, s.LedgeStartHeight, s.LedgeDistance, s.LedgeForwardOffset),
	}
}
