package system

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/jumper/common"
	"github.com/milk9111/jumper/ecs"
	"github.com/milk9111/jumper/ecs/component"
	"github.com/milk9111/jumper/traversal"
)

const defaultClimbDuration = 600 * time.Millisecond

// ClimbSystem raises a Climbing avatar over the ledge it hangs from and
// sets it Walking on top, which is what lets the machine return to Idle.
type ClimbSystem struct {
	Delta float64
}

func NewClimbSystem() *ClimbSystem {
	return &ClimbSystem{Delta: common.FixedDelta}
}

func (s *ClimbSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := s.Delta
	if dt <= 0 {
		dt = common.FixedDelta
	}
	pw := w.PhysicsWorld()

	ecs.ForEach3(w, component.TransformComponent.Kind(), component.TraversalComponent.Kind(), component.ClimbComponent.Kind(), func(e ecs.Entity, tr *component.Transform, trav *component.Traversal, climb *component.Climb) {
		if trav.Machine == nil {
			return
		}
		body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if !ok {
			return
		}
		if !trav.Machine.IsClimbing() {
			climb.Active = false
			return
		}

		if !climb.Active {
			startClimb(pw, tr, body, trav.Machine.Tuning(), climb)
		}

		climb.Elapsed += time.Duration(dt * float64(time.Second))
		duration := climb.Duration
		if duration <= 0 {
			duration = defaultClimbDuration
		}
		t := common.Clamp01(float64(climb.Elapsed) / float64(duration))

		// rise first, then step over the lip
		rise := common.SmoothStep(2 * t)
		over := common.SmoothStep(2*t - 1)
		pos := common.LerpVec3(climb.From, climb.To, over)
		pos[2] = common.Lerp64(climb.From.Z(), climb.To.Z(), rise)
		tr.Position = pos

		if t >= 1 {
			climb.Active = false
			body.Velocity = mgl64.Vec3{}
			body.PrevVelocityZ = 0
			body.Mode = traversal.Walking
		}
	})
}

func startClimb(pw *ecs.PhysicsWorld, tr *component.Transform, body *component.PhysicsBody, tuning traversal.Tuning, climb *component.Climb) {
	forward := common.Planar(tr.Rotation.Forward())
	if forward.Len() > 0 {
		forward = forward.Normalize()
	}
	pos := tr.Position
	top := pos.Add(forward.Mul(tuning.LedgeGrabNormalOffset + body.Radius))

	ledgeZ := pos.Z() + tuning.LedgeGrabHeightOffset
	reach := tuning.LedgeGrabHeightOffset + 2*body.HalfHeight
	probe := mgl64.Vec3{top.X(), top.Y(), pos.Z() + reach}
	if hit, ok := pw.Raycast(probe, probe.Sub(mgl64.Vec3{0, 0, 2 * reach})); ok && hit.Normal.Z() > walkableNormalZ {
		ledgeZ = hit.Point.Z()
	}

	climb.Active = true
	climb.Elapsed = 0
	climb.From = pos
	climb.To = mgl64.Vec3{top.X(), top.Y(), ledgeZ + body.HalfHeight + skin}
}
