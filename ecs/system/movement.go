package system

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/jumper/common"
	"github.com/milk9111/jumper/ecs"
	"github.com/milk9111/jumper/ecs/component"
	"github.com/milk9111/jumper/traversal"
)

const (
	// stepHeight is how far above the feet a box top may sit and still be
	// walked onto.
	stepHeight = 8.0
	// skin keeps a resolved capsule just outside the surface it touched.
	skin          = 0.01
	maxSlideIters = 3
)

// MovementSystem integrates avatar bodies: ledge snaps, planar input,
// orientation toward movement, gravity, wall blocking and floor contact.
// It raises the machine's apex and landing hooks.
type MovementSystem struct {
	Delta float64
}

func NewMovementSystem() *MovementSystem {
	return &MovementSystem{Delta: common.FixedDelta}
}

func (s *MovementSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := s.Delta
	if dt <= 0 {
		dt = common.FixedDelta
	}
	pw := w.PhysicsWorld()

	ecs.ForEach3(w, component.TransformComponent.Kind(), component.PhysicsBodyComponent.Kind(), component.TraversalComponent.Kind(), func(e ecs.Entity, tr *component.Transform, body *component.PhysicsBody, trav *component.Traversal) {
		if trav.Machine == nil {
			return
		}
		if advanceSnap(w, e, tr, dt) {
			return
		}
		if body.Mode == traversal.Flying {
			return
		}

		var in component.Input
		if p, ok := ecs.Get(w, e, component.InputComponent.Kind()); ok {
			in = *p
		}
		gravity := 1.0
		if g, ok := ecs.Get(w, e, component.GravityScaleComponent.Kind()); ok {
			gravity = g.Scale
		}

		var wish mgl64.Vec3
		if !trav.Machine.SuppressesMovementInput() {
			wish = mgl64.Vec3{in.MoveX, in.MoveY, 0}
			if l := wish.Len(); l > 1 {
				wish = wish.Mul(1 / l)
			}
		}

		accelerate(body, wish, dt)
		orientToMovement(tr, body, wish, dt)

		prevZ := body.PrevVelocityZ
		if body.Mode == traversal.Falling {
			body.Velocity[2] -= common.Gravity * gravity * dt
			if prevZ > 0 && body.Velocity.Z() <= 0 {
				trav.Machine.Apex()
			}
		}

		pos := movePlanar(pw, tr.Position, body, dt)
		pos = moveVertical(pw, pos, body, trav.Machine, dt)

		tr.Position = pos
		body.PrevVelocityZ = body.Velocity.Z()
	})
}

// advanceSnap steps an in-flight ledge snap and reports whether it owns the
// pose this step.
func advanceSnap(w *ecs.World, e ecs.Entity, tr *component.Transform, dt float64) bool {
	snap, ok := ecs.Get(w, e, component.LedgeSnapComponent.Kind())
	if !ok {
		return false
	}
	if snap.Cancelled {
		ecs.Remove(w, e, component.LedgeSnapComponent.Kind())
		return false
	}

	snap.Elapsed += time.Duration(dt * float64(time.Second))
	t := snap.Progress()
	tr.Position = common.LerpVec3(snap.FromPosition, snap.ToPosition, t)
	tr.Rotation = traversal.Rotator{
		Pitch: common.LerpAngle(snap.FromRotation.Pitch, snap.ToRotation.Pitch, t),
		Yaw:   common.LerpAngle(snap.FromRotation.Yaw, snap.ToRotation.Yaw, t),
		Roll:  common.LerpAngle(snap.FromRotation.Roll, snap.ToRotation.Roll, t),
	}.Normalized()

	if t >= 1 {
		snap.Finished = true
		ecs.Remove(w, e, component.LedgeSnapComponent.Kind())
	}
	return true
}

func accelerate(body *component.PhysicsBody, wish mgl64.Vec3, dt float64) {
	planar := common.Planar(body.Velocity)
	accel := body.Acceleration
	if body.Mode == traversal.Falling {
		if wish.Len() == 0 {
			return
		}
		accel *= body.AirControl
	}

	diff := wish.Mul(body.MaxWalkSpeed).Sub(planar)
	if maxStep := accel * dt; diff.Len() > maxStep {
		diff = diff.Normalize().Mul(maxStep)
	}
	planar = planar.Add(diff)
	body.Velocity[0], body.Velocity[1] = planar.X(), planar.Y()
}

func orientToMovement(tr *component.Transform, body *component.PhysicsBody, wish mgl64.Vec3, dt float64) {
	rate := body.RotationRate.Yaw
	if rate <= 0 || wish.Len() == 0 {
		return
	}
	target := mgl64.RadToDeg(math.Atan2(wish.Y(), wish.X()))
	tr.Rotation.Yaw = traversal.NormalizeAxis(common.MoveTowardAngle(tr.Rotation.Yaw, target, rate*dt))
}

// movePlanar sweeps the capsule along its planar velocity, sliding along
// the walls it touches.
func movePlanar(pw *ecs.PhysicsWorld, pos mgl64.Vec3, body *component.PhysicsBody, dt float64) mgl64.Vec3 {
	delta := common.Planar(body.Velocity).Mul(dt)
	if pw == nil {
		return pos.Add(delta)
	}
	zMin := pos.Z() - body.HalfHeight + stepHeight
	zMax := pos.Z() + body.HalfHeight

	for i := 0; i < maxSlideIters && delta.Len() > 1e-9; i++ {
		end := pos.Add(delta)
		hit, ok := pw.SweepPlanar(pos, end, body.Radius, zMin, zMax)
		if !ok {
			return end
		}
		n := hit.Normal
		pos = hit.Point.Add(n.Mul(skin))
		rest := end.Sub(hit.Point)
		delta = rest.Sub(n.Mul(rest.Dot(n)))
		if vn := body.Velocity.Dot(n); vn < 0 {
			body.Velocity = body.Velocity.Sub(n.Mul(vn))
		}
	}
	return pos
}

// moveVertical applies vertical velocity against ceilings and floors and
// switches between Walking and Falling.
func moveVertical(pw *ecs.PhysicsWorld, pos mgl64.Vec3, body *component.PhysicsBody, m *traversal.Machine, dt float64) mgl64.Vec3 {
	feet := pos.Z() - body.HalfHeight
	ground, onSomething := pw.GroundHeight(pos, body.Radius, feet+stepHeight)

	if body.Mode == traversal.Walking {
		if onSomething && feet-ground <= stepHeight {
			body.Velocity[2] = 0
			pos[2] = ground + body.HalfHeight
			return pos
		}
		body.Mode = traversal.Falling
	}

	vz := body.Velocity.Z()
	newZ := pos.Z() + vz*dt

	if vz > 0 {
		head := pos.Add(mgl64.Vec3{0, 0, body.HalfHeight})
		if hit, ok := pw.Raycast(head, head.Add(mgl64.Vec3{0, 0, vz * dt})); ok && hit.Normal.Z() < -walkableNormalZ {
			newZ = hit.Point.Z() - body.HalfHeight - skin
			body.Velocity[2] = 0
		}
	}

	if onSomething && vz <= 0 && newZ-body.HalfHeight <= ground {
		pos[2] = ground + body.HalfHeight
		body.Velocity[2] = 0
		body.Mode = traversal.Walking
		m.Landed()
		return pos
	}
	pos[2] = newZ
	return pos
}
