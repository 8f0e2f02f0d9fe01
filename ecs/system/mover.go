package system

import (
	"log"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/jumper/ecs"
	"github.com/milk9111/jumper/ecs/component"
	"github.com/milk9111/jumper/traversal"
)

// bodyMover exposes an avatar's components to its traversal machine.
type bodyMover struct {
	w         *ecs.World
	e         ecs.Entity
	transform *component.Transform
	body      *component.PhysicsBody
	gravity   *component.GravityScale
}

// newBodyMover resolves the components a machine needs. A missing
// GravityScale is added with scale 1.
func newBodyMover(w *ecs.World, e ecs.Entity) (*bodyMover, bool) {
	transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return nil, false
	}
	body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if !ok {
		return nil, false
	}
	gravity, ok := ecs.Get(w, e, component.GravityScaleComponent.Kind())
	if !ok {
		gravity = &component.GravityScale{Scale: 1}
		if err := ecs.Add(w, e, component.GravityScaleComponent.Kind(), gravity); err != nil {
			log.Printf("mover: entity=%v add gravity scale: %v", e, err)
			return nil, false
		}
	}
	return &bodyMover{w: w, e: e, transform: transform, body: body, gravity: gravity}, true
}

func (m *bodyMover) Position() mgl64.Vec3 {
	return m.transform.Position
}

func (m *bodyMover) Rotation() traversal.Rotator {
	return m.transform.Rotation
}

func (m *bodyMover) SetRotation(r traversal.Rotator) {
	m.transform.Rotation = r.Normalized()
}

func (m *bodyMover) MovementMode() traversal.MovementMode {
	return m.body.Mode
}

func (m *bodyMover) SetMovementMode(mode traversal.MovementMode) {
	m.body.Mode = mode
}

func (m *bodyMover) Velocity() mgl64.Vec3 {
	return m.body.Velocity
}

func (m *bodyMover) SetVelocity(v mgl64.Vec3) {
	m.body.Velocity = v
}

func (m *bodyMover) GravityScale() float64 {
	return m.gravity.Scale
}

func (m *bodyMover) SetGravityScale(scale float64) {
	m.gravity.Scale = scale
}

func (m *bodyMover) SetRotationRate(rate traversal.Rotator) {
	m.body.RotationRate = rate
}

func (m *bodyMover) StopImmediately() {
	m.body.Velocity = mgl64.Vec3{}
	m.body.PrevVelocityZ = 0
}

// Jump only leaves the ground; there is no jump in the air.
func (m *bodyMover) Jump() {
	if m.body.Mode != traversal.Walking {
		return
	}
	m.body.Velocity[2] = m.body.JumpZVelocity
	m.body.PrevVelocityZ = m.body.JumpZVelocity
	m.body.Mode = traversal.Falling
}

func (m *bodyMover) Launch(v mgl64.Vec3, overrideXY, overrideZ bool) {
	vel := m.body.Velocity
	if overrideXY {
		vel[0], vel[1] = v.X(), v.Y()
	} else {
		vel[0] += v.X()
		vel[1] += v.Y()
	}
	if overrideZ {
		vel[2] = v.Z()
	} else {
		vel[2] += v.Z()
	}
	m.body.Velocity = vel
	m.body.PrevVelocityZ = vel.Z()
	m.body.Mode = traversal.Falling
}

// MoveTo replaces any LedgeSnap on the entity; MovementSystem advances it.
func (m *bodyMover) MoveTo(target mgl64.Vec3, orient traversal.Rotator, duration time.Duration) traversal.MoveHandle {
	if prev, ok := ecs.Get(m.w, m.e, component.LedgeSnapComponent.Kind()); ok && !prev.Done() {
		prev.Cancel()
	}
	snap := &component.LedgeSnap{
		FromPosition: m.transform.Position,
		ToPosition:   target,
		FromRotation: m.transform.Rotation,
		ToRotation:   orient.Normalized(),
		Duration:     duration,
	}
	if err := ecs.Add(m.w, m.e, component.LedgeSnapComponent.Kind(), snap); err != nil {
		log.Printf("mover: entity=%v start ledge snap: %v", m.e, err)
		snap.Finished = true
	}
	return snap
}
