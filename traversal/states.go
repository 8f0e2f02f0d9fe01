package traversal

import "github.com/go-gl/mathgl/mgl64"

// State is one traversal mode. States are stateless singletons; anything
// that must survive between events lives on the Machine.
type State interface {
	ID() AvatarState
	Enter(m *Machine, snap SensorSnapshot)
	Exit(m *Machine)
	Update(m *Machine, ev Event, snap SensorSnapshot) Transition
}

// Transition is the result of State.Update: nothing, or a move to a sibling.
type Transition struct {
	next State
}

func NoTransition() Transition { return Transition{} }

func Sibling(s State) Transition { return Transition{next: s} }

// Target returns the requested state, or nil for no transition.

// State singletons (avoid allocations on transitions).
var (
	stateIdle        State = idleState{}
	stateJumping     State = jumpingState{}
	stateHanging     State = hangingState{}
	stateClimbing    State = climbingState{}
	stateWallSliding State = wallSlidingState{}
)

type idleState struct{}

type jumpingState struct{}

type hangingState struct{}

type climbingState struct{}

type wallSlidingState struct{}

func (idleState) ID() AvatarState { return Idle }
func (idleState) Enter(m *Machine, _ SensorSnapshot) {
	m.state = Idle
}
func (idleState) Exit(m *Machine) {}
func (idleState) Update(m *Machine, ev Event, _ SensorSnapshot) Transition {
	if ev != JumpPressed {
		return NoTransition()
	}
	// freeze auto-orientation for the whole arc
	m.mover.SetRotationRate(Rotator{})
	m.mover.Jump()
	return Sibling(stateJumping)
}

func (jumpingState) ID() AvatarState { return Jumping }
func (jumpingState) Enter(m *Machine, _ SensorSnapshot) {
	m.state = Jumping
}
func (jumpingState) Exit(m *Machine) {}
func (jumpingState) Update(m *Machine, ev Event, snap SensorSnapshot) Transition {
	if ev != Tick {
		return NoTransition()
	}
	if m.mover.MovementMode() == Walking {
		return Sibling(stateIdle)
	}
	if canGrabLedge(m, snap) {
		grabLedge(m, snap)
		return Sibling(stateHanging)
	}
	if canWallSlide(m, snap) {
		return Sibling(stateWallSliding)
	}
	return NoTransition()
}

func canGrabLedge(m *Machine, snap SensorSnapshot) bool {
	return !snap.NearFloor && snap.NearLedgeHeight && m.mover.MovementMode() == Falling
}

func grabLedge(m *Machine, snap SensorSnapshot) {
	mv := m.mover
	mv.StopImmediately()
	m.notifyGrabLedge(true)
	mv.SetMovementMode(Flying)

	t := m.tuning
	target := LedgeGrabTarget(snap, t.LedgeGrabHeightOffset, t.LedgeGrabNormalOffset)
	orient := AlignToWall(snap.WallNormal, mv.Rotation().Up())
	if m.snap != nil && !m.snap.Done() {
		m.snap.Cancel()
	}
	m.snap = mv.MoveTo(target, orient, t.LedgeSnapDuration)

	// these only show once the avatar leaves Hanging
	mv.SetRotationRate(t.DefaultRotationRate)
	mv.SetGravityScale(1)
}

func canWallSlide(m *Machine, snap SensorSnapshot) bool {
	mv := m.mover
	t := m.tuning
	if mv.Position().Sub(snap.WallImpactPoint).Len() >= t.WallSlideDistance {
		return false
	}
	return snap.NearWall && !snap.NearFloor && mv.Velocity().Z() < t.WallSlideMaxRiseSpeed
}

func (hangingState) ID() AvatarState { return Hanging }
func (hangingState) Enter(m *Machine, _ SensorSnapshot) {
	m.pending = nil
	m.state = Hanging
}
func (hangingState) Exit(m *Machine) {
	if m.snap != nil {
		if !m.snap.Done() {
			m.snap.Cancel()
		}
		m.snap = nil
	}
	m.notifyGrabLedge(false)
}
func (hangingState) Update(m *Machine, ev Event, _ SensorSnapshot) Transition {
	switch ev {
	case CrouchPressed:
		m.mover.SetMovementMode(Falling)
		return Sibling(stateJumping)
	case JumpPressed:
		return Sibling(stateClimbing)
	}
	return NoTransition()
}

func (climbingState) ID() AvatarState { return Climbing }
func (climbingState) Enter(m *Machine, _ SensorSnapshot) {
	m.state = Climbing
	m.mover.SetMovementMode(Flying)
	if !m.climbNotified {
		m.climbNotified = true
		m.notifyClimbingLedge(true)
	}
}
func (climbingState) Exit(m *Machine) {
	if m.climbNotified {
		m.climbNotified = false
		m.notifyClimbingLedge(false)
	}
}
func (climbingState) Update(m *Machine, ev Event, _ SensorSnapshot) Transition {
	if ev == Tick && m.mover.MovementMode() == Walking {
		return Sibling(stateIdle)
	}
	return NoTransition()
}

func (wallSlidingState) ID() AvatarState { return WallSliding }
func (wallSlidingState) Enter(m *Machine, snap SensorSnapshot) {
	mv := m.mover
	m.state = WallSliding
	mv.SetRotation(AlignToWall(snap.WallNormal, mv.Rotation().Up()))
	mv.SetVelocity(mgl64.Vec3{})
	mv.SetRotationRate(Rotator{})
	m.notifyWallSliding(true)
	mv.SetGravityScale(m.tuning.WallSlideGravityScale)
}
func (wallSlidingState) Exit(m *Machine) {}
func (wallSlidingState) Update(m *Machine, ev Event, snap SensorSnapshot) Transition {
	switch ev {
	case Tick:
		if snap.NearFloor || !snap.NearWall {
			stopWallSlide(m)
			return Sibling(stateJumping)
		}
	case JumpPressed:
		stopWallSlide(m)
		wallJump(m)
		return Sibling(stateJumping)
	}
	return NoTransition()
}

func stopWallSlide(m *Machine) {
	m.notifyWallSliding(false)
	m.mover.SetGravityScale(1)
	m.mover.SetRotationRate(m.tuning.DefaultRotationRate)
}

func wallJump(m *Machine) {
	mv := m.mover
	rot := mv.Rotation()
	rot.Yaw = NormalizeAxis(rot.Yaw - 180)
	mv.SetRotation(rot)

	launch := rot.Forward().Mul(m.tuning.WallJumpForward).Add(mgl64.Vec3{0, 0, m.tuning.WallJumpUp})
	mv.Launch(launch, true, true)

	// hold the push-off heading through the arc
	mv.SetRotationRate(Rotator{})
}
