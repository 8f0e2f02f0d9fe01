// Package traversal drives an avatar between idle, jumping, wall sliding,
// ledge hanging and ledge climbing. States read a sensor snapshot and the
// avatar's Mover and commit at most one sibling transition per event.
package traversal

// Machine is the traversal state machine of a single avatar.
type Machine struct {
	mover    Mover
	notifier Notifier
	tuning   Tuning

	current State
	pending State
	state   AvatarState

	snap          MoveHandle
	climbNotified bool
	dispatching   bool

	onTransition func(from, to AvatarState)
}

// Option configures a Machine at construction.
type Option func(m *Machine)

// WithNotifier attaches an animation-facing consumer. Without one, mode
// notifications are skipped.
func WithNotifier(n Notifier) Option {
	return func(m *Machine) { m.notifier = n }
}

func WithTuning(t Tuning) Option {
	return func(m *Machine) { m.tuning = t }
}

// WithTransitionHook registers fn to run after every committed transition.
func WithTransitionHook(fn func(from, to AvatarState)) Option {
	return func(m *Machine) { m.onTransition = fn }
}

// NewMachine builds a machine for mover and enters Idle.
func NewMachine(mover Mover, opts ...Option) *Machine {
	m := &Machine{
		mover:  mover,
		tuning: DefaultTuning(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	m.current = stateIdle
	m.current.Enter(m, SensorSnapshot{})
	return m
}

// Dispatch routes ev to the active state and commits the transition it
// asks for, if any. It reports whether the active state changed.
func (m *Machine) Dispatch(ev Event, snap SensorSnapshot) bool {
	if m.dispatching {
		panic("traversal: Dispatch called while dispatching")
	}
	if !ev.Valid() {
		return false
	}

	m.dispatching = true
	defer func() { m.dispatching = false }()

	m.pending = m.current.Update(m, ev, snap).next
	return m.commit(snap)
}

func (m *Machine) commit(snap SensorSnapshot) bool {
	next := m.pending
	m.pending = nil
	if next == nil || next == m.current {
		return false
	}

	from := m.state
	m.current.Exit(m)
	m.current = next
	m.current.Enter(m, snap)

	if m.onTransition != nil {
		m.onTransition(from, m.state)
	}
	return true
}

// State returns the active avatar state.
func (m *Machine) State() AvatarState {
	return m.state
}

func (m *Machine) Tuning() Tuning {
	return m.tuning
}

// SetTuning replaces the tuning; it takes effect on the next event.
func (m *Machine) SetTuning(t Tuning) {
	m.tuning = t
}

// IsFlyingState reports whether the active state holds the mover in
// Flying mode.
func (m *Machine) IsFlyingState() bool {
	return m.state == Hanging || m.state == Climbing
}

// SuppressesMovementInput reports whether planar move input should be
// ignored for the avatar.
func (m *Machine) SuppressesMovementInput() bool {
	switch m.state {
	case Hanging, WallSliding, Climbing:
		return true
	}
	return false
}

// IsClimbing reports whether a ledge climb is in progress: the avatar is
// Climbing and has not been set down yet.
func (m *Machine) IsClimbing() bool {
	return m.state == Climbing && m.mover.MovementMode() == Flying
}

// Landed restores the default rotation rate and gravity after a fall ends
// on the floor. Movers call it when they switch from Falling to Walking.
func (m *Machine) Landed() {
	m.mover.SetRotationRate(m.tuning.DefaultRotationRate)
	m.mover.SetGravityScale(1)
}

// Apex makes the descent heavier once vertical velocity peaks. Wall sliding
// keeps its own gravity.
func (m *Machine) Apex() {
	if m.state == WallSliding {
		return
	}
	m.mover.SetGravityScale(m.tuning.ApexGravityScale)
}

func (m *Machine) notifyGrabLedge(v bool) {
	if m.notifier != nil {
		m.notifier.GrabLedge(v)
	}
}

func (m *Machine) notifyClimbingLedge(v bool) {
	if m.notifier != nil {
		m.notifier.ClimbingLedge(v)
	}
}

func (m *Machine) notifyWallSliding(v bool) {
	if m.notifier != nil {
		m.notifier.WallSliding(v)
	}
}
