package traversal

import (
	"fmt"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

type launchCall struct {
	v          mgl64.Vec3
	overrideXY bool
	overrideZ  bool
}

type fakeMove struct {
	target    mgl64.Vec3
	orient    Rotator
	duration  time.Duration
	done      bool
	cancelled bool
}

func (f *fakeMove) Done() bool { return f.done }

func (f *fakeMove) Cancel() {
	f.cancelled = true
	f.done = true
}

type fakeMover struct {
	pos     mgl64.Vec3
	rot     Rotator
	mode    MovementMode
	vel     mgl64.Vec3
	gravity float64
	rate    Rotator

	jumps    int
	stops    int
	launches []launchCall
	moves    []*fakeMove
}

func newFakeMover() *fakeMover {
	return &fakeMover{gravity: 1, rate: YawRate(540)}
}

func (f *fakeMover) Position() mgl64.Vec3           { return f.pos }
func (f *fakeMover) Rotation() Rotator              { return f.rot }
func (f *fakeMover) SetRotation(r Rotator)          { f.rot = r }
func (f *fakeMover) MovementMode() MovementMode     { return f.mode }
func (f *fakeMover) SetMovementMode(m MovementMode) { f.mode = m }
func (f *fakeMover) Velocity() mgl64.Vec3           { return f.vel }
func (f *fakeMover) SetVelocity(v mgl64.Vec3)       { f.vel = v }
func (f *fakeMover) GravityScale() float64          { return f.gravity }
func (f *fakeMover) SetGravityScale(s float64)      { f.gravity = s }
func (f *fakeMover) SetRotationRate(r Rotator)      { f.rate = r }

func (f *fakeMover) StopImmediately() {
	f.stops++
	f.vel = mgl64.Vec3{}
}

func (f *fakeMover) Jump() {
	f.jumps++
	f.mode = Falling
	f.vel[2] = 600
}

func (f *fakeMover) Launch(v mgl64.Vec3, overrideXY, overrideZ bool) {
	f.launches = append(f.launches, launchCall{v: v, overrideXY: overrideXY, overrideZ: overrideZ})
	f.vel = v
	f.mode = Falling
}

func (f *fakeMover) MoveTo(target mgl64.Vec3, orient Rotator, d time.Duration) MoveHandle {
	mv := &fakeMove{target: target, orient: orient, duration: d}
	f.moves = append(f.moves, mv)
	return mv
}

type fakeNotifier struct {
	calls []string
}

func (n *fakeNotifier) GrabLedge(v bool)     { n.record("grab", v) }
func (n *fakeNotifier) ClimbingLedge(v bool) { n.record("climb", v) }
func (n *fakeNotifier) WallSliding(v bool)   { n.record("slide", v) }

func (n *fakeNotifier) record(name string, v bool) {
	n.calls = append(n.calls, fmt.Sprintf("%s:%t", name, v))
}

func (n *fakeNotifier) count(call string) int {
	c := 0
	for _, got := range n.calls {
		if got == call {
			c++
		}
	}
	return c
}

// ledgeSnap is a snapshot where a falling avatar may grab a ledge on a wall
// facing -X.
func ledgeSnap() SensorSnapshot {
	return SensorSnapshot{
		NearLedgeHeight: true,
		NearWall:        true,
		WallImpactPoint: mgl64.Vec3{200, 0, 150},
		WallNormal:      mgl64.Vec3{-1, 0, 0},
		LedgeHeight:     mgl64.Vec3{200, 0, 300},
	}
}

// wallSnap is a snapshot with a wall 50 units in front of the origin.
func wallSnap() SensorSnapshot {
	return SensorSnapshot{
		NearWall:        true,
		WallImpactPoint: mgl64.Vec3{50, 0, 0},
		WallNormal:      mgl64.Vec3{-1, 0, 0},
	}
}

// jumpingMachine returns a machine that has just jumped from Idle.
func jumpingMachine() (*Machine, *fakeMover, *fakeNotifier) {
	mv := newFakeMover()
	n := &fakeNotifier{}
	m := NewMachine(mv, WithNotifier(n))
	m.Dispatch(JumpPressed, SensorSnapshot{})
	return m, mv, n
}

func hangingMachine() (*Machine, *fakeMover, *fakeNotifier) {
	m, mv, n := jumpingMachine()
	mv.mode = Falling
	m.Dispatch(Tick, ledgeSnap())
	return m, mv, n
}

func climbingMachine() (*Machine, *fakeMover, *fakeNotifier) {
	m, mv, n := hangingMachine()
	m.Dispatch(JumpPressed, ledgeSnap())
	return m, mv, n
}

func wallSlidingMachine() (*Machine, *fakeMover, *fakeNotifier) {
	m, mv, n := jumpingMachine()
	mv.mode = Falling
	mv.vel = mgl64.Vec3{0, 0, -10}
	m.Dispatch(Tick, wallSnap())
	return m, mv, n
}

func near(a, b mgl64.Vec3, tol float64) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > tol {
			return false
		}
	}
	return true
}
