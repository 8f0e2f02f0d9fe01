package traversal

import (
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

const eps = 1e-9

func TestIdleJump(t *testing.T) {
	m, mv, _ := jumpingMachine()
	if m.State() != Jumping {
		t.Fatalf("expected jumping, got %s", m.State())
	}
	if mv.rate.Yaw != 0 {
		t.Fatalf("expected yaw rate 0, got %v", mv.rate.Yaw)
	}
	if mv.jumps != 1 {
		t.Fatalf("expected one jump impulse, got %d", mv.jumps)
	}
}

func TestIdleIgnoresOtherEvents(t *testing.T) {
	for _, ev := range []Event{Tick, CrouchPressed} {
		t.Run(ev.String(), func(t *testing.T) {
			mv := newFakeMover()
			m := NewMachine(mv)
			if m.Dispatch(ev, ledgeSnap()) {
				t.Fatalf("%s should not leave idle", ev)
			}
			if mv.jumps != 0 || mv.rate != YawRate(540) {
				t.Fatalf("%s changed the mover", ev)
			}
		})
	}
}

func TestJumpingLands(t *testing.T) {
	m, mv, _ := jumpingMachine()
	mv.mode = Falling
	m.Dispatch(Tick, SensorSnapshot{})
	if m.State() != Jumping {
		t.Fatalf("expected to stay airborne, got %s", m.State())
	}
	mv.mode = Walking
	m.Dispatch(Tick, ledgeSnap())
	if m.State() != Idle {
		t.Fatalf("landing should win over a ledge grab, got %s", m.State())
	}
}

func TestJumpingIgnoresDiscreteEvents(t *testing.T) {
	m, mv, _ := jumpingMachine()
	mv.mode = Falling
	for _, ev := range []Event{JumpPressed, CrouchPressed} {
		if m.Dispatch(ev, ledgeSnap()) {
			t.Fatalf("%s should not transition while jumping", ev)
		}
	}
	if mv.jumps != 1 {
		t.Fatalf("no extra jump expected, got %d", mv.jumps)
	}
}

func TestLedgeGrab(t *testing.T) {
	m, mv, n := hangingMachine()
	if m.State() != Hanging {
		t.Fatalf("expected hanging, got %s", m.State())
	}
	if got := n.count("grab:true"); got != 1 {
		t.Fatalf("expected grab:true once, got %d (%v)", got, n.calls)
	}
	if mv.mode != Flying {
		t.Fatalf("expected flying, got %s", mv.mode)
	}
	if mv.stops != 1 {
		t.Fatalf("expected one stop, got %d", mv.stops)
	}
	if len(mv.moves) != 1 {
		t.Fatalf("expected one snap move, got %d", len(mv.moves))
	}
	snap := mv.moves[0]
	want := mgl64.Vec3{100, 0, 200}
	if !near(snap.target, want, eps) {
		t.Fatalf("expected snap target %v, got %v", want, snap.target)
	}
	if snap.duration != 100*time.Millisecond {
		t.Fatalf("expected 100ms snap, got %v", snap.duration)
	}
	if math.Abs(snap.orient.Yaw) > eps || math.Abs(snap.orient.Pitch) > eps {
		t.Fatalf("expected to face +X, got %+v", snap.orient)
	}
	if mv.rate != YawRate(540) || mv.gravity != 1 {
		t.Fatalf("expected defaults restored, rate=%+v gravity=%v", mv.rate, mv.gravity)
	}

	for i := 0; i < 10; i++ {
		m.Dispatch(Tick, ledgeSnap())
	}
	if got := n.count("grab:true"); got != 1 {
		t.Fatalf("grab:true repeated while hanging: %v", n.calls)
	}
}

func TestLedgeGrabUsesTuning(t *testing.T) {
	mv := newFakeMover()
	tune := DefaultTuning()
	tune.LedgeGrabHeightOffset = 40
	tune.LedgeGrabNormalOffset = 10
	m := NewMachine(mv, WithTuning(tune))
	m.Dispatch(JumpPressed, SensorSnapshot{})
	mv.mode = Falling
	m.Dispatch(Tick, ledgeSnap())

	want := mgl64.Vec3{190, 0, 260}
	if len(mv.moves) != 1 || !near(mv.moves[0].target, want, eps) {
		t.Fatalf("expected target %v, got %+v", want, mv.moves)
	}
}

func TestLedgeGrabEligibility(t *testing.T) {
	cases := []struct {
		name string
		mode MovementMode
		snap func() SensorSnapshot
		want AvatarState
	}{
		{"eligible", Falling, ledgeSnap, Hanging},
		{"near_floor", Falling, func() SensorSnapshot {
			s := ledgeSnap()
			s.NearFloor = true
			return s
		}, Jumping},
		{"no_ledge", Falling, func() SensorSnapshot {
			s := ledgeSnap()
			s.NearLedgeHeight = false
			s.NearWall = false
			return s
		}, Jumping},
		{"flying", Flying, ledgeSnap, Jumping},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			m, mv, _ := jumpingMachine()
			mv.mode = c.mode
			m.Dispatch(Tick, c.snap())
			if m.State() != c.want {
				t.Fatalf("expected %s, got %s", c.want, m.State())
			}
		})
	}
}

func TestLedgeGrabBeatsWallSlide(t *testing.T) {
	m, mv, n := jumpingMachine()
	mv.mode = Falling
	mv.vel = mgl64.Vec3{}
	snap := ledgeSnap()
	snap.WallImpactPoint = mgl64.Vec3{30, 0, 0}
	m.Dispatch(Tick, snap)
	if m.State() != Hanging {
		t.Fatalf("expected hanging, got %s", m.State())
	}
	if n.count("slide:true") != 0 {
		t.Fatalf("wall slide should not start: %v", n.calls)
	}
}

func TestWallSlideEligibility(t *testing.T) {
	cases := []struct {
		name   string
		impact mgl64.Vec3
		velZ   float64
		floor  bool
		wall   bool
		want   AvatarState
	}{
		{"eligible", mgl64.Vec3{50, 0, 0}, -10, false, true, WallSliding},
		{"rising_slowly", mgl64.Vec3{50, 0, 0}, 4.9, false, true, WallSliding},
		{"rising", mgl64.Vec3{50, 0, 0}, 5, false, true, Jumping},
		{"at_distance", mgl64.Vec3{70, 0, 0}, 0, false, true, Jumping},
		{"far", mgl64.Vec3{0, 90, 0}, 0, false, true, Jumping},
		{"near_floor", mgl64.Vec3{50, 0, 0}, 0, true, true, Jumping},
		{"no_wall", mgl64.Vec3{50, 0, 0}, 0, false, false, Jumping},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			m, mv, _ := jumpingMachine()
			mv.mode = Falling
			mv.vel = mgl64.Vec3{0, 0, c.velZ}
			snap := wallSnap()
			snap.WallImpactPoint = c.impact
			snap.NearFloor = c.floor
			snap.NearWall = c.wall
			m.Dispatch(Tick, snap)
			if m.State() != c.want {
				t.Fatalf("expected %s, got %s", c.want, m.State())
			}
		})
	}
}

func TestWallSlideEntry(t *testing.T) {
	m, mv, n := jumpingMachine()
	mv.mode = Falling
	mv.vel = mgl64.Vec3{30, 0, -10}
	mv.rot = Rotator{Yaw: 45}
	m.Dispatch(Tick, wallSnap())

	if m.State() != WallSliding {
		t.Fatalf("expected wall sliding, got %s", m.State())
	}
	if mv.gravity != 0.3 {
		t.Fatalf("expected gravity 0.3, got %v", mv.gravity)
	}
	if mv.vel != (mgl64.Vec3{}) {
		t.Fatalf("expected zero velocity, got %v", mv.vel)
	}
	if !mv.rate.IsZero() {
		t.Fatalf("expected zero rotation rate, got %+v", mv.rate)
	}
	if math.Abs(mv.rot.Yaw) > eps {
		t.Fatalf("expected to face the wall (yaw 0), got %v", mv.rot.Yaw)
	}
	if n.count("slide:true") != 1 {
		t.Fatalf("expected slide:true once, got %v", n.calls)
	}
}

func TestHangingDrop(t *testing.T) {
	m, mv, n := hangingMachine()
	m.Dispatch(CrouchPressed, ledgeSnap())
	if m.State() != Jumping {
		t.Fatalf("expected jumping, got %s", m.State())
	}
	if mv.mode != Falling {
		t.Fatalf("expected falling, got %s", mv.mode)
	}
	if n.count("grab:false") != 1 {
		t.Fatalf("expected grab:false once, got %v", n.calls)
	}
}

func TestHangingExitCancelsSnap(t *testing.T) {
	cases := []struct {
		name       string
		doneBefore bool
		ev         Event
		cancelled  bool
	}{
		{"drop_in_flight", false, CrouchPressed, true},
		{"climb_in_flight", false, JumpPressed, true},
		{"drop_after_snap", true, CrouchPressed, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			m, mv, _ := hangingMachine()
			snap := mv.moves[0]
			snap.done = c.doneBefore
			m.Dispatch(c.ev, ledgeSnap())
			if snap.cancelled != c.cancelled {
				t.Fatalf("expected cancelled=%v, got %v", c.cancelled, snap.cancelled)
			}
			if m.snap != nil {
				t.Fatalf("snap handle should be released on exit")
			}
		})
	}
}

func TestClimb(t *testing.T) {
	m, mv, n := hangingMachine()
	m.Dispatch(JumpPressed, ledgeSnap())
	if m.State() != Climbing {
		t.Fatalf("expected climbing, got %s", m.State())
	}
	if mv.mode != Flying {
		t.Fatalf("expected flying while climbing, got %s", mv.mode)
	}

	for i := 0; i < 30; i++ {
		if m.Dispatch(Tick, SensorSnapshot{NearFloor: true}) {
			t.Fatalf("tick %d left climbing before landing", i)
		}
		m.Dispatch(JumpPressed, SensorSnapshot{})
		m.Dispatch(CrouchPressed, SensorSnapshot{})
	}
	if n.count("climb:true") != 1 {
		t.Fatalf("expected climb:true once, got %v", n.calls)
	}

	mv.mode = Walking
	if !m.Dispatch(Tick, SensorSnapshot{}) || m.State() != Idle {
		t.Fatalf("expected idle on the tick that sees walking, got %s", m.State())
	}
	if n.count("climb:false") != 1 {
		t.Fatalf("expected climb:false once, got %v", n.calls)
	}
}

func TestWallJump(t *testing.T) {
	m, mv, n := wallSlidingMachine()
	before := mv.rot.Yaw

	m.Dispatch(JumpPressed, wallSnap())
	if m.State() != Jumping {
		t.Fatalf("expected jumping, got %s", m.State())
	}
	if diff := math.Abs(NormalizeAxis(mv.rot.Yaw - before)); math.Abs(diff-180) > eps {
		t.Fatalf("expected yaw flipped by 180, before=%v after=%v", before, mv.rot.Yaw)
	}
	if mv.gravity != 1 {
		t.Fatalf("expected gravity restored, got %v", mv.gravity)
	}
	if !mv.rate.IsZero() {
		t.Fatalf("expected rotation frozen, got %+v", mv.rate)
	}
	if len(mv.launches) != 1 {
		t.Fatalf("expected one launch, got %d", len(mv.launches))
	}
	l := mv.launches[0]
	if l.v.Z() <= 0 || !l.overrideXY || !l.overrideZ {
		t.Fatalf("unexpected launch %+v", l)
	}
	want := mgl64.Vec3{-500, 0, 700}
	if !near(l.v, want, 1e-6) {
		t.Fatalf("expected launch %v, got %v", want, l.v)
	}
	if n.count("slide:false") != 1 {
		t.Fatalf("expected slide:false once, got %v", n.calls)
	}
}

func TestWallSlideEnds(t *testing.T) {
	cases := []struct {
		name string
		snap func() SensorSnapshot
		want AvatarState
	}{
		{"still_on_wall", wallSnap, WallSliding},
		{"reached_floor", func() SensorSnapshot {
			s := wallSnap()
			s.NearFloor = true
			return s
		}, Jumping},
		{"lost_wall", func() SensorSnapshot {
			s := wallSnap()
			s.NearWall = false
			return s
		}, Jumping},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			m, mv, n := wallSlidingMachine()
			m.Dispatch(Tick, c.snap())
			if m.State() != c.want {
				t.Fatalf("expected %s, got %s", c.want, m.State())
			}
			if c.want == WallSliding {
				return
			}
			if mv.gravity != 1 || mv.rate != YawRate(540) {
				t.Fatalf("expected defaults restored, gravity=%v rate=%+v", mv.gravity, mv.rate)
			}
			if n.count("slide:false") != 1 {
				t.Fatalf("expected slide:false once, got %v", n.calls)
			}
			if len(mv.launches) != 0 {
				t.Fatalf("sliding off should not launch")
			}
		})
	}
}
