package system

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/jumper/ecs"
	"github.com/milk9111/jumper/ecs/component"
	"github.com/milk9111/jumper/traversal"
)

// againstWall is a standing spot facing +X with the capsule just short of
// the tower and cliff faces at x=300.
var againstWall = mgl64.Vec3{257, 0, standingZ}

func jumpIntoHang(t *testing.T, w *ecs.World, e ecs.Entity) {
	t.Helper()
	w.Update()
	getT(t, w, e, component.InputComponent.Kind()).Jump = true
	if _, ok := stepUntil(w, 30, func() bool { return machineOf(t, w, e).State() == traversal.Hanging }); !ok {
		t.Fatalf("expected a ledge grab, state=%v", machineOf(t, w, e).State())
	}
	// let the ledge snap finish
	for i := 0; i < 10; i++ {
		w.Update()
	}
}

// press releases a held button for one step and pushes it again.
func press(w *ecs.World, held *bool) {
	*held = false
	w.Update()
	*held = true
	w.Update()
}

func TestJumpGrabsLedgeAndClimbs(t *testing.T) {
	w := newTestWorld(floorBox, towerBox)
	addAvatarSystems(w)
	rec := &transitionRecorder{}
	w.AddSystem(rec)
	e := spawnTestAvatar(t, w, againstWall)

	jumpIntoHang(t, w, e)

	tr := getT(t, w, e, component.TransformComponent.Kind())
	body := getT(t, w, e, component.PhysicsBodyComponent.Kind())
	anim := getT(t, w, e, component.AnimationComponent.Kind())
	tuning := traversal.DefaultTuning()
	hangAt := mgl64.Vec3{towerBox.Min.X() - tuning.LedgeGrabNormalOffset, 0, towerBox.Max.Z() - tuning.LedgeGrabHeightOffset}
	if tr.Position.Sub(hangAt).Len() > 1e-6 {
		t.Fatalf("expected to hang at %v, got %v", hangAt, tr.Position)
	}
	if body.Mode != traversal.Flying || body.Velocity != (mgl64.Vec3{}) {
		t.Fatalf("hanging body should be flying and still, got mode=%v vel=%v", body.Mode, body.Velocity)
	}
	if !anim.GrabbingLedge || anim.Current != ClipHang {
		t.Fatalf("expected the hang clip, got %+v", anim)
	}
	if !near(tr.Rotation.Yaw, 0, 1e-6) {
		t.Fatalf("expected to face the wall, got yaw %v", tr.Rotation.Yaw)
	}

	in := getT(t, w, e, component.InputComponent.Kind())
	press(w, &in.Jump)
	if s := machineOf(t, w, e).State(); s != traversal.Climbing {
		t.Fatalf("expected climbing after the second press, got %v", s)
	}
	if anim.GrabbingLedge || !anim.ClimbingLedge {
		t.Fatalf("expected only the climbing flag, got %+v", anim)
	}

	if _, ok := stepUntil(w, 60, func() bool { return machineOf(t, w, e).State() == traversal.Idle }); !ok {
		t.Fatal("climb never finished")
	}
	top := mgl64.Vec3{hangAt.X() + tuning.LedgeGrabNormalOffset + body.Radius, 0, towerBox.Max.Z() + body.HalfHeight}
	if tr.Position.Sub(top).Len() > 0.02 {
		t.Fatalf("expected to stand on the tower at %v, got %v", top, tr.Position)
	}
	if body.Mode != traversal.Walking {
		t.Fatalf("expected walking on top, got %v", body.Mode)
	}
	if anim.GrabbingLedge || anim.ClimbingLedge || anim.WallSliding {
		t.Fatalf("flags should be clear after the climb, got %+v", anim)
	}

	want := []traversal.AvatarState{traversal.Jumping, traversal.Hanging, traversal.Climbing, traversal.Idle}
	if len(rec.transitions) != len(want) {
		t.Fatalf("unexpected transitions %+v", rec.transitions)
	}
	for i, s := range want {
		if rec.transitions[i].To != s || rec.transitions[i].Entity != e {
			t.Fatalf("transition %d: got %+v, want to=%v", i, rec.transitions[i], s)
		}
	}
}

func TestCrouchDropsFromLedge(t *testing.T) {
	w := newTestWorld(floorBox, towerBox)
	addAvatarSystems(w)
	rec := &transitionRecorder{}
	w.AddSystem(rec)
	e := spawnTestAvatar(t, w, againstWall)

	jumpIntoHang(t, w, e)
	in := getT(t, w, e, component.InputComponent.Kind())
	in.Jump = false
	in.Crouch = true
	w.Update()
	if s := machineOf(t, w, e).State(); s != traversal.Jumping {
		t.Fatalf("expected to drop into jumping, got %v", s)
	}
	if getT(t, w, e, component.AnimationComponent.Kind()).GrabbingLedge {
		t.Fatal("grab flag should clear on the drop")
	}

	if _, ok := stepUntil(w, 60, func() bool { return machineOf(t, w, e).State() == traversal.Idle }); !ok {
		t.Fatalf("avatar never landed, state=%v", machineOf(t, w, e).State())
	}
	if rec.reached(traversal.WallSliding) {
		t.Fatal("dropping off the ledge should not start a wall slide")
	}
	if z := getT(t, w, e, component.TransformComponent.Kind()).Position.Z(); !near(z, standingZ, 1e-6) {
		t.Fatalf("expected to land on the floor, got z=%v", z)
	}
}

func TestWallSlideAndWallJump(t *testing.T) {
	w := newTestWorld(floorBox, cliffBox)
	addAvatarSystems(w)
	e := spawnTestAvatar(t, w, againstWall)
	in := getT(t, w, e, component.InputComponent.Kind())
	gravity := getT(t, w, e, component.GravityScaleComponent.Kind())
	anim := getT(t, w, e, component.AnimationComponent.Kind())

	w.Update()
	in.Jump = true
	if _, ok := stepUntil(w, 60, func() bool { return machineOf(t, w, e).State() == traversal.WallSliding }); !ok {
		t.Fatalf("expected a wall slide near the apex, state=%v", machineOf(t, w, e).State())
	}
	tuning := traversal.DefaultTuning()
	if gravity.Scale != tuning.WallSlideGravityScale || !anim.WallSliding {
		t.Fatalf("expected slide gravity and flag, got scale=%v anim=%+v", gravity.Scale, anim)
	}

	press(w, &in.Jump)
	if s := machineOf(t, w, e).State(); s != traversal.Jumping {
		t.Fatalf("expected a wall jump, got %v", s)
	}
	body := getT(t, w, e, component.PhysicsBodyComponent.Kind())
	tr := getT(t, w, e, component.TransformComponent.Kind())
	if body.Velocity.X() > -400 {
		t.Fatalf("expected to push off the wall, got velocity %v", body.Velocity)
	}
	if !near(math.Abs(tr.Rotation.Yaw), 180, 1e-6) {
		t.Fatalf("expected to face away from the wall, got yaw %v", tr.Rotation.Yaw)
	}
	if gravity.Scale != 1 || anim.WallSliding || !body.RotationRate.IsZero() {
		t.Fatalf("expected slide cleared and heading held, got scale=%v anim=%+v rate=%+v", gravity.Scale, anim, body.RotationRate)
	}
}

func TestTraversalSystemSkipsIncompleteAvatars(t *testing.T) {
	w := newTestWorld(floorBox)
	e := ecs.CreateEntity(w)
	mustAdd(t, ecs.Add(w, e, component.TraversalComponent.Kind(), &component.Traversal{}))
	mustAdd(t, ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{Jump: true}))
	mustAdd(t, ecs.Add(w, e, component.SensorsComponent.Kind(), &component.Sensors{}))

	NewTraversalSystem(false).Update(w)
	if tr := getT(t, w, e, component.TraversalComponent.Kind()); tr.Machine != nil {
		t.Fatal("machine should not attach without a transform and body")
	}
}

func TestApplyTuningReachesRunningMachine(t *testing.T) {
	w := newTestWorld(floorBox)
	addAvatarSystems(w)
	e := spawnTestAvatar(t, w, mgl64.Vec3{0, 0, standingZ})
	w.Update()

	tr := getT(t, w, e, component.TraversalComponent.Kind())
	if tr.Tuning != traversal.DefaultTuning() {
		t.Fatal("zero tuning should be replaced by the defaults on attach")
	}
	tuning := traversal.DefaultTuning()
	tuning.ApexGravityScale = 3
	ApplyTuning(tr, tuning)
	if tr.Machine.Tuning().ApexGravityScale != 3 || tr.Tuning.ApexGravityScale != 3 {
		t.Fatalf("tuning not applied: %+v", tr.Machine.Tuning())
	}
	ApplyTuning(nil, tuning)
}
