package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/jumper/ecs"
	"github.com/milk9111/jumper/ecs/component"
	"github.com/milk9111/jumper/traversal"
)

func TestPickClip(t *testing.T) {
	cases := []struct {
		name string
		anim component.Animation
		mode traversal.MovementMode
		vel  mgl64.Vec3
		want string
	}{
		{"idle", component.Animation{}, traversal.Walking, mgl64.Vec3{}, ClipIdle},
		{"walk", component.Animation{}, traversal.Walking, mgl64.Vec3{300, 0, 0}, ClipWalk},
		{"creep_is_idle", component.Animation{}, traversal.Walking, mgl64.Vec3{5, 5, 0}, ClipIdle},
		{"rising", component.Animation{}, traversal.Falling, mgl64.Vec3{0, 0, 200}, ClipJump},
		{"falling", component.Animation{}, traversal.Falling, mgl64.Vec3{0, 0, -200}, ClipFall},
		{"hang", component.Animation{GrabbingLedge: true}, traversal.Flying, mgl64.Vec3{}, ClipHang},
		{"climb_wins_over_hang", component.Animation{GrabbingLedge: true, ClimbingLedge: true}, traversal.Flying, mgl64.Vec3{}, ClipClimb},
		{"wall_slide", component.Animation{WallSliding: true}, traversal.Falling, mgl64.Vec3{0, 0, -5}, ClipWallSlide},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			anim := tc.anim
			body := component.PhysicsBody{Mode: tc.mode, Velocity: tc.vel}
			if got := pickClip(&anim, &body); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestAnimationSystemResetsTimerOnClipChange(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	anim := &component.Animation{}
	body := &component.PhysicsBody{Mode: traversal.Walking}
	mustAdd(t, ecs.Add(w, e, component.AnimationComponent.Kind(), anim))
	mustAdd(t, ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), body))

	sys := NewAnimationSystem()
	for i := 0; i < 3; i++ {
		sys.Update(w)
	}
	if anim.Current != ClipIdle || anim.FrameTimer != 2 {
		t.Fatalf("expected idle on its third frame, got %q timer=%d", anim.Current, anim.FrameTimer)
	}

	animationNotifier{anim: anim}.WallSliding(true)
	sys.Update(w)
	if anim.Current != ClipWallSlide || anim.FrameTimer != 0 {
		t.Fatalf("expected a fresh wall slide clip, got %q timer=%d", anim.Current, anim.FrameTimer)
	}
}
