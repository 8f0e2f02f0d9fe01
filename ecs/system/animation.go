package system

import (
	"math"

	"github.com/milk9111/jumper/ecs"
	"github.com/milk9111/jumper/ecs/component"
	"github.com/milk9111/jumper/traversal"
)

const (
	ClipIdle      = "idle"
	ClipWalk      = "walk"
	ClipJump      = "jump"
	ClipFall      = "fall"
	ClipHang      = "hang"
	ClipClimb     = "climb"
	ClipWallSlide = "wall_slide"
)

// animationNotifier records traversal mode changes on an Animation.
type animationNotifier struct {
	anim *component.Animation
}

func (n animationNotifier) GrabLedge(grabbing bool) {
	n.anim.GrabbingLedge = grabbing
}

func (n animationNotifier) ClimbingLedge(climbing bool) {
	n.anim.ClimbingLedge = climbing
}

func (n animationNotifier) WallSliding(sliding bool) {
	n.anim.WallSliding = sliding
}

// AnimationSystem picks the clip of every avatar from its traversal flags
// and body state.
type AnimationSystem struct{}

func NewAnimationSystem() *AnimationSystem {
	return &AnimationSystem{}
}

func (a *AnimationSystem) Update(w *ecs.World) {
	ecs.ForEach2(w, component.AnimationComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, anim *component.Animation, body *component.PhysicsBody) {
		clip := pickClip(anim, body)
		if clip != anim.Current {
			anim.Current = clip
			anim.FrameTimer = 0
			return
		}
		anim.FrameTimer++
	})
}

func pickClip(anim *component.Animation, body *component.PhysicsBody) string {
	switch {
	case anim.ClimbingLedge:
		return ClipClimb
	case anim.GrabbingLedge:
		return ClipHang
	case anim.WallSliding:
		return ClipWallSlide
	}
	if body.Mode == traversal.Falling {
		if body.Velocity.Z() > 0 {
			return ClipJump
		}
		return ClipFall
	}
	if math.Hypot(body.Velocity.X(), body.Velocity.Y()) > 10 {
		return ClipWalk
	}
	return ClipIdle
}
