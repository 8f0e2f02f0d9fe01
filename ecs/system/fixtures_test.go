package system

import (
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/jumper/ecs"
	"github.com/milk9111/jumper/ecs/component"
	"github.com/milk9111/jumper/traversal"
)

var (
	floorBox = ecs.Box{Name: "floor", Min: mgl64.Vec3{-2000, -200, -100}, Max: mgl64.Vec3{2000, 200, 0}}
	// towerBox tops out inside the ledge window of a standing jump.
	towerBox = ecs.Box{Name: "tower", Min: mgl64.Vec3{300, -200, 0}, Max: mgl64.Vec3{500, 200, 250}}
	// cliffBox is too tall to grab, so jumping at it ends in a wall slide.
	cliffBox = ecs.Box{Name: "cliff", Min: mgl64.Vec3{300, -200, 0}, Max: mgl64.Vec3{500, 200, 1000}}
)

// standingZ is the capsule center of a default avatar on floorBox.
const standingZ = 96.0

func newTestWorld(boxes ...ecs.Box) *ecs.World {
	w := ecs.NewWorld()
	w.SetPhysicsWorld(ecs.NewPhysicsWorld(boxes))
	return w
}

func mustAdd(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("add component: %v", err)
	}
}

func spawnTestAvatar(t *testing.T, w *ecs.World, pos mgl64.Vec3) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	body := component.DefaultPhysicsBody()
	sensors := component.DefaultSensors()
	mustAdd(t, ecs.Add(w, e, component.AvatarTagComponent.Kind(), &component.AvatarTag{Name: "test"}))
	mustAdd(t, ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Position: pos}))
	mustAdd(t, ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &body))
	mustAdd(t, ecs.Add(w, e, component.GravityScaleComponent.Kind(), &component.GravityScale{Scale: 1}))
	mustAdd(t, ecs.Add(w, e, component.SensorsComponent.Kind(), &sensors))
	mustAdd(t, ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{}))
	mustAdd(t, ecs.Add(w, e, component.TraversalComponent.Kind(), &component.Traversal{}))
	mustAdd(t, ecs.Add(w, e, component.ClimbComponent.Kind(), &component.Climb{Duration: 600 * time.Millisecond}))
	mustAdd(t, ecs.Add(w, e, component.AnimationComponent.Kind(), &component.Animation{}))
	return e
}

// addAvatarSystems installs the per-step avatar pipeline in game order.
func addAvatarSystems(w *ecs.World) {
	w.AddSystem(NewPerceptionSystem())
	w.AddSystem(NewTraversalSystem(false))
	w.AddSystem(NewClimbSystem())
	w.AddSystem(NewMovementSystem())
	w.AddSystem(NewAnimationSystem())
}

// transitionRecorder keeps every traversal transition published while it
// is installed after the traversal system.
type transitionRecorder struct {
	transitions []ecs.TraversalTransition
}

func (r *transitionRecorder) Update(w *ecs.World) {
	for _, ev := range w.Events().Peek() {
		if tr, ok := ev.Data.(ecs.TraversalTransition); ok && ev.Type == ecs.EventTraversalTransition {
			r.transitions = append(r.transitions, tr)
		}
	}
}

func (r *transitionRecorder) reached(s traversal.AvatarState) bool {
	for _, tr := range r.transitions {
		if tr.To == s {
			return true
		}
	}
	return false
}

func getT[T any](t *testing.T, w *ecs.World, e ecs.Entity, kind component.ComponentKind[T]) *T {
	t.Helper()
	v, ok := ecs.Get(w, e, kind)
	if !ok {
		t.Fatalf("entity %v is missing a component", e)
	}
	return v
}

func machineOf(t *testing.T, w *ecs.World, e ecs.Entity) *traversal.Machine {
	t.Helper()
	tr := getT(t, w, e, component.TraversalComponent.Kind())
	if tr.Machine == nil {
		t.Fatal("traversal machine not attached")
	}
	return tr.Machine
}

// stepUntil updates w until done reports true, at most max times. It
// returns the number of updates run.
func stepUntil(w *ecs.World, max int, done func() bool) (int, bool) {
	for i := 1; i <= max; i++ {
		w.Update()
		if done() {
			return i, true
		}
	}
	return max, false
}

func near(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}
