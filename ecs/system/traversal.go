package system

import (
	"log"

	"github.com/milk9111/jumper/ecs"
	"github.com/milk9111/jumper/ecs/component"
	"github.com/milk9111/jumper/traversal"
)

// TraversalSystem feeds every avatar's held input and sensor snapshot to
// its traversal dispatcher. Committed transitions are published on the
// world event queue.
type TraversalSystem struct {
	Debug bool
}

func NewTraversalSystem(debug bool) *TraversalSystem {
	return &TraversalSystem{Debug: debug}
}

func (s *TraversalSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach3(w, component.TraversalComponent.Kind(), component.InputComponent.Kind(), component.SensorsComponent.Kind(), func(e ecs.Entity, tr *component.Traversal, in *component.Input, sensors *component.Sensors) {
		if tr.Machine == nil && !s.attach(w, e, tr) {
			return
		}
		held := traversal.Input{Jump: in.Jump, Crouch: in.Crouch}
		tr.Dispatcher.Step(held, sensors.Snapshot)
	})
}

// attach builds the machine and dispatcher for an avatar seen for the
// first time.
func (s *TraversalSystem) attach(w *ecs.World, e ecs.Entity, tr *component.Traversal) bool {
	mover, ok := newBodyMover(w, e)
	if !ok {
		log.Printf("traversal: entity=%v missing transform or physics body", e)
		return false
	}

	tuning := tr.Tuning
	if tuning == (traversal.Tuning{}) {
		tuning = traversal.DefaultTuning()
		tr.Tuning = tuning
	}

	opts := []traversal.Option{
		traversal.WithTuning(tuning),
		traversal.WithTransitionHook(func(from, to traversal.AvatarState) {
			w.Events().Push(ecs.Event{
				Type: ecs.EventTraversalTransition,
				Data: ecs.TraversalTransition{Entity: e, From: from, To: to},
			})
			if s.Debug {
				log.Printf("traversal: entity=%v frame=%d %s -> %s", e, w.Frame(), from, to)
			}
		}),
	}
	if anim, ok := ecs.Get(w, e, component.AnimationComponent.Kind()); ok {
		opts = append(opts, traversal.WithNotifier(animationNotifier{anim: anim}))
	}

	tr.Machine = traversal.NewMachine(mover, opts...)
	tr.Dispatcher = traversal.NewDispatcher(tr.Machine)
	return true
}

// ApplyTuning swaps the tuning of a running avatar, as a prefab reload does.
func ApplyTuning(tr *component.Traversal, t traversal.Tuning) {
	if tr == nil {
		return
	}
	tr.Tuning = t
	if tr.Machine != nil {
		tr.Machine.SetTuning(t)
	}
}
