package main

import (
	"fmt"
	"log"
	"sort"

	"github.com/milk9111/jumper/ecs"
	"github.com/milk9111/jumper/ecs/component"
	"github.com/milk9111/jumper/traversal"
)

// transitionRecorder runs last in the frame and reads the transitions
// published during it.
type transitionRecorder struct {
	reached map[ecs.Entity]map[traversal.AvatarState]int
	count   int
}

func newTransitionRecorder() *transitionRecorder {
	return &transitionRecorder{reached: map[ecs.Entity]map[traversal.AvatarState]int{}}
}

func (r *transitionRecorder) Update(w *ecs.World) {
	for _, evt := range w.Events().Peek() {
		if evt.Type != ecs.EventTraversalTransition {
			continue
		}
		tr, ok := evt.Data.(ecs.TraversalTransition)
		if !ok {
			continue
		}
		r.record(tr)
		log.Printf("jumpersim: frame=%d entity=%v %s -> %s", w.Frame(), tr.Entity, tr.From, tr.To)
	}
}

func (r *transitionRecorder) record(tr ecs.TraversalTransition) {
	states, ok := r.reached[tr.Entity]
	if !ok {
		states = map[traversal.AvatarState]int{}
		r.reached[tr.Entity] = states
	}
	states[tr.To]++
	r.count++
}

// missing names every avatar that never entered one of want.
func (r *transitionRecorder) missing(w *ecs.World, want []traversal.AvatarState) []string {
	var out []string
	for _, e := range avatarEntities(w) {
		for _, s := range want {
			if r.reached[e][s] == 0 {
				out = append(out, fmt.Sprintf("entity=%v never reached %s", e, s))
			}
		}
	}
	return out
}

func (r *transitionRecorder) summary(w *ecs.World) []string {
	lines := []string{fmt.Sprintf("jumpersim: %d transitions over %d frames", r.count, w.Frame())}
	for _, e := range avatarEntities(w) {
		state := "-"
		if tr, ok := ecs.Get(w, e, component.TraversalComponent.Kind()); ok && tr.Machine != nil {
			state = tr.Machine.State().String()
		}
		pos := "-"
		if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			pos = fmt.Sprintf("(%.1f, %.1f, %.1f)", t.Position.X(), t.Position.Y(), t.Position.Z())
		}
		lines = append(lines, fmt.Sprintf("jumpersim: entity=%v state=%s pos=%s", e, state, pos))
	}
	return lines
}

func avatarEntities(w *ecs.World) []ecs.Entity {
	var out []ecs.Entity
	ecs.ForEach(w, component.AvatarTagComponent.Kind(), func(e ecs.Entity, _ *component.AvatarTag) {
		out = append(out, e)
	})
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
