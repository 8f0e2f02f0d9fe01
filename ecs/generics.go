package ecs

import "github.com/milk9111/jumper/ecs/component"

// Add stores value for e under kind, replacing any previous value.
func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if !kind.Valid() {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	if !IsAlive(w, e) {
		return component.ErrEntityNotAlive
	}
	w.store(kind.ID(), true).Set(e, value)
	return nil
}

func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	return w.store(kind.ID(), false).Remove(e)
}

func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	return IsAlive(w, e) && w.store(kind.ID(), false).Has(e)
}

// Get returns the stored pointer; mutations through it are visible to
// every other reader.
func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	if !IsAlive(w, e) {
		return nil, false
	}
	v, ok := w.store(kind.ID(), false).Get(e).(*T)
	return v, ok
}

// ForEach visits every live entity holding kind.
func ForEach[A any](w *World, ka component.ComponentKind[A], fn func(e Entity, a *A)) {
	sa := w.store(ka.ID(), false)
	for _, e := range append([]Entity(nil), sa.Entities()...) {
		if a, ok := Get(w, e, ka); ok {
			fn(e, a)
		}
	}
}

// ForEach2 visits every live entity holding both kinds.
func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(e Entity, a *A, b *B)) {
	for _, e := range IntersectEntities(w.store(ka.ID(), false), w.store(kb.ID(), false)) {
		a, okA := Get(w, e, ka)
		b, okB := Get(w, e, kb)
		if okA && okB {
			fn(e, a, b)
		}
	}
}

// ForEach3 visits every live entity holding all three kinds.
func ForEach3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], fn func(e Entity, a *A, b *B, c *C)) {
	ents := IntersectEntities(w.store(ka.ID(), false), w.store(kb.ID(), false))
	sc := w.store(kc.ID(), false)
	for _, e := range ents {
		if !sc.Has(e) {
			continue
		}
		a, okA := Get(w, e, ka)
		b, okB := Get(w, e, kb)
		c, okC := Get(w, e, kc)
		if okA && okB && okC {
			fn(e, a, b, c)
		}
	}
}

// First returns the first live entity holding kind, in storage order.
func First[T any](w *World, kind component.ComponentKind[T]) (Entity, bool) {
	for _, e := range w.store(kind.ID(), false).Entities() {
		if IsAlive(w, e) {
			return e, true
		}
	}
	return 0, false
}
