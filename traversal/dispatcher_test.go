package traversal

import "testing"

func TestDispatcherRaisesPressEdgesOnce(t *testing.T) {
	mv := newFakeMover()
	m := NewMachine(mv)
	d := NewDispatcher(m)

	d.Step(Input{Jump: true}, SensorSnapshot{})
	if m.State() != Jumping || mv.jumps != 1 {
		t.Fatalf("expected one jump, state=%s jumps=%d", m.State(), mv.jumps)
	}

	mv.mode = Walking
	for i := 0; i < 5; i++ {
		d.Step(Input{Jump: true}, SensorSnapshot{})
	}
	if m.State() != Idle {
		t.Fatalf("expected idle after landing, got %s", m.State())
	}
	if mv.jumps != 1 {
		t.Fatalf("held jump must not repeat, got %d jumps", mv.jumps)
	}

	d.Step(Input{}, SensorSnapshot{})
	d.Step(Input{Jump: true}, SensorSnapshot{})
	if mv.jumps != 2 {
		t.Fatalf("expected a second jump after release, got %d", mv.jumps)
	}
}

func TestDispatcherOrdersPressBeforeTick(t *testing.T) {
	m, mv, _ := hangingMachine()
	d := NewDispatcher(m)

	changed := d.Step(Input{Crouch: true}, ledgeSnap())
	// crouch drops to Jumping, then the same step's Tick sees the ledge again
	if len(changed) != 2 || changed[0] != CrouchPressed || changed[1] != Tick {
		t.Fatalf("unexpected events %v", changed)
	}
	if m.State() != Hanging || mv.mode != Flying {
		t.Fatalf("expected a regrab, got %s/%s", m.State(), mv.mode)
	}
}

func TestDispatcherReset(t *testing.T) {
	mv := newFakeMover()
	m := NewMachine(mv)
	d := NewDispatcher(m)
	d.Step(Input{Jump: true}, SensorSnapshot{})
	mv.mode = Walking
	d.Step(Input{Jump: true}, SensorSnapshot{})
	if m.State() != Idle {
		t.Fatalf("expected idle, got %s", m.State())
	}

	d.Reset()
	d.Step(Input{Jump: true}, SensorSnapshot{})
	if mv.jumps != 2 {
		t.Fatalf("a held button should count as a new press after reset, got %d jumps", mv.jumps)
	}
}
