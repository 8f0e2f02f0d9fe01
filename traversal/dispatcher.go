package traversal

// Dispatcher turns held buttons into press events and drives one machine.
type Dispatcher struct {
	machine *Machine
	prev    Input
}

func NewDispatcher(m *Machine) *Dispatcher {
	return &Dispatcher{machine: m}
}

// Step dispatches one simulation step: a press event for every button that
// went down since the previous step, then Tick. It returns the events that
// caused a transition, in order.
func (d *Dispatcher) Step(in Input, snap SensorSnapshot) []Event {
	var changed []Event
	if in.Jump && !d.prev.Jump && d.machine.Dispatch(JumpPressed, snap) {
		changed = append(changed, JumpPressed)
	}
	if in.Crouch && !d.prev.Crouch && d.machine.Dispatch(CrouchPressed, snap) {
		changed = append(changed, CrouchPressed)
	}
	d.prev = in
	if d.machine.Dispatch(Tick, snap) {
		changed = append(changed, Tick)
	}
	return changed
}

// Reset forgets held buttons, so a button still down counts as a new press.
func (d *Dispatcher) Reset() {
	d.prev = Input{}
}
