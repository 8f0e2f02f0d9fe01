package component

// Animation tracks the traversal flags raised by the movement notifier and
// the clip picked from them.
type Animation struct {
	GrabbingLedge bool
	ClimbingLedge bool
	WallSliding   bool

	Current    string
	FrameTimer int
}

var AnimationComponent = NewComponent[Animation]()
