package traversal

// AvatarState is the externally visible traversal mode of an avatar.
type AvatarState uint8

const (
	Idle AvatarState = iota
	Jumping
	Hanging
	Climbing
	WallSliding
)

func (s AvatarState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Jumping:
		return "jumping"
	case Hanging:
		return "hanging"
	case Climbing:
		return "climbing"
	case WallSliding:
		return "wall_sliding"
	default:
		return "unknown"
	}
}

// ParseAvatarState is the inverse of AvatarState.String.
func ParseAvatarState(name string) (AvatarState, bool) {
	for s := Idle; s <= WallSliding; s++ {
		if s.String() == name {
			return s, true
		}
	}
	return Idle, false
}

// Event is a discrete occurrence routed to the active state.
type Event uint8

const (
	Tick Event = iota
	JumpPressed
	CrouchPressed
)

func (e Event) String() string {
	switch e {
	case Tick:
		return "tick"
	case JumpPressed:
		return "jump_pressed"
	case CrouchPressed:
		return "crouch_pressed"
	default:
		return "unknown"
	}
}

// Valid reports whether e is one of the known events.
func (e Event) Valid() bool {
	return e <= CrouchPressed
}

// MovementMode is the coarse locomotion mode of the physics mover.
type MovementMode uint8

const (
	Walking MovementMode = iota
	Falling
	Flying
)

func (m MovementMode) String() string {
	switch m {
	case Walking:
		return "walking"
	case Falling:
		return "falling"
	case Flying:
		return "flying"
	default:
		return "unknown"
	}
}
