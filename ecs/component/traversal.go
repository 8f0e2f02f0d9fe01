package component

import "github.com/milk9111/jumper/traversal"

// Traversal owns an avatar's state machine and its input dispatcher. The
// traversal system builds both from Tuning the first time it sees the
// entity.
type Traversal struct {
	Tuning traversal.Tuning

	Machine    *traversal.Machine
	Dispatcher *traversal.Dispatcher
}

var TraversalComponent = NewComponent[Traversal]()
