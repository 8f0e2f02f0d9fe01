package component

// Input stores per-step input state for an entity. Jump and Crouch are held
// flags; press edges are derived by the traversal dispatcher.
type Input struct {
	MoveX  float64
	MoveY  float64
	Jump   bool
	Crouch bool
}

var InputComponent = NewComponent[Input]()
