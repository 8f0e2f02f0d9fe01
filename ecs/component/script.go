package component

// ScriptInput hands an avatar's input to a tengo script instead of the
// keyboard. Name is resolved under prefabs/scripts.
type ScriptInput struct {
	Name string
}

var ScriptInputComponent = NewComponent[ScriptInput]()
