package component

// Camera follows the avatar named TargetName in the side view (X right,
// Z up).
type Camera struct {
	TargetName string
	Zoom       float64
	Smoothness float64
	X          float64
	Z          float64
}

var CameraComponent = NewComponent[Camera]()
