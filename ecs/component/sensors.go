package component

import "github.com/milk9111/jumper/traversal"

// Sensors holds the probe setup of an avatar and the snapshot the
// perception system wrote this step.
type Sensors struct {
	Snapshot traversal.SensorSnapshot

	WallZOffset float64
	WallLength  float64

	FloorDistance float64

	LedgeStartHeight   float64
	LedgeDistance      float64
	LedgeForwardOffset float64
}

var SensorsComponent = NewComponent[Sensors]()

// DefaultSensors is the probe setup of the stock avatar capsule (radius 42,
// half height 96).
func DefaultSensors() Sensors {
	return Sensors{
		WallZOffset:        0,
		WallLength:         100,
		FloorDistance:      110,
		LedgeStartHeight:   160,
		LedgeDistance:      80,
		LedgeForwardOffset: 60,
	}
}
