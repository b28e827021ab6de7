package hole

// Input is the snapshot of player intent for one frame.
//
// A pointer or touch position, when present, becomes the hole's target.
// Otherwise Move, an arrow-key direction with components in [-1, 1], nudges
// the target from the hole's current position. A zero Input leaves the
// target unchanged.
type Input struct {
	Target      Position
	HasTarget   bool
	Move        Position
	TogglePause bool
	Reset       bool
}

// PointAt is an Input aiming the hole at (x, y).
func PointAt(x, y float64) Input {
	return Input{Target: Position{X: x, Y: y}, HasTarget: true}
}
