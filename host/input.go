package host

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/holeio/hole"
)

// Device is the raw input the poller reads each tick.
type Device interface {
	CursorPosition() (x, y int)
	TouchPositions() [][2]int
	Pressed(key ebiten.Key) bool
	JustPressed(key ebiten.Key) bool
}

// EbitenDevice reads input from the running Ebiten game.
type EbitenDevice struct {
	touches []ebiten.TouchID
}

func (d *EbitenDevice) CursorPosition() (int, int) {
	return ebiten.CursorPosition()
}

func (d *EbitenDevice) TouchPositions() [][2]int {
	d.touches = ebiten.AppendTouchIDs(d.touches[:0])
	positions := make([][2]int, 0, len(d.touches))
	for _, id := range d.touches {
		x, y := ebiten.TouchPosition(id)
		positions = append(positions, [2]int{x, y})
	}
	return positions
}

func (d *EbitenDevice) Pressed(key ebiten.Key) bool {
	return ebiten.IsKeyPressed(key)
}

func (d *EbitenDevice) JustPressed(key ebiten.Key) bool {
	return inpututil.IsKeyJustPressed(key)
}

// Keys maps the game's actions onto keyboard keys.
type Keys struct {
	Left, Right, Up, Down []ebiten.Key
	Pause, Reset          ebiten.Key
	Quit                  []ebiten.Key
}

// DefaultKeys uses the arrow keys or WASD to steer, P to pause, R to reset
// and Q or Escape to quit.
func DefaultKeys() Keys {
	return Keys{
		Left:  []ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA},
		Right: []ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD},
		Up:    []ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyW},
		Down:  []ebiten.Key{ebiten.KeyArrowDown, ebiten.KeyS},
		Pause: ebiten.KeyP,
		Reset: ebiten.KeyR,
		Quit:  []ebiten.Key{ebiten.KeyQ, ebiten.KeyEscape},
	}
}

// InputPoller turns device state into hole.Input snapshots.
//
// The mouse only steers once it moves, so a cursor resting over the window
// does not fight the keyboard. A touch always steers.
type InputPoller struct {
	Device Device
	Keys   Keys

	lastCursor [2]int
	seenCursor bool
}

func NewInputPoller(device Device) *InputPoller {
	return &InputPoller{Device: device, Keys: DefaultKeys()}
}

// Poll samples the device. When pointer is false, mouse and touch are
// ignored, for example while an overlay has captured them.
func (p *InputPoller) Poll(pointer bool) hole.Input {
	var in hole.Input

	if touches := p.Device.TouchPositions(); pointer && len(touches) > 0 {
		in.Target = hole.Position{X: float64(touches[0][0]), Y: float64(touches[0][1])}
		in.HasTarget = true
	}

	x, y := p.Device.CursorPosition()
	cursor := [2]int{x, y}
	moved := p.seenCursor && cursor != p.lastCursor
	p.lastCursor, p.seenCursor = cursor, true
	if pointer && moved && !in.HasTarget {
		in.Target = hole.Position{X: float64(x), Y: float64(y)}
		in.HasTarget = true
	}

	in.Move = hole.Position{
		X: p.axis(p.Keys.Left, p.Keys.Right),
		Y: p.axis(p.Keys.Up, p.Keys.Down),
	}
	in.TogglePause = p.Device.JustPressed(p.Keys.Pause)
	in.Reset = p.Device.JustPressed(p.Keys.Reset)
	return in
}

// Quit reports whether a quit key is held.
func (p *InputPoller) Quit() bool {
	return p.anyPressed(p.Keys.Quit)
}

func (p *InputPoller) axis(negative, positive []ebiten.Key) float64 {
	var v float64
	if p.anyPressed(negative) {
		v--
	}
	if p.anyPressed(positive) {
		v++
	}
	return v
}

func (p *InputPoller) anyPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if p.Device.Pressed(k) {
			return true
		}
	}
	return false
}
