package obj

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/dragstrip/strip"
)

var buttons = []struct {
	mouse  ebiten.MouseButton
	button strip.Button
}{
	{ebiten.MouseButtonLeft, strip.ButtonPrimary},
	{ebiten.MouseButtonMiddle, strip.ButtonMiddle},
	{ebiten.MouseButtonRight, strip.ButtonSecondary},
}

// Input polls the mouse each tick and dispatches pointer events.
type Input struct {
	listeners *strip.Listeners
	bounds    image.Rectangle
	tracker   strip.Tracker

	// MouseX/MouseY are the last polled cursor position in canvas pixels.
	MouseX int
	MouseY int
}

func NewInput(listeners *strip.Listeners, bounds image.Rectangle) *Input {
	return &Input{listeners: listeners, bounds: bounds}
}

// SetBounds updates the canvas rectangle used for hit testing presses.
func (i *Input) SetBounds(bounds image.Rectangle) {
	i.bounds = bounds
}

// Update polls ebiten and dispatches press, move and release events.
func (i *Input) Update() {
	var s strip.Sample
	s.X, s.Y = ebiten.CursorPosition()
	for _, b := range buttons {
		if inpututil.IsMouseButtonJustPressed(b.mouse) {
			s.Pressed = append(s.Pressed, b.button)
		}
		if inpututil.IsMouseButtonJustReleased(b.mouse) {
			s.Released = append(s.Released, b.button)
		}
	}
	i.MouseX, i.MouseY = s.X, s.Y

	for _, ev := range i.tracker.Events(s, i.bounds) {
		i.listeners.Dispatch(ev)
	}
}

// Hovering reports whether the cursor is over the canvas.
func (i *Input) Hovering() bool {
	return image.Pt(i.MouseX, i.MouseY).In(i.bounds)
}
