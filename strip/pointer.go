package strip

import "image"

type Sample struct {
	X, Y     int
	Pressed  []Button
	Released []Button
}

type Tracker struct {
	lastX, lastY int
	seen         bool
}

// Events returns the press, move and release events implied by s, in that
// order. A move is emitted only when the position changed since the last
// sample. bounds is the canvas rectangle used to set Event.Inside.
func (t *Tracker) Events(s Sample, bounds image.Rectangle) []Event {
	inside := image.Pt(s.X, s.Y).In(bounds)
	var out []Event
	for _, b := range s.Pressed {
		out = append(out, Event{Kind: EventPress, Button: b, X: s.X, Y: s.Y, Inside: inside})
	}
	if t.seen && (s.X != t.lastX || s.Y != t.lastY) {
		out = append(out, Event{Kind: EventMove, X: s.X, Y: s.Y, Inside: inside})
	}
	for _, b := range s.Released {
		out = append(out, Event{Kind: EventRelease, Button: b, X: s.X, Y: s.Y, Inside: inside})
	}
	t.lastX, t.lastY, t.seen = s.X, s.Y, true
	return out
}
