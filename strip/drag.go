package strip

type State int

const (
	StateIdle State = iota
	StateDragging
)

func (s State) String() string {
	if s == StateDragging {
		return "dragging"
	}
	return "idle"
}

// Controller pans the strip while the primary button is held. The move and
// release listeners only exist for the duration of a drag.
type Controller struct {
	geom      Geometry
	listeners *Listeners

	state  State
	delta  int
	offset int

	press   Handle
	move    Handle
	release Handle

	redraw           func(offset int)
	onPositionChange func(offset int)
}

// NewController attaches a press listener to l and starts idle at initialX.
// redraw is called on every offset change; onPositionChange receives the
// final offset when a drag ends. Either callback may be nil.
func NewController(l *Listeners, g Geometry, initialX int, redraw, onPositionChange func(int)) *Controller {
	c := &Controller{
		geom:             g,
		listeners:        l,
		offset:           g.Clamp(initialX),
		redraw:           redraw,
		onPositionChange: onPositionChange,
	}
	c.press = l.On(EventPress, c.handlePress)
	return c
}

func (c *Controller) Detach() {
	c.press.Remove()
	c.endDrag()
}

func (c *Controller) State() State { return c.state }

func (c *Controller) Offset() int { return c.offset }

func (c *Controller) Geometry() Geometry { return c.geom }

// SetOffset moves the strip to x (clamped) and redraws. Used when the
// committed position changes outside a drag.
func (c *Controller) SetOffset(x int) {
	c.offset = c.geom.Clamp(x)
	c.draw()
}

func (c *Controller) SetGeometry(g Geometry) {
	c.geom = g
	c.offset = g.Clamp(c.offset)
	c.draw()
}

func (c *Controller) handlePress(ev Event) {
	if ev.Button != ButtonPrimary || !ev.Inside {
		return
	}
	if c.state == StateDragging {
		return
	}
	c.delta = ev.X - c.offset
	c.state = StateDragging
	c.move = c.listeners.On(EventMove, c.handleMove)
	c.release = c.listeners.On(EventRelease, c.handleRelease)
}

func (c *Controller) handleMove(ev Event) {
	if c.state != StateDragging {
		return
	}
	c.offset = c.geom.Clamp(ev.X - c.delta)
	c.draw()
}

func (c *Controller) handleRelease(Event) {
	if c.state != StateDragging {
		return
	}
	c.endDrag()
	if c.onPositionChange != nil {
		c.onPositionChange(c.offset)
	}
}

func (c *Controller) endDrag() {
	c.state = StateIdle
	c.move.Remove()
	c.release.Remove()
	c.move = Handle{}
	c.release = Handle{}
}

func (c *Controller) draw() {
	if c.redraw != nil {
		c.redraw(c.offset)
	}
}
