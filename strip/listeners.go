package strip

type EventKind int

const (
	EventPress EventKind = iota
	EventMove
	EventRelease
)

func (k EventKind) String() string {
	switch k {
	case EventPress:
		return "press"
	case EventMove:
		return "move"
	case EventRelease:
		return "release"
	default:
		return "unknown"
	}
}

type Button int

const (
	ButtonPrimary Button = iota
	ButtonMiddle
	ButtonSecondary
)

type Event struct {
	Kind   EventKind
	Button Button
	X, Y   int
	Inside bool
}

type listener struct {
	id uint32
	fn func(Event)
}

// Listeners is a per-kind table of pointer callbacks, the equivalent of
// document-level event listeners.
type Listeners struct {
	byKind map[EventKind][]listener
	nextID uint32
}

type Handle struct {
	id   uint32
	kind EventKind
	reg  *Listeners
}

func NewListeners() *Listeners {
	return &Listeners{byKind: make(map[EventKind][]listener)}
}

func (l *Listeners) On(kind EventKind, fn func(Event)) Handle {
	l.nextID++
	id := l.nextID
	l.byKind[kind] = append(l.byKind[kind], listener{id: id, fn: fn})
	return Handle{id: id, kind: kind, reg: l}
}

func (h Handle) Remove() {
	if h.reg == nil {
		return
	}
	s := h.reg.byKind[h.kind]
	for i := range s {
		if s[i].id == h.id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = listener{}
			h.reg.byKind[h.kind] = s[:len(s)-1]
			return
		}
	}
}

// Dispatch calls every listener registered for ev.Kind. Listeners added or
// removed by a callback take effect on the next dispatch.
func (l *Listeners) Dispatch(ev Event) {
	s := l.byKind[ev.Kind]
	if len(s) == 0 {
		return
	}
	snapshot := make([]listener, len(s))
	copy(snapshot, s)
	for _, ln := range snapshot {
		ln.fn(ev)
	}
}

func (l *Listeners) Count(kind EventKind) int {
	return len(l.byKind[kind])
}
