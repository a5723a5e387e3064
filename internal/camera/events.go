package camera

// State enumerates the mutually exclusive drag gestures. Scroll zoom is
// not a state; it composes into whichever gesture is active.
type State int

const (
	Idle State = iota
	Rotating
	Panning
	Zooming
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Rotating:
		return "rotating"
	case Panning:
		return "panning"
	case Zooming:
		return "zooming"
	default:
		return "unknown"
	}
}

// EventType identifies one pointer gesture event.
type EventType int

const (
	// BeginRotate through BeginZoom open a drag. They are ignored while
	// another drag is active.
	BeginRotate EventType = iota
	BeginPan
	BeginZoom
	// EndDrag closes whatever drag is active.
	EndDrag
	// Drag carries pointer movement in pixels while a drag is active.
	Drag
	// Scroll carries wheel notches. Positive notches zoom in.
	Scroll
)

func (t EventType) String() string {
	switch t {
	case BeginRotate:
		return "begin-rotate"
	case BeginPan:
		return "begin-pan"
	case BeginZoom:
		return "begin-zoom"
	case EndDrag:
		return "end-drag"
	case Drag:
		return "drag"
	case Scroll:
		return "scroll"
	default:
		return "unknown"
	}
}

// Event is one pointer gesture event from the presentation layer.
// DX and DY are pixel deltas for Drag events, with screen Y growing
// downward. Notches is the wheel movement for Scroll events.
type Event struct {
	Type    EventType
	DX, DY  float64
	Notches float64
}
