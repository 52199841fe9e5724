package schema

// EventType identifies what the viewer should do next.
type EventType uint8

const (
	// EventQuit ends the viewing session.
	EventQuit EventType = iota + 1
	// EventScrollUp moves the window one line towards the top.
	EventScrollUp
	// EventScrollDown moves the window one line towards the bottom.
	EventScrollDown
	// EventResize reports that the terminal dimensions changed.
	EventResize
)

func (t EventType) String() string {
	switch t {
	case EventQuit:
		return "quit"
	case EventScrollUp:
		return "scroll_up"
	case EventScrollDown:
		return "scroll_down"
	case EventResize:
		return "resize"
	default:
		return "unknown"
	}
}

// Event is a single unit of work for the viewer loop. Each event is consumed once.
type Event struct {
	Type EventType
}

// Quit, ScrollUp, ScrollDown and Resize are the only events producers emit.
var (
	Quit       = Event{Type: EventQuit}
	ScrollUp   = Event{Type: EventScrollUp}
	ScrollDown = Event{Type: EventScrollDown}
	Resize     = Event{Type: EventResize}
)
