package pad

import (
	"fmt"

	"github.com/keygrid/keygrid/internal/color"
)

// EventKind categorizes a key event from the scanner.
type EventKind uint8

const (
	// EventPress is a confirmed, debounced press. One press drives one
	// state machine transition.
	EventPress EventKind = iota

	// EventDown reports the key going physically down. Illumination only.
	EventDown

	// EventUp reports the key going physically up. Illumination only.
	EventUp
)

// String returns the event kind's wire tag.
func (k EventKind) String() string {
	switch k {
	case EventPress:
		return "P"
	case EventDown:
		return "D"
	case EventUp:
		return "U"
	default:
		return fmt.Sprintf("EventKind(%d)", k)
	}
}

// Event is one debounced key event.
type Event struct {
	// Index is the slot the event belongs to, always in range for the
	// configured grid.
	Index int

	// Kind is the event category.
	Kind EventKind
}

// Scanner is a debounced key event source. Events deliver one at a time;
// the channel closes when the scanner shuts down.
type Scanner interface {
	Events() <-chan Event
	Close() error
}

// Indicator is the write-only RGB driver for the grid.
type Indicator interface {
	SetColor(index int, c color.RGB) error
	Close() error
}

// Replay is a canned Scanner for tests and scripted demos.
type Replay struct {
	ch chan Event
}

// NewReplay creates a scanner that delivers the given events in order and
// then closes.
func NewReplay(events ...Event) *Replay {
	r := &Replay{ch: make(chan Event, len(events))}
	for _, ev := range events {
		r.ch <- ev
	}
	close(r.ch)
	return r
}

// Events implements Scanner.
func (r *Replay) Events() <-chan Event {
	return r.ch
}

// Close implements Scanner.
func (r *Replay) Close() error {
	return nil
}
