package engine

import (
	"fmt"
	"strings"

	"github.com/keygrid/keygrid/internal/color"
	"github.com/keygrid/keygrid/internal/keycode"
)

// Mode is a slot's behavioral category.
type Mode uint8

const (
	// ModeNone marks an unbound slot: dark, presses ignored.
	ModeNone Mode = iota

	// ModeMomentary emits the on chord on every press with no state.
	ModeMomentary

	// ModeToggle flips activation on each press, emitting the on chord
	// when activating and the off chord when deactivating.
	ModeToggle

	// ModeGroup gives the slot radio-button semantics within its group.
	ModeGroup
)

// String returns the mode's configuration name.
func (m Mode) String() string {
	switch m {
	case ModeNone:
		return "none"
	case ModeMomentary:
		return "momentary"
	case ModeToggle:
		return "toggle"
	case ModeGroup:
		return "group"
	default:
		return fmt.Sprintf("Mode(%d)", m)
	}
}

// ModeFromName returns the Mode for a configuration name
// (case-insensitive). The second result is false for unknown names.
func ModeFromName(name string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "none", "":
		return ModeNone, true
	case "momentary", "key":
		return ModeMomentary, true
	case "toggle":
		return ModeToggle, true
	case "group", "scene", "mutex":
		return ModeGroup, true
	default:
		return ModeNone, false
	}
}

// Slot is one physical key position's immutable configuration. The fields
// beyond Mode are only meaningful for the modes that use them: Group for
// ModeGroup, Off for ModeToggle, On for every mode but ModeNone.
type Slot struct {
	// Index is the slot's position in the grid, 0..N-1.
	Index int

	// Hue is the key's base color on the indicator wheel.
	Hue color.Hue

	// Mode selects the slot's press behavior.
	Mode Mode

	// Group names the mutual-exclusion group for ModeGroup slots.
	Group string

	// On is the chord sent when the slot fires or activates.
	On keycode.Chord

	// Off is the chord sent when a toggle deactivates. An empty Off means
	// the toggle deactivates silently.
	Off keycode.Chord
}

// Light is a logical indicator target for one key: the key's hue at a
// brightness level. Flash requests an instant jump instead of the usual
// ease, used for the held-key flash.
type Light struct {
	Hue   color.Hue
	Level float64
	Flash bool
}

// RGB resolves the light to a color for the LED driver.
func (l Light) RGB() color.RGB {
	return color.Shade(l.Hue, l.Level)
}

// KeySink receives chords for transmission. Implementations decide whether
// that means a USB HID endpoint or a diagnostic log.
type KeySink interface {
	SendChord(chord keycode.Chord) error
}

// IndicatorSink receives per-key light targets.
type IndicatorSink interface {
	SetLight(index int, light Light)
}
