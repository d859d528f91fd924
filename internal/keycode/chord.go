package keycode

import (
	"errors"
	"fmt"
	"strings"
)

// Parse errors
var (
	ErrEmptyChord  = errors.New("empty chord")
	ErrTooManyKeys = errors.New("chord exceeds boot report key limit")
)

// ReportSize is the length of a boot keyboard report.
const ReportSize = 8

// MaxKeys is the number of simultaneous non-modifier keys a boot report
// can carry.
const MaxKeys = 6

// UnknownKeyError is returned when a key name cannot be resolved.
type UnknownKeyError struct {
	// Name is the unrecognized key name.
	Name string
}

// Error implements the error interface.
func (e *UnknownKeyError) Error() string {
	return fmt.Sprintf("unknown key name %q", e.Name)
}

// Chord is an ordered combination of modifiers and keys sent as one atomic
// press-then-release group. The zero value is an empty chord that
// transmits nothing.
type Chord struct {
	// Mods is the combined modifier bitmask for the chord.
	Mods Modifier

	// Keys holds the non-modifier usage IDs in listed order.
	Keys []Code
}

// IsEmpty returns true if the chord has no modifiers and no keys.
func (c Chord) IsEmpty() bool {
	return c.Mods.IsEmpty() && len(c.Keys) == 0
}

// String renders the chord in spec form, e.g. "ctrl+alt+f13".
func (c Chord) String() string {
	var parts []string
	if !c.Mods.IsEmpty() {
		parts = append(parts, c.Mods.String())
	}
	for _, k := range c.Keys {
		parts = append(parts, k.String())
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "+")
}

// Report packs the chord into an 8-byte boot keyboard report:
// modifier byte, reserved byte, then up to six usage IDs in chord order.
func (c Chord) Report() ([ReportSize]byte, error) {
	var report [ReportSize]byte
	if len(c.Keys) > MaxKeys {
		return report, fmt.Errorf("%w: %d keys", ErrTooManyKeys, len(c.Keys))
	}
	report[0] = c.Mods.Byte()
	for i, k := range c.Keys {
		report[i+2] = byte(k)
	}
	return report, nil
}

// Validate checks that the chord fits a boot report.
func (c Chord) Validate() error {
	if len(c.Keys) > MaxKeys {
		return fmt.Errorf("%w: %d keys", ErrTooManyKeys, len(c.Keys))
	}
	return nil
}

// Merge returns a chord combining c with other: modifiers are OR-ed and
// other's keys append after c's. Used to fold a pad-wide common chord into
// each slot binding.
func (c Chord) Merge(other Chord) Chord {
	merged := Chord{Mods: c.Mods.With(other.Mods)}
	merged.Keys = append(merged.Keys, c.Keys...)
	merged.Keys = append(merged.Keys, other.Keys...)
	return merged
}

// ParseChord parses a combined spec like "ctrl+alt+f13" into a Chord.
// Modifier names fold into the modifier mask; everything else must resolve
// to a usage ID.
func ParseChord(spec string) (Chord, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Chord{}, ErrEmptyChord
	}
	return ParseKeys(strings.Split(spec, "+"))
}

// ParseKeys parses an ordered list of key names into a Chord. Each entry
// may itself be a combined spec ("ctrl+f13").
func ParseKeys(names []string) (Chord, error) {
	var chord Chord
	for _, name := range names {
		for _, part := range strings.Split(name, "+") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if mod := ModifierFromName(part); mod != ModNone {
				chord.Mods = chord.Mods.With(mod)
				continue
			}
			code := FromName(part)
			if code == CodeNone {
				return Chord{}, &UnknownKeyError{Name: part}
			}
			chord.Keys = append(chord.Keys, code)
		}
	}
	if chord.IsEmpty() {
		return Chord{}, ErrEmptyChord
	}
	if err := chord.Validate(); err != nil {
		return Chord{}, err
	}
	return chord, nil
}
