// Package keycode provides the USB HID key model for the keypad.
//
// This package defines the fundamental types for describing what a key
// press sends over the wire:
//
//   - Code: a USB HID keyboard usage ID (letters, digits, function keys,
//     keypad keys)
//   - Modifier: the modifier bitmask from the HID boot report (Ctrl, Shift,
//     Alt, GUI, left and right variants)
//   - Chord: an ordered combination of modifiers and codes transmitted as
//     one atomic press-then-release group
//
// # Key Specifications
//
// Keys are named in configuration files and parsed case-insensitively:
//
//   - Plain keys: "a", "7", "enter", "f13", "kp0"
//   - Modifiers: "ctrl", "alt", "shift", "gui" (plus "lctrl"/"rctrl" etc.)
//   - Combined specs: "ctrl+alt+f13"
//
// A chord packs into the standard 8-byte boot keyboard report, which caps
// the number of simultaneous non-modifier keys at six.
package keycode
