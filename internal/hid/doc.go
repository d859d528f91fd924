// Package hid provides the keyboard output sinks.
//
// Two implementations of the engine's KeySink exist and are selected at
// startup, never branched at press time:
//
//   - Gadget writes boot keyboard reports to a USB gadget HID endpoint
//     (/dev/hidg0 on a configured composite gadget), making the pad appear
//     to the host as an ordinary keyboard
//   - Diag logs chords instead of transmitting them, for bring-up and for
//     the pad's disable mode
//
// A chord is always sent as one atomic press-then-release pair: the press
// report carries the full modifier mask and key list, the release report
// is all zeroes.
package hid
