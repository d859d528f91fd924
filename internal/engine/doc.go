// Package engine implements the keypad's per-key state machine.
//
// The engine owns a fixed table of slot configuration and the parallel
// runtime activation state. Each debounced press event maps to exactly one
// outcome, decided by the slot's mode:
//
//   - none: the slot is dark and inert
//   - momentary: emit the on chord, no state change
//   - toggle: flip activation, emit the on or off chord, relight the key
//   - group: radio-button behavior within a named group; at most one
//     member is active, and re-pressing the active member is a no-op
//
// Outputs go to two write-only sinks: a KeySink receiving HID chords and
// an IndicatorSink receiving per-key light targets. Within one press all
// sibling light updates land before the pressed key's own update, and the
// chord is transmitted only after every state and light update, so the
// sinks always observe a consistent snapshot.
//
// The engine is single-threaded by contract: the event loop delivers one
// press at a time and each call runs to completion. It performs no
// blocking work of its own.
package engine
