// Package pad defines the hardware-facing contracts of the keypad and the
// serial transport to the pad MCU.
//
// The MCU owns scanning and debouncing; this side only sees clean,
// per-key events and only writes LED colors back. The wire protocol is a
// small line format, one event per line:
//
//	P <index>              confirmed press (drives the state machine)
//	D <index>              key physically down (illumination only)
//	U <index>              key physically up (illumination only)
//	C <index> <r> <g> <b>  outbound LED color
//
// The same Scanner and Indicator contracts are implemented by the
// terminal simulator, so the daemon runs identically with or without
// hardware attached.
package pad
