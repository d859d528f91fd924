// Package sim is a terminal stand-in for the physical keypad.
//
// It renders the grid as colored blocks with tcell and turns keyboard
// input into pad events, implementing the same Scanner and Indicator
// contracts as the serial transport. The left-hand key block maps onto
// the grid:
//
//	1 2 3 4
//	q w e r
//	a s d f
//	z x c v
//
// Each keystroke plays a full down/press/up sequence, since a terminal
// delivers no key-release events. Esc or Ctrl-C ends the session.
package sim
