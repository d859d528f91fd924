// Package app assembles the keypad daemon and runs its event loop.
//
// Startup wires the validated layout into the engine, selects the key
// sink (USB gadget or diagnostic log), and connects a scanner/indicator
// pair: the serial pad transport for real hardware, or the terminal
// simulator. The loop then serializes everything: scanner events drive
// the engine one at a time, and a ticker eases indicator brightness
// between refreshes. No engine state is touched from more than one
// goroutine.
//
// The layout file is watched after startup only to tell the operator a
// restart is needed; configuration never changes mid-flight.
package app
