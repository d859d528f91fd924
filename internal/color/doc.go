// Package color models the keypad's indicator lighting.
//
// Each key carries a fixed hue from a 24-step named wheel and a brightness
// level that tracks its activation state: a dim idle glow, a bright lit
// state for active keys, and a full-brightness flash while the key is held
// down. Hue plus level convert to an 8-bit RGB triple for the LED driver
// via HSV.
//
// The Fader animates brightness between levels: every refresh tick moves
// the current value a fixed step toward the target, with an instant jump
// for the held flash so presses feel immediate.
package color
