package hid

import (
	"github.com/rs/zerolog"

	"github.com/keygrid/keygrid/internal/keycode"
)

// Diag is the diagnostic key sink: chords are logged, never transmitted.
// The engine drives it exactly like the real transmitter, so disable mode
// exercises the full state machine.
type Diag struct {
	log zerolog.Logger
}

// NewDiag creates a diagnostic sink.
func NewDiag(log zerolog.Logger) *Diag {
	return &Diag{log: log}
}

// SendChord logs the chord and its wire report.
func (d *Diag) SendChord(chord keycode.Chord) error {
	report, err := chord.Report()
	if err != nil {
		return err
	}
	d.log.Info().
		Stringer("chord", chord).
		Hex("report", report[:]).
		Msg("chord suppressed (transmit disabled)")
	return nil
}
