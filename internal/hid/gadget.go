package hid

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"

	"github.com/keygrid/keygrid/internal/keycode"
)

// DefaultDevice is the keyboard endpoint of a configured USB composite
// gadget.
const DefaultDevice = "/dev/hidg0"

// Gadget transmits chords as boot keyboard reports through a USB gadget
// HID endpoint.
type Gadget struct {
	mu   sync.Mutex
	dev  io.WriteCloser
	path string
	log  zerolog.Logger
}

// OpenGadget opens the HID endpoint at path (DefaultDevice when empty).
func OpenGadget(path string, log zerolog.Logger) (*Gadget, error) {
	if path == "" {
		path = DefaultDevice
	}
	dev, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("opening hid endpoint %s: %w", path, err)
	}
	log.Info().Str("device", path).Msg("hid gadget opened")
	return &Gadget{dev: dev, path: path, log: log}, nil
}

// SendChord writes the chord's press report followed by an all-zero
// release report. The pair is atomic with respect to other senders.
func (g *Gadget) SendChord(chord keycode.Chord) error {
	press, err := chord.Report()
	if err != nil {
		return err
	}
	var release [keycode.ReportSize]byte

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.dev == nil {
		return fmt.Errorf("hid endpoint %s is closed", g.path)
	}
	if _, err := g.dev.Write(press[:]); err != nil {
		return fmt.Errorf("writing press report: %w", err)
	}
	if _, err := g.dev.Write(release[:]); err != nil {
		return fmt.Errorf("writing release report: %w", err)
	}
	g.log.Trace().Stringer("chord", chord).Msg("chord transmitted")
	return nil
}

// Close releases the endpoint. Further sends fail.
func (g *Gadget) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.dev == nil {
		return nil
	}
	err := g.dev.Close()
	g.dev = nil
	return err
}
