package pad

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"go.bug.st/serial"

	"github.com/keygrid/keygrid/internal/color"
)

// DefaultBaud is the pad MCU's link speed.
const DefaultBaud = 115200

// Serial speaks the pad's line protocol over a serial port, acting as
// both the event Scanner and the LED Indicator.
type Serial struct {
	port io.ReadWriteCloser
	size int
	log  zerolog.Logger

	events chan Event

	mu     sync.Mutex
	closed bool
}

// OpenSerial connects to the pad MCU on the named port. size is the slot
// count; events outside it are dropped at the transport so the rest of
// the daemon can rely on in-range indices.
func OpenSerial(portName string, size int, log zerolog.Logger) (*Serial, error) {
	port, err := serial.Open(portName, &serial.Mode{BaudRate: DefaultBaud})
	if err != nil {
		return nil, fmt.Errorf("opening pad port %s: %w", portName, err)
	}
	log.Info().Str("port", portName).Int("baud", DefaultBaud).Msg("pad connected")

	s := newSerial(port, size, log)
	go s.readLoop()
	return s, nil
}

// newSerial wires a Serial over any transport stream.
func newSerial(port io.ReadWriteCloser, size int, log zerolog.Logger) *Serial {
	return &Serial{
		port:   port,
		size:   size,
		log:    log,
		events: make(chan Event, 16),
	}
}

// Events implements Scanner.
func (s *Serial) Events() <-chan Event {
	return s.events
}

// readLoop parses inbound event lines until the port closes.
func (s *Serial) readLoop() {
	defer close(s.events)

	lines := bufio.NewScanner(s.port)
	for lines.Scan() {
		ev, ok := s.parseEvent(lines.Text())
		if !ok {
			continue
		}
		s.events <- ev
	}
	if err := lines.Err(); err != nil && !s.isClosed() {
		s.log.Error().Err(err).Msg("pad read failed")
	}
}

// parseEvent decodes one event line. Malformed or out-of-range lines are
// logged and dropped.
func (s *Serial) parseEvent(line string) (Event, bool) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		if line != "" {
			s.log.Warn().Str("line", line).Msg("malformed pad event")
		}
		return Event{}, false
	}

	var kind EventKind
	switch fields[0] {
	case "P":
		kind = EventPress
	case "D":
		kind = EventDown
	case "U":
		kind = EventUp
	default:
		s.log.Warn().Str("line", line).Msg("unknown pad event tag")
		return Event{}, false
	}

	index, err := strconv.Atoi(fields[1])
	if err != nil || index < 0 || index >= s.size {
		s.log.Warn().Str("line", line).Msg("pad event index out of range")
		return Event{}, false
	}
	return Event{Index: index, Kind: kind}, true
}

// SetColor implements Indicator by writing a color line.
func (s *Serial) SetColor(index int, c color.RGB) error {
	line := fmt.Sprintf("C %d %d %d %d\n", index, c.R, c.G, c.B)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return fmt.Errorf("pad port is closed")
	}
	if _, err := io.WriteString(s.port, line); err != nil {
		return fmt.Errorf("writing pad color: %w", err)
	}
	return nil
}

// Close shuts the port down, ending the event stream.
func (s *Serial) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.port.Close()
}

func (s *Serial) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
