package sim

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/keygrid/keygrid/internal/color"
	"github.com/keygrid/keygrid/internal/pad"
)

// keyRows maps terminal keys to grid positions, row by row.
var keyRows = []string{
	"1234567890",
	"qwertyuiop",
	"asdfghjkl;",
	"zxcvbnm,./",
}

// Cell geometry of one rendered key.
const (
	cellWidth  = 5
	cellHeight = 2
	cellGap    = 1
)

// Sim renders the keypad in a terminal and feeds keystrokes back as pad
// events.
type Sim struct {
	rows, cols int
	log        zerolog.Logger

	mu     sync.Mutex
	screen tcell.Screen
	colors []color.RGB
	closed bool

	events chan pad.Event
}

// New creates a simulator for a rows x cols grid on a fresh terminal
// screen.
func New(rows, cols int, log zerolog.Logger) (*Sim, error) {
	if rows > len(keyRows) || cols > len(keyRows[0]) {
		return nil, fmt.Errorf("grid %dx%d exceeds simulator key map", rows, cols)
	}
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("creating simulator screen: %w", err)
	}
	return NewWithScreen(rows, cols, screen, log)
}

// NewWithScreen creates a simulator on a caller-supplied screen. Tests
// pass a tcell simulation screen.
func NewWithScreen(rows, cols int, screen tcell.Screen, log zerolog.Logger) (*Sim, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("initializing simulator screen: %w", err)
	}
	s := &Sim{
		rows:   rows,
		cols:   cols,
		log:    log,
		screen: screen,
		colors: make([]color.RGB, rows*cols),
		events: make(chan pad.Event, 16),
	}
	s.drawAll()
	go s.inputLoop()
	return s, nil
}

// Events implements pad.Scanner.
func (s *Sim) Events() <-chan pad.Event {
	return s.events
}

// SetColor implements pad.Indicator.
func (s *Sim) SetColor(index int, c color.RGB) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return fmt.Errorf("simulator is closed")
	}
	if index < 0 || index >= len(s.colors) {
		return fmt.Errorf("slot index %d out of range", index)
	}
	s.colors[index] = c
	s.drawKey(index)
	s.screen.Show()
	return nil
}

// Close tears the screen down, ending the event stream.
func (s *Sim) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	s.screen.Fini()
	return nil
}

// inputLoop translates terminal keys into pad events until the screen
// dies or the user quits.
func (s *Sim) inputLoop() {
	defer close(s.events)

	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			return
		}
		switch tev := ev.(type) {
		case *tcell.EventKey:
			if tev.Key() == tcell.KeyEscape || tev.Key() == tcell.KeyCtrlC {
				s.log.Info().Msg("simulator quit")
				return
			}
			index, ok := s.keyIndex(tev.Rune())
			if !ok {
				continue
			}
			// A terminal key stroke has no release event, so play the
			// full sequence the MCU would send.
			s.events <- pad.Event{Index: index, Kind: pad.EventDown}
			s.events <- pad.Event{Index: index, Kind: pad.EventPress}
			s.events <- pad.Event{Index: index, Kind: pad.EventUp}
		case *tcell.EventResize:
			s.mu.Lock()
			if !s.closed {
				s.screen.Sync()
				s.drawAll()
			}
			s.mu.Unlock()
		}
	}
}

// keyIndex resolves a terminal rune to a grid index.
func (s *Sim) keyIndex(r rune) (int, bool) {
	for row := 0; row < s.rows; row++ {
		col := strings.IndexRune(keyRows[row][:s.cols], r)
		if col >= 0 {
			return row*s.cols + col, true
		}
	}
	return 0, false
}

// drawAll repaints the whole grid.
func (s *Sim) drawAll() {
	s.screen.Clear()
	for i := range s.colors {
		s.drawKey(i)
	}
	s.screen.Show()
}

// drawKey paints one key block in its current color, labeled with its
// terminal key.
func (s *Sim) drawKey(index int) {
	row := index / s.cols
	col := index % s.cols
	x0 := col * (cellWidth + cellGap)
	y0 := row * (cellHeight + cellGap)

	c := s.colors[index]
	style := tcell.StyleDefault.Background(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
	label := rune(keyRows[row][col])

	for dy := 0; dy < cellHeight; dy++ {
		for dx := 0; dx < cellWidth; dx++ {
			ch := ' '
			if dx == cellWidth/2 && dy == cellHeight/2 {
				ch = label
			}
			s.screen.SetContent(x0+dx, y0+dy, ch, nil, style)
		}
	}
}
