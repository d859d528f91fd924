package app

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/keygrid/keygrid/internal/color"
	"github.com/keygrid/keygrid/internal/config"
	"github.com/keygrid/keygrid/internal/engine"
	"github.com/keygrid/keygrid/internal/keycode"
	"github.com/keygrid/keygrid/internal/pad"
)

// fakeIndicator records color pushes.
type fakeIndicator struct {
	mu     sync.Mutex
	colors map[int]color.RGB
	pushes int
}

func (f *fakeIndicator) SetColor(index int, c color.RGB) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.colors == nil {
		f.colors = make(map[int]color.RGB)
	}
	f.colors[index] = c
	f.pushes++
	return nil
}

func (f *fakeIndicator) Close() error { return nil }

// fakeKeys records transmitted chords.
type fakeKeys struct {
	chords []keycode.Chord
}

func (f *fakeKeys) SendChord(chord keycode.Chord) error {
	f.chords = append(f.chords, chord)
	return nil
}

const testLayout = `
[pad]
tick_ms = 1

[[slot]]
index = 0
mode = "group"
group = "scene"
hue = "red"
on = ["f13"]

[[slot]]
index = 1
mode = "group"
group = "scene"
hue = "green"
on = ["f14"]

[[slot]]
index = 2
mode = "toggle"
hue = "blue"
on = ["ctrl", "f13"]
off = ["alt", "f13"]
`

func loadTestConfig(t *testing.T) *config.Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "layout.toml")
	if err := os.WriteFile(path, []byte(testLayout), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return cfg
}

// newTestApp wires an App over canned events and recording sinks.
func newTestApp(t *testing.T, events ...pad.Event) (*App, *fakeIndicator, *fakeKeys) {
	t.Helper()
	cfg := loadTestConfig(t)
	ind := &fakeIndicator{}
	keys := &fakeKeys{}

	a := &App{
		log:       zerolog.Nop(),
		cfg:       cfg,
		quit:      make(chan struct{}),
		scanner:   pad.NewReplay(events...),
		indicator: ind,
	}
	a.lights = newLightTable(cfg.Size(), ind, a.log)
	a.engine = engine.New(cfg.Slots, keys, a.lights, a.log)
	return a, ind, keys
}

func TestRunProcessesEventsInOrder(t *testing.T) {
	a, ind, keys := newTestApp(t,
		pad.Event{Index: 0, Kind: pad.EventPress},
		pad.Event{Index: 1, Kind: pad.EventPress},
		pad.Event{Index: 2, Kind: pad.EventPress},
		pad.Event{Index: 2, Kind: pad.EventPress},
	)
	if err := a.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	// Group handoff plus a full toggle round trip.
	if a.engine.IsActive(0) || !a.engine.IsActive(1) || a.engine.IsActive(2) {
		t.Errorf("active = %v, want only slot 1", a.engine.Active())
	}
	wantChords := []string{"f13", "f14", "ctrl+f13", "alt+f13"}
	if len(keys.chords) != len(wantChords) {
		t.Fatalf("chords = %v, want %v", keys.chords, wantChords)
	}
	for i, want := range wantChords {
		if got := keys.chords[i].String(); got != want {
			t.Errorf("chord %d = %q, want %q", i, got, want)
		}
	}

	// Startup pushed an initial color for every slot.
	ind.mu.Lock()
	defer ind.mu.Unlock()
	if len(ind.colors) != a.cfg.Size() {
		t.Errorf("indicator saw %d slots, want %d", len(ind.colors), a.cfg.Size())
	}
}

// holdScanner delivers events but keeps the stream open so the loop
// stays on its ticker.
type holdScanner struct {
	ch chan pad.Event
}

func newHoldScanner(events ...pad.Event) *holdScanner {
	h := &holdScanner{ch: make(chan pad.Event, len(events))}
	for _, ev := range events {
		h.ch <- ev
	}
	return h
}

func (h *holdScanner) Events() <-chan pad.Event { return h.ch }
func (h *holdScanner) Close() error             { return nil }

func TestRunFadesIndicators(t *testing.T) {
	a, ind, _ := newTestApp(t)
	a.scanner = newHoldScanner(pad.Event{Index: 0, Kind: pad.EventPress})

	done := make(chan error, 1)
	go func() { done <- a.Run() }()

	// Give the ticker time to ease slot 0 toward its lit level.
	time.Sleep(150 * time.Millisecond)
	a.Shutdown()
	if err := <-done; err != nil {
		t.Fatalf("Run: %v", err)
	}

	ind.mu.Lock()
	defer ind.mu.Unlock()
	if ind.pushes <= a.cfg.Size() {
		t.Errorf("pushes = %d, want fade updates beyond the initial flush", ind.pushes)
	}
	lit := color.Shade(a.engine.Slot(0).Hue, color.LevelOn)
	if ind.colors[0] != lit {
		t.Errorf("slot 0 color = %v, want fully lit %v", ind.colors[0], lit)
	}
}

func TestHeldFlashReachesIndicator(t *testing.T) {
	a, ind, keys := newTestApp(t,
		pad.Event{Index: 0, Kind: pad.EventDown},
	)
	if err := a.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	// Down flashes immediately without transmitting.
	ind.mu.Lock()
	defer ind.mu.Unlock()
	flash := color.Shade(a.engine.Slot(0).Hue, color.LevelDown)
	if ind.colors[0] != flash {
		t.Errorf("slot 0 color = %v, want flash %v", ind.colors[0], flash)
	}
	if len(keys.chords) != 0 {
		t.Errorf("down event transmitted %v", keys.chords)
	}
}

func TestShutdownIdempotent(t *testing.T) {
	a, _, _ := newTestApp(t)
	a.Shutdown()
	a.Shutdown()
}
