package app

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/keygrid/keygrid/internal/config"
	"github.com/keygrid/keygrid/internal/engine"
	"github.com/keygrid/keygrid/internal/hid"
	"github.com/keygrid/keygrid/internal/pad"
	"github.com/keygrid/keygrid/internal/sim"
)

// Options is the command-line surface of the daemon.
type Options struct {
	// LayoutPath is the layout file (.toml or .lua).
	LayoutPath string

	// Simulate runs the terminal simulator instead of real hardware.
	Simulate bool

	// Port overrides the layout's serial port.
	Port string

	// Device overrides the layout's HID gadget endpoint.
	Device string

	// NoTransmit forces the diagnostic key sink regardless of layout.
	NoTransmit bool

	// LogLevel is one of debug, info, warn, error.
	LogLevel string
}

// App owns every long-lived component of the daemon.
type App struct {
	log    zerolog.Logger
	cfg    *config.Config
	engine *engine.Engine
	lights *lightTable

	scanner   pad.Scanner
	indicator pad.Indicator
	keysink   io.Closer // nil for the diagnostic sink
	watcher   io.Closer

	quit     chan struct{}
	quitOnce sync.Once
}

// New builds the daemon from options. Configuration problems are fatal
// here; nothing starts on an invalid layout.
func New(opts Options) (*App, error) {
	log := newLogger(opts.LogLevel)

	cfg, err := config.Load(opts.LayoutPath)
	if err != nil {
		return nil, err
	}
	if opts.Port != "" {
		cfg.Port = opts.Port
	}
	if opts.Device != "" {
		cfg.Device = opts.Device
	}
	if opts.NoTransmit {
		cfg.Transmit = false
	}

	a := &App{
		log:  log,
		cfg:  cfg,
		quit: make(chan struct{}),
	}

	keys, err := a.openKeySink(opts.Simulate)
	if err != nil {
		return nil, err
	}
	if err := a.openPad(opts.Simulate); err != nil {
		a.closeSinks()
		return nil, err
	}

	a.lights = newLightTable(cfg.Size(), a.indicator, log)
	a.engine = engine.New(cfg.Slots, keys, a.lights, log.With().Str("component", "engine").Logger())

	if w, err := watchLayout(opts.LayoutPath, log); err != nil {
		log.Warn().Err(err).Msg("layout watch unavailable")
	} else {
		a.watcher = w
	}

	log.Info().
		Int("rows", cfg.Rows).
		Int("cols", cfg.Cols).
		Bool("transmit", cfg.Transmit).
		Msg("keypad ready")
	return a, nil
}

// openKeySink selects the chord transmitter: the USB gadget endpoint
// when transmission is enabled on hardware, the diagnostic log otherwise.
func (a *App) openKeySink(simulate bool) (engine.KeySink, error) {
	hidLog := a.log.With().Str("component", "hid").Logger()
	if simulate || !a.cfg.Transmit {
		if a.cfg.Transmit {
			a.log.Info().Msg("simulator run, chords go to the log")
		}
		return hid.NewDiag(hidLog), nil
	}
	gadget, err := hid.OpenGadget(a.cfg.Device, hidLog)
	if err != nil {
		return nil, err
	}
	a.keysink = gadget
	return gadget, nil
}

// openPad connects the scanner/indicator pair.
func (a *App) openPad(simulate bool) error {
	padLog := a.log.With().Str("component", "pad").Logger()
	if simulate {
		s, err := sim.New(a.cfg.Rows, a.cfg.Cols, padLog)
		if err != nil {
			return err
		}
		a.scanner, a.indicator = s, s
		return nil
	}
	if a.cfg.Port == "" {
		return fmt.Errorf("no serial port configured; set pad.port or run with -sim")
	}
	s, err := pad.OpenSerial(a.cfg.Port, a.cfg.Size(), padLog)
	if err != nil {
		return err
	}
	a.scanner, a.indicator = s, s
	return nil
}

// Run drives the event loop until the scanner ends or Shutdown is
// called. Events are handled strictly one at a time.
func (a *App) Run() error {
	a.engine.InitLights()
	a.lights.flush()

	ticker := time.NewTicker(a.cfg.Tick)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-a.scanner.Events():
			if !ok {
				a.log.Info().Msg("scanner ended")
				return nil
			}
			a.handle(ev)
		case <-ticker.C:
			a.lights.tick()
		case <-a.quit:
			return nil
		}
	}
}

// handle dispatches one pad event to the engine.
func (a *App) handle(ev pad.Event) {
	switch ev.Kind {
	case pad.EventPress:
		if err := a.engine.HandlePress(ev.Index); err != nil {
			a.log.Error().Err(err).Int("slot", ev.Index).Msg("press failed")
		}
	case pad.EventDown:
		a.engine.HandleDown(ev.Index)
	case pad.EventUp:
		a.engine.HandleUp(ev.Index)
	}
}

// Shutdown stops the loop and releases every device. Safe to call more
// than once and from signal handlers.
func (a *App) Shutdown() {
	a.quitOnce.Do(func() {
		close(a.quit)
		a.closeSinks()
		a.log.Info().Msg("keypad stopped")
	})
}

// closeSinks releases devices, tolerating partial construction.
func (a *App) closeSinks() {
	if a.watcher != nil {
		_ = a.watcher.Close()
	}
	// Scanner and indicator are one device on both transports; Close is
	// idempotent.
	if a.scanner != nil {
		_ = a.scanner.Close()
	}
	if a.keysink != nil {
		_ = a.keysink.Close()
	}
}

// newLogger builds the daemon's console logger.
func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}
