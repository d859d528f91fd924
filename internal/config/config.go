package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/keygrid/keygrid/internal/color"
	"github.com/keygrid/keygrid/internal/engine"
	"github.com/keygrid/keygrid/internal/keycode"
)

// Defaults for the stock 4x4 pad.
const (
	DefaultRows = 4
	DefaultCols = 4

	// DefaultTick is the indicator refresh interval, matching the stock
	// firmware's scan loop cadence.
	DefaultTick = 20 * time.Millisecond

	// defaultHue is used for slots that bind keys without naming a color.
	defaultHue = "magenta"
)

// Config is the validated, immutable startup configuration.
type Config struct {
	// Rows and Cols give the grid geometry.
	Rows int
	Cols int

	// Transmit routes chords to the real HID sink when true, and to the
	// diagnostic sink when false. The state machine is identical either
	// way.
	Transmit bool

	// Device is the HID gadget endpoint chords are written to.
	Device string

	// Port is the serial port of the pad MCU, empty when running the
	// terminal simulator.
	Port string

	// Tick is the indicator refresh interval.
	Tick time.Duration

	// Slots holds one entry per grid position, none-mode filled for
	// unbound keys.
	Slots []engine.Slot
}

// Size returns the slot count.
func (c *Config) Size() int {
	return c.Rows * c.Cols
}

// rawFile is the on-disk layout shape, shared by the TOML and Lua loaders.
type rawFile struct {
	Pad  rawPad    `toml:"pad"`
	Slot []rawSlot `toml:"slot"`
}

type rawPad struct {
	Rows     int      `toml:"rows"`
	Cols     int      `toml:"cols"`
	Transmit *bool    `toml:"transmit"`
	Device   string   `toml:"device"`
	Port     string   `toml:"port"`
	TickMs   int      `toml:"tick_ms"`
	Common   []string `toml:"common"`
}

type rawSlot struct {
	Index int      `toml:"index"`
	Mode  string   `toml:"mode"`
	Hue   string   `toml:"hue"`
	Group string   `toml:"group"`
	On    []string `toml:"on"`
	Off   []string `toml:"off"`
}

// Load reads and validates a layout file. The format is chosen by
// extension: .toml or .lua.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading layout %s: %w", path, err)
	}

	var raw *rawFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		raw, err = parseTOML(path, data)
	case ".lua":
		raw, err = parseLua(path, data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
	if err != nil {
		return nil, err
	}

	return build(path, raw)
}

// parseTOML decodes a TOML layout.
func parseTOML(path string, data []byte) (*rawFile, error) {
	var raw rawFile
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, &ParseError{Path: path, Message: err.Error(), Err: err}
	}
	return &raw, nil
}

// build validates a raw layout and assembles the slot table.
func build(path string, raw *rawFile) (*Config, error) {
	cfg := &Config{
		Rows:     raw.Pad.Rows,
		Cols:     raw.Pad.Cols,
		Transmit: true,
		Device:   raw.Pad.Device,
		Port:     raw.Pad.Port,
		Tick:     DefaultTick,
	}
	if cfg.Rows == 0 {
		cfg.Rows = DefaultRows
	}
	if cfg.Cols == 0 {
		cfg.Cols = DefaultCols
	}
	if raw.Pad.Transmit != nil {
		cfg.Transmit = *raw.Pad.Transmit
	}
	if raw.Pad.TickMs > 0 {
		cfg.Tick = time.Duration(raw.Pad.TickMs) * time.Millisecond
	}

	cerr := &ConfigError{Path: path}

	if cfg.Rows < 0 || cfg.Cols < 0 || cfg.Size() == 0 {
		cerr.add(-1, "pad", "invalid grid %dx%d", cfg.Rows, cfg.Cols)
		return nil, cerr
	}

	var common keycode.Chord
	if len(raw.Pad.Common) > 0 {
		c, err := keycode.ParseKeys(raw.Pad.Common)
		if err != nil {
			cerr.addErr(-1, "common", err)
		} else {
			common = c
		}
	}

	if len(raw.Slot) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoLayout, path)
	}

	cfg.Slots = make([]engine.Slot, cfg.Size())
	for i := range cfg.Slots {
		cfg.Slots[i] = engine.Slot{Index: i, Mode: engine.ModeNone}
	}

	seen := make(map[int]bool, len(raw.Slot))
	for _, rs := range raw.Slot {
		slot, ok := buildSlot(rs, cfg.Size(), common, seen, cerr)
		if !ok {
			continue
		}
		cfg.Slots[slot.Index] = slot
	}

	if err := cerr.orNil(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildSlot validates one slot entry. Problems are recorded on cerr; the
// second result is false when the entry cannot be used.
func buildSlot(rs rawSlot, size int, common keycode.Chord, seen map[int]bool, cerr *ConfigError) (engine.Slot, bool) {
	if rs.Index < 0 || rs.Index >= size {
		cerr.add(rs.Index, "index", "out of range [0,%d)", size)
		return engine.Slot{}, false
	}
	if seen[rs.Index] {
		cerr.add(rs.Index, "index", "defined more than once")
		return engine.Slot{}, false
	}
	seen[rs.Index] = true

	mode, ok := engine.ModeFromName(rs.Mode)
	if !ok {
		cerr.add(rs.Index, "mode", "unknown mode %q", rs.Mode)
		return engine.Slot{}, false
	}

	slot := engine.Slot{Index: rs.Index, Mode: mode}

	// None slots are dark and inert; any other field is meaningless and
	// dropped.
	if mode == engine.ModeNone {
		return slot, true
	}

	// Toggles are excluded from grouping by policy; a slot claiming both
	// behaviors is contradictory, not normalizable.
	if mode == engine.ModeToggle && rs.Group != "" {
		cerr.add(rs.Index, "group", "toggle slots may not join a group")
		return engine.Slot{}, false
	}
	if mode == engine.ModeGroup {
		if rs.Group == "" {
			cerr.add(rs.Index, "group", "group slots need a group name")
			return engine.Slot{}, false
		}
		slot.Group = rs.Group
	}

	hueName := rs.Hue
	if hueName == "" {
		hueName = defaultHue
	}
	hue, ok := color.HueFromName(hueName)
	if !ok {
		cerr.add(rs.Index, "hue", "unknown hue %q", rs.Hue)
		return engine.Slot{}, false
	}
	slot.Hue = hue

	if len(rs.On) == 0 {
		cerr.add(rs.Index, "on", "empty chord")
		return engine.Slot{}, false
	}
	on, err := keycode.ParseKeys(rs.On)
	if err != nil {
		cerr.addErr(rs.Index, "on", err)
		return engine.Slot{}, false
	}
	slot.On = common.Merge(on)
	if err := slot.On.Validate(); err != nil {
		cerr.addErr(rs.Index, "on", err)
		return engine.Slot{}, false
	}

	if len(rs.Off) > 0 {
		if mode != engine.ModeToggle {
			cerr.add(rs.Index, "off", "only toggle slots send an off chord")
			return engine.Slot{}, false
		}
		off, err := keycode.ParseKeys(rs.Off)
		if err != nil {
			cerr.addErr(rs.Index, "off", err)
			return engine.Slot{}, false
		}
		slot.Off = common.Merge(off)
		if err := slot.Off.Validate(); err != nil {
			cerr.addErr(rs.Index, "off", err)
			return engine.Slot{}, false
		}
	}

	return slot, true
}
