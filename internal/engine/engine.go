package engine

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/keygrid/keygrid/internal/color"
	"github.com/keygrid/keygrid/internal/keycode"
)

// Engine owns the slot table and all runtime activation state. It is the
// only component that mutates activation; the sinks are write-only.
//
// The slot table is assumed validated (see the config package). Slot
// indices arriving at the handlers must be in range: the debounced scanner
// guarantees this, and a violation is a caller bug that panics rather than
// being recovered.
type Engine struct {
	slots  []Slot
	active []bool
	held   []bool

	// groups maps group name to member slot indices, built once so sibling
	// lookup does not rescan the table. It also documents the invariant:
	// at most one member of each list is active.
	groups map[string][]int

	keys   KeySink
	lights IndicatorSink
	log    zerolog.Logger
}

// New creates an engine for the given validated slot table, wired to the
// output sinks chosen at startup.
func New(slots []Slot, keys KeySink, lights IndicatorSink, log zerolog.Logger) *Engine {
	e := &Engine{
		slots:  slots,
		active: make([]bool, len(slots)),
		held:   make([]bool, len(slots)),
		groups: make(map[string][]int),
		keys:   keys,
		lights: lights,
		log:    log,
	}
	for _, s := range slots {
		if s.Mode == ModeGroup {
			e.groups[s.Group] = append(e.groups[s.Group], s.Index)
		}
	}
	return e
}

// Len returns the slot count.
func (e *Engine) Len() int {
	return len(e.slots)
}

// Slot returns the configuration for slot i.
func (e *Engine) Slot(i int) Slot {
	e.check(i)
	return e.slots[i]
}

// IsActive reports slot i's activation state.
func (e *Engine) IsActive(i int) bool {
	e.check(i)
	return e.active[i]
}

// Active returns a copy of the activation table.
func (e *Engine) Active() []bool {
	out := make([]bool, len(e.active))
	copy(out, e.active)
	return out
}

// GroupMembers returns the member indices of a group in table order.
func (e *Engine) GroupMembers(name string) []int {
	members := e.groups[name]
	out := make([]int, len(members))
	copy(out, members)
	return out
}

// Level returns the steady brightness slot i should show for its current
// state, ignoring any held flash.
func (e *Engine) Level(i int) float64 {
	e.check(i)
	s := e.slots[i]
	switch {
	case s.Mode == ModeNone:
		return 0
	case e.active[i]:
		return color.LevelOn
	default:
		return color.LevelOff
	}
}

// InitLights pushes every slot's initial light to the indicator sink.
// Called once at startup so the grid reflects the configuration before the
// first press.
func (e *Engine) InitLights() {
	for i, s := range e.slots {
		e.lights.SetLight(i, Light{Hue: s.Hue, Level: e.Level(i)})
	}
}

// HandlePress processes one confirmed press of slot i. All state and
// indicator updates complete before the chord is transmitted.
func (e *Engine) HandlePress(i int) error {
	e.check(i)
	s := e.slots[i]

	switch s.Mode {
	case ModeNone:
		return nil

	case ModeMomentary:
		e.log.Debug().Int("slot", i).Stringer("chord", s.On).Msg("momentary press")
		return e.send(s.On)

	case ModeToggle:
		e.active[i] = !e.active[i]
		e.lights.SetLight(i, Light{Hue: s.Hue, Level: e.Level(i)})
		if e.active[i] {
			e.log.Debug().Int("slot", i).Stringer("chord", s.On).Msg("toggle on")
			return e.send(s.On)
		}
		if s.Off.IsEmpty() {
			// Silent deactivation: one-shot toggles have no off chord.
			e.log.Debug().Int("slot", i).Msg("toggle off (silent)")
			return nil
		}
		e.log.Debug().Int("slot", i).Stringer("chord", s.Off).Msg("toggle off")
		return e.send(s.Off)

	case ModeGroup:
		if e.active[i] {
			// Re-pressing the selected member of a group changes nothing.
			return nil
		}
		for _, j := range e.groups[s.Group] {
			if j == i || !e.active[j] {
				continue
			}
			e.active[j] = false
			e.lights.SetLight(j, Light{Hue: e.slots[j].Hue, Level: e.Level(j)})
		}
		e.active[i] = true
		e.lights.SetLight(i, Light{Hue: s.Hue, Level: e.Level(i)})
		e.log.Debug().Int("slot", i).Str("group", s.Group).Stringer("chord", s.On).Msg("group select")
		return e.send(s.On)

	default:
		panic(fmt.Sprintf("slot %d has invalid mode %d", i, s.Mode))
	}
}

// HandleDown records that slot i is physically held and flashes its
// indicator. No chord is emitted; transmission happens on the confirmed
// press event.
func (e *Engine) HandleDown(i int) {
	e.check(i)
	s := e.slots[i]
	if s.Mode == ModeNone {
		return
	}
	e.held[i] = true
	e.lights.SetLight(i, Light{Hue: s.Hue, Level: color.LevelDown, Flash: true})
}

// HandleUp clears slot i's held flag and restores its steady light.
func (e *Engine) HandleUp(i int) {
	e.check(i)
	s := e.slots[i]
	if s.Mode == ModeNone {
		return
	}
	e.held[i] = false
	e.lights.SetLight(i, Light{Hue: s.Hue, Level: e.Level(i)})
}

// IsHeld reports whether slot i is physically held.
func (e *Engine) IsHeld(i int) bool {
	e.check(i)
	return e.held[i]
}

// send forwards a chord to the key sink.
func (e *Engine) send(chord keycode.Chord) error {
	if err := e.keys.SendChord(chord); err != nil {
		return fmt.Errorf("sending chord %s: %w", chord, err)
	}
	return nil
}

// check enforces the scanner's valid-index contract.
func (e *Engine) check(i int) {
	if i < 0 || i >= len(e.slots) {
		panic(fmt.Sprintf("slot index %d out of range [0,%d)", i, len(e.slots)))
	}
}
