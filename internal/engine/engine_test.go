package engine

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/keygrid/keygrid/internal/color"
	"github.com/keygrid/keygrid/internal/keycode"
)

// recorder captures sink calls in arrival order so tests can assert both
// outcomes and ordering.
type recorder struct {
	chords []keycode.Chord
	lights []lightCall
	order  []string // "chord" / "light" interleaving
	err    error
}

type lightCall struct {
	index int
	light Light
}

func (r *recorder) SendChord(chord keycode.Chord) error {
	r.chords = append(r.chords, chord)
	r.order = append(r.order, "chord")
	return r.err
}

func (r *recorder) SetLight(index int, light Light) {
	r.lights = append(r.lights, lightCall{index: index, light: light})
	r.order = append(r.order, "light")
}

func (r *recorder) reset() {
	r.chords = nil
	r.lights = nil
	r.order = nil
}

func chord(t *testing.T, spec string) keycode.Chord {
	t.Helper()
	c, err := keycode.ParseChord(spec)
	if err != nil {
		t.Fatalf("ParseChord(%q): %v", spec, err)
	}
	return c
}

func sceneSlots(t *testing.T) []Slot {
	t.Helper()
	hue, _ := color.HueFromName("red")
	return []Slot{
		{Index: 0, Hue: hue, Mode: ModeGroup, Group: "scene", On: chord(t, "f13")},
		{Index: 1, Hue: hue, Mode: ModeGroup, Group: "scene", On: chord(t, "f14")},
		{Index: 2, Hue: hue, Mode: ModeGroup, Group: "scene", On: chord(t, "f15")},
	}
}

func newTestEngine(t *testing.T, slots []Slot) (*Engine, *recorder) {
	t.Helper()
	rec := &recorder{}
	return New(slots, rec, rec, zerolog.Nop()), rec
}

// assertGroupInvariant checks that at most one member of each group is
// active.
func assertGroupInvariant(t *testing.T, e *Engine) {
	t.Helper()
	for _, name := range []string{"scene", "aux"} {
		count := 0
		for _, i := range e.GroupMembers(name) {
			if e.IsActive(i) {
				count++
			}
		}
		if count > 1 {
			t.Fatalf("group %q has %d active members", name, count)
		}
	}
}

func TestGroupExclusivity(t *testing.T) {
	e, rec := newTestEngine(t, sceneSlots(t))

	// Press 0: slot 0 active, F13 emitted, slot 0 lit.
	if err := e.HandlePress(0); err != nil {
		t.Fatalf("HandlePress(0): %v", err)
	}
	assertGroupInvariant(t, e)
	if !e.IsActive(0) || e.IsActive(1) || e.IsActive(2) {
		t.Fatalf("active = %v, want [true false false]", e.Active())
	}
	if len(rec.chords) != 1 || rec.chords[0].Keys[0] != keycode.CodeF13 {
		t.Fatalf("chords = %v, want [f13]", rec.chords)
	}
	if len(rec.lights) != 1 || rec.lights[0].index != 0 || rec.lights[0].light.Level != color.LevelOn {
		t.Fatalf("lights = %v, want slot 0 lit", rec.lights)
	}

	// Press 1: slot 0 unlit first, slot 1 lit, F14 emitted.
	rec.reset()
	if err := e.HandlePress(1); err != nil {
		t.Fatalf("HandlePress(1): %v", err)
	}
	assertGroupInvariant(t, e)
	if e.IsActive(0) || !e.IsActive(1) {
		t.Fatalf("active = %v, want [false true false]", e.Active())
	}
	if len(rec.chords) != 1 || rec.chords[0].Keys[0] != keycode.CodeF14 {
		t.Fatalf("chords = %v, want [f14]", rec.chords)
	}
	if len(rec.lights) != 2 {
		t.Fatalf("lights = %v, want unlit 0 then lit 1", rec.lights)
	}
	if rec.lights[0].index != 0 || rec.lights[0].light.Level != color.LevelOff {
		t.Errorf("first light = %v, want slot 0 dimmed", rec.lights[0])
	}
	if rec.lights[1].index != 1 || rec.lights[1].light.Level != color.LevelOn {
		t.Errorf("second light = %v, want slot 1 lit", rec.lights[1])
	}
}

func TestGroupRepressIsNoop(t *testing.T) {
	e, rec := newTestEngine(t, sceneSlots(t))
	if err := e.HandlePress(1); err != nil {
		t.Fatalf("HandlePress(1): %v", err)
	}
	before := e.Active()

	rec.reset()
	if err := e.HandlePress(1); err != nil {
		t.Fatalf("repress HandlePress(1): %v", err)
	}
	if len(rec.chords) != 0 {
		t.Errorf("repress emitted %v, want nothing", rec.chords)
	}
	if len(rec.lights) != 0 {
		t.Errorf("repress changed lights %v, want none", rec.lights)
	}
	after := e.Active()
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("active[%d] changed %v -> %v", i, before[i], after[i])
		}
	}
}

func TestGroupOrderingChordLast(t *testing.T) {
	e, rec := newTestEngine(t, sceneSlots(t))
	if err := e.HandlePress(0); err != nil {
		t.Fatal(err)
	}

	rec.reset()
	if err := e.HandlePress(2); err != nil {
		t.Fatal(err)
	}
	want := []string{"light", "light", "chord"}
	if len(rec.order) != len(want) {
		t.Fatalf("order = %v, want %v", rec.order, want)
	}
	for i := range want {
		if rec.order[i] != want[i] {
			t.Fatalf("order = %v, want %v", rec.order, want)
		}
	}
}

func TestToggleRoundTrip(t *testing.T) {
	hue, _ := color.HueFromName("blue")
	slots := []Slot{{
		Index: 0,
		Hue:   hue,
		Mode:  ModeToggle,
		On:    chord(t, "ctrl+f13"),
		Off:   chord(t, "alt+f13"),
	}}
	e, rec := newTestEngine(t, slots)

	if err := e.HandlePress(0); err != nil {
		t.Fatalf("first press: %v", err)
	}
	if !e.IsActive(0) {
		t.Fatal("expected active after first press")
	}
	if err := e.HandlePress(0); err != nil {
		t.Fatalf("second press: %v", err)
	}
	if e.IsActive(0) {
		t.Fatal("expected inactive after second press")
	}

	if len(rec.chords) != 2 {
		t.Fatalf("chords = %v, want on then off", rec.chords)
	}
	if rec.chords[0].Mods != keycode.ModLCtrl || rec.chords[1].Mods != keycode.ModLAlt {
		t.Errorf("chords = [%s %s], want [ctrl+f13 alt+f13]", rec.chords[0], rec.chords[1])
	}

	// Lights: lit on activation, dimmed on deactivation.
	if len(rec.lights) != 2 {
		t.Fatalf("lights = %v, want two updates", rec.lights)
	}
	if rec.lights[0].light.Level != color.LevelOn || rec.lights[1].light.Level != color.LevelOff {
		t.Errorf("light levels = %v, want lit then dimmed", rec.lights)
	}
}

func TestToggleSilentDeactivation(t *testing.T) {
	slots := []Slot{{Index: 0, Mode: ModeToggle, On: chord(t, "f13")}}
	e, rec := newTestEngine(t, slots)

	if err := e.HandlePress(0); err != nil {
		t.Fatal(err)
	}
	if err := e.HandlePress(0); err != nil {
		t.Fatal(err)
	}
	if e.IsActive(0) {
		t.Error("expected inactive after round trip")
	}
	// No off chord configured: deactivation transmits nothing.
	if len(rec.chords) != 1 {
		t.Errorf("chords = %v, want only the on chord", rec.chords)
	}
}

func TestMomentaryStateless(t *testing.T) {
	slots := []Slot{{Index: 0, Mode: ModeMomentary, On: chord(t, "kp0")}}
	e, rec := newTestEngine(t, slots)

	for n := 0; n < 5; n++ {
		if err := e.HandlePress(0); err != nil {
			t.Fatalf("press %d: %v", n, err)
		}
		if e.IsActive(0) {
			t.Fatalf("press %d left slot active", n)
		}
	}
	if len(rec.chords) != 5 {
		t.Fatalf("chords = %d, want 5", len(rec.chords))
	}
	for _, c := range rec.chords {
		if len(c.Keys) != 1 || c.Keys[0] != keycode.CodeKP0 {
			t.Errorf("chord = %s, want kp0", c)
		}
	}
	if len(rec.lights) != 0 {
		t.Errorf("momentary presses changed lights: %v", rec.lights)
	}
}

func TestNoneSlotInert(t *testing.T) {
	e, rec := newTestEngine(t, []Slot{{Index: 0, Mode: ModeNone}})
	if err := e.HandlePress(0); err != nil {
		t.Fatal(err)
	}
	e.HandleDown(0)
	e.HandleUp(0)
	if len(rec.chords) != 0 || len(rec.lights) != 0 {
		t.Errorf("none slot produced output: chords=%v lights=%v", rec.chords, rec.lights)
	}
}

func TestOutOfRangePanics(t *testing.T) {
	e, _ := newTestEngine(t, sceneSlots(t))
	defer func() {
		if recover() == nil {
			t.Error("expected panic for out-of-range index")
		}
	}()
	_ = e.HandlePress(3)
}

func TestInitLights(t *testing.T) {
	hue, _ := color.HueFromName("green")
	slots := []Slot{
		{Index: 0, Hue: hue, Mode: ModeToggle, On: chord(t, "f13")},
		{Index: 1, Mode: ModeNone},
	}
	e, rec := newTestEngine(t, slots)
	e.InitLights()

	if len(rec.lights) != 2 {
		t.Fatalf("lights = %v, want one per slot", rec.lights)
	}
	if rec.lights[0].light.Level != color.LevelOff {
		t.Errorf("slot 0 initial level = %v, want dim", rec.lights[0].light.Level)
	}
	if rec.lights[1].light.Level != 0 {
		t.Errorf("none slot initial level = %v, want dark", rec.lights[1].light.Level)
	}
}

func TestHeldFlash(t *testing.T) {
	hue, _ := color.HueFromName("cyan")
	e, rec := newTestEngine(t, []Slot{{Index: 0, Hue: hue, Mode: ModeMomentary, On: chord(t, "f13")}})

	e.HandleDown(0)
	if !e.IsHeld(0) {
		t.Error("expected held after HandleDown")
	}
	if len(rec.lights) != 1 || !rec.lights[0].light.Flash || rec.lights[0].light.Level != color.LevelDown {
		t.Fatalf("lights = %v, want instant full flash", rec.lights)
	}

	rec.reset()
	e.HandleUp(0)
	if e.IsHeld(0) {
		t.Error("expected released after HandleUp")
	}
	if len(rec.lights) != 1 || rec.lights[0].light.Flash || rec.lights[0].light.Level != color.LevelOff {
		t.Fatalf("lights = %v, want eased return to dim", rec.lights)
	}
}

func TestGroupMembersPartition(t *testing.T) {
	slots := append(sceneSlots(t),
		Slot{Index: 3, Mode: ModeGroup, Group: "aux", On: chord(t, "f16")},
		Slot{Index: 4, Mode: ModeToggle, On: chord(t, "f17")},
	)
	e, _ := newTestEngine(t, slots)

	scene := e.GroupMembers("scene")
	if len(scene) != 3 {
		t.Errorf("scene members = %v, want 3", scene)
	}
	aux := e.GroupMembers("aux")
	if len(aux) != 1 || aux[0] != 3 {
		t.Errorf("aux members = %v, want [3]", aux)
	}
	if ghost := e.GroupMembers("ghost"); len(ghost) != 0 {
		t.Errorf("ghost members = %v, want none", ghost)
	}

	// Groups do not interfere with each other.
	if err := e.HandlePress(0); err != nil {
		t.Fatal(err)
	}
	if err := e.HandlePress(3); err != nil {
		t.Fatal(err)
	}
	if !e.IsActive(0) || !e.IsActive(3) {
		t.Errorf("active = %v, want slots 0 and 3 active", e.Active())
	}
	assertGroupInvariant(t, e)
}
