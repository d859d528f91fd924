package keycode

import "strings"

// Modifier is the modifier bitmask from the first byte of the HID boot
// keyboard report.
type Modifier uint8

// Bit positions are fixed by the boot report format, low nibble left-hand,
// high nibble right-hand.
const (
	// ModNone indicates no modifiers.
	ModNone Modifier = 0

	// ModLCtrl indicates the left Control key.
	ModLCtrl Modifier = 0x01

	// ModLShift indicates the left Shift key.
	ModLShift Modifier = 0x02

	// ModLAlt indicates the left Alt key.
	ModLAlt Modifier = 0x04

	// ModLGui indicates the left GUI key (Win/Cmd).
	ModLGui Modifier = 0x08

	// ModRCtrl indicates the right Control key.
	ModRCtrl Modifier = 0x10

	// ModRShift indicates the right Shift key.
	ModRShift Modifier = 0x20

	// ModRAlt indicates the right Alt key (AltGr).
	ModRAlt Modifier = 0x40

	// ModRGui indicates the right GUI key.
	ModRGui Modifier = 0x80
)

// Has returns true if m contains the specified modifier bits.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// With returns a new Modifier with the specified bits added.
func (m Modifier) With(mod Modifier) Modifier {
	return m | mod
}

// Without returns a new Modifier with the specified bits removed.
func (m Modifier) Without(mod Modifier) Modifier {
	return m &^ mod
}

// IsEmpty returns true if no modifiers are set.
func (m Modifier) IsEmpty() bool {
	return m == ModNone
}

// Byte returns the raw report byte.
func (m Modifier) Byte() byte {
	return byte(m)
}

// modifierOrder fixes the rendering order for String.
var modifierOrder = []struct {
	bit  Modifier
	name string
}{
	{ModLCtrl, "ctrl"},
	{ModLShift, "shift"},
	{ModLAlt, "alt"},
	{ModLGui, "gui"},
	{ModRCtrl, "rctrl"},
	{ModRShift, "rshift"},
	{ModRAlt, "ralt"},
	{ModRGui, "rgui"},
}

// String returns a representation like "ctrl+alt".
func (m Modifier) String() string {
	if m == ModNone {
		return ""
	}

	var parts []string
	for _, mo := range modifierOrder {
		if m.Has(mo.bit) {
			parts = append(parts, mo.name)
		}
	}
	return strings.Join(parts, "+")
}

// modifierNameMap maps modifier names (lowercase) to Modifier values.
// The unsided names resolve to the left-hand key, matching what HID
// keyboards send for the plain key.
var modifierNameMap = map[string]Modifier{
	"ctrl":    ModLCtrl,
	"control": ModLCtrl,
	"lctrl":   ModLCtrl,
	"rctrl":   ModRCtrl,
	"shift":   ModLShift,
	"lshift":  ModLShift,
	"rshift":  ModRShift,
	"alt":     ModLAlt,
	"option":  ModLAlt,
	"lalt":    ModLAlt,
	"ralt":    ModRAlt,
	"altgr":   ModRAlt,
	"gui":     ModLGui,
	"meta":    ModLGui,
	"cmd":     ModLGui,
	"win":     ModLGui,
	"windows": ModLGui,
	"super":   ModLGui,
	"lgui":    ModLGui,
	"rgui":    ModRGui,
}

// ModifierFromName returns the Modifier for a given name (case-insensitive).
// Returns ModNone if the name is not recognized.
func ModifierFromName(name string) Modifier {
	name = strings.ToLower(strings.TrimSpace(name))
	if m, ok := modifierNameMap[name]; ok {
		return m
	}
	return ModNone
}
