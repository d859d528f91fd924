package color

import (
	"fmt"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGB is an 8-bit color triple for the LED driver.
type RGB struct {
	R, G, B uint8
}

// String renders the color as a hex triplet.
func (c RGB) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Off is the unlit color.
var Off = RGB{}

// Hue is a position on the color wheel in [0, 1).
type Hue float64

// hueStep is one slot of the 24-step named wheel.
const hueStep = 1.0 / 24.0

// hueNameMap maps the stock palette names to wheel positions. The
// three-letter names are the blends between primaries ("rry" sits between
// red and yellow, nearer red).
var hueNameMap = map[string]Hue{
	"red":     hueStep * 0,
	"rry":     hueStep * 1,
	"ry":      hueStep * 2,
	"ryy":     hueStep * 3,
	"yellow":  hueStep * 4,
	"yyg":     hueStep * 5,
	"yg":      hueStep * 6,
	"ygg":     hueStep * 7,
	"green":   hueStep * 8,
	"ggc":     hueStep * 9,
	"gc":      hueStep * 10,
	"gcc":     hueStep * 11,
	"cyan":    hueStep * 12,
	"ccb":     hueStep * 13,
	"cb":      hueStep * 14,
	"cbb":     hueStep * 15,
	"blue":    hueStep * 16,
	"bbm":     hueStep * 17,
	"bm":      hueStep * 18,
	"bmm":     hueStep * 19,
	"magenta": hueStep * 20,
	"mmr":     hueStep * 21,
	"mr":      hueStep * 22,
	"mrr":     hueStep * 23,
}

// HueFromName returns the wheel position for a palette name
// (case-insensitive). The second result is false for unknown names.
func HueFromName(name string) (Hue, bool) {
	h, ok := hueNameMap[strings.ToLower(strings.TrimSpace(name))]
	return h, ok
}

// HueNames returns the palette names in wheel order.
func HueNames() []string {
	names := make([]string, 0, len(hueNameMap))
	for name := range hueNameMap {
		names = append(names, name)
	}
	// Small fixed set; sort by wheel position for stable output.
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && hueNameMap[names[j]] < hueNameMap[names[j-1]]; j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
	return names
}

// Brightness values mirror the stock firmware's sixteenths scale.
const (
	// LevelOff is the dim idle glow of an inactive key.
	LevelOff = 1.0 / 16.0

	// LevelOn is the brightness of an active key.
	LevelOn = 10.0 / 16.0

	// LevelDown is the full flash while a key is physically held.
	LevelDown = 1.0

	// FadeStep is the per-tick brightness delta used by the Fader.
	FadeStep = 0.025
)

// Shade converts a hue and brightness value to RGB via HSV.
func Shade(h Hue, value float64) RGB {
	if value <= 0 {
		return Off
	}
	if value > 1 {
		value = 1
	}
	r, g, b := colorful.Hsv(float64(h)*360.0, 1.0, value).RGB255()
	return RGB{R: r, G: g, B: b}
}
