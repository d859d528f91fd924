package app

import (
	"github.com/rs/zerolog"

	"github.com/keygrid/keygrid/internal/color"
	"github.com/keygrid/keygrid/internal/engine"
	"github.com/keygrid/keygrid/internal/pad"
)

// lightTable bridges the engine's logical light targets to the RGB
// driver, easing brightness between refreshes. It is only touched from
// the event loop goroutine.
type lightTable struct {
	hues  []color.Hue
	fader *color.Fader
	ind   pad.Indicator
	log   zerolog.Logger
}

func newLightTable(size int, ind pad.Indicator, log zerolog.Logger) *lightTable {
	return &lightTable{
		hues:  make([]color.Hue, size),
		fader: color.NewFader(size),
		ind:   ind,
		log:   log,
	}
}

// SetLight implements engine.IndicatorSink. Steady levels ease in over
// the following ticks; flashes land immediately.
func (lt *lightTable) SetLight(index int, light engine.Light) {
	lt.hues[index] = light.Hue
	if light.Flash {
		lt.fader.Jump(index, light.Level)
		lt.push(index)
		return
	}
	lt.fader.SetTarget(index, light.Level)
}

// tick advances the fade animation one step.
func (lt *lightTable) tick() {
	for _, i := range lt.fader.Tick() {
		lt.push(i)
	}
}

// flush pushes every slot's current color, used once at startup.
func (lt *lightTable) flush() {
	for i := range lt.hues {
		lt.push(i)
	}
}

// push resolves one slot to RGB and hands it to the driver.
func (lt *lightTable) push(i int) {
	c := color.Shade(lt.hues[i], lt.fader.Value(i))
	if err := lt.ind.SetColor(i, c); err != nil {
		lt.log.Warn().Err(err).Int("slot", i).Msg("indicator update failed")
	}
}
