//go:build rp2040

package main

import (
	"image/color"
	"machine"

	"pressfw/core"

	"tinygo.org/x/drivers/ws2812"
)

// modeColors are dim so the pixel is readable without glare.
var modeColors = [...]color.RGBA{
	core.ModeSleep:      {R: 0, G: 0, B: 8},
	core.ModeStandalone: {R: 0, G: 16, B: 0},
	core.ModeContinuous: {R: 16, G: 8, B: 0},
}

// pixelIndicator shows the system mode on a single WS2812 pixel.
type pixelIndicator struct {
	dev    ws2812.Device
	colors [1]color.RGBA
}

func newPixelIndicator(pin machine.Pin) *pixelIndicator {
	pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	return &pixelIndicator{dev: ws2812.New(pin)}
}

// ShowMode implements core.ModeIndicator.
func (p *pixelIndicator) ShowMode(m core.SystemMode) {
	if !m.Valid() {
		return
	}
	p.colors[0] = modeColors[m]
	if err := p.dev.WriteColors(p.colors[:]); err != nil {
		core.DebugPrintln("indicator: " + err.Error())
	}
}
