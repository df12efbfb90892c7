//go:build rp2040

package main

import (
	_ "embed"
	"machine"

	"pressfw/board"
	"pressfw/config"
	"pressfw/core"
)

//go:embed config.json
var configJSON []byte

const (
	buttonPin = machine.GPIO15 // Active-low push button to GND
	pixelPin  = machine.GPIO16 // Onboard WS2812 on RP2040-Zero style boards
)

func main() {
	cfg, err := config.LoadConfig(configJSON)
	if err != nil {
		println("config:", err.Error())
		cfg = config.DefaultConfig()
	}

	if err := board.EnableDiagnostics(cfg); err != nil {
		println("uart:", err.Error())
	}

	led := board.NewPinOutput(machine.LED)
	store := core.DefaultStore()

	// Bootstrap: configure the line, hand the button to the store, then
	// unmask its interrupt.
	buttonPin.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	button := &latchedButton{}
	if err := board.AttachButton(store, button, buttonPin, button.latch); err != nil {
		board.Fatal(err.Error())
	}

	ctrl := core.NewController(store, led, core.NewActivityPolicy(cfg), millis)
	ctrl.SetIndicator(newPixelIndicator(pixelPin))
	core.SetEdgeClock(millis)

	core.Trap(ctrl.Run)
}
