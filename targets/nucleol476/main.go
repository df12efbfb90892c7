//go:build stm32l4x6

// Nucleo-L476RG: blue user button on PC13 (EXTI15_10), green LED on PA5,
// diagnostics on the ST-LINK virtual COM port.
package main

import (
	_ "embed"
	"machine"
	"time"

	"pressfw/board"
	"pressfw/config"
	"pressfw/core"
)

//go:embed config.json
var configJSON []byte

var bootTime = time.Now()

// millis is the core.Clock for this board.
func millis() uint32 {
	return uint32(time.Since(bootTime).Milliseconds())
}

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

	machine.BUTTON.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	button := newEXTIButton(13)
	if err := board.AttachButton(store, button, machine.BUTTON, button.latch); err != nil {
		board.Fatal(err.Error())
	}

	ctrl := core.NewController(store, led, core.NewActivityPolicy(cfg), millis)
	core.SetEdgeClock(millis)

	core.Trap(ctrl.Run)
}
