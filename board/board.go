//go:build tinygo

// Package board holds the TinyGo glue shared by the targets: the LED output,
// the debug UART writers and the button interrupt hookup.
package board

import (
	"machine"

	"pressfw/config"
	"pressfw/core"
)

var crlf = []byte("\r\n")

// PinOutput drives a push-pull pin as a core.Output. It starts low.
type PinOutput struct {
	pin  machine.Pin
	high bool
}

// NewPinOutput configures pin as an output and drives it low.
func NewPinOutput(pin machine.Pin) *PinOutput {
	pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	pin.Low()
	return &PinOutput{pin: pin}
}

// Toggle flips the pin.
func (o *PinOutput) Toggle() {
	o.high = !o.high
	o.pin.Set(o.high)
}

// Get returns the level last driven.
func (o *PinOutput) Get() bool {
	return o.high
}

// EnableDiagnostics configures the default UART at cfg.BaudRate and routes
// debug lines and fault reports to it. cfg.Debug turns on the per-press
// lines; fault reports are always written.
func EnableDiagnostics(cfg *config.Config) error {
	uart := machine.DefaultUART
	if err := uart.Configure(machine.UARTConfig{BaudRate: cfg.BaudRate}); err != nil {
		return err
	}
	core.SetDebugWriter(func(s string) {
		uart.Write([]byte(s))
		uart.Write(crlf)
	})
	core.SetDebugEnabled(cfg.Debug)
	core.SetFaultWriter(func(b []byte) {
		uart.Write(b)
	})
	return nil
}

// AttachButton moves h into store and only then enables the falling-edge
// interrupt on pin, so the ISR never runs before the handoff. before runs
// first inside the interrupt, ahead of the core ISR body.
func AttachButton(store *core.Store, h core.ButtonHandle, pin machine.Pin, before func()) error {
	if err := store.InstallButton(h); err != nil {
		return err
	}
	return pin.SetInterrupt(machine.PinFalling, func(machine.Pin) {
		if before != nil {
			before()
		}
		core.Trap(store.HandleButtonEdge)
	})
}

// Fatal reports a bootstrap error and halts.
func Fatal(reason string) {
	core.HandleFault(&core.FaultContext{Reason: reason})
}
