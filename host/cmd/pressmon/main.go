// Command pressmon follows a device's debug UART and prints decoded press,
// mode and fault reports.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"pressfw/host/monitor"
	"pressfw/host/serial"
)

var (
	device  = flag.String("device", "/dev/ttyACM0", "Serial device path")
	baud    = flag.Int("baud", 115200, "Baud rate of the debug UART")
	verbose = flag.Bool("verbose", false, "Print every decoded line")
	replay  = flag.String("replay", "", "Read a captured log file instead of a serial device")
)

func main() {
	flag.Parse()

	src, name, err := openSource()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer src.Close()

	fmt.Printf("Monitoring %s...\n", name)

	m := monitor.New()
	err = m.Run(src, func(ev monitor.Event) { printEvent(ev, *verbose) })
	printSummary(m.Stats())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", name, err)
		os.Exit(1)
	}
}

func openSource() (io.ReadCloser, string, error) {
	if *replay != "" {
		f, err := os.Open(*replay)
		if err != nil {
			return nil, "", fmt.Errorf("failed to open replay file: %w", err)
		}
		return f, *replay, nil
	}

	cfg := serial.DefaultConfig(*device)
	cfg.Baud = *baud
	port, err := serial.Open(cfg)
	if err != nil {
		return nil, "", err
	}
	// Drop whatever the device wrote before we attached; a partial first
	// line would only count as malformed.
	if err := port.Flush(); err != nil {
		port.Close()
		return nil, "", fmt.Errorf("failed to flush %s: %w", *device, err)
	}
	return port, *device, nil
}

func printEvent(ev monitor.Event, verbose bool) {
	switch ev.Kind {
	case monitor.KindMode:
		fmt.Printf("mode  %s -> %s (count %s)\n", ev.Fields["from"], ev.Fields["to"], ev.Fields["count"])
	case monitor.KindFault:
		fmt.Printf("FAULT %s at pc=%s lr=%s\n", ev.Fields["reason"], ev.Fields["pc"], ev.Fields["lr"])
	case monitor.KindPress:
		if verbose {
			fmt.Printf("press %s [%s]\n", ev.Fields["count"], ev.Fields["mode"])
		}
	default:
		if verbose {
			fmt.Printf("%-5s %v\n", ev.Kind, ev.Fields)
		}
	}
}

func printSummary(s monitor.Stats) {
	fmt.Println()
	fmt.Println("Summary:")
	fmt.Printf("  lines        %d (%d malformed)\n", s.Lines, s.Malformed)
	fmt.Printf("  last count   %d\n", s.LastCount)
	fmt.Printf("  coalesced    %d\n", s.Coalesced)
	fmt.Printf("  mode         %s (%d transitions)\n", s.Mode, s.Transitions)
	if s.Faults > 0 {
		fmt.Printf("  faults       %d (last: %s)\n", s.Faults, s.LastFault)
	}
}
